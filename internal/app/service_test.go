package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okian/folio/internal/adapters/repository"
	service "github.com/okian/folio/internal/app"
	"github.com/okian/folio/internal/domain/model"
	"github.com/okian/folio/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

// failingStore fails every operation with err.
type failingStore struct {
	err error
}

func (f *failingStore) Create(context.Context, model.FeedbackEntry) (model.FeedbackEntry, error) {
	return model.FeedbackEntry{}, f.err
}
func (f *failingStore) List(context.Context) ([]model.FeedbackEntry, error) { return nil, f.err }
func (f *failingStore) Count(context.Context) (int, error)                  { return 0, nil }
func (f *failingStore) Ping(context.Context) error                          { return f.err }
func (f *failingStore) Close() error                                        { return nil }

func startedService(opts ...service.Option) (*service.Service, *repository.MemStore) {
	store := repository.NewMemStore()
	svc := service.New(append([]service.Option{service.WithStore(store)}, opts...)...)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	So(svc.Start(ctx), ShouldBeNil)
	return svc, store
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a new service without a store", t, func() {
		svc := service.New()

		Convey("When getting stats before starting", func() {
			stats := svc.GetStats()

			Convey("Then it reports not started", func() {
				So(stats["started"], ShouldEqual, false)
				So(stats, ShouldNotContainKey, "entries")
			})
		})

		Convey("When starting", func() {
			err := svc.Start(context.Background())
			defer svc.Stop()

			Convey("Then it falls back to a memory store", func() {
				So(err, ShouldBeNil)
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
				So(stats["entries"], ShouldEqual, 0)
			})

			Convey("And starting twice is a no-op", func() {
				So(svc.Start(context.Background()), ShouldBeNil)
			})
		})

		Convey("When stopping a started service", func() {
			So(svc.Start(context.Background()), ShouldBeNil)
			svc.Stop()

			Convey("Then it is marked as stopped", func() {
				So(svc.GetStats()["started"], ShouldEqual, false)
			})
		})
	})
}

func TestService_SubmitFeedback(t *testing.T) {
	Convey("Given a started service with default options", t, func() {
		svc, store := startedService()
		defer svc.Stop()
		ctx := context.Background()

		Convey("When submitting Alice's feedback", func() {
			entry, err := svc.SubmitFeedback(ctx, model.FeedbackForm{
				Name:    model.Set("Alice"),
				Comment: model.Set("Great site!"),
			})

			Convey("Then row 1 holds her values", func() {
				So(err, ShouldBeNil)
				So(entry.ID, ShouldEqual, 1)
				entries, err := svc.ListEntries(ctx)
				So(err, ShouldBeNil)
				So(entries, ShouldHaveLength, 1)
				So(entries[0].Line(), ShouldEqual, "Alice (Great site!)")
			})
		})

		Convey("When submitting empty fields", func() {
			_, err := svc.SubmitFeedback(ctx, model.FeedbackForm{Name: model.Set(""), Comment: model.Set("")})

			Convey("Then the row is still created", func() {
				So(err, ShouldBeNil)
				n, _ := store.Count(ctx)
				So(n, ShouldEqual, 1)
			})
		})

		Convey("When submitting with both fields absent", func() {
			_, err := svc.SubmitFeedback(ctx, model.FeedbackForm{})

			Convey("Then the row is created with absent values", func() {
				So(err, ShouldBeNil)
				entries, _ := store.List(ctx)
				So(entries[0].Name.Present, ShouldBeFalse)
				So(entries[0].Comment.Present, ShouldBeFalse)
			})
		})
	})

	Convey("Given a service that requires fields", t, func() {
		svc, store := startedService(service.WithRequireFields(true))
		defer svc.Stop()
		ctx := context.Background()

		Convey("When the comment is blank", func() {
			_, err := svc.SubmitFeedback(ctx, model.FeedbackForm{Name: model.Set("Alice"), Comment: model.Set("")})

			Convey("Then it is rejected and nothing is stored", func() {
				So(errors.Is(err, service.ErrMissingFields), ShouldBeTrue)
				n, _ := store.Count(ctx)
				So(n, ShouldEqual, 0)
			})
		})

		Convey("When the comment is only whitespace", func() {
			entry, err := svc.SubmitFeedback(ctx, model.FeedbackForm{Name: model.Set("Alice"), Comment: model.Set("  ")})

			Convey("Then it is stored as sent", func() {
				So(err, ShouldBeNil)
				So(entry.Line(), ShouldEqual, "Alice (  )")
				n, _ := store.Count(ctx)
				So(n, ShouldEqual, 1)
			})
		})

		Convey("When both fields are filled", func() {
			_, err := svc.SubmitFeedback(ctx, model.FeedbackForm{Name: model.Set("Alice"), Comment: model.Set("Hi")})

			Convey("Then it is stored", func() {
				So(err, ShouldBeNil)
				n, _ := store.Count(ctx)
				So(n, ShouldEqual, 1)
			})
		})
	})

	Convey("Given a service whose store fails", t, func() {
		boom := errors.New("disk unavailable")
		svc := service.New(service.WithStore(&failingStore{err: boom}))
		So(svc.Start(context.Background()), ShouldBeNil)

		Convey("When submitting feedback", func() {
			_, err := svc.SubmitFeedback(context.Background(), model.FeedbackForm{Name: model.Set("A")})

			Convey("Then the store error is wrapped", func() {
				So(errors.Is(err, service.ErrStore), ShouldBeTrue)
				So(errors.Is(err, boom), ShouldBeTrue)
			})
		})

		Convey("When listing or pinging", func() {
			_, listErr := svc.ListEntries(context.Background())
			pingErr := svc.Ping(context.Background())

			Convey("Then both report a store failure", func() {
				So(errors.Is(listErr, service.ErrStore), ShouldBeTrue)
				So(errors.Is(pingErr, boom), ShouldBeTrue)
			})
		})
	})
}

func TestService_SubmitGuestbook(t *testing.T) {
	form := model.GuestbookForm{Name: model.Set("A"), Email: model.Set("B"), Comment: model.Set("C")}

	Convey("Given a started service with default options", t, func() {
		svc, store := startedService()
		defer svc.Stop()
		ctx := context.Background()

		Convey("When signing the guestbook", func() {
			stored, err := svc.SubmitGuestbook(ctx, form)

			Convey("Then nothing is stored", func() {
				So(err, ShouldBeNil)
				So(stored, ShouldBeFalse)
				n, _ := store.Count(ctx)
				So(n, ShouldEqual, 0)
			})
		})
	})

	Convey("Given a service that persists the guestbook", t, func() {
		svc, store := startedService(service.WithPersistGuestbook(true))
		defer svc.Stop()
		ctx := context.Background()

		Convey("When signing the guestbook", func() {
			stored, err := svc.SubmitGuestbook(ctx, form)

			Convey("Then name and comment are stored", func() {
				So(err, ShouldBeNil)
				So(stored, ShouldBeTrue)
				entries, _ := store.List(ctx)
				So(entries, ShouldHaveLength, 1)
				So(entries[0].Line(), ShouldEqual, "A (C)")
			})
		})
	})

	Convey("Given a service that requires fields", t, func() {
		svc, _ := startedService(service.WithRequireFields(true))
		defer svc.Stop()

		Convey("When the guest name is missing", func() {
			_, err := svc.SubmitGuestbook(context.Background(), model.GuestbookForm{Comment: model.Set("C")})

			Convey("Then it is rejected", func() {
				So(errors.Is(err, service.ErrMissingFields), ShouldBeTrue)
			})
		})
	})
}
