package smoke

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/folio/internal/adapters/http/api"
	"github.com/okian/folio/internal/adapters/http/site"
	"github.com/okian/folio/internal/adapters/http/view"
	service "github.com/okian/folio/internal/app"
	"github.com/okian/folio/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// newSite serves the real handlers on an in-memory store.
func newSite() *httptest.Server {
	svc := service.New()
	So(svc.Start(context.Background()), ShouldBeNil)

	renderer := view.MustNew()
	mux := http.NewServeMux()
	site.Register(context.Background(), mux, renderer)
	api.NewServer(svc, svc, renderer).Register(context.Background(), mux)
	return httptest.NewServer(mux)
}

func TestRun(t *testing.T) {
	Convey("Given a running site", t, func() {
		srv := newSite()
		defer srv.Close()

		output := filepath.Join(t.TempDir(), "out", "subs.json")
		cfg := &Config{
			BaseURL:     srv.URL,
			Submissions: 25,
			Workers:     4,
			Timeout:     5 * time.Second,
			OutputFile:  output,
		}

		Convey("When running the smoke checks", func() {
			stats, err := Run(context.Background(), cfg)

			Convey("Then every check passes", func() {
				So(err, ShouldBeNil)
				So(stats.Generated, ShouldEqual, 25)
				So(stats.Submitted, ShouldEqual, 25)
				So(stats.Successful, ShouldEqual, 25)
				So(stats.Failed, ShouldEqual, 0)
				So(stats.Listed, ShouldEqual, 25)
				So(stats.PagesChecked, ShouldEqual, len(staticPages))
			})

			Convey("Then the submissions are saved", func() {
				data, err := os.ReadFile(output)
				So(err, ShouldBeNil)
				var subs []Submission
				So(json.Unmarshal(data, &subs), ShouldBeNil)
				So(subs, ShouldHaveLength, 25)
			})
		})

		Convey("When workers is zero", func() {
			cfg.Workers = 0
			_, err := Run(context.Background(), cfg)

			Convey("Then the config is rejected", func() {
				So(errors.Is(err, ErrConfig), ShouldBeTrue)
			})
		})
	})

	Convey("Given an unhealthy site", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		Convey("When running", func() {
			_, err := Run(context.Background(), &Config{BaseURL: srv.URL, Submissions: 1, Workers: 1, Timeout: time.Second})

			Convey("Then it stops at the health check", func() {
				So(errors.Is(err, ErrUnhealthy), ShouldBeTrue)
			})
		})
	})
}

func TestMissingLines(t *testing.T) {
	Convey("Given a listing body", t, func() {
		subs := []Submission{{Name: "a", Comment: "1"}, {Name: "<b>", Comment: "2"}, {Name: "c", Comment: "3"}}
		body := "x (y)<br>a (1)<br>&lt;b&gt; (2)"

		Convey("Then only unlisted submissions are missing", func() {
			So(missingLines(body, subs), ShouldResemble, []string{"c (3)"})
		})

		Convey("Then an empty body misses everything", func() {
			So(missingLines("", subs), ShouldHaveLength, 3)
		})
	})
}

func TestGenerateSubmissions(t *testing.T) {
	Convey("Given a run id", t, func() {
		stats := &Stats{}

		Convey("When generating", func() {
			subs, err := generateSubmissions(context.Background(), "run1", 5, stats)

			Convey("Then names are unique and tagged", func() {
				So(err, ShouldBeNil)
				So(stats.Generated, ShouldEqual, 5)
				seen := map[string]bool{}
				for _, s := range subs {
					So(s.Name, ShouldStartWith, "smoke-run1-")
					So(seen[s.Name], ShouldBeFalse)
					seen[s.Name] = true
				}
			})
		})

		Convey("When the count is not positive", func() {
			_, err := generateSubmissions(context.Background(), "run1", 0, stats)
			So(errors.Is(err, ErrConfig), ShouldBeTrue)
		})

		Convey("When the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := generateSubmissions(ctx, "run1", 3, stats)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestNewRunID(t *testing.T) {
	Convey("Given two run ids", t, func() {
		a, b := newRunID(), newRunID()
		So(a, ShouldHaveLength, 8)
		So(a, ShouldNotEqual, b)
	})
}
