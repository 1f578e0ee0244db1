package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/okian/folio/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestRequestID(t *testing.T) {
	Convey("Given a handler that reads the request id", t, func() {
		var seen string
		h := RequestID(func(w http.ResponseWriter, r *http.Request) {
			seen = logger.RequestID(r.Context())
		})

		Convey("When the client sends an id", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(RequestIDHeader, "abc-123")
			rec := httptest.NewRecorder()
			h(rec, req)

			Convey("Then it is reused and echoed", func() {
				So(seen, ShouldEqual, "abc-123")
				So(rec.Header().Get(RequestIDHeader), ShouldEqual, "abc-123")
			})
		})

		Convey("When the client sends no id", func() {
			rec := httptest.NewRecorder()
			h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			Convey("Then one is generated", func() {
				So(seen, ShouldNotBeEmpty)
				So(seen, ShouldHaveLength, 36)
				So(rec.Header().Get(RequestIDHeader), ShouldEqual, seen)
			})
		})
	})
}

func TestMetrics(t *testing.T) {
	Convey("Given a handler that writes a status", t, func() {
		h := Wrap(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte("bad"))
		}, "test")

		Convey("When serving", func() {
			rec := httptest.NewRecorder()
			h(rec, httptest.NewRequest(http.MethodPost, "/x", nil))

			Convey("Then the response passes through", func() {
				So(rec.Code, ShouldEqual, http.StatusUnprocessableEntity)
				So(rec.Body.String(), ShouldEqual, "bad")
			})
		})
	})
}

func TestErrorClassification(t *testing.T) {
	Convey("Given status codes", t, func() {
		So(errorType(500), ShouldEqual, "server_error")
		So(errorType(503), ShouldEqual, "server_error")
		So(errorType(422), ShouldEqual, "validation")
		So(errorType(404), ShouldEqual, "not_found")
		So(errorType(400), ShouldEqual, "client_error")
		So(errorType(200), ShouldEqual, "unknown")

		So(errorSeverity(500), ShouldEqual, "high")
		So(errorSeverity(400), ShouldEqual, "medium")
		So(errorSeverity(200), ShouldEqual, "low")
	})
}
