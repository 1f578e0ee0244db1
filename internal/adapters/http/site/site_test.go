package site

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/okian/folio/internal/adapters/http/view"
	"github.com/okian/folio/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestSiteHandler(t *testing.T) {
	Convey("Given a mux with the site registered", t, func() {
		mux := http.NewServeMux()
		Register(context.Background(), mux, view.MustNew())

		serve := func(method, path string) *httptest.ResponseRecorder {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(method, path, nil))
			return w
		}

		Convey("Then every static page renders HTML", func() {
			for _, path := range []string{"/", "/about", "/experience", "/skills", "/projects", "/contact"} {
				w := serve(http.MethodGet, path)
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, "text/html; charset=utf-8")
				So(w.Body.String(), ShouldContainSubstring, "<nav>")
			}
		})

		Convey("Then the home page has the hero section", func() {
			w := serve(http.MethodGet, "/")
			So(w.Body.String(), ShouldContainSubstring, `class="hero"`)
		})

		Convey("Then the stylesheet is served", func() {
			w := serve(http.MethodGet, "/static/style.css")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/css")
		})

		Convey("Then unknown paths are not found", func() {
			So(serve(http.MethodGet, "/some-asset").Code, ShouldEqual, http.StatusNotFound)
			So(serve(http.MethodGet, "/static/missing.css").Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("Then POST to a static page is not allowed", func() {
			So(serve(http.MethodPost, "/about").Code, ShouldEqual, http.StatusMethodNotAllowed)
		})

		Convey("Then every response carries a request id", func() {
			So(serve(http.MethodGet, "/about").Header().Get("X-Request-ID"), ShouldNotBeEmpty)
		})
	})
}

func TestSiteErrors(t *testing.T) {
	Convey("Given site error constants", t, func() {
		So(ErrServe, ShouldNotBeNil)
		So(ErrServe.Error(), ShouldEqual, "site serve failed")
	})
}

func TestSiteHandlerWithNilArguments(t *testing.T) {
	Convey("Given missing dependencies", t, func() {
		Convey("Then a nil mux panics", func() {
			So(func() { Register(context.Background(), nil, view.MustNew()) }, ShouldPanic)
		})

		Convey("Then a nil renderer panics", func() {
			So(func() { Register(context.Background(), http.NewServeMux(), nil) }, ShouldPanic)
		})
	})
}
