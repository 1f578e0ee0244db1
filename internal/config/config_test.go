package config_test

import (
	"testing"

	"github.com/okian/folio/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":5000")
			convey.So(cfg.DatabasePath, convey.ShouldEqual, "database.db")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.RequireFields, convey.ShouldBeFalse)
			convey.So(cfg.PersistGuestbook, convey.ShouldBeFalse)
			convey.So(cfg.BusyTimeoutMS, convey.ShouldEqual, 5_000)
			convey.So(cfg.ShutdownTimeoutMS, convey.ShouldEqual, 30_000)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
