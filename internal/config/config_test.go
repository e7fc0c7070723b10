package config_test

import (
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"
	"github.com/the12thplayer/predict/internal/config"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.Addr, convey.ShouldEqual, ":8000")
			convey.So(cfg.ModelsDir, convey.ShouldEqual, "models")
			convey.So(cfg.DataDir, convey.ShouldEqual, "data/processed")
			convey.So(cfg.AllowedOrigins, convey.ShouldContain, "http://localhost:3000")
			convey.So(cfg.LiveDataBaseURL, convey.ShouldEqual, "https://www.thesportsdb.com/api/v1/json/3")
			convey.So(cfg.LiveDataTimeoutMS, convey.ShouldEqual, 5000)
			convey.So(cfg.DefaultSeason, convey.ShouldEqual, "2024-25")
			convey.So(cfg.MaxRecommendationLimit, convey.ShouldEqual, 50)
			convey.So(cfg.ConfidenceHighCutoff, convey.ShouldEqual, 0.55)
			convey.So(cfg.ConfidenceModerateCutoff, convey.ShouldEqual, 0.40)
		})

		convey.Convey("Then the live-data timeout should convert to a duration", func() {
			convey.So(cfg.LiveDataTimeout(), convey.ShouldEqual, 5*time.Second)
		})
	})
}
