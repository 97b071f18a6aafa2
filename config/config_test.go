package config

import (
	"os"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/ushitora-anqou/aqchip/constant"
)

func TestSpec(t *testing.T) {
	convey.Convey("Given an environment with no environment variables set", t, func() {
		os.Clearenv()
		cfg, err := Get()

		convey.Convey("When the config values are retrieved", func() {
			convey.Convey("Then there should be no error returned", func() {
				convey.So(err, convey.ShouldBeNil)
			})

			convey.Convey("The values should be set to the expected defaults", func() {
				convey.So(cfg.ClockHz, convey.ShouldEqual, constant.DEFAULT_CLOCK_HZ)
				convey.So(cfg.WindowScale, convey.ShouldEqual, 10)
				convey.So(cfg.TraceInstr, convey.ShouldBeFalse)
				convey.So(cfg.CPUProfile, convey.ShouldEqual, "")
				convey.So(cfg.LegacyShift, convey.ShouldBeFalse)
				convey.So(cfg.LegacyIndex, convey.ShouldBeFalse)
				convey.So(cfg.WrapSprites, convey.ShouldBeFalse)
			})

			convey.Convey("Then a second call returns the cached config", func() {
				cfg2, err := Get()
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg2, convey.ShouldPointTo, cfg)
			})
		})
	})
}

func TestValidation(t *testing.T) {
	convey.Convey("Given a clock speed below the timer frequency", t, func() {
		os.Clearenv()
		cfg = nil
		os.Setenv("AQCHIP_CLOCK_HZ", "10")

		convey.Convey("Then Get returns an error", func() {
			_, err := Get()
			convey.So(err, convey.ShouldNotBeNil)
		})
	})

	convey.Convey("Given a non-positive window scale", t, func() {
		os.Clearenv()
		cfg = nil
		os.Setenv("AQCHIP_WINDOW_SCALE", "0")

		convey.Convey("Then Get returns an error", func() {
			_, err := Get()
			convey.So(err, convey.ShouldNotBeNil)
		})
	})

	convey.Convey("Given explicit overrides", t, func() {
		os.Clearenv()
		cfg = nil
		os.Setenv("AQCHIP_CLOCK_HZ", "1200")
		os.Setenv("AQCHIP_LEGACY_SHIFT", "true")

		convey.Convey("Then Get honors them", func() {
			got, err := Get()
			convey.So(err, convey.ShouldBeNil)
			convey.So(got.ClockHz, convey.ShouldEqual, 1200)
			convey.So(got.LegacyShift, convey.ShouldBeTrue)
		})
	})
}
