package config

import (
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"

	"github.com/ushitora-anqou/aqchip/constant"
)

// Configuration holds the emulator options, read once from AQCHIP_*
// environment variables.
type Configuration struct {
	ClockHz     uint   `envconfig:"CLOCK_HZ"`
	WindowScale int    `envconfig:"WINDOW_SCALE"`
	TraceInstr  bool   `envconfig:"TRACE"`
	CPUProfile  string `envconfig:"CPUPROFILE"`
	LegacyShift bool   `envconfig:"LEGACY_SHIFT"`
	LegacyIndex bool   `envconfig:"LEGACY_INDEX"`
	WrapSprites bool   `envconfig:"WRAP_SPRITES"`
}

var cfg *Configuration

// Get returns the cached configuration, reading the environment on the
// first call.
func Get() (*Configuration, error) {
	if cfg != nil {
		return cfg, nil
	}

	conf := &Configuration{
		ClockHz:     constant.DEFAULT_CLOCK_HZ,
		WindowScale: 10,
	}
	if err := envconfig.Process("aqchip", conf); err != nil {
		return nil, errors.Wrap(err, "failed to process environment configuration")
	}
	if conf.ClockHz < constant.TIMER_HZ {
		return nil, errors.Errorf("AQCHIP_CLOCK_HZ must be at least %d, got %d", constant.TIMER_HZ, conf.ClockHz)
	}
	if conf.WindowScale < 1 {
		return nil, errors.Errorf("AQCHIP_WINDOW_SCALE must be positive, got %d", conf.WindowScale)
	}

	cfg = conf
	return cfg, nil
}
