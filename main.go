//go:build !ebiten

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"

	"github.com/ushitora-anqou/aqchip/config"
	"github.com/ushitora-anqou/aqchip/constant"
	"github.com/ushitora-anqou/aqchip/mmu"
	"github.com/ushitora-anqou/aqchip/util"
	"github.com/ushitora-anqou/aqchip/window"
)

func run() error {
	// Parse options and arguments
	flag.Parse()
	if flag.NArg() < 1 {
		return fmt.Errorf("Usage: %s PATH", os.Args[0])
	}
	romPath := flag.Arg(0)

	cfg, err := config.Get()
	if err != nil {
		return err
	}
	if cfg.TraceInstr {
		util.EnableTrace()
	}
	if cfg.CPUProfile != "" {
		file, err := os.Create(cfg.CPUProfile)
		if err != nil {
			return err
		}
		defer file.Close()
		if err := pprof.StartCPUProfile(file); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	rom, err := mmu.NewROM(romPath)
	if err != nil {
		return err
	}

	// Initialize SDL
	if err := window.SDLInitialize(); err != nil {
		return err
	}

	// Create a window
	wind, err := window.NewSDLWindow(cfg.WindowScale)
	if err != nil {
		return err
	}

	// Go emulation
	aqchip, err := NewAqChip(wind, rom.Data(), cfg)
	if err != nil {
		return err
	}

	synchronizer := window.NewSDLTimeSynchronizer(constant.TIMER_HZ)
	for {
		escape, event := wind.HandleEvents()
		if escape {
			break
		}
		if err := aqchip.Update(event); err != nil {
			return err
		}
		if err := wind.UpdateScreen(); err != nil {
			return err
		}
		synchronizer.MaySleep()
	}
	return nil
}

func main() {
	err := run()
	if err != nil {
		log.Fatal(err)
	}
}
