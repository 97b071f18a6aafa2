//go:build ebiten

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ushitora-anqou/aqchip/config"
	"github.com/ushitora-anqou/aqchip/constant"
	"github.com/ushitora-anqou/aqchip/mmu"
	"github.com/ushitora-anqou/aqchip/util"
	"github.com/ushitora-anqou/aqchip/window"
)

// Same layout as the SDL frontend: 1234/QWER/ASDF/ZXCV.
var keymap = map[ebiten.Key]uint8{
	ebiten.Key1: 0x1, ebiten.Key2: 0x2, ebiten.Key3: 0x3, ebiten.Key4: 0xc,
	ebiten.KeyQ: 0x4, ebiten.KeyW: 0x5, ebiten.KeyE: 0x6, ebiten.KeyR: 0xd,
	ebiten.KeyA: 0x7, ebiten.KeyS: 0x8, ebiten.KeyD: 0x9, ebiten.KeyF: 0xe,
	ebiten.KeyZ: 0xa, ebiten.KeyX: 0x0, ebiten.KeyC: 0xb, ebiten.KeyV: 0xf,
}

type Game struct {
	aqchip *AqChip
	wind   *window.EbitenWindow
}

func NewGame(wind *window.EbitenWindow, aqchip *AqChip) (*Game, error) {
	game := &Game{
		aqchip,
		wind,
	}
	return game, nil
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return constant.LCD_WIDTH, constant.LCD_HEIGHT
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		os.Exit(0)
	}

	event := &window.WindowEvent{}
	for ebitenKey, key := range keymap {
		if ebiten.IsKeyPressed(ebitenKey) {
			event.Keys |= (1 << key)
		}
	}

	return g.aqchip.Update(event)
}

func (g *Game) Draw(screen *ebiten.Image) {
	pixels := g.wind.Render()
	screen.ReplacePixels(pixels)
}

func runEbiten(rom []uint8, cfg *config.Configuration) error {
	if err := window.EbitenInitialize(cfg.WindowScale); err != nil {
		return err
	}

	wind, err := window.NewEbitenWindow()
	if err != nil {
		return err
	}

	aqchip, err := NewAqChip(wind, rom, cfg)
	if err != nil {
		return err
	}

	game, err := NewGame(wind, aqchip)
	if err != nil {
		return err
	}

	return ebiten.RunGame(game)
}

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

	return runEbiten(rom.Data(), cfg)
}

func main() {
	err := run()
	if err != nil {
		log.Fatal(err)
	}
}
