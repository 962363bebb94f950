//go:build ebiten

package main

import (
	"errors"
	"log"
	"os"

	"mad-life/internal/app"
	"mad-life/internal/core"
	_ "mad-life/pkg/sims/life"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

func main() {
	cfg, err := app.Load("ca", os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync() //nolint:errcheck
	zap.ReplaceGlobals(logger)

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		log.Fatalf("unknown sim %q, available: %v", cfg.Sim, core.Names())
	}

	sim := factory(cfg.SimConfig())
	sim.Reset(cfg.Seed)

	game := app.New(sim, cfg)
	size := sim.Size()

	ebiten.SetWindowTitle("mad-life: " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+cfg.HUDWidth, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
