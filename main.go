package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/config"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults are used when empty)")
	tilesPath := flag.String("tiles", "", "tile file to load and save (overrides config)")
	texturesDir := flag.String("textures", "", "texture directory (overrides config)")
	rulesPath := flag.String("rules", "", "tengo scoring script (overrides config)")
	edit := flag.Bool("edit", false, "start in the tile editor")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Printf("%v; using defaults", err)
		}
		cfg = loaded
	}
	if *tilesPath != "" {
		cfg.Paths.Tiles = *tilesPath
	}
	if *texturesDir != "" {
		cfg.Paths.Textures = *texturesDir
	}
	if *rulesPath != "" {
		cfg.Paths.Rules = *rulesPath
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Screen.Width, cfg.Screen.Height)
	ebiten.SetWindowTitle(cfg.Screen.Title)

	game, err := NewGame(cfg, *edit)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
