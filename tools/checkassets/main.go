// Command checkassets prints the tile legend and reports configured levels
// that fail to load or use textures without an image.
package main

import (
	"flag"
	"fmt"
	"os"

	"mazerunner/internal/assets"
	"mazerunner/internal/config"
	"mazerunner/internal/logger"
	"mazerunner/internal/world"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Config file")
	legend := flag.Bool("legend", true, "Print the tile legend")
	flag.Parse()

	logger.Silence()
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	bundle, err := assets.Load(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *legend {
		printLegend(bundle.Tiles)
	}

	fmt.Println("\nLevels:")
	failed := false
	for _, r := range bundle.CheckLevels(cfg) {
		switch {
		case r.Err != nil:
			failed = true
			fmt.Printf("  FAIL %-20s %v\n", r.Name, r.Err)
		case len(r.MissingTextures) > 0:
			fmt.Printf("  WARN %-20s %dx%d, no texture for %q\n", r.Name, r.Grid.Width, r.Grid.Height, string(r.MissingTextures))
		default:
			fmt.Printf("  ok   %-20s %dx%d, %d sprites\n", r.Name, r.Grid.Width, r.Grid.Height, len(r.Grid.Spawns()))
		}
	}
	if failed {
		os.Exit(1)
	}
}

func printLegend(tm *world.TileManager) {
	fmt.Println("Tile legend:")
	for _, letter := range tm.Letters() {
		info, err := tm.Resolve(letter)
		if err != nil {
			continue
		}
		line := fmt.Sprintf("  %q  %-18s %-8s texture %q", string(letter), info.Name, info.Cell.Kind, string(info.Cell.Texture))
		if info.Sprite != 0 {
			line += fmt.Sprintf(", spawns %q", string(info.Sprite))
			if data := tm.GetTileDataByKey(info.Key); data != nil && data.AI {
				line += " (hunts)"
			}
		}
		fmt.Println(line)
	}
}
