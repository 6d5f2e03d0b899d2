package main

import (
	"flag"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	levelName := flag.String("level", "mission1", "level name in levels/ (basename, no extension)")
	debug := flag.Bool("debug", false, "show frame stats")
	mute := flag.Bool("mute", false, "disable all audio")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	w, h := ebiten.Monitor().Size()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("lilja")

	game, err := NewGame(*levelName, *debug, *mute)
	if err != nil {
		log.Error("game setup failed", "err", err)
		os.Exit(1)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
