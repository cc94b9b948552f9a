package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	desc := flag.String("desc", "menu", "component descriptor to show (basename, .yaml optional)")
	assetsDir := flag.String("assets", "assets", "directory holding sound packages; embedded sounds are used when missing")
	watch := flag.Bool("watch", false, "reload the descriptor when descriptor or script files change")
	scale := flag.Float64("scale", 1, "window scale")
	flag.Parse()

	v, err := NewViewer(*desc, *assetsDir)
	if err != nil {
		log.Fatal(err)
	}
	if *watch {
		if err := v.Watch(); err != nil {
			log.Printf("watch disabled: %v", err)
		}
	}
	defer v.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(int(baseWidth*(*scale)), int(baseHeight*(*scale)))
	ebiten.SetWindowTitle("uiviewer - " + *desc)

	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}
