package main

import (
	"flag"
	"log"

	"chosenoffset.com/kaleidoscope/internal/dialog"
	"chosenoffset.com/kaleidoscope/internal/game"
	ebitenrender "chosenoffset.com/kaleidoscope/internal/render/ebiten"
	"chosenoffset.com/kaleidoscope/internal/simulation"
)

func main() {
	configPath := flag.String("config", "", "Path to a JSON config file")
	flag.Parse()

	cfg, err := simulation.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize the renderer backend (ebiten)
	renderer, err := ebitenrender.NewRenderer()
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	inputMgr := ebitenrender.NewInputManager()
	engine := ebitenrender.NewEngine()

	g := game.New(cfg, renderer, inputMgr)
	g.PickPath = dialog.SaveFile

	engine.SetWindowSize(g.ScreenWidth, g.ScreenHeight)
	engine.SetWindowTitle("Angular Mirrors")
	engine.SetWindowResizable(true)

	log.Println("Starting viewer...")
	if err := engine.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
