package main

import (
	"errors"
	"flag"
	"io/fs"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/profile"
	"github.com/smasonuk/hopf3d"
	"github.com/smasonuk/hopf3d/viewer"
)

var (
	configPath string
	doProf     bool
)

func main() {
	flag.StringVar(&configPath, "config", "./config.hjson", "Path to HJSON config file")
	flag.BoolVar(&doProf, "prof", false, "Enable CPU profiling (debug)")
	flag.Parse()

	if doProf {
		defer profile.Start().Stop()
	}

	conf, err := hopf3d.LoadConfig(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("No config at %s, using defaults", configPath)
		conf = hopf3d.DefaultConfig()
	} else if err != nil {
		log.Fatal(err)
	}

	app, err := hopf3d.NewApp(conf)
	if err != nil {
		log.Fatal(err)
	}
	defer app.Close()

	ebiten.SetWindowSize(conf.WindowWidth, conf.WindowHeight)
	ebiten.SetWindowTitle("Hopf Fibration")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(viewer.NewGame(app, conf.WindowWidth, conf.WindowHeight)); err != nil {
		log.Fatal(err)
	}
}
