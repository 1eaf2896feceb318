package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/automoto/doomerang-crypt/assets"
	"github.com/automoto/doomerang-crypt/config"
	"github.com/automoto/doomerang-crypt/scenes"
	"github.com/automoto/doomerang-crypt/shared/leveldata"
	"github.com/automoto/doomerang-crypt/shared/protocol"
	"github.com/hajimehoshi/ebiten/v2"
)

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	scene Scene
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	return config.Display.Width, config.Display.Height
}

func main() {
	level := flag.String("level", "", "Level to load (default: first level found)")
	connect := flag.String("connect", "", "Server address host:port; empty runs the simulation locally")
	name := flag.String("name", "player", "Player name sent to the server")
	spectate := flag.Bool("spectate", false, "Join the server as a spectator")
	tuning := flag.String("tuning", "", "YAML tuning file applied at startup")
	movement := flag.String("movement", "", "Agent movement mode: per_second or per_tick")
	flag.Parse()

	if *movement != "" {
		mode, ok := config.ParseMovement(*movement)
		if !ok {
			log.Fatalf("Unknown movement mode %q", *movement)
		}
		config.Sim.Movement = mode
	}
	if *tuning != "" {
		o, err := config.LoadOverrides(*tuning)
		if err != nil {
			log.Fatalf("Failed to load tuning: %v", err)
		}
		o.Apply()
	}

	// Register network components for client-side deserialization
	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("Failed to register network components: %v", err)
	}

	levels, names, err := leveldata.LoadAll(assets.FS, "levels")
	if err != nil {
		log.Fatalf("Failed to load levels: %v", err)
	}

	game := &Game{}
	if *connect != "" {
		game.scene = scenes.NewRemoteScene(*connect, *name, *spectate, levels)
	} else {
		l, err := pickLevel(levels, names, *level)
		if err != nil {
			log.Fatal(err)
		}
		game.scene = scenes.NewLocalScene(l)
	}

	ebiten.SetWindowSize(config.Display.Width, config.Display.Height)
	ebiten.SetWindowTitle("Doomerang Crypt")
	err = ebiten.RunGame(game)
	if c, ok := game.scene.(interface{ Close() }); ok {
		c.Close()
	}
	if err != nil {
		log.Fatal(err)
	}
}

func pickLevel(levels map[string]*leveldata.Level, names []string, want string) (*leveldata.Level, error) {
	if want == "" {
		return levels[names[0]], nil
	}
	if l, ok := levels[want]; ok {
		return l, nil
	}
	return nil, fmt.Errorf("unknown level %q (have %s)", want, strings.Join(names, ", "))
}
