package main

import (
	"flag"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/automoto/doomerang-crypt/assets"
	cfg "github.com/automoto/doomerang-crypt/config"
	"github.com/automoto/doomerang-crypt/server/core"
	"github.com/automoto/doomerang-crypt/shared/netconfig"
	"github.com/automoto/doomerang-crypt/shared/protocol"
)

func main() {
	port := flag.Uint("port", netconfig.DefaultPort, "Server port")
	tickRate := flag.Int("tickrate", netconfig.DefaultTickRate, "Server tick rate (updates per second)")
	name := flag.String("name", "Crypt Server", "Server display name")
	version := flag.String("version", netconfig.ProtocolVersion, "Required client version (empty = accept any)")
	level := flag.String("level", "", "Initial level (default: first level found)")
	levelsDir := flag.String("assets", "", "Directory containing levels/ (default: bundled levels)")
	tuning := flag.String("tuning", "", "YAML tuning file, reloaded on change")
	movement := flag.String("movement", "", "Agent movement mode: per_second or per_tick")
	moveSpeed := flag.Float64("movespeed", 4.0, "Player movement speed")
	noStats := flag.Bool("nostats", false, "Disable persisted level stats")
	flag.Parse()

	if *movement != "" {
		mode, ok := cfg.ParseMovement(*movement)
		if !ok {
			log.Fatalf("Unknown movement mode %q", *movement)
		}
		cfg.Sim.Movement = mode
	}

	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("Failed to register components: %v", err)
	}

	var levels fs.FS = assets.FS
	if *levelsDir != "" {
		levels = os.DirFS(*levelsDir)
	}

	var stats *core.StatsStore
	if !*noStats {
		var err error
		stats, err = core.OpenStatsStore("doomerang-crypt")
		if err != nil {
			log.Printf("Warning: Could not initialize stats: %v", err)
		}
	}

	server, err := core.NewServer(core.Options{
		Name:       *name,
		Version:    *version,
		TickRate:   *tickRate,
		MoveSpeed:  *moveSpeed,
		Level:      *level,
		Levels:     levels,
		TuningPath: *tuning,
		Stats:      stats,
	})
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down server...")
		server.Stop()
		os.Exit(0)
	}()

	log.Printf("Starting crypt server %q on port %d (tick rate: %d/s, level: %s, movement: %s)",
		*name, *port, *tickRate, server.Level(), cfg.Sim.Movement)
	if err := server.Start(*port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
