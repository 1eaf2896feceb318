package core

import (
	"log"
	"time"

	"github.com/leap-fish/necs/esync/srvsync"
)

// statsFlushSeconds is how often the stats are written.
const statsFlushSeconds = 30

type GameLoop struct {
	server   *Server
	tickRate int
	running  bool
	stopChan chan struct{}
	done     chan struct{}
}

func NewGameLoop(server *Server, tickRate int) *GameLoop {
	return &GameLoop{
		server:   server,
		tickRate: tickRate,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (g *GameLoop) Run() {
	defer close(g.done)
	g.running = true
	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	log.Printf("Game loop started at %d ticks/second", g.tickRate)

	for {
		select {
		case <-g.stopChan:
			g.running = false
			log.Println("Game loop stopped")
			return
		case <-ticker.C:
			g.tick()
		}
	}
}

// Stop ends the loop and waits for the current tick to finish.
func (g *GameLoop) Stop() {
	close(g.stopChan)
	if g.running {
		<-g.done
	}
}

func (g *GameLoop) tick() {
	g.server.Step(1 / float64(g.tickRate))

	if err := srvsync.DoSync(); err != nil {
		log.Printf("Sync error: %v", err)
	}
}

// Step runs one server tick: queued client commands, tuning reloads,
// player input, the simulation, then the mirror.
func (s *Server) Step(delta float64) {
	s.ProcessCommands()
	if s.tuning != nil && s.tuning.poll() {
		s.sim.ApplyTuning()
	}

	s.stepPlayers(delta)
	s.sim.Tick(delta)

	for _, evt := range s.mirror.sync(s.sim, s.levelName) {
		s.broadcast(evt)
	}

	st := s.sim.Stats()
	if !s.cleared && s.levelAgents > 0 && st.Agents == 0 {
		s.cleared = true
		log.Printf("[server] level %s cleared at %.1fs", s.levelName, st.Now)
		if s.stats != nil {
			s.stats.Clear(st.Now)
		}
	}

	if s.stats != nil && st.Tick%uint64(statsFlushSeconds*s.opts.TickRate) == 0 {
		s.saveStats()
	}
}
