package core

import (
	"fmt"
	"io/fs"
	"log"
	"sync"

	cfg "github.com/automoto/doomerang-crypt/config"
	"github.com/automoto/doomerang-crypt/shared/leveldata"
	"github.com/automoto/doomerang-crypt/shared/messages"
	"github.com/automoto/doomerang-crypt/sim"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/yohamta/donburi"
)

// Options configures a Server.
type Options struct {
	Name         string
	Version      string // required client version, empty accepts any
	TickRate     int
	MoveSpeed    float64 // player units per second
	FireCooldown float64 // seconds between shots per player
	Level        string  // initial level, empty picks the first
	Levels       fs.FS   // must contain a levels/ directory
	TuningPath   string  // optional YAML tuning file, hot reloaded
	Stats        *StatsStore
}

// Server hosts one simulation and mirrors it to websocket clients.
type Server struct {
	opts      Options
	sim       *sim.Simulation
	world     donburi.World // mirror world synced by esync
	mirror    *mirror
	loop      *GameLoop
	transport *transports.WsServerTransport
	tuning    *tuningReloader
	stats     *StatsStore

	levels      map[string]*leveldata.Level
	levelNames  []string
	levelName   string
	levelAgents int
	cleared     bool

	// Router callbacks run on necs goroutines; they only queue commands.
	pending []func()
	pendMu  sync.Mutex

	// Track which network client owns which session
	sessions map[peer]*session
	mu       sync.RWMutex
}

// NewServer loads the levels, builds the simulation and installs the
// router callbacks. Nothing listens until Start.
func NewServer(opts Options) (*Server, error) {
	s, err := newServer(opts)
	if err != nil {
		return nil, err
	}

	// Set up the world for esync
	srvsync.UseEsync(s.world)

	s.setupRouterCallbacks()

	return s, nil
}

func newServer(opts Options) (*Server, error) {
	if opts.TickRate <= 0 {
		opts.TickRate = cfg.Sim.TickRate
	}
	if opts.MoveSpeed <= 0 {
		opts.MoveSpeed = 4
	}
	if opts.FireCooldown <= 0 {
		opts.FireCooldown = 0.25
	}

	levels, names, err := LoadAllServerLevels(opts.Levels)
	if err != nil {
		return nil, err
	}

	// Tuning is applied before the simulation copies its pool config.
	var tuning *tuningReloader
	if opts.TuningPath != "" {
		tuning, err = newTuningReloader(opts.TuningPath)
		if err != nil {
			return nil, err
		}
	}

	world := donburi.NewWorld()
	s := &Server{
		opts:       opts,
		sim:        sim.New(sim.Options{}),
		world:      world,
		mirror:     newMirror(world),
		tuning:     tuning,
		stats:      opts.Stats,
		levels:     levels,
		levelNames: names,
		sessions:   make(map[peer]*session),
	}
	s.loop = NewGameLoop(s, opts.TickRate)

	initial := opts.Level
	if initial == "" {
		initial = names[0]
	}
	if err := s.ChangeLevel(initial); err != nil {
		if tuning != nil {
			tuning.Close()
		}
		return nil, err
	}
	return s, nil
}

// Start begins the server on the given port
func (s *Server) Start(port uint) error {
	go s.loop.Run()

	s.transport = transports.NewWsServerTransport(port, "", nil)
	return s.transport.Start()
}

// Stop halts the loop and flushes the stats.
func (s *Server) Stop() {
	s.loop.Stop()
	if s.tuning != nil {
		s.tuning.Close()
	}
	s.saveStats()
}

func (s *Server) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		log.Printf("[server] client connected: %s", client.Id())
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		if err != nil {
			log.Printf("[server] client %s disconnected with error: %v", client.Id(), err)
		} else {
			log.Printf("[server] client %s disconnected", client.Id())
		}
		s.enqueue(func() { s.leave(client) })
	})

	router.On(func(client *router.NetworkClient, req messages.JoinRequest) {
		s.enqueue(func() { s.join(client, req) })
	})

	router.On(func(client *router.NetworkClient, input messages.PlayerInput) {
		s.enqueue(func() { s.applyInput(client, input) })
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		log.Printf("[server] client error: %v", err)
	})
}

func (s *Server) enqueue(cmd func()) {
	s.pendMu.Lock()
	s.pending = append(s.pending, cmd)
	s.pendMu.Unlock()
}

// ProcessCommands runs the queued client commands on the loop goroutine.
func (s *Server) ProcessCommands() {
	s.pendMu.Lock()
	cmds := s.pending
	s.pending = nil
	s.pendMu.Unlock()

	for _, cmd := range cmds {
		cmd()
	}
}

// ChangeLevel swaps the simulated level. Connected players are moved to
// the new level's spawn points.
func (s *Server) ChangeLevel(name string) error {
	level, ok := s.levels[name]
	if !ok {
		return fmt.Errorf("unknown level %q", name)
	}

	if s.levelName != "" {
		s.saveStats()
	}

	agents := s.sim.LoadLevel(level)
	s.mirror.reset()
	s.levelName = name
	s.levelAgents = len(agents)
	s.cleared = false
	if s.stats != nil {
		s.stats.BeginRun(name, s.sim.Stats())
	}

	s.mu.RLock()
	for _, sess := range s.sessionsByIndex() {
		if sess.spectator {
			continue
		}
		if pos, ok := s.sim.PlayerSpawn(sess.index); ok {
			s.sim.MovePlayer(sess.player, pos)
		}
	}
	s.mu.RUnlock()

	log.Printf("[server] level %s loaded with %d agents", name, len(agents))
	s.broadcast(messages.LevelChangeEvent{Level: name, Agents: len(agents)})
	return nil
}

// Level returns the name of the running level.
func (s *Server) Level() string {
	return s.levelName
}

// Levels lists the loaded level names in sorted order.
func (s *Server) Levels() []string {
	return s.levelNames
}

// World returns the mirror world
func (s *Server) World() donburi.World {
	return s.world
}

// Sim returns the hosted simulation. Only the loop goroutine may use it
// while the server is running.
func (s *Server) Sim() *sim.Simulation {
	return s.sim
}

// PlayerCount returns the number of joined clients
func (s *Server) PlayerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Server) broadcast(msg any) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.broadcastLocked(msg)
}
