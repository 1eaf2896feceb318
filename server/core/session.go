package core

import (
	"cmp"
	"log"
	"slices"

	"github.com/automoto/doomerang-crypt/shared/gamemath"
	"github.com/automoto/doomerang-crypt/shared/messages"
	"github.com/automoto/doomerang-crypt/shared/netconfig"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
)

// peer is the part of a necs client the server talks to.
type peer interface {
	SendMessage(msg any) error
}

type session struct {
	name      string
	index     int
	spectator bool
	player    donburi.Entity
	netID     esync.NetworkId

	input    messages.PlayerInput
	lastFire float64
}

func (s *Server) join(client peer, req messages.JoinRequest) {
	s.mu.RLock()
	_, exists := s.sessions[client]
	s.mu.RUnlock()
	if exists {
		return
	}

	if s.opts.Version != "" && req.Version != s.opts.Version {
		log.Printf("[server] rejecting %q: version %q, want %q", req.PlayerName, req.Version, s.opts.Version)
		if err := client.SendMessage(messages.JoinRejected{Reason: "version mismatch"}); err != nil {
			log.Printf("[server] send reject failed: %v", err)
		}
		return
	}

	sess := &session{
		name:      req.PlayerName,
		spectator: req.Spectate,
		player:    donburi.Null,
		lastFire:  -1e9,
	}
	if sess.name == "" {
		sess.name = "player"
	}

	if !sess.spectator {
		sess.index = s.nextPlayerIndex()
		pos, ok := s.sim.PlayerSpawn(sess.index)
		if !ok {
			pos = gamemath.V3(1, s.sim.GroundHeight(1, 1), 1)
		}
		sess.player = s.sim.AddPlayer(sess.name, sess.index, pos)
		sess.netID = s.mirror.trackPlayer(sess.player)
	}

	s.mu.Lock()
	s.sessions[client] = sess
	s.mu.Unlock()

	err := client.SendMessage(messages.JoinAccepted{
		NetworkID:  sess.netID,
		ServerName: s.opts.Name,
		TickRate:   s.opts.TickRate,
		Level:      s.levelName,
	})
	if err != nil {
		log.Printf("[server] send join accepted failed: %v", err)
	}
	log.Printf("[server] %s joined (spectator=%v)", sess.name, sess.spectator)
}

func (s *Server) nextPlayerIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	used := make(map[int]bool, len(s.sessions))
	for _, sess := range s.sessions {
		if !sess.spectator {
			used[sess.index] = true
		}
	}
	i := 0
	for used[i] {
		i++
	}
	return i
}

func (s *Server) leave(client peer) {
	s.mu.Lock()
	sess, exists := s.sessions[client]
	if exists {
		delete(s.sessions, client)
	}
	s.mu.Unlock()

	if !exists {
		return
	}
	if sess.player != donburi.Null {
		s.sim.RemovePlayer(sess.player)
		log.Printf("[server] player %s removed", sess.name)
	}
}

func (s *Server) applyInput(client peer, input messages.PlayerInput) {
	s.mu.RLock()
	sess, exists := s.sessions[client]
	s.mu.RUnlock()
	if !exists || sess.spectator {
		return
	}
	// Late packets must not roll input back.
	if input.Sequence < sess.input.Sequence {
		return
	}
	sess.input = input
}

// stepPlayers moves every joined player by its latest input and fires
// when asked.
func (s *Server) stepPlayers(delta float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sess := range s.sessionsByIndex() {
		if sess.spectator {
			continue
		}
		pos, ok := s.playerPosition(sess.player)
		if !ok {
			continue
		}

		x, z := netconfig.MoveAxes(sess.input.Actions)
		move := gamemath.V3(x, 0, z).Normalize().Scale(s.opts.MoveSpeed * delta)
		next := pos.Add(move)
		if level := s.sim.Level(); level != nil {
			next.X = gamemath.Clamp(next.X, 0, level.Width)
			next.Z = gamemath.Clamp(next.Z, 0, level.Depth)
		}
		next.Y = s.sim.GroundHeight(next.X, next.Z)
		s.sim.MovePlayer(sess.player, next)

		if sess.input.Actions[netconfig.ActionFire] && s.sim.Now()-sess.lastFire >= s.opts.FireCooldown {
			s.fire(sess, next)
		}
	}
}

// sessionsByIndex lists sessions in player index order so shots and
// moves do not depend on map iteration. Callers hold mu.
func (s *Server) sessionsByIndex() []*session {
	out := make([]*session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess)
	}
	slices.SortFunc(out, func(a, b *session) int {
		return cmp.Compare(a.index, b.index)
	})
	return out
}

func (s *Server) fire(sess *session, from gamemath.Vec3) {
	dir := gamemath.V3(sess.input.AimX, 0, sess.input.AimZ)
	if dir.LengthSq() == 0 {
		return
	}
	// Hit spheres sit at the agents' feet, so shots fly at ground height.
	origin := from
	s.sim.Fire(origin, dir)
	sess.lastFire = s.sim.Now()

	dir = dir.Normalize()
	s.broadcastLocked(messages.ProjectileFiredEvent{
		OwnerNetworkID: uint(sess.netID),
		X:              origin.X,
		Y:              origin.Y,
		Z:              origin.Z,
		DirX:           dir.X,
		DirZ:           dir.Z,
	})
}

func (s *Server) playerPosition(id donburi.Entity) (gamemath.Vec3, bool) {
	for _, p := range s.sim.Players() {
		if p.ID == id {
			return p.Position, true
		}
	}
	return gamemath.Vec3{}, false
}

// broadcastLocked is broadcast for callers already holding mu.
func (s *Server) broadcastLocked(msg any) {
	for client, sess := range s.sessions {
		if err := client.SendMessage(msg); err != nil {
			log.Printf("[server] send to %s failed: %v", sess.name, err)
		}
	}
}
