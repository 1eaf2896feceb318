package scenes

import (
	"fmt"
	"image/color"
	"log"
	"sync"
	"time"

	cfg "github.com/automoto/doomerang-crypt/config"
	"github.com/automoto/doomerang-crypt/network"
	"github.com/automoto/doomerang-crypt/shared/gamemath"
	"github.com/automoto/doomerang-crypt/shared/leveldata"
	"github.com/automoto/doomerang-crypt/shared/messages"
	"github.com/automoto/doomerang-crypt/shared/netcomponents"
	"github.com/automoto/doomerang-crypt/shared/netconfig"
	"github.com/hajimehoshi/ebiten/v2"
)

// RemoteScene draws a server's mirror and sends this client's input.
type RemoteScene struct {
	netClient  *network.Client
	address    string
	playerName string
	spectate   bool
	levels     map[string]*leveldata.Level
	view       view
	interp     *network.Interpolator
	frame      network.Frame
	deaths     []deathFlash
	shots      int
	seq        uint32
	once       sync.Once
}

type deathFlash struct {
	pos   gamemath.Vec3
	until time.Time
}

// NewRemoteScene dials address on the first Update. levels are used to
// draw the level the server reports.
func NewRemoteScene(address, playerName string, spectate bool, levels map[string]*leveldata.Level) *RemoteScene {
	return &RemoteScene{
		netClient:  network.NewClient(),
		address:    address,
		playerName: playerName,
		spectate:   spectate,
		levels:     levels,
		view:       newView(),
	}
}

func (rs *RemoteScene) connect() {
	rs.netClient.Connect(rs.address, netconfig.ProtocolVersion, rs.playerName, rs.spectate)
}

// Close drops the connection.
func (rs *RemoteScene) Close() {
	rs.netClient.Close()
}

func (rs *RemoteScene) Update() {
	rs.once.Do(rs.connect)
	if state, _ := rs.netClient.Status(); state != network.StateJoinedGame {
		return
	}
	if rs.interp == nil {
		rs.interp = network.NewInterpolator(rs.netClient.Session().TickRate)
	}

	if snap := rs.netClient.LatestSnapshot(); snap != nil {
		rs.interp.Push(network.DecodeSnapshot(*snap))
	}
	rs.interp.Advance(1 / float64(ebiten.TPS()))
	rs.frame = rs.interp.Frame()

	for _, evt := range rs.netClient.Events() {
		switch evt := evt.(type) {
		case messages.DeathEvent:
			rs.deaths = append(rs.deaths, deathFlash{
				pos:   gamemath.V3(evt.X, evt.Y, evt.Z),
				until: time.Now().Add(time.Second),
			})
		case messages.ProjectileFiredEvent:
			rs.shots++
		case messages.LevelChangeEvent:
			log.Printf("[client] level changed to %s (%d agents)", evt.Level, evt.Agents)
		}
	}

	if !rs.spectate {
		rs.sendInput()
	}
}

func (rs *RemoteScene) sendInput() {
	rs.seq++
	input := messages.NewPlayerInput(rs.seq)
	input.Timestamp = time.Now().UnixMilli()

	keys := map[ebiten.Key]netconfig.ActionID{
		ebiten.KeyW: netconfig.ActionMoveBack, // screen up is -z
		ebiten.KeyS: netconfig.ActionMoveForward,
		ebiten.KeyA: netconfig.ActionMoveLeft,
		ebiten.KeyD: netconfig.ActionMoveRight,
	}
	for key, action := range keys {
		if ebiten.IsKeyPressed(key) {
			input.Actions[action] = true
		}
	}

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if me, ok := rs.localPlayer(); ok {
			cursor := rs.view.toWorld(ebiten.CursorPosition())
			input.Actions[netconfig.ActionFire] = true
			input.AimX = cursor.X - me.Position.X
			input.AimZ = cursor.Z - me.Position.Z
		}
	}

	if err := rs.netClient.SendMessage(input); err != nil {
		log.Printf("[client] send input failed: %v", err)
	}
}

func (rs *RemoteScene) localPlayer() (network.RemotePlayer, bool) {
	id := rs.netClient.Session().NetworkID
	for _, p := range rs.frame.Players {
		if p.ID == id {
			return p, true
		}
	}
	return network.RemotePlayer{}, false
}

func (rs *RemoteScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	state, err := rs.netClient.Status()
	switch state {
	case network.StateError:
		drawHUD(screen, fmt.Sprintf("connection error: %v", err))
		return
	case network.StateJoinedGame:
	default:
		drawHUD(screen, "connecting...")
		return
	}

	rs.view.drawLevel(screen, rs.levels[rs.netClient.Session().Level])

	for _, a := range rs.frame.Agents {
		pos := netPos(a.Position)
		rs.view.drawAgent(screen, pos, a.Agent.Yaw, a.Agent.HitRadius, cfg.StateID(a.Agent.State), a.Agent.Inert)
		if a.Agent.MaxHealth > 0 {
			rs.view.drawHealthBar(screen, pos, a.Agent.Health/a.Agent.MaxHealth)
		}
	}
	for _, p := range rs.frame.Players {
		rs.view.drawPlayer(screen, netPos(p.Position), p.State.Name, p.State.Health, p.State.MaxHealth)
	}
	for _, p := range rs.frame.Projectiles {
		rs.view.drawProjectile(screen, netPos(p.Position), p.Projectile.Radius)
	}

	now := time.Now()
	kept := rs.deaths[:0]
	for _, d := range rs.deaths {
		if now.Before(d.until) {
			rs.view.drawLight(screen, d.pos)
			kept = append(kept, d)
		}
	}
	rs.deaths = kept

	g := rs.frame.Game
	drawHUD(screen,
		fmt.Sprintf("%s  t=%.1fs  tick %d", g.Level, g.Time, g.Tick),
		fmt.Sprintf("agents %d  kills %d  players %d  shots %d", g.Agents, g.Kills, g.Players, rs.shots),
	)
}

func netPos(p netcomponents.NetPositionData) gamemath.Vec3 {
	return gamemath.V3(p.X, p.Y, p.Z)
}
