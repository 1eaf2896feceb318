package network

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/automoto/doomerang-crypt/shared/messages"
	"github.com/coder/websocket"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
)

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateConnected
	StateJoinedGame
	StateError
)

var errNotConnected = errors.New("not connected")

// Session is what the server told us when it accepted the join. Level
// follows later level changes.
type Session struct {
	NetworkID  esync.NetworkId
	ServerName string
	TickRate   int
	Level      string
}

// Client is a websocket connection to a crypt server. Router callbacks run
// on necs goroutines, so everything they touch is guarded by mu or passed
// through channels.
type Client struct {
	mu      sync.RWMutex
	state   ClientState
	err     error
	session Session
	conn    *websocket.Conn

	snapshots chan esync.WorldSnapshot // latest wins
	events    chan any                 // death, shot and level events, oldest first
}

func NewClient() *Client {
	return &Client{
		snapshots: make(chan esync.WorldSnapshot, 1),
		events:    make(chan any, 32),
	}
}

// Connect dials address in the background and sends the join request once
// the socket is up.
func (c *Client) Connect(address, version, playerName string, spectate bool) {
	c.setState(StateConnecting, nil)

	router.OnConnect(func(server *router.NetworkClient) {
		log.Println("[client] connected to server")
		c.setState(StateConnected, nil)
		join := messages.JoinRequest{Version: version, PlayerName: playerName, Spectate: spectate}
		if err := server.SendMessage(join); err != nil {
			c.setState(StateError, fmt.Errorf("send join request: %w", err))
		}
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinAccepted) {
		log.Printf("[client] joined %s as %d (level %s, %d Hz)", msg.ServerName, msg.NetworkID, msg.Level, msg.TickRate)
		c.mu.Lock()
		c.session = Session{
			NetworkID:  msg.NetworkID,
			ServerName: msg.ServerName,
			TickRate:   msg.TickRate,
			Level:      msg.Level,
		}
		c.state = StateJoinedGame
		c.mu.Unlock()
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinRejected) {
		log.Printf("[client] join rejected: %s", msg.Reason)
		c.setState(StateError, fmt.Errorf("join rejected: %s", msg.Reason))
	})

	router.On(func(_ *router.NetworkClient, snapshot esync.WorldSnapshot) {
		select {
		case <-c.snapshots:
		default:
		}
		c.snapshots <- snapshot
	})

	router.On(func(_ *router.NetworkClient, evt messages.DeathEvent) {
		c.queue(evt)
	})

	router.On(func(_ *router.NetworkClient, evt messages.ProjectileFiredEvent) {
		c.queue(evt)
	})

	router.On(func(_ *router.NetworkClient, evt messages.LevelChangeEvent) {
		c.mu.Lock()
		c.session.Level = evt.Level
		c.mu.Unlock()
		c.queue(evt)
	})

	router.OnDisconnect(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] disconnected: %v", err)
		c.mu.Lock()
		defer c.mu.Unlock()
		c.conn = nil
		if c.state != StateError {
			c.state = StateDisconnected
		}
	})

	router.OnError(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] error: %v", err)
	})

	go func() {
		transport := transports.NewWsClientTransport("ws://" + address)
		err := transport.Start(func(conn *websocket.Conn) {
			c.mu.Lock()
			c.conn = conn
			c.mu.Unlock()
		})
		if err != nil {
			c.setState(StateError, fmt.Errorf("connection failed: %w", err))
		}
	}()
}

// Close drops the socket and the router callbacks.
func (c *Client) Close() {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.state = StateDisconnected
	c.mu.Unlock()

	if conn != nil {
		_ = conn.CloseNow()
	}
	router.ResetRouter()
}

// Status returns the connection state and, in StateError, the cause.
func (c *Client) Status() (ClientState, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state, c.err
}

// Session is only meaningful in StateJoinedGame.
func (c *Client) Session() Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// LatestSnapshot returns the newest snapshot not yet taken, or nil.
func (c *Client) LatestSnapshot() *esync.WorldSnapshot {
	select {
	case snap := <-c.snapshots:
		return &snap
	default:
		return nil
	}
}

// Events returns the queued server events without blocking.
func (c *Client) Events() []any {
	var out []any
	for {
		select {
		case evt := <-c.events:
			out = append(out, evt)
		default:
			return out
		}
	}
}

func (c *Client) SendMessage(msg any) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()
	if conn == nil {
		return errNotConnected
	}

	payload, err := router.Serialize(msg)
	if err != nil {
		return fmt.Errorf("serialize %T: %w", msg, err)
	}
	return conn.Write(context.Background(), websocket.MessageBinary, payload)
}

// queue drops the event when the scene has fallen behind.
func (c *Client) queue(evt any) {
	select {
	case c.events <- evt:
	default:
	}
}

func (c *Client) setState(state ClientState, err error) {
	c.mu.Lock()
	c.state = state
	c.err = err
	c.mu.Unlock()
}
