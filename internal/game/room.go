package game

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vkarpenko/halfcourt/internal/geom"
	"github.com/vkarpenko/halfcourt/internal/ws"
)

// frameRate is the render/broadcast cadence. Simulation ticks are paced
// by the fixed-timestep loop, not by this ticker.
const frameRate = 60

// Room hosts one match: a single human connection against the AI.
type Room struct {
	conn   *ws.Conn
	engine *Engine
	loop   *Loop
	log    *zap.SugaredLogger

	mu      sync.Mutex
	held    heldInput
	pending pendingInput

	gameOverSent bool

	cancel context.CancelFunc
	done   chan struct{}
}

// heldInput is level-triggered state from the latest input message.
type heldInput struct {
	move   geom.Vec2
	sprint bool
	shoot  bool
}

// pendingInput is edge-triggered state consumed by exactly one tick.
type pendingInput struct {
	shootReleased bool
	action        bool
	rematch       bool
}

type inputPayload struct {
	MoveX  float64 `json:"moveX"`
	MoveY  float64 `json:"moveY"`
	Sprint bool    `json:"sprint"`
	Shoot  bool    `json:"shoot"`
	Action bool    `json:"action"`
}

type startPayload struct {
	Settings   Settings `json:"settings"`
	CourtWidth float64  `json:"courtWidth"`
	CourtDepth float64  `json:"courtDepth"`
	TickRate   int      `json:"tickRate"`
	Nickname   string   `json:"nickname"`
}

type statePayload struct {
	Snapshot
	Alpha float64 `json:"alpha"`
}

type gameOverPayload struct {
	Winner int8         `json:"winner"`
	Score  [2]int       `json:"score"`
	Stats  [2]SideStats `json:"stats"`
}

func NewRoom(conn *ws.Conn, settings Settings, log *zap.SugaredLogger) *Room {
	r := &Room{
		conn: conn,
		loop: NewLoop(TickRate),
		log:  log,
	}
	r.engine = NewEngine(settings, r, log)
	return r
}

// Emit forwards a simulation event to the client. Fire-and-forget: a
// full send buffer drops the message rather than stalling the tick.
func (r *Room) Emit(ev Event) {
	msg, err := ws.NewMessage(ws.MsgGameEvent, r.engine.Tick, ev)
	if err != nil {
		return
	}
	r.conn.Send(msg)
}

func (r *Room) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)
	r.done = make(chan struct{})

	start, _ := ws.NewMessage(ws.MsgGameStart, 0, startPayload{
		Settings:   r.engine.Settings(),
		CourtWidth: CourtWidth,
		CourtDepth: CourtDepth,
		TickRate:   TickRate,
		Nickname:   r.conn.Nickname,
	})
	r.conn.Send(start)

	go r.readLoop(ctx)
	go func() {
		r.run(ctx)
		close(r.done)
	}()
}

// Done closes when the room's game loop has exited.
func (r *Room) Done() <-chan struct{} { return r.done }

func (r *Room) readLoop(ctx context.Context) {
	msgs := r.conn.ReadLoop(ctx)
	for {
		select {
		case msg, ok := <-msgs:
			if !ok {
				r.log.Infow("player disconnected", "conn", r.conn.ID)
				r.cancel()
				return
			}
			r.handleMessage(msg)
		case <-ctx.Done():
			return
		}
	}
}

func (r *Room) handleMessage(msg ws.Message) {
	switch msg.Type {
	case ws.MsgPlayerInput:
		var in inputPayload
		if err := json.Unmarshal(msg.Payload, &in); err != nil {
			return
		}
		r.storeInput(in)

	case ws.MsgRematch:
		r.mu.Lock()
		r.pending.rematch = true
		r.mu.Unlock()

	case ws.MsgPing:
		var ping ws.PingPayload
		if err := json.Unmarshal(msg.Payload, &ping); err != nil {
			return
		}
		pong, _ := ws.NewMessage(ws.MsgPong, r.engine.Tick, ws.PongPayload{
			ClientTime: ping.ClientTime,
			ServerTime: uint64(time.Now().UnixMilli()),
		})
		r.conn.Send(pong)
	}
}

func (r *Room) storeInput(in inputPayload) {
	move := geom.Vec2{X: in.MoveX, Y: in.MoveY}
	if move.Len() > 1 {
		move = move.Normalize()
	}

	r.mu.Lock()
	if r.held.shoot && !in.Shoot {
		r.pending.shootReleased = true
	}
	if in.Action {
		r.pending.action = true
	}
	r.held.move = move
	r.held.sprint = in.Sprint
	r.held.shoot = in.Shoot
	r.mu.Unlock()
}

// consumeInput snapshots held state. The one-shot edges drain only
// when a tick will actually consume them; on a zero-tick frame they
// stay pending so a release is never lost to ticker jitter.
func (r *Room) consumeInput(drainEdges bool) (Input, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	in := Input{
		Move:          r.held.move,
		Sprint:        r.held.sprint,
		ShootHeld:     r.held.shoot,
		ShootReleased: r.pending.shootReleased,
		Action:        r.pending.action,
	}
	rematch := r.pending.rematch
	r.pending.rematch = false
	if drainEdges {
		r.pending.shootReleased = false
		r.pending.action = false
	}
	return in, rematch
}

func (r *Room) run(ctx context.Context) {
	ticker := time.NewTicker(time.Second / frameRate)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			r.frame(now)
		case <-ctx.Done():
			return
		}
	}
}

func (r *Room) frame(now time.Time) {
	ticks := r.loop.Advance(now)
	in, rematch := r.consumeInput(ticks > 0)

	if rematch && r.engine.Rules.Phase == PhaseGameOver {
		r.engine.Reset()
		r.gameOverSent = false
		r.log.Infow("rematch", "conn", r.conn.ID)
	}

	for i := ticks; i > 0; i-- {
		r.engine.Step(in)
		// One-shot edges fire on the first tick of the frame only.
		in.ShootReleased = false
		in.Action = false
	}

	r.broadcast()
}

func (r *Room) broadcast() {
	snap := r.engine.Snapshot()
	msg, err := ws.NewMessage(ws.MsgGameState, snap.Tick, statePayload{
		Snapshot: snap,
		Alpha:    r.loop.Alpha(),
	})
	if err != nil {
		r.log.Errorw("encode state", "err", err)
		return
	}
	r.conn.Send(msg)

	if r.engine.Rules.Phase == PhaseGameOver && !r.gameOverSent {
		r.gameOverSent = true
		over, _ := ws.NewMessage(ws.MsgGameOver, snap.Tick, gameOverPayload{
			Winner: r.engine.Rules.Winner,
			Score:  r.engine.Rules.Score,
			Stats:  r.engine.Rules.Stats,
		})
		r.conn.Send(over)
	}
}
