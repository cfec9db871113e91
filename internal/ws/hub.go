package ws

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync/atomic"
	"unicode/utf8"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/vkarpenko/halfcourt/internal/middleware"
)

const maxActiveRooms = 200

// RoomOptions are per-match settings parsed from the connect request.
// The hub stays ignorant of game semantics; the creator interprets them.
type RoomOptions struct {
	Difficulty       string
	Scoring          string
	ShotClockSeconds float64
	TargetScore      int
	Seed             int64
}

// RoomCreator starts a match for one accepted connection.
type RoomCreator interface {
	CreateRoom(c *Conn, opts RoomOptions)
}

// HubStats holds live server metrics.
type HubStats struct {
	ActiveRooms      int64  `json:"activeRooms"`
	TotalConnections uint64 `json:"totalConnections"`
}

// Hub accepts websocket connections and hands each one its own room;
// the opponent is always the AI, so there is no matchmaking queue.
type Hub struct {
	creator RoomCreator
	log     *zap.SugaredLogger
	nextID  atomic.Uint64

	activeRooms      atomic.Int64
	totalConnections atomic.Uint64

	limiter        *middleware.IPRateLimiter
	originPatterns []string
}

func NewHub(creator RoomCreator, limiter *middleware.IPRateLimiter, originPatterns []string, log *zap.SugaredLogger) *Hub {
	return &Hub{
		creator:        creator,
		limiter:        limiter,
		originPatterns: originPatterns,
		log:            log,
	}
}

// Stats returns a snapshot of current server metrics.
func (h *Hub) Stats() HubStats {
	return HubStats{
		ActiveRooms:      h.activeRooms.Load(),
		TotalConnections: h.totalConnections.Load(),
	}
}

// RoomEnded decrements the active room counter. Call when a room exits.
func (h *Hub) RoomEnded() {
	h.activeRooms.Add(-1)
}

func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	ip := h.limiter.RealIP(r)
	if !h.limiter.ConnectAllowed(ip) {
		http.Error(w, "too many connections", http.StatusTooManyRequests)
		return
	}

	if h.activeRooms.Load() >= maxActiveRooms {
		h.limiter.Disconnect(ip)
		http.Error(w, "server full", http.StatusServiceUnavailable)
		return
	}

	acceptOpts := &websocket.AcceptOptions{}
	if len(h.originPatterns) > 0 {
		acceptOpts.OriginPatterns = h.originPatterns
	}

	wsc, err := websocket.Accept(w, r, acceptOpts)
	if err != nil {
		h.limiter.Disconnect(ip)
		h.log.Warnw("ws accept", "err", err)
		return
	}
	wsc.SetReadLimit(1024)

	h.totalConnections.Add(1)
	id := fmt.Sprintf("player-%d", h.nextID.Add(1))
	conn := NewConn(wsc, id, ip, h.limiter, h.log)
	conn.Nickname = sanitizeNickname(r.URL.Query().Get("name"))

	h.log.Infow("new connection",
		"conn", id,
		"name", conn.Nickname,
		"ip", ip,
		"total", h.totalConnections.Load())

	go conn.WriteLoop(context.Background())

	go func() {
		<-conn.Done()
		h.limiter.Disconnect(ip)
	}()

	h.activeRooms.Add(1)
	h.creator.CreateRoom(conn, parseRoomOptions(r))

	// Keep the HTTP handler alive; it owns the underlying TCP conn.
	<-conn.Done()
	h.log.Infow("connection closed", "conn", id)
}

func parseRoomOptions(r *http.Request) RoomOptions {
	q := r.URL.Query()
	opts := RoomOptions{
		Difficulty: q.Get("difficulty"),
		Scoring:    q.Get("scoring"),
	}
	if v, err := strconv.ParseFloat(q.Get("clock"), 64); err == nil && v >= 0 {
		opts.ShotClockSeconds = v
	} else {
		opts.ShotClockSeconds = -1 // creator substitutes its default
	}
	if v, err := strconv.Atoi(q.Get("target")); err == nil && v > 0 {
		opts.TargetScore = v
	}
	if v, err := strconv.ParseInt(q.Get("seed"), 10, 64); err == nil {
		opts.Seed = v
	}
	return opts
}

// sanitizeNickname strips invalid characters and enforces 2-12 runes.
func sanitizeNickname(raw string) string {
	if !utf8.ValidString(raw) {
		return "Player"
	}
	cleaned := []rune{}
	for _, r := range raw {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || r == '_' || r == '-' || r == ' ' {
			cleaned = append(cleaned, r)
		}
	}
	if len(cleaned) < 2 {
		return "Player"
	}
	if len(cleaned) > 12 {
		cleaned = cleaned[:12]
	}
	return string(cleaned)
}
