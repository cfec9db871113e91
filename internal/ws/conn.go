package ws

import (
	"context"
	"sync"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/vkarpenko/halfcourt/internal/middleware"
)

// Conn wraps a websocket connection with a buffered, non-blocking send
// side and a channel-based read loop.
type Conn struct {
	ws      *websocket.Conn
	sendCh  chan []byte
	done    chan struct{}
	once    sync.Once
	log     *zap.SugaredLogger
	limiter *middleware.IPRateLimiter

	ID       string
	Nickname string
	IP       string
}

func NewConn(wsc *websocket.Conn, id, ip string, limiter *middleware.IPRateLimiter, log *zap.SugaredLogger) *Conn {
	return &Conn{
		ws:      wsc,
		sendCh:  make(chan []byte, 64),
		done:    make(chan struct{}),
		log:     log,
		limiter: limiter,
		ID:      id,
		IP:      ip,
	}
}

// Send queues a message without blocking; a full buffer drops it.
func (c *Conn) Send(msg Message) {
	data, err := Encode(msg)
	if err != nil {
		c.log.Errorw("encode", "conn", c.ID, "err", err)
		return
	}
	select {
	case c.sendCh <- data:
	default:
		c.log.Warnw("send buffer full, dropping message", "conn", c.ID)
	}
}

// ReadLoop decodes incoming messages onto a channel until the socket
// closes. Messages over the per-IP rate limit are dropped silently.
func (c *Conn) ReadLoop(ctx context.Context) <-chan Message {
	ch := make(chan Message, 64)
	go func() {
		defer close(ch)
		for {
			_, data, err := c.ws.Read(ctx)
			if err != nil {
				c.log.Debugw("read closed", "conn", c.ID, "err", err)
				c.Close()
				return
			}
			if c.limiter != nil && !c.limiter.MessageAllowed(c.IP) {
				continue
			}
			msg, err := Decode(data)
			if err != nil {
				c.log.Debugw("decode", "conn", c.ID, "err", err)
				continue
			}
			select {
			case ch <- msg:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

func (c *Conn) WriteLoop(ctx context.Context) {
	for {
		select {
		case data := <-c.sendCh:
			wctx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := c.ws.Write(wctx, websocket.MessageText, data)
			cancel()
			if err != nil {
				c.log.Debugw("write closed", "conn", c.ID, "err", err)
				c.Close()
				return
			}
		case <-c.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (c *Conn) Close() {
	c.once.Do(func() {
		close(c.done)
		c.ws.Close(websocket.StatusNormalClosure, "")
	})
}

func (c *Conn) Done() <-chan struct{} { return c.done }
