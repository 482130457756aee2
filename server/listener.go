package server

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/seipan/bstviz/render"
)

const (
	listenerBuffer = 256
	writeTimeout   = 10 * time.Second
)

// Message is what a listener receives: the latest scene and that listener's view transform.
type Message struct {
	Scene render.Scene `json:"scene"`
	View  render.View  `json:"view"`
}

// ViewEvent is sent by the browser on pointer drag, wheel and key input.
type ViewEvent struct {
	Type   string  `json:"type"`
	DX     float64 `json:"dx,omitempty"`
	DY     float64 `json:"dy,omitempty"`
	DeltaY float64 `json:"deltaY,omitempty"`
	Key    string  `json:"key,omitempty"`
}

type listener struct {
	conn   *websocket.Conn
	logger *slog.Logger
	out    chan Message
	done   chan struct{}
	once   sync.Once

	mu    sync.Mutex
	view  *render.View
	scene render.Scene
}

func newListener(conn *websocket.Conn, logger *slog.Logger) *listener {
	return &listener{
		conn:   conn,
		logger: logger,
		out:    make(chan Message, listenerBuffer),
		done:   make(chan struct{}),
		view:   render.NewView(),
	}
}

func (l *listener) setScene(s render.Scene) {
	l.mu.Lock()
	l.scene = s
	m := Message{Scene: s, View: *l.view}
	l.mu.Unlock()
	l.enqueue(m)
}

// applyView updates the view and resends the current scene with it. Unknown
// event types are ignored.
func (l *listener) applyView(ev ViewEvent) {
	l.mu.Lock()
	switch ev.Type {
	case "pan":
		l.view.Pan(ev.DX, ev.DY)
	case "wheel":
		l.view.Wheel(ev.DeltaY)
	case "key":
		if !l.view.Key(ev.Key) {
			l.mu.Unlock()
			return
		}
	case "reset":
		l.view.Reset()
	default:
		l.mu.Unlock()
		return
	}
	m := Message{Scene: l.scene, View: *l.view}
	l.mu.Unlock()
	l.enqueue(m)
}

func (l *listener) enqueue(m Message) {
	select {
	case l.out <- m:
	case <-l.done:
	default:
		l.logger.Warn("dropping slow listener", "remote", l.conn.RemoteAddr().String())
		droppedListeners.Inc()
		l.close()
	}
}

func (l *listener) close() {
	l.once.Do(func() {
		close(l.done)
		l.conn.Close()
	})
}

func (l *listener) writeLoop() {
	for {
		select {
		case m := <-l.out:
			if err := l.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
				l.close()
				return
			}
			if err := l.conn.WriteJSON(m); err != nil {
				l.logger.Info("websocket write failed", "err", err)
				l.close()
				return
			}
		case <-l.done:
			return
		}
	}
}

func (l *listener) readLoop() {
	for {
		var ev ViewEvent
		if err := l.conn.ReadJSON(&ev); err != nil {
			return
		}
		l.applyView(ev)
	}
}
