// Package transport implements the websocket-based remote display
// protocol (spec.md §6): the server pushes rendered markup after each
// batch of PTY output, and the client pushes two frame kinds back —
// `key,<utf8-bytes>` (keyboard input for the child process) and
// `rsz,<rows>x<cols>` (a terminal resize).
package transport

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/patrick-goecommerce/gitstermd/internal/session"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 32 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// SessionFactory spawns a new shell session for an incoming connection.
type SessionFactory func() (*session.Session, error)

// Handler upgrades incoming HTTP requests to websocket connections, each
// backed by its own session.
type Handler struct {
	NewSession SessionFactory
}

// NewHandler returns a Handler that spawns sessions via factory.
func NewHandler(factory SessionFactory) *Handler {
	return &Handler{NewSession: factory}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("transport: upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	sess, err := h.NewSession()
	if err != nil {
		log.Printf("transport: session creation failed: %v", err)
		return
	}
	defer sess.Close()

	done := make(chan struct{})
	var closeOnce sync.Once
	closeDone := func() { closeOnce.Do(func() { close(done) }) }

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	go h.pushLoop(conn, sess, done)

	for {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			closeDone()
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}
		if err := h.handleFrame(sess, message); err != nil {
			log.Printf("transport: session %s: %v", sess.ID, err)
		}
	}
}

// handleFrame decodes and applies one client frame (spec.md §6).
func (h *Handler) handleFrame(sess *session.Session, frame []byte) error {
	kind, payload, ok := cutFrame(string(frame))
	if !ok {
		return fmt.Errorf("malformed frame %q", frame)
	}
	switch kind {
	case "key":
		_, err := sess.Write([]byte(payload))
		return err
	case "rsz":
		rows, cols, err := parseSize(payload)
		if err != nil {
			return err
		}
		sess.Resize(rows, cols)
		return nil
	default:
		return fmt.Errorf("unrecognized frame kind %q", kind)
	}
}

// cutFrame splits "kind,payload" into its two parts.
func cutFrame(frame string) (kind, payload string, ok bool) {
	i := strings.IndexByte(frame, ',')
	if i < 0 {
		return "", "", false
	}
	return frame[:i], frame[i+1:], true
}

// parseSize parses a "<rows>x<cols>" payload.
func parseSize(payload string) (rows, cols int, err error) {
	parts := strings.SplitN(payload, "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed rsz payload %q", payload)
	}
	if _, err := fmt.Sscanf(parts[0], "%d", &rows); err != nil {
		return 0, 0, fmt.Errorf("malformed rsz rows %q: %w", parts[0], err)
	}
	if _, err := fmt.Sscanf(parts[1], "%d", &cols); err != nil {
		return 0, 0, fmt.Errorf("malformed rsz cols %q: %w", parts[1], err)
	}
	if rows <= 0 || cols <= 0 {
		return 0, 0, fmt.Errorf("non-positive rsz dimensions %dx%d", rows, cols)
	}
	return rows, cols, nil
}

// pushLoop renders and ships markup each time the session signals new PTY
// output, and keeps the connection alive with periodic pings.
func (h *Handler) pushLoop(conn *websocket.Conn, sess *session.Session, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-sess.OutputCh:
			markup := sess.Render()
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(markup)); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-sess.Done():
			return
		case <-done:
			return
		}
	}
}
