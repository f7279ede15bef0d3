package transport

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/patrick-goecommerce/gitstermd/internal/session"
)

// ---------------------------------------------------------------------------
// Frame parsing
// ---------------------------------------------------------------------------

func TestCutFrame(t *testing.T) {
	kind, payload, ok := cutFrame("key,hello")
	if !ok || kind != "key" || payload != "hello" {
		t.Errorf("cutFrame() = (%q,%q,%v), want (key,hello,true)", kind, payload, ok)
	}
}

func TestCutFrame_Malformed(t *testing.T) {
	if _, _, ok := cutFrame("nocomma"); ok {
		t.Error("cutFrame() on a frame with no comma returned ok=true")
	}
}

func TestParseSize(t *testing.T) {
	rows, cols, err := parseSize("24x80")
	if err != nil {
		t.Fatalf("parseSize() error: %v", err)
	}
	if rows != 24 || cols != 80 {
		t.Errorf("parseSize() = (%d,%d), want (24,80)", rows, cols)
	}
}

func TestParseSize_Malformed(t *testing.T) {
	cases := []string{"", "24", "24x", "x80", "0x80", "24x0", "-1x80"}
	for _, c := range cases {
		if _, _, err := parseSize(c); err == nil {
			t.Errorf("parseSize(%q) returned nil error, want a parse failure", c)
		}
	}
}

// ---------------------------------------------------------------------------
// handleFrame
// ---------------------------------------------------------------------------

func TestHandleFrame_ResizeUpdatesSession(t *testing.T) {
	h := &Handler{}
	sess, err := session.New(5, 10)
	if err != nil {
		t.Fatalf("session.New() error: %v", err)
	}

	if err := h.handleFrame(sess, []byte("rsz,12x34")); err != nil {
		t.Fatalf("handleFrame(rsz) error: %v", err)
	}
	if sess.Term.Rows() != 12 || sess.Term.Cols() != 34 {
		t.Errorf("dims after resize = %dx%d, want 12x34", sess.Term.Rows(), sess.Term.Cols())
	}
}

func TestHandleFrame_UnrecognizedKind(t *testing.T) {
	h := &Handler{}
	sess, _ := session.New(5, 10)
	if err := h.handleFrame(sess, []byte("bogus,data")); err == nil {
		t.Error("handleFrame() with an unrecognized kind returned nil error")
	}
}

// ---------------------------------------------------------------------------
// ServeHTTP: end-to-end push of rendered markup on session output
// ---------------------------------------------------------------------------

func TestServeHTTP_PushesMarkupOnOutput(t *testing.T) {
	var sess *session.Session
	factory := func() (*session.Session, error) {
		var err error
		sess, err = session.New(2, 5)
		return sess, err
	}
	handler := NewHandler(factory)
	srv := httptest.NewServer(handler)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial() error: %v", err)
	}
	defer conn.Close()

	// Give ServeHTTP a moment to construct the session via the factory.
	deadline := time.Now().Add(2 * time.Second)
	for sess == nil && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if sess == nil {
		t.Fatal("session was never constructed")
	}

	sess.Term.FeedBytes([]byte("hi"))
	select {
	case sess.OutputCh <- struct{}{}:
	default:
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, message, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() error: %v", err)
	}
	if !strings.Contains(string(message), "hi"[:1]) {
		t.Errorf("pushed markup = %q, want it to contain the rendered cell text", message)
	}
}
