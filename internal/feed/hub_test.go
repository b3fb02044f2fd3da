package feed

import (
	"bufio"
	"io"
	"log"
	"net"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"baselineexplorer/internal/catalog"
)

func quiet() *log.Logger { return log.New(io.Discard, "", 0) }

func setup(t *testing.T) (*catalog.Catalog, *Hub) {
	t.Helper()
	cat := catalog.New(quiet())
	require.NoError(t, cat.Load(catalog.SampleFeatures()))
	hub := NewHub(quiet())
	hub.Attach(cat)
	return cat, hub
}

func readEvent(t *testing.T, ws *websocket.Conn) Event {
	t.Helper()
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, msg, err := ws.ReadMessage()
	require.NoError(t, err)
	var ev Event
	require.NoError(t, json.Unmarshal(msg, &ev))
	return ev
}

func TestWebsocketReceivesViewUpdates(t *testing.T) {
	cat, hub := setup(t)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws", WSHandler(hub, cat))
	srv := httptest.NewServer(r)
	defer srv.Close()

	ws, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer ws.Close()

	ev := readEvent(t, ws)
	assert.Equal(t, TypeWelcome, ev.Type)
	require.NotNil(t, ev.View)
	assert.Len(t, ev.View.Features, 26)

	// registered before the welcome was written
	assert.Equal(t, 1, hub.Stats().WSClients)

	cat.SetCategoryFilter("html")
	ev = readEvent(t, ws)
	assert.Equal(t, TypeViewUpdate, ev.Type)
	assert.NotEmpty(t, ev.ID)
	require.NotNil(t, ev.View)
	assert.Len(t, ev.View.Features, 6)
	assert.Equal(t, 26, ev.View.Stats.Total)
}

func TestTCPServerStreamsLines(t *testing.T) {
	cat, hub := setup(t)
	s := NewServer("127.0.0.1:0", hub, cat)

	done := make(chan error, 1)
	go func() { done <- s.Run() }()
	require.Eventually(t, func() bool { return s.ListenAddr() != nil }, 5*time.Second, 10*time.Millisecond)

	conn, err := net.Dial("tcp", s.ListenAddr().String())
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	sc := bufio.NewScanner(conn)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	require.True(t, sc.Scan())
	var ev Event
	require.NoError(t, json.Unmarshal(sc.Bytes(), &ev))
	assert.Equal(t, TypeWelcome, ev.Type)

	assert.Equal(t, 1, hub.Stats().TCPClients)

	cat.SetSearchTerm("grid")
	require.True(t, sc.Scan())
	require.NoError(t, json.Unmarshal(sc.Bytes(), &ev))
	assert.Equal(t, TypeViewUpdate, ev.Type)
	require.Len(t, ev.View.Features, 1)
	assert.Equal(t, "css-grid", ev.View.Features[0].ID)

	require.NoError(t, s.Close())
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestWebsocketSeesEveryChangeOnceAfterWelcome(t *testing.T) {
	cat, hub := setup(t)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws", WSHandler(hub, cat))
	srv := httptest.NewServer(r)
	defer srv.Close()

	const changes = 40
	final := cat.View().Version + changes
	terms := []string{"grid", "fetch", "flex", "", "dialog"}
	go func() {
		for i := 0; i < changes; i++ {
			cat.SetSearchTerm(terms[i%len(terms)])
			time.Sleep(time.Millisecond)
		}
	}()

	ws, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer ws.Close()

	ev := readEvent(t, ws)
	require.Equal(t, TypeWelcome, ev.Type)
	require.NotNil(t, ev.View)
	last := ev.View.Version

	for last < final {
		ev = readEvent(t, ws)
		require.Equal(t, TypeViewUpdate, ev.Type)
		require.Equal(t, last+1, ev.View.Version, "after version %d", last)
		last = ev.View.Version
	}
	assert.Equal(t, cat.Filters(), ev.View.Filters)
}

func TestTCPAcceptNotBlockedByIdleClient(t *testing.T) {
	cat, hub := setup(t)
	s := NewServer("127.0.0.1:0", hub, cat)
	go func() { _ = s.Run() }()
	defer s.Close()
	require.Eventually(t, func() bool { return s.ListenAddr() != nil }, 5*time.Second, 10*time.Millisecond)

	// never reads
	idle, err := net.Dial("tcp", s.ListenAddr().String())
	require.NoError(t, err)
	defer idle.Close()

	conn, err := net.Dial("tcp", s.ListenAddr().String())
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	sc := bufio.NewScanner(conn)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	require.True(t, sc.Scan())
	var ev Event
	require.NoError(t, json.Unmarshal(sc.Bytes(), &ev))
	assert.Equal(t, TypeWelcome, ev.Type)
	require.Eventually(t, func() bool { return hub.Stats().TCPClients == 2 }, 5*time.Second, 10*time.Millisecond)
}
