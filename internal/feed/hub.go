package feed

import (
	"bufio"
	"log"
	"net"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"baselineexplorer/internal/catalog"
)

const writeTimeout = 2 * time.Second

// Hub fans catalog views out to TCP and websocket clients. Each client maps
// to the view version its welcome carried; older updates are not resent.
type Hub struct {
	mu        sync.Mutex
	clients   map[net.Conn]uint64
	wsClients map[*websocket.Conn]uint64
	logger    *log.Logger
}

type Stats struct {
	TCPClients int `json:"tcp_clients"`
	WSClients  int `json:"ws_clients"`
}

func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		clients:   make(map[net.Conn]uint64),
		wsClients: make(map[*websocket.Conn]uint64),
		logger:    logger,
	}
}

// Attach subscribes the hub to every state change of cat.
func (h *Hub) Attach(cat *catalog.Catalog) {
	cat.Subscribe(func(v catalog.View) {
		h.broadcast(NewEvent(TypeViewUpdate, &v), v.Version)
	})
}

// Join registers a TCP client and sends it the current view. Both happen
// under the hub lock, so no broadcast can fall between the two.
func (h *Hub) Join(conn net.Conn, cat *catalog.Catalog) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	b, version, err := welcome(cat)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if _, err := conn.Write(b); err != nil {
		return err
	}
	h.clients[conn] = version
	return nil
}

func (h *Hub) Remove(conn net.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	_ = conn.Close()
}

// JoinWS is Join for websocket clients.
func (h *Hub) JoinWS(ws *websocket.Conn, cat *catalog.Catalog) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	b, version, err := welcome(cat)
	if err != nil {
		return err
	}
	_ = ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := ws.WriteMessage(websocket.TextMessage, b); err != nil {
		return err
	}
	h.wsClients[ws] = version
	return nil
}

func (h *Hub) RemoveWS(ws *websocket.Conn) {
	h.mu.Lock()
	delete(h.wsClients, ws)
	h.mu.Unlock()
	_ = ws.Close()
}

// BroadcastJSON writes v as one newline-terminated JSON line to every
// client. Clients that fail a write are dropped.
func (h *Hub) BroadcastJSON(v any) {
	h.broadcast(v, 0)
}

// broadcast skips clients whose welcome already carried version. Zero means
// unversioned and goes to everyone.
func (h *Hub) broadcast(v any, version uint64) {
	b, err := json.Marshal(v)
	if err != nil {
		h.logger.Printf("[feed] marshal: %v", err)
		return
	}
	b = append(b, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	for c, seen := range h.clients {
		if version != 0 && version <= seen {
			continue
		}
		_ = c.SetWriteDeadline(time.Now().Add(writeTimeout))
		w := bufio.NewWriter(c)
		if _, err := w.Write(b); err != nil {
			_ = c.Close()
			delete(h.clients, c)
			continue
		}
		if err := w.Flush(); err != nil {
			_ = c.Close()
			delete(h.clients, c)
		}
	}

	for ws, seen := range h.wsClients {
		if version != 0 && version <= seen {
			continue
		}
		_ = ws.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := ws.WriteMessage(websocket.TextMessage, b); err != nil {
			_ = ws.Close()
			delete(h.wsClients, ws)
		}
	}
}

func (h *Hub) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Stats{
		TCPClients: len(h.clients),
		WSClients:  len(h.wsClients),
	}
}

// welcome builds the first event a new client sees: the current view. The
// caller holds h.mu; the catalog lock is only taken for reading, and the
// catalog never holds it while calling into the hub.
func welcome(cat *catalog.Catalog) ([]byte, uint64, error) {
	v := cat.View()
	b, err := json.Marshal(NewEvent(TypeWelcome, &v))
	if err != nil {
		return nil, 0, err
	}
	return append(b, '\n'), v.Version, nil
}
