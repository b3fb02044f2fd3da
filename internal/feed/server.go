package feed

import (
	"bufio"
	"errors"
	"net"
	"sync"

	"baselineexplorer/internal/catalog"
)

// Server accepts raw TCP clients and streams feed events to them as
// newline-delimited JSON.
type Server struct {
	Addr    string
	Hub     *Hub
	Catalog *catalog.Catalog

	mu sync.Mutex
	ln net.Listener
}

func NewServer(addr string, hub *Hub, cat *catalog.Catalog) *Server {
	return &Server{Addr: addr, Hub: hub, Catalog: cat}
}

// Run listens until Close is called, then returns nil.
func (s *Server) Run() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()
	s.Hub.logger.Printf("[tcp-feed] listening on %s", ln.Addr())

	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			continue
		}

		go func(c net.Conn) {
			if err := s.Hub.Join(c, s.Catalog); err != nil {
				s.Hub.logger.Printf("[tcp-feed] welcome to %s failed: %v", c.RemoteAddr(), err)
				_ = c.Close()
				return
			}
			s.Hub.logger.Printf("[tcp-feed] client connected: %s", c.RemoteAddr())

			defer func() {
				s.Hub.Remove(c)
				s.Hub.logger.Printf("[tcp-feed] client disconnected: %s", c.RemoteAddr())
			}()

			// input is ignored; reading only detects disconnects
			sc := bufio.NewScanner(c)
			for sc.Scan() {
			}
		}(conn)
	}
}

// ListenAddr returns the bound address once Run has started listening.
func (s *Server) ListenAddr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Close()
}
