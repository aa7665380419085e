package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"strings"
	"sync"

	dbeditor "github.com/Razielxkx/Database-editor"
	"github.com/Razielxkx/Database-editor/core"
	"github.com/Razielxkx/Database-editor/db"
)

// Server is a TCP server that exposes the editor engine, one statement per
// line with JSON responses.
type Server struct {
	listener   net.Listener
	instance   *dbeditor.Instance
	identity   core.Identity
	authConfig *AuthConfig
	mu         sync.Mutex
	done       chan struct{}
	wg         sync.WaitGroup
}

func NewServer(instance *dbeditor.Instance, identity core.Identity, authConfig *AuthConfig) *Server {
	return &Server{
		instance:   instance,
		identity:   identity,
		authConfig: authConfig,
		done:       make(chan struct{}),
	}
}

// Start begins listening for connections on the specified address.
func (s *Server) Start(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	s.listener = listener

	log.Printf("Server listening on %s", addr)

	go s.acceptLoop()
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	close(s.done)
	if s.listener != nil {
		s.listener.Close()
	}
	s.wg.Wait()
	return nil
}

// Addr returns the server's listening address.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.done:
				return
			default:
				log.Printf("Accept error: %v", err)
				continue
			}
		}

		s.wg.Add(1)
		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	log.Printf("Client connected: %s", conn.RemoteAddr())

	state := &ConnectionState{}
	reader := bufio.NewReader(conn)

	for {
		select {
		case <-s.done:
			return
		default:
		}

		line, err := reader.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				log.Printf("Read error from %s: %v", conn.RemoteAddr(), err)
			}
			return
		}

		query := strings.TrimSpace(line)
		if query == "" {
			continue
		}

		if lower := strings.ToLower(query); lower == "quit" || lower == "exit" {
			log.Printf("Client disconnected: %s", conn.RemoteAddr())
			return
		}

		var response Response
		switch {
		case strings.HasPrefix(strings.ToUpper(query), "AUTH "):
			response = s.handleAuth(query, state)
		case s.authRequired() && !state.IsAuthenticated():
			response = Response{
				Success: false,
				Error:   "authentication required: send AUTH JWT <token>",
			}
		default:
			response = s.executeQuery(query, s.connectionIdentity(state))
		}

		data, err := EncodeResponse(response)
		if err != nil {
			log.Printf("Failed to encode response: %v", err)
			continue
		}

		if _, err := conn.Write(data); err != nil {
			log.Printf("Write error to %s: %v", conn.RemoteAddr(), err)
			return
		}
	}
}

func (s *Server) authRequired() bool {
	return s.authConfig != nil && s.authConfig.Enabled
}

// connectionIdentity picks the journaling identity: the authenticated user
// when there is one, the server default otherwise.
func (s *Server) connectionIdentity(state *ConnectionState) core.Identity {
	if identity := state.Identity(); identity != nil {
		return *identity
	}
	return s.identity
}

func (s *Server) executeQuery(query string, identity core.Identity) Response {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.instance.Engine(identity).Execute(query)
	if err != nil {
		return Response{
			Success: false,
			Error:   err.Error(),
		}
	}

	switch r := result.(type) {
	case db.QueryResult:
		qr := QueryResponse{
			Columns:     r.Columns,
			Rows:        r.Rows,
			RecordsRead: r.RecordsRead,
			TimeMs:      r.ExecutionTimeSec * 1000,
		}
		data, _ := json.Marshal(qr)
		return Response{
			Success: true,
			Type:    "query",
			Result:  data,
		}

	case db.CommitResult:
		cr := CommitResponse{
			Commit:         r.Commit.Id,
			Table:          r.Table,
			RecordsWritten: r.RecordsWritten,
			RecordsDeleted: r.RecordsDeleted,
			TimeMs:         r.ExecutionTimeSec * 1000,
		}
		data, _ := json.Marshal(cr)
		return Response{
			Success: true,
			Type:    "commit",
			Result:  data,
		}

	case db.StatusResult:
		sr := StatusResponse{
			Message: r.Message,
			TimeMs:  r.ExecutionTimeSec * 1000,
		}
		data, _ := json.Marshal(sr)
		return Response{
			Success: true,
			Type:    "status",
			Result:  data,
		}

	default:
		return Response{
			Success: true,
			Type:    "unknown",
		}
	}
}
