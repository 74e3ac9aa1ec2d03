// Package server is the lobby shared by all connected clients: it tracks who is
// connected, keeps the leaderboard and announces shutdown. Each client plays its own
// independent session.
package server

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/starfighter/internal/loop/config"
)

// GameServer is the interface clients use to talk to the lobby.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	RecordScore(clientID int, score int)
	TopScores() []TopScoreEntry
	Players() int
}

// Server tracks connected clients and the leaderboard.
type Server struct {
	mu           sync.RWMutex
	clients      map[int]*ClientHandle
	nextClientID int
	board        *Leaderboard
	log          *log.Logger
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents a client's connection to the lobby.
type ClientHandle struct {
	ID       int
	Username string
	EventsCh chan ClientEvent // Events sent to the client
}

// ClientEvent represents an event sent from the lobby to a client.
type ClientEvent struct {
	Type ClientEventType
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota // Lobby is going down
	EventTopScores                             // Leaderboard changed
)

// NewServer creates an empty lobby. A nil logger discards output.
func NewServer(logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		board:        NewLeaderboard(config.TopScoreCount),
		log:          logger,
	}
}

// RegisterClient registers a new client with the given username and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle := &ClientHandle{
		ID:       s.nextClientID,
		Username: username,
		EventsCh: make(chan ClientEvent, 16),
	}
	s.nextClientID++
	s.clients[handle.ID] = handle
	s.log.Info("client registered", "id", handle.ID, "user", username, "players", len(s.clients))
	return handle
}

// UnregisterClient removes a client and closes its event channel.
func (s *Server) UnregisterClient(clientID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle, ok := s.clients[clientID]
	if !ok {
		return
	}
	close(handle.EventsCh)
	delete(s.clients, clientID)
	s.log.Info("client unregistered", "id", clientID, "players", len(s.clients))
}

// RecordScore submits a finished match's score to the leaderboard.
// Every other client is told when the board changes.
func (s *Server) RecordScore(clientID int, score int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle, ok := s.clients[clientID]
	if !ok {
		return
	}
	if !s.board.Submit(handle.Username, score, clientID) {
		return
	}
	s.log.Info("new top score", "user", handle.Username, "score", score)
	s.broadcastLocked(ClientEvent{Type: EventTopScores})
}

// TopScores returns a copy of the leaderboard, best first.
func (s *Server) TopScores() []TopScoreEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board.Entries()
}

// Players returns the number of connected clients.
func (s *Server) Players() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Shutdown notifies all connected clients and waits for them to disconnect,
// up to the given timeout.
func (s *Server) Shutdown(timeout time.Duration) {
	s.mu.RLock()
	s.broadcastLocked(ClientEvent{Type: EventServerShutdown})
	s.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		if s.Players() == 0 {
			return
		}
		select {
		case <-deadline:
			s.log.Warn("shutdown timed out", "players", s.Players())
			return
		case <-ticker.C:
		}
	}
}

// broadcastLocked sends ev to every client without blocking. Must be called with lock held.
func (s *Server) broadcastLocked(ev ClientEvent) {
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ev:
		default:
		}
	}
}
