package services

import (
	"math"
	"sync"

	"github.com/rs/zerolog"

	"pixelarena/server/config"
	"pixelarena/server/messages"
	"pixelarena/server/models"
)

// Notifier delivers an outbound message to one connected client. The
// handlers package implements it with the client registry.
type Notifier interface {
	SendTo(playerID string, msg messages.BaseMessage)
}

// GameService is the single owner of all mutable game state: the player
// registry and every room with everything a room contains. All handler calls
// and timer callbacks serialize on one mutex, so events broadcast to a room
// always go out in the order they were produced.
type GameService struct {
	mu      sync.Mutex
	rooms   map[string]*models.Room
	players map[string]*models.Player

	// pending friend requests, keyed target -> requesters
	friendRequests map[string]map[string]bool
	// confirmed friendships, symmetric
	friends map[string]map[string]bool

	tuning   config.Tuning
	notifier Notifier
	sched    *Scheduler
	log      zerolog.Logger
}

// NewGameService creates the game service with a tuning snapshot.
func NewGameService(notifier Notifier, tuning config.Tuning, log zerolog.Logger) *GameService {
	return &GameService{
		rooms:          make(map[string]*models.Room),
		players:        make(map[string]*models.Player),
		friendRequests: make(map[string]map[string]bool),
		friends:        make(map[string]map[string]bool),
		tuning:         tuning,
		notifier:       notifier,
		sched:          NewScheduler(),
		log:            log,
	}
}

// Connect registers a fresh player record for a new connection.
func (s *GameService) Connect(playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.players[playerID] = models.NewPlayer(playerID)
	s.log.Info().Str("player", playerID).Msg("player connected")
}

// Disconnect is the implicit leave for every subsystem the player touched.
// Idempotent; a second call for the same id does nothing.
func (s *GameService) Disconnect(playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, ok := s.players[playerID]
	if !ok {
		return
	}

	s.leaveRoomLocked(player)
	s.sched.CancelScope(playerID)

	delete(s.friendRequests, playerID)
	for _, pending := range s.friendRequests {
		delete(pending, playerID)
	}
	for friend := range s.friends[playerID] {
		delete(s.friends[friend], playerID)
	}
	delete(s.friends, playerID)

	delete(s.players, playerID)
	s.log.Info().Str("player", playerID).Msg("player disconnected")
}

// Shutdown cancels all running timers.
func (s *GameService) Shutdown() {
	s.sched.CancelAll()
}

// Tuning returns a copy of the live tuning snapshot.
func (s *GameService) Tuning() config.Tuning {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tuning
}

// sendTo delivers to a single client. Safe while holding the mutex: the
// notifier only enqueues onto a buffered per-connection channel.
func (s *GameService) sendTo(playerID string, msgType messages.MessageType, payload interface{}) {
	s.notifier.SendTo(playerID, messages.BaseMessage{Type: msgType, Payload: payload})
}

// broadcastToRoom sends to every member of the room. excludeID may be empty.
func (s *GameService) broadcastToRoom(room *models.Room, msgType messages.MessageType, payload interface{}, excludeID string) {
	msg := messages.BaseMessage{Type: msgType, Payload: payload}
	for memberID := range room.Members {
		if memberID == excludeID {
			continue
		}
		s.notifier.SendTo(memberID, msg)
	}
}

// pvpMapLocked builds the playerID -> opt-in map for a room.
func (s *GameService) pvpMapLocked(room *models.Room) map[string]bool {
	m := make(map[string]bool, len(room.Members))
	for memberID := range room.Members {
		m[memberID] = s.players[memberID].PVP
	}
	return m
}

// playerRoomLocked resolves a player and the room it is in.
func (s *GameService) playerRoomLocked(playerID string) (*models.Player, *models.Room, error) {
	player, ok := s.players[playerID]
	if !ok {
		return nil, nil, ErrPlayerNotFound
	}
	room, ok := s.rooms[player.RoomID]
	if !ok {
		return nil, nil, ErrRoomNotFound
	}
	return player, room, nil
}

func distance(a, b models.Position) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
