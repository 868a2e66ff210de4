package handlers

import (
	"sync"

	"github.com/rs/zerolog"

	"pixelarena/server/messages"
)

// ClientManager is the connection registry: it maps player ids to their
// handlers and is the services layer's way of reaching a client. It
// implements services.Notifier.
type ClientManager struct {
	clients map[string]*ClientHandler
	mutex   sync.RWMutex
	log     zerolog.Logger
}

// NewClientManager creates a new client manager.
func NewClientManager(log zerolog.Logger) *ClientManager {
	return &ClientManager{
		clients: make(map[string]*ClientHandler),
		log:     log,
	}
}

// AddClient adds a client to the manager.
func (cm *ClientManager) AddClient(playerID string, handler *ClientHandler) {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()
	cm.clients[playerID] = handler
}

// RemoveClient removes a client from the manager.
func (cm *ClientManager) RemoveClient(playerID string) {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()
	delete(cm.clients, playerID)
}

// SendTo delivers a message to one connected client. Unknown ids are
// dropped silently; the player may have disconnected between event
// production and delivery.
func (cm *ClientManager) SendTo(playerID string, msg messages.BaseMessage) {
	cm.mutex.RLock()
	client, ok := cm.clients[playerID]
	cm.mutex.RUnlock()
	if !ok {
		return
	}
	if err := client.conn.SendMessage(msg); err != nil {
		cm.log.Warn().Err(err).Str("player", playerID).Msg("failed to send to client")
	}
}

// Count returns the number of connected clients.
func (cm *ClientManager) Count() int {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()
	return len(cm.clients)
}
