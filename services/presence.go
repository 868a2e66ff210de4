package services

import (
	"pixelarena/server/messages"
)

// UpdatePosition mutates the player record and relays the movement tuple to
// every other room member. The sender is excluded: clients apply their own
// locally predicted movement. No plausibility checks are made; for
// player-controlled motion the server is a relay, not a physics authority.
func (s *GameService) UpdatePosition(playerID string, p messages.UpdatePositionPayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, room, err := s.playerRoomLocked(playerID)
	if err != nil {
		return err
	}

	player.Position = p.Position
	if p.Anim != "" {
		player.Anim = p.Anim
	}
	if p.Direction != "" {
		player.Direction = p.Direction
	}

	s.broadcastToRoom(room, messages.MessageTypePlayerMoved, messages.PlayerMovedPayload{
		PlayerID:  playerID,
		Position:  player.Position,
		Anim:      player.Anim,
		Direction: player.Direction,
		Timestamp: messages.Now(),
	}, playerID)
	return nil
}
