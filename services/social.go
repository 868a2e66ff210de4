package services

import (
	"pixelarena/server/messages"
)

// FriendRequest records a pending request and notifies the target. Sending
// the same request twice just renotifies.
func (s *GameService) FriendRequest(fromID, targetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	from, ok := s.players[fromID]
	if !ok {
		return ErrPlayerNotFound
	}
	if _, ok := s.players[targetID]; !ok {
		return ErrPlayerNotFound
	}

	if s.friendRequests[targetID] == nil {
		s.friendRequests[targetID] = make(map[string]bool)
	}
	s.friendRequests[targetID][fromID] = true

	s.sendTo(targetID, messages.MessageTypeFriendRequested, messages.FriendEventPayload{
		From: fromID,
		Name: from.Name,
	})
	return nil
}

// FriendAccept resolves a pending request addressed to the caller and makes
// the friendship symmetric.
func (s *GameService) FriendAccept(playerID, requesterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, ok := s.players[playerID]
	if !ok {
		return ErrPlayerNotFound
	}
	if !s.friendRequests[playerID][requesterID] {
		return ErrNoPendingFriend
	}
	delete(s.friendRequests[playerID], requesterID)

	if s.friends[playerID] == nil {
		s.friends[playerID] = make(map[string]bool)
	}
	if s.friends[requesterID] == nil {
		s.friends[requesterID] = make(map[string]bool)
	}
	s.friends[playerID][requesterID] = true
	s.friends[requesterID][playerID] = true

	s.sendTo(requesterID, messages.MessageTypeFriendAccepted, messages.FriendEventPayload{
		From: playerID,
		Name: player.Name,
	})
	return nil
}

// FriendReject drops a pending request and notifies the requester.
func (s *GameService) FriendReject(playerID, requesterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, ok := s.players[playerID]
	if !ok {
		return ErrPlayerNotFound
	}
	if !s.friendRequests[playerID][requesterID] {
		return ErrNoPendingFriend
	}
	delete(s.friendRequests[playerID], requesterID)

	s.sendTo(requesterID, messages.MessageTypeFriendRejected, messages.FriendEventPayload{
		From: playerID,
		Name: player.Name,
	})
	return nil
}

// GetProfile sends another player's public profile to the requester.
func (s *GameService) GetProfile(requesterID, playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.players[requesterID]; !ok {
		return ErrPlayerNotFound
	}
	target, ok := s.players[playerID]
	if !ok {
		return ErrPlayerNotFound
	}

	s.sendTo(requesterID, messages.MessageTypePlayerProfile, messages.PlayerProfilePayload{
		PlayerID: target.ID,
		Name:     target.Name,
		Role:     target.Role,
		Skin:     target.Skin,
		Level:    target.Level,
	})
	return nil
}

// OpenWallet sends the caller their own gold balance.
func (s *GameService) OpenWallet(playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, ok := s.players[playerID]
	if !ok {
		return ErrPlayerNotFound
	}

	s.sendTo(playerID, messages.MessageTypePlayerWallet, messages.PlayerWalletPayload{
		Gold: player.Gold,
	})
	return nil
}
