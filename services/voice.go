package services

import (
	"encoding/json"

	"pixelarena/server/messages"
	"pixelarena/server/models"
)

// JoinVoice adds the player to the room's voice set. The updated membership
// and talking map go to the whole room, the joiner included, so no client
// misses a state change that raced its own join.
func (s *GameService) JoinVoice(playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, room, err := s.playerRoomLocked(playerID)
	if err != nil {
		return err
	}

	if !room.VoiceMembers[playerID] {
		room.VoiceMembers[playerID] = true
		s.broadcastToRoom(room, messages.MessageTypeUserJoinedVoice,
			messages.VoiceMemberPayload{PlayerID: playerID}, "")
	}
	s.broadcastVoiceUpdateLocked(room)
	return nil
}

// LeaveVoice removes the player from the voice set and clears any talking
// flag. Idempotent.
func (s *GameService) LeaveVoice(playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, room, err := s.playerRoomLocked(playerID)
	if err != nil {
		return err
	}

	if room.VoiceMembers[playerID] {
		delete(room.VoiceMembers, playerID)
		delete(room.Talking, playerID)
		s.broadcastToRoom(room, messages.MessageTypeUserLeftVoice,
			messages.VoiceMemberPayload{PlayerID: playerID}, "")
	}
	s.broadcastVoiceUpdateLocked(room)
	return nil
}

// RelaySignal forwards an opaque WebRTC negotiation payload to the addressed
// peer only. The server never interprets signal contents.
func (s *GameService) RelaySignal(fromID, toID string, signal json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.players[fromID]; !ok {
		return ErrPlayerNotFound
	}
	if _, ok := s.players[toID]; !ok {
		return ErrPlayerNotFound
	}

	s.sendTo(toID, messages.MessageTypeSignalData, messages.SignalDataPayload{
		From:   fromID,
		Signal: signal,
	})
	return nil
}

// TalkingStatus updates the room's talking map; muted counts as not
// talking. Ignored for players not in voice chat.
func (s *GameService) TalkingStatus(playerID string, isTalking, isMuted bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, room, err := s.playerRoomLocked(playerID)
	if err != nil {
		return err
	}
	if !room.VoiceMembers[playerID] {
		return nil
	}

	room.Talking[playerID] = isTalking && !isMuted
	s.broadcastVoiceUpdateLocked(room)
	return nil
}

func (s *GameService) voiceUpdateLocked(room *models.Room) messages.VoiceChatUpdatePayload {
	members := make([]string, 0, len(room.VoiceMembers))
	for id := range room.VoiceMembers {
		members = append(members, id)
	}
	talking := make(map[string]bool, len(room.Talking))
	for id, t := range room.Talking {
		talking[id] = t
	}
	return messages.VoiceChatUpdatePayload{Members: members, Talking: talking}
}

func (s *GameService) broadcastVoiceUpdateLocked(room *models.Room) {
	s.broadcastToRoom(room, messages.MessageTypeVoiceChatUpdate, s.voiceUpdateLocked(room), "")
}
