package services

import (
	"encoding/json"
	"strings"
	"time"

	"pixelarena/server/messages"
	"pixelarena/server/models"
)

// Join puts a player into a room, leaving any prior room first. The room is
// created lazily on first join; a duplicate join to the same room just
// re-sends the snapshot.
func (s *GameService) Join(playerID string, p messages.JoinRoomPayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, ok := s.players[playerID]
	if !ok {
		return ErrPlayerNotFound
	}

	roomID := strings.TrimSpace(p.RoomID)
	if roomID == "" {
		return ErrBadRoomID
	}

	player.Name = p.Name
	player.Role = p.Role
	player.Skin = p.Skin
	player.BubbleColor = p.BubbleColor
	player.TextColor = p.TextColor
	player.Position = p.Position

	if player.RoomID == roomID {
		s.sendSnapshotLocked(player, s.rooms[roomID])
		return nil
	}

	if player.RoomID != "" {
		s.leaveRoomLocked(player)
	}

	room, ok := s.rooms[roomID]
	if !ok {
		room = models.NewRoom(roomID)
		s.rooms[roomID] = room
		s.startRoomTimersLocked(roomID)
		s.log.Info().Str("room", roomID).Msg("room created")
	}

	room.Members[playerID] = true
	player.RoomID = roomID

	s.broadcastToRoom(room, messages.MessageTypePlayerJoined,
		messages.PlayerJoinedPayload{Player: player}, playerID)
	s.sendSnapshotLocked(player, room)

	s.log.Info().Str("player", playerID).Str("room", roomID).Msg("player joined room")
	return nil
}

// Leave removes the player from its current room.
func (s *GameService) Leave(playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, ok := s.players[playerID]
	if !ok {
		return ErrPlayerNotFound
	}
	s.leaveRoomLocked(player)
	return nil
}

// leaveRoomLocked removes membership and voice participation, broadcasts the
// departure, and tears the room down synchronously when it empties. No-op if
// the player is not in a room.
func (s *GameService) leaveRoomLocked(player *models.Player) {
	room, ok := s.rooms[player.RoomID]
	if !ok {
		player.RoomID = ""
		return
	}

	delete(room.Members, player.ID)
	player.RoomID = ""

	wasInVoice := room.VoiceMembers[player.ID]
	delete(room.VoiceMembers, player.ID)
	delete(room.Talking, player.ID)

	s.sched.CancelScope(player.ID)

	if len(room.Members) == 0 {
		s.teardownRoomLocked(room)
		return
	}

	s.broadcastToRoom(room, messages.MessageTypePlayerLeft,
		messages.PlayerLeftPayload{PlayerID: player.ID}, "")
	if wasInVoice {
		s.broadcastToRoom(room, messages.MessageTypeUserLeftVoice,
			messages.VoiceMemberPayload{PlayerID: player.ID}, "")
		s.broadcastVoiceUpdateLocked(room)
	}
}

// teardownRoomLocked cancels every timer the room owns and forgets it, along
// with all monsters, pickups, and projectiles.
func (s *GameService) teardownRoomLocked(room *models.Room) {
	s.sched.CancelScope(room.ID)
	delete(s.rooms, room.ID)
	s.log.Info().Str("room", room.ID).Msg("room destroyed")
}

// startRoomTimersLocked launches the seconds-scale spawn and movement timers
// for a freshly created room. The projectile tick is started lazily by the
// first shot instead.
func (s *GameService) startRoomTimersLocked(roomID string) {
	t := s.tuning
	s.sched.Start(roomID, "monster-spawn",
		time.Duration(t.MonsterSpawnIntervalMs)*time.Millisecond,
		func() { s.spawnMonsterTick(roomID) })
	s.sched.Start(roomID, "monster-move",
		time.Duration(t.MonsterMoveIntervalMs)*time.Millisecond,
		func() { s.moveMonstersTick(roomID) })
	s.sched.Start(roomID, "sword-spawn",
		time.Duration(t.SwordSpawnIntervalMs)*time.Millisecond,
		func() { s.spawnSwordTick(roomID) })
	s.sched.Start(roomID, "gun-spawn",
		time.Duration(t.GunSpawnIntervalMs)*time.Millisecond,
		func() { s.spawnGunTick(roomID) })
}

// sendSnapshotLocked sends the full room-joined snapshot so the client can
// reconstruct the scene without replaying history.
func (s *GameService) sendSnapshotLocked(player *models.Player, room *models.Room) {
	roster := make([]*models.Player, 0, len(room.Members))
	for memberID := range room.Members {
		roster = append(roster, s.players[memberID])
	}

	monsters := make([]*models.Monster, 0, len(room.Monsters))
	for _, m := range room.Monsters {
		monsters = append(monsters, m)
	}
	swords := make([]*models.Sword, 0, len(room.Swords))
	for _, sw := range room.Swords {
		swords = append(swords, sw)
	}
	guns := make([]*models.Gun, 0, len(room.Guns))
	for _, g := range room.Guns {
		guns = append(guns, g)
	}

	s.sendTo(player.ID, messages.MessageTypeRoomJoined, messages.RoomJoinedPayload{
		RoomID:     room.ID,
		You:        player,
		Players:    roster,
		Background: room.Background,
		Monsters:   monsters,
		Swords:     swords,
		Guns:       guns,
		PVPMap:     s.pvpMapLocked(room),
		Voice:      s.voiceUpdateLocked(room),
	})
}

// Chat relays a chat message to the whole room, sender included, so every
// client renders the bubble from the same server-confirmed event.
func (s *GameService) Chat(playerID string, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, room, err := s.playerRoomLocked(playerID)
	if err != nil {
		return err
	}

	s.broadcastToRoom(room, messages.MessageTypeNewMessage, messages.NewMessagePayload{
		From:        player.ID,
		Name:        player.Name,
		Message:     text,
		BubbleColor: player.BubbleColor,
		TextColor:   player.TextColor,
		Timestamp:   messages.Now(),
	}, "")
	return nil
}

// UpdateBackground stores the opaque theme blob on the room (replayed
// verbatim in later snapshots) and broadcasts it.
func (s *GameService) UpdateBackground(playerID string, background json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, room, err := s.playerRoomLocked(playerID)
	if err != nil {
		return err
	}

	room.Background = background
	s.broadcastToRoom(room, messages.MessageTypeBackgroundChanged,
		messages.BackgroundChangedPayload{Background: background}, "")
	return nil
}
