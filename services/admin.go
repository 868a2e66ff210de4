package services

import (
	"pixelarena/server/config"
	"pixelarena/server/messages"
	"pixelarena/server/models"
)

func (s *GameService) requireAdminLocked(playerID string) (*models.Player, error) {
	player, ok := s.players[playerID]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	if player.Role != "admin" {
		return nil, ErrNotAdmin
	}
	return player, nil
}

// AdminSpawnMonster spawns a monster of a chosen tier at a chosen position,
// bypassing the room capacity cap.
func (s *GameService) AdminSpawnMonster(playerID string, tier string, pos models.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.requireAdminLocked(playerID); err != nil {
		return err
	}
	_, room, err := s.playerRoomLocked(playerID)
	if err != nil {
		return err
	}

	var monster *models.Monster
	if tier == "" {
		monster = models.NewMonster(pos)
	} else {
		monster = models.NewMonsterOfTier(tier, pos)
		if monster == nil {
			return ErrMonsterNotFound
		}
	}
	room.Monsters[monster.ID] = monster

	s.broadcastToRoom(room, messages.MessageTypeMonsterSpawned,
		messages.MonsterSpawnedPayload{Monster: monster}, "")
	s.sendTo(playerID, messages.MessageTypeAdminSuccess,
		messages.AdminSuccessPayload{Action: "spawn-monster"})
	return nil
}

// AdminClearMonsters removes every monster from the admin's room,
// broadcasting each removal so clients can despawn them.
func (s *GameService) AdminClearMonsters(playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.requireAdminLocked(playerID); err != nil {
		return err
	}
	_, room, err := s.playerRoomLocked(playerID)
	if err != nil {
		return err
	}

	for id, monster := range room.Monsters {
		delete(room.Monsters, id)
		s.broadcastToRoom(room, messages.MessageTypeMonsterKilled, messages.MonsterKilledPayload{
			MonsterID: monster.ID,
		}, "")
	}

	s.sendTo(playerID, messages.MessageTypeAdminSuccess,
		messages.AdminSuccessPayload{Action: "clear-monsters"})
	return nil
}

// validateTuning rejects settings the timers cannot run on. time.NewTicker
// panics on a non-positive interval, so these must never reach the scheduler.
func validateTuning(t config.Tuning) error {
	for _, ms := range []int{
		t.MonsterSpawnIntervalMs,
		t.MonsterMoveIntervalMs,
		t.SwordSpawnIntervalMs,
		t.GunSpawnIntervalMs,
		t.ProjectileTickMs,
	} {
		if ms <= 0 {
			return ErrBadSettings
		}
	}
	return nil
}

// AdminApplySettings swaps the live tuning snapshot and restarts each room's
// spawn/movement timers so new intervals take effect. Caps, ranges, and
// damage values apply immediately. Invalid settings are rejected whole; the
// previous tuning stays live.
func (s *GameService) AdminApplySettings(playerID string, tuning config.Tuning) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.requireAdminLocked(playerID); err != nil {
		return err
	}
	if err := validateTuning(tuning); err != nil {
		return err
	}

	s.tuning = tuning
	for roomID := range s.rooms {
		s.sched.Cancel(roomID, "monster-spawn")
		s.sched.Cancel(roomID, "monster-move")
		s.sched.Cancel(roomID, "sword-spawn")
		s.sched.Cancel(roomID, "gun-spawn")
		s.startRoomTimersLocked(roomID)
	}

	s.sendTo(playerID, messages.MessageTypeAdminSettingsState, tuning)
	s.sendTo(playerID, messages.MessageTypeAdminStats, s.statsLocked())
	s.sendTo(playerID, messages.MessageTypeAdminSuccess,
		messages.AdminSuccessPayload{Action: "apply-settings"})
	s.log.Info().Str("admin", playerID).Msg("settings applied")
	return nil
}

func (s *GameService) statsLocked() messages.AdminStatsPayload {
	monsters := 0
	for _, room := range s.rooms {
		monsters += len(room.Monsters)
	}
	return messages.AdminStatsPayload{
		Rooms:    len(s.rooms),
		Players:  len(s.players),
		Monsters: monsters,
	}
}
