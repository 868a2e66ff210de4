package services

import (
	"math/rand"

	"pixelarena/server/messages"
	"pixelarena/server/models"
)

// spawnMonsterTick attempts one spawn for the room. A room at capacity skips
// silently; that is the expected steady state of the timer, not a failure.
func (s *GameService) spawnMonsterTick(roomID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return
	}
	if len(room.Monsters) >= s.tuning.MaxMonstersPerRoom {
		return
	}

	monster := models.NewMonster(s.randomPositionLocked())
	room.Monsters[monster.ID] = monster

	s.broadcastToRoom(room, messages.MessageTypeMonsterSpawned,
		messages.MonsterSpawnedPayload{Monster: monster}, "")
	s.log.Debug().Str("room", roomID).Str("tier", monster.Tier.Name).Msg("monster spawned")
}

// moveMonstersTick perturbs every live monster by a bounded random delta,
// clamped to room bounds, and rebroadcasts each move individually.
func (s *GameService) moveMonstersTick(roomID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return
	}

	d := s.tuning.MonsterMoveDelta
	for _, monster := range room.Monsters {
		monster.Position.X = clamp(monster.Position.X+(rand.Float64()*2-1)*d, 0, s.tuning.RoomWidth)
		monster.Position.Y = clamp(monster.Position.Y+(rand.Float64()*2-1)*d, 0, s.tuning.RoomHeight)

		s.broadcastToRoom(room, messages.MessageTypeMonsterMoved, messages.MonsterMovedPayload{
			MonsterID: monster.ID,
			Position:  monster.Position,
		}, "")
	}
}

// killMonsterLocked removes a dead monster, grants its exp to the killer,
// and broadcasts the kill plus the killer's updated stats. The monster must
// already have hp <= 0; removal happens exactly once because the map delete
// makes any later damage against the id a not-found.
func (s *GameService) killMonsterLocked(room *models.Room, monster *models.Monster, killer *models.Player) {
	delete(room.Monsters, monster.ID)

	exp := monster.Tier.ExpValue
	if killer != nil {
		killer.GainExp(exp)
	}

	killerID := ""
	if killer != nil {
		killerID = killer.ID
	}
	s.broadcastToRoom(room, messages.MessageTypeMonsterKilled, messages.MonsterKilledPayload{
		MonsterID: monster.ID,
		KillerID:  killerID,
		Exp:       exp,
	}, "")

	if killer != nil {
		s.broadcastStatsLocked(room, killer)
	}
}

// broadcastStatsLocked publishes a player's current combat stats to the room.
func (s *GameService) broadcastStatsLocked(room *models.Room, player *models.Player) {
	s.broadcastToRoom(room, messages.MessageTypeStatsUpdated, messages.StatsUpdatedPayload{
		PlayerID:  player.ID,
		HP:        player.HP,
		MaxHP:     player.MaxHP,
		Attack:    player.Attack,
		Level:     player.Level,
		Exp:       player.Exp,
		ExpToNext: player.ExpToNext,
	}, "")
}

func (s *GameService) randomPositionLocked() models.Position {
	return models.Position{
		X: rand.Float64() * s.tuning.RoomWidth,
		Y: rand.Float64() * s.tuning.RoomHeight,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
