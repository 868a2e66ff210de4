package services

import (
	"math/rand"
	"time"

	"pixelarena/server/messages"
	"pixelarena/server/models"
)

// AttackMonster resolves a melee swing against a monster: range-checked,
// damage is the attack stat plus a small jitter, and a killing blow grants
// the monster's exp with a single level-up check.
func (s *GameService) AttackMonster(playerID, monsterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, room, err := s.playerRoomLocked(playerID)
	if err != nil {
		return err
	}
	if player.State == models.StateDead {
		return ErrPlayerDead
	}

	monster, ok := room.Monsters[monsterID]
	if !ok {
		return ErrMonsterNotFound
	}
	if distance(player.Position, monster.Position) > s.tuning.MeleeRange {
		return ErrOutOfRange
	}

	damage := player.Attack
	if s.tuning.DamageJitter > 0 {
		damage += rand.Intn(s.tuning.DamageJitter + 1)
	}
	monster.HP -= damage

	s.broadcastToRoom(room, messages.MessageTypeMonsterDamaged, messages.MonsterDamagedPayload{
		MonsterID:  monsterID,
		AttackerID: playerID,
		Damage:     damage,
		HP:         monster.HP,
	}, "")

	if monster.HP <= 0 {
		s.killMonsterLocked(room, monster, player)
	}
	return nil
}

// TogglePVP flips the player's PVP opt-in unconditionally and broadcasts the
// new state to the room. The toggle timestamp is recorded so a cooldown can
// be added without a wire change.
func (s *GameService) TogglePVP(playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, room, err := s.playerRoomLocked(playerID)
	if err != nil {
		return err
	}

	player.PVP = !player.PVP
	player.PVPToggled = time.Now()

	s.broadcastToRoom(room, messages.MessageTypePVPStatusChanged, messages.PVPStatusChangedPayload{
		PlayerID: playerID,
		IsPVP:    player.PVP,
	}, "")
	s.broadcastToRoom(room, messages.MessageTypePVPStatusUpdated,
		messages.PVPStatusUpdatedPayload{PVPMap: s.pvpMapLocked(room)}, "")
	return nil
}

// PVPAttack resolves an attack between two players. Mutual consent is
// checked here, at resolution time, so a flag toggled after the client sent
// the request rejects the attack instead of applying stale state. Damage is
// fixed by weapon kind; death is sticky until an explicit revive.
func (s *GameService) PVPAttack(attackerID, targetID, weaponKind string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	attacker, room, err := s.playerRoomLocked(attackerID)
	if err != nil {
		return err
	}
	if attacker.State == models.StateDead {
		return ErrPlayerDead
	}
	target, ok := s.players[targetID]
	if !ok || !room.Members[targetID] {
		return ErrPlayerNotFound
	}
	if !attacker.PVP || !target.PVP {
		return ErrPVPConsent
	}
	if target.State == models.StateDead {
		return ErrTargetDead
	}

	var damage int
	switch weaponKind {
	case "sword":
		if !attacker.Inventory.HasSword {
			return ErrNoWeapon
		}
		damage = s.tuning.PVPSwordDamage
	case "gun":
		if !attacker.Inventory.HasGun {
			return ErrNoWeapon
		}
		damage = s.tuning.PVPGunDamage
	default:
		return ErrNoWeapon
	}

	target.ApplyDamage(damage)

	s.broadcastToRoom(room, messages.MessageTypePVPAttack, messages.PVPAttackResultPayload{
		AttackerID: attackerID,
		TargetID:   targetID,
		WeaponKind: weaponKind,
		Damage:     damage,
		HP:         target.HP,
	}, "")

	if target.State == models.StateDead {
		s.broadcastToRoom(room, messages.MessageTypePlayerDied, messages.PlayerDiedPayload{
			PlayerID: targetID,
			KillerID: attackerID,
		}, "")
		s.broadcastToRoom(room, messages.MessageTypePVPKill, messages.PVPKillPayload{
			KillerID: attackerID,
			VictimID: targetID,
		}, "")
	}
	return nil
}

// Revive brings a dead player back at the fixed safe position with full
// health. Death is an observable, player-acknowledged transition; nothing
// revives automatically.
func (s *GameService) Revive(playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, room, err := s.playerRoomLocked(playerID)
	if err != nil {
		return err
	}

	if !player.Revive(models.Position{X: s.tuning.RespawnX, Y: s.tuning.RespawnY}) {
		return ErrNotDead
	}

	s.broadcastToRoom(room, messages.MessageTypePlayerRevived, messages.PlayerRevivedPayload{
		PlayerID: playerID,
		Position: player.Position,
		HP:       player.HP,
	}, "")
	return nil
}
