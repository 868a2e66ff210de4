package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixelarena/server/messages"
	"pixelarena/server/models"
)

func addMonster(tb testing.TB, svc *GameService, roomID, tier string, pos models.Position) *models.Monster {
	tb.Helper()
	monster := models.NewMonsterOfTier(tier, pos)
	require.NotNil(tb, monster)
	svc.mu.Lock()
	svc.rooms[roomID].Monsters[monster.ID] = monster
	svc.mu.Unlock()
	return monster
}

func TestAttackUnknownMonster(t *testing.T) {
	svc, _ := newTestService(t)
	joinPlayer(t, svc, "p1", "R1", models.Position{})

	assert.ErrorIs(t, svc.AttackMonster("p1", "nope"), ErrMonsterNotFound)
}

func TestAttackMonsterOutOfMeleeRange(t *testing.T) {
	svc, _ := newTestService(t)
	joinPlayer(t, svc, "p1", "R1", models.Position{X: 0, Y: 0})
	monster := addMonster(t, svc, "R1", "small", models.Position{X: 500, Y: 500})

	assert.ErrorIs(t, svc.AttackMonster("p1", monster.ID), ErrOutOfRange)

	svc.mu.Lock()
	hp := svc.rooms["R1"].Monsters[monster.ID].HP
	svc.mu.Unlock()
	assert.Equal(t, monster.Tier.HP, hp)
}

func TestAttackDamagesMonotonically(t *testing.T) {
	svc, notifier := newTestService(t)
	joinPlayer(t, svc, "p1", "R1", models.Position{})
	monster := addMonster(t, svc, "R1", "medium", models.Position{X: 10, Y: 10})
	notifier.reset()

	require.NoError(t, svc.AttackMonster("p1", monster.ID))
	first := notifier.lastOfType(t, "p1", messages.MessageTypeMonsterDamaged).Payload.(messages.MonsterDamagedPayload)
	require.NoError(t, svc.AttackMonster("p1", monster.ID))
	second := notifier.lastOfType(t, "p1", messages.MessageTypeMonsterDamaged).Payload.(messages.MonsterDamagedPayload)

	assert.Less(t, second.HP, first.HP)
	assert.Equal(t, 10, first.Damage, "jitter disabled in test tuning")
}

func TestKillRemovesMonsterExactlyOnce(t *testing.T) {
	svc, notifier := newTestService(t)
	joinPlayer(t, svc, "p1", "R1", models.Position{})
	monster := addMonster(t, svc, "R1", "small", models.Position{X: 10, Y: 10})
	monster.HP = 1
	notifier.reset()

	require.NoError(t, svc.AttackMonster("p1", monster.ID))

	assert.Equal(t, 1, notifier.countOfType("p1", messages.MessageTypeMonsterKilled))
	// a second swing at the same id is a not-found, never a double kill
	assert.ErrorIs(t, svc.AttackMonster("p1", monster.ID), ErrMonsterNotFound)
	assert.Equal(t, 1, notifier.countOfType("p1", messages.MessageTypeMonsterKilled))

	p1 := playerState(svc, "p1")
	assert.Equal(t, monster.Tier.ExpValue, p1.Exp)
}

func TestKillLevelsUpOnce(t *testing.T) {
	svc, notifier := newTestService(t)
	joinPlayer(t, svc, "p1", "R1", models.Position{})
	monster := addMonster(t, svc, "R1", "small", models.Position{X: 10, Y: 10})
	monster.HP = 1

	svc.mu.Lock()
	svc.players["p1"].Exp = 90
	svc.mu.Unlock()
	notifier.reset()

	require.NoError(t, svc.AttackMonster("p1", monster.ID))

	p1 := playerState(svc, "p1")
	assert.Equal(t, 2, p1.Level)
	assert.Equal(t, 10, p1.Exp)
	assert.Equal(t, 200, p1.ExpToNext)

	stats := notifier.lastOfType(t, "p1", messages.MessageTypeStatsUpdated).Payload.(messages.StatsUpdatedPayload)
	assert.Equal(t, 2, stats.Level)
}

func TestPVPRequiresMutualConsentAtResolutionTime(t *testing.T) {
	svc, _ := newTestService(t)
	joinPlayer(t, svc, "p1", "R1", models.Position{})
	joinPlayer(t, svc, "p2", "R1", models.Position{})
	armSword(t, svc, "p1")

	// neither flag set
	assert.ErrorIs(t, svc.PVPAttack("p1", "p2", "sword"), ErrPVPConsent)

	require.NoError(t, svc.TogglePVP("p1"))
	assert.ErrorIs(t, svc.PVPAttack("p1", "p2", "sword"), ErrPVPConsent)

	require.NoError(t, svc.TogglePVP("p2"))
	assert.NoError(t, svc.PVPAttack("p1", "p2", "sword"))

	// target opting back out after the request closes the TOCTOU window
	require.NoError(t, svc.TogglePVP("p2"))
	assert.ErrorIs(t, svc.PVPAttack("p1", "p2", "sword"), ErrPVPConsent)
}

func armSword(tb testing.TB, svc *GameService, playerID string) {
	tb.Helper()
	svc.mu.Lock()
	svc.players[playerID].Inventory.HasSword = true
	svc.players[playerID].Inventory.SwordType = "steel"
	svc.mu.Unlock()
}

func TestPVPFixedDamageDeathAndRevive(t *testing.T) {
	svc, notifier := newTestService(t)
	joinPlayer(t, svc, "p1", "R1", models.Position{})
	joinPlayer(t, svc, "p2", "R1", models.Position{})
	armSword(t, svc, "p1")
	require.NoError(t, svc.TogglePVP("p1"))
	require.NoError(t, svc.TogglePVP("p2"))
	notifier.reset()

	require.NoError(t, svc.PVPAttack("p1", "p2", "sword"))
	attack := notifier.lastOfType(t, "p2", messages.MessageTypePVPAttack).Payload.(messages.PVPAttackResultPayload)
	assert.Equal(t, 25, attack.Damage)
	assert.Equal(t, 75, attack.HP)

	// three more swings bring p2 to exactly 0
	for i := 0; i < 3; i++ {
		require.NoError(t, svc.PVPAttack("p1", "p2", "sword"))
	}
	p2 := playerState(svc, "p2")
	assert.Equal(t, 0, p2.HP)
	assert.Equal(t, models.StateDead, p2.State)
	assert.Equal(t, 1, notifier.countOfType("p1", messages.MessageTypePVPKill))
	assert.Equal(t, 1, notifier.countOfType("p1", messages.MessageTypePlayerDied))

	// death is sticky: no further damage accepted
	assert.ErrorIs(t, svc.PVPAttack("p1", "p2", "sword"), ErrTargetDead)

	// and only an explicit revive restores the player
	require.NoError(t, svc.Revive("p2"))
	p2 = playerState(svc, "p2")
	assert.Equal(t, p2.MaxHP, p2.HP)
	assert.Equal(t, models.StateAlive, p2.State)
	tuning := svc.Tuning()
	assert.Equal(t, models.Position{X: tuning.RespawnX, Y: tuning.RespawnY}, p2.Position)

	revived := notifier.lastOfType(t, "p1", messages.MessageTypePlayerRevived).Payload.(messages.PlayerRevivedPayload)
	assert.Equal(t, "p2", revived.PlayerID)
}

func TestReviveAlivePlayerRejected(t *testing.T) {
	svc, _ := newTestService(t)
	joinPlayer(t, svc, "p1", "R1", models.Position{})

	assert.ErrorIs(t, svc.Revive("p1"), ErrNotDead)
}

func TestPVPGunAttackUsesGunDamage(t *testing.T) {
	svc, notifier := newTestService(t)
	joinPlayer(t, svc, "p1", "R1", models.Position{})
	joinPlayer(t, svc, "p2", "R1", models.Position{})
	armGun(t, svc, "p1", "pistol")
	require.NoError(t, svc.TogglePVP("p1"))
	require.NoError(t, svc.TogglePVP("p2"))
	notifier.reset()

	require.NoError(t, svc.PVPAttack("p1", "p2", "gun"))
	attack := notifier.lastOfType(t, "p2", messages.MessageTypePVPAttack).Payload.(messages.PVPAttackResultPayload)
	assert.Equal(t, 15, attack.Damage)
}

func TestPVPAttackRequiresWeapon(t *testing.T) {
	svc, _ := newTestService(t)
	joinPlayer(t, svc, "p1", "R1", models.Position{})
	joinPlayer(t, svc, "p2", "R1", models.Position{})
	require.NoError(t, svc.TogglePVP("p1"))
	require.NoError(t, svc.TogglePVP("p2"))

	assert.ErrorIs(t, svc.PVPAttack("p1", "p2", "sword"), ErrNoWeapon)
	assert.ErrorIs(t, svc.PVPAttack("p1", "p2", "gun"), ErrNoWeapon)
}

func TestPVPAttackTargetInOtherRoom(t *testing.T) {
	svc, _ := newTestService(t)
	joinPlayer(t, svc, "p1", "R1", models.Position{})
	joinPlayer(t, svc, "p2", "R2", models.Position{})
	armSword(t, svc, "p1")

	assert.ErrorIs(t, svc.PVPAttack("p1", "p2", "sword"), ErrPlayerNotFound)
}

func TestDeadAttackerCannotAct(t *testing.T) {
	svc, _ := newTestService(t)
	joinPlayer(t, svc, "p1", "R1", models.Position{})
	joinPlayer(t, svc, "p2", "R1", models.Position{})
	armSword(t, svc, "p1")
	armGun(t, svc, "p1", "pistol")
	require.NoError(t, svc.TogglePVP("p1"))
	require.NoError(t, svc.TogglePVP("p2"))
	monster := addMonster(t, svc, "R1", "small", models.Position{X: 120, Y: 100})

	svc.mu.Lock()
	svc.players["p1"].ApplyDamage(svc.players["p1"].MaxHP)
	svc.mu.Unlock()

	assert.ErrorIs(t, svc.AttackMonster("p1", monster.ID), ErrPlayerDead)
	assert.ErrorIs(t, svc.PVPAttack("p1", "p2", "sword"), ErrPlayerDead)
	assert.ErrorIs(t, svc.Shoot("p1", models.Velocity{X: 1}), ErrPlayerDead)
	assert.ErrorIs(t, svc.StartMachineGun("p1", models.Velocity{X: 1}), ErrPlayerDead)

	// reviving restores the ability to attack; respawn is in melee range
	require.NoError(t, svc.Revive("p1"))
	assert.NoError(t, svc.AttackMonster("p1", monster.ID))
}

func TestTogglePVPBroadcastsRoomMap(t *testing.T) {
	svc, notifier := newTestService(t)
	joinPlayer(t, svc, "p1", "R1", models.Position{})
	joinPlayer(t, svc, "p2", "R1", models.Position{})
	notifier.reset()

	require.NoError(t, svc.TogglePVP("p1"))

	for _, id := range []string{"p1", "p2"} {
		msg := notifier.lastOfType(t, id, messages.MessageTypePVPStatusUpdated)
		pvpMap := msg.Payload.(messages.PVPStatusUpdatedPayload).PVPMap
		assert.Equal(t, map[string]bool{"p1": true, "p2": false}, pvpMap)
	}

	require.NoError(t, svc.TogglePVP("p2"))
	last := notifier.lastOfType(t, "p1", messages.MessageTypePVPStatusUpdated)
	assert.Equal(t, map[string]bool{"p1": true, "p2": true},
		last.Payload.(messages.PVPStatusUpdatedPayload).PVPMap)
}

func TestTogglePVPBroadcastsToRoom(t *testing.T) {
	svc, notifier := newTestService(t)
	joinPlayer(t, svc, "p1", "R1", models.Position{})
	joinPlayer(t, svc, "p2", "R1", models.Position{})
	notifier.reset()

	require.NoError(t, svc.TogglePVP("p1"))

	for _, id := range []string{"p1", "p2"} {
		msg := notifier.lastOfType(t, id, messages.MessageTypePVPStatusChanged)
		payload := msg.Payload.(messages.PVPStatusChangedPayload)
		assert.Equal(t, "p1", payload.PlayerID)
		assert.True(t, payload.IsPVP)
	}
}
