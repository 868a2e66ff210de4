package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixelarena/server/messages"
	"pixelarena/server/models"
)

func TestSpawnTickBroadcastsOneMonster(t *testing.T) {
	svc, notifier := newTestService(t)
	joinPlayer(t, svc, "p1", "R1", models.Position{})
	notifier.reset()

	svc.spawnMonsterTick("R1")

	room, _ := roomState(svc, "R1")
	assert.Len(t, room.Monsters, 1)
	assert.Equal(t, 1, notifier.countOfType("p1", messages.MessageTypeMonsterSpawned))
}

func TestSpawnTickRespectsCapacity(t *testing.T) {
	svc, notifier := newTestService(t)
	joinPlayer(t, svc, "p1", "R1", models.Position{})

	for i := 0; i < 20; i++ {
		svc.spawnMonsterTick("R1")
	}

	room, _ := roomState(svc, "R1")
	assert.Len(t, room.Monsters, svc.Tuning().MaxMonstersPerRoom)
	// over-cap ticks are silent, not error events
	assert.Zero(t, notifier.countOfType("p1", messages.MessageTypeError))
}

func TestSpawnTickOnUnknownRoomIsNoop(t *testing.T) {
	svc, _ := newTestService(t)
	svc.spawnMonsterTick("nope")
}

func TestMoveTickClampsToBoundsAndBroadcasts(t *testing.T) {
	svc, notifier := newTestService(t)
	joinPlayer(t, svc, "p1", "R1", models.Position{})

	monster := models.NewMonster(models.Position{X: 0, Y: 0})
	svc.mu.Lock()
	svc.rooms["R1"].Monsters[monster.ID] = monster
	svc.mu.Unlock()
	notifier.reset()

	for i := 0; i < 50; i++ {
		svc.moveMonstersTick("R1")
	}

	tuning := svc.Tuning()
	svc.mu.Lock()
	pos := monster.Position
	svc.mu.Unlock()
	assert.GreaterOrEqual(t, pos.X, 0.0)
	assert.LessOrEqual(t, pos.X, tuning.RoomWidth)
	assert.GreaterOrEqual(t, pos.Y, 0.0)
	assert.LessOrEqual(t, pos.Y, tuning.RoomHeight)
	assert.Equal(t, 50, notifier.countOfType("p1", messages.MessageTypeMonsterMoved))
}

func TestAdminSpawnRequiresAdminRole(t *testing.T) {
	svc, _ := newTestService(t)
	joinPlayer(t, svc, "p1", "R1", models.Position{})

	err := svc.AdminSpawnMonster("p1", "boss", models.Position{X: 1, Y: 1})
	assert.ErrorIs(t, err, ErrNotAdmin)
}

func TestAdminSpawnAndClear(t *testing.T) {
	svc, notifier := newTestService(t)
	svc.Connect("a1")
	require.NoError(t, svc.Join("a1", messages.JoinRoomPayload{RoomID: "R1", Role: "admin"}))

	require.NoError(t, svc.AdminSpawnMonster("a1", "boss", models.Position{X: 5, Y: 5}))
	room, _ := roomState(svc, "R1")
	require.Len(t, room.Monsters, 1)
	for _, m := range room.Monsters {
		assert.Equal(t, "boss", m.Tier.Name)
	}

	notifier.reset()
	require.NoError(t, svc.AdminClearMonsters("a1"))
	room, _ = roomState(svc, "R1")
	assert.Empty(t, room.Monsters)
	assert.Equal(t, 1, notifier.countOfType("a1", messages.MessageTypeMonsterKilled))
	assert.Equal(t, 1, notifier.countOfType("a1", messages.MessageTypeAdminSuccess))
}

func TestAdminSpawnUnknownTier(t *testing.T) {
	svc, _ := newTestService(t)
	svc.Connect("a1")
	require.NoError(t, svc.Join("a1", messages.JoinRoomPayload{RoomID: "R1", Role: "admin"}))

	err := svc.AdminSpawnMonster("a1", "dragon", models.Position{})
	assert.ErrorIs(t, err, ErrMonsterNotFound)
}
