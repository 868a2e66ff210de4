package services

import (
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"pixelarena/server/config"
	"pixelarena/server/messages"
	"pixelarena/server/models"
)

// fakeNotifier records every message the service tries to deliver, keyed by
// recipient.
type fakeNotifier struct {
	mu   sync.Mutex
	sent map[string][]messages.BaseMessage
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{sent: make(map[string][]messages.BaseMessage)}
}

func (f *fakeNotifier) SendTo(playerID string, msg messages.BaseMessage) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent[playerID] = append(f.sent[playerID], msg)
}

// ofType returns every message of one kind delivered to a recipient.
func (f *fakeNotifier) ofType(playerID string, t messages.MessageType) []messages.BaseMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []messages.BaseMessage
	for _, msg := range f.sent[playerID] {
		if msg.Type == t {
			out = append(out, msg)
		}
	}
	return out
}

func (f *fakeNotifier) countOfType(playerID string, t messages.MessageType) int {
	return len(f.ofType(playerID, t))
}

func (f *fakeNotifier) lastOfType(tb testing.TB, playerID string, t messages.MessageType) messages.BaseMessage {
	tb.Helper()
	msgs := f.ofType(playerID, t)
	require.NotEmpty(tb, msgs, "no %q message delivered to %s", t, playerID)
	return msgs[len(msgs)-1]
}

func (f *fakeNotifier) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = make(map[string][]messages.BaseMessage)
}

// testTuning keeps every timer interval far beyond test duration so state
// only changes when a test invokes a tick step directly.
func testTuning() config.Tuning {
	return config.Tuning{
		RoomWidth:  1280,
		RoomHeight: 720,

		MonsterSpawnIntervalMs: 3600000,
		MonsterMoveIntervalMs:  3600000,
		MaxMonstersPerRoom:     5,
		MonsterMoveDelta:       48,

		SwordSpawnIntervalMs: 3600000,
		GunSpawnIntervalMs:   3600000,
		MaxSwordsPerRoom:     1,
		MaxGunsPerRoom:       1,
		SwordSpawnX:          640,
		SwordSpawnY:          360,
		PickupRadius:         60,

		ProjectileTickMs:          3600000,
		ProjectileFriction:        0.98,
		ProjectileMinSpeed:        40,
		ProjectileLifetimeMs:      2000,
		ProjectileCollisionRadius: 40,

		MeleeRange:     80,
		DamageJitter:   0,
		PVPSwordDamage: 25,
		PVPGunDamage:   15,
		RespawnX:       100,
		RespawnY:       100,
	}
}

func newTestService(tb testing.TB) (*GameService, *fakeNotifier) {
	return newTestServiceWith(tb, testTuning())
}

func newTestServiceWith(tb testing.TB, tuning config.Tuning) (*GameService, *fakeNotifier) {
	tb.Helper()
	notifier := newFakeNotifier()
	svc := NewGameService(notifier, tuning, zerolog.Nop())
	tb.Cleanup(svc.Shutdown)
	return svc, notifier
}

// joinPlayer connects a player and puts it into a room at a position.
func joinPlayer(tb testing.TB, svc *GameService, playerID, roomID string, pos models.Position) {
	tb.Helper()
	svc.Connect(playerID)
	err := svc.Join(playerID, messages.JoinRoomPayload{
		RoomID:   roomID,
		Name:     "player-" + playerID,
		Position: pos,
	})
	require.NoError(tb, err)
}

// roomState fetches live room state under the service lock.
func roomState(svc *GameService, roomID string) (*models.Room, bool) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	room, ok := svc.rooms[roomID]
	return room, ok
}

func playerState(svc *GameService, playerID string) *models.Player {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return svc.players[playerID]
}
