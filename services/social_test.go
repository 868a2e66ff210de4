package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixelarena/server/messages"
	"pixelarena/server/models"
)

func TestFriendRequestAcceptFlow(t *testing.T) {
	svc, notifier := newTestService(t)
	joinPlayer(t, svc, "p1", "R1", models.Position{})
	joinPlayer(t, svc, "p2", "R1", models.Position{})
	notifier.reset()

	require.NoError(t, svc.FriendRequest("p1", "p2"))
	req := notifier.lastOfType(t, "p2", messages.MessageTypeFriendRequested)
	assert.Equal(t, "p1", req.Payload.(messages.FriendEventPayload).From)

	require.NoError(t, svc.FriendAccept("p2", "p1"))
	acc := notifier.lastOfType(t, "p1", messages.MessageTypeFriendAccepted)
	assert.Equal(t, "p2", acc.Payload.(messages.FriendEventPayload).From)

	// request is consumed; accepting again fails
	assert.ErrorIs(t, svc.FriendAccept("p2", "p1"), ErrNoPendingFriend)
}

func TestFriendRejectFlow(t *testing.T) {
	svc, notifier := newTestService(t)
	joinPlayer(t, svc, "p1", "R1", models.Position{})
	joinPlayer(t, svc, "p2", "R1", models.Position{})

	require.NoError(t, svc.FriendRequest("p1", "p2"))
	require.NoError(t, svc.FriendReject("p2", "p1"))

	rej := notifier.lastOfType(t, "p1", messages.MessageTypeFriendRejected)
	assert.Equal(t, "p2", rej.Payload.(messages.FriendEventPayload).From)
	assert.ErrorIs(t, svc.FriendReject("p2", "p1"), ErrNoPendingFriend)
}

func TestFriendRequestUnknownTarget(t *testing.T) {
	svc, _ := newTestService(t)
	joinPlayer(t, svc, "p1", "R1", models.Position{})

	assert.ErrorIs(t, svc.FriendRequest("p1", "ghost"), ErrPlayerNotFound)
}

func TestGetProfileReturnsPublicFields(t *testing.T) {
	svc, notifier := newTestService(t)
	joinPlayer(t, svc, "p1", "R1", models.Position{})
	svc.Connect("p2")
	require.NoError(t, svc.Join("p2", messages.JoinRoomPayload{
		RoomID: "R1", Name: "Mika", Role: "guest", Skin: "fox",
	}))
	notifier.reset()

	require.NoError(t, svc.GetProfile("p1", "p2"))

	msg := notifier.lastOfType(t, "p1", messages.MessageTypePlayerProfile)
	payload := msg.Payload.(messages.PlayerProfilePayload)
	assert.Equal(t, "p2", payload.PlayerID)
	assert.Equal(t, "Mika", payload.Name)
	assert.Equal(t, "fox", payload.Skin)
	assert.Equal(t, 1, payload.Level)
}

func TestOpenWalletReturnsOwnGold(t *testing.T) {
	svc, notifier := newTestService(t)
	joinPlayer(t, svc, "p1", "R1", models.Position{})
	svc.mu.Lock()
	svc.players["p1"].Gold = 250
	svc.mu.Unlock()
	notifier.reset()

	require.NoError(t, svc.OpenWallet("p1"))

	msg := notifier.lastOfType(t, "p1", messages.MessageTypePlayerWallet)
	assert.Equal(t, 250, msg.Payload.(messages.PlayerWalletPayload).Gold)
}
