package handlers

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"pixelarena/server/messages"
	"pixelarena/server/network"
	"pixelarena/server/services"
)

// ClientHandler manages a single client connection.
type ClientHandler struct {
	playerID      string
	conn          *network.Connection
	game          *services.GameService
	clientManager *ClientManager
	log           zerolog.Logger
}

// HandleClientConnection runs one client's session from upgrade to cleanup.
// The connection id doubles as the player id for its whole lifetime.
func HandleClientConnection(wsConn *websocket.Conn, game *services.GameService, clientManager *ClientManager, log zerolog.Logger) {
	playerID := uuid.NewString()
	conn := network.NewConnection(wsConn, log)

	handler := &ClientHandler{
		playerID:      playerID,
		conn:          conn,
		game:          game,
		clientManager: clientManager,
		log:           log.With().Str("player", playerID).Logger(),
	}

	game.Connect(playerID)
	clientManager.AddClient(playerID, handler)

	go conn.WritePump()
	conn.ReadPump(handler)

	// Disconnection is an implicit leave for every subsystem the player
	// participated in; the game service owns the full purge.
	clientManager.RemoveClient(playerID)
	game.Disconnect(playerID)
}

// HandleMessage dispatches one inbound frame.
func (h *ClientHandler) HandleMessage(conn *network.Connection, message []byte) {
	var msg messages.ClientMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		h.log.Warn().Err(err).Msg("malformed message")
		return
	}

	var err error
	switch msg.Type {
	case messages.MessageTypeJoinRoom:
		err = h.handleJoinRoom(msg.Payload)
	case messages.MessageTypeUpdatePosition:
		err = h.handleUpdatePosition(msg.Payload)
	case messages.MessageTypeChat:
		err = h.handleChat(msg.Payload)
	case messages.MessageTypeUpdateBackground:
		err = h.handleUpdateBackground(msg.Payload)
	case messages.MessageTypeJoinVoiceChat:
		err = h.game.JoinVoice(h.playerID)
	case messages.MessageTypeLeaveVoiceChat:
		err = h.game.LeaveVoice(h.playerID)
	case messages.MessageTypeSignalPeer:
		err = h.handleSignalPeer(msg.Payload)
	case messages.MessageTypeTalkingStatus:
		err = h.handleTalkingStatus(msg.Payload)
	case messages.MessageTypeAttackMonster:
		err = h.handleAttackMonster(msg.Payload)
	case messages.MessageTypePickupSword:
		err = h.handlePickup(msg.Payload, h.game.PickupSword)
	case messages.MessageTypePickupGun:
		err = h.handlePickup(msg.Payload, h.game.PickupGun)
	case messages.MessageTypeShootGun:
		err = h.handleShoot(msg.Payload)
	case messages.MessageTypeStartMachineGun:
		err = h.handleStartMachineGun(msg.Payload)
	case messages.MessageTypeStopMachineGun:
		h.game.StopMachineGun(h.playerID)
	case messages.MessageTypeTogglePVP:
		err = h.game.TogglePVP(h.playerID)
	case messages.MessageTypePVPSwordAttack:
		err = h.handlePVPAttack(msg.Payload, "sword")
	case messages.MessageTypePVPGunAttack:
		err = h.handlePVPAttack(msg.Payload, "gun")
	case messages.MessageTypePlayerRevive:
		err = h.game.Revive(h.playerID)
	case messages.MessageTypeFriendRequest:
		err = h.handleFriend(msg.Payload, h.game.FriendRequest)
	case messages.MessageTypeFriendAccept:
		err = h.handleFriend(msg.Payload, h.game.FriendAccept)
	case messages.MessageTypeFriendReject:
		err = h.handleFriend(msg.Payload, h.game.FriendReject)
	case messages.MessageTypeGetProfile:
		err = h.handleGetProfile(msg.Payload)
	case messages.MessageTypeOpenWallet:
		err = h.game.OpenWallet(h.playerID)
	case messages.MessageTypeAdminSpawn:
		err = h.handleAdminSpawn(msg.Payload)
	case messages.MessageTypeAdminClear:
		err = h.game.AdminClearMonsters(h.playerID)
	case messages.MessageTypeAdminSettings:
		err = h.handleAdminSettings(msg.Payload)
	default:
		h.log.Warn().Str("type", string(msg.Type)).Msg("unknown message type")
		h.sendError("unknown-message-type", "unknown message type received")
		return
	}

	if err != nil {
		h.log.Debug().Err(err).Str("type", string(msg.Type)).Msg("action rejected")
		h.sendError(errorCode(err), err.Error())
	}
}

func (h *ClientHandler) handleJoinRoom(raw json.RawMessage) error {
	var p messages.JoinRoomPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return err
	}
	return h.game.Join(h.playerID, p)
}

func (h *ClientHandler) handleUpdatePosition(raw json.RawMessage) error {
	var p messages.UpdatePositionPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return err
	}
	return h.game.UpdatePosition(h.playerID, p)
}

func (h *ClientHandler) handleChat(raw json.RawMessage) error {
	var p messages.ChatPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return err
	}
	return h.game.Chat(h.playerID, p.Message)
}

func (h *ClientHandler) handleUpdateBackground(raw json.RawMessage) error {
	var p messages.UpdateBackgroundPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return err
	}
	return h.game.UpdateBackground(h.playerID, p.Background)
}

func (h *ClientHandler) handleSignalPeer(raw json.RawMessage) error {
	var p messages.SignalPeerPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return err
	}
	return h.game.RelaySignal(h.playerID, p.To, p.Signal)
}

func (h *ClientHandler) handleTalkingStatus(raw json.RawMessage) error {
	var p messages.TalkingStatusPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return err
	}
	return h.game.TalkingStatus(h.playerID, p.IsTalking, p.IsMuted)
}

func (h *ClientHandler) handleAttackMonster(raw json.RawMessage) error {
	var p messages.AttackMonsterPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return err
	}
	return h.game.AttackMonster(h.playerID, p.MonsterID)
}

func (h *ClientHandler) handlePickup(raw json.RawMessage, pickup func(playerID, itemID string) error) error {
	var p messages.PickupPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return err
	}
	return pickup(h.playerID, p.ItemID)
}

func (h *ClientHandler) handleShoot(raw json.RawMessage) error {
	var p messages.ShootPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return err
	}
	return h.game.Shoot(h.playerID, p.Direction)
}

func (h *ClientHandler) handleStartMachineGun(raw json.RawMessage) error {
	var p messages.ShootPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return err
	}
	return h.game.StartMachineGun(h.playerID, p.Direction)
}

func (h *ClientHandler) handlePVPAttack(raw json.RawMessage, weaponKind string) error {
	var p messages.PVPAttackPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return err
	}
	return h.game.PVPAttack(h.playerID, p.TargetID, weaponKind)
}

func (h *ClientHandler) handleFriend(raw json.RawMessage, action func(playerID, otherID string) error) error {
	var p messages.FriendPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return err
	}
	return action(h.playerID, p.TargetID)
}

func (h *ClientHandler) handleGetProfile(raw json.RawMessage) error {
	var p messages.ProfileRequestPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return err
	}
	return h.game.GetProfile(h.playerID, p.PlayerID)
}

func (h *ClientHandler) handleAdminSpawn(raw json.RawMessage) error {
	var p messages.AdminSpawnPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return err
	}
	return h.game.AdminSpawnMonster(h.playerID, p.Tier, p.Position)
}

func (h *ClientHandler) handleAdminSettings(raw json.RawMessage) error {
	var tuning = h.game.Tuning()
	if err := json.Unmarshal(raw, &tuning); err != nil {
		return err
	}
	return h.game.AdminApplySettings(h.playerID, tuning)
}

func (h *ClientHandler) sendError(code, message string) {
	h.conn.SendMessage(messages.BaseMessage{
		Type:    messages.MessageTypeError,
		Payload: messages.ErrorMessage{Code: code, Message: message},
	})
}

// errorCode maps service failures onto the wire taxonomy.
func errorCode(err error) string {
	switch {
	case errors.Is(err, services.ErrPlayerNotFound),
		errors.Is(err, services.ErrRoomNotFound),
		errors.Is(err, services.ErrMonsterNotFound),
		errors.Is(err, services.ErrItemGone),
		errors.Is(err, services.ErrNoPendingFriend):
		return "not-found"
	case errors.Is(err, services.ErrOutOfRange),
		errors.Is(err, services.ErrNoWeapon),
		errors.Is(err, services.ErrNoAmmo),
		errors.Is(err, services.ErrPVPConsent),
		errors.Is(err, services.ErrTargetDead),
		errors.Is(err, services.ErrPlayerDead),
		errors.Is(err, services.ErrNotDead),
		errors.Is(err, services.ErrBadRoomID),
		errors.Is(err, services.ErrBadSettings):
		return "precondition-failed"
	case errors.Is(err, services.ErrNotAdmin):
		return "unauthorized"
	}
	return "bad-request"
}
