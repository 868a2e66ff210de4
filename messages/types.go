package messages

import (
	"encoding/json"
	"time"

	"pixelarena/server/models"
)

// MessageType defines the type of message being sent.
type MessageType string

// Client -> server message kinds.
const (
	MessageTypeJoinRoom         MessageType = "join-room"
	MessageTypeUpdatePosition   MessageType = "update-position"
	MessageTypeChat             MessageType = "chat"
	MessageTypeUpdateBackground MessageType = "update-background"
	MessageTypeJoinVoiceChat    MessageType = "join-voice-chat"
	MessageTypeLeaveVoiceChat   MessageType = "leave-voice-chat"
	MessageTypeSignalPeer       MessageType = "signal-peer"
	MessageTypeTalkingStatus    MessageType = "talking-status"
	MessageTypeAttackMonster    MessageType = "attack-monster"
	MessageTypePickupSword      MessageType = "pickup-sword"
	MessageTypePickupGun        MessageType = "pickup-gun"
	MessageTypeShootGun         MessageType = "shoot-gun"
	MessageTypeStartMachineGun  MessageType = "start-machine-gun-firing"
	MessageTypeStopMachineGun   MessageType = "stop-machine-gun-firing"
	MessageTypeTogglePVP        MessageType = "toggle-pvp"
	MessageTypePVPSwordAttack   MessageType = "pvp-sword-attack"
	MessageTypePVPGunAttack     MessageType = "pvp-gun-attack"
	MessageTypePlayerRevive     MessageType = "player-revived"
	MessageTypeFriendRequest    MessageType = "friend-request"
	MessageTypeFriendAccept     MessageType = "friend-accept"
	MessageTypeFriendReject     MessageType = "friend-reject"
	MessageTypeGetProfile       MessageType = "get-player-profile"
	MessageTypeOpenWallet       MessageType = "open-player-wallet"
	MessageTypeAdminSpawn       MessageType = "admin-spawn-monster"
	MessageTypeAdminClear       MessageType = "admin-clear-monsters"
	MessageTypeAdminSettings    MessageType = "admin-apply-settings"
)

// Server -> client message kinds.
const (
	MessageTypeRoomJoined         MessageType = "room-joined"
	MessageTypePlayerJoined       MessageType = "player-joined"
	MessageTypePlayerLeft         MessageType = "player-left"
	MessageTypePlayerMoved        MessageType = "player-moved"
	MessageTypeNewMessage         MessageType = "new-message"
	MessageTypeBackgroundChanged  MessageType = "background-changed"
	MessageTypeVoiceChatUpdate    MessageType = "voice-chat-update"
	MessageTypeUserJoinedVoice    MessageType = "user-joined-voice"
	MessageTypeUserLeftVoice      MessageType = "user-left-voice"
	MessageTypeSignalData         MessageType = "signal-data"
	MessageTypeMonsterSpawned     MessageType = "monster-spawned"
	MessageTypeMonsterMoved       MessageType = "monster-moved"
	MessageTypeMonsterDamaged     MessageType = "monster-damaged"
	MessageTypeMonsterKilled      MessageType = "monster-killed"
	MessageTypePlayerDamaged      MessageType = "player-damaged"
	MessageTypePlayerDied         MessageType = "player-died"
	MessageTypeSwordSpawned       MessageType = "sword-spawned"
	MessageTypeGunSpawned         MessageType = "gun-spawned"
	MessageTypeSwordPickedUp      MessageType = "sword-picked-up"
	MessageTypeGunPickedUp        MessageType = "gun-picked-up"
	MessageTypeInventoryUpdated   MessageType = "inventory-updated"
	MessageTypeProjectileCreated  MessageType = "projectile-created"
	MessageTypeProjectilesUpdated MessageType = "projectiles-updated"
	MessageTypePVPStatusChanged   MessageType = "pvp-status-changed"
	MessageTypePVPStatusUpdated   MessageType = "pvp-status-updated"
	MessageTypePVPAttack          MessageType = "pvp-attack"
	MessageTypePVPKill            MessageType = "pvp-kill"
	MessageTypeStatsUpdated       MessageType = "player-stats-updated"
	MessageTypePlayerRevived      MessageType = "player-revived"
	MessageTypeFriendRequested    MessageType = "friend-request"
	MessageTypeFriendAccepted     MessageType = "friend-accepted"
	MessageTypeFriendRejected     MessageType = "friend-rejected"
	MessageTypePlayerProfile      MessageType = "player-profile"
	MessageTypePlayerWallet       MessageType = "player-wallet"
	MessageTypeAdminSettingsState MessageType = "admin-settings"
	MessageTypeAdminStats         MessageType = "admin-stats"
	MessageTypeAdminSuccess       MessageType = "admin-action-success"
	MessageTypeError              MessageType = "error"
)

// BaseMessage is the outbound envelope for all messages.
type BaseMessage struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// ClientMessage is the inbound envelope; the payload stays raw until the
// handler for the concrete type decodes it.
type ClientMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ErrorMessage is the named failure event sent back to the requester only.
type ErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// --- inbound payloads ---

type JoinRoomPayload struct {
	RoomID      string          `json:"roomId"`
	Name        string          `json:"name"`
	Role        string          `json:"role"`
	Skin        string          `json:"skin"`
	BubbleColor string          `json:"bubbleColor"`
	TextColor   string          `json:"textColor"`
	Position    models.Position `json:"position"`
}

type UpdatePositionPayload struct {
	Position  models.Position  `json:"position"`
	Anim      models.Anim      `json:"anim,omitempty"`
	Direction models.Direction `json:"direction,omitempty"`
}

type ChatPayload struct {
	Message string `json:"message"`
}

type UpdateBackgroundPayload struct {
	Background json.RawMessage `json:"background"`
}

type SignalPeerPayload struct {
	To     string          `json:"to"`
	Signal json.RawMessage `json:"signal"`
}

type TalkingStatusPayload struct {
	IsTalking bool `json:"isTalking"`
	IsMuted   bool `json:"isMuted"`
}

type AttackMonsterPayload struct {
	MonsterID string `json:"monsterId"`
}

type PickupPayload struct {
	ItemID string `json:"itemId"`
}

type ShootPayload struct {
	Direction models.Velocity `json:"direction"`
}

type PVPAttackPayload struct {
	TargetID string `json:"targetId"`
}

type FriendPayload struct {
	TargetID string `json:"targetId"`
}

type ProfileRequestPayload struct {
	PlayerID string `json:"playerId"`
}

type AdminSpawnPayload struct {
	Tier     string          `json:"tier"`
	Position models.Position `json:"position"`
}

// --- outbound payloads ---

// RoomJoinedPayload is the full snapshot a client needs to reconstruct the
// scene without replaying history.
type RoomJoinedPayload struct {
	RoomID     string                 `json:"roomId"`
	You        *models.Player         `json:"you"`
	Players    []*models.Player       `json:"players"`
	Background json.RawMessage        `json:"background,omitempty"`
	Monsters   []*models.Monster      `json:"monsters"`
	Swords     []*models.Sword        `json:"swords"`
	Guns       []*models.Gun          `json:"guns"`
	PVPMap     map[string]bool        `json:"pvpMap"`
	Voice      VoiceChatUpdatePayload `json:"voice"`
}

type PlayerJoinedPayload struct {
	Player *models.Player `json:"player"`
}

type PlayerLeftPayload struct {
	PlayerID string `json:"playerId"`
}

type PlayerMovedPayload struct {
	PlayerID  string           `json:"playerId"`
	Position  models.Position  `json:"position"`
	Anim      models.Anim      `json:"anim,omitempty"`
	Direction models.Direction `json:"direction,omitempty"`
	Timestamp int64            `json:"timestamp"`
}

type NewMessagePayload struct {
	From        string `json:"from"`
	Name        string `json:"name"`
	Message     string `json:"message"`
	BubbleColor string `json:"bubbleColor"`
	TextColor   string `json:"textColor"`
	Timestamp   int64  `json:"timestamp"`
}

type BackgroundChangedPayload struct {
	Background json.RawMessage `json:"background"`
}

type VoiceChatUpdatePayload struct {
	Members []string        `json:"members"`
	Talking map[string]bool `json:"talking"`
}

type VoiceMemberPayload struct {
	PlayerID string `json:"playerId"`
}

type SignalDataPayload struct {
	From   string          `json:"from"`
	Signal json.RawMessage `json:"signal"`
}

type MonsterSpawnedPayload struct {
	Monster *models.Monster `json:"monster"`
}

type MonsterMovedPayload struct {
	MonsterID string          `json:"monsterId"`
	Position  models.Position `json:"position"`
}

type MonsterDamagedPayload struct {
	MonsterID  string `json:"monsterId"`
	AttackerID string `json:"attackerId"`
	Damage     int    `json:"damage"`
	HP         int    `json:"hp"`
}

type MonsterKilledPayload struct {
	MonsterID string `json:"monsterId"`
	KillerID  string `json:"killerId"`
	Exp       int    `json:"exp"`
}

type PlayerDamagedPayload struct {
	PlayerID   string `json:"playerId"`
	AttackerID string `json:"attackerId"`
	Damage     int    `json:"damage"`
	HP         int    `json:"hp"`
}

type PlayerDiedPayload struct {
	PlayerID string `json:"playerId"`
	KillerID string `json:"killerId"`
}

type SwordSpawnedPayload struct {
	Sword *models.Sword `json:"sword"`
}

type GunSpawnedPayload struct {
	Gun *models.Gun `json:"gun"`
}

type ItemPickedUpPayload struct {
	ItemID   string `json:"itemId"`
	PlayerID string `json:"playerId"`
}

type InventoryUpdatedPayload struct {
	Inventory models.Inventory `json:"inventory"`
	Attack    int              `json:"attack"`
}

type ProjectileCreatedPayload struct {
	Projectile *models.Projectile `json:"projectile"`
}

// ProjectileState is one entry of the batched per-tick position update.
type ProjectileState struct {
	ID       string          `json:"id"`
	Position models.Position `json:"position"`
}

type ProjectilesUpdatedPayload struct {
	Projectiles []ProjectileState `json:"projectiles"`
}

type PVPStatusChangedPayload struct {
	PlayerID string `json:"playerId"`
	IsPVP    bool   `json:"isPVP"`
}

// PVPStatusUpdatedPayload carries the whole room's opt-in map so late or
// resynchronizing clients never depend on having seen every single toggle.
type PVPStatusUpdatedPayload struct {
	PVPMap map[string]bool `json:"pvpMap"`
}

type PVPAttackResultPayload struct {
	AttackerID string `json:"attackerId"`
	TargetID   string `json:"targetId"`
	WeaponKind string `json:"weaponKind"`
	Damage     int    `json:"damage"`
	HP         int    `json:"hp"`
}

type PVPKillPayload struct {
	KillerID string `json:"killerId"`
	VictimID string `json:"victimId"`
}

type StatsUpdatedPayload struct {
	PlayerID  string `json:"playerId"`
	HP        int    `json:"hp"`
	MaxHP     int    `json:"maxHp"`
	Attack    int    `json:"attack"`
	Level     int    `json:"level"`
	Exp       int    `json:"exp"`
	ExpToNext int    `json:"expToNextLevel"`
}

type PlayerRevivedPayload struct {
	PlayerID string          `json:"playerId"`
	Position models.Position `json:"position"`
	HP       int             `json:"hp"`
}

type FriendEventPayload struct {
	From string `json:"from"`
	Name string `json:"name"`
}

type PlayerProfilePayload struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Skin     string `json:"skin"`
	Level    int    `json:"level"`
}

type PlayerWalletPayload struct {
	Gold int `json:"gold"`
}

type AdminStatsPayload struct {
	Rooms    int `json:"rooms"`
	Players  int `json:"players"`
	Monsters int `json:"monsters"`
}

type AdminSuccessPayload struct {
	Action string `json:"action"`
}

// Now returns the server timestamp in milliseconds stamped onto outbound
// events.
func Now() int64 {
	return time.Now().UnixMilli()
}
