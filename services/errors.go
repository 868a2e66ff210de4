package services

import "errors"

// Service-level failures. Handlers map these onto named failure events sent
// to the requesting client only; they never affect other players.
var (
	ErrPlayerNotFound  = errors.New("player not found")
	ErrRoomNotFound    = errors.New("room not found")
	ErrBadRoomID       = errors.New("room id must not be empty")
	ErrMonsterNotFound = errors.New("monster not found")
	ErrItemGone        = errors.New("item no longer exists")
	ErrOutOfRange      = errors.New("target out of range")
	ErrNoWeapon        = errors.New("required weapon not held")
	ErrNoAmmo          = errors.New("out of ammo")
	ErrPVPConsent      = errors.New("both players must have pvp enabled")
	ErrTargetDead      = errors.New("target is already dead")
	ErrPlayerDead      = errors.New("player is dead")
	ErrNotDead         = errors.New("player is not dead")
	ErrBadSettings     = errors.New("timer intervals must be positive")
	ErrNotAdmin        = errors.New("admin role required")
	ErrNoPendingFriend = errors.New("no pending friend request")
)
