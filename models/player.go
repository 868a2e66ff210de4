package models

import "time"

// Direction a player sprite is facing.
type Direction string

const (
	DirectionUp    Direction = "up"
	DirectionDown  Direction = "down"
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// Anim is the player animation state.
type Anim string

const (
	AnimIdle Anim = "idle"
	AnimWalk Anim = "walk"
)

// CombatState tracks whether a player can take part in combat. Dead players
// stay dead until an explicit revive; damaging a dead player is a non-event.
type CombatState string

const (
	StateAlive CombatState = "alive"
	StateDead  CombatState = "dead"
)

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Inventory is a player's carried weapons.
type Inventory struct {
	HasSword  bool   `json:"hasSword"`
	SwordType string `json:"swordType,omitempty"`
	HasGun    bool   `json:"hasGun"`
	GunType   string `json:"gunType,omitempty"`
	Ammo      int    `json:"ammo"`
}

type Player struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Role        string      `json:"role"`
	RoomID      string      `json:"-"`
	Position    Position    `json:"position"`
	Direction   Direction   `json:"direction"`
	Anim        Anim        `json:"anim"`
	BubbleColor string      `json:"bubbleColor"`
	TextColor   string      `json:"textColor"`
	Skin        string      `json:"skin"`
	HP          int         `json:"hp"`
	MaxHP       int         `json:"maxHp"`
	Attack      int         `json:"attack"`
	Level       int         `json:"level"`
	Exp         int         `json:"exp"`
	ExpToNext   int         `json:"expToNextLevel"`
	Inventory   Inventory   `json:"inventory"`
	PVP         bool        `json:"isPVP"`
	PVPToggled  time.Time   `json:"-"`
	Aim         Velocity    `json:"-"`
	State       CombatState `json:"combatState"`
	Gold        int         `json:"-"`
	CreatedAt   time.Time   `json:"-"`
}

// NewPlayer builds a player record with the connect-time defaults.
func NewPlayer(id string) *Player {
	return &Player{
		ID:        id,
		Direction: DirectionDown,
		Anim:      AnimIdle,
		HP:        100,
		MaxHP:     100,
		Attack:    10,
		Level:     1,
		Exp:       0,
		ExpToNext: 100,
		State:     StateAlive,
		CreatedAt: time.Now(),
	}
}

// ApplyDamage lowers hp (floored at 0) and transitions to Dead when it hits
// the floor. Returns false if the player was already dead, in which case no
// damage is applied.
func (p *Player) ApplyDamage(amount int) bool {
	if p.State == StateDead {
		return false
	}
	p.HP -= amount
	if p.HP <= 0 {
		p.HP = 0
		p.State = StateDead
	}
	return true
}

// Revive resets a dead player to full health at the given position. Reviving
// a living player is a no-op.
func (p *Player) Revive(at Position) bool {
	if p.State != StateDead {
		return false
	}
	p.HP = p.MaxHP
	p.Position = at
	p.State = StateAlive
	return true
}

// GainExp adds exp with a single level-up check, mirroring one level gained
// per kill at most.
func (p *Player) GainExp(amount int) bool {
	p.Exp += amount
	if p.Exp >= p.ExpToNext {
		p.Level++
		p.Exp -= p.ExpToNext
		p.ExpToNext = p.Level * 100
		return true
	}
	return false
}
