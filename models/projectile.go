package models

import (
	"time"

	"github.com/google/uuid"
)

// Velocity is a 2D velocity vector in units per second.
type Velocity struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Projectile is one bullet in flight. It is advanced by the room's
// projectile tick and removed on lifetime expiry, speed decay, or the first
// monster hit.
type Projectile struct {
	ID         string        `json:"id"`
	OwnerID    string        `json:"ownerId"`
	WeaponType string        `json:"weaponType"`
	Damage     int           `json:"damage"`
	Position   Position      `json:"position"`
	Velocity   Velocity      `json:"velocity"`
	CreatedAt  time.Time     `json:"-"`
	Lifetime   time.Duration `json:"-"`
	Active     bool          `json:"-"`
}

func NewProjectile(ownerID, weaponType string, damage int, pos Position, vel Velocity, lifetime time.Duration) *Projectile {
	return &Projectile{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		WeaponType: weaponType,
		Damage:     damage,
		Position:   pos,
		Velocity:   vel,
		CreatedAt:  time.Now(),
		Lifetime:   lifetime,
		Active:     true,
	}
}

// Expired reports whether the lifetime budget has elapsed at now.
func (p *Projectile) Expired(now time.Time) bool {
	return now.Sub(p.CreatedAt) > p.Lifetime
}
