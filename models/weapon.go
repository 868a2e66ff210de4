package models

import (
	"math/rand"

	"github.com/google/uuid"
)

// SwordSpec is one entry of the sword catalog.
type SwordSpec struct {
	Type   string `json:"type"`
	Damage int    `json:"damage"`
	Rarity string `json:"rarity"`
}

// GunSpec is one entry of the gun catalog. Pellets > 1 marks a shotgun-class
// weapon that fires a fan of projectiles per shot.
type GunSpec struct {
	Type       string  `json:"type"`
	Damage     int     `json:"damage"`
	Rarity     string  `json:"rarity"`
	Ammo       int     `json:"ammo"`
	FireRateMs int     `json:"fireRateMs"`
	Pellets    int     `json:"pellets"`
	SpreadDeg  float64 `json:"spreadDeg"`
	Speed      float64 `json:"speed"`
}

var SwordCatalog = []SwordSpec{
	{Type: "rusty", Damage: 5, Rarity: "common"},
	{Type: "steel", Damage: 10, Rarity: "uncommon"},
	{Type: "flame", Damage: 20, Rarity: "rare"},
}

var GunCatalog = []GunSpec{
	{Type: "pistol", Damage: 10, Rarity: "common", Ammo: 12, FireRateMs: 400, Pellets: 1, Speed: 600},
	{Type: "shotgun", Damage: 8, Rarity: "uncommon", Ammo: 8, FireRateMs: 900, Pellets: 5, SpreadDeg: 30, Speed: 500},
	{Type: "machinegun", Damage: 6, Rarity: "rare", Ammo: 40, FireRateMs: 120, Pellets: 1, Speed: 700},
}

// Sword is a sword pickup lying in a room.
type Sword struct {
	ID       string    `json:"id"`
	Spec     SwordSpec `json:"spec"`
	Position Position  `json:"position"`
}

// Gun is a gun pickup lying in a room.
type Gun struct {
	ID       string   `json:"id"`
	Spec     GunSpec  `json:"spec"`
	Position Position `json:"position"`
}

func NewSword(pos Position) *Sword {
	return &Sword{
		ID:       uuid.NewString(),
		Spec:     SwordCatalog[rand.Intn(len(SwordCatalog))],
		Position: pos,
	}
}

func NewGun(pos Position) *Gun {
	return &Gun{
		ID:       uuid.NewString(),
		Spec:     GunCatalog[rand.Intn(len(GunCatalog))],
		Position: pos,
	}
}

// GunSpecByType looks a gun spec up by its catalog type name.
func GunSpecByType(name string) (GunSpec, bool) {
	for _, spec := range GunCatalog {
		if spec.Type == name {
			return spec, true
		}
	}
	return GunSpec{}, false
}
