package models

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// MonsterTier is a fixed stat block for one monster class.
type MonsterTier struct {
	Name     string `json:"name"`
	HP       int    `json:"hp"`
	Attack   int    `json:"attack"`
	ExpValue int    `json:"expValue"`
	Color    string `json:"color"`
}

// MonsterTiers is the spawn catalog; the spawn timer picks uniformly.
var MonsterTiers = []MonsterTier{
	{Name: "small", HP: 30, Attack: 5, ExpValue: 20, Color: "#7ec850"},
	{Name: "medium", HP: 80, Attack: 12, ExpValue: 50, Color: "#e0a030"},
	{Name: "boss", HP: 200, Attack: 25, ExpValue: 150, Color: "#c03030"},
}

type Monster struct {
	ID         string      `json:"id"`
	Tier       MonsterTier `json:"tier"`
	HP         int         `json:"hp"`
	Position   Position    `json:"position"`
	LastAttack time.Time   `json:"-"`
}

// NewMonster rolls a random tier and places the monster at pos.
func NewMonster(pos Position) *Monster {
	tier := MonsterTiers[rand.Intn(len(MonsterTiers))]
	return &Monster{
		ID:       uuid.NewString(),
		Tier:     tier,
		HP:       tier.HP,
		Position: pos,
	}
}

// NewMonsterOfTier places a monster of a named tier, for admin spawns.
// Returns nil if the tier name is unknown.
func NewMonsterOfTier(name string, pos Position) *Monster {
	for _, tier := range MonsterTiers {
		if tier.Name == name {
			return &Monster{
				ID:       uuid.NewString(),
				Tier:     tier,
				HP:       tier.HP,
				Position: pos,
			}
		}
	}
	return nil
}
