package models

import "encoding/json"

// Room is one isolated simulation and broadcast scope. A room exists if and
// only if it has at least one member; the last leave tears it down together
// with everything it owns.
type Room struct {
	ID           string
	Members      map[string]bool
	Background   json.RawMessage // opaque theme blob, replayed verbatim
	Monsters     map[string]*Monster
	Swords       map[string]*Sword
	Guns         map[string]*Gun
	Projectiles  map[string]*Projectile
	VoiceMembers map[string]bool
	Talking      map[string]bool
}

func NewRoom(id string) *Room {
	return &Room{
		ID:           id,
		Members:      make(map[string]bool),
		Monsters:     make(map[string]*Monster),
		Swords:       make(map[string]*Sword),
		Guns:         make(map[string]*Gun),
		Projectiles:  make(map[string]*Projectile),
		VoiceMembers: make(map[string]bool),
		Talking:      make(map[string]bool),
	}
}
