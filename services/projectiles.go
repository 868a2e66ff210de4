package services

import (
	"math"
	"time"

	"pixelarena/server/messages"
	"pixelarena/server/models"
)

const (
	projectileTickConcern = "projectile-tick"
	autofireConcern       = "autofire"
)

// Shoot fires the player's gun in the given direction: one projectile for
// single-shot weapons, an evenly spread fan for shotgun-class ones. Each
// projectile is broadcast as created and the tick integrator is started
// lazily when the room gains its first projectile.
func (s *GameService) Shoot(playerID string, dir models.Velocity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shootLocked(playerID, dir)
}

func (s *GameService) shootLocked(playerID string, dir models.Velocity) error {
	player, room, err := s.playerRoomLocked(playerID)
	if err != nil {
		return err
	}
	if player.State == models.StateDead {
		return ErrPlayerDead
	}
	if !player.Inventory.HasGun {
		return ErrNoWeapon
	}
	if player.Inventory.Ammo <= 0 {
		return ErrNoAmmo
	}
	spec, ok := models.GunSpecByType(player.Inventory.GunType)
	if !ok {
		return ErrNoWeapon
	}

	player.Inventory.Ammo--

	baseAngle := math.Atan2(dir.Y, dir.X)
	lifetime := time.Duration(s.tuning.ProjectileLifetimeMs) * time.Millisecond

	pellets := spec.Pellets
	if pellets < 1 {
		pellets = 1
	}
	for i := 0; i < pellets; i++ {
		angle := baseAngle
		if pellets > 1 {
			spread := spec.SpreadDeg * math.Pi / 180
			angle = baseAngle - spread/2 + spread*float64(i)/float64(pellets-1)
		}
		vel := models.Velocity{
			X: math.Cos(angle) * spec.Speed,
			Y: math.Sin(angle) * spec.Speed,
		}
		proj := models.NewProjectile(playerID, spec.Type, spec.Damage, player.Position, vel, lifetime)
		room.Projectiles[proj.ID] = proj

		s.broadcastToRoom(room, messages.MessageTypeProjectileCreated,
			messages.ProjectileCreatedPayload{Projectile: proj}, "")
	}

	s.sendTo(playerID, messages.MessageTypeInventoryUpdated, messages.InventoryUpdatedPayload{
		Inventory: player.Inventory,
		Attack:    player.Attack,
	})

	if !s.sched.Has(room.ID, projectileTickConcern) {
		roomID := room.ID
		s.sched.Start(roomID, projectileTickConcern,
			time.Duration(s.tuning.ProjectileTickMs)*time.Millisecond,
			func() { s.projectileTick(roomID) })
	}
	return nil
}

// StartMachineGun begins auto-fire at the equipped gun's fire rate, until
// stopped, out of ammo, or the player leaves. The aim lives on the player
// record, so a repeat start while already firing just re-aims the burst.
func (s *GameService) StartMachineGun(playerID string, dir models.Velocity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, _, err := s.playerRoomLocked(playerID)
	if err != nil {
		return err
	}
	if player.State == models.StateDead {
		return ErrPlayerDead
	}
	if !player.Inventory.HasGun {
		return ErrNoWeapon
	}
	spec, ok := models.GunSpecByType(player.Inventory.GunType)
	if !ok {
		return ErrNoWeapon
	}

	player.Aim = dir

	s.sched.Start(playerID, autofireConcern,
		time.Duration(spec.FireRateMs)*time.Millisecond,
		func() { s.autofireStep(playerID) })
	return nil
}

// autofireStep fires one round at the player's current aim. Any failure
// (out of ammo, died, left the room) ends the burst.
func (s *GameService) autofireStep(playerID string) {
	s.mu.Lock()
	var err error
	if player, ok := s.players[playerID]; ok {
		err = s.shootLocked(playerID, player.Aim)
	} else {
		err = ErrPlayerNotFound
	}
	s.mu.Unlock()
	if err != nil {
		s.sched.Cancel(playerID, autofireConcern)
	}
}

// StopMachineGun halts auto-fire; safe to call when none is running.
func (s *GameService) StopMachineGun(playerID string) {
	s.sched.Cancel(playerID, autofireConcern)
}

// projectileTick advances every projectile by velocity x dt, applies
// friction, and removes any that expired, slowed below the minimum speed, or
// hit a monster (first match wins, one hit per projectile). Still-active
// positions go out as one batched update per tick.
func (s *GameService) projectileTick(roomID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stepProjectilesLocked(roomID, time.Now())
}

func (s *GameService) stepProjectilesLocked(roomID string, now time.Time) {
	room, ok := s.rooms[roomID]
	if !ok {
		s.sched.Cancel(roomID, projectileTickConcern)
		return
	}

	dt := float64(s.tuning.ProjectileTickMs) / 1000.0

	for id, proj := range room.Projectiles {
		proj.Position.X += proj.Velocity.X * dt
		proj.Position.Y += proj.Velocity.Y * dt
		proj.Velocity.X *= s.tuning.ProjectileFriction
		proj.Velocity.Y *= s.tuning.ProjectileFriction

		if proj.Expired(now) {
			delete(room.Projectiles, id)
			continue
		}
		if math.Hypot(proj.Velocity.X, proj.Velocity.Y) < s.tuning.ProjectileMinSpeed {
			delete(room.Projectiles, id)
			continue
		}
		if hit := s.collideLocked(room, proj); hit {
			delete(room.Projectiles, id)
		}
	}

	states := make([]messages.ProjectileState, 0, len(room.Projectiles))
	for _, proj := range room.Projectiles {
		states = append(states, messages.ProjectileState{ID: proj.ID, Position: proj.Position})
	}
	s.broadcastToRoom(room, messages.MessageTypeProjectilesUpdated,
		messages.ProjectilesUpdatedPayload{Projectiles: states}, "")

	if len(room.Projectiles) == 0 {
		s.sched.Cancel(roomID, projectileTickConcern)
	}
}

// collideLocked applies damage to the first monster within the collision
// radius. Returns true when the projectile is consumed.
func (s *GameService) collideLocked(room *models.Room, proj *models.Projectile) bool {
	for _, monster := range room.Monsters {
		if distance(proj.Position, monster.Position) > s.tuning.ProjectileCollisionRadius {
			continue
		}

		monster.HP -= proj.Damage
		s.broadcastToRoom(room, messages.MessageTypeMonsterDamaged, messages.MonsterDamagedPayload{
			MonsterID:  monster.ID,
			AttackerID: proj.OwnerID,
			Damage:     proj.Damage,
			HP:         monster.HP,
		}, "")

		if monster.HP <= 0 {
			// owner may have disconnected mid-flight
			s.killMonsterLocked(room, monster, s.players[proj.OwnerID])
		}
		return true
	}
	return false
}
