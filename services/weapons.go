package services

import (
	"pixelarena/server/messages"
	"pixelarena/server/models"
)

// spawnSwordTick places a sword at the fixed map position unless the room is
// already at its sword cap.
func (s *GameService) spawnSwordTick(roomID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return
	}
	if len(room.Swords) >= s.tuning.MaxSwordsPerRoom {
		return
	}

	sword := models.NewSword(models.Position{X: s.tuning.SwordSpawnX, Y: s.tuning.SwordSpawnY})
	room.Swords[sword.ID] = sword

	s.broadcastToRoom(room, messages.MessageTypeSwordSpawned,
		messages.SwordSpawnedPayload{Sword: sword}, "")
}

// spawnGunTick places a gun at a random in-bounds position unless the room
// is at its gun cap.
func (s *GameService) spawnGunTick(roomID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[roomID]
	if !ok {
		return
	}
	if len(room.Guns) >= s.tuning.MaxGunsPerRoom {
		return
	}

	gun := models.NewGun(s.randomPositionLocked())
	room.Guns[gun.ID] = gun

	s.broadcastToRoom(room, messages.MessageTypeGunSpawned,
		messages.GunSpawnedPayload{Gun: gun}, "")
}

// PickupSword claims a sword pickup. Losing the race to another player or
// standing too far away fails without touching any state; on success the
// sword's damage is folded into the player's attack stat.
func (s *GameService) PickupSword(playerID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, room, err := s.playerRoomLocked(playerID)
	if err != nil {
		return err
	}

	sword, ok := room.Swords[itemID]
	if !ok {
		return ErrItemGone
	}
	if distance(player.Position, sword.Position) > s.tuning.PickupRadius {
		return ErrOutOfRange
	}

	delete(room.Swords, itemID)
	player.Inventory.HasSword = true
	player.Inventory.SwordType = sword.Spec.Type
	player.Attack += sword.Spec.Damage

	s.broadcastToRoom(room, messages.MessageTypeSwordPickedUp,
		messages.ItemPickedUpPayload{ItemID: itemID, PlayerID: playerID}, "")
	s.sendTo(playerID, messages.MessageTypeInventoryUpdated, messages.InventoryUpdatedPayload{
		Inventory: player.Inventory,
		Attack:    player.Attack,
	})
	return nil
}

// PickupGun claims a gun pickup, loading the player with its full ammo
// capacity.
func (s *GameService) PickupGun(playerID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, room, err := s.playerRoomLocked(playerID)
	if err != nil {
		return err
	}

	gun, ok := room.Guns[itemID]
	if !ok {
		return ErrItemGone
	}
	if distance(player.Position, gun.Position) > s.tuning.PickupRadius {
		return ErrOutOfRange
	}

	delete(room.Guns, itemID)
	player.Inventory.HasGun = true
	player.Inventory.GunType = gun.Spec.Type
	player.Inventory.Ammo = gun.Spec.Ammo

	s.broadcastToRoom(room, messages.MessageTypeGunPickedUp,
		messages.ItemPickedUpPayload{ItemID: itemID, PlayerID: playerID}, "")
	s.sendTo(playerID, messages.MessageTypeInventoryUpdated, messages.InventoryUpdatedPayload{
		Inventory: player.Inventory,
		Attack:    player.Attack,
	})
	return nil
}
