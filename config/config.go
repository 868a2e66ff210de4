package config

import (
	"github.com/spf13/viper"
)

// Load sets default values and optionally reads server.cfg.json from
// configDir. A missing config file is not an error; the defaults describe a
// fully playable server.
func Load(configDir string) error {
	viper.SetDefault("port", "8080")
	viper.SetDefault("logLevel", "info")

	viper.SetDefault("room.width", 1280.0)
	viper.SetDefault("room.height", 720.0)

	viper.SetDefault("monsters.spawnIntervalMs", 10000)
	viper.SetDefault("monsters.moveIntervalMs", 3000)
	viper.SetDefault("monsters.maxPerRoom", 5)
	viper.SetDefault("monsters.moveDelta", 48.0)

	viper.SetDefault("weapons.swordSpawnIntervalMs", 30000)
	viper.SetDefault("weapons.gunSpawnIntervalMs", 45000)
	viper.SetDefault("weapons.maxSwordsPerRoom", 1)
	viper.SetDefault("weapons.maxGunsPerRoom", 1)
	viper.SetDefault("weapons.swordSpawnX", 640.0)
	viper.SetDefault("weapons.swordSpawnY", 360.0)
	viper.SetDefault("weapons.pickupRadius", 60.0)

	viper.SetDefault("projectiles.tickMs", 50)
	viper.SetDefault("projectiles.friction", 0.98)
	viper.SetDefault("projectiles.minSpeed", 40.0)
	viper.SetDefault("projectiles.lifetimeMs", 2000)
	viper.SetDefault("projectiles.collisionRadius", 40.0)

	viper.SetDefault("combat.meleeRange", 80.0)
	viper.SetDefault("combat.damageJitter", 5)
	viper.SetDefault("combat.pvpSwordDamage", 25)
	viper.SetDefault("combat.pvpGunDamage", 15)
	viper.SetDefault("combat.respawnX", 100.0)
	viper.SetDefault("combat.respawnY", 100.0)

	viper.SetConfigName("server.cfg.json")
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}
	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// Tuning is a snapshot of every gameplay knob. Services copy it once at
// construction and again when an admin applies new settings.
type Tuning struct {
	RoomWidth  float64 `json:"roomWidth" mapstructure:"roomWidth"`
	RoomHeight float64 `json:"roomHeight" mapstructure:"roomHeight"`

	MonsterSpawnIntervalMs int     `json:"monsterSpawnIntervalMs" mapstructure:"monsterSpawnIntervalMs"`
	MonsterMoveIntervalMs  int     `json:"monsterMoveIntervalMs" mapstructure:"monsterMoveIntervalMs"`
	MaxMonstersPerRoom     int     `json:"maxMonstersPerRoom" mapstructure:"maxMonstersPerRoom"`
	MonsterMoveDelta       float64 `json:"monsterMoveDelta" mapstructure:"monsterMoveDelta"`

	SwordSpawnIntervalMs int     `json:"swordSpawnIntervalMs" mapstructure:"swordSpawnIntervalMs"`
	GunSpawnIntervalMs   int     `json:"gunSpawnIntervalMs" mapstructure:"gunSpawnIntervalMs"`
	MaxSwordsPerRoom     int     `json:"maxSwordsPerRoom" mapstructure:"maxSwordsPerRoom"`
	MaxGunsPerRoom       int     `json:"maxGunsPerRoom" mapstructure:"maxGunsPerRoom"`
	SwordSpawnX          float64 `json:"swordSpawnX" mapstructure:"swordSpawnX"`
	SwordSpawnY          float64 `json:"swordSpawnY" mapstructure:"swordSpawnY"`
	PickupRadius         float64 `json:"pickupRadius" mapstructure:"pickupRadius"`

	ProjectileTickMs          int     `json:"projectileTickMs" mapstructure:"projectileTickMs"`
	ProjectileFriction        float64 `json:"projectileFriction" mapstructure:"projectileFriction"`
	ProjectileMinSpeed        float64 `json:"projectileMinSpeed" mapstructure:"projectileMinSpeed"`
	ProjectileLifetimeMs      int     `json:"projectileLifetimeMs" mapstructure:"projectileLifetimeMs"`
	ProjectileCollisionRadius float64 `json:"projectileCollisionRadius" mapstructure:"projectileCollisionRadius"`

	MeleeRange     float64 `json:"meleeRange" mapstructure:"meleeRange"`
	DamageJitter   int     `json:"damageJitter" mapstructure:"damageJitter"`
	PVPSwordDamage int     `json:"pvpSwordDamage" mapstructure:"pvpSwordDamage"`
	PVPGunDamage   int     `json:"pvpGunDamage" mapstructure:"pvpGunDamage"`
	RespawnX       float64 `json:"respawnX" mapstructure:"respawnX"`
	RespawnY       float64 `json:"respawnY" mapstructure:"respawnY"`
}

// CurrentTuning builds a Tuning snapshot from the live viper values.
func CurrentTuning() Tuning {
	return Tuning{
		RoomWidth:  viper.GetFloat64("room.width"),
		RoomHeight: viper.GetFloat64("room.height"),

		MonsterSpawnIntervalMs: viper.GetInt("monsters.spawnIntervalMs"),
		MonsterMoveIntervalMs:  viper.GetInt("monsters.moveIntervalMs"),
		MaxMonstersPerRoom:     viper.GetInt("monsters.maxPerRoom"),
		MonsterMoveDelta:       viper.GetFloat64("monsters.moveDelta"),

		SwordSpawnIntervalMs: viper.GetInt("weapons.swordSpawnIntervalMs"),
		GunSpawnIntervalMs:   viper.GetInt("weapons.gunSpawnIntervalMs"),
		MaxSwordsPerRoom:     viper.GetInt("weapons.maxSwordsPerRoom"),
		MaxGunsPerRoom:       viper.GetInt("weapons.maxGunsPerRoom"),
		SwordSpawnX:          viper.GetFloat64("weapons.swordSpawnX"),
		SwordSpawnY:          viper.GetFloat64("weapons.swordSpawnY"),
		PickupRadius:         viper.GetFloat64("weapons.pickupRadius"),

		ProjectileTickMs:          viper.GetInt("projectiles.tickMs"),
		ProjectileFriction:        viper.GetFloat64("projectiles.friction"),
		ProjectileMinSpeed:        viper.GetFloat64("projectiles.minSpeed"),
		ProjectileLifetimeMs:      viper.GetInt("projectiles.lifetimeMs"),
		ProjectileCollisionRadius: viper.GetFloat64("projectiles.collisionRadius"),

		MeleeRange:     viper.GetFloat64("combat.meleeRange"),
		DamageJitter:   viper.GetInt("combat.damageJitter"),
		PVPSwordDamage: viper.GetInt("combat.pvpSwordDamage"),
		PVPGunDamage:   viper.GetInt("combat.pvpGunDamage"),
		RespawnX:       viper.GetFloat64("combat.respawnX"),
		RespawnY:       viper.GetFloat64("combat.respawnY"),
	}
}
