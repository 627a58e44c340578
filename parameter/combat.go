package parameter

// Collision
const (
	// CollisionRadius is the planar hit radius between a projectile and a target, in world units
	CollisionRadius = 0.5

	// CollisionRadiusSq is compared against squared planar distance to avoid a square root
	CollisionRadiusSq = CollisionRadius * CollisionRadius
)

// Projectiles
const (
	// DefaultProjectileSpeed applies to ranged actors whose stats omit a projectile speed, world units per second
	DefaultProjectileSpeed = 6.0

	// ProjectileSpawnLead places a new projectile slightly ahead of its shooter
	ProjectileSpawnLead = 0.3
)
