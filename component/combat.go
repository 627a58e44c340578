package component

import "time"

// CombatantComponent drives melee and ranged attacks outside the projectile path
type CombatantComponent struct {
	Damage         int
	AttackInterval time.Duration
	// LastActionTime is simulation time of the last attack
	LastActionTime time.Duration
	// Range is the reach along the lane axis in world units
	Range float64
	// Ranged actors fire projectiles instead of applying damage directly
	Ranged          bool
	ProjectileSpeed float64
	ProjectileAsset string
	// Engaged is set while a melee target is in reach, mobile actors hold position
	Engaged bool
}

// Ready reports whether the attack interval has elapsed at now
func (c *CombatantComponent) Ready(now time.Duration) bool {
	return now-c.LastActionTime >= c.AttackInterval
}

// HealthComponent holds hit points
// Invariant: Current <= Max and Dead == (Current <= 0)
type HealthComponent struct {
	Current int
	Max     int
	Dead    bool
}

// NewHealth returns a full health record
func NewHealth(max int) HealthComponent {
	return HealthComponent{Current: max, Max: max, Dead: max <= 0}
}

// ApplyDamage subtracts damage and updates the dead flag, returns true if this hit killed
func (h *HealthComponent) ApplyDamage(damage int) bool {
	wasDead := h.Dead
	h.Current -= damage
	if h.Current > h.Max {
		h.Current = h.Max
	}
	h.Dead = h.Current <= 0
	return h.Dead && !wasDead
}

// Heal restores hit points up to Max, dead entities stay dead
func (h *HealthComponent) Heal(amount int) {
	if h.Dead || amount <= 0 {
		return
	}
	h.Current += amount
	if h.Current > h.Max {
		h.Current = h.Max
	}
}

// ProjectileComponent is a shot travelling along one lane
type ProjectileComponent struct {
	Damage    int
	Speed     float64
	Lane      int
	Direction float64
	// Step is the signed lane-axis distance covered by the last move; hits are tested along it
	Step float64
}
