package engine

import (
	"github.com/lixenwraith/lane-siege/component"
)

// ComponentStore provides typed pointers to every component store
// Built once with the world; pointers stay valid for the world's lifetime
type ComponentStore struct {
	// Simulation
	Position   *Store[component.PositionComponent]
	Mobile     *Store[component.MobileComponent]
	Combatant  *Store[component.CombatantComponent]
	Health     *Store[component.HealthComponent]
	Projectile *Store[component.ProjectileComponent]
	Faction    *Store[component.FactionComponent]
	Actor      *Store[component.ActorComponent]
	Transform  *Store[component.TransformComponent]

	// Presentation link, survives destruction until the cleanup stage releases it
	ViewBinding    *Store[component.ViewBindingComponent]
	PrefabPath     *Store[component.PrefabPathComponent]
	PendingRelease *Store[component.PendingReleaseComponent]
}

// initComponentStores allocates stores and registers them for lifecycle operations
func initComponentStores(w *World) {
	w.Components = ComponentStore{
		Position:   NewStore[component.PositionComponent](),
		Mobile:     NewStore[component.MobileComponent](),
		Combatant:  NewStore[component.CombatantComponent](),
		Health:     NewStore[component.HealthComponent](),
		Projectile: NewStore[component.ProjectileComponent](),
		Faction:    NewStore[component.FactionComponent](),
		Actor:      NewStore[component.ActorComponent](),
		Transform:  NewStore[component.TransformComponent](),

		ViewBinding:    NewStore[component.ViewBindingComponent](),
		PrefabPath:     NewStore[component.PrefabPathComponent](),
		PendingRelease: NewStore[component.PendingReleaseComponent](),
	}

	c := &w.Components
	w.simStores = []AnyStore{
		c.Position, c.Mobile, c.Combatant, c.Health,
		c.Projectile, c.Faction, c.Actor, c.Transform,
	}
	w.viewStores = []AnyStore{c.ViewBinding, c.PrefabPath, c.PendingRelease}
}
