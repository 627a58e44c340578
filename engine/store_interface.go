package engine

import (
	"github.com/lixenwraith/lane-siege/core"
)

// AnyStore provides type-erased operations for lifecycle management
// World destroys entities and flushes commands through this interface without knowing concrete types
type AnyStore interface {
	RemoveEntity(e core.Entity)
	RemoveBatch(entities []core.Entity)
	HasEntity(e core.Entity) bool
	CountEntities() int
	ClearAllComponents()
	GetAllEntities() []core.Entity
}
