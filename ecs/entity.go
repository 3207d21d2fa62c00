package ecs

import "fmt"

// Entity packs a slot id in the low 32 bits and the slot generation in the
// high 32 bits. A destroyed slot is reused with the next generation, so
// stale handles stop resolving.
type Entity uint64

// Nil never refers to a live entity.
const Nil Entity = 0

type entityID uint32
type generation uint32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<32 | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> 32))
}

// String renders the entity as id.generation.
func (e Entity) String() string {
	if e.id() == 0 {
		return "nil"
	}
	return fmt.Sprintf("%d.%d", e.id(), e.generation())
}

func (e Entity) Valid() bool {
	return e.id() != 0
}
