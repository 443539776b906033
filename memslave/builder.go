package memslave

import (
	"math/rand"

	"github.com/aritramanna/axi-4-dma-subsystem/axi"
	"github.com/aritramanna/axi-4-dma-subsystem/sim"
)

// A Builder can build memory slaves.
type Builder struct {
	engine  sim.Engine
	bus     *axi.Bus
	storage *Storage
	rng     *rand.Rand
}

// MakeBuilder returns a builder with a default configuration: a fresh empty
// storage and no random stalls.
func MakeBuilder() Builder {
	return Builder{}
}

// WithEngine sets the engine that drives the component.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithBus sets the bus the slave serves.
func (b Builder) WithBus(bus *axi.Bus) Builder {
	b.bus = bus
	return b
}

// WithStorage sets the backing memory, replacing the default empty one.
func (b Builder) WithStorage(storage *Storage) Builder {
	b.storage = storage
	return b
}

// WithRandomStalls enables seeded random handshake delays.
func (b Builder) WithRandomStalls(seed int64) Builder {
	b.rng = rand.New(rand.NewSource(seed))
	return b
}

// Build creates the slave and attaches it to the bus.
func (b Builder) Build(name string) *Comp {
	storage := b.storage
	if storage == nil {
		storage = NewStorage()
	}

	c := &Comp{
		bus:     b.bus,
		storage: storage,
		rng:     b.rng,
	}

	c.TickingComponent = sim.NewSecondaryTickingComponent(name, b.engine, c)
	b.bus.ConnectSlave(c)

	return c
}
