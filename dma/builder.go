package dma

import (
	"github.com/aritramanna/axi-4-dma-subsystem/axi"
	"github.com/aritramanna/axi-4-dma-subsystem/sim"
)

// A Builder can build transfer protocol engines.
type Builder struct {
	engine           sim.Engine
	bus              *axi.Bus
	timeoutThreshold uint64
	bufferCapacity   int
}

// MakeBuilder returns a builder with the default configuration: the watchdog
// threshold at its production value and the elastic buffer sized for the
// maximum single transfer.
func MakeBuilder() Builder {
	return Builder{
		timeoutThreshold: DefaultTimeoutThreshold,
		bufferCapacity:   MaxTransferBytes / axi.BusWidthBytes,
	}
}

// WithEngine sets the engine that drives the component.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithBus sets the bus the engine masters.
func (b Builder) WithBus(bus *axi.Bus) Builder {
	b.bus = bus
	return b
}

// WithTimeoutThreshold sets the number of pending ticks either watchdog
// tolerates before aborting the transfer.
func (b Builder) WithTimeoutThreshold(threshold uint64) Builder {
	b.timeoutThreshold = threshold
	return b
}

// WithBufferCapacity sets the elastic buffer capacity, in beats.
func (b Builder) WithBufferCapacity(capacity int) Builder {
	b.bufferCapacity = capacity
	return b
}

// Build creates the engine and attaches it to the bus as the master.
func (b Builder) Build(name string) *Comp {
	c := &Comp{
		bus:         b.bus,
		buffer:      NewElasticBuffer(name+".Buffer", b.bufferCapacity),
		srcWatchdog: NewWatchdog(b.timeoutThreshold),
		dstWatchdog: NewWatchdog(b.timeoutThreshold),
	}

	c.TickingComponent = sim.NewTickingComponent(name, b.engine, c)
	b.bus.ConnectMaster(c)

	return c
}
