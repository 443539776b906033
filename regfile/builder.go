package regfile

import "github.com/aritramanna/axi-4-dma-subsystem/sim"

// A Builder can build register files.
type Builder struct {
	engine sim.Engine
	core   TransferCore
}

// MakeBuilder returns a builder with a default configuration.
func MakeBuilder() Builder {
	return Builder{}
}

// WithEngine sets the engine that drives the component.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithCore sets the transfer engine the register file controls.
func (b Builder) WithCore(core TransferCore) Builder {
	b.core = core
	return b
}

// Build creates the register file. It ticks on the secondary queue so that it
// samples the done pulse in the same cycle the engine raises it.
func (b Builder) Build(name string) *Comp {
	c := &Comp{core: b.core}
	c.TickingComponent = sim.NewSecondaryTickingComponent(name, b.engine, c)

	return c
}
