package system

import (
	"github.com/aritramanna/axi-4-dma-subsystem/axi"
	"github.com/aritramanna/axi-4-dma-subsystem/datarecording"
	"github.com/aritramanna/axi-4-dma-subsystem/dma"
	"github.com/aritramanna/axi-4-dma-subsystem/memslave"
	"github.com/aritramanna/axi-4-dma-subsystem/regfile"
	"github.com/aritramanna/axi-4-dma-subsystem/sim"
)

// A Builder can build fully wired systems.
type Builder struct {
	timeoutThreshold uint64

	randomStalls bool
	stallSeed    int64

	recording     bool
	recordingPath string
}

// MakeBuilder returns a builder with a default configuration: production
// watchdog threshold, deterministic slave timing, no trace recording.
func MakeBuilder() Builder {
	return Builder{
		timeoutThreshold: dma.DefaultTimeoutThreshold,
	}
}

// WithTimeoutThreshold sets the watchdog threshold of the protocol engine.
func (b Builder) WithTimeoutThreshold(threshold uint64) Builder {
	b.timeoutThreshold = threshold
	return b
}

// WithRandomStalls makes the memory slave apply seeded random handshake
// delays.
func (b Builder) WithRandomStalls(seed int64) Builder {
	b.randomStalls = true
	b.stallSeed = seed
	return b
}

// WithDataRecording enables the transfer trace, written to an SQLite database
// at the given path.
func (b Builder) WithDataRecording(path string) Builder {
	b.recording = true
	b.recordingPath = path
	return b
}

// Build assembles and wires the subsystem.
func (b Builder) Build(name string) *System {
	engine := sim.NewSerialEngine()
	bus := axi.NewBus(name + ".Bus")

	core := dma.MakeBuilder().
		WithEngine(engine).
		WithBus(bus).
		WithTimeoutThreshold(b.timeoutThreshold).
		Build(name + ".Core")

	slaveBuilder := memslave.MakeBuilder().
		WithEngine(engine).
		WithBus(bus)
	if b.randomStalls {
		slaveBuilder = slaveBuilder.WithRandomStalls(b.stallSeed)
	}
	slave := slaveBuilder.Build(name + ".Mem")

	regs := regfile.MakeBuilder().
		WithEngine(engine).
		WithCore(core).
		Build(name + ".RegFile")
	core.WatchCompletion(regs)

	s := &System{
		engine: engine,
		bus:    bus,
		core:   core,
		slave:  slave,
		regs:   regs,
	}

	if b.recording {
		s.recorder = datarecording.New(b.recordingPath)
		s.recorder.CreateTable(transferTableName, transferRecord{})
		core.AcceptHook(&transferTracer{
			recorder: s.recorder,
			cycles:   engine,
		})
		engine.RegisterSimulationEndHandler(recorderFlusher{s.recorder})
	}

	return s
}
