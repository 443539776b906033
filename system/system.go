// Package system assembles the full subsystem: the event engine, the bus, the
// transfer protocol engine, the memory slave, and the register file.
package system

import (
	"github.com/rs/xid"

	"github.com/aritramanna/axi-4-dma-subsystem/axi"
	"github.com/aritramanna/axi-4-dma-subsystem/datarecording"
	"github.com/aritramanna/axi-4-dma-subsystem/dma"
	"github.com/aritramanna/axi-4-dma-subsystem/memslave"
	"github.com/aritramanna/axi-4-dma-subsystem/regfile"
	"github.com/aritramanna/axi-4-dma-subsystem/sim"
)

// A System is a fully wired subsystem. Software drives it through the
// register file and advances time by running the engine until it quiesces.
type System struct {
	engine sim.Engine
	bus    *axi.Bus
	core   *dma.Comp
	slave  *memslave.Comp
	regs   *regfile.Comp

	recorder datarecording.DataRecorder
}

// Engine returns the event engine that drives the system.
func (s *System) Engine() sim.Engine {
	return s.engine
}

// Core returns the transfer protocol engine.
func (s *System) Core() *dma.Comp {
	return s.core
}

// Slave returns the memory slave.
func (s *System) Slave() *memslave.Comp {
	return s.slave
}

// Memory returns the backing storage of the memory slave.
func (s *System) Memory() *memslave.Storage {
	return s.slave.Storage()
}

// WriteRegister performs a programming interface write.
func (s *System) WriteRegister(offset, value uint32) error {
	return s.regs.WriteRegister(offset, value)
}

// ReadRegister performs a programming interface read.
func (s *System) ReadRegister(offset uint32) (uint32, error) {
	return s.regs.ReadRegister(offset)
}

// IntrPending returns the live interrupt line.
func (s *System) IntrPending() bool {
	return s.regs.IntrPending()
}

// Run processes events until every component goes quiet, then invokes the
// registered simulation end handlers.
func (s *System) Run() error {
	if err := s.engine.Run(); err != nil {
		return err
	}

	s.engine.Finished()

	return nil
}

// Reset returns the whole subsystem to its power-on state.
func (s *System) Reset() {
	s.regs.Reset()
	s.slave.Reset()
}

// A recorderFlusher flushes buffered trace rows when the simulation ends.
type recorderFlusher struct {
	recorder datarecording.DataRecorder
}

func (f recorderFlusher) Handle(_ sim.Cycle) {
	f.recorder.Flush()
}

// A transferRecord is one row in the transfer trace table.
type transferRecord struct {
	ID         string
	Src        uint32
	Dst        uint32
	Length     uint32
	StartCycle uint64
	EndCycle   uint64
	Status     string
}

const transferTableName = "transfers"

// A transferTracer records one trace row per transfer by observing the
// protocol engine's start and done hooks.
type transferTracer struct {
	recorder datarecording.DataRecorder
	cycles   sim.CycleTeller

	id         string
	startCycle sim.Cycle
}

func (t *transferTracer) Func(ctx sim.HookCtx) {
	switch ctx.Pos {
	case dma.HookPosTransferStart:
		t.id = xid.New().String()
		t.startCycle = t.cycles.CurrentCycle()
	case dma.HookPosTransferDone:
		req := ctx.Item.(dma.TransferRequest)
		code := ctx.Detail.(dma.ErrCode)

		t.recorder.InsertData(transferTableName, transferRecord{
			ID:         t.id,
			Src:        req.Src,
			Dst:        req.Dst,
			Length:     req.Length,
			StartCycle: uint64(t.startCycle),
			EndCycle:   uint64(t.cycles.CurrentCycle()),
			Status:     code.String(),
		})
	}
}
