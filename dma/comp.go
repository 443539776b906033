package dma

import (
	"github.com/aritramanna/axi-4-dma-subsystem/axi"
	"github.com/aritramanna/axi-4-dma-subsystem/sim"
)

// HookPosTransferStart marks when the sequencer captures a transfer request.
var HookPosTransferStart = &sim.HookPos{Name: "Transfer Start"}

// HookPosTransferDone marks when a transfer reaches the terminal phase. The
// hook detail carries the completion code.
var HookPosTransferDone = &sim.HookPos{Name: "Transfer Done"}

// Burst IDs the engine stamps on its address-phase requests.
const (
	readBurstID  = 0
	writeBurstID = 1
)

// A CompletionObserver is woken in the same cycle the done pulse rises, so it
// can sample the pulse before it falls.
type CompletionObserver interface {
	TickNow()
}

// Comp is the transfer protocol engine. It owns the phase state machine, the
// elastic buffer between the read and write phases, and one watchdog per bus
// direction. It drives the bus as the single master, with at most one
// outstanding request per direction and the whole read phase completing
// before the write phase begins.
type Comp struct {
	*sim.TickingComponent

	bus    *axi.Bus
	buffer *ElasticBuffer

	// Request lines, driven by the register interface and sampled only while
	// idle.
	startLine bool
	reqLines  TransferRequest

	// Completion lines. The done pulse is high for exactly one tick; the
	// code stays latched until the next transfer starts.
	donePulse bool
	errCode   ErrCode

	phase          Phase
	req            TransferRequest
	burstBeats     uint32
	beatCount      uint32
	srcWatchdog    Watchdog
	dstWatchdog    Watchdog
	readErrPending bool

	observer CompletionObserver
}

// AssertStart drives the start line with a captured request. The line is a
// one-tick pulse: the sequencer consumes it on its next tick. A start
// asserted while the engine is busy is ignored; the register interface is
// responsible for any further gating.
func (c *Comp) AssertStart(req TransferRequest) {
	if c.phase != PhaseIdle {
		return
	}

	c.reqLines = req
	c.startLine = true
	c.TickLater()
}

// WatchCompletion registers the observer to wake when the done pulse rises.
func (c *Comp) WatchCompletion(o CompletionObserver) {
	c.observer = o
}

// Busy is true for every phase except idle.
func (c *Comp) Busy() bool {
	return c.phase != PhaseIdle
}

// DonePulse is true only during the terminal tick of a transfer.
func (c *Comp) DonePulse() bool {
	return c.donePulse
}

// CompletionCode returns the latched status of the most recent transfer.
func (c *Comp) CompletionCode() ErrCode {
	return c.errCode
}

// CurrentPhase returns the active phase.
func (c *Comp) CurrentPhase() Phase {
	return c.phase
}

// BufferOccupancy returns the number of beats resident in the elastic buffer.
func (c *Comp) BufferOccupancy() int {
	return c.buffer.Occupancy()
}

// Reset forces the sequencer to idle, effective immediately. It clears the
// error code, both watchdogs, the beat counter, and the elastic buffer, and
// withdraws every bus signal. The done pulse is suppressed so a reset never
// reports a spurious completion.
func (c *Comp) Reset() {
	c.phase = PhaseIdle
	c.errCode = ErrNone
	c.donePulse = false
	c.startLine = false
	c.beatCount = 0
	c.burstBeats = 0
	c.readErrPending = false
	c.srcWatchdog.Reset()
	c.dstWatchdog.Reset()
	c.buffer.SoftReset()
	c.bus.Reset()
}

// Tick advances the state machine by one cycle.
func (c *Comp) Tick() bool {
	switch c.phase {
	case PhaseIdle:
		return c.acceptStart()
	case PhaseValidate:
		return c.validate()
	case PhaseReadAddr:
		return c.waitReadAddr()
	case PhaseReadData:
		return c.collectReadData()
	case PhaseWriteAddr:
		return c.waitWriteAddr()
	case PhaseWriteData:
		return c.advanceWriteData()
	case PhaseWriteResp:
		return c.waitWriteResp()
	case PhaseTerminal:
		return c.returnToIdle()
	}

	return false
}

func (c *Comp) acceptStart() bool {
	if !c.startLine {
		return false
	}

	c.startLine = false
	c.req = c.reqLines
	c.errCode = ErrNone
	c.phase = PhaseValidate

	c.InvokeHook(sim.HookCtx{
		Domain: c,
		Pos:    HookPosTransferStart,
		Item:   c.req,
	})

	return true
}

func (c *Comp) validate() bool {
	if code := ValidateRequest(c.req); code != ErrNone {
		c.complete(code)
		return true
	}

	c.burstBeats = c.req.Length / axi.BusWidthBytes
	c.enterReadAddr()

	return true
}

func (c *Comp) enterReadAddr() {
	c.phase = PhaseReadAddr
	c.srcWatchdog.Reset()
	c.bus.AR.Present(axi.AddrPayload{
		ID:    readBurstID,
		Addr:  c.req.Src,
		Len:   uint8(c.burstBeats - 1),
		Size:  axi.BusWidthLog2,
		Burst: axi.BurstIncr,
	})
}

func (c *Comp) waitReadAddr() bool {
	if c.bus.AR.TakeFired() {
		c.enterReadData()
		return true
	}

	if c.srcWatchdog.Count() {
		c.bus.AR.Withdraw()
		c.complete(ErrTimeoutSrc)
	}

	return true
}

func (c *Comp) enterReadData() {
	c.phase = PhaseReadData
	c.srcWatchdog.Reset()
	c.beatCount = 0
	c.readErrPending = false
	c.bus.R.SetReady(true)
}

// collectReadData drains one fired beat per tick into the elastic buffer. A
// beat with an error response latches a pending bus error, but the burst is
// still accepted to its last beat so the bus is left clean; the error is
// then reported without any write-phase activity.
func (c *Comp) collectReadData() bool {
	if p, ok := c.bus.R.TakeFired(); ok {
		c.srcWatchdog.Reset()
		c.beatCount++

		if p.Resp.IsError() {
			c.readErrPending = true
		}
		if !c.readErrPending {
			c.buffer.Push(p.Data)
		}

		if p.Last {
			c.bus.R.SetReady(false)
			if c.readErrPending {
				c.complete(ErrBusResp)
			} else {
				c.enterWriteAddr()
			}
		}

		return true
	}

	if c.srcWatchdog.Count() {
		c.bus.R.Withdraw()
		c.complete(ErrTimeoutSrc)
	}

	return true
}

func (c *Comp) enterWriteAddr() {
	c.phase = PhaseWriteAddr
	c.dstWatchdog.Reset()
	c.bus.AW.Present(axi.AddrPayload{
		ID:    writeBurstID,
		Addr:  c.req.Dst,
		Len:   uint8(c.burstBeats - 1),
		Size:  axi.BusWidthLog2,
		Burst: axi.BurstIncr,
	})
}

func (c *Comp) waitWriteAddr() bool {
	if c.bus.AW.TakeFired() {
		c.enterWriteData()
		return true
	}

	if c.dstWatchdog.Count() {
		c.bus.AW.Withdraw()
		c.complete(ErrTimeoutDst)
	}

	return true
}

func (c *Comp) enterWriteData() {
	c.phase = PhaseWriteData
	c.dstWatchdog.Reset()
	c.beatCount = 0
	c.presentWriteBeat()
}

func (c *Comp) presentWriteBeat() {
	c.bus.W.Present(axi.WPayload{
		Data:   c.buffer.Pop(),
		Strobe: axi.StrobeAllLanes,
		Last:   c.beatCount == c.burstBeats-1,
	})
}

func (c *Comp) advanceWriteData() bool {
	if c.bus.W.TakeFired() {
		c.dstWatchdog.Reset()
		c.beatCount++

		if c.beatCount == c.burstBeats {
			c.enterWriteResp()
		} else {
			c.presentWriteBeat()
		}

		return true
	}

	if c.dstWatchdog.Count() {
		c.bus.W.Withdraw()
		c.complete(ErrTimeoutDst)
	}

	return true
}

func (c *Comp) enterWriteResp() {
	c.phase = PhaseWriteResp
	c.dstWatchdog.Reset()
	c.bus.B.SetReady(true)
}

func (c *Comp) waitWriteResp() bool {
	if p, ok := c.bus.B.TakeFired(); ok {
		c.bus.B.SetReady(false)

		if p.Resp.IsError() {
			c.complete(ErrBusResp)
		} else {
			c.complete(ErrNone)
		}

		return true
	}

	if c.dstWatchdog.Count() {
		c.bus.B.Withdraw()
		c.complete(ErrTimeoutDst)
	}

	return true
}

// complete enters the terminal phase: the done pulse rises for one tick, the
// status code is latched, and the elastic buffer is cleared of any stale
// partial data before the next transfer can begin.
func (c *Comp) complete(code ErrCode) {
	c.phase = PhaseTerminal
	c.errCode = code
	c.donePulse = true
	c.beatCount = 0
	c.srcWatchdog.Reset()
	c.dstWatchdog.Reset()
	c.buffer.SoftReset()

	c.InvokeHook(sim.HookCtx{
		Domain: c,
		Pos:    HookPosTransferDone,
		Item:   c.req,
		Detail: code,
	})

	if c.observer != nil {
		c.observer.TickNow()
	}
}

func (c *Comp) returnToIdle() bool {
	c.donePulse = false
	c.phase = PhaseIdle
	return true
}
