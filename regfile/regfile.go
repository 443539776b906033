// Package regfile implements the control and status register file that fronts
// the transfer protocol engine.
package regfile

import (
	"errors"

	"github.com/aritramanna/axi-4-dma-subsystem/dma"
	"github.com/aritramanna/axi-4-dma-subsystem/sim"
)

//go:generate mockgen -destination "mock_regfile_test.go" -package $GOPACKAGE -write_package_comment=false github.com/aritramanna/axi-4-dma-subsystem/regfile TransferCore

// Register offsets.
const (
	RegCtrl   = 0x04
	RegStatus = 0x08
	RegSrc    = 0x0C
	RegDst    = 0x10
	RegLen    = 0x14
)

// Control register bits. Start is self-clearing and always reads back zero.
const (
	CtrlStart = 1 << 0
	CtrlIntEn = 1 << 1
)

// Status register bits. Done and Error are sticky and write-1-to-clear; Busy
// and Intr are live. The completion code occupies bits 7:4.
const (
	StatusDone  = 1 << 0
	StatusBusy  = 1 << 1
	StatusError = 1 << 2
	StatusIntr  = 1 << 3

	statusCodeShift = 4
)

// StatusCode extracts the completion code from a status word.
func StatusCode(status uint32) dma.ErrCode {
	return dma.ErrCode(status >> statusCodeShift & 0xF)
}

// ErrInvalidOffset reports an access to an unmapped register, the programming
// interface analogue of a slave error response.
var ErrInvalidOffset = errors.New("register offset is not mapped")

// A TransferCore is the protocol engine surface the register file drives.
type TransferCore interface {
	AssertStart(req dma.TransferRequest)
	Busy() bool
	DonePulse() bool
	CompletionCode() dma.ErrCode
	Reset()
}

// Comp is the register file. Register accesses take effect immediately; the
// component ticks only to sample the engine's done pulse, which is why it is
// woken as the engine's completion observer rather than every cycle.
type Comp struct {
	*sim.TickingComponent

	core TransferCore

	intEn   bool
	done    bool
	errFlag bool
	errCode dma.ErrCode

	src    uint32
	dst    uint32
	length uint32
}

// Tick samples the done pulse and latches the sticky completion state.
func (c *Comp) Tick() bool {
	if !c.core.DonePulse() {
		return false
	}

	c.done = true
	c.errCode = c.core.CompletionCode()
	if c.errCode != dma.ErrNone {
		c.errFlag = true
	}

	return true
}

// WriteRegister performs a programming interface write. Writes to unmapped
// offsets change nothing and return ErrInvalidOffset.
func (c *Comp) WriteRegister(offset, value uint32) error {
	switch offset {
	case RegCtrl:
		c.intEn = value&CtrlIntEn != 0
		if value&CtrlStart != 0 {
			c.tryStart()
		}
	case RegStatus:
		if value&StatusDone != 0 {
			c.done = false
		}
		if value&StatusError != 0 {
			c.errFlag = false
			c.errCode = dma.ErrNone
		}
	case RegSrc:
		c.src = value
	case RegDst:
		c.dst = value
	case RegLen:
		c.length = value
	default:
		return ErrInvalidOffset
	}

	return nil
}

// ReadRegister performs a programming interface read. Reads from unmapped
// offsets return ErrInvalidOffset.
func (c *Comp) ReadRegister(offset uint32) (uint32, error) {
	switch offset {
	case RegCtrl:
		var v uint32
		if c.intEn {
			v |= CtrlIntEn
		}
		return v, nil
	case RegStatus:
		return c.statusWord(), nil
	case RegSrc:
		return c.src, nil
	case RegDst:
		return c.dst, nil
	case RegLen:
		return c.length, nil
	default:
		return 0, ErrInvalidOffset
	}
}

func (c *Comp) statusWord() uint32 {
	var v uint32

	if c.done {
		v |= StatusDone
	}
	if c.core.Busy() {
		v |= StatusBusy
	}
	if c.errFlag {
		v |= StatusError
	}
	if c.IntrPending() {
		v |= StatusIntr
	}
	v |= uint32(c.errCode) << statusCodeShift

	return v
}

// IntrPending returns the live interrupt line: a sticky done or error flag,
// gated by the interrupt enable bit. The line is combinational, so enabling
// interrupts after an unacknowledged completion raises it immediately.
func (c *Comp) IntrPending() bool {
	return (c.done || c.errFlag) && c.intEn
}

// tryStart launches a transfer from the staged parameter registers. The
// start bit is ignored while the engine is busy or while a prior completion
// is still unacknowledged, so software cannot clobber status it has not seen.
func (c *Comp) tryStart() {
	if c.core.Busy() || c.done || c.errFlag {
		return
	}

	c.errCode = dma.ErrNone
	c.core.AssertStart(dma.TransferRequest{
		Src:    c.src,
		Dst:    c.dst,
		Length: c.length,
	})
}

// Reset restores every register to its power-on value and resets the engine.
func (c *Comp) Reset() {
	c.intEn = false
	c.done = false
	c.errFlag = false
	c.errCode = dma.ErrNone
	c.src = 0
	c.dst = 0
	c.length = 0
	c.core.Reset()
}
