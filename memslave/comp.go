// Package memslave models the memory-side bus slave that the transfer engine
// reads from and writes to.
package memslave

import (
	"log"
	"math/rand"

	"github.com/aritramanna/axi-4-dma-subsystem/axi"
	"github.com/aritramanna/axi-4-dma-subsystem/sim"
)

// Comp is a bursting memory slave with one outstanding burst per direction.
// It can stall handshakes for a fixed or random number of cycles and can be
// forced to respond with a slave error, which is how the stall and
// error-injection scenarios are driven.
type Comp struct {
	*sim.TickingComponent

	bus     *axi.Bus
	storage *Storage
	rng     *rand.Rand

	arExtraStall  int
	forceReadErr  bool
	forceWriteErr bool

	readActive    bool
	readAddr      uint64
	readBeatsLeft uint32
	arStallLeft   int
	arStallSet    bool
	rStallLeft    int
	rStallSet     bool

	writeActive    bool
	writeAddr      uint64
	writeID        uint8
	writeBeatsLeft uint32
	awStallLeft    int
	awStallSet     bool
	wStallLeft     int
	wStallSet      bool

	respPending bool
	bStallLeft  int
	bStallSet   bool
}

// Storage returns the backing memory, so tests and tooling can seed and
// inspect it directly.
func (c *Comp) Storage() *Storage {
	return c.storage
}

// StallReadAddr holds off the next read-address handshake for the given
// number of extra cycles. Setting it larger than the watchdog threshold
// provokes a source timeout.
func (c *Comp) StallReadAddr(cycles int) {
	c.arExtraStall = cycles
}

// ForceReadError makes every read-data beat respond with a slave error until
// cleared.
func (c *Comp) ForceReadError(force bool) {
	c.forceReadErr = force
}

// ForceWriteError makes every write response a slave error until cleared.
func (c *Comp) ForceWriteError(force bool) {
	c.forceWriteErr = force
}

// Reset abandons any in-flight burst.
func (c *Comp) Reset() {
	c.readActive = false
	c.writeActive = false
	c.respPending = false
	c.arStallSet = false
	c.rStallSet = false
	c.awStallSet = false
	c.wStallSet = false
	c.bStallSet = false
}

// Tick services the channels in response-first order, so a burst never
// cascades through address, data, and response in a single cycle.
func (c *Comp) Tick() bool {
	madeProgress := false

	madeProgress = c.respondWrite() || madeProgress
	madeProgress = c.acceptWriteData() || madeProgress
	madeProgress = c.acceptWriteAddr() || madeProgress
	madeProgress = c.streamReadData() || madeProgress
	madeProgress = c.acceptReadAddr() || madeProgress

	return madeProgress
}

// randomStall draws the inter-handshake delay. Three in ten handshakes are
// delayed by up to five cycles when random stalls are enabled.
func (c *Comp) randomStall() int {
	if c.rng == nil {
		return 0
	}
	if c.rng.Float64() < 0.3 {
		return c.rng.Intn(6)
	}
	return 0
}

func (c *Comp) acceptReadAddr() bool {
	if c.readActive {
		return false
	}

	p, ok := c.bus.AR.Pending()
	if !ok {
		c.arStallSet = false
		return false
	}

	if !c.arStallSet {
		c.arStallLeft = c.arExtraStall + c.randomStall()
		c.arStallSet = true
	}
	if c.arStallLeft > 0 {
		c.arStallLeft--
		return true
	}

	c.bus.AR.Fire()
	c.readActive = true
	c.readAddr = uint64(p.Addr)
	c.readBeatsLeft = p.Beats()
	c.arStallSet = false

	return true
}

func (c *Comp) streamReadData() bool {
	if !c.readActive {
		return false
	}

	if !c.rStallSet {
		c.rStallLeft = c.randomStall()
		c.rStallSet = true
	}
	if c.rStallLeft > 0 {
		c.rStallLeft--
		return true
	}

	if !c.bus.R.CanFire() {
		return false
	}

	resp := axi.RespOkay
	if c.forceReadErr {
		resp = axi.RespSlvErr
	}

	last := c.readBeatsLeft == 1
	c.bus.R.Fire(axi.RPayload{
		Data: c.storage.Read(c.readAddr, axi.BusWidthBytes),
		Resp: resp,
		Last: last,
	})

	c.readAddr += axi.BusWidthBytes
	c.readBeatsLeft--
	c.rStallSet = false
	if last {
		c.readActive = false
	}

	return true
}

func (c *Comp) acceptWriteAddr() bool {
	if c.writeActive || c.respPending {
		return false
	}

	p, ok := c.bus.AW.Pending()
	if !ok {
		c.awStallSet = false
		return false
	}

	if !c.awStallSet {
		c.awStallLeft = c.randomStall()
		c.awStallSet = true
	}
	if c.awStallLeft > 0 {
		c.awStallLeft--
		return true
	}

	c.bus.AW.Fire()
	c.writeActive = true
	c.writeAddr = uint64(p.Addr)
	c.writeID = p.ID
	c.writeBeatsLeft = p.Beats()
	c.awStallSet = false

	return true
}

func (c *Comp) acceptWriteData() bool {
	if !c.writeActive {
		return false
	}

	p, ok := c.bus.W.Pending()
	if !ok {
		return false
	}

	if !c.wStallSet {
		c.wStallLeft = c.randomStall()
		c.wStallSet = true
	}
	if c.wStallLeft > 0 {
		c.wStallLeft--
		return true
	}

	c.bus.W.Fire()
	for b := 0; b < axi.BusWidthBytes; b++ {
		if p.Strobe&(1<<b) != 0 {
			c.storage.WriteByte(c.writeAddr+uint64(b), p.Data[b])
		}
	}

	c.writeAddr += axi.BusWidthBytes
	c.writeBeatsLeft--
	c.wStallSet = false

	if p.Last != (c.writeBeatsLeft == 0) {
		log.Panicf("%s: last-beat flag inconsistent with burst length",
			c.Name())
	}
	if c.writeBeatsLeft == 0 {
		c.writeActive = false
		c.respPending = true
	}

	return true
}

func (c *Comp) respondWrite() bool {
	if !c.respPending {
		return false
	}

	if !c.bStallSet {
		c.bStallLeft = c.randomStall()
		c.bStallSet = true
	}
	if c.bStallLeft > 0 {
		c.bStallLeft--
		return true
	}

	if !c.bus.B.CanFire() {
		return false
	}

	resp := axi.RespOkay
	if c.forceWriteErr {
		resp = axi.RespSlvErr
	}

	c.bus.B.Fire(axi.BPayload{ID: c.writeID, Resp: resp})
	c.respPending = false
	c.bStallSet = false

	return true
}
