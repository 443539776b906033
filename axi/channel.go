package axi

import "log"

// An AddrChannel is a master-driven request channel (AR or AW). The master
// presents a request and must hold it stable until the slave completes the
// handshake. The completion is latched for the master to observe on its next
// tick.
type AddrChannel struct {
	name string
	bus  *Bus

	valid   bool
	payload AddrPayload
	fired   bool
}

// Present asserts request-valid with the given payload. The payload must stay
// stable while the request is outstanding; re-presenting a different payload
// is a protocol violation.
func (c *AddrChannel) Present(p AddrPayload) {
	if c.valid {
		if p != c.payload {
			log.Panicf("%s: payload unstable while valid", c.name)
		}
		return
	}

	c.valid = true
	c.payload = p
	c.bus.notifySlave()
}

// Pending returns the presented request, if any, that has not fired yet.
func (c *AddrChannel) Pending() (AddrPayload, bool) {
	if !c.valid {
		return AddrPayload{}, false
	}
	return c.payload, true
}

// Fire completes the handshake. The slave calls it on a cycle where it
// asserts ready against the pending request.
func (c *AddrChannel) Fire() AddrPayload {
	if !c.valid {
		log.Panicf("%s: fired without a valid request", c.name)
	}

	c.valid = false
	c.fired = true
	c.bus.notifyMaster()

	return c.payload
}

// TakeFired reports and clears a completed handshake.
func (c *AddrChannel) TakeFired() bool {
	if !c.fired {
		return false
	}
	c.fired = false
	return true
}

// Withdraw deasserts the request without a handshake. Only legal on timeout
// abort or reset.
func (c *AddrChannel) Withdraw() {
	c.valid = false
	c.fired = false
}

// A WChannel carries master-driven write-data beats. It follows the same
// valid/ready discipline as the address channels, one beat per handshake.
type WChannel struct {
	name string
	bus  *Bus

	valid   bool
	payload WPayload
	fired   bool
}

// Present asserts a write beat. The beat must stay stable until it fires.
func (c *WChannel) Present(p WPayload) {
	if c.valid {
		if !p.equals(c.payload) {
			log.Panicf("%s: payload unstable while valid", c.name)
		}
		return
	}

	c.valid = true
	c.payload = p
	c.bus.notifySlave()
}

// Pending returns the presented beat, if any, that has not fired yet.
func (c *WChannel) Pending() (WPayload, bool) {
	if !c.valid {
		return WPayload{}, false
	}
	return c.payload, true
}

// Fire completes the handshake for the pending beat.
func (c *WChannel) Fire() WPayload {
	if !c.valid {
		log.Panicf("%s: fired without a valid beat", c.name)
	}

	c.valid = false
	c.fired = true
	c.bus.notifyMaster()

	return c.payload
}

// TakeFired reports and clears a completed handshake.
func (c *WChannel) TakeFired() bool {
	if !c.fired {
		return false
	}
	c.fired = false
	return true
}

// Withdraw deasserts the beat without a handshake.
func (c *WChannel) Withdraw() {
	c.valid = false
	c.fired = false
}

// An RChannel carries slave-driven read-data beats. The master asserts ready
// as a level signal; the slave fires one beat per cycle while the master is
// ready. A fired beat is latched until the master collects it, so at most one
// beat is in flight between the two agents.
type RChannel struct {
	name string
	bus  *Bus

	ready bool
	fired *RPayload
}

// SetReady drives the master's ready level.
func (c *RChannel) SetReady(ready bool) {
	if c.ready == ready {
		return
	}
	c.ready = ready
	if ready {
		c.bus.notifySlave()
	}
}

// Ready returns the master's ready level.
func (c *RChannel) Ready() bool {
	return c.ready
}

// CanFire returns true if the slave may complete a beat handshake this cycle.
func (c *RChannel) CanFire() bool {
	return c.ready && c.fired == nil
}

// Fire completes the handshake for one beat.
func (c *RChannel) Fire(p RPayload) {
	if !c.CanFire() {
		log.Panicf("%s: fired without master ready", c.name)
	}

	c.fired = &p
	c.bus.notifyMaster()
}

// TakeFired collects and clears a fired beat.
func (c *RChannel) TakeFired() (RPayload, bool) {
	if c.fired == nil {
		return RPayload{}, false
	}

	p := *c.fired
	c.fired = nil
	return p, true
}

// Withdraw clears the ready level and any uncollected beat.
func (c *RChannel) Withdraw() {
	c.ready = false
	c.fired = nil
}

// A BChannel carries the slave-driven write response, with the same
// discipline as the read-data channel.
type BChannel struct {
	name string
	bus  *Bus

	ready bool
	fired *BPayload
}

// SetReady drives the master's ready level.
func (c *BChannel) SetReady(ready bool) {
	if c.ready == ready {
		return
	}
	c.ready = ready
	if ready {
		c.bus.notifySlave()
	}
}

// Ready returns the master's ready level.
func (c *BChannel) Ready() bool {
	return c.ready
}

// CanFire returns true if the slave may complete the response handshake this
// cycle.
func (c *BChannel) CanFire() bool {
	return c.ready && c.fired == nil
}

// Fire completes the response handshake.
func (c *BChannel) Fire(p BPayload) {
	if !c.CanFire() {
		log.Panicf("%s: fired without master ready", c.name)
	}

	c.fired = &p
	c.bus.notifyMaster()
}

// TakeFired collects and clears a fired response.
func (c *BChannel) TakeFired() (BPayload, bool) {
	if c.fired == nil {
		return BPayload{}, false
	}

	p := *c.fired
	c.fired = nil
	return p, true
}

// Withdraw clears the ready level and any uncollected response.
func (c *BChannel) Withdraw() {
	c.ready = false
	c.fired = nil
}
