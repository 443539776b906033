package axi

// An Agent is a component attached to one side of the bus. The bus wakes an
// agent when the other side drives a signal it may need to react to. TickNow
// schedules a tick in the same cycle; TickLater in the next cycle.
type Agent interface {
	TickNow()
	TickLater()
}

// A Bus groups the five channels between one master and one slave. The master
// ticks as a primary component and the slave as a secondary component, so a
// handshake resolves within a single cycle: the master drives valid/ready
// during its tick, the slave completes the rendezvous during its tick of the
// same cycle, and the master observes the latched result on its next tick.
type Bus struct {
	AR AddrChannel
	R  RChannel
	AW AddrChannel
	W  WChannel
	B  BChannel

	master Agent
	slave  Agent
}

// NewBus creates a bus with all channels idle.
func NewBus(name string) *Bus {
	b := &Bus{}
	b.AR = AddrChannel{name: name + ".AR", bus: b}
	b.R = RChannel{name: name + ".R", bus: b}
	b.AW = AddrChannel{name: name + ".AW", bus: b}
	b.W = WChannel{name: name + ".W", bus: b}
	b.B = BChannel{name: name + ".B", bus: b}
	return b
}

// ConnectMaster attaches the master-side agent.
func (b *Bus) ConnectMaster(a Agent) {
	b.master = a
}

// ConnectSlave attaches the slave-side agent.
func (b *Bus) ConnectSlave(a Agent) {
	b.slave = a
}

// notifySlave wakes the slave in the same cycle so it can observe
// master-driven signals before the cycle ends.
func (b *Bus) notifySlave() {
	if b.slave != nil {
		b.slave.TickNow()
	}
}

// notifyMaster wakes the master for the next cycle.
func (b *Bus) notifyMaster() {
	if b.master != nil {
		b.master.TickLater()
	}
}

// Reset returns every channel to the idle state.
func (b *Bus) Reset() {
	b.AR.Withdraw()
	b.R.Withdraw()
	b.AW.Withdraw()
	b.W.Withdraw()
	b.B.Withdraw()
}
