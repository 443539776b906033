// Package axi provides a cycle-level model of an AXI4 master/slave bus: the
// payloads carried by the five channels and rendezvous channel types where a
// transfer happens only on a cycle where request-valid and acknowledge-ready
// hold simultaneously.
package axi

// BusWidthBytes is the number of bytes moved by one data beat.
const BusWidthBytes = 16

// BusWidthLog2 is the AxSIZE encoding of the bus width.
const BusWidthLog2 = 4

// MaxBurstBeats is the longest burst a single address-phase request may name.
const MaxBurstBeats = 256

// StrobeAllLanes enables every byte lane of a write beat.
const StrobeAllLanes = 1<<BusWidthBytes - 1

// Resp is a result code carried by the read-data and write-response channels.
type Resp uint8

// The AXI response encodings.
const (
	RespOkay   Resp = 0
	RespExOkay Resp = 1
	RespSlvErr Resp = 2
	RespDecErr Resp = 3
)

// IsError returns true for the SLVERR and DECERR responses.
func (r Resp) IsError() bool {
	return r >= RespSlvErr
}

func (r Resp) String() string {
	switch r {
	case RespOkay:
		return "OKAY"
	case RespExOkay:
		return "EXOKAY"
	case RespSlvErr:
		return "SLVERR"
	case RespDecErr:
		return "DECERR"
	}
	return "UNKNOWN"
}

// Burst is the address-increment mode of a burst.
type Burst uint8

// BurstIncr is the incrementing burst type. It is the only mode the
// subsystem issues.
const BurstIncr Burst = 1

// AddrPayload is the request carried by the AR and AW channels.
type AddrPayload struct {
	ID    uint8
	Addr  uint32
	Len   uint8 // beat count minus one
	Size  uint8 // log2 of bytes per beat
	Burst Burst
}

// Beats returns the number of data beats the request names.
func (p AddrPayload) Beats() uint32 {
	return uint32(p.Len) + 1
}

// WPayload is one beat on the write-data channel.
type WPayload struct {
	Data   []byte
	Strobe uint32 // one bit per byte lane
	Last   bool
}

func (p WPayload) equals(o WPayload) bool {
	if p.Strobe != o.Strobe || p.Last != o.Last ||
		len(p.Data) != len(o.Data) {
		return false
	}
	for i := range p.Data {
		if p.Data[i] != o.Data[i] {
			return false
		}
	}
	return true
}

// RPayload is one beat on the read-data channel.
type RPayload struct {
	Data []byte
	Resp Resp
	Last bool
}

// BPayload is the write-response channel payload.
type BPayload struct {
	ID   uint8
	Resp Resp
}
