// Package dma implements the transfer protocol engine: a synchronous state
// machine that validates a transfer request, drives the read and write bus
// phases through an elastic buffer, and reports a completion status code.
package dma

// MaxTransferBytes is the largest single transfer the engine accepts. It is
// also the alignment boundary a burst must not cross.
const MaxTransferBytes = 4096

// A TransferRequest names a contiguous block move. It is captured by value
// when a transfer starts and stays immutable until the transfer reaches the
// terminal phase.
type TransferRequest struct {
	Src    uint32
	Dst    uint32
	Length uint32
}

// Phase identifies the state of the protocol sequencer. Exactly one phase is
// active at a time.
type Phase int

// The sequencer phases.
const (
	PhaseIdle Phase = iota
	PhaseValidate
	PhaseReadAddr
	PhaseReadData
	PhaseWriteAddr
	PhaseWriteData
	PhaseWriteResp
	PhaseTerminal
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseValidate:
		return "Validate"
	case PhaseReadAddr:
		return "ReadAddr"
	case PhaseReadData:
		return "ReadData"
	case PhaseWriteAddr:
		return "WriteAddr"
	case PhaseWriteData:
		return "WriteData"
	case PhaseWriteResp:
		return "WriteResp"
	case PhaseTerminal:
		return "Terminal"
	}
	return "Unknown"
}

// ErrCode is the 4-bit completion status of a transfer. It is sticky once
// set for the current transfer.
type ErrCode uint8

// The completion codes, as surfaced in STATUS.ERR_CODE.
const (
	ErrNone        ErrCode = 0x0
	ErrAlignSrc    ErrCode = 0x1
	ErrAlignDst    ErrCode = 0x2
	ErrAlignLen    ErrCode = 0x3
	ErrZeroLen     ErrCode = 0x4
	ErrCross4KSrc  ErrCode = 0x5
	ErrCross4KDst  ErrCode = 0x6
	ErrLenTooLarge ErrCode = 0x7
	ErrTimeoutSrc  ErrCode = 0x8
	ErrTimeoutDst  ErrCode = 0x9
	ErrBusResp     ErrCode = 0xF
)

func (c ErrCode) String() string {
	switch c {
	case ErrNone:
		return "NONE"
	case ErrAlignSrc:
		return "ALIGN_SRC"
	case ErrAlignDst:
		return "ALIGN_DST"
	case ErrAlignLen:
		return "ALIGN_LEN"
	case ErrZeroLen:
		return "ZERO_LEN"
	case ErrCross4KSrc:
		return "4K_SRC"
	case ErrCross4KDst:
		return "4K_DST"
	case ErrLenTooLarge:
		return "LEN_LARGE"
	case ErrTimeoutSrc:
		return "TIMEOUT_SRC"
	case ErrTimeoutDst:
		return "TIMEOUT_DST"
	case ErrBusResp:
		return "BUS_RESP"
	}
	return "UNKNOWN"
}
