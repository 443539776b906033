package dma

import "github.com/aritramanna/axi-4-dma-subsystem/axi"

// A paramCheck pairs a failure predicate with the code it reports. The checks
// form an ordered chain; the first failing check determines the single code
// reported even when several hold at once.
type paramCheck struct {
	fails func(r TransferRequest) bool
	code  ErrCode
}

var paramChecks = []paramCheck{
	{
		fails: func(r TransferRequest) bool {
			return r.Src%axi.BusWidthBytes != 0
		},
		code: ErrAlignSrc,
	},
	{
		fails: func(r TransferRequest) bool {
			return r.Dst%axi.BusWidthBytes != 0
		},
		code: ErrAlignDst,
	},
	{
		fails: func(r TransferRequest) bool {
			return r.Length%axi.BusWidthBytes != 0
		},
		code: ErrAlignLen,
	},
	{
		fails: func(r TransferRequest) bool {
			return r.Length == 0
		},
		code: ErrZeroLen,
	},
	{
		fails: func(r TransferRequest) bool {
			return r.Length > MaxTransferBytes
		},
		code: ErrLenTooLarge,
	},
	{
		fails: func(r TransferRequest) bool {
			return crosses4K(r.Src, r.Length)
		},
		code: ErrCross4KSrc,
	},
	{
		fails: func(r TransferRequest) bool {
			return crosses4K(r.Dst, r.Length)
		},
		code: ErrCross4KDst,
	},
}

// ValidateRequest applies the ordered parameter checks and returns the first
// failing code, or ErrNone when the request can be issued as a single burst.
func ValidateRequest(r TransferRequest) ErrCode {
	for _, check := range paramChecks {
		if check.fails(r) {
			return check.code
		}
	}
	return ErrNone
}

// crosses4K reports whether [addr, addr+length-1] spans a 4096-byte
// alignment boundary. Arithmetic is done in 64 bits so a region near the top
// of the address space does not wrap.
func crosses4K(addr, length uint32) bool {
	start := uint64(addr)
	end := start + uint64(length) - 1
	return start/MaxTransferBytes != end/MaxTransferBytes
}
