// Package simdcap implements SimdCapability::detect() (spec.md §6.1): a
// pure, process-wide query of the widest byte-scanning strategy the running
// CPU supports. Detection runs once behind a sync.Once and the result is
// immutable afterwards (spec.md §5 "Shared resources").
package simdcap

import (
	"sync"

	"golang.org/x/sys/cpu"
)

// Capability names the width class of the vectorized scan primitives the
// scanner should dispatch through.
type Capability uint8

const (
	// Scalar means no vector unit was detected: one 8-byte lane per
	// iteration, with the remaining tail scanned one byte at a time.
	Scalar Capability = iota
	// Sse42 sweeps 16-byte windows (two 8-byte lanes per iteration).
	Sse42
	// Neon sweeps 16-byte windows on ARM64 (two 8-byte lanes per iteration).
	Neon
	// Avx2 sweeps 32-byte windows (four 8-byte lanes per iteration).
	Avx2
	// Avx512 sweeps 64-byte windows (eight 8-byte lanes per iteration).
	Avx512
)

func (c Capability) String() string {
	switch c {
	case Scalar:
		return "Scalar"
	case Sse42:
		return "Sse42"
	case Neon:
		return "Neon"
	case Avx2:
		return "Avx2"
	case Avx512:
		return "Avx512"
	default:
		return "Scalar"
	}
}

// Lanes returns how many 8-byte words the wide scanner should sweep per
// outer iteration for this capability — the "window size" spec.md §4.1
// describes (8 lanes = 64 bytes for Avx512, down to 1 lane = 8 bytes for
// Scalar, which in turn falls through to the true byte-at-a-time scalar
// primitive on short inputs or tails, per spec.md §4.1).
func (c Capability) Lanes() int {
	switch c {
	case Avx512:
		return 8
	case Avx2:
		return 4
	case Sse42, Neon:
		return 2
	default:
		return 1
	}
}

var (
	once    sync.Once
	current Capability
)

// Detect returns the best available scanning capability for the running
// CPU. The probe itself runs exactly once per process; subsequent calls
// return the cached result.
func Detect() Capability {
	once.Do(func() {
		current = probe()
	})
	return current
}

func probe() Capability {
	switch {
	case cpu.X86.HasAVX512F && cpu.X86.HasAVX512BW:
		return Avx512
	case cpu.X86.HasAVX2:
		return Avx2
	case cpu.X86.HasSSE42:
		return Sse42
	case cpu.ARM64.HasASIMD:
		return Neon
	default:
		return Scalar
	}
}
