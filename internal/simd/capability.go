package simd

import (
	"os"
	"strings"
)

// ISA identifies the widest vector unit the lane loops can map onto.
type ISA uint8

const (
	// Generic is the scalar fallback.
	Generic ISA = iota
	// NEON holds two float64 lanes per register.
	NEON
	// AVX2 holds four float64 lanes per register.
	AVX2
	// AVX512 holds all eight lanes in one register.
	AVX512
)

var isaNames = [...]string{
	Generic: "generic",
	NEON:    "neon",
	AVX2:    "avx2",
	AVX512:  "avx512",
}

func (i ISA) String() string {
	if int(i) < len(isaNames) {
		return isaNames[i]
	}
	return "unknown"
}

// RegisterLanes is the number of float64 lanes one register of i holds.
func (i ISA) RegisterLanes() int {
	switch i {
	case NEON:
		return 2
	case AVX2:
		return 4
	case AVX512:
		return Lanes
	default:
		return 1
	}
}

// Passes is how many register operations one F64x8 operation needs on i.
func (i ISA) Passes() int {
	return Lanes / i.RegisterLanes()
}

func parseISA(s string) (ISA, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range isaNames {
		if name == s {
			return ISA(i), true
		}
	}
	return Generic, false
}

// Set by the per-architecture init.
var (
	features   [len(isaNames)]bool
	activeISA  ISA
	overridden bool
)

// detect picks the widest available ISA. SEEDSCAN_SIMD may lower the
// choice; a value naming an unavailable or unknown ISA is ignored.
func detect() {
	features[Generic] = true
	activeISA = Generic
	for i := len(features) - 1; i > 0; i-- {
		if features[i] {
			activeISA = ISA(i)
			break
		}
	}

	if env := os.Getenv("SEEDSCAN_SIMD"); env != "" {
		if isa, ok := parseISA(env); ok && features[isa] {
			activeISA = isa
			overridden = true
		}
	}
}

// ActiveISA returns the widest detected ISA, or the one SEEDSCAN_SIMD
// selected.
func ActiveISA() ISA { return activeISA }

// Overridden reports whether SEEDSCAN_SIMD selected the active ISA.
func Overridden() bool { return overridden }

// Available reports whether the CPU supports isa.
func Available(isa ISA) bool {
	return int(isa) < len(features) && features[isa]
}
