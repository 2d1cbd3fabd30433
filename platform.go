package seedscan

import (
	"fmt"
	"runtime"

	"github.com/hupe1980/seedscan/internal/simd"
)

// PlatformInfo describes the vector unit detected on this machine.
type PlatformInfo struct {
	OS   string
	Arch string
	// ISA is the widest detected vector unit: generic, neon, avx2 or avx512.
	ISA string
	// Available lists every detected ISA, narrowest first.
	Available []string
	// RegisterLanes is the number of float64 lanes one register holds.
	RegisterLanes int
	// Passes is the number of register operations per eight-lane operation.
	Passes int
	// Overridden reports whether SEEDSCAN_SIMD selected the ISA.
	Overridden bool
}

// Platform reports the vector unit the search runs on.
func Platform() PlatformInfo {
	isa := simd.ActiveISA()
	p := PlatformInfo{
		OS:            runtime.GOOS,
		Arch:          runtime.GOARCH,
		ISA:           isa.String(),
		RegisterLanes: isa.RegisterLanes(),
		Passes:        isa.Passes(),
		Overridden:    simd.Overridden(),
	}
	for _, i := range []simd.ISA{simd.Generic, simd.NEON, simd.AVX2, simd.AVX512} {
		if simd.Available(i) {
			p.Available = append(p.Available, i.String())
		}
	}
	return p
}

func (p PlatformInfo) String() string {
	s := fmt.Sprintf("%s/%s %s (%d lanes per register, %d passes)", p.OS, p.Arch, p.ISA, p.RegisterLanes, p.Passes)
	if p.Overridden {
		s += " [SEEDSCAN_SIMD]"
	}
	return s
}
