//go:build amd64

package simd

import "golang.org/x/sys/cpu"

func init() {
	features[AVX2] = cpu.X86.HasAVX2 && cpu.X86.HasFMA
	features[AVX512] = cpu.X86.HasAVX512F && cpu.X86.HasAVX512DQ
	detect()
}
