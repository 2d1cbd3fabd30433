//go:build arm64

package simd

import "golang.org/x/sys/cpu"

func init() {
	features[NEON] = cpu.ARM64.HasASIMD
	detect()
}
