package seedscan

import (
	"runtime"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlatform(t *testing.T) {
	p := Platform()
	assert.Equal(t, runtime.GOOS, p.OS)
	assert.Equal(t, runtime.GOARCH, p.Arch)
	assert.Equal(t, 8, p.RegisterLanes*p.Passes)
	assert.Equal(t, "generic", p.Available[0])
	assert.True(t, slices.Contains(p.Available, p.ISA))
	assert.Contains(t, p.String(), p.ISA)
}
