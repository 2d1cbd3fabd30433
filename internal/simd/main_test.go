package simd

import (
	"fmt"
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	fmt.Printf("simd: %s (%d lanes per register, %d passes, override=%v)\n",
		ActiveISA(), ActiveISA().RegisterLanes(), ActiveISA().Passes(), Overridden())
	os.Exit(m.Run())
}
