package seed

import "fmt"

// Space describes a sequential enumeration space: every seed of exactly
// Length characters over the first Radix alphabet symbols, split into batches
// that enumerate the first BatchChars positions.
//
// Production search uses DefaultSpace; reduced spaces exist so that coverage
// properties can be checked exhaustively in tests.
type Space struct {
	Radix      int
	Length     int
	BatchChars int
}

// NewSpace returns the full 8-character space for batchChars.
func NewSpace(batchChars int) (Space, error) {
	sp := Space{Radix: Radix, Length: MaxLength, BatchChars: batchChars}
	if err := sp.Validate(); err != nil {
		return Space{}, err
	}
	return sp, nil
}

// Validate checks the space parameters.
func (sp Space) Validate() error {
	if sp.Radix < 1 || sp.Radix > Radix {
		return fmt.Errorf("radix %d out of range [1,%d]", sp.Radix, Radix)
	}
	if sp.Length < 2 || sp.Length > MaxLength {
		return fmt.Errorf("length %d out of range [2,%d]", sp.Length, MaxLength)
	}
	if sp.BatchChars < 1 || sp.BatchChars >= sp.Length {
		return fmt.Errorf("batch character count %d out of range [1,%d]", sp.BatchChars, sp.Length-1)
	}
	return nil
}

// BatchCount returns Radix^(Length-BatchChars).
func (sp Space) BatchCount() uint64 {
	return ipow(uint64(sp.Radix), sp.Length-sp.BatchChars)
}

// SeedsPerBatch returns Radix^BatchChars.
func (sp Space) SeedsPerBatch() uint64 {
	return ipow(uint64(sp.Radix), sp.BatchChars)
}

// FillSuffix writes the fixed characters of batch index into dst positions
// BatchChars..Length-1. Position Length-1 is the least significant digit.
func (sp Space) FillSuffix(index uint64, dst *[MaxLength]byte) {
	r := uint64(sp.Radix)
	for pos := sp.Length - 1; pos >= sp.BatchChars; pos-- {
		dst[pos] = Alphabet[index%r]
		index /= r
	}
}

// BatchOf returns the batch index that contains s, and whether s belongs
// to the space at all.
func (sp Space) BatchOf(s Seed) (uint64, bool) {
	if s.Len() != sp.Length {
		return 0, false
	}
	var idx uint64
	for pos := sp.BatchChars; pos < sp.Length; pos++ {
		d := Digit(s.chars[pos])
		if d < 0 || d >= sp.Radix {
			return 0, false
		}
		idx = idx*uint64(sp.Radix) + uint64(d)
	}
	for pos := 0; pos < sp.BatchChars; pos++ {
		if d := Digit(s.chars[pos]); d < 0 || d >= sp.Radix {
			return 0, false
		}
	}
	return idx, true
}

// Enumerate calls fn for every seed of batch index in enumeration order:
// position 0 varies fastest. It stops early when fn returns false.
//
// This is the scalar reference for the scheduler's lane expansion.
func (sp Space) Enumerate(index uint64, fn func(Seed) bool) {
	var chars [MaxLength]byte
	sp.FillSuffix(index, &chars)

	var digits [MaxLength]int
	for i := 0; i < sp.BatchChars; i++ {
		chars[i] = Alphabet[0]
	}
	for {
		if !fn(Seed{chars: chars, n: uint8(sp.Length)}) {
			return
		}
		// Odometer increment over the prefix positions.
		pos := 0
		for pos < sp.BatchChars {
			digits[pos]++
			if digits[pos] < sp.Radix {
				chars[pos] = Alphabet[digits[pos]]
				break
			}
			digits[pos] = 0
			chars[pos] = Alphabet[0]
			pos++
		}
		if pos == sp.BatchChars {
			return
		}
	}
}

func ipow(base uint64, exp int) uint64 {
	out := uint64(1)
	for ; exp > 0; exp-- {
		out *= base
	}
	return out
}
