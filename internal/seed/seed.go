package seed

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Alphabet lists the valid seed characters in digit order.
	Alphabet = "123456789ABCDEFGHIJKLMNPQRSTUVWXYZ0"

	// Radix is the number of symbols in Alphabet.
	Radix = len(Alphabet)

	// MaxLength is the maximum seed length.
	MaxLength = 8
)

// ErrEmpty is returned when parsing an empty seed.
var ErrEmpty = errors.New("seed is empty")

// InvalidCharError reports a character outside the seed alphabet.
type InvalidCharError struct {
	Seed     string
	Position int
	Char     rune
}

func (e *InvalidCharError) Error() string {
	return fmt.Sprintf("seed %q: invalid character %q at position %d", e.Seed, e.Char, e.Position)
}

// LengthError reports a seed longer than MaxLength.
type LengthError struct {
	Seed   string
	Length int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("seed %q: length %d exceeds %d", e.Seed, e.Length, MaxLength)
}

var digitOf [256]int8

func init() {
	for i := range digitOf {
		digitOf[i] = -1
	}
	for i := 0; i < Radix; i++ {
		digitOf[Alphabet[i]] = int8(i)
	}
}

// Digit returns the digit value of c, or -1 if c is not in the alphabet.
func Digit(c byte) int {
	return int(digitOf[c])
}

// Char returns the character for digit d. It panics if d is out of range.
func Char(d int) byte {
	return Alphabet[d]
}

// Seed is a fixed-width seed value. The zero value is the empty seed.
type Seed struct {
	chars [MaxLength]byte
	n     uint8
}

// Parse validates s and returns the corresponding Seed.
// Lower-case letters are accepted and O is mapped to 0, as the game does.
func Parse(s string) (Seed, error) {
	var out Seed
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return out, ErrEmpty
	}
	if len(trimmed) > MaxLength {
		return out, &LengthError{Seed: s, Length: len(trimmed)}
	}
	for i := 0; i < len(trimmed); i++ {
		c := trimmed[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c == 'O' {
			c = '0'
		}
		if digitOf[c] < 0 {
			return Seed{}, &InvalidCharError{Seed: s, Position: i, Char: rune(trimmed[i])}
		}
		out.chars[i] = c
	}
	out.n = uint8(len(trimmed))
	return out, nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(s string) Seed {
	sd, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return sd
}

// FromChars builds a seed from raw alphabet characters without validation.
func FromChars(chars []byte) Seed {
	var out Seed
	out.n = uint8(copy(out.chars[:], chars))
	return out
}

// Len returns the number of characters in the seed.
func (s Seed) Len() int { return int(s.n) }

// At returns the character at position i.
func (s Seed) At(i int) byte { return s.chars[i] }

// Chars returns the seed characters as a slice backed by a copy.
func (s Seed) Chars() []byte {
	out := make([]byte, s.n)
	copy(out, s.chars[:s.n])
	return out
}

// Raw returns the fixed-width character buffer and the length.
func (s Seed) Raw() ([MaxLength]byte, int) { return s.chars, int(s.n) }

// IsZero reports whether s is the empty seed.
func (s Seed) IsZero() bool { return s.n == 0 }

func (s Seed) String() string {
	return string(s.chars[:s.n])
}

// Pack returns the bijective numeric form of the seed.
//
// Seeds of length L occupy the range [offset(L), offset(L)+35^L), where
// offset(L) is the number of seeds shorter than L. Position 0 is the most
// significant digit, so packed order equals (length, lexical digit) order.
func (s Seed) Pack() uint64 {
	var v uint64
	for i := 0; i < int(s.n); i++ {
		v = v*uint64(Radix) + uint64(digitOf[s.chars[i]])
	}
	return lengthOffset[s.n] + v
}

// Unpack reverses Pack.
func Unpack(v uint64) (Seed, error) {
	var n int
	for n = 1; n <= MaxLength; n++ {
		if v < lengthOffset[n]+pow35[n] {
			break
		}
	}
	if n > MaxLength {
		return Seed{}, fmt.Errorf("packed seed %d out of range", v)
	}
	v -= lengthOffset[n]
	var out Seed
	out.n = uint8(n)
	for i := n - 1; i >= 0; i-- {
		out.chars[i] = Alphabet[v%uint64(Radix)]
		v /= uint64(Radix)
	}
	return out, nil
}

var (
	pow35        [MaxLength + 1]uint64
	lengthOffset [MaxLength + 1]uint64
)

func init() {
	pow35[0] = 1
	for i := 1; i <= MaxLength; i++ {
		pow35[i] = pow35[i-1] * uint64(Radix)
	}
	// lengthOffset[1] is 0: the empty seed is not packable.
	for i := 2; i <= MaxLength; i++ {
		lengthOffset[i] = lengthOffset[i-1] + pow35[i-1]
	}
}

// Pow35 returns 35^n for 0 <= n <= MaxLength.
func Pow35(n int) uint64 { return pow35[n] }
