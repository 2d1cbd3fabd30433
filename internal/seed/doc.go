// Package seed implements the seed codec: the 35-symbol alphabet, the
// fixed-width Seed value type, its packed numeric form and the batch address
// space used by sequential search.
//
// # Alphabet
//
// Seeds use the digits 1-9, the letters A-Z without O, and 0 (the game
// rewrites a typed O to 0). The digit value of a character is its index in
// Alphabet; sequential search treats a seed as a mixed-radix counter over
// these values.
//
// # Batch Address Space
//
// For a batch character count B (1-7) the 8-character space splits into
// 35^(8-B) batches of 35^B seeds. A batch fixes the suffix (positions B..7,
// position 7 least significant) and enumerates the prefix positions 0..B-1.
// The suffix is fixed because the pseudo-hash folds characters right to left,
// so the suffix state can be computed once per batch and extended one
// character at a time.
package seed
