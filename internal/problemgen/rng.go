package problemgen

import (
	"math"
	"unicode/utf16"
)

const (
	seedBasis uint32 = 0xDEADBEEF
	seedPrime uint32 = 2654435761

	lcgMultiplier uint32 = 1664525
	lcgIncrement  uint32 = 1013904223

	twoPow32 = 4294967296.0
)

// Stream is the one deterministic pseudo-random source used for content.
// Every skill generator, the tournament coordinator and the daily challenge
// draw from a Stream, so a given seed reproduces the same sequence in every
// subsystem. Streams are not safe for concurrent use; create one per request.
type Stream struct {
	state uint32
}

// NewStream folds a seed string into the initial state. Characters are
// consumed as UTF-16 code units so that seeds containing non-ASCII text fold
// the same way they always have.
func NewStream(seed string) *Stream {
	h := seedBasis
	for _, c := range utf16.Encode([]rune(seed)) {
		h = (h ^ uint32(c)) * seedPrime
	}
	return &Stream{state: h ^ (h >> 16)}
}

// NewStreamFromState starts a stream at an explicit state.
func NewStreamFromState(state uint32) *Stream {
	return &Stream{state: state}
}

// Next advances the LCG and returns a uniform value in [0, 1).
func (s *Stream) Next() float64 {
	s.state = s.state*lcgMultiplier + lcgIncrement
	return float64(s.state) / twoPow32
}

// Range draws an integer in [lo, hi]. Bounds may be fractional (difficulty is
// continuous); the draw is floor(Next()*(hi-lo+1)) + lo.
func (s *Stream) Range(lo, hi float64) int {
	return int(math.Floor(s.Next()*(hi-lo+1)) + lo)
}

// Pick draws one element of items. items must not be empty.
func Pick[T any](s *Stream, items []T) T {
	return items[int(math.Floor(s.Next()*float64(len(items))))]
}
