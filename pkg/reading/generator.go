// Package reading produces the synthetic per-second sensor readings the
// benchmark aggregates. Every concurrently running producer owns its own
// Generator; generators are never shared between goroutines.
package reading

import (
	"encoding/binary"
	"math/rand/v2"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/hyp3rd/dailystats/internal/constants"
)

// Generator yields pseudo-random readings in [constants.ReadingMin, constants.ReadingMax).
// The sequence is infinite and cannot be restarted. A Generator is not safe
// for concurrent use.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a generator backed by a PCG source seeded with seed1 and seed2.
func NewGenerator(seed1, seed2 uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed1, seed2))} //nolint:gosec
}

// Next returns the next reading.
func (g *Generator) Next() float64 {
	return constants.ReadingMin + g.rng.Float64()*(constants.ReadingMax-constants.ReadingMin)
}

// Fill overwrites every element of buf with a fresh reading.
func (g *Generator) Fill(buf []float64) {
	for i := range buf {
		buf[i] = g.Next()
	}
}

// Seeder hands out independent generators, one per producer stream. Seeds
// are derived by hashing the base seed together with the stream id, so two
// streams never share state and a fixed base seed reproduces every stream.
//
// A Seeder is immutable and safe for concurrent use.
type Seeder struct {
	base uint64
}

// NewSeeder returns a seeder with a fixed base seed, for deterministic runs.
func NewSeeder(base uint64) *Seeder {
	return &Seeder{base: base}
}

// NewTimeSeeder returns a seeder whose base seed is taken from the wall clock.
func NewTimeSeeder() *Seeder {
	return NewSeeder(uint64(time.Now().UnixNano())) //nolint:gosec
}

// Base returns the base seed.
func (s *Seeder) Base() uint64 { return s.base }

// Derive returns a seeder for a sub-run, such as one invocation of a
// repeated benchmark, so repeats do not replay identical readings.
func (s *Seeder) Derive(salt uint64) *Seeder {
	return &Seeder{base: s.mix(salt, 0x9e3779b97f4a7c15)}
}

// Generator returns the generator for the given stream.
func (s *Seeder) Generator(stream uint64) *Generator {
	return NewGenerator(s.mix(stream, 0), s.mix(stream, 1))
}

func (s *Seeder) mix(stream, lane uint64) uint64 {
	var buf [24]byte

	binary.LittleEndian.PutUint64(buf[0:], s.base)
	binary.LittleEndian.PutUint64(buf[8:], stream)
	binary.LittleEndian.PutUint64(buf[16:], lane)

	return xxhash.Sum64(buf[:])
}
