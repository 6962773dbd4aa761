// Package daily picks one strong opening word per calendar day.
package daily

import (
	"math/rand/v2"
	"time"
)

const (
	// PoolSize is how many top-scored past answers the pick draws from.
	PoolSize = 100
	// FallbackWord is returned when there is nothing to draw from.
	FallbackWord = "crane"
)

// Seed derives the generator seed for date and offset.
// 2026-10-16 with offset 0 gives 20261016; each offset step adds 1000.
func Seed(date time.Time, offset int) int64 {
	y, m, d := date.Date()
	return int64(y*10000 + int(m)*100 + d + offset*1000)
}

// Pick returns a word from pool, which must be ordered best first. The draw
// is squared so the front of the pool is favoured, and the same date and
// offset always give the same word.
func Pick(pool []string, date time.Time, offset int) string {
	if len(pool) == 0 {
		return FallbackWord
	}
	seed := uint64(Seed(date, offset))
	rng := rand.New(rand.NewPCG(seed, seed))

	u := rng.Float64()
	idx := min(int(u*u*PoolSize), len(pool)-1)
	return pool[idx]
}
