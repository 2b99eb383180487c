// Package ids hands out the time-based record identifiers used across all
// collections. Ids are strings: a millisecond timestamp base, with a
// discriminator whenever two records could share a tick.
package ids

import (
	"math/rand"
	"strconv"
	"sync"
	"time"
)

const suffixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// Generator produces pairwise-distinct ids. Single inserts in the same
// millisecond get a sequence counter, bulk inserts get their index plus a
// random suffix.
type Generator struct {
	mu   sync.Mutex
	last int64
	seq  int
}

func NewGenerator() *Generator {
	return &Generator{}
}

// Next returns a fresh id for a single insert.
func (g *Generator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := time.Now().UnixMilli()
	if now == g.last {
		g.seq++
		return strconv.FormatInt(now, 10) + "-" + strconv.Itoa(g.seq)
	}
	g.last = now
	g.seq = 0
	return strconv.FormatInt(now, 10)
}

// Bulk returns n ids sharing one time base. The index keeps items within the
// call apart, the random suffix keeps separate calls within the same
// millisecond apart.
func (g *Generator) Bulk(n int) []string {
	base := strconv.FormatInt(time.Now().UnixMilli(), 10)
	ids := make([]string, n)
	for i := range ids {
		ids[i] = base + "-" + strconv.Itoa(i) + randomSuffix(5)
	}
	return ids
}

func randomSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = suffixAlphabet[rand.Intn(len(suffixAlphabet))]
	}
	return string(b)
}
