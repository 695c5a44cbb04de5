// Package idgen generates time-based entity ids such as "u1735689600000".
package idgen

import (
	"strconv"
	"sync"
	"time"
)

const (
	UserPrefix    = "u"
	PostPrefix    = "p"
	CommentPrefix = "c"
)

// Generator issues ids made of a prefix and a millisecond timestamp.
// Ids issued by one Generator strictly increase, so two calls within the
// same millisecond still differ.
type Generator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// New returns a Generator reading the wall clock.
func New() *Generator {
	return &Generator{now: time.Now}
}

// NewWithClock returns a Generator reading now.
func NewWithClock(now func() time.Time) *Generator {
	return &Generator{now: now}
}

// Next returns prefix followed by the next timestamp.
func (g *Generator) Next(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return prefix + strconv.FormatInt(ms, 10)
}

// Millis returns the current time in epoch milliseconds.
func (g *Generator) Millis() int64 {
	return g.now().UnixMilli()
}

func (g *Generator) UserID() string    { return g.Next(UserPrefix) }
func (g *Generator) PostID() string    { return g.Next(PostPrefix) }
func (g *Generator) CommentID() string { return g.Next(CommentPrefix) }
