package mana

import (
	"fmt"
	"strings"
	"sync"
)

// Color is one of the six mana buckets.
type Color int

const (
	White Color = iota
	Blue
	Black
	Red
	Green
	Colorless
)

// Colors lists every bucket in canonical WUBRG+C order.
var Colors = []Color{White, Blue, Black, Red, Green, Colorless}

var colorNames = map[Color]string{
	White:     "WHITE",
	Blue:      "BLUE",
	Black:     "BLACK",
	Red:       "RED",
	Green:     "GREEN",
	Colorless: "COLORLESS",
}

var colorSymbols = map[Color]string{
	White:     "W",
	Blue:      "U",
	Black:     "B",
	Red:       "R",
	Green:     "G",
	Colorless: "C",
}

func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return fmt.Sprintf("COLOR_%d", int(c))
}

// Symbol returns the single-letter mana symbol for the color.
func (c Color) Symbol() string {
	return colorSymbols[c]
}

// ParseColor accepts a mana symbol ("G") or a color name ("green").
func ParseColor(s string) (Color, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for c, sym := range colorSymbols {
		if s == sym || s == colorNames[c] {
			return c, nil
		}
	}
	return Colorless, fmt.Errorf("unknown mana color: %q", s)
}

// Pool is a player's mana pool.
type Pool struct {
	mu      sync.RWMutex
	buckets [6]int
}

// NewPool creates an empty pool.
func NewPool() *Pool {
	return &Pool{}
}

// Add adds mana of a color.
func (p *Pool) Add(c Color, amount int) {
	if amount <= 0 || !valid(c) {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.buckets[c] += amount
}

// Spend removes mana of a color. Returns false and leaves the pool untouched
// when there is not enough.
func (p *Pool) Spend(c Color, amount int) bool {
	if amount <= 0 {
		return true
	}
	if !valid(c) {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.buckets[c] < amount {
		return false
	}
	p.buckets[c] -= amount
	return true
}

// Get returns the amount of one color.
func (p *Pool) Get(c Color) int {
	if !valid(c) {
		return 0
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.buckets[c]
}

// Total returns the amount of mana across all buckets.
func (p *Pool) Total() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	total := 0
	for _, n := range p.buckets {
		total += n
	}
	return total
}

// Counts returns a copy of the buckets indexed by Color.
func (p *Pool) Counts() [6]int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.buckets
}

// Empty drains every bucket.
func (p *Pool) Empty() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.buckets = [6]int{}
}

// Copy creates an independent copy of the pool.
func (p *Pool) Copy() *Pool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return &Pool{buckets: p.buckets}
}

// Merge adds every bucket of other into p.
func (p *Pool) Merge(other *Pool) {
	if other == nil {
		return
	}
	counts := other.Counts()
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, n := range counts {
		p.buckets[i] += n
	}
}

// String renders the pool as mana symbols, e.g. "{G}{G}{C}".
func (p *Pool) String() string {
	counts := p.Counts()
	var b strings.Builder
	for _, c := range Colors {
		for i := 0; i < counts[c]; i++ {
			b.WriteString("{" + c.Symbol() + "}")
		}
	}
	return b.String()
}

func valid(c Color) bool {
	return c >= White && c <= Colorless
}
