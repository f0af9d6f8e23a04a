package counters

import (
	"sort"
	"strconv"
	"strings"
)

// Counter is a named pile of counters on a permanent.
type Counter struct {
	Name  string
	Count int
}

// NewCounter creates a counter; non-positive counts become 1.
func NewCounter(name string, count int) *Counter {
	if count <= 0 {
		count = 1
	}
	return &Counter{Name: name, Count: count}
}

// Add adds the specified amount to the counter.
func (c *Counter) Add(amount int) {
	if amount > 0 {
		c.Count += amount
	}
}

// Remove removes up to amount counters, never going below zero.
func (c *Counter) Remove(amount int) {
	if amount <= 0 {
		return
	}
	c.Count = max(c.Count-amount, 0)
}

// Copy creates a deep copy of the counter.
func (c *Counter) Copy() *Counter {
	return &Counter{Name: c.Name, Count: c.Count}
}

// BoostCounter is a counter that changes power and toughness, e.g. "+1/+1".
type BoostCounter struct {
	*Counter
	Power     int
	Toughness int
}

// NewBoostCounter creates a boost counter named after its deltas.
func NewBoostCounter(power, toughness, count int) *BoostCounter {
	return &BoostCounter{
		Counter:   NewCounter(formatBoost(power)+"/"+formatBoost(toughness), count),
		Power:     power,
		Toughness: toughness,
	}
}

func formatBoost(value int) string {
	if value >= 0 {
		return "+" + strconv.Itoa(value)
	}
	return strconv.Itoa(value)
}

// Counters manages the counters on one permanent.
type Counters struct {
	Counters map[string]*Counter
}

// NewCounters creates an empty collection.
func NewCounters() *Counters {
	return &Counters{Counters: make(map[string]*Counter)}
}

// Add puts count counters of the given type on the permanent.
func (cs *Counters) Add(ct CounterType, count int) {
	if count <= 0 {
		return
	}
	cs.AddCounter(NewCounter(string(ct), count))
}

// AddCounter merges a counter into the collection.
func (cs *Counters) AddCounter(counter *Counter) {
	if counter == nil {
		return
	}
	if existing, ok := cs.Counters[counter.Name]; ok {
		existing.Add(counter.Count)
		return
	}
	cs.Counters[counter.Name] = counter.Copy()
}

// Remove takes up to amount counters of a type off. Returns true if any
// counters of that type were present.
func (cs *Counters) Remove(ct CounterType, amount int) bool {
	if amount <= 0 {
		return false
	}
	counter, ok := cs.Counters[string(ct)]
	if !ok {
		return false
	}
	counter.Remove(amount)
	if counter.Count == 0 {
		delete(cs.Counters, string(ct))
	}
	return true
}

// Count returns how many counters of a type are present.
func (cs *Counters) Count(ct CounterType) int {
	if counter, ok := cs.Counters[string(ct)]; ok {
		return counter.Count
	}
	return 0
}

// Total returns the number of counters of every type.
func (cs *Counters) Total() int {
	total := 0
	for _, counter := range cs.Counters {
		total += counter.Count
	}
	return total
}

// Clear removes every counter.
func (cs *Counters) Clear() {
	cs.Counters = make(map[string]*Counter)
}

// BoostCounters returns every power/toughness counter, sorted by name.
func (cs *Counters) BoostCounters() []*BoostCounter {
	var boosts []*BoostCounter
	for _, counter := range cs.Counters {
		if power, toughness, ok := parseBoostCounterName(counter.Name); ok {
			boosts = append(boosts, NewBoostCounter(power, toughness, counter.Count))
		}
	}
	sort.Slice(boosts, func(i, j int) bool { return boosts[i].Name < boosts[j].Name })
	return boosts
}

// Boost sums the power and toughness deltas of all boost counters.
func (cs *Counters) Boost() (power, toughness int) {
	for _, bc := range cs.BoostCounters() {
		power += bc.Power * bc.Count
		toughness += bc.Toughness * bc.Count
	}
	return power, toughness
}

// Copy creates a deep copy of the collection.
func (cs *Counters) Copy() *Counters {
	clone := NewCounters()
	for name, counter := range cs.Counters {
		clone.Counters[name] = counter.Copy()
	}
	return clone
}

// ToView lists the counters sorted by name.
func (cs *Counters) ToView() []CounterView {
	views := make([]CounterView, 0, len(cs.Counters))
	for name, counter := range cs.Counters {
		views = append(views, CounterView{Name: name, Count: counter.Count})
	}
	sort.Slice(views, func(i, j int) bool { return views[i].Name < views[j].Name })
	return views
}

// CounterView represents a counter in the view format.
type CounterView struct {
	Name  string
	Count int
}

func parseBoostCounterName(name string) (int, int, bool) {
	parts := strings.Split(name, "/")
	if len(parts) != 2 {
		return 0, 0, false
	}
	power, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	toughness, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return power, toughness, true
}
