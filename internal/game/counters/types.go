package counters

// CounterType names a kind of counter.
type CounterType string

const (
	CounterTypeP1P1 CounterType = "+1/+1"
	CounterTypeM1M1 CounterType = "-1/-1"
)

// IsBoost reports whether the counter type modifies power and toughness.
func (ct CounterType) IsBoost() bool {
	_, _, ok := parseBoostCounterName(string(ct))
	return ok
}
