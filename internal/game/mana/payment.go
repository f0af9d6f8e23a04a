package mana

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInsufficientMana is returned when a cost cannot be covered.
var ErrInsufficientMana = errors.New("insufficient mana")

// Source is an untapped permanent that produces one mana of a color when tapped.
type Source struct {
	ID       string
	Produces Color
}

// Plan describes how a cost will be paid: mana drawn from the floating pool
// and the sources to tap.
type Plan struct {
	Floating [6]int
	Tap      []string
}

// Available returns the pool that would exist if every source were tapped
// into floating.
func Available(floating *Pool, sources []Source) *Pool {
	pool := NewPool()
	if floating != nil {
		pool.Merge(floating)
	}
	for _, src := range sources {
		pool.Add(src.Produces, 1)
	}
	return pool
}

// PlanPayment works out a payment without side effects. Colored requirements
// are covered first, from floating mana and then sources of that color.
// Generic is paid last: floating mana, then colorless sources, then colored
// sources drawn from the colors with the most remaining supply.
func PlanPayment(cost Cost, floating *Pool, sources []Source) (*Plan, error) {
	if !cost.CanPay(Available(floating, sources)) {
		return nil, fmt.Errorf("%w: need %s, have %s", ErrInsufficientMana, cost, Available(floating, sources))
	}

	plan := &Plan{}
	var counts [6]int
	if floating != nil {
		counts = floating.Counts()
	}
	used := make([]bool, len(sources))

	for _, color := range Colors {
		need := cost.Colored(color)
		take := min(need, counts[color])
		counts[color] -= take
		plan.Floating[color] += take
		need -= take
		for i, src := range sources {
			if need == 0 {
				break
			}
			if used[i] || src.Produces != color {
				continue
			}
			used[i] = true
			plan.Tap = append(plan.Tap, src.ID)
			need--
		}
		if need > 0 {
			return nil, fmt.Errorf("%w: missing %d %s", ErrInsufficientMana, need, color)
		}
	}

	generic := cost.Generic
	for _, color := range []Color{Colorless, White, Blue, Black, Red, Green} {
		take := min(generic, counts[color])
		counts[color] -= take
		plan.Floating[color] += take
		generic -= take
	}

	for _, i := range genericOrder(sources, used) {
		if generic == 0 {
			break
		}
		used[i] = true
		plan.Tap = append(plan.Tap, sources[i].ID)
		generic--
	}
	if generic > 0 {
		return nil, fmt.Errorf("%w: missing %d generic", ErrInsufficientMana, generic)
	}
	return plan, nil
}

// genericOrder ranks unused sources for generic payment: colorless first,
// then colors with the largest remaining supply, ties by position.
func genericOrder(sources []Source, used []bool) []int {
	supply := map[Color]int{}
	var idx []int
	for i, src := range sources {
		if used[i] {
			continue
		}
		supply[src.Produces]++
		idx = append(idx, i)
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ca, cb := sources[idx[a]].Produces, sources[idx[b]].Produces
		if (ca == Colorless) != (cb == Colorless) {
			return ca == Colorless
		}
		return supply[ca] > supply[cb]
	})
	return idx
}

// Commit spends the floating part of the plan from the pool. The pool is
// left untouched if it no longer covers the plan.
func (p *Plan) Commit(pool *Pool) error {
	if p == nil {
		return nil
	}
	counts := pool.Counts()
	for _, color := range Colors {
		if counts[color] < p.Floating[color] {
			return fmt.Errorf("%w: pool changed since planning", ErrInsufficientMana)
		}
	}
	for _, color := range Colors {
		pool.Spend(color, p.Floating[color])
	}
	return nil
}
