package mana

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var symbolPattern = regexp.MustCompile(`\{([^}]+)\}`)

// Cost represents a parsed mana cost.
type Cost struct {
	Generic   int
	White     int
	Blue      int
	Black     int
	Red       int
	Green     int
	Colorless int
}

// ParseCost parses a mana cost string such as "{2}{G}{G}".
// Supports generic numbers and the six single-color symbols. Hybrid and X
// symbols are rejected.
func ParseCost(costStr string) (Cost, error) {
	var cost Cost
	costStr = strings.TrimSpace(costStr)
	if costStr == "" {
		return cost, nil
	}

	matches := symbolPattern.FindAllStringSubmatch(costStr, -1)
	if len(matches) == 0 {
		return cost, fmt.Errorf("malformed mana cost: %q", costStr)
	}
	for _, match := range matches {
		symbol := strings.ToUpper(strings.TrimSpace(match[1]))
		switch symbol {
		case "W":
			cost.White++
		case "U":
			cost.Blue++
		case "B":
			cost.Black++
		case "R":
			cost.Red++
		case "G":
			cost.Green++
		case "C":
			cost.Colorless++
		default:
			num, err := strconv.Atoi(symbol)
			if err != nil || num < 0 {
				return Cost{}, fmt.Errorf("unsupported mana symbol: {%s}", symbol)
			}
			cost.Generic += num
		}
	}
	return cost, nil
}

// MustParseCost is ParseCost for static card tables.
func MustParseCost(costStr string) Cost {
	cost, err := ParseCost(costStr)
	if err != nil {
		panic(err)
	}
	return cost
}

// Colored returns the colored requirement for c.
func (c Cost) Colored(color Color) int {
	switch color {
	case White:
		return c.White
	case Blue:
		return c.Blue
	case Black:
		return c.Black
	case Red:
		return c.Red
	case Green:
		return c.Green
	case Colorless:
		return c.Colorless
	default:
		return 0
	}
}

// ManaValue is the total amount of mana in the cost.
func (c Cost) ManaValue() int {
	return c.Generic + c.White + c.Blue + c.Black + c.Red + c.Green + c.Colorless
}

// WithTax returns the cost with extra generic mana added.
func (c Cost) WithTax(tax int) Cost {
	if tax > 0 {
		c.Generic += tax
	}
	return c
}

// CanPay checks affordability against a pool of available mana in two
// phases: every colored requirement must be covered by the same bucket, then
// the generic remainder must fit in what is left.
func (c Cost) CanPay(pool *Pool) bool {
	if pool == nil {
		return c.ManaValue() == 0
	}
	counts := pool.Counts()
	remaining := 0
	for _, color := range Colors {
		need := c.Colored(color)
		if counts[color] < need {
			return false
		}
		remaining += counts[color] - need
	}
	return remaining >= c.Generic
}

// String renders the cost in brace notation, generic first.
func (c Cost) String() string {
	var b strings.Builder
	if c.Generic > 0 {
		b.WriteString("{" + strconv.Itoa(c.Generic) + "}")
	}
	for _, color := range Colors {
		for i := 0; i < c.Colored(color); i++ {
			b.WriteString("{" + color.Symbol() + "}")
		}
	}
	return b.String()
}
