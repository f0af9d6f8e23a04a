package mana

import (
	"testing"
)

func TestPool_Add(t *testing.T) {
	pool := NewPool()

	pool.Add(White, 2)
	if pool.Get(White) != 2 {
		t.Errorf("Expected 2 white mana, got %d", pool.Get(White))
	}

	pool.Add(Blue, 1)
	pool.Add(Red, 0)
	pool.Add(Red, -3)
	if pool.Get(Blue) != 1 {
		t.Errorf("Expected 1 blue mana, got %d", pool.Get(Blue))
	}
	if pool.Get(Red) != 0 {
		t.Errorf("Expected non-positive adds to be ignored, got %d red", pool.Get(Red))
	}
}

func TestPool_Spend(t *testing.T) {
	pool := NewPool()
	pool.Add(White, 3)
	pool.Add(Blue, 2)

	if !pool.Spend(White, 2) {
		t.Error("Expected to spend 2 white mana")
	}
	if pool.Get(White) != 1 {
		t.Errorf("Expected 1 white mana remaining, got %d", pool.Get(White))
	}

	if pool.Spend(White, 5) {
		t.Error("Expected to fail spending 5 white mana when only 1 available")
	}
	if pool.Get(White) != 1 {
		t.Errorf("Failed spend must not change the pool, got %d white", pool.Get(White))
	}
}

func TestPool_TotalAndEmpty(t *testing.T) {
	pool := NewPool()
	pool.Add(Green, 2)
	pool.Add(Colorless, 3)

	if pool.Total() != 5 {
		t.Errorf("Expected total 5, got %d", pool.Total())
	}
	if pool.String() != "{G}{G}{C}{C}{C}" {
		t.Errorf("Unexpected rendering %q", pool.String())
	}

	pool.Empty()
	if pool.Total() != 0 {
		t.Errorf("Expected empty pool, got %d", pool.Total())
	}
}

func TestPool_Copy(t *testing.T) {
	pool := NewPool()
	pool.Add(Black, 2)

	clone := pool.Copy()
	clone.Spend(Black, 2)

	if pool.Get(Black) != 2 {
		t.Errorf("Copy must be independent, original has %d black", pool.Get(Black))
	}
	if clone.Get(Black) != 0 {
		t.Errorf("Expected clone to be drained, got %d", clone.Get(Black))
	}
}

func TestParseColor(t *testing.T) {
	for input, want := range map[string]Color{"G": Green, "u": Blue, "white": White, "COLORLESS": Colorless} {
		got, err := ParseColor(input)
		if err != nil {
			t.Errorf("ParseColor(%q) failed: %v", input, err)
			continue
		}
		if got != want {
			t.Errorf("ParseColor(%q) = %s, want %s", input, got, want)
		}
	}
	if _, err := ParseColor("purple"); err == nil {
		t.Error("Expected error for unknown color")
	}
}
