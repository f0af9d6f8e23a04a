// Package catalog holds card templates: the built-in pool, persistent
// stores, the oracle-text parser that turns rules text into engine effects,
// and deck construction.
package catalog

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/magefree/commander-engine-go/internal/game/cards"
	"github.com/magefree/commander-engine-go/internal/game/mana"
)

// Record is a card in storage form.
type Record struct {
	Name       string
	ManaCost   string
	Types      []string
	Power      *int
	Toughness  *int
	Legendary  bool
	OracleText string
}

// Catalog indexes card templates by name. Templates are shared by every
// game built from the catalog and must not be modified.
type Catalog struct {
	mu     sync.RWMutex
	parser *OracleParser
	logger *zap.Logger
	byName map[string]*cards.Card
	order  []*cards.Card
}

// New creates an empty catalog.
func New(parser *OracleParser, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{
		parser: parser,
		logger: logger,
		byName: make(map[string]*cards.Card),
	}
}

// NewBuiltin creates a catalog holding the built-in pool.
func NewBuiltin(logger *zap.Logger) (*Catalog, error) {
	parser, err := NewOracleParser()
	if err != nil {
		return nil, fmt.Errorf("build oracle parser: %w", err)
	}
	c := New(parser, logger)
	if err := c.AddAll(Builtin()); err != nil {
		return nil, err
	}
	return c, nil
}

// Add converts a record and indexes it, replacing a card of the same name.
func (c *Catalog) Add(rec Record) (*cards.Card, error) {
	card, ignored, err := BuildCard(c.parser, rec)
	if err != nil {
		return nil, err
	}
	if len(ignored) > 0 {
		c.logger.Debug("oracle text partly unsupported",
			zap.String("card", card.Name),
			zap.Strings("ignored", ignored),
		)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	key := strings.ToLower(card.Name)
	if old, exists := c.byName[key]; exists {
		for i, existing := range c.order {
			if existing == old {
				c.order[i] = card
			}
		}
	} else {
		c.order = append(c.order, card)
	}
	c.byName[key] = card
	return card, nil
}

// AddAll adds every record and reports all failures together.
func (c *Catalog) AddAll(recs []Record) error {
	var errs []error
	for _, rec := range recs {
		if _, err := c.Add(rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Get looks a card up by name, ignoring case.
func (c *Catalog) Get(name string) (*cards.Card, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	card, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	return card, ok
}

// Cards returns every card in insertion order.
func (c *Catalog) Cards() []*cards.Card {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*cards.Card, len(c.order))
	copy(out, c.order)
	return out
}

// Commanders returns the cards that may lead a deck.
func (c *Catalog) Commanders() []*cards.Card {
	var out []*cards.Card
	for _, card := range c.Cards() {
		if card.Commander {
			out = append(out, card)
		}
	}
	return out
}

// Len returns the number of cards.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

// BuildCard turns a record into a card template. Spell text of instants
// and sorceries becomes the card's effects; triggered abilities attach to
// any card. The sentences the parser skipped are returned.
func BuildCard(parser *OracleParser, rec Record) (*cards.Card, []string, error) {
	name := strings.TrimSpace(rec.Name)
	if name == "" {
		return nil, nil, fmt.Errorf("card record has no name")
	}
	cost, err := mana.ParseCost(rec.ManaCost)
	if err != nil {
		return nil, nil, fmt.Errorf("card %s: %w", name, err)
	}
	card := &cards.Card{
		ID:         Slug(name),
		Name:       name,
		Cost:       cost,
		Power:      rec.Power,
		Toughness:  rec.Toughness,
		OracleText: rec.OracleText,
		Produces:   mana.Colorless,
	}
	for _, t := range rec.Types {
		typ, err := cards.ParseType(t)
		if err != nil {
			return nil, nil, fmt.Errorf("card %s: %w", name, err)
		}
		card.Types = append(card.Types, typ)
	}
	if len(card.Types) == 0 {
		return nil, nil, fmt.Errorf("card %s has no card types", name)
	}
	if card.IsCreature() && (card.Power == nil || card.Toughness == nil) {
		return nil, nil, fmt.Errorf("creature %s needs power and toughness", name)
	}
	for _, color := range mana.Colors {
		if color != mana.Colorless && cost.Colored(color) > 0 {
			card.Colors = append(card.Colors, color)
		}
	}
	card.Commander = rec.Legendary && card.IsCreature()
	if card.IsBasicLand() {
		card.Produces = card.ManaColor()
	}

	var ignored []string
	if parser != nil && rec.OracleText != "" {
		abilities := parser.Parse(name, rec.OracleText)
		card.Keywords = abilities.Keywords
		card.Triggers = abilities.Triggers
		if card.IsPermanent() {
			if len(abilities.Effects) > 0 {
				ignored = append(ignored, "spell text on a permanent")
			}
		} else {
			card.SpellEffects = abilities.Effects
		}
		ignored = append(ignored, abilities.Ignored...)
	}
	return card, ignored, nil
}

// Slug is the card id derived from its name, e.g. "kodamas_reach".
func Slug(name string) string {
	var b strings.Builder
	underscore := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			underscore = false
		case r == ' ' || r == '-' || r == ',':
			if !underscore && b.Len() > 0 {
				b.WriteByte('_')
				underscore = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
