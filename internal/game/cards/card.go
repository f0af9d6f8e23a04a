package cards

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/magefree/commander-engine-go/internal/game/mana"
)

// Type is a card type tag.
type Type string

const (
	TypeCreature     Type = "creature"
	TypeInstant      Type = "instant"
	TypeSorcery      Type = "sorcery"
	TypeEnchantment  Type = "enchantment"
	TypeArtifact     Type = "artifact"
	TypeLand         Type = "land"
	TypePlaneswalker Type = "planeswalker"
)

// ParseType accepts a card type name in any case.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case TypeCreature, TypeInstant, TypeSorcery, TypeEnchantment, TypeArtifact, TypeLand, TypePlaneswalker:
		return t, nil
	}
	return "", fmt.Errorf("unknown card type: %q", s)
}

// Keyword is an evergreen keyword ability. Only haste and flash change rules
// behavior; the rest are carried for display.
type Keyword string

const (
	KeywordHaste     Keyword = "haste"
	KeywordFlash     Keyword = "flash"
	KeywordFlying    Keyword = "flying"
	KeywordVigilance Keyword = "vigilance"
	KeywordTrample   Keyword = "trample"
	KeywordDefender  Keyword = "defender"
)

var basicLandColors = map[string]mana.Color{
	"Plains":   mana.White,
	"Island":   mana.Blue,
	"Swamp":    mana.Black,
	"Mountain": mana.Red,
	"Forest":   mana.Green,
	"Wastes":   mana.Colorless,
}

// Card is an immutable card template shared by every instance of it.
type Card struct {
	ID         string
	Name       string
	Cost       mana.Cost
	Types      []Type
	Colors     []mana.Color
	Power      *int
	Toughness  *int
	Keywords   []Keyword
	OracleText string
	// Produces is the color a land taps for.
	Produces     mana.Color
	Triggers     []TriggeredAbility
	SpellEffects []Effect
	Commander    bool
	Token        bool
}

// HasType reports whether the card carries the type tag.
func (c *Card) HasType(t Type) bool {
	return slices.Contains(c.Types, t)
}

func (c *Card) IsLand() bool     { return c.HasType(TypeLand) }
func (c *Card) IsCreature() bool { return c.HasType(TypeCreature) }
func (c *Card) IsInstant() bool  { return c.HasType(TypeInstant) }
func (c *Card) IsSorcery() bool  { return c.HasType(TypeSorcery) }

// IsPermanent reports whether the card stays on the battlefield after it resolves.
func (c *Card) IsPermanent() bool {
	return !c.IsInstant() && !c.IsSorcery()
}

// HasKeyword reports whether the card has the keyword.
func (c *Card) HasKeyword(k Keyword) bool {
	return slices.Contains(c.Keywords, k)
}

// ManaValue is the total mana in the card's cost.
func (c *Card) ManaValue() int {
	return c.Cost.ManaValue()
}

// IsBasicLand reports whether the card is one of the basic lands.
func (c *Card) IsBasicLand() bool {
	_, ok := basicLandColors[c.Name]
	return ok && c.IsLand()
}

// ManaColor is the color the land taps for. Basic lands are known by name.
func (c *Card) ManaColor() mana.Color {
	if color, ok := basicLandColors[c.Name]; ok {
		return color
	}
	return c.Produces
}

// TypeLine renders the type tags, e.g. "Artifact Creature". A Caser holds
// state, so each call gets its own.
func (c *Card) TypeLine() string {
	return cases.Title(language.English).String(strings.Join(c.TypeNames(), " "))
}

// TypeNames returns the type tags as plain strings.
func (c *Card) TypeNames() []string {
	names := make([]string, len(c.Types))
	for i, t := range c.Types {
		names[i] = string(t)
	}
	return names
}

// BasePower returns printed power, zero for non-creatures.
func (c *Card) BasePower() int {
	if c.Power == nil {
		return 0
	}
	return *c.Power
}

// BaseToughness returns printed toughness, zero for non-creatures.
func (c *Card) BaseToughness() int {
	if c.Toughness == nil {
		return 0
	}
	return *c.Toughness
}

// TriggersOn returns the card's triggered abilities for an event.
func (c *Card) TriggersOn(event TriggerEvent) []TriggeredAbility {
	var out []TriggeredAbility
	for _, ta := range c.Triggers {
		if ta.Event == event {
			out = append(out, ta)
		}
	}
	return out
}

func (c *Card) String() string {
	if c.Power != nil && c.Toughness != nil {
		return fmt.Sprintf("%s %s (%s) %d/%d", c.Name, c.Cost, c.TypeLine(), *c.Power, *c.Toughness)
	}
	return fmt.Sprintf("%s %s (%s)", c.Name, c.Cost, c.TypeLine())
}

// Stat returns a pointer to v for building card tables.
func Stat(v int) *int {
	return &v
}
