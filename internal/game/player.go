package game

import (
	"github.com/magefree/commander-engine-go/internal/game/cards"
	"github.com/magefree/commander-engine-go/internal/game/mana"
)

// PlayerSetup describes a seat before the game starts.
type PlayerSetup struct {
	ID        string
	Name      string
	Deck      []*cards.Card
	Commander *cards.Card
}

// Player is one seat at the table.
type Player struct {
	ID          string
	Name        string
	Life        int
	CommanderID string
	// CommanderDamage is combat damage taken, keyed by the commander's owner.
	CommanderDamage map[string]int
	ManaPool        *mana.Pool
	LandPlayed      bool
	Eliminated      bool
	DrewFromEmpty   bool
	CommandTax      int
	LossReason      string

	zones map[cards.Zone]*ZoneList
}

func newPlayer(id, name string, life int) *Player {
	p := &Player{
		ID:              id,
		Name:            name,
		Life:            life,
		CommanderDamage: make(map[string]int),
		ManaPool:        mana.NewPool(),
		zones:           make(map[cards.Zone]*ZoneList, len(cards.PlayerZones)),
	}
	for _, z := range cards.PlayerZones {
		p.zones[z] = NewZoneList()
	}
	return p
}

// Zone returns the player's list for z. The stack is engine-wide and has
// no per-player list.
func (p *Player) Zone(z cards.Zone) *ZoneList {
	return p.zones[z]
}

// Library is shorthand for the player's library.
func (p *Player) Library() *ZoneList { return p.zones[cards.ZoneLibrary] }

// Hand is shorthand for the player's hand.
func (p *Player) Hand() *ZoneList { return p.zones[cards.ZoneHand] }

// Battlefield is shorthand for the player's battlefield.
func (p *Player) Battlefield() *ZoneList { return p.zones[cards.ZoneBattlefield] }

// Graveyard is shorthand for the player's graveyard.
func (p *Player) Graveyard() *ZoneList { return p.zones[cards.ZoneGraveyard] }

// CommandZone is shorthand for the player's command zone.
func (p *Player) CommandZone() *ZoneList { return p.zones[cards.ZoneCommand] }
