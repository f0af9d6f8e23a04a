package catalog

import "github.com/magefree/commander-engine-go/internal/game/cards"

func land(name string) Record {
	return Record{Name: name, Types: []string{"land"}}
}

func creature(name, cost string, power, toughness int, text string) Record {
	return Record{
		Name:       name,
		ManaCost:   cost,
		Types:      []string{"creature"},
		Power:      cards.Stat(power),
		Toughness:  cards.Stat(toughness),
		OracleText: text,
	}
}

func legend(name, cost string, power, toughness int, text string) Record {
	rec := creature(name, cost, power, toughness, text)
	rec.Legendary = true
	return rec
}

func spell(name, cost, typ, text string) Record {
	return Record{Name: name, ManaCost: cost, Types: []string{typ}, OracleText: text}
}

// Builtin returns the card pool bundled with the engine, written in the
// subset of oracle text the parser reads. A fresh slice is returned on
// every call.
func Builtin() []Record {
	solemn := creature("Solemn Simulacrum", "{4}", 2, 2,
		"When Solemn Simulacrum enters the battlefield, search your library for a basic land card, put it onto the battlefield tapped, then shuffle.\n"+
			"When Solemn Simulacrum dies, draw a card.")
	solemn.Types = []string{"artifact", "creature"}
	ornithopter := creature("Ornithopter", "{0}", 0, 2, "Flying")
	ornithopter.Types = []string{"artifact", "creature"}

	return []Record{
		land("Plains"),
		land("Island"),
		land("Swamp"),
		land("Mountain"),
		land("Forest"),
		land("Wastes"),

		// White
		creature("Serra Angel", "{3}{W}{W}", 4, 4, "Flying, vigilance"),
		creature("Wall of Omens", "{1}{W}", 0, 4, "Defender\nWhen Wall of Omens enters the battlefield, draw a card."),
		creature("Savannah Lions", "{W}", 2, 1, ""),
		spell("Raise the Alarm", "{1}{W}", "instant", "Create two 1/1 white Soldier creature tokens."),
		spell("Angel's Mercy", "{2}{W}{W}", "instant", "You gain 7 life."),
		spell("Ajani's Presence", "{W}", "instant", "Target creature gets +1/+1 until end of turn."),

		// Blue
		creature("Mulldrifter", "{4}{U}", 2, 2, "Flying\nWhen Mulldrifter enters the battlefield, draw two cards."),
		creature("Wind Drake", "{2}{U}", 2, 2, "Flying"),
		spell("Counterspell", "{U}{U}", "instant", "Counter target spell."),
		spell("Cancel", "{1}{U}{U}", "instant", "Counter target spell."),
		spell("Negate", "{1}{U}", "instant", "Counter target noncreature spell."),
		spell("Divination", "{2}{U}", "sorcery", "Draw two cards."),
		spell("Opt", "{U}", "instant", "Draw a card."),

		// Black
		creature("Dusk Legion Zealot", "{1}{B}", 1, 1, "When Dusk Legion Zealot enters the battlefield, you draw a card and you lose 1 life."),
		creature("Vampire Nighthawk", "{1}{B}{B}", 2, 3, "Flying"),
		spell("Night's Whisper", "{1}{B}", "sorcery", "Draw two cards. You lose 2 life."),
		spell("Murder", "{1}{B}{B}", "instant", "Destroy target creature."),
		spell("Phyrexian Arena", "{1}{B}{B}", "enchantment", "At the beginning of your upkeep, you draw a card and you lose 1 life."),
		spell("Bitterblossom", "{1}{B}", "enchantment", "At the beginning of your upkeep, you lose 1 life and create a 1/1 black Faerie Rogue creature token."),

		// Red
		creature("Shivan Dragon", "{4}{R}{R}", 5, 5, "Flying"),
		creature("Hill Giant", "{3}{R}", 3, 3, ""),
		creature("Goblin Guide", "{R}", 2, 2, "Haste"),
		creature("Pitchburn Devils", "{4}{R}", 3, 3, "When Pitchburn Devils dies, it deals 3 damage to any target."),
		spell("Lightning Bolt", "{R}", "instant", "Lightning Bolt deals 3 damage to any target."),
		spell("Shock", "{R}", "instant", "Shock deals 2 damage to any target."),
		spell("Lava Spike", "{R}", "sorcery", "Lava Spike deals 3 damage to target player."),
		spell("Lava Axe", "{4}{R}", "sorcery", "Lava Axe deals 5 damage to target player."),

		// Green
		creature("Grizzly Bears", "{1}{G}", 2, 2, ""),
		creature("Craw Wurm", "{4}{G}{G}", 6, 4, ""),
		creature("Wall of Blossoms", "{1}{G}", 0, 4, "Defender\nWhen Wall of Blossoms enters the battlefield, draw a card."),
		creature("Elvish Visionary", "{1}{G}", 1, 1, "When Elvish Visionary enters the battlefield, draw a card."),
		creature("Wood Elves", "{2}{G}", 1, 1, "When Wood Elves enters the battlefield, search your library for a basic land card, put it onto the battlefield tapped, then shuffle."),
		creature("Llanowar Elves", "{G}", 1, 1, "{T}: Add {G}."),
		spell("Rampant Growth", "{1}{G}", "sorcery", "Search your library for a basic land card, put it onto the battlefield tapped, then shuffle."),
		spell("Giant Growth", "{G}", "instant", "Target creature gets +3/+3 until end of turn."),
		spell("Battlegrowth", "{G}", "instant", "Put a +1/+1 counter on target creature."),
		spell("Harmonize", "{2}{G}{G}", "sorcery", "Draw three cards."),

		// Colorless
		solemn,
		ornithopter,

		// Commanders
		legend("Isamaru, Hound of Konda", "{W}", 2, 2, ""),
		legend("Azami, Lady of Scrolls", "{2}{U}{U}{U}", 0, 2, "Tap an untapped Wizard you control: Draw a card."),
		legend("Yargle, Glutton of Urborg", "{4}{B}", 9, 3, ""),
		legend("Krenko, Mob Boss", "{2}{R}{R}", 3, 3, "{T}: Create X 1/1 red Goblin creature tokens, where X is the number of Goblins you control."),
		legend("Azusa, Lost but Seeking", "{2}{G}", 1, 2, "You may play two additional lands on each of your turns."),
		legend("Ruric Thar, the Unbowed", "{4}{R}{G}", 6, 6, "Vigilance\nRuric Thar attacks each combat if able."),
		legend("Tatyova, Benthic Druid", "{3}{G}{U}", 3, 3, "Whenever a land enters the battlefield under your control, you gain 1 life and draw a card."),
		legend("Dragonlord Dromoka", "{4}{G}{W}", 5, 7, "This spell can't be countered.\nFlying\nYour opponents can't cast spells during your turn."),
		legend("Kaalia of the Vast", "{1}{R}{W}{B}", 2, 2, "Flying"),
		legend("Zurgo Helmsmasher", "{2}{R}{W}{B}", 7, 2, "Haste"),
	}
}
