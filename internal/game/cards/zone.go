package cards

import "fmt"

// Zone identifies where an instance currently is.
type Zone int

const (
	ZoneLibrary Zone = iota
	ZoneHand
	ZoneBattlefield
	ZoneGraveyard
	ZoneExile
	ZoneCommand
	ZoneStack
)

// PlayerZones are the zones each player owns a list for.
var PlayerZones = []Zone{ZoneLibrary, ZoneHand, ZoneBattlefield, ZoneGraveyard, ZoneExile, ZoneCommand}

var zoneNames = map[Zone]string{
	ZoneLibrary:     "LIBRARY",
	ZoneHand:        "HAND",
	ZoneBattlefield: "BATTLEFIELD",
	ZoneGraveyard:   "GRAVEYARD",
	ZoneExile:       "EXILE",
	ZoneCommand:     "COMMAND",
	ZoneStack:       "STACK",
}

func (z Zone) String() string {
	if name, ok := zoneNames[z]; ok {
		return name
	}
	return fmt.Sprintf("ZONE_%d", int(z))
}
