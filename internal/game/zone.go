package game

import (
	"math/rand/v2"
	"slices"
)

// ZoneList is an ordered list of instance ids. For a library index 0 is the
// top card.
type ZoneList struct {
	ids []string
}

// NewZoneList creates a zone list holding ids in order.
func NewZoneList(ids ...string) *ZoneList {
	return &ZoneList{ids: slices.Clone(ids)}
}

// Len returns the number of instances in the zone.
func (z *ZoneList) Len() int {
	return len(z.ids)
}

// IDs returns a copy of the ids in order.
func (z *ZoneList) IDs() []string {
	return slices.Clone(z.ids)
}

// Contains reports whether id is in the zone.
func (z *ZoneList) Contains(id string) bool {
	return slices.Contains(z.ids, id)
}

// Add appends id at the end (the bottom of a library).
func (z *ZoneList) Add(id string) {
	z.ids = append(z.ids, id)
}

// Remove deletes id and reports whether it was present.
func (z *ZoneList) Remove(id string) bool {
	idx := slices.Index(z.ids, id)
	if idx < 0 {
		return false
	}
	z.ids = slices.Delete(z.ids, idx, idx+1)
	return true
}

// Top returns the first id without removing it.
func (z *ZoneList) Top() (string, bool) {
	if len(z.ids) == 0 {
		return "", false
	}
	return z.ids[0], true
}

// Last returns the final id without removing it.
func (z *ZoneList) Last() (string, bool) {
	if len(z.ids) == 0 {
		return "", false
	}
	return z.ids[len(z.ids)-1], true
}

// Shuffle randomizes the order with rng.
func (z *ZoneList) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(z.ids), func(i, j int) {
		z.ids[i], z.ids[j] = z.ids[j], z.ids[i]
	})
}
