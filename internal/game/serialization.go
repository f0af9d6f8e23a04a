package game

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
)

// Digest returns a SHA-256 checksum of the game state. Besides the snapshot
// it covers state players cannot see: library order, the priority pass run,
// buffered and pending triggers and the blocker order. Two engines in the
// same state produce the same digest; any mutation changes it.
func (e *Engine) Digest() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	var buf bytes.Buffer
	buf.WriteString(e.snapshot().canonical())
	e.writeHidden(&buf)
	sum := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:])
}

func (e *Engine) writeHidden(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "PRIORITY:%v|%s|%d\n",
		e.stack.PriorityOrder(),
		e.stack.Holder(),
		e.stack.ConsecutivePasses(),
	)
	for _, p := range e.players {
		fmt.Fprintf(buf, "LIBRARY:%s|%v\n", p.ID, p.Library().IDs())
	}
	for i, qt := range e.triggers.Queued() {
		fmt.Fprintf(buf, "TRIGGER:%d|%s|%s|%s|%t|%s|%v\n",
			i,
			qt.ID,
			qt.ControllerID,
			qt.SourceID,
			qt.IsActivePlayer,
			qt.Ability.Describe(),
			qt.Targets,
		)
	}
	fmt.Fprintf(buf, "PENDING:%d|BLOCKORDER:%v\n", e.triggers.Pending(), e.blockOrder)
}

// Digest hashes the canonical rendering of the view. It only sees what the
// view shows; Engine.Digest also covers hidden state.
func (v View) Digest() string {
	sum := sha256.Sum256([]byte(v.canonical()))
	return hex.EncodeToString(sum[:])
}

// canonical renders the view independently of map iteration order.
func (v View) canonical() string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "GAME:%s|%t|%d|%s|%s|%s|%s|%t|%s|%d\n",
		v.GameID,
		v.Started,
		v.Turn,
		v.Phase,
		v.Step,
		v.ActivePlayerID,
		v.PriorityPlayerID,
		v.GameOver,
		v.WinnerID,
		v.SpellsCastThisTurn,
	)

	for _, p := range v.Players {
		fmt.Fprintf(&buf, "PLAYER:%s|%s|%d|%d|%d|%d|%d|%d|%s|%d|%t|%t|%s\n",
			p.ID,
			p.Name,
			p.Life,
			p.LibraryCount,
			p.HandCount,
			p.GraveyardCount,
			p.ExileCount,
			p.CommandCount,
			p.CommanderID,
			p.CommandTax,
			p.LandPlayed,
			p.Eliminated,
			p.LossReason,
		)
		fmt.Fprintf(&buf, "MANA:%s|%+v|%+v\n", p.ID, p.AvailableMana, p.FloatingMana)

		owners := make([]string, 0, len(p.CommanderDamage))
		for owner := range p.CommanderDamage {
			owners = append(owners, owner)
		}
		sort.Strings(owners)
		for _, owner := range owners {
			fmt.Fprintf(&buf, "CMDDMG:%s|%s|%d\n", p.ID, owner, p.CommanderDamage[owner])
		}

		writeCards(&buf, "HAND", p.ID, p.Hand)
		writeCards(&buf, "BATTLEFIELD", p.ID, p.Battlefield)
		writeCards(&buf, "GRAVEYARD", p.ID, p.Graveyard)
	}

	for i, item := range v.Stack {
		fmt.Fprintf(&buf, "STACK:%d|%s|%s|%s|%s|%s|%v\n",
			i,
			item.ID,
			item.Kind,
			item.Controller,
			item.SourceID,
			item.Name,
			item.Targets,
		)
	}
	return buf.String()
}

// writeCards keeps zone order: hand and library order are game state.
func writeCards(buf *bytes.Buffer, zone, playerID string, views []CardView) {
	for _, c := range views {
		fmt.Fprintf(buf, "%s:%s|%s|%s|%d/%d|%t|%t|%s|%t|%s|%d|%t|%v\n",
			zone,
			playerID,
			c.ID,
			c.Name,
			c.Power,
			c.Toughness,
			c.Tapped,
			c.Attacking,
			c.Defender,
			c.Blocking,
			c.BlockingTarget,
			c.Damage,
			c.SummoningSick,
			c.Counters,
		)
	}
}
