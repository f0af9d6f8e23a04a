package game

import (
	"github.com/magefree/commander-engine-go/internal/game/cards"
	"github.com/magefree/commander-engine-go/internal/game/counters"
	"github.com/magefree/commander-engine-go/internal/game/mana"
	"github.com/magefree/commander-engine-go/internal/game/watchers"
)

// View is a read-only snapshot of the game.
type View struct {
	GameID           string
	Started          bool
	Turn             int
	Phase            string
	Step             string
	ActivePlayerID   string
	PriorityPlayerID string
	Players          []PlayerView
	Stack            []StackItemView
	GameOver         bool
	WinnerID         string
	// SpellsCastThisTurn counts spells cast by any player this turn.
	SpellsCastThisTurn int
}

// PlayerView summarizes one player.
type PlayerView struct {
	ID              string
	Name            string
	Life            int
	LibraryCount    int
	HandCount       int
	GraveyardCount  int
	ExileCount      int
	CommandCount    int
	Hand            []CardView
	Battlefield     []CardView
	Graveyard       []CardView
	AvailableMana   ManaView
	FloatingMana    ManaView
	CommanderID     string
	CommanderName   string
	CommandTax      int
	CommanderDamage map[string]int
	LandPlayed      bool
	Eliminated      bool
	LossReason      string
}

// ManaView is mana by color.
type ManaView struct {
	White     int
	Blue      int
	Black     int
	Red       int
	Green     int
	Colorless int
}

// Total returns the amount of mana across colors.
func (m ManaView) Total() int {
	return m.White + m.Blue + m.Black + m.Red + m.Green + m.Colorless
}

// CardView describes an instance.
type CardView struct {
	ID             string
	Name           string
	ManaCost       string
	TypeLine       string
	OracleText     string
	Power          int
	Toughness      int
	HasStats       bool
	ControllerID   string
	OwnerID        string
	Tapped         bool
	Attacking      bool
	Defender       string
	Blocking       bool
	BlockingTarget string
	Damage         int
	SummoningSick  bool
	Commander      bool
	Token          bool
	Counters       []counters.CounterView
}

// StackItemView describes a stack object, bottom first.
type StackItemView struct {
	ID         string
	Kind       string
	Controller string
	SourceID   string
	Name       string
	Effect     string
	Targets    []string
}

// Snapshot returns the current state.
func (e *Engine) Snapshot() View {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot()
}

func (e *Engine) snapshot() View {
	v := View{
		GameID:   e.id,
		Started:  e.started,
		GameOver: e.gameOver,
		WinnerID: e.winner,
	}
	if e.turn != nil {
		v.Turn = e.turn.TurnNumber()
		v.Phase = e.turn.CurrentPhase().String()
		v.Step = e.turn.CurrentStep().String()
		v.ActivePlayerID = e.turn.ActivePlayer()
		v.PriorityPlayerID = e.stack.Holder()
	}
	if w, ok := e.watchers.Get(watchers.SpellsCastKey).(*watchers.SpellsCastWatcher); ok {
		v.SpellsCastThisTurn = w.Total()
	}

	for _, p := range e.players {
		pv := PlayerView{
			ID:              p.ID,
			Name:            p.Name,
			Life:            p.Life,
			LibraryCount:    p.Library().Len(),
			HandCount:       p.Hand().Len(),
			GraveyardCount:  p.Graveyard().Len(),
			ExileCount:      p.Zone(cards.ZoneExile).Len(),
			CommandCount:    p.CommandZone().Len(),
			Hand:            e.cardViews(p.Hand()),
			Battlefield:     e.cardViews(p.Battlefield()),
			Graveyard:       e.cardViews(p.Graveyard()),
			AvailableMana:   manaView(e.availableMana(p)),
			FloatingMana:    manaView(p.ManaPool),
			CommanderID:     p.CommanderID,
			CommandTax:      p.CommandTax,
			CommanderDamage: make(map[string]int, len(p.CommanderDamage)),
			LandPlayed:      p.LandPlayed,
			Eliminated:      p.Eliminated,
			LossReason:      p.LossReason,
		}
		if inst, ok := e.instances[p.CommanderID]; ok {
			pv.CommanderName = inst.Card.Name
		}
		for k, dmg := range p.CommanderDamage {
			pv.CommanderDamage[k] = dmg
		}
		v.Players = append(v.Players, pv)
	}

	for _, obj := range e.stack.List() {
		v.Stack = append(v.Stack, StackItemView{
			ID:         obj.ID,
			Kind:       string(obj.Kind),
			Controller: obj.Controller,
			SourceID:   obj.SourceID,
			Name:       obj.Name,
			Effect:     obj.Effect,
			Targets:    append([]string(nil), obj.Targets...),
		})
	}
	return v
}

func (e *Engine) cardViews(list *ZoneList) []CardView {
	insts := e.instancesIn(list)
	views := make([]CardView, 0, len(insts))
	for _, inst := range insts {
		views = append(views, e.cardView(inst))
	}
	return views
}

func (e *Engine) cardView(inst *cards.Instance) CardView {
	owner := e.playerIndex[inst.OwnerID]
	return CardView{
		ID:             inst.ID,
		Name:           inst.Card.Name,
		ManaCost:       inst.Card.Cost.String(),
		TypeLine:       inst.Card.TypeLine(),
		OracleText:     inst.Card.OracleText,
		Power:          inst.Power(),
		Toughness:      inst.Toughness(),
		HasStats:       inst.Card.Power != nil && inst.Card.Toughness != nil,
		ControllerID:   inst.ControllerID,
		OwnerID:        inst.OwnerID,
		Tapped:         inst.Tapped,
		Attacking:      inst.Attacking,
		Defender:       inst.Defender,
		Blocking:       inst.Blocking,
		BlockingTarget: inst.BlockingTarget,
		Damage:         inst.Damage,
		SummoningSick:  inst.SummoningSick,
		Commander:      owner != nil && owner.CommanderID == inst.ID,
		Token:          inst.Card.Token,
		Counters:       inst.Counters.ToView(),
	}
}

func manaView(pool *mana.Pool) ManaView {
	counts := pool.Counts()
	return ManaView{
		White:     counts[mana.White],
		Blue:      counts[mana.Blue],
		Black:     counts[mana.Black],
		Red:       counts[mana.Red],
		Green:     counts[mana.Green],
		Colorless: counts[mana.Colorless],
	}
}
