package game

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/magefree/commander-engine-go/internal/game/cards"
	"github.com/magefree/commander-engine-go/internal/game/mana"
	"github.com/magefree/commander-engine-go/internal/game/rules"
	"github.com/magefree/commander-engine-go/internal/game/targeting"
)

// PlayLand moves a land from hand to the battlefield and uses the land drop.
func (e *Engine) PlayLand(playerID, cardID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.playLand(playerID, cardID)
}

func (e *Engine) playLand(playerID, cardID string) error {
	p, err := e.actingPlayer(playerID)
	if err != nil {
		return err
	}
	inst, ok := e.instances[cardID]
	if !ok || inst.OwnerID != p.ID || inst.Zone != cards.ZoneHand || !p.Hand().Contains(cardID) {
		return fmt.Errorf("%w: %s", ErrNotInHand, cardID)
	}
	if !inst.IsLand() {
		return fmt.Errorf("%w: %s", ErrNotALand, inst.Card.Name)
	}
	if p.LandPlayed {
		return ErrLandAlreadyPlayed
	}
	if err := e.requireSorceryTiming(p); err != nil {
		return err
	}

	if err := e.moveInstance(inst, cards.ZoneBattlefield); err != nil {
		return err
	}
	p.LandPlayed = true
	e.emit(rules.NewEvent(rules.EventLandPlayed, inst.ID, inst.ID, p.ID))
	e.logger.Debug("land played", zap.String("player_id", p.ID), zap.String("card", inst.Card.Name))
	e.settle()
	return nil
}

// CastSpell pays for a card in hand, or the player's commander in the
// command zone, and puts it on the stack.
func (e *Engine) CastSpell(playerID, cardID string, targets []string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.castSpell(playerID, cardID, targets)
}

func (e *Engine) castSpell(playerID, cardID string, targets []string) error {
	p, err := e.actingPlayer(playerID)
	if err != nil {
		return err
	}
	inst, err := e.castableInstance(p, cardID)
	if err != nil {
		return err
	}
	if err := e.checkCastTiming(p, inst.Card); err != nil {
		return err
	}
	if err := e.validateTargets(p.ID, spellRequirement(inst.Card), targets); err != nil {
		return err
	}

	cost := e.castCost(p, inst)
	plan, err := mana.PlanPayment(cost, p.ManaPool, e.untappedSources(p))
	if err != nil {
		return fmt.Errorf("cannot cast %s: %w", inst.Card.Name, err)
	}

	// Everything below is commit.
	if err := plan.Commit(p.ManaPool); err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	for _, id := range plan.Tap {
		e.instances[id].Tapped = true
		e.emit(rules.NewEvent(rules.EventTapped, id, inst.ID, p.ID))
	}
	fromCommand := inst.Zone == cards.ZoneCommand
	if err := e.moveInstance(inst, cards.ZoneStack); err != nil {
		return err
	}

	obj := rules.StackObject{
		ID:          uuid.NewString(),
		Kind:        rules.StackObjectSpell,
		Controller:  p.ID,
		SourceID:    inst.ID,
		Name:        inst.Card.Name,
		Effect:      describeSpell(inst.Card),
		Targets:     append([]string(nil), targets...),
		Counterable: true,
		Creature:    inst.IsCreature(),
	}
	e.stack.Push(obj)
	e.observer.StackPushed(obj)

	evt := rules.NewEvent(rules.EventSpellCast, obj.ID, inst.ID, p.ID)
	evt.Amount = cost.ManaValue()
	evt.Flag = fromCommand
	e.emit(evt)
	e.logger.Debug("spell cast",
		zap.String("player_id", p.ID),
		zap.String("card", inst.Card.Name),
		zap.String("cost", cost.String()),
		zap.Bool("from_command_zone", fromCommand),
		zap.Strings("targets", targets),
	)

	if err := e.stack.ResetPriorityAfterResolution(e.turn.ActivePlayer()); err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	e.settle()
	return nil
}

// actingPlayer checks the game is running and that playerID holds priority.
func (e *Engine) actingPlayer(playerID string) (*Player, error) {
	if err := e.checkRunning(); err != nil {
		return nil, err
	}
	p, err := e.player(playerID)
	if err != nil {
		return nil, err
	}
	if p.Eliminated {
		return nil, fmt.Errorf("%w: %s has left the game", ErrNotYourPriority, p.ID)
	}
	if holder := e.stack.Holder(); holder != p.ID {
		return nil, fmt.Errorf("%w: %s holds priority", ErrNotYourPriority, holder)
	}
	return p, nil
}

// castableInstance finds cardID in the player's hand or, for the player's
// commander, the command zone.
func (e *Engine) castableInstance(p *Player, cardID string) (*cards.Instance, error) {
	inst, ok := e.instances[cardID]
	if !ok || inst.OwnerID != p.ID {
		return nil, fmt.Errorf("%w: %s", ErrNotInHand, cardID)
	}
	switch {
	case inst.Zone == cards.ZoneHand && p.Hand().Contains(cardID):
	case inst.Zone == cards.ZoneCommand && cardID == p.CommanderID && p.CommandZone().Contains(cardID):
	default:
		return nil, fmt.Errorf("%w: %s is in %s", ErrNotInHand, inst.Card.Name, inst.Zone)
	}
	if inst.IsLand() {
		return nil, fmt.Errorf("%w: %s", ErrLandNotCastable, inst.Card.Name)
	}
	return inst, nil
}

// checkCastTiming allows instants and flash at any priority; everything
// else needs sorcery timing.
func (e *Engine) checkCastTiming(p *Player, card *cards.Card) error {
	if card.IsInstant() || card.HasKeyword(cards.KeywordFlash) {
		return nil
	}
	return e.requireSorceryTiming(p)
}

func (e *Engine) requireSorceryTiming(p *Player) error {
	if e.turn.ActivePlayer() != p.ID {
		return fmt.Errorf("%w: only the active player may do that", ErrWrongStep)
	}
	if !e.turn.IsMainPhase() {
		return fmt.Errorf("%w: %s/%s is not a main phase", ErrWrongStep, e.turn.CurrentPhase(), e.turn.CurrentStep())
	}
	if !e.stack.IsEmpty() {
		return fmt.Errorf("%w: stack is not empty", ErrWrongStep)
	}
	return nil
}

// castCost is the printed cost plus command tax for a commander cast from
// the command zone.
func (e *Engine) castCost(p *Player, inst *cards.Instance) mana.Cost {
	if inst.Zone == cards.ZoneCommand {
		return inst.Card.Cost.WithTax(p.CommandTax)
	}
	return inst.Card.Cost
}

func (e *Engine) validateTargets(controllerID string, req targeting.TargetRequirement, targets []string) error {
	if !req.Required() {
		if len(targets) > 0 {
			return fmt.Errorf("%w: spell takes no targets", ErrInvalidTarget)
		}
		return nil
	}
	return e.validator.ValidateSelection(&targeting.TargetSelection{
		ControllerID: controllerID,
		Targets:      targets,
		Requirement:  req,
	})
}

// spellRequirement is the requirement of the first targeted spell effect.
// Permanent spells never target.
func spellRequirement(card *cards.Card) targeting.TargetRequirement {
	if card.IsPermanent() {
		return targeting.TargetRequirement{}
	}
	for _, eff := range card.SpellEffects {
		if req := eff.Requirement(); req.Required() {
			return req
		}
	}
	return targeting.TargetRequirement{}
}

func describeSpell(card *cards.Card) string {
	if card.IsPermanent() {
		return "put " + card.Name + " onto the battlefield"
	}
	desc := ""
	for i, eff := range card.SpellEffects {
		if i > 0 {
			desc += ", then "
		}
		desc += eff.Describe()
	}
	return desc
}

// engineTargets exposes the engine to the target validator. It reads state
// without locking; callers already hold the engine lock.
type engineTargets struct {
	e *Engine
}

func (t engineTargets) TargetPlayer(id string) (targeting.PlayerInfo, bool) {
	p, ok := t.e.playerIndex[id]
	if !ok {
		return targeting.PlayerInfo{}, false
	}
	return targeting.PlayerInfo{ID: p.ID, Eliminated: p.Eliminated}, true
}

func (t engineTargets) TargetPermanent(id string) (targeting.PermanentInfo, bool) {
	inst, ok := t.e.instances[id]
	if !ok || inst.Zone != cards.ZoneBattlefield {
		return targeting.PermanentInfo{}, false
	}
	return targeting.PermanentInfo{
		ID:           inst.ID,
		Name:         inst.Card.Name,
		ControllerID: inst.ControllerID,
		Creature:     inst.IsCreature(),
	}, true
}

func (t engineTargets) TargetStackObject(id string) (targeting.StackInfo, bool) {
	obj, ok := t.e.stack.Find(id)
	if !ok {
		return targeting.StackInfo{}, false
	}
	return targeting.StackInfo{
		ID:          obj.ID,
		Name:        obj.Name,
		Spell:       obj.IsSpell(),
		Creature:    obj.Creature,
		Counterable: obj.Counterable,
	}, true
}
