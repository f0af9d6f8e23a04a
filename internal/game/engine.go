// Package game is the rules engine: it owns every player, zone and stack
// object of one game and is the only code allowed to change them.
package game

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/magefree/commander-engine-go/internal/config"
	"github.com/magefree/commander-engine-go/internal/game/cards"
	"github.com/magefree/commander-engine-go/internal/game/mana"
	"github.com/magefree/commander-engine-go/internal/game/rules"
	"github.com/magefree/commander-engine-go/internal/game/targeting"
	"github.com/magefree/commander-engine-go/internal/game/watchers"
)

// maxSettleRounds bounds the SBA / trigger loop run after every mutation.
const maxSettleRounds = 32

// Option configures an Engine.
type Option func(*Engine)

// WithObserver attaches an observer.
func WithObserver(obs Observer) Option {
	return func(e *Engine) {
		if obs != nil {
			e.observer = obs
		}
	}
}

// WithSeed makes shuffles reproducible.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

// WithGameID overrides the generated game id.
func WithGameID(id string) Option {
	return func(e *Engine) {
		if id != "" {
			e.id = id
		}
	}
}

// Engine runs one game.
type Engine struct {
	mu       sync.Mutex
	id       string
	rules    config.Rules
	logger   *zap.Logger
	observer Observer
	seed     int64
	rng      *rand.Rand

	players     []*Player
	playerIndex map[string]*Player
	instances   map[string]*cards.Instance
	stackZone   *ZoneList

	turn       *rules.TurnManager
	stack      *rules.StackManager
	triggers   *rules.TriggerQueue
	resolution *rules.ResolutionContext
	bus        *rules.EventBus
	watchers   *rules.WatcherRegistry
	validator  *targeting.Validator

	// blockOrder records blockers in declaration order for damage assignment.
	blockOrder []string

	started  bool
	gameOver bool
	winner   string
}

// NewEngine creates an engine for one game. Players are added with AddPlayer
// before StartGame.
func NewEngine(cfg config.Rules, logger *zap.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		id:          ulid.Make().String(),
		rules:       cfg,
		observer:    NopObserver{},
		seed:        time.Now().UnixNano(),
		playerIndex: make(map[string]*Player),
		instances:   make(map[string]*cards.Instance),
		stackZone:   NewZoneList(),
		stack:       rules.NewStackManager(),
		triggers:    rules.NewTriggerQueue(),
		resolution:  rules.NewResolutionContext(),
		bus:         rules.NewEventBus(),
		watchers:    rules.NewWatcherRegistry(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = logger.With(zap.String("game_id", e.id))
	e.rng = rand.New(rand.NewPCG(uint64(e.seed), uint64(e.seed)^0x9e3779b97f4a7c15))
	e.validator = targeting.NewValidator(engineTargets{e})

	for _, w := range watchers.Standard() {
		e.watchers.Add(w)
	}
	e.watchers.Attach(e.bus)
	e.bus.Subscribe(e.detectTriggers)
	return e
}

// ID returns the game id.
func (e *Engine) ID() string {
	return e.id
}

// AddPlayer seats a player. Seating order is turn order.
func (e *Engine) AddPlayer(setup PlayerSetup) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := strings.TrimSpace(setup.ID)
	if id == "" {
		return fmt.Errorf("player id is required")
	}
	if e.started {
		return fmt.Errorf("cannot add player %s: game already started", id)
	}
	if _, exists := e.playerIndex[id]; exists {
		return fmt.Errorf("player %s already seated", id)
	}
	name := setup.Name
	if name == "" {
		name = id
	}

	p := newPlayer(id, name, e.rules.StartingLife)
	for _, card := range setup.Deck {
		if card == nil {
			continue
		}
		inst := cards.NewInstance(card, id)
		inst.Zone = cards.ZoneLibrary
		e.instances[inst.ID] = inst
		p.Library().Add(inst.ID)
	}
	if setup.Commander != nil {
		inst := cards.NewInstance(setup.Commander, id)
		inst.Zone = cards.ZoneCommand
		e.instances[inst.ID] = inst
		p.CommandZone().Add(inst.ID)
		p.CommanderID = inst.ID
	}

	e.players = append(e.players, p)
	e.playerIndex[id] = p
	e.logger.Debug("player seated",
		zap.String("player_id", id),
		zap.Int("deck_size", p.Library().Len()),
		zap.Bool("has_commander", p.CommanderID != ""),
	)
	return nil
}

// StartGame shuffles libraries, deals opening hands and begins the first
// player's untap step.
func (e *Engine) StartGame() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.started {
		return fmt.Errorf("game %s already started", e.id)
	}
	if len(e.players) < 2 {
		return fmt.Errorf("game %s needs at least 2 players, has %d", e.id, len(e.players))
	}
	e.started = true

	for _, p := range e.players {
		p.Library().Shuffle(e.rng)
	}
	for _, p := range e.players {
		e.draw(p, e.rules.OpeningHandSize)
	}

	first := e.players[0].ID
	e.turn = rules.NewTurnManager(first)
	e.logger.Info("game started",
		zap.Int("players", len(e.players)),
		zap.String("first_player", first),
		zap.Int64("seed", e.seed),
	)
	e.beginTurn()
	return nil
}

func (e *Engine) player(id string) (*Player, error) {
	p, ok := e.playerIndex[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlayer, id)
	}
	return p, nil
}

func (e *Engine) activePlayer() *Player {
	if e.turn == nil {
		return nil
	}
	return e.playerIndex[e.turn.ActivePlayer()]
}

func (e *Engine) alivePlayers() []*Player {
	alive := make([]*Player, 0, len(e.players))
	for _, p := range e.players {
		if !p.Eliminated {
			alive = append(alive, p)
		}
	}
	return alive
}

func (e *Engine) aliveIDs() []string {
	alive := e.alivePlayers()
	ids := make([]string, len(alive))
	for i, p := range alive {
		ids[i] = p.ID
	}
	return ids
}

// nextAlive returns the first non-eliminated player after id in seat order.
func (e *Engine) nextAlive(id string) string {
	start := 0
	for i, p := range e.players {
		if p.ID == id {
			start = i
			break
		}
	}
	for offset := 1; offset <= len(e.players); offset++ {
		p := e.players[(start+offset)%len(e.players)]
		if !p.Eliminated {
			return p.ID
		}
	}
	return ""
}

// opponentsOf lists alive opponents in turn order starting after id.
func (e *Engine) opponentsOf(id string) []*Player {
	var out []*Player
	start := 0
	for i, p := range e.players {
		if p.ID == id {
			start = i
			break
		}
	}
	for offset := 1; offset < len(e.players); offset++ {
		p := e.players[(start+offset)%len(e.players)]
		if !p.Eliminated && p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

func (e *Engine) instancesIn(list *ZoneList) []*cards.Instance {
	ids := list.IDs()
	out := make([]*cards.Instance, 0, len(ids))
	for _, id := range ids {
		if inst, ok := e.instances[id]; ok {
			out = append(out, inst)
		}
	}
	return out
}

// battlefield returns every permanent in seat order.
func (e *Engine) battlefield() []*cards.Instance {
	var out []*cards.Instance
	for _, p := range e.players {
		out = append(out, e.instancesIn(p.Battlefield())...)
	}
	return out
}

func (e *Engine) zoneList(inst *cards.Instance, zone cards.Zone) (*ZoneList, error) {
	if zone == cards.ZoneStack {
		return e.stackZone, nil
	}
	owner, ok := e.playerIndex[inst.OwnerID]
	if !ok {
		return nil, fmt.Errorf("%w: instance %s has unknown owner %s", ErrInternal, inst.ID, inst.OwnerID)
	}
	list := owner.Zone(zone)
	if list == nil {
		return nil, fmt.Errorf("%w: no %s zone for %s", ErrInternal, zone, owner.ID)
	}
	return list, nil
}

// moveInstance is the only zone transfer: remove from the current list,
// insert into the destination, reset per-object state.
func (e *Engine) moveInstance(inst *cards.Instance, to cards.Zone) error {
	from := inst.Zone
	src, err := e.zoneList(inst, from)
	if err != nil {
		return err
	}
	dst, err := e.zoneList(inst, to)
	if err != nil {
		return err
	}
	if !src.Remove(inst.ID) {
		return fmt.Errorf("%w: %s (%s) missing from %s", ErrInternal, inst.Card.Name, inst.ID, from)
	}
	dst.Add(inst.ID)
	inst.ResetForZoneChange()
	inst.Zone = to

	evt := rules.NewEvent(rules.EventZoneChange, inst.ID, inst.ID, inst.ControllerID)
	evt.Data = to.String()
	evt.Metadata["from"] = from.String()
	e.emit(evt)
	return nil
}

// createToken puts a new token instance onto the controller's battlefield.
func (e *Engine) createToken(card *cards.Card, controllerID string) (*cards.Instance, error) {
	p, err := e.player(controllerID)
	if err != nil {
		return nil, err
	}
	inst := cards.NewInstance(card, controllerID)
	inst.Zone = cards.ZoneBattlefield
	e.instances[inst.ID] = inst
	p.Battlefield().Add(inst.ID)

	evt := rules.NewEvent(rules.EventZoneChange, inst.ID, inst.ID, controllerID)
	evt.Data = cards.ZoneBattlefield.String()
	evt.Flag = true
	e.emit(evt)
	return inst, nil
}

// destroyToken removes a token from the game entirely.
func (e *Engine) destroyToken(inst *cards.Instance) error {
	list, err := e.zoneList(inst, inst.Zone)
	if err != nil {
		return err
	}
	if !list.Remove(inst.ID) {
		return fmt.Errorf("%w: token %s missing from %s", ErrInternal, inst.ID, inst.Zone)
	}
	delete(e.instances, inst.ID)
	return nil
}

// draw moves up to n cards from the top of the library to hand. Drawing
// from an empty library flags the player instead of failing.
func (e *Engine) draw(p *Player, n int) {
	for i := 0; i < n; i++ {
		id, ok := p.Library().Top()
		if !ok {
			p.DrewFromEmpty = true
			e.logger.Info("draw from empty library", zap.String("player_id", p.ID))
			return
		}
		inst := e.instances[id]
		if err := e.moveInstance(inst, cards.ZoneHand); err != nil {
			e.logger.Error("draw failed", zap.String("player_id", p.ID), zap.Error(err))
			return
		}
		e.emit(rules.NewEvent(rules.EventDrewCard, inst.ID, "", p.ID))
		e.observer.CardDrawn(p.ID, inst.Card.Name)
	}
}

// untappedSources lists the player's untapped lands in battlefield order.
func (e *Engine) untappedSources(p *Player) []mana.Source {
	var sources []mana.Source
	for _, inst := range e.instancesIn(p.Battlefield()) {
		if inst.IsLand() && !inst.Tapped {
			sources = append(sources, mana.Source{ID: inst.ID, Produces: inst.Card.ManaColor()})
		}
	}
	return sources
}

// availableMana is the floating pool plus every untapped land.
func (e *Engine) availableMana(p *Player) *mana.Pool {
	return mana.Available(p.ManaPool, e.untappedSources(p))
}

func (e *Engine) setLife(p *Player, life int) {
	old := p.Life
	if old == life {
		return
	}
	p.Life = life
	e.observer.LifeChanged(p.ID, old, life)
}

func (e *Engine) emit(evt rules.Event) {
	e.bus.Publish(evt)
}

// resetPriority hands priority to the active player with a fresh pass run
// over every player still in the game.
func (e *Engine) resetPriority() {
	active := e.turn.ActivePlayer()
	if err := e.stack.SetPriorityOrder(e.aliveIDs(), active); err != nil {
		e.logger.Error("failed to set priority order", zap.String("active", active), zap.Error(err))
	}
}

// settle runs after every mutation: state-based actions, the win check and
// the trigger flush, repeated until nothing changes.
func (e *Engine) settle() {
	for round := 0; round < maxSettleRounds; round++ {
		e.checkStateBasedActions()
		e.checkWinConditions()
		if e.gameOver {
			return
		}
		if e.triggers.Len() == 0 {
			break
		}
		e.flushTriggers()
	}
	if active := e.activePlayer(); active != nil && active.Eliminated {
		e.endTurnForEliminated(active)
	}
}

// endTurnForEliminated moves play to the next alive player's untap step.
func (e *Engine) endTurnForEliminated(active *Player) {
	next := e.nextAlive(active.ID)
	if next == "" {
		return
	}
	e.logger.Info("active player eliminated, ending turn",
		zap.String("player_id", active.ID),
		zap.String("next_player", next),
	)
	e.clearCombat()
	e.turn.EndTurn(next)
	e.beginTurn()
}
