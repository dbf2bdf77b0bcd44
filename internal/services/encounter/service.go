// Package encounter runs one combat per session and archives each combat
// once it resolves.
package encounter

//go:generate mockgen -destination=mock/mock_service.go -package=mockencounter -source=service.go

import (
	"context"
	"log"
	"sync"

	"github.com/KirkDiggler/rpg-rules-engine/internal/dice"
	"github.com/KirkDiggler/rpg-rules-engine/internal/domain/combat"
	"github.com/KirkDiggler/rpg-rules-engine/internal/domain/conditions"
	"github.com/KirkDiggler/rpg-rules-engine/internal/domain/events"
	"github.com/KirkDiggler/rpg-rules-engine/internal/domain/rules"
	rerrors "github.com/KirkDiggler/rpg-rules-engine/internal/errors"
	"github.com/KirkDiggler/rpg-rules-engine/internal/repositories/encounters"
	"github.com/KirkDiggler/rpg-rules-engine/internal/uuid"
)

// Service defines the encounter service interface
type Service interface {
	// Start begins a combat for a session
	Start(ctx context.Context, input *StartInput) (*StartOutput, error)

	// ResolveAction resolves the turn holder's action
	ResolveAction(ctx context.Context, input *ResolveActionInput) (*rules.Outcome, error)

	// AdvanceTurn passes the turn on
	AdvanceTurn(ctx context.Context, sessionID string) (*combat.TurnReport, error)

	// State returns the session's current combat, resolved or not
	State(ctx context.Context, sessionID string) (*combat.CombatState, error)

	// Abort ends the session's combat as fled or aborted
	Abort(ctx context.Context, sessionID string, reason combat.Reason) error

	// EffectsFor lists a combatant's active conditions
	EffectsFor(ctx context.Context, sessionID, combatantID string) ([]conditions.Condition, error)

	// Archived lists the session's resolved combats
	Archived(ctx context.Context, sessionID string) ([]*encounters.Record, error)
}

// StartInput contains data for starting a combat
type StartInput struct {
	SessionID string
	Roster    []*combat.Combatant
	// Policy overrides the service default
	Policy *combat.Policy
	// Seed makes this combat's dice reproducible
	Seed *int64
}

// StartOutput describes the started combat
type StartOutput struct {
	CombatID string
	State    combat.CombatState
}

// ResolveActionInput contains an action for a session's combat
type ResolveActionInput struct {
	SessionID string
	ActorID   string
	Request   combat.ActionRequest
}

type session struct {
	mu       sync.Mutex
	combat   *combat.Combat
	archived bool
}

type service struct {
	repository    encounters.Repository
	publisher     events.Publisher
	uuidGenerator uuid.Generator
	roller        dice.Roller
	policy        combat.Policy

	mu       sync.RWMutex
	sessions map[string]*session
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository    encounters.Repository
	Publisher     events.Publisher
	UUIDGenerator uuid.Generator
	// Roller is shared by combats started without a seed
	Roller dice.Roller
	Policy *combat.Policy
}

// NewService creates a new encounter service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("config is required")
	}
	if cfg.Repository == nil {
		panic("repository is required")
	}

	svc := &service{
		repository:    cfg.Repository,
		publisher:     cfg.Publisher,
		uuidGenerator: cfg.UUIDGenerator,
		roller:        cfg.Roller,
		policy:        combat.DefaultPolicy(),
		sessions:      make(map[string]*session),
	}
	if cfg.Policy != nil {
		svc.policy = *cfg.Policy
	}
	if svc.publisher == nil {
		svc.publisher = events.Nop()
	}
	if svc.uuidGenerator == nil {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}
	if svc.roller == nil {
		svc.roller = dice.NewRoller(dice.NewToolkitSource(nil))
	}

	return svc
}

// Start creates and starts a combat. A session holds one live combat at a time.
func (s *service) Start(ctx context.Context, input *StartInput) (*StartOutput, error) {
	if input == nil {
		return nil, rerrors.InvalidArgument("input cannot be nil")
	}
	if input.SessionID == "" {
		return nil, rerrors.NewValidationBuilder().RequiredField("session_id").Build()
	}

	policy := s.policy
	if input.Policy != nil {
		policy = *input.Policy
	}
	roller := s.roller
	if input.Seed != nil {
		roller = dice.NewSeededRoller(*input.Seed)
	}

	existing, _ := s.session(input.SessionID)
	if existing != nil {
		existing.mu.Lock()
		live, combatID := !resolved(existing.combat), existing.combat.ID()
		var err error
		if !live && !existing.archived {
			err = s.archive(ctx, input.SessionID, existing)
		}
		existing.mu.Unlock()
		if live {
			return nil, inProgress(input.SessionID, combatID)
		}
		if err != nil {
			return nil, err
		}
	}

	cmb, err := combat.New(&combat.Config{
		ID:        s.uuidGenerator.New(),
		Roller:    roller,
		Publisher: s.publisher,
		Policy:    &policy,
	})
	if err != nil {
		return nil, err
	}
	if err := cmb.Start(input.Roster); err != nil {
		return nil, rerrors.Wrapf(err, "failed to start combat for session %s", input.SessionID)
	}

	s.mu.Lock()
	if current, ok := s.sessions[input.SessionID]; ok && current != existing {
		s.mu.Unlock()
		return nil, inProgress(input.SessionID, "")
	}
	s.sessions[input.SessionID] = &session{combat: cmb}
	s.mu.Unlock()

	log.Printf("[ENCOUNTER] session %s started combat %s", input.SessionID, cmb.ID())

	return &StartOutput{CombatID: cmb.ID(), State: cmb.State()}, nil
}

// ResolveAction resolves an action and archives the combat if it ends
func (s *service) ResolveAction(ctx context.Context, input *ResolveActionInput) (*rules.Outcome, error) {
	if input == nil {
		return nil, rerrors.InvalidArgument("input cannot be nil")
	}

	var out *rules.Outcome
	err := s.withSession(ctx, input.SessionID, func(c *combat.Combat) error {
		var err error
		out, err = c.ResolveAction(input.ActorID, input.Request)
		return err
	})
	if err != nil && out == nil {
		return nil, err
	}
	return out, err
}

// AdvanceTurn moves the session's combat to the next turn
func (s *service) AdvanceTurn(ctx context.Context, sessionID string) (*combat.TurnReport, error) {
	var report *combat.TurnReport
	err := s.withSession(ctx, sessionID, func(c *combat.Combat) error {
		var err error
		report, err = c.AdvanceTurn()
		return err
	})
	if err != nil && report == nil {
		return nil, err
	}
	return report, err
}

// State returns a copy of the session's combat. A resolved combat stays
// visible until the next Start replaces it.
func (s *service) State(ctx context.Context, sessionID string) (*combat.CombatState, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	st := sess.combat.State()
	return &st, nil
}

// Abort ends the session's combat early and archives it
func (s *service) Abort(ctx context.Context, sessionID string, reason combat.Reason) error {
	if reason == combat.ReasonNone {
		reason = combat.ReasonAborted
	}
	return s.withSession(ctx, sessionID, func(c *combat.Combat) error {
		return c.End(reason)
	})
}

// EffectsFor lists the active conditions on a combatant
func (s *service) EffectsFor(ctx context.Context, sessionID, combatantID string) ([]conditions.Condition, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if _, ok := sess.combat.Combatant(combatantID); !ok {
		return nil, rerrors.NotFoundf("combatant %s not found in session %s", combatantID, sessionID)
	}
	return sess.combat.EffectsFor(combatantID), nil
}

// Archived lists the resolved combats of a session
func (s *service) Archived(ctx context.Context, sessionID string) ([]*encounters.Record, error) {
	if sessionID == "" {
		return nil, rerrors.NewValidationBuilder().RequiredField("session_id").Build()
	}
	return s.repository.ListBySession(ctx, sessionID)
}

func (s *service) session(sessionID string) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, rerrors.NotFoundf("no combat for session %s", sessionID)
	}
	return sess, nil
}

// withSession runs fn under the session lock. The first call that finds
// the combat resolved archives it; the session keeps the resolved combat so
// later calls fail with combat_resolved. A failed archive is retried on the
// next call and reported when fn itself succeeded.
func (s *service) withSession(ctx context.Context, sessionID string, fn func(*combat.Combat) error) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	err = fn(sess.combat)
	if resolved(sess.combat) && !sess.archived {
		if archiveErr := s.archive(ctx, sessionID, sess); archiveErr != nil && err == nil {
			err = archiveErr
		}
	}
	return err
}

func (s *service) archive(ctx context.Context, sessionID string, sess *session) error {
	record := encounters.NewRecord(sessionID, sess.combat.State())
	if err := s.repository.Save(ctx, record); err != nil {
		log.Printf("[ENCOUNTER] failed to archive combat %s: %v", record.ID, err)
		return rerrors.Wrapf(err, "failed to archive combat %s", record.ID)
	}

	sess.archived = true

	log.Printf("[ENCOUNTER] session %s archived combat %s: %s", sessionID, record.ID, record.Reason)
	return nil
}

func inProgress(sessionID, combatID string) error {
	err := rerrors.AlreadyExistsf("session %s already has a combat in progress", sessionID)
	if combatID != "" {
		err = err.WithMeta("combat_id", combatID)
	}
	return err
}

func resolved(c *combat.Combat) bool {
	state, _ := c.Status()
	return state == combat.StateResolved
}
