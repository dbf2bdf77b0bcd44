package conditions

import (
	"testing"

	"github.com/stretchr/testify/suite"

	mockdice "github.com/KirkDiggler/rpg-rules-engine/internal/dice/mock"
	"github.com/KirkDiggler/rpg-rules-engine/internal/domain/events"
	"github.com/KirkDiggler/rpg-rules-engine/internal/domain/rules"
	rerrors "github.com/KirkDiggler/rpg-rules-engine/internal/errors"
	"github.com/KirkDiggler/rpg-rules-engine/internal/uuid"
)

type TrackerTestSuite struct {
	suite.Suite
	tracker  *Tracker
	recorder *events.Recorder
	dice     *mockdice.ManualSource
	catalog  *Catalog
}

func (s *TrackerTestSuite) SetupTest() {
	roller, src := mockdice.NewManualRoller()
	s.dice = src
	s.recorder = events.NewRecorder()
	s.catalog = DefaultCatalog()
	s.tracker = NewTracker(&TrackerConfig{
		Publisher:      s.recorder,
		Roller:         roller,
		IDGenerator:    uuid.NewSequentialGenerator("cond"),
		DeathThreshold: -10,
	})
}

func (s *TrackerTestSuite) tick(ref string, hp int) *TickReport {
	report, err := s.tracker.Tick(ref, rules.Snapshot{ID: ref, HP: hp})
	s.Require().NoError(err)
	return report
}

func (s *TrackerTestSuite) TestApply_AssignsIDAndPublishes() {
	res, err := s.tracker.Apply("orc", s.catalog.MustNew("shaken", Rounds(2)).WithSource("intimidate"))
	s.Require().NoError(err)

	s.Equal(ActionAdded, res.Action)
	s.Equal("cond-1", res.Condition.ID)
	s.True(s.tracker.Has("orc", "Shaken"))
	s.False(s.tracker.Has("goblin", "shaken"))

	evts := s.recorder.Events()
	s.Require().Len(evts, 1)
	s.Equal(events.ConditionApplied, evts[0].Type)
	s.Equal("orc", evts[0].TargetID)
	name, _ := evts[0].GetStringContext("condition")
	s.Equal("shaken", name)
	source, _ := evts[0].GetStringContext("source")
	s.Equal("intimidate", source)
}

func (s *TrackerTestSuite) TestApply_Replace() {
	_, err := s.tracker.Apply("orc", s.catalog.MustNew("shaken", Rounds(3)))
	s.Require().NoError(err)
	s.tick("orc", 10)
	left, _ := s.tracker.Remaining("orc", "shaken")
	s.Require().Equal(2, left)

	res, err := s.tracker.Apply("orc", s.catalog.MustNew("shaken", Rounds(3)))
	s.Require().NoError(err)
	s.Equal(ActionReplaced, res.Action)
	s.Require().NotNil(res.Replaced)
	s.Equal("cond-1", res.Replaced.ID)

	s.Len(s.tracker.EffectsFor("orc"), 1)
	left, ok := s.tracker.Remaining("orc", "shaken")
	s.True(ok)
	s.Equal(3, left, "replacing refreshes the duration from now")
}

func (s *TrackerTestSuite) TestApply_Stack() {
	for i := 0; i < 3; i++ {
		res, err := s.tracker.Apply("fighter", s.catalog.MustNew("energy_drained", nil))
		s.Require().NoError(err)
		if i == 0 {
			s.Equal(ActionAdded, res.Action)
		} else {
			s.Equal(ActionStacked, res.Action)
		}
	}

	s.Len(s.tracker.EffectsFor("fighter"), 3)
	r := rules.NewResolver(s.tracker)
	bd := r.Resolve(rules.Snapshot{ID: "fighter"}, rules.Context{Kind: rules.KindAttack})
	s.Equal(-3, bd.Total())
}

func (s *TrackerTestSuite) TestApply_IgnoreIfPresent() {
	_, err := s.tracker.Apply("cleric", s.catalog.MustNew("stable", nil))
	s.Require().NoError(err)

	res, err := s.tracker.Apply("cleric", s.catalog.MustNew("stable", nil))
	s.Require().NoError(err)
	s.Equal(ActionIgnored, res.Action)
	s.Equal("cond-1", res.Condition.ID)
	s.Len(s.tracker.EffectsFor("cleric"), 1)
	s.Equal(1, s.recorder.Count(events.ConditionApplied))
}

func (s *TrackerTestSuite) TestApply_FillsEffectFromCatalog() {
	res, err := s.tracker.Apply("wizard", Condition{Name: "Energy Drained"})
	s.Require().NoError(err)
	s.Equal(StackStack, res.Condition.Stacking)
	s.NotNil(res.Condition.Effect)

	res, err = s.tracker.Apply("wizard", Condition{Name: "hexed"})
	s.Require().NoError(err)
	s.IsType(&Penalty{}, res.Condition.Effect)
}

func (s *TrackerTestSuite) TestApply_Validation() {
	_, err := s.tracker.Apply("", Condition{Name: "shaken"})
	s.True(rerrors.IsValidation(err))

	_, err = s.tracker.Apply("orc", Condition{})
	s.True(rerrors.IsValidation(err))

	_, err = s.tracker.Apply("orc", Condition{Name: "shaken", Duration: Rounds(-1)})
	s.True(rerrors.IsValidation(err))

	_, err = s.tracker.Apply("orc", Condition{Name: "shaken", Stacking: "merge"})
	s.True(rerrors.IsValidation(err))
}

func (s *TrackerTestSuite) TestDuration_CountsFromApplication() {
	// three rounds pass before the condition lands
	for i := 0; i < 3; i++ {
		s.tick("orc", 10)
	}

	_, err := s.tracker.Apply("orc", s.catalog.MustNew("dazed", Rounds(2)))
	s.Require().NoError(err)

	report := s.tick("orc", 10)
	s.Empty(report.Expired)
	s.True(s.tracker.Has("orc", "dazed"))

	report = s.tick("orc", 10)
	s.Require().Len(report.Expired, 1)
	s.Equal("dazed", report.Expired[0].Name)
	s.False(s.tracker.Has("orc", "dazed"))
	s.Equal(1, s.recorder.Count(events.ConditionExpired))
	s.Equal(5, s.tracker.Ticks("orc"))
}

func (s *TrackerTestSuite) TestDuration_ZeroExpiresNextTick() {
	_, err := s.tracker.Apply("orc", s.catalog.MustNew("flat_footed", Rounds(0)))
	s.Require().NoError(err)

	report := s.tick("orc", 10)
	s.Len(report.Expired, 1)
}

func (s *TrackerTestSuite) TestDuration_PermanentNeverExpires() {
	_, err := s.tracker.Apply("orc", s.catalog.MustNew("blinded", nil))
	s.Require().NoError(err)

	for i := 0; i < 10; i++ {
		s.Empty(s.tick("orc", 10).Expired)
	}
	_, ok := s.tracker.Remaining("orc", "blinded")
	s.False(ok)
}

func (s *TrackerTestSuite) TestDying_Stabilizes() {
	_, err := s.tracker.Apply("fighter", s.catalog.MustNew("dying", nil))
	s.Require().NoError(err)
	s.dice.SetRolls([]int{15})

	report := s.tick("fighter", -3)

	s.True(report.Stabilized)
	s.Empty(report.Deltas)
	s.Require().Len(report.Outcomes, 1)
	s.Equal(rules.KindStabilize, report.Outcomes[0].Kind)
	s.Equal(12, report.Outcomes[0].Total)
	s.False(s.tracker.Has("fighter", "dying"))
	s.True(s.tracker.Has("fighter", "stable"))
	s.Equal(1, s.recorder.Count(events.Stabilized))
}

func (s *TrackerTestSuite) TestDying_FailureLosesHP() {
	_, err := s.tracker.Apply("fighter", s.catalog.MustNew("dying", nil))
	s.Require().NoError(err)
	s.dice.SetRolls([]int{5})

	report := s.tick("fighter", -3)

	s.False(report.Stabilized)
	s.False(report.Died)
	s.Require().Len(report.Deltas, 1)
	s.Equal(rules.Delta{Target: "fighter", Kind: rules.DeltaHP, Amount: -1}, report.Deltas[0])
	s.True(s.tracker.Has("fighter", "dying"))
}

func (s *TrackerTestSuite) TestDying_NaturalTwentyAlwaysStabilizes() {
	_, err := s.tracker.Apply("fighter", s.catalog.MustNew("dying", nil))
	s.Require().NoError(err)
	s.dice.SetRolls([]int{20})

	frail := rules.Snapshot{ID: "fighter", HP: -9, Abilities: map[rules.Ability]int{rules.Constitution: 6}}
	report, err := s.tracker.Tick("fighter", frail)
	s.Require().NoError(err)
	s.True(report.Stabilized)
	s.Equal(9, report.Outcomes[0].Total, "20 - 2 - 9 misses the DC but still stabilizes")
}

func (s *TrackerTestSuite) TestDying_Dies() {
	_, err := s.tracker.Apply("fighter", s.catalog.MustNew("dying", nil))
	s.Require().NoError(err)
	s.dice.SetRolls([]int{2})

	report := s.tick("fighter", -9)

	s.True(report.Died)
	s.False(s.tracker.Has("fighter", "dying"))
	s.True(s.tracker.Has("fighter", "dead"))
}

func (s *TrackerTestSuite) TestDying_NoCheckAtZeroOrAbove() {
	_, err := s.tracker.Apply("fighter", s.catalog.MustNew("dying", nil))
	s.Require().NoError(err)

	report := s.tick("fighter", 0)
	s.Empty(report.Outcomes)
	s.Equal(0, s.dice.Remaining())
}

func (s *TrackerTestSuite) TestRemoveAndClear() {
	_, _ = s.tracker.Apply("orc", s.catalog.MustNew("energy_drained", nil))
	_, _ = s.tracker.Apply("orc", s.catalog.MustNew("energy_drained", nil))
	res, _ := s.tracker.Apply("orc", s.catalog.MustNew("prone", nil))
	_, _ = s.tracker.Apply("orc", s.catalog.MustNew("fascinated", nil))

	s.Equal(1, s.tracker.BreakOnDamage("orc"))
	s.False(s.tracker.Has("orc", "fascinated"))

	s.Equal(2, s.tracker.Remove("orc", "Energy Drained"))
	s.Equal(0, s.tracker.Remove("orc", "energy_drained"))

	s.True(s.tracker.RemoveByID("orc", res.Condition.ID))
	s.Empty(s.tracker.EffectsFor("orc"))

	_, _ = s.tracker.Apply("orc", s.catalog.MustNew("blinded", nil))
	s.tick("orc", 10)
	s.Equal(1, s.tracker.Clear("orc"))
	s.Equal(0, s.tracker.Ticks("orc"))
	s.Equal(5, s.recorder.Count(events.ConditionRemoved))
}

func (s *TrackerTestSuite) TestEffectsForReturnsCopies() {
	_, err := s.tracker.Apply("orc", s.catalog.MustNew("shaken", Rounds(2)))
	s.Require().NoError(err)

	got := s.tracker.EffectsFor("orc")
	*got[0].Duration = 99

	left, _ := s.tracker.Remaining("orc", "shaken")
	s.Equal(2, left)
}

func (s *TrackerTestSuite) TestPureAcrossResolutions() {
	_, err := s.tracker.Apply("rogue", s.catalog.MustNew("fatigued", nil))
	s.Require().NoError(err)
	_, err = s.tracker.Apply("rogue", s.catalog.MustNew("shaken", nil))
	s.Require().NoError(err)

	r := rules.NewResolver(s.tracker)
	ctx := rules.Context{Kind: rules.KindAttack, Attack: rules.AttackMelee}
	first := r.Resolve(snap(), ctx)
	second := r.Resolve(snap(), ctx)
	s.Equal(first, second)
	s.Equal(-2, first.ByKind(rules.ModCondition)[0].Value)
}

func TestTrackerSuite(t *testing.T) {
	suite.Run(t, new(TrackerTestSuite))
}
