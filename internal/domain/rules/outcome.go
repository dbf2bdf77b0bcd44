package rules

import (
	"fmt"

	"github.com/KirkDiggler/rpg-rules-engine/internal/dice"
)

// Result is the discriminant of an Outcome
type Result string

const (
	ResultSuccess      Result = "success"
	ResultFailure      Result = "failure"
	ResultHit          Result = "hit"
	ResultMiss         Result = "miss"
	ResultCriticalHit  Result = "critical_hit"
	ResultCriticalFail Result = "critical_fail"
)

// DeltaKind names what a Delta changes
type DeltaKind string

const (
	DeltaHP              DeltaKind = "hp"
	DeltaTempHP          DeltaKind = "temp_hp"
	DeltaApplyCondition  DeltaKind = "apply_condition"
	DeltaRemoveCondition DeltaKind = "remove_condition"
	DeltaFlee            DeltaKind = "flee"
)

// Attachment is a condition carried by an outcome until it is applied
type Attachment interface {
	ConditionName() string
}

// Delta is one state change an Outcome asks the caller to apply
type Delta struct {
	Target    string     `json:"target"`
	Kind      DeltaKind  `json:"kind"`
	Amount    int        `json:"amount,omitempty"`
	Condition string     `json:"condition,omitempty"`
	Attach    Attachment `json:"-"`
}

// DamageRoll records the dice and modifiers behind a damage total
type DamageRoll struct {
	Rolls      []*dice.RollResult `json:"rolls"`
	Modifiers  Breakdown          `json:"modifiers"`
	Multiplier int                `json:"multiplier"`
	Total      int                `json:"total"`
	// Minimum is set when the total was raised to 1
	Minimum bool `json:"minimum,omitempty"`
}

// Opposition is the defending half of an opposed check
type Opposition struct {
	DefenderID string           `json:"defender_id"`
	Roll       *dice.RollResult `json:"roll"`
	Modifiers  Breakdown        `json:"modifiers"`
	Total      int              `json:"total"`
	Tie        bool             `json:"tie"`
	TiePolicy  TiePolicy        `json:"tie_policy"`
}

// Outcome is the pure data result of a resolution. Applying it to a
// snapshot is a separate step.
type Outcome struct {
	Kind   CheckKind `json:"kind"`
	Result Result    `json:"result"`
	// Degree is floor(margin / 5); 0 for a bare success, -1 for a bare failure
	Degree int `json:"degree"`

	Actor   string `json:"actor,omitempty"`
	Subject string `json:"subject,omitempty"`

	Roll         *dice.RollResult `json:"roll,omitempty"`
	Confirmation *dice.RollResult `json:"confirmation,omitempty"`
	Threat       bool             `json:"threat,omitempty"`

	Modifiers Breakdown `json:"modifiers"`
	Defense   Breakdown `json:"defense"`
	Target    int       `json:"target"`
	Total     int       `json:"total"`
	Natural   int       `json:"natural,omitempty"`

	Damage  *DamageRoll `json:"damage,omitempty"`
	Opposed *Opposition `json:"opposed,omitempty"`
	Deltas  []Delta     `json:"deltas,omitempty"`
}

// Succeeded reports a success, hit or critical hit
func (o Outcome) Succeeded() bool {
	switch o.Result {
	case ResultSuccess, ResultHit, ResultCriticalHit:
		return true
	}
	return false
}

// WithDeltas returns a copy with extra deltas appended
func (o Outcome) WithDeltas(deltas ...Delta) Outcome {
	out := o
	out.Deltas = append(append([]Delta(nil), o.Deltas...), deltas...)
	return out
}

func (o Outcome) String() string {
	s := fmt.Sprintf("%s %s: %d vs %d", o.Kind, o.Result, o.Total, o.Target)
	if o.Damage != nil {
		s += fmt.Sprintf(", %d damage", o.Damage.Total)
	}
	return s
}

func degree(total, target int) int {
	return floorDiv(total-target, 5)
}
