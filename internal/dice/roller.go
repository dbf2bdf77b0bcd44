package dice

//go:generate mockgen -destination=mock/mock_roller.go -package=mockdice -source=roller.go

// Roller parses and evaluates notation against a bound Source.
// Services depend on Roller so tests can swap in scripted dice.
type Roller interface {
	// Roll parses notation and evaluates it
	Roll(notation string) (*RollResult, error)

	// RollExpression evaluates an already parsed expression
	RollExpression(expr *Expression) (*RollResult, error)

	// RollD20 rolls 1d20+modifier with the given advantage mode
	RollD20(modifier int, mode Mode) (*RollResult, error)
}

type roller struct {
	source Source
}

// NewRoller binds a Roller to src
func NewRoller(src Source) Roller {
	if src == nil {
		src = NewRandomSource()
	}
	return &roller{source: src}
}

// NewRandomRoller creates a roller backed by a time seeded source
func NewRandomRoller() Roller {
	return NewRoller(NewRandomSource())
}

// NewSeededRoller creates a reproducible roller
func NewSeededRoller(seed int64) Roller {
	return NewRoller(NewSeededSource(seed))
}

func (r *roller) Roll(notation string) (*RollResult, error) {
	expr, err := Parse(notation)
	if err != nil {
		return nil, err
	}
	return Evaluate(expr, r.source)
}

func (r *roller) RollExpression(expr *Expression) (*RollResult, error) {
	return Evaluate(expr, r.source)
}

func (r *roller) RollD20(modifier int, mode Mode) (*RollResult, error) {
	return Evaluate(&Expression{Count: 1, Sides: 20, Modifier: modifier, Mode: mode}, r.source)
}
