package intrusion

import (
	"math"

	"github.com/chrissnell/saltwedge/pkg/profile"
)

// Condition identifies one side of a comparison
type Condition int

const (
	WithPumping    Condition = 1
	WithoutPumping Condition = 2
)

func (c Condition) String() string {
	switch c {
	case WithPumping:
		return "condition 1 (with pumping)"
	case WithoutPumping:
		return "condition 2 (without pumping)"
	}
	return "unknown condition"
}

// Direction describes how pumping moves a metric
type Direction string

const (
	Increases Direction = "increases with pumping"
	Decreases Direction = "decreases with pumping"
	Unchanged Direction = "unchanged with pumping"
)

// Delta compares one metric between the two conditions
type Delta struct {
	WithPumping    float64   `json:"with_pumping"`
	WithoutPumping float64   `json:"without_pumping"`
	Difference     float64   `json:"difference"` // with pumping minus without
	Magnitude      float64   `json:"magnitude"`
	Direction      Direction `json:"direction"`
}

func newDelta(withPumping, withoutPumping float64) Delta {
	d := Delta{
		WithPumping:    withPumping,
		WithoutPumping: withoutPumping,
		Difference:     withPumping - withoutPumping,
	}
	d.Magnitude = math.Abs(d.Difference)

	switch {
	case d.Difference > 0:
		d.Direction = Increases
	case d.Difference < 0:
		d.Direction = Decreases
	default:
		d.Direction = Unchanged
	}
	return d
}

// Comparison pairs the results of both conditions. It is only produced when both
// analyses succeed.
type Comparison struct {
	Parameters     Parameters `json:"parameters"`
	WithPumping    *Result    `json:"with_pumping"`
	WithoutPumping *Result    `json:"without_pumping"`

	// Intrusion is measured in percentage points
	Intrusion           Delta `json:"intrusion"`
	FreshwaterVolume    Delta `json:"freshwater_volume"`
	WellToWedgeDistance Delta `json:"well_to_wedge_distance"`
}

// CompareConditions analyzes the pumping and non-pumping profiles with the same
// parameters. Any failure in either condition aborts the comparison with a
// *ConditionError naming the condition.
func CompareConditions(withPumping, withoutPumping *profile.Profile, params Parameters) (*Comparison, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	r1, err := Analyze(withPumping, params)
	if err != nil {
		return nil, &ConditionError{Condition: WithPumping, Err: err}
	}

	r2, err := Analyze(withoutPumping, params)
	if err != nil {
		return nil, &ConditionError{Condition: WithoutPumping, Err: err}
	}

	return &Comparison{
		Parameters:          params,
		WithPumping:         r1,
		WithoutPumping:      r2,
		Intrusion:           newDelta(r1.IntrusionPercent, r2.IntrusionPercent),
		FreshwaterVolume:    newDelta(r1.FreshwaterVolume, r2.FreshwaterVolume),
		WellToWedgeDistance: newDelta(r1.WellToWedgeDistanceCM, r2.WellToWedgeDistanceCM),
	}, nil
}

// Result returns the result for condition c
func (c *Comparison) Result(cond Condition) *Result {
	if cond == WithoutPumping {
		return c.WithoutPumping
	}
	return c.WithPumping
}
