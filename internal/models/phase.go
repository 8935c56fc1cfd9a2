package models

// CycleLength is the nominal cycle model. Day numbers wrap modulo this value
// regardless of the true interval between periods; personalizing it is an
// open product question, so it stays a constant.
const CycleLength = 28

const (
	PhaseMenstrual  = "Menstrual"
	PhaseFollicular = "Follicular"
	PhaseOvulation  = "Ovulation"
	PhaseLuteal     = "Luteal"
)

// Phase is a named sub-range of the 28-day cycle, inclusive on both ends.
type Phase struct {
	Name  string `json:"name"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Color string `json:"color"`
}

var phases = []Phase{
	{Name: PhaseMenstrual, Start: 1, End: 5, Color: "#c77e5d"},
	{Name: PhaseFollicular, Start: 6, End: 13, Color: "#4fc193"},
	{Name: PhaseOvulation, Start: 14, End: 16, Color: "#b4a5c4"},
	{Name: PhaseLuteal, Start: 17, End: 28, Color: "#e8a87c"},
}

// Phases returns the four fixed phases in cycle order.
func Phases() []Phase {
	out := make([]Phase, len(phases))
	copy(out, phases)
	return out
}
