package models

const (
	FlowNone   = "none"
	FlowLight  = "light"
	FlowMedium = "medium"
	FlowHeavy  = "heavy"
	FlowClots  = "clots"
)

const (
	DischargeNone     = "none"
	DischargeSticky   = "sticky"
	DischargeCreamy   = "creamy"
	DischargeEggWhite = "egg-white"
	DischargeWatery   = "watery"
)

// FlowEntry is one calendar day of menstrual tracking data. All fields are
// optional; an entry with nothing set is deleted rather than stored.
type FlowEntry struct {
	Flow      string   `json:"flow,omitempty"`
	Symptoms  []string `json:"symptoms,omitempty"`
	CrampPain int      `json:"crampPain,omitempty"`
	Discharge string   `json:"discharge,omitempty"`
}

// FlowLog is a sparse map from "2006-01-02" date strings to entries.
type FlowLog map[string]FlowEntry

// HasFlow reports whether the entry records actual bleeding. A logged
// "none" counts as data for the day but not as flow.
func (entry FlowEntry) HasFlow() bool {
	return entry.Flow != "" && entry.Flow != FlowNone
}

func (entry FlowEntry) IsEmpty() bool {
	noFlow := entry.Flow == "" || entry.Flow == FlowNone
	return noFlow && len(entry.Symptoms) == 0 && entry.CrampPain == 0 &&
		(entry.Discharge == "" || entry.Discharge == DischargeNone)
}

// FlowDots returns the calendar indicator count for a flow value.
func FlowDots(flow string) int {
	switch flow {
	case FlowLight:
		return 1
	case FlowMedium:
		return 2
	case FlowHeavy, FlowClots:
		return 3
	default:
		return 0
	}
}

func IsValidFlow(flow string) bool {
	switch flow {
	case "", FlowNone, FlowLight, FlowMedium, FlowHeavy, FlowClots:
		return true
	}
	return false
}
