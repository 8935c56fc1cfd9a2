package models

import "time"

// CheckIn is one daily check-in submission. Section shapes follow the
// check-in form: every field is user input, nothing is derived.
type CheckIn struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`

	Physical    PhysicalSection    `json:"physical"`
	Mental      MentalSection      `json:"mental"`
	Spiritual   SpiritualSection   `json:"spiritual"`
	Nutrition   NutritionSection   `json:"nutrition"`
	Planning    PlanningSection    `json:"planning"`
	Workload    WorkloadSection    `json:"workload"`
	Environment EnvironmentSection `json:"environment"`
	Progress    ProgressSection    `json:"progress"`
}

type PhysicalSection struct {
	EnergyLevel  int      `json:"energyLevel"`
	Soreness     string   `json:"soreness"`
	Pain         []string `json:"pain"`
	SleepQuality int      `json:"sleepQuality"`
	Bedtime      string   `json:"bedtime"`
	Waketime     string   `json:"waketime"`
	HealthStatus []string `json:"healthStatus"`
}

type MentalSection struct {
	Mood        int      `json:"mood"`
	StressLevel int      `json:"stressLevel"`
	MentalState []string `json:"mentalState"`
	Reflection  string   `json:"reflection"`
	Weighing    string   `json:"weighing"`
}

type SpiritualSection struct {
	Intention string `json:"intention"`
	Gratitude string `json:"gratitude"`
	Alignment string `json:"alignment"`
}

type NutritionSection struct {
	Meals         string   `json:"meals"`
	Satisfaction  int      `json:"satisfaction"`
	EatingContext []string `json:"eatingContext"`
	Cravings      string   `json:"cravings"`
}

type PlanningSection struct {
	TimeBlocks     string   `json:"timeBlocks"`
	EnergyForecast string   `json:"energyForecast"`
	Priorities     []string `json:"priorities"`
	MustNice       string   `json:"mustNice"`
}

type WorkloadSection struct {
	CognitiveLoad    int    `json:"cognitiveLoad"`
	Deadlines        string `json:"deadlines"`
	FocusDifficulty  string `json:"focusDifficulty"`
	ContextSwitching string `json:"contextSwitching"`
}

type EnvironmentSection struct {
	Location         string   `json:"location"`
	NoiseLevel       string   `json:"noiseLevel"`
	SpaceCondition   string   `json:"spaceCondition"`
	DigitalOverwhelm []string `json:"digitalOverwhelm"`
}

type ProgressSection struct {
	Optimizing string            `json:"optimizing"`
	Habits     map[string]string `json:"habits"`
}

// CheckInStats are aggregates over the stored check-in history.
type CheckInStats struct {
	TotalCheckIns    int       `json:"totalCheckIns"`
	CheckInsLast7Day int       `json:"checkInsLast7Days"`
	AverageEnergy    float64   `json:"averageEnergy"`
	AverageStress    float64   `json:"averageStress"`
	AverageSleep     float64   `json:"averageSleep"`
	OldestCheckIn    time.Time `json:"oldestCheckIn"`
	NewestCheckIn    time.Time `json:"newestCheckIn"`
}

// Insight is a stored agent response, either a per-check-in reaction or a
// weekly digest.
type Insight struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
	CheckInID string    `json:"checkInId,omitempty"`
	Message   string    `json:"message"`
}

const (
	InsightTypeCheckIn = "checkin-response"
	InsightTypeWeekly  = "weekly-insights"
)
