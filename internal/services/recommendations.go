package services

import "github.com/benjihealth/sanctuary/internal/models"

// Recommendation is one phase-specific guidance card.
type Recommendation struct {
	Icon  string `json:"icon"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

var phaseRecommendations = map[string][]Recommendation{
	models.PhaseMenstrual: {
		{Icon: "fa-mug-hot", Title: "Rest & Recover", Text: "Your body is working hard right now! Prioritize rest and gentle movement. Light walks or restorative yoga are perfect."},
		{Icon: "fa-bowl-food", Title: "Replenish & Fuel", Text: "Your body needs extra nutrition during your period! Eat iron-rich foods like leafy greens, red meat, lentils, and dark chocolate to restore what you're losing."},
		{Icon: "fa-droplet", Title: "Stay Hydrated", Text: "Hydration is KEY! Drink warm water or herbal teas (ginger, chamomile) to ease bloating and cramps."},
		{Icon: "fa-bed", Title: "Extra Sleep Needed", Text: "Your body is recovering! Aim for 8+ hours of sleep. Use a heating pad for comfort before bed."},
	},
	models.PhaseFollicular: {
		{Icon: "fa-dumbbell", Title: "Ramp Up Training", Text: "Energy rises as estrogen climbs. Great time for strength training, HIIT, or trying new workouts."},
		{Icon: "fa-carrot", Title: "Fuel with Protein", Text: "Focus on lean proteins, fermented foods, and complex carbs to support muscle building."},
		{Icon: "fa-brain", Title: "Plan & Create", Text: "Cognitive function peaks. Tackle challenging tasks, plan projects, and brainstorm ideas."},
		{Icon: "fa-people-group", Title: "Socialize", Text: "You may feel more outgoing. Schedule social events and collaborative work during this phase."},
	},
	models.PhaseOvulation: {
		{Icon: "fa-fire", Title: "Peak Performance", Text: "Energy and strength are at their highest. Push for personal records in workouts."},
		{Icon: "fa-apple-whole", Title: "Anti-Inflammatory Foods", Text: "Eat fruits, vegetables, and omega-3 rich foods to support your body during this fertile window."},
		{Icon: "fa-heart-pulse", Title: "Cardio & Strength", Text: "Your body handles high-intensity exercise best now. Great time for challenging cardio sessions."},
		{Icon: "fa-comments", Title: "Communication Peak", Text: "Verbal skills and confidence tend to peak. Good time for presentations or difficult conversations."},
	},
	models.PhaseLuteal: {
		{Icon: "fa-spa", Title: "Wind Down Gradually", Text: "Energy decreases as progesterone rises. Switch to moderate exercise like pilates, swimming, or walking."},
		{Icon: "fa-wheat-awn", Title: "Complex Carbs", Text: "Cravings may increase. Choose whole grains, sweet potatoes, and magnesium-rich foods like nuts and seeds."},
		{Icon: "fa-moon", Title: "Prioritize Sleep", Text: "Progesterone can affect sleep quality. Maintain a consistent bedtime and limit caffeine after noon."},
		{Icon: "fa-hand-holding-heart", Title: "Self-Care", Text: "PMS symptoms may appear. Journaling, baths, and light stretching can help manage mood changes."},
	},
}

// RecommendationsForPhase returns the fixed guidance cards for a phase name,
// or nil for an unknown phase.
func RecommendationsForPhase(phaseName string) []Recommendation {
	recs, ok := phaseRecommendations[phaseName]
	if !ok {
		return nil
	}
	out := make([]Recommendation, len(recs))
	copy(out, recs)
	return out
}
