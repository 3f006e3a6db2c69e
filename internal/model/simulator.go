package model

// Simulator represents a timed exam configuration. Administered elsewhere;
// read-only to the exam engine.
type Simulator struct {
	ID                string `json:"id" validate:"required"`
	Name              string `json:"name" validate:"required"`
	DurationMinutes   int    `json:"duration" validate:"required,min=1"`
	NumberOfQuestions int    `json:"numberOfQuestions" validate:"required,min=1"`
	// Navigate permits free movement between questions. When false the
	// taker may only move forward.
	Navigate   bool `json:"navigate"`
	Visibility bool `json:"visibility"`
	// Review controls whether a post-exam review is offered at all.
	Review bool `json:"review"`
}

// TimeLimitSeconds converts the configured duration to seconds.
func (s Simulator) TimeLimitSeconds() int {
	return s.DurationMinutes * 60
}

// Category groups questions by topic.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
