package model

// Option is one answer choice of a question. IsCorrect travels with the
// question snapshot for local scoring; the UI must never show it before
// the session is finished.
type Option struct {
	ID        int      `json:"id"`
	Content   Document `json:"content"`
	IsCorrect bool     `json:"isCorrect"`
}

// Question represents a single exam question with its ordered options.
// Justification is only rendered in review mode.
type Question struct {
	ID            int       `json:"id"`
	CategoryID    int       `json:"categoryId"`
	Content       Document  `json:"content"`
	Justification *Document `json:"justification,omitempty"`
	Options       []Option  `json:"options" validate:"min=2"`
}

// CorrectOptionID returns the id of the option flagged correct.
// ok is false for a malformed question with no correct option.
func (q Question) CorrectOptionID() (int, bool) {
	for _, o := range q.Options {
		if o.IsCorrect {
			return o.ID, true
		}
	}
	return 0, false
}

// HasOption reports whether the given option id belongs to this question.
func (q Question) HasOption(optionID int) bool {
	for _, o := range q.Options {
		if o.ID == optionID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the question, detached from the source bank.
func (q Question) Clone() Question {
	out := q
	out.Content = q.Content.Clone()
	if q.Justification != nil {
		j := q.Justification.Clone()
		out.Justification = &j
	}
	out.Options = make([]Option, len(q.Options))
	for i, o := range q.Options {
		out.Options[i] = o
		out.Options[i].Content = o.Content.Clone()
	}
	return out
}

// CloneQuestions deep-copies a question set for session snapshotting.
func CloneQuestions(qs []Question) []Question {
	out := make([]Question, len(qs))
	for i, q := range qs {
		out[i] = q.Clone()
	}
	return out
}
