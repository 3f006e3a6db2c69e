package model

import "time"

// ExamResult is the immutable score summary derived from a finished session.
// All counts are integers; there is no partial credit.
type ExamResult struct {
	SimulatorID         string    `json:"simulatorId"`
	Score               int       `json:"score"`
	TotalQuestions      int       `json:"totalQuestions"`
	TotalAnswered       int       `json:"totalAnswered"`
	CorrectAnswers      int       `json:"correctAnswers"`
	IncorrectAnswers    int       `json:"incorrectAnswers"`
	UnansweredQuestions int       `json:"unansweredQuestions"`
	PercentageAnswered  int       `json:"percentageAnswered"`
	TimeSpentSeconds    int       `json:"timeSpent"`
	FinishedAt          time.Time `json:"finishedAt"`
}

// ResultSubmission is the payload posted to the backend when a session
// finishes. The raw answer map travels alongside the locally computed
// summary so the server can re-grade independently.
type ResultSubmission struct {
	Answers map[int]int `json:"answers"`
	Result  ExamResult  `json:"result"`
}
