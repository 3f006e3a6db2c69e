package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionStatus enumerates exam session states.
type SessionStatus string

const (
	SessionStatusInProgress SessionStatus = "IN_PROGRESS"
	SessionStatusFinished   SessionStatus = "FINISHED"
	SessionStatusAbandoned  SessionStatus = "ABANDONED"
)

// FinishReason records why a session left IN_PROGRESS.
type FinishReason string

const (
	FinishReasonManualExit   FinishReason = "MANUAL_EXIT"
	FinishReasonManualFinish FinishReason = "MANUAL_FINISH"
	FinishReasonTimeout      FinishReason = "TIMEOUT"
)

// ExamSession is one taker's attempt at a simulator. Questions are a
// snapshot taken at session start: edits to the question bank after that
// point never reach an in-progress session. Answers maps question id to
// the selected option id; absence means unanswered.
type ExamSession struct {
	ID                   uuid.UUID     `json:"id"`
	SimulatorID          string        `json:"simulatorId"`
	Simulator            Simulator     `json:"simulator"`
	Questions            []Question    `json:"questions"`
	Answers              map[int]int   `json:"answers"`
	CurrentQuestionIndex int           `json:"currentQuestionIndex"`
	StartedAt            time.Time     `json:"startedAt"`
	TimeLimitSeconds     int           `json:"timeLimitSeconds"`
	TimeSpentSeconds     int           `json:"timeSpentSeconds"`
	Status               SessionStatus `json:"status"`
	FinishReason         FinishReason  `json:"finishReason,omitempty"`
}

// AnsweredCount returns how many snapshotted questions have a recorded answer.
// Stray answer ids that no longer match a question are not counted.
func (s *ExamSession) AnsweredCount() int {
	n := 0
	for _, q := range s.Questions {
		if _, ok := s.Answers[q.ID]; ok {
			n++
		}
	}
	return n
}

// Clone returns a deep copy, safe to hand to the UI while the engine
// keeps mutating its own state.
func (s *ExamSession) Clone() *ExamSession {
	out := *s
	out.Simulator = s.Simulator
	out.Questions = CloneQuestions(s.Questions)
	out.Answers = make(map[int]int, len(s.Answers))
	for k, v := range s.Answers {
		out.Answers[k] = v
	}
	return &out
}
