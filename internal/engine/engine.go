// Package engine implements the exam session state machine: load a
// question set, track position and answers, run the countdown, finish by
// timeout or on request, score, and hand the frozen session to review.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/academix/examsim/internal/model"
	"github.com/academix/examsim/internal/store"
	"github.com/academix/examsim/internal/token"
	"github.com/academix/examsim/internal/validator"
)

// Status is the engine lifecycle state. The only transitions are
// Idle → Loading → InProgress → Finished.
type Status string

const (
	StatusIdle       Status = "IDLE"
	StatusLoading    Status = "LOADING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusFinished   Status = "FINISHED"
)

var (
	// ErrSessionActive rejects an overlapping Start/Resume while a
	// transition is in flight or an exam is running.
	ErrSessionActive = errors.New("engine: session already active")
	// ErrSessionNotActive rejects answer/navigation/finish calls outside
	// IN_PROGRESS.
	ErrSessionNotActive = errors.New("engine: no session in progress")
	// ErrNavigationNotAllowed is a policy rejection the UI consumes as a
	// no-op, optionally with a hint. State is unchanged.
	ErrNavigationNotAllowed = errors.New("engine: navigation not allowed")
	// ErrTokenRequired means no session token is stored; the caller must
	// redirect to the simulator's entry route.
	ErrTokenRequired = errors.New("engine: session token required")

	ErrIndexOutOfRange = errors.New("engine: question index out of range")
	ErrUnknownQuestion = errors.New("engine: question not in session")
	ErrNoQuestions     = errors.New("engine: simulator has no questions")
	ErrQuestionCount   = errors.New("engine: question set size mismatch")
)

// Backend supplies the question bank and receives final results.
type Backend interface {
	FetchQuestions(ctx context.Context, simulatorID string) ([]model.Question, error)
	SubmitResult(ctx context.Context, simulatorID string, sub model.ResultSubmission) error
}

// Engine drives one exam session at a time. Access is serialized by a
// mutex; overlapping lifecycle transitions are rejected by a synchronous
// status check before any I/O begins.
type Engine struct {
	mu     sync.Mutex
	api    Backend
	store  *store.SessionStore
	secret []byte
	log    zerolog.Logger

	status  Status
	sim     model.Simulator
	session *model.ExamSession
	result  *model.ExamResult
}

// New creates an idle engine. secret verifies session tokens issued by the
// auth collaborator.
func New(api Backend, st *store.SessionStore, secret []byte, log zerolog.Logger) *Engine {
	return &Engine{
		api:    api,
		store:  st,
		secret: secret,
		log:    log.With().Str("component", "engine").Logger(),
		status: StatusIdle,
	}
}

// Start begins a new session for the simulator. Preconditions: a stored,
// valid session token matching sim.ID (otherwise the caller redirects to
// the simulator's entry route) and a valid simulator config. The fetched
// question set is snapshotted: later edits to the bank never reach this
// session.
func (e *Engine) Start(ctx context.Context, sim model.Simulator) error {
	if err := e.beginLoading(); err != nil {
		return err
	}

	if err := e.startLocked(ctx, sim); err != nil {
		e.mu.Lock()
		e.status = StatusIdle
		e.mu.Unlock()
		return err
	}
	return nil
}

// beginLoading claims the engine for a lifecycle transition.
func (e *Engine) beginLoading() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.status == StatusLoading || e.status == StatusInProgress {
		return ErrSessionActive
	}
	e.status = StatusLoading
	return nil
}

func (e *Engine) startLocked(ctx context.Context, sim model.Simulator) error {
	if err := e.checkToken(ctx, sim.ID); err != nil {
		return err
	}

	if fields := validator.Struct(sim); fields != nil {
		return fmt.Errorf("engine: invalid simulator: %v", fields)
	}

	questions, err := e.api.FetchQuestions(ctx, sim.ID)
	if err != nil {
		return err
	}
	if len(questions) == 0 {
		return ErrNoQuestions
	}
	if len(questions) != sim.NumberOfQuestions {
		return fmt.Errorf("%w: got %d, simulator expects %d",
			ErrQuestionCount, len(questions), sim.NumberOfQuestions)
	}
	for i, q := range questions {
		if fields := validator.Struct(q); fields != nil {
			return fmt.Errorf("engine: invalid question %d: %v", i, fields)
		}
	}

	session := &model.ExamSession{
		ID:               uuid.New(),
		SimulatorID:      sim.ID,
		Simulator:        sim,
		Questions:        model.CloneQuestions(questions),
		Answers:          make(map[int]int),
		StartedAt:        time.Now(),
		TimeLimitSeconds: sim.TimeLimitSeconds(),
		Status:           model.SessionStatusInProgress,
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.sim = sim
	e.session = session
	e.result = nil
	e.status = StatusInProgress

	// The previous attempt's result and consumed review allowance are
	// stale now; each result carries its own single review.
	if err := e.store.DeleteResult(ctx, sim.ID); err != nil {
		e.log.Warn().Err(err).Msg("clear stale result failed")
	}
	if err := e.store.ResetReviewUsed(ctx, sim.ID); err != nil {
		e.log.Warn().Err(err).Msg("reset review allowance failed")
	}

	e.persistSkeleton(ctx)

	e.log.Info().
		Str("simulator_id", sim.ID).
		Int("questions", len(session.Questions)).
		Int("time_limit_s", session.TimeLimitSeconds).
		Msg("session started")
	return nil
}

// Resume rehydrates an in-progress session persisted by an earlier
// process (the reload path). Returns false when there is nothing to
// resume.
func (e *Engine) Resume(ctx context.Context) (bool, error) {
	if err := e.beginLoading(); err != nil {
		return false, err
	}

	resumed, err := e.resumeLocked(ctx)
	if err != nil || !resumed {
		e.mu.Lock()
		e.status = StatusIdle
		e.mu.Unlock()
	}
	return resumed, err
}

func (e *Engine) resumeLocked(ctx context.Context) (bool, error) {
	simID, ok := e.store.CurrentSimulator(ctx)
	if !ok {
		return false, nil
	}
	sess, ok := e.store.Session(ctx, simID)
	if !ok || sess.Status != model.SessionStatusInProgress {
		return false, nil
	}
	if err := e.checkToken(ctx, simID); err != nil {
		return false, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.sim = sess.Simulator
	e.session = sess
	e.result = nil
	e.status = StatusInProgress

	e.log.Info().Str("simulator_id", simID).
		Int("time_spent_s", sess.TimeSpentSeconds).
		Msg("session resumed")
	return true, nil
}

// SelectAnswer records the selected option for a question, overwriting
// any prior selection. Selecting the same option twice is observably a
// no-op. Option membership is not validated here; the server revalidates
// at submission.
func (e *Engine) SelectAnswer(ctx context.Context, questionID, optionID int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.status != StatusInProgress {
		return ErrSessionNotActive
	}

	found := false
	for _, q := range e.session.Questions {
		if q.ID == questionID {
			found = true
			break
		}
	}
	if !found {
		return ErrUnknownQuestion
	}

	if prev, ok := e.session.Answers[questionID]; ok && prev == optionID {
		return nil
	}
	e.session.Answers[questionID] = optionID
	e.persistSkeleton(ctx)
	return nil
}

// GoTo moves the current position. With free navigation any in-bounds
// index is accepted; otherwise moving backward is rejected and the
// position is unchanged.
func (e *Engine) GoTo(ctx context.Context, index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.status != StatusInProgress {
		return ErrSessionNotActive
	}
	if index < 0 || index >= len(e.session.Questions) {
		return ErrIndexOutOfRange
	}
	if !e.sim.Navigate && index < e.session.CurrentQuestionIndex {
		return ErrNavigationNotAllowed
	}

	e.session.CurrentQuestionIndex = index
	e.persistSkeleton(ctx)
	return nil
}

// Tick advances the clock by delta seconds. Called at a regular cadence
// while the session runs; a no-op in any other state. When accumulated
// time reaches the limit the session is finished with reason Timeout.
// Tick itself does no storage or network I/O except for that forced
// finish.
func (e *Engine) Tick(ctx context.Context, deltaSeconds int) (finished bool, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.status != StatusInProgress {
		return false, nil
	}

	e.session.TimeSpentSeconds += deltaSeconds
	if e.session.TimeSpentSeconds >= e.session.TimeLimitSeconds {
		e.session.TimeSpentSeconds = e.session.TimeLimitSeconds
		_, err = e.finishLocked(ctx, model.FinishReasonTimeout)
		return true, err
	}
	return false, nil
}

// Finish ends the session, freezes the answers, computes the result, and
// submits it once. Idempotent: after the first call it returns the cached
// result without re-submitting. ManualExit is the exit-mid-exam path and
// scores the partial answer set; there is no discard-without-saving.
func (e *Engine) Finish(ctx context.Context, reason model.FinishReason) (*model.ExamResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.status == StatusFinished {
		return e.result, nil
	}
	if e.status != StatusInProgress {
		return nil, ErrSessionNotActive
	}
	return e.finishLocked(ctx, reason)
}

// finishLocked does the actual transition. Caller holds e.mu.
func (e *Engine) finishLocked(ctx context.Context, reason model.FinishReason) (*model.ExamResult, error) {
	e.session.Status = model.SessionStatusFinished
	e.session.FinishReason = reason

	res := computeResult(e.session)
	e.result = &res
	e.status = StatusFinished

	if err := e.store.SaveResult(ctx, res); err != nil {
		e.log.Error().Err(err).Msg("persist result failed")
	}
	if err := e.store.SaveSession(ctx, e.session); err != nil {
		e.log.Error().Err(err).Msg("persist finished session failed")
	}
	// Review availability was copied from the simulator at session start;
	// re-assert it here, never re-read from the bank.
	if err := e.store.SetReviewEnabled(ctx, e.sim.ID, e.sim.Review); err != nil {
		e.log.Error().Err(err).Msg("persist review flag failed")
	}

	e.log.Info().
		Str("simulator_id", e.sim.ID).
		Str("reason", string(reason)).
		Int("score", res.Score).
		Int("answered", res.TotalAnswered).
		Msg("session finished")

	if err := e.api.SubmitResult(ctx, e.sim.ID, model.ResultSubmission{
		Answers: e.session.Answers,
		Result:  res,
	}); err != nil {
		// Surfaced to the user, never retried automatically. The session
		// stays finished and the local result stands.
		e.log.Warn().Err(err).Msg("result submission failed")
		return e.result, err
	}
	return e.result, nil
}

// Abandon discards the current attempt: an in-progress session is marked
// abandoned, its persisted skeleton removed, and the engine returns to
// idle. Persisted results and review flags from earlier finished attempts
// are untouched.
func (e *Engine) Abandon(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.status == StatusInProgress {
		e.session.Status = model.SessionStatusAbandoned
		if err := e.store.DeleteSession(ctx, e.session.SimulatorID); err != nil {
			e.log.Warn().Err(err).Msg("delete session skeleton failed")
		}
	}

	e.session = nil
	e.result = nil
	e.status = StatusIdle
	return nil
}

// Status returns the current lifecycle state.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// Session returns a deep copy of the current session, or nil.
func (e *Engine) Session() *model.ExamSession {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return nil
	}
	return e.session.Clone()
}

// Result returns the computed result, or nil before the session finishes.
func (e *Engine) Result() *model.ExamResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.result
}

// CurrentQuestion returns the question at the current position.
func (e *Engine) CurrentQuestion() (model.Question, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil || e.status != StatusInProgress {
		return model.Question{}, false
	}
	return e.session.Questions[e.session.CurrentQuestionIndex].Clone(), true
}

// RemainingSeconds reports the countdown, clamped at zero.
func (e *Engine) RemainingSeconds() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return 0
	}
	remaining := e.session.TimeLimitSeconds - e.session.TimeSpentSeconds
	if remaining < 0 {
		return 0
	}
	return remaining
}

// checkToken enforces the entry precondition: a stored, valid token bound
// to the requested simulator.
func (e *Engine) checkToken(ctx context.Context, simulatorID string) error {
	tok, ok := e.store.Token(ctx)
	if !ok {
		return ErrTokenRequired
	}
	claims, err := token.Validate(e.secret, tok)
	if err != nil {
		return err
	}
	return claims.MatchSimulator(simulatorID)
}

// persistSkeleton writes the current session state through the store.
// Failures are logged, not surfaced: persisted state is a recovery cache,
// the in-memory session stays authoritative. Caller holds e.mu.
func (e *Engine) persistSkeleton(ctx context.Context) {
	if err := e.store.SetCurrentSimulator(ctx, e.session.SimulatorID); err != nil {
		e.log.Warn().Err(err).Msg("persist simulator id failed")
	}
	if err := e.store.SaveSession(ctx, e.session); err != nil {
		e.log.Warn().Err(err).Msg("persist session failed")
	}
	if err := e.store.SetReviewEnabled(ctx, e.session.SimulatorID, e.sim.Review); err != nil {
		e.log.Warn().Err(err).Msg("persist review flag failed")
	}
}
