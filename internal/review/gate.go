// Package review gates the post-exam review view. Review is single-use:
// one replay per finished attempt, and only when the simulator offers it.
package review

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/academix/examsim/internal/model"
	"github.com/academix/examsim/internal/store"
)

// ErrUnavailable is a policy rejection; the caller redirects to the score
// view instead of the review view.
var ErrUnavailable = errors.New("review: unavailable")

// Gate decides from persisted state whether a completed session may enter
// review mode.
type Gate struct {
	store *store.SessionStore
	log   zerolog.Logger
}

// NewGate creates a review gate over the session store.
func NewGate(st *store.SessionStore, log zerolog.Logger) *Gate {
	return &Gate{
		store: st,
		log:   log.With().Str("component", "review_gate").Logger(),
	}
}

// CanReview reports whether review is currently permitted: a persisted
// result exists, the simulator offered review at session start, and the
// single allowance has not been consumed.
func (g *Gate) CanReview(ctx context.Context, simulatorID string) bool {
	if _, ok := g.store.Result(ctx, simulatorID); !ok {
		return false
	}
	if !g.store.ReviewEnabled(ctx, simulatorID) {
		return false
	}
	return !g.store.ReviewUsed(ctx, simulatorID)
}

// EnterReview consumes the review allowance and returns the frozen
// session (questions, selected answers, correctness, justifications) for
// rendering. Fails with ErrUnavailable when the gate is closed.
func (g *Gate) EnterReview(ctx context.Context, simulatorID string) (*model.ExamSession, error) {
	if !g.CanReview(ctx, simulatorID) {
		return nil, ErrUnavailable
	}

	sess, ok := g.store.Session(ctx, simulatorID)
	if !ok || sess.Status != model.SessionStatusFinished {
		return nil, ErrUnavailable
	}

	if err := g.store.MarkReviewUsed(ctx, simulatorID); err != nil {
		return nil, err
	}

	g.log.Info().Str("simulator_id", simulatorID).Msg("review entered")
	return sess, nil
}
