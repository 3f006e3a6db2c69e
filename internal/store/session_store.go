package store

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/academix/examsim/internal/codec"
	"github.com/academix/examsim/internal/config"
	"github.com/academix/examsim/internal/model"
)

// SessionStore is the typed persistence layer for exam session state.
// The session token and the frozen session snapshot (which carries correct
// answers) pass through the payload-encryption path; score summaries and
// flags are stored plain.
//
// Reads follow the treat-as-absent contract: a value that fails to decrypt
// or parse reads as missing, with a debug log, never as a user-facing
// error.
type SessionStore struct {
	kv  Store
	cc  *codec.Codec
	log zerolog.Logger
}

// New wraps a raw Store with the typed, partially-encrypted session layer.
func New(kv Store, cc *codec.Codec, log zerolog.Logger) *SessionStore {
	return &SessionStore{
		kv:  kv,
		cc:  cc,
		log: log.With().Str("component", "session_store").Logger(),
	}
}

// SaveToken persists the session token encrypted.
func (s *SessionStore) SaveToken(ctx context.Context, token string) error {
	enc, err := s.cc.EncryptJSON(token)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, config.StoreKey.SessionToken(), enc)
}

// Token returns the decrypted session token, or ok=false when absent or
// undecryptable.
func (s *SessionStore) Token(ctx context.Context) (string, bool) {
	raw, ok := s.getString(ctx, config.StoreKey.SessionToken())
	if !ok {
		return "", false
	}

	var token string
	if err := s.cc.DecryptJSON(raw, &token); err != nil {
		s.log.Debug().Err(err).Msg("stored token unreadable, treating as absent")
		return "", false
	}
	return token, true
}

// SetCurrentSimulator records which simulator the taker is attempting.
func (s *SessionStore) SetCurrentSimulator(ctx context.Context, simulatorID string) error {
	return s.kv.Set(ctx, config.StoreKey.CurrentSimulator(), simulatorID)
}

// CurrentSimulator returns the active simulator id, if any.
func (s *SessionStore) CurrentSimulator(ctx context.Context) (string, bool) {
	return s.getString(ctx, config.StoreKey.CurrentSimulator())
}

// SaveResult persists a finished exam result as plain JSON, keyed by
// simulator.
func (s *SessionStore) SaveResult(ctx context.Context, res model.ExamResult) error {
	raw, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, config.StoreKey.ExamResult(res.SimulatorID), string(raw))
}

// Result returns the persisted result for a simulator, or ok=false.
func (s *SessionStore) Result(ctx context.Context, simulatorID string) (*model.ExamResult, bool) {
	raw, ok := s.getString(ctx, config.StoreKey.ExamResult(simulatorID))
	if !ok {
		return nil, false
	}

	var res model.ExamResult
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		s.log.Debug().Err(err).Str("simulator_id", simulatorID).
			Msg("stored result unreadable, treating as absent")
		return nil, false
	}
	return &res, true
}

// DeleteResult removes a simulator's persisted result.
func (s *SessionStore) DeleteResult(ctx context.Context, simulatorID string) error {
	return s.kv.Delete(ctx, config.StoreKey.ExamResult(simulatorID))
}

// SetReviewEnabled persists whether review is offered for a simulator,
// copied from the simulator config at session start.
func (s *SessionStore) SetReviewEnabled(ctx context.Context, simulatorID string, enabled bool) error {
	v := "false"
	if enabled {
		v = "true"
	}
	return s.kv.Set(ctx, config.StoreKey.ReviewEnabled(simulatorID), v)
}

// ReviewEnabled reports the persisted review flag; absent reads as false.
func (s *SessionStore) ReviewEnabled(ctx context.Context, simulatorID string) bool {
	v, ok := s.getString(ctx, config.StoreKey.ReviewEnabled(simulatorID))
	return ok && v == "true"
}

// MarkReviewUsed consumes the single review allowance for a simulator.
func (s *SessionStore) MarkReviewUsed(ctx context.Context, simulatorID string) error {
	return s.kv.Set(ctx, config.StoreKey.ReviewUsed(simulatorID), "true")
}

// ResetReviewUsed restores the review allowance. The marker scopes to one
// result, so a fresh attempt starts unconsumed.
func (s *SessionStore) ResetReviewUsed(ctx context.Context, simulatorID string) error {
	return s.kv.Delete(ctx, config.StoreKey.ReviewUsed(simulatorID))
}

// ReviewUsed reports whether review was already consumed.
func (s *SessionStore) ReviewUsed(ctx context.Context, simulatorID string) bool {
	v, ok := s.getString(ctx, config.StoreKey.ReviewUsed(simulatorID))
	return ok && v == "true"
}

// SaveSession persists the session snapshot encrypted. The snapshot holds
// the correct-answer flags, so it never touches storage in the clear.
func (s *SessionStore) SaveSession(ctx context.Context, sess *model.ExamSession) error {
	enc, err := s.cc.EncryptJSON(sess)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, config.StoreKey.ExamSession(sess.SimulatorID), enc)
}

// Session returns the persisted session snapshot for a simulator, or
// ok=false when absent or undecryptable.
func (s *SessionStore) Session(ctx context.Context, simulatorID string) (*model.ExamSession, bool) {
	raw, ok := s.getString(ctx, config.StoreKey.ExamSession(simulatorID))
	if !ok {
		return nil, false
	}

	var sess model.ExamSession
	if err := s.cc.DecryptJSON(raw, &sess); err != nil {
		s.log.Debug().Err(err).Str("simulator_id", simulatorID).
			Msg("stored session unreadable, treating as absent")
		return nil, false
	}
	return &sess, true
}

// DeleteSession removes a simulator's session snapshot.
func (s *SessionStore) DeleteSession(ctx context.Context, simulatorID string) error {
	return s.kv.Delete(ctx, config.StoreKey.ExamSession(simulatorID))
}

// Reset wipes everything. Logout or new-attempt path.
func (s *SessionStore) Reset(ctx context.Context) error {
	return s.kv.Clear(ctx)
}

func (s *SessionStore) getString(ctx context.Context, key string) (string, bool) {
	v, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("store read failed")
		return "", false
	}
	return v, ok
}
