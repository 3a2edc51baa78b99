package store

import (
	"context"
	"encoding/json"

	"github.com/akurra/studybuddy/internal/config"
	"github.com/akurra/studybuddy/internal/data/redisStore"
	"github.com/akurra/studybuddy/internal/domain/quizModel"
	"github.com/akurra/studybuddy/pkg/logger_i"
)

type RedisQuizStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisQuizStore(ctx context.Context) *RedisQuizStore {
	inner := redisStore.GetRedisStore(ctx, config.RedisQuizStore)
	if inner == nil {
		return nil
	}
	return &RedisQuizStore{
		store:  inner,
		logger: logger_i.NewLogger("QuizStore"),
	}
}

func quizKey(quizId string) string {
	return "quiz:" + quizId
}

func attemptsKey(quizId string) string {
	return "quizattempts:" + quizId
}

func (s *RedisQuizStore) SaveSession(ctx context.Context, session quizModel.Session) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "quizId", session.Id)
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, quizKey(session.Id), data, 0); err != nil {
		log.Error("Error saving quiz session", "error", err)
		return err
	}
	log.Debug("Saved quiz session")
	return nil
}

func (s *RedisQuizStore) GetSession(ctx context.Context, quizId string) (quizModel.Session, bool) {
	var session quizModel.Session
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "quizId", quizId)

	val, err := s.store.Get(ctx, quizKey(quizId))
	if s.store.IsNil(err) {
		return session, false
	} else if err != nil {
		log.Error("Error reading quiz session", "error", err)
		return session, false
	}

	if err := json.Unmarshal([]byte(val), &session); err != nil {
		log.Error("Stored quiz session is corrupted", "error", err)
		return session, false
	}
	return session, true
}

func (s *RedisQuizStore) SaveAttempt(ctx context.Context, attempt quizModel.Attempt) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "quizId", attempt.QuizId)
	data, err := json.Marshal(attempt)
	if err != nil {
		return err
	}
	if err := s.store.ListPush(ctx, attemptsKey(attempt.QuizId), data); err != nil {
		log.Error("Error saving quiz attempt", "error", err)
		return err
	}
	return nil
}

func TestQuizStore(store *redisStore.Store) *RedisQuizStore {
	return &RedisQuizStore{
		store:  store,
		logger: logger_i.NewLogger("test quiz store"),
	}
}
