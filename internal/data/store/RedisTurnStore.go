package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/akurra/studybuddy/internal/config"
	"github.com/akurra/studybuddy/internal/data/redisStore"
	"github.com/akurra/studybuddy/internal/domain/chatModel"
	"github.com/akurra/studybuddy/pkg/logger_i"
)

// RedisTurnStore keeps one append-only turn list per chat id, so no
// conversation ever sees another conversation's history. Appends go
// through a single RPUSH, which serializes concurrent writers on the
// same chat.
type RedisTurnStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisTurnStore(ctx context.Context) *RedisTurnStore {
	inner := redisStore.GetRedisStore(ctx, config.RedisTurnStore)
	if inner == nil {
		return nil
	}
	return &RedisTurnStore{
		store:  inner,
		logger: logger_i.NewLogger("TurnStore"),
	}
}

func turnsKey(chatId string) string {
	return "turns:" + chatId
}

func (s *RedisTurnStore) ValidateChatId(ctx context.Context, chatId string) bool {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "chat Id", chatId)
	isFound, err := s.store.Exists(ctx, chatId)
	if err != nil && !s.store.IsNil(err) {
		log.Error("Failed to check if chatId exists", "error", err)
		return false
	}
	return isFound
}

func (s *RedisTurnStore) InitNewChat(ctx context.Context, chatId string) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "chat Id", chatId)
	log.Debug("Initializing new chat")
	if err := s.store.Del(ctx, turnsKey(chatId)); err != nil && !s.store.IsNil(err) {
		log.Error("Error clearing old turn log", "error", err)
	}
	// marker key so an empty conversation still validates
	return s.store.Set(ctx, chatId, "1", config.RedisTurnStoreTTL)
}

func (s *RedisTurnStore) AppendTurns(ctx context.Context, chatId string, turns []chatModel.Turn) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "chat Id", chatId)
	if !s.ValidateChatId(ctx, chatId) {
		err := errors.New("invalid chat id")
		log.Error("Failed validation before appending turns", "error", err)
		return err
	}
	if len(turns) == 0 {
		return nil
	}

	values := make([]interface{}, 0, len(turns))
	for _, t := range turns {
		data, err := json.Marshal(t)
		if err != nil {
			log.Error("Error marshalling turn", "error", err)
			return err
		}
		values = append(values, data)
	}
	if err := s.store.ListPush(ctx, turnsKey(chatId), values...); err != nil {
		log.Error("Error appending turns", "error", err)
		return err
	}
	return nil
}

func (s *RedisTurnStore) RecentTurns(ctx context.Context, chatId string, window int) ([]chatModel.Turn, error) {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "chat Id", chatId)

	raw, err := s.store.ListTail(ctx, turnsKey(chatId), window)
	if err != nil {
		log.Error("Error reading turn window", "error", err)
		return nil, err
	}

	turns := make([]chatModel.Turn, 0, len(raw))
	for _, r := range raw {
		var t chatModel.Turn
		if err := json.Unmarshal([]byte(r), &t); err != nil {
			log.Error("Stored turn is corrupted, skipping", "error", err)
			continue
		}
		turns = append(turns, t)
	}
	return turns, nil
}

func TestTurnStore(store *redisStore.Store) *RedisTurnStore {
	return &RedisTurnStore{
		store:  store,
		logger: logger_i.NewLogger("test turn store"),
	}
}
