package store

import (
	"context"
	"errors"
	"sync"

	"github.com/akurra/studybuddy/internal/domain/chatModel"
)

// InMemoryTurnStore keys turn logs by chat id behind one lock, so
// concurrent appends to the same conversation stay ordered and no chat
// ever reads another chat's history.
type InMemoryTurnStore struct {
	chatLock *sync.RWMutex
	chatMap  map[string][]chatModel.Turn
}

func InitInMemoryTurnStore() *InMemoryTurnStore {
	return &InMemoryTurnStore{
		chatLock: new(sync.RWMutex),
		chatMap:  make(map[string][]chatModel.Turn),
	}
}

func (s *InMemoryTurnStore) ValidateChatId(ctx context.Context, chatId string) bool {
	s.chatLock.RLock()
	defer s.chatLock.RUnlock()
	_, ok := s.chatMap[chatId]
	return ok
}

func (s *InMemoryTurnStore) InitNewChat(ctx context.Context, chatId string) error {
	s.chatLock.Lock()
	defer s.chatLock.Unlock()
	s.chatMap[chatId] = make([]chatModel.Turn, 0)
	return nil
}

func (s *InMemoryTurnStore) AppendTurns(ctx context.Context, chatId string, turns []chatModel.Turn) error {
	s.chatLock.Lock()
	defer s.chatLock.Unlock()
	if _, ok := s.chatMap[chatId]; !ok {
		return errors.New("invalid chat id")
	}
	s.chatMap[chatId] = append(s.chatMap[chatId], turns...)
	return nil
}

func (s *InMemoryTurnStore) RecentTurns(ctx context.Context, chatId string, window int) ([]chatModel.Turn, error) {
	s.chatLock.RLock()
	defer s.chatLock.RUnlock()

	log := s.chatMap[chatId]
	if window < 1 || len(log) == 0 {
		return []chatModel.Turn{}, nil
	}
	start := len(log) - window
	if start < 0 {
		start = 0
	}

	out := make([]chatModel.Turn, len(log)-start)
	copy(out, log[start:])
	return out, nil
}
