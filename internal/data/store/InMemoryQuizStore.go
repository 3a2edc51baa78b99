package store

import (
	"context"
	"sync"

	"github.com/akurra/studybuddy/internal/domain/quizModel"
)

type InMemoryQuizStore struct {
	quizLock   *sync.RWMutex
	sessionMap map[string]quizModel.Session
	attemptMap map[string][]quizModel.Attempt
}

func InitInMemoryQuizStore() *InMemoryQuizStore {
	return &InMemoryQuizStore{
		quizLock:   new(sync.RWMutex),
		sessionMap: make(map[string]quizModel.Session),
		attemptMap: make(map[string][]quizModel.Attempt),
	}
}

func (s *InMemoryQuizStore) SaveSession(ctx context.Context, session quizModel.Session) error {
	s.quizLock.Lock()
	defer s.quizLock.Unlock()
	s.sessionMap[session.Id] = session
	return nil
}

func (s *InMemoryQuizStore) GetSession(ctx context.Context, quizId string) (quizModel.Session, bool) {
	s.quizLock.RLock()
	defer s.quizLock.RUnlock()
	session, ok := s.sessionMap[quizId]
	return session, ok
}

func (s *InMemoryQuizStore) SaveAttempt(ctx context.Context, attempt quizModel.Attempt) error {
	s.quizLock.Lock()
	defer s.quizLock.Unlock()
	s.attemptMap[attempt.QuizId] = append(s.attemptMap[attempt.QuizId], attempt)
	return nil
}
