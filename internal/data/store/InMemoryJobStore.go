package store

import (
	"context"
	"sync"

	"github.com/akurra/studybuddy/internal/domain/jobModel"
	"github.com/akurra/studybuddy/pkg/logger_i"
)

var inMemLogger = logger_i.NewLogger("InMemoryStore")

// InMemoryJobStore is the single-process fallback when redis is offline.
type InMemoryJobStore struct {
	jobLock *sync.RWMutex
	jobMap  map[string]jobModel.Job
}

func InitInMemoryJobStore() *InMemoryJobStore {
	return &InMemoryJobStore{
		jobLock: new(sync.RWMutex),
		jobMap:  make(map[string]jobModel.Job),
	}
}

func (s *InMemoryJobStore) SaveJob(ctx context.Context, job jobModel.Job) error {
	s.jobLock.Lock()
	defer s.jobLock.Unlock()
	s.jobMap[job.Id] = job
	return nil
}

func (s *InMemoryJobStore) GetJob(ctx context.Context, jobId string) (jobModel.Job, bool) {
	s.jobLock.RLock()
	defer s.jobLock.RUnlock()
	job, ok := s.jobMap[jobId]
	return job, ok
}

func (s *InMemoryJobStore) DeleteJob(ctx context.Context, jobID string) {
	s.jobLock.Lock()
	defer s.jobLock.Unlock()
	delete(s.jobMap, jobID)
}
