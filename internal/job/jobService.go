package job

import (
	"github.com/akurra/studybuddy/internal/domain/chatModel"
	"github.com/akurra/studybuddy/internal/domain/commonModels"
	"github.com/akurra/studybuddy/internal/domain/jobModel"
	"github.com/akurra/studybuddy/internal/domain/quizModel"
)

// Service bundles the job queue with the stores the handlers and
// workers share.
type Service struct {
	JobChannel        chan jobModel.Job
	RequestCount      int64
	DispatcherChannel chan bool
	JobStore          jobModel.JobStore
	TurnStore         chatModel.TurnStore
	ChunkStore        commonModels.ChunkStore
	QuizStore         quizModel.QuizStore
}

type ServiceConfig struct {
	JobChannel        chan jobModel.Job
	RequestCount      int64
	DispatcherChannel chan bool
	JobStore          jobModel.JobStore
	TurnStore         chatModel.TurnStore
	ChunkStore        commonModels.ChunkStore
	QuizStore         quizModel.QuizStore
}

func InitJobService(cfg ServiceConfig) *Service {
	return &Service{
		JobChannel:        cfg.JobChannel,
		RequestCount:      cfg.RequestCount,
		DispatcherChannel: cfg.DispatcherChannel,
		JobStore:          cfg.JobStore,
		TurnStore:         cfg.TurnStore,
		ChunkStore:        cfg.ChunkStore,
		QuizStore:         cfg.QuizStore,
	}
}
