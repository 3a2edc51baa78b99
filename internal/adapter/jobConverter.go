package adapter

import (
	"fmt"
	"time"

	"github.com/akurra/studybuddy/internal/api"
	"github.com/akurra/studybuddy/internal/domain/jobModel"
	"github.com/akurra/studybuddy/internal/domain/quizModel"
)

func ToInitJobResponse(job jobModel.Job) api.InitJobResponse {
	return api.InitJobResponse{
		Id:         job.Id,
		StatusURL:  fmt.Sprintf("status/%s", job.Id),
		DocumentId: job.JobPayload.DocumentId,
		QuizId:     job.JobPayload.QuizId,
	}
}

func ToAPIResponse(job jobModel.Job) api.JobResponse {
	var errorPtr *api.JobOutgoingError
	if job.Error.Message != "" || job.Error.Code != 0 {
		errorPtr = &api.JobOutgoingError{
			Code:    job.Error.Code,
			Message: job.Error.Message,
			Retry:   job.Error.Retry,
		}
	}

	result := api.Result{
		Status:              string(job.Status),
		RAGExternalResponse: ToRAGExternalStatus(job.JobPayload),
		IngestResult:        ToIngestResult(job),
		QuizId:              job.JobPayload.QuizId,
	}

	return api.JobResponse{
		Id:        job.Id,
		ChatId:    job.ChatId,
		StartTime: job.CreatedTime,
		EndTime:   job.EndTime,
		Error:     errorPtr,
		Result:    result,
	}
}

func ToRAGExternalStatus(ragData jobModel.JobPayload) *api.RAGResponse {
	if ragData.Answer == "" && len(ragData.Sources) == 0 {
		return nil
	}

	return &api.RAGResponse{
		Question: ragData.Question,
		Answer:   ragData.Answer,
		Sources:  ragData.Sources,
	}
}

func ToIngestResult(job jobModel.Job) *api.IngestResult {
	if job.JobType != jobModel.JobTypeIngest || job.JobPayload.ChunksCreated == 0 {
		return nil
	}
	return &api.IngestResult{
		DocumentId:    job.JobPayload.DocumentId,
		ChunksCreated: job.JobPayload.ChunksCreated,
	}
}

// ToQuizResponse strips correct answers before the quiz leaves the
// server.
func ToQuizResponse(session quizModel.Session) api.QuizResponse {
	questions := make([]api.QuizQuestion, 0, len(session.Quiz.Questions))
	for _, q := range session.Quiz.Questions {
		questions = append(questions, api.QuizQuestion{
			Question: q.Question,
			Options:  q.Options,
		})
	}
	return api.QuizResponse{
		QuizId:     session.Id,
		DocumentId: session.DocumentId,
		Questions:  questions,
	}
}

func ToQuizScoreResponse(attempt quizModel.Attempt) api.QuizScoreResponse {
	return api.QuizScoreResponse{
		QuizId: attempt.QuizId,
		Score:  attempt.Score,
		Total:  attempt.Total,
	}
}

func BadRequest(id string, error string, code int) api.JobResponse {
	return api.JobResponse{
		Id:        id,
		ChatId:    "",
		StartTime: time.Time{},
		EndTime:   time.Time{},
		Result: api.Result{
			Status:              string(api.JobStatusError),
			RAGExternalResponse: ToRAGExternalStatus(jobModel.JobPayload{}),
		},
		Error: &api.JobOutgoingError{
			Code:    code,
			Message: error,
			Retry:   false,
		},
	}
}
