package rag

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/akurra/studybuddy/internal/config"
	"github.com/akurra/studybuddy/internal/domain/chatModel"
	"github.com/akurra/studybuddy/internal/domain/commonModels"
	"github.com/akurra/studybuddy/internal/domain/jobModel"
	"github.com/akurra/studybuddy/internal/metrics"
	"github.com/akurra/studybuddy/internal/rag/vectorindex"
	"github.com/akurra/studybuddy/pkg/logger_i"
)

func returnOutput(job jobModel.Job, ans string) jobModel.Job {
	job.JobPayload.Answer = ans
	job.Status = jobModel.JobStatusComplete
	job.CurrentStep = jobModel.Complete
	return job
}

func logOutput(job jobModel.Job, status jobModel.InternalStatus, log *logger_i.Logger) jobModel.Job {
	job.CurrentStep = status
	log.Debug("ProcessRequest", "Current Status", job.CurrentStep)
	return job
}

func (s *service) jobError(job jobModel.Job, err error, message string, canRetry bool) jobModel.Job {
	s.logger.Error(message, "error", err)

	code := http.StatusInternalServerError
	clientMessage := "Internal Server Error"
	// caller-input failures carry their own message so the client can
	// tell a bad request apart from a broken pipeline
	switch message {
	case "EMPTY_QUESTION", "UNSUPPORTED_FORMAT", "EMPTY_EXTRACTION":
		code = http.StatusBadRequest
		clientMessage = err.Error()
	}

	job.Error = jobModel.JobError{
		Code:    code,
		Message: clientMessage,
		Retry:   canRetry,
	}
	job.Status = jobModel.JobStatusError
	job.CurrentStep = jobModel.Error
	return job
}

func (s *service) executeMemoryStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job) (string, error) {
	*job = logOutput(*job, jobModel.MemoryCall, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("memory_lookup", time.Since(start)) }()

	turns, err := s.turnStore.RecentTurns(ctx, job.ChatId, config.MemoryWindowTurns)
	if err != nil {
		return "", err
	}
	return chatModel.RenderTranscript(turns), nil
}

func (s *service) loadChunks(ctx context.Context, log *logger_i.Logger, job *jobModel.Job) ([]commonModels.DocChunk, error) {
	if job.JobPayload.DocumentId == "" {
		return nil, nil
	}

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("chunk_lookup", time.Since(start)) }()

	chunks, err := s.chunkStore.GetChunks(ctx, job.JobPayload.DocumentId)
	if err != nil {
		return nil, err
	}
	log.Debug("Loaded stored chunks", "documentId", job.JobPayload.DocumentId, "count", len(chunks))
	return chunks, nil
}

func (s *service) executeEmbeddingStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job, question string) ([]float32, error) {
	*job = logOutput(*job, jobModel.EmbeddingAPICall, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("embedding", time.Since(start)) }()

	return s.embedder.GetEmbedding(ctx, question)
}

func (s *service) executeRetrievalStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job, chunks []commonModels.DocChunk, query []float32) ([]vectorindex.Hit, error) {
	*job = logOutput(*job, jobModel.IndexBuild, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("vector_search", time.Since(start)) }()

	idx, err := buildIndexFromChunks(chunks)
	if err != nil {
		return nil, err
	}
	return idx.Search(query, config.RetrievalTopK)
}

func (s *service) executeLLMStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job, prompt string) (string, error) {
	*job = logOutput(*job, jobModel.LLMCall, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_generation", time.Since(start)) }()

	return s.llmProvider.Generate(ctx, prompt)
}

// recordTurns appends the question/answer pair after a successful
// generation. A store failure here degrades future memory but never
// fails the job that already has its answer.
func (s *service) recordTurns(ctx context.Context, log *logger_i.Logger, chatId string, question string, answer string) {
	err := s.turnStore.AppendTurns(ctx, chatId, []chatModel.Turn{
		{Role: chatModel.RoleUser, Text: question},
		{Role: chatModel.RoleAssistant, Text: answer},
	})
	if err != nil {
		log.Error("Failed to record conversation turns", "error", err)
	}
}

func chunkSource(chunks []commonModels.DocChunk, ord int) string {
	if ord < 0 || ord >= len(chunks) {
		return "unknown"
	}
	c := chunks[ord]
	return fmt.Sprintf("%s#chunk-%d", c.DocumentId, c.Index)
}
