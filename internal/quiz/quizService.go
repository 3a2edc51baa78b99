package quiz

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/akurra/studybuddy/internal/config"
	"github.com/akurra/studybuddy/internal/domain/commonModels"
	"github.com/akurra/studybuddy/internal/domain/jobModel"
	"github.com/akurra/studybuddy/internal/domain/quizModel"
	"github.com/akurra/studybuddy/internal/metrics"
	"github.com/akurra/studybuddy/internal/rag/llm"
	"github.com/akurra/studybuddy/pkg/logger_i"
)

var (
	ErrQuizNotFound = errors.New("quiz not found")
	ErrNoChunks     = errors.New("no stored chunks for document")
)

type Service interface {
	GenerateQuiz(ctx context.Context, job jobModel.Job) jobModel.Job
	ValidateAttempt(ctx context.Context, quizId string, answers map[string]string) (quizModel.Attempt, error)
}

type service struct {
	llmProvider llm.Provider
	chunkStore  commonModels.ChunkStore
	quizStore   quizModel.QuizStore
	logger      *logger_i.Logger
}

func NewService(provider llm.Provider, chunks commonModels.ChunkStore, quizzes quizModel.QuizStore) Service {
	return &service{
		llmProvider: provider,
		chunkStore:  chunks,
		quizStore:   quizzes,
		logger:      logger_i.NewLogger("Quiz Service"),
	}
}

// GenerateQuiz builds N multiple-choice questions from the leading
// chunks of an ingested document and stores the session for later
// scoring.
func (s *service) GenerateQuiz(ctx context.Context, jobt jobModel.Job) jobModel.Job {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("quiz_generation", time.Since(start)) }()

	inMethodLogger := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "JobId", jobt.Id)
	jobt.CurrentStep = jobModel.QuizGeneration

	numQuestions := jobt.JobPayload.NumQuestions
	if numQuestions < 1 {
		numQuestions = config.DefaultQuizQuestions
	}

	chunks, err := s.chunkStore.GetChunks(ctx, jobt.JobPayload.DocumentId)
	if err != nil {
		return s.jobError(jobt, err, http.StatusInternalServerError, true)
	}
	if len(chunks) == 0 {
		return s.jobError(jobt, ErrNoChunks, http.StatusBadRequest, false)
	}

	material := quizMaterial(chunks)
	raw, err := s.llmProvider.Generate(ctx, buildQuizPrompt(material, numQuestions))
	if err != nil {
		return s.jobError(jobt, err, http.StatusInternalServerError, true)
	}

	quiz, err := parseQuizJSON(raw)
	if err != nil {
		inMethodLogger.Error("Model returned unparseable quiz", "error", err)
		return s.jobError(jobt, err, http.StatusInternalServerError, true)
	}

	session := quizModel.Session{
		Id:           jobt.JobPayload.QuizId,
		DocumentId:   jobt.JobPayload.DocumentId,
		Quiz:         quiz,
		NumQuestions: len(quiz.Questions),
		CreatedAt:    time.Now(),
	}
	if err := s.quizStore.SaveSession(ctx, session); err != nil {
		return s.jobError(jobt, err, http.StatusInternalServerError, true)
	}

	jobt.JobPayload.NumQuestions = len(quiz.Questions)
	jobt.Status = jobModel.JobStatusComplete
	jobt.CurrentStep = jobModel.Complete
	inMethodLogger.Info("Quiz generated", "quizId", session.Id, "questions", len(quiz.Questions))
	return jobt
}

// ValidateAttempt scores a submitted answer map against the stored
// session and records the attempt.
func (s *service) ValidateAttempt(ctx context.Context, quizId string, answers map[string]string) (quizModel.Attempt, error) {
	session, found := s.quizStore.GetSession(ctx, quizId)
	if !found {
		return quizModel.Attempt{}, ErrQuizNotFound
	}

	score := 0
	for i, q := range session.Quiz.Questions {
		chosen, ok := answers[strconv.Itoa(i+1)]
		if ok && strings.EqualFold(strings.TrimSpace(chosen), q.Answer) {
			score++
		}
	}

	attempt := quizModel.Attempt{
		QuizId:      quizId,
		Answers:     answers,
		Score:       score,
		Total:       len(session.Quiz.Questions),
		AttemptedAt: time.Now(),
	}
	if err := s.quizStore.SaveAttempt(ctx, attempt); err != nil {
		// scoring already happened; losing the attempt record is log-worthy only
		s.logger.Error("Failed to record quiz attempt", "quizId", quizId, "error", err)
	}
	return attempt, nil
}

func (s *service) jobError(job jobModel.Job, err error, code int, canRetry bool) jobModel.Job {
	s.logger.Error("Quiz job failed", "error", err)
	job.Error = jobModel.JobError{
		Code:    code,
		Message: err.Error(),
		Retry:   canRetry,
	}
	job.Status = jobModel.JobStatusError
	job.CurrentStep = jobModel.Error
	return job
}

func quizMaterial(chunks []commonModels.DocChunk) string {
	n := len(chunks)
	if n > config.QuizContextChunks {
		n = config.QuizContextChunks
	}
	texts := make([]string, 0, n)
	for _, c := range chunks[:n] {
		texts = append(texts, c.Text)
	}
	return strings.Join(texts, "\n")
}

func buildQuizPrompt(material string, numQuestions int) string {
	return fmt.Sprintf(`Create a multiple-choice quiz with exactly %d questions from the study material below.
Respond with ONLY a JSON object, no prose, in this shape:
{"questions": [{"question": "...", "options": ["A) ...", "B) ...", "C) ...", "D) ..."], "answer": "A"}]}
The answer field must be the single letter of the correct option.

Study material:
%s`, numQuestions, material)
}
