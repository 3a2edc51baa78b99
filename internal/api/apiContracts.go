package api

import "time"

type JobExternalStatus string

const (
	JobStatusError JobExternalStatus = "Error"
)

type JobResponse struct {
	Id        string            `json:"id" example:"job_cz109"`
	ChatId    string            `json:"chat_id" example:"chat_550"`
	Result    Result            `json:"result"`
	Error     *JobOutgoingError `json:"error,omitempty"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Job not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

type RAGResponse struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Sources  []string `json:"sources"`
}

type IngestResult struct {
	DocumentId    string `json:"document_id"`
	ChunksCreated int    `json:"chunks_created"`
}

type Result struct {
	Status              string        `json:"status"`
	RAGExternalResponse *RAGResponse  `json:"rag_response,omitempty"`
	IngestResult        *IngestResult `json:"ingest_result,omitempty"`
	QuizId              string        `json:"quiz_id,omitempty"`
}

type InitJobResponse struct {
	Id         string `json:"id"`
	StatusURL  string `json:"status_url"`
	DocumentId string `json:"document_id,omitempty"`
	QuizId     string `json:"quiz_id,omitempty"`
}

// requests---------------------

type ChatRequest struct {
	Message    string `json:"message" validate:"required"`
	ChatID     string `json:"chatID,omitempty"`
	DocumentID string `json:"documentID,omitempty"` //when set, answers are grounded in that document's chunks
}

type JobStatusRequest struct {
	JobId string `json:"job_id" validate:"required"`
}

type IngestDocumentRequest struct {
	DocumentName string `json:"document_name" validate:"required"`
}

type QuizGenerateRequest struct {
	DocumentID   string `json:"document_id" validate:"required"`
	NumQuestions int    `json:"num_questions,omitempty"`
}

type QuizSubmitRequest struct {
	Answers map[string]string `json:"answers" validate:"required"` //question number (1-based) -> chosen label
}

// QuizQuestion is the client-facing question shape; the correct answer
// stays server-side until submission.
type QuizQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type QuizResponse struct {
	QuizId     string         `json:"quiz_id"`
	DocumentId string         `json:"document_id"`
	Questions  []QuizQuestion `json:"questions"`
}

type QuizScoreResponse struct {
	QuizId string `json:"quiz_id"`
	Score  int    `json:"score"`
	Total  int    `json:"total"`
}
