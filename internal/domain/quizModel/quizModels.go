package quizModel

import (
	"context"
	"time"
)

// Question is one multiple-choice item. Answer holds the option label
// (e.g. "A"), matching what the model is instructed to emit.
type Question struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

type Quiz struct {
	Questions []Question `json:"questions"`
}

type Session struct {
	Id           string    `json:"quiz_id"`
	DocumentId   string    `json:"document_id"`
	Quiz         Quiz      `json:"quiz"`
	NumQuestions int       `json:"num_questions"`
	CreatedAt    time.Time `json:"created_at"`
}

type Attempt struct {
	QuizId      string            `json:"quiz_id"`
	Answers     map[string]string `json:"answers"` //question number (1-based) -> chosen label
	Score       int               `json:"score"`
	Total       int               `json:"total"`
	AttemptedAt time.Time         `json:"attempted_at"`
}

type QuizStore interface {
	SaveSession(ctx context.Context, session Session) error
	GetSession(ctx context.Context, quizId string) (Session, bool)
	SaveAttempt(ctx context.Context, attempt Attempt) error
}
