package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/akurra/studybuddy/internal/config"
	"github.com/akurra/studybuddy/internal/data/redisStore"
	"github.com/akurra/studybuddy/internal/data/store"
	"github.com/akurra/studybuddy/internal/domain/quizModel"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestRedisQuizStore_Lifecycle(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	quizStore := store.TestQuizStore(redisStore.NewTestStore(client))

	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "quiz-trace")

	session := quizModel.Session{
		Id:         "quiz_1",
		DocumentId: "doc_1",
		Quiz: quizModel.Quiz{
			Questions: []quizModel.Question{
				{Question: "q", Options: []string{"A) x", "B) y"}, Answer: "A"},
			},
		},
		NumQuestions: 1,
		CreatedAt:    time.Now(),
	}

	t.Run("Session Roundtrip", func(t *testing.T) {
		if err := quizStore.SaveSession(ctx, session); err != nil {
			t.Fatalf("SaveSession failed: %v", err)
		}

		got, found := quizStore.GetSession(ctx, "quiz_1")
		if !found {
			t.Fatal("session not found after save")
		}
		if len(got.Quiz.Questions) != 1 || got.Quiz.Questions[0].Answer != "A" {
			t.Errorf("session mismatch: %+v", got)
		}
	})

	t.Run("Unknown Session", func(t *testing.T) {
		if _, found := quizStore.GetSession(ctx, "ghost"); found {
			t.Error("expected found=false for unknown quiz")
		}
	})

	t.Run("Attempts Accumulate", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			err := quizStore.SaveAttempt(ctx, quizModel.Attempt{
				QuizId:      "quiz_1",
				Answers:     map[string]string{"1": "A"},
				Score:       1,
				Total:       1,
				AttemptedAt: time.Now(),
			})
			if err != nil {
				t.Fatalf("SaveAttempt failed: %v", err)
			}
		}
		if n, _ := mr.List("quizattempts:quiz_1"); len(n) != 2 {
			t.Errorf("got %d recorded attempts, want 2", len(n))
		}
	})
}
