package quiz

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/akurra/studybuddy/internal/domain/quizModel"
)

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// parseQuizJSON recovers the quiz object from raw model output. Models
// wrap JSON in markdown fences or chat around it often enough that we
// strip fences first and then take the outermost brace span.
func parseQuizJSON(raw string) (quizModel.Quiz, error) {
	cleaned := stripCodeFences(raw)
	match := jsonObjectPattern.FindString(cleaned)
	if match == "" {
		return quizModel.Quiz{}, errors.New("no JSON object in model output")
	}

	var quiz quizModel.Quiz
	if err := json.Unmarshal([]byte(match), &quiz); err != nil {
		return quizModel.Quiz{}, err
	}
	if err := validateQuiz(quiz); err != nil {
		return quizModel.Quiz{}, err
	}
	return quiz, nil
}

func stripCodeFences(raw string) string {
	out := strings.TrimSpace(raw)
	if !strings.HasPrefix(out, "```") {
		return out
	}
	out = strings.TrimPrefix(out, "```json")
	out = strings.TrimPrefix(out, "```")
	out = strings.TrimSuffix(strings.TrimSpace(out), "```")
	return strings.TrimSpace(out)
}

func validateQuiz(quiz quizModel.Quiz) error {
	if len(quiz.Questions) == 0 {
		return errors.New("quiz has no questions")
	}
	for _, q := range quiz.Questions {
		if strings.TrimSpace(q.Question) == "" {
			return errors.New("quiz question with empty text")
		}
		if len(q.Options) < 2 {
			return errors.New("quiz question needs at least two options")
		}
		if !answerMatchesOption(q.Answer, q.Options) {
			return errors.New("quiz answer does not match any option")
		}
	}
	return nil
}

// answerMatchesOption accepts either the bare label ("A") or a full
// option string, compared against the option's leading label.
func answerMatchesOption(answer string, options []string) bool {
	ans := strings.TrimSpace(answer)
	if ans == "" {
		return false
	}
	for _, opt := range options {
		if strings.EqualFold(ans, opt) {
			return true
		}
		label := strings.TrimSpace(strings.SplitN(opt, ")", 2)[0])
		if strings.EqualFold(ans, label) {
			return true
		}
	}
	return false
}
