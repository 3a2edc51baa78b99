package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/akurra/studybuddy/internal/adapter"
	"github.com/akurra/studybuddy/internal/api"
	"github.com/akurra/studybuddy/internal/quiz"
)

var quizService quiz.Service

func InitQuizHandler(service quiz.Service) {
	quizService = service
}

// PostQuizHandler godoc
// @Summary      Generate a quiz from an ingested document
// @Description  Queues a quiz-generation job over the document's stored chunks and returns the job and quiz IDs.
// @Tags         Quiz
// @Accept       json
// @Produce      json
// @Param        request  body      api.QuizGenerateRequest  true  "Document ID and optional question count"
// @Success      202      {object}  api.InitJobResponse      "Job successfully created"
// @Failure      400      {object}  api.JobResponse          "Invalid request data"
// @Router       /quiz [post]
func PostQuizHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		var requestData api.QuizGenerateRequest
		defer func(Body io.ReadCloser) {
			if err := Body.Close(); err != nil {
				logRH.Error("Couldn't close the Quiz handler reader :", err)
			}
		}(r.Body)
		if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil || requestData.DocumentID == "" {
			logRH.Warn("Bad Quiz Request: ", "error:", err, "request data:", requestData)
			WriteErrorResponse(w, http.StatusBadRequest, "", "document_id is required")
			return
		}
		processQuizJob(r, w, requestData)
		return
	}
	logRH.Warn("Invalid Context by request ", r.RemoteAddr)
}

// GetQuizHandler godoc
// @Summary      Fetch a generated quiz
// @Description  Returns the quiz questions and options. Correct answers are withheld until submission.
// @Tags         Quiz
// @Produce      json
// @Param        id   path      string  true  "Quiz ID"
// @Success      200  {object}  api.QuizResponse  "The quiz questions"
// @Failure      404  {object}  api.JobResponse   "Quiz not found"
// @Router       /quiz/{id} [get]
func GetQuizHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		quizId := getChiURLParam(r, "id")
		if quizId == "" {
			WriteErrorResponse(w, http.StatusBadRequest, "", "quiz id is required")
			return
		}

		session, found := handlerInstance.service.QuizStore.GetSession(r.Context(), quizId)
		if !found {
			WriteErrorResponse(w, http.StatusNotFound, quizId, "Quiz not found")
			return
		}
		writeJsonResponse(w, http.StatusOK, adapter.ToQuizResponse(session))
	}
}

// PostQuizSubmitHandler godoc
// @Summary      Submit quiz answers
// @Description  Scores the submitted answers against the stored quiz and returns the result.
// @Tags         Quiz
// @Accept       json
// @Produce      json
// @Param        id       path      string                 true  "Quiz ID"
// @Param        request  body      api.QuizSubmitRequest  true  "Answer map, question number to chosen label"
// @Success      200      {object}  api.QuizScoreResponse  "The scored attempt"
// @Failure      404      {object}  api.JobResponse        "Quiz not found"
// @Router       /quiz/{id}/submit [post]
func PostQuizSubmitHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		quizId := getChiURLParam(r, "id")

		var requestData api.QuizSubmitRequest
		defer func(Body io.ReadCloser) {
			if err := Body.Close(); err != nil {
				logRH.Error("Couldn't close the Quiz submit reader :", err)
			}
		}(r.Body)
		if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil || len(requestData.Answers) == 0 {
			WriteErrorResponse(w, http.StatusBadRequest, quizId, "answers are required")
			return
		}

		attempt, err := quizService.ValidateAttempt(r.Context(), quizId, requestData.Answers)
		if err != nil {
			if errors.Is(err, quiz.ErrQuizNotFound) {
				WriteErrorResponse(w, http.StatusNotFound, quizId, "Quiz not found")
				return
			}
			WriteErrorResponse(w, http.StatusInternalServerError, quizId, "Internal Server Error")
			return
		}
		writeJsonResponse(w, http.StatusOK, adapter.ToQuizScoreResponse(attempt))
	}
}
