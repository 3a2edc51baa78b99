package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"

	"github.com/akurra/studybuddy/internal/adapter"
	"github.com/akurra/studybuddy/internal/adapter/utils"
	"github.com/akurra/studybuddy/internal/api"
	"github.com/akurra/studybuddy/internal/config"
	"github.com/akurra/studybuddy/internal/domain/jobModel"
)

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but can't send a clean status code now
		logRH.Error("Error encoding response: %v", err)
	}
}

func validateId(id string, traceId string) (result jobModel.Job, isFound bool) {
	if id == "" {
		logRH.Warn("Empty Job ID")
		return jobModel.Job{}, false
	}
	return GetJobStatus(id, traceId)
}

func validateContext(ctx context.Context) bool {
	logRH.With("traceId:", ctx.Value(config.TRACE_ID_KEY))
	if ctx.Err() != nil {
		logRH.Warn("context error", ctx.Err())
		return false
	}

	select {
	case <-ctx.Done():
		logRH.Warn("context cancelled")
		return false
	default:
		return true
	}
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, id string, error string) {
	writeJsonResponse(w, httpCode, adapter.BadRequest(id, error, httpCode))
}

func getTargetDirectory() (string, string) {
	root, err := os.Getwd()
	if err != nil {
		return "", "Storage Error"
	}

	targetDir := filepath.Join(root, "temporary_data")
	if err := os.MkdirAll(targetDir, 0750); err != nil {
		return "", "Storage Error"
	}
	return targetDir, ""
}

func getChiURLParam(r *http.Request, key string) string {
	return utils.GetChiURLParam(r, key)
}

func traceIdFromContext(r *http.Request) string {
	trace, _ := r.Context().Value(config.TRACE_ID_KEY).(string)
	return trace
}

func toAPIResponse(job jobModel.Job) api.JobResponse {
	return adapter.ToAPIResponse(job)
}

func processChatJob(request *http.Request, w http.ResponseWriter, requestData api.ChatRequest) {
	chatID := requestData.ChatID
	isNewChat := false
	if chatID == "" {
		chatID = utils.GetNewUUID()
		logRH.Debug(" New Chat request : ", "chatID:", chatID)
		isNewChat = true
	}

	newJob := newJobData{
		id:         utils.GetNewUUID(),
		chatId:     chatID,
		message:    requestData.Message,
		isNewChat:  isNewChat,
		traceId:    traceIdFromContext(request),
		jobType:    jobModel.JobTypeQuery,
		documentId: requestData.DocumentID,
	}
	finishJobCreation(w, newJob)
}

func processIngestJob(request *http.Request, w http.ResponseWriter, docName string, docPath string) {
	newJob := newJobData{
		id:             utils.GetNewUUID(),
		traceId:        traceIdFromContext(request),
		jobType:        jobModel.JobTypeIngest,
		documentId:     utils.GetNewUUID(), //minted at upload, returned to the client for grounded chat
		documentName:   docName,
		documentSource: docPath,
	}
	finishJobCreation(w, newJob)
}

func processQuizJob(request *http.Request, w http.ResponseWriter, requestData api.QuizGenerateRequest) {
	newJob := newJobData{
		id:           utils.GetNewUUID(),
		traceId:      traceIdFromContext(request),
		jobType:      jobModel.JobTypeQuiz,
		documentId:   requestData.DocumentID,
		quizId:       utils.GetNewUUID(),
		numQuestions: requestData.NumQuestions,
	}
	finishJobCreation(w, newJob)
}

func finishJobCreation(w http.ResponseWriter, newJob newJobData) {
	CreateNewJob(newJob)
	res := adapter.ToInitJobResponse(jobModel.Job{
		Id: newJob.id,
		JobPayload: jobModel.JobPayload{
			DocumentId: newJob.documentId,
			QuizId:     newJob.quizId,
		},
	})
	writeJsonResponse(w, http.StatusAccepted, res)
}
