package rag_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/akurra/studybuddy/internal/config"
	"github.com/akurra/studybuddy/internal/domain/chatModel"
	"github.com/akurra/studybuddy/internal/domain/commonModels"
	"github.com/akurra/studybuddy/internal/domain/jobModel"
	"github.com/akurra/studybuddy/internal/rag"
	"github.com/akurra/studybuddy/internal/rag/extract"
)

type MockEmbedder struct {
	OnGetEmbedding   func(ctx context.Context, query string) ([]float32, error)
	OnBatchEmbedding func(ctx context.Context, chunks []string) ([][]float32, error)
	EmbedCalls       int
}

func (m *MockEmbedder) Dimension() int { return 2 }

func (m *MockEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	m.EmbedCalls++
	if m.OnGetEmbedding != nil {
		return m.OnGetEmbedding(ctx, query)
	}
	return []float32{0, 0}, nil
}

func (m *MockEmbedder) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	if m.OnBatchEmbedding != nil {
		return m.OnBatchEmbedding(ctx, chunks)
	}
	out := make([][]float32, len(chunks))
	for i := range out {
		out[i] = []float32{float32(i), 0}
	}
	return out, nil
}

type MockLLM struct {
	OnGenerate func(ctx context.Context, prompt string) (string, error)
	LastPrompt string
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	m.LastPrompt = prompt
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, prompt)
	}
	return "generated answer", nil
}

type MockChunkStore struct {
	OnGetChunks func(ctx context.Context, documentId string) ([]commonModels.DocChunk, error)
	Saved       map[string][]commonModels.DocChunk
	mu          sync.Mutex
}

func (m *MockChunkStore) SaveChunks(ctx context.Context, documentId string, chunks []commonModels.DocChunk) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Saved == nil {
		m.Saved = make(map[string][]commonModels.DocChunk)
	}
	m.Saved[documentId] = chunks
	return nil
}

func (m *MockChunkStore) GetChunks(ctx context.Context, documentId string) ([]commonModels.DocChunk, error) {
	if m.OnGetChunks != nil {
		return m.OnGetChunks(ctx, documentId)
	}
	return nil, nil
}

func (m *MockChunkStore) DeleteChunks(ctx context.Context, documentId string) error { return nil }

type MockTurnStore struct {
	History  []chatModel.Turn
	Appended []chatModel.Turn
}

func (m *MockTurnStore) ValidateChatId(ctx context.Context, chatId string) bool { return true }
func (m *MockTurnStore) InitNewChat(ctx context.Context, chatId string) error   { return nil }

func (m *MockTurnStore) AppendTurns(ctx context.Context, chatId string, turns []chatModel.Turn) error {
	m.Appended = append(m.Appended, turns...)
	return nil
}

func (m *MockTurnStore) RecentTurns(ctx context.Context, chatId string, window int) ([]chatModel.Turn, error) {
	if len(m.History) > window {
		return m.History[len(m.History)-window:], nil
	}
	return m.History, nil
}

func storedChunks(texts ...string) []commonModels.DocChunk {
	chunks := make([]commonModels.DocChunk, len(texts))
	for i, text := range texts {
		chunks[i] = commonModels.DocChunk{
			DocumentId: "doc-1",
			Index:      i,
			Text:       text,
			Embedding:  []float32{float32(i), 0},
		}
	}
	return chunks
}

func newQueryJob(question string, documentId string) jobModel.Job {
	return jobModel.Job{
		Id:      "test-job",
		ChatId:  "chat-1",
		JobType: jobModel.JobTypeQuery,
		JobPayload: jobModel.JobPayload{
			Question:   question,
			DocumentId: documentId,
		},
	}
}

func TestProcessRequest_RetrievalFlow(t *testing.T) {
	mEmbed := &MockEmbedder{
		OnGetEmbedding: func(ctx context.Context, query string) ([]float32, error) {
			return []float32{0.1, 0}, nil
		},
	}
	mLLM := &MockLLM{}
	mChunks := &MockChunkStore{
		OnGetChunks: func(ctx context.Context, documentId string) ([]commonModels.DocChunk, error) {
			return storedChunks("alpha", "beta", "gamma", "delta"), nil
		},
	}
	mTurns := &MockTurnStore{}

	s := rag.NewService(extract.New(http.DefaultClient), mEmbed, mLLM, mChunks, mTurns)
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")

	result := s.ProcessRequest(ctx, newQueryJob("what is alpha?", "doc-1"))

	if result.Status != jobModel.JobStatusComplete {
		t.Fatalf("Status got %v, want Complete (err: %+v)", result.Status, result.Error)
	}
	if result.JobPayload.Answer != "generated answer" {
		t.Errorf("Answer got %q", result.JobPayload.Answer)
	}
	// top-3 of four chunks, nearest to (0.1, 0) first
	if result.JobPayload.RetrievedContext != "alpha\nbeta\ngamma" {
		t.Errorf("RetrievedContext got %q", result.JobPayload.RetrievedContext)
	}
	if len(result.JobPayload.Sources) != 3 {
		t.Errorf("Sources got %d entries, want 3", len(result.JobPayload.Sources))
	}
	if !strings.Contains(mLLM.LastPrompt, "alpha") || !strings.Contains(mLLM.LastPrompt, "what is alpha?") {
		t.Errorf("prompt missing context or question:\n%s", mLLM.LastPrompt)
	}
	if len(mTurns.Appended) != 2 {
		t.Fatalf("got %d appended turns, want user+assistant pair", len(mTurns.Appended))
	}
	if mTurns.Appended[0].Role != chatModel.RoleUser || mTurns.Appended[1].Role != chatModel.RoleAssistant {
		t.Errorf("turn roles got [%s %s]", mTurns.Appended[0].Role, mTurns.Appended[1].Role)
	}
}

func TestProcessRequest_NoDocumentMode(t *testing.T) {
	mEmbed := &MockEmbedder{}
	mLLM := &MockLLM{}
	mTurns := &MockTurnStore{
		History: []chatModel.Turn{
			{Role: chatModel.RoleUser, Text: "earlier question"},
			{Role: chatModel.RoleAssistant, Text: "earlier answer"},
		},
	}

	s := rag.NewService(extract.New(http.DefaultClient), mEmbed, mLLM, &MockChunkStore{}, mTurns)
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")

	result := s.ProcessRequest(ctx, newQueryJob("open question", ""))

	if result.Status != jobModel.JobStatusComplete {
		t.Fatalf("Status got %v, want Complete (err: %+v)", result.Status, result.Error)
	}
	if mEmbed.EmbedCalls != 0 {
		t.Errorf("no-document mode embedded the question %d times", mEmbed.EmbedCalls)
	}
	if result.JobPayload.RetrievedContext != "" {
		t.Errorf("no-document mode retrieved context %q", result.JobPayload.RetrievedContext)
	}
	if !strings.Contains(mLLM.LastPrompt, "earlier question") {
		t.Errorf("memory transcript missing from prompt:\n%s", mLLM.LastPrompt)
	}
}

func TestProcessRequest_GenerationFailureRecordsNoTurns(t *testing.T) {
	mLLM := &MockLLM{
		OnGenerate: func(ctx context.Context, prompt string) (string, error) {
			return "", errors.New("provider down")
		},
	}
	mTurns := &MockTurnStore{}

	s := rag.NewService(extract.New(http.DefaultClient), &MockEmbedder{}, mLLM, &MockChunkStore{}, mTurns)
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")

	result := s.ProcessRequest(ctx, newQueryJob("a question", ""))

	if result.Status != jobModel.JobStatusError {
		t.Fatalf("Status got %v, want Error", result.Status)
	}
	if !result.Error.Retry {
		t.Error("generation failure should be retryable")
	}
	if len(mTurns.Appended) != 0 {
		t.Errorf("failed generation recorded %d turns, want 0", len(mTurns.Appended))
	}
}

func TestProcessRequest_EmptyQuestion(t *testing.T) {
	s := rag.NewService(extract.New(http.DefaultClient), &MockEmbedder{}, &MockLLM{}, &MockChunkStore{}, &MockTurnStore{})
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")

	result := s.ProcessRequest(ctx, newQueryJob("   ", ""))

	if result.Status != jobModel.JobStatusError {
		t.Fatalf("Status got %v, want Error", result.Status)
	}
	if result.Error.Code != http.StatusBadRequest {
		t.Errorf("Error code got %d, want 400", result.Error.Code)
	}
}

func TestProcessRequest_StoredDimensionMismatchFailsLoudly(t *testing.T) {
	mChunks := &MockChunkStore{
		OnGetChunks: func(ctx context.Context, documentId string) ([]commonModels.DocChunk, error) {
			return []commonModels.DocChunk{
				{DocumentId: "doc-1", Index: 0, Text: "a", Embedding: []float32{1, 2}},
				{DocumentId: "doc-1", Index: 1, Text: "b", Embedding: []float32{1, 2, 3}},
			}, nil
		},
	}

	s := rag.NewService(extract.New(http.DefaultClient), &MockEmbedder{}, &MockLLM{}, mChunks, &MockTurnStore{})
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")

	result := s.ProcessRequest(ctx, newQueryJob("question", "doc-1"))

	if result.Status != jobModel.JobStatusError {
		t.Fatalf("mixed-dimension chunks must fail the job, got %v", result.Status)
	}
}

func TestIngestDocument_Scenarios(t *testing.T) {
	page := "<html><body><p>" + strings.Repeat("word ", 50) + "</p></body></html>"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, page)
	}))
	defer srv.Close()

	deadSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadSrv.Close()

	tests := []struct {
		name           string
		source         string
		expectedStatus jobModel.JobStatus
		expectedChunks int
	}{
		{
			name:           "Web_Page_Success",
			source:         srv.URL,
			expectedStatus: jobModel.JobStatusComplete,
			expectedChunks: 1,
		},
		{
			name:           "Unsupported_Format",
			source:         "notes.txt",
			expectedStatus: jobModel.JobStatusError,
		},
		{
			name:           "Empty_Extraction",
			source:         deadSrv.URL,
			expectedStatus: jobModel.JobStatusError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mChunks := &MockChunkStore{}
			s := rag.NewService(extract.New(http.DefaultClient), &MockEmbedder{}, &MockLLM{}, mChunks, &MockTurnStore{})

			ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "ingest-trace")
			job := jobModel.Job{
				Id:      "ingest-job-1",
				JobType: jobModel.JobTypeIngest,
				JobPayload: jobModel.JobPayload{
					DocumentId: "doc-ingest",
					IngestURL:  tt.source,
				},
			}

			result := s.IngestDocument(ctx, job)

			if result.Status != tt.expectedStatus {
				t.Fatalf("Status got %v, want %v (err: %+v)", result.Status, tt.expectedStatus, result.Error)
			}
			if tt.expectedStatus == jobModel.JobStatusComplete {
				if result.JobPayload.ChunksCreated != tt.expectedChunks {
					t.Errorf("ChunksCreated got %d, want %d", result.JobPayload.ChunksCreated, tt.expectedChunks)
				}
				saved := mChunks.Saved["doc-ingest"]
				if len(saved) != tt.expectedChunks {
					t.Fatalf("stored %d chunks, want %d", len(saved), tt.expectedChunks)
				}
				if saved[0].Index != 0 || len(saved[0].Embedding) == 0 {
					t.Errorf("stored chunk malformed: %+v", saved[0])
				}
			}
		})
	}
}
