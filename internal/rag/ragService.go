package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/akurra/studybuddy/internal/config"
	"github.com/akurra/studybuddy/internal/domain/chatModel"
	"github.com/akurra/studybuddy/internal/domain/commonModels"
	"github.com/akurra/studybuddy/internal/domain/jobModel"
	"github.com/akurra/studybuddy/internal/metrics"
	"github.com/akurra/studybuddy/internal/rag/chunker"
	"github.com/akurra/studybuddy/internal/rag/embedding"
	"github.com/akurra/studybuddy/internal/rag/extract"
	"github.com/akurra/studybuddy/internal/rag/llm"
	"github.com/akurra/studybuddy/internal/rag/vectorindex"
	"github.com/akurra/studybuddy/pkg/logger_i"
)

// ErrEmptyQuestion is a caller bug, not a degraded input: it fails the
// job loudly instead of being embedded and searched.
var ErrEmptyQuestion = errors.New("question must not be empty")

// Service is the public contract the worker calls; everything below it
// (extractor, embedder, index, stores, llm) stays private to this
// package so the worker never couples to a specific pipeline stage.
type Service interface {
	ProcessRequest(ctx context.Context, job jobModel.Job) jobModel.Job
	IngestDocument(ctx context.Context, job jobModel.Job) jobModel.Job
}

type service struct {
	extractor   *extract.Extractor
	embedder    embedding.Embedder
	llmProvider llm.Provider
	chunkStore  commonModels.ChunkStore
	turnStore   chatModel.TurnStore
	logger      *logger_i.Logger
}

func NewService(ex *extract.Extractor, em embedding.Embedder, provider llm.Provider,
	chunks commonModels.ChunkStore, turns chatModel.TurnStore) Service {
	return &service{
		extractor:   ex,
		embedder:    em,
		llmProvider: provider,
		chunkStore:  chunks,
		turnStore:   turns,
		logger:      logger_i.NewLogger("RAG Service"),
	}
}

// ProcessRequest answers one question. With stored chunks it runs the
// full retrieval path: fresh index over the document's chunk/embedding
// pairs, question embedded with the same embedder, top-k by ascending
// distance, prompt assembled from memory + retrieved context +
// question. With no document (or zero chunks) retrieval is skipped
// entirely and the prompt carries memory only. The question/answer
// turn pair is recorded only after generation succeeds.
func (s *service) ProcessRequest(ctx context.Context, jobt jobModel.Job) jobModel.Job {
	inMethodLogger := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "JobId", jobt.Id)

	processContext, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	jobt.CurrentStep = jobModel.RAGCall

	question := strings.TrimSpace(jobt.JobPayload.Question)
	if question == "" {
		return s.jobError(jobt, ErrEmptyQuestion, "EMPTY_QUESTION", false)
	}

	// Conversation memory window (read-time slice, store keeps all)
	transcript, err := s.executeMemoryStep(processContext, inMethodLogger, &jobt)
	if err != nil {
		return s.jobError(jobt, err, "MEMORY_FAILURE", true)
	}

	chunks, err := s.loadChunks(processContext, inMethodLogger, &jobt)
	if err != nil {
		return s.jobError(jobt, err, "CHUNK_STORE_FAILURE", true)
	}

	var prompt string
	if len(chunks) == 0 {
		// no-document mode: open-domain chat, no index is built
		inMethodLogger.Debug("No stored chunks, answering from memory only")
		prompt = BuildOpenPrompt(transcript, question)
	} else {
		queryVector, err := s.executeEmbeddingStep(processContext, inMethodLogger, &jobt, question)
		if err != nil {
			return s.jobError(jobt, err, "EMBEDDING_FAILURE", true)
		}

		hits, err := s.executeRetrievalStep(processContext, inMethodLogger, &jobt, chunks, queryVector)
		if err != nil {
			// dimension mismatches between stored and query vectors are
			// programming errors, surfaced, never papered over
			return s.jobError(jobt, err, "RETRIEVAL_FAILURE", false)
		}

		retrieved := make([]string, 0, len(hits))
		sources := make([]string, 0, len(hits))
		for _, h := range hits {
			retrieved = append(retrieved, h.Payload)
			sources = append(sources, chunkSource(chunks, h.Ord))
		}
		jobt.JobPayload.RetrievedContext = strings.Join(retrieved, "\n")
		jobt.JobPayload.Sources = sources
		prompt = BuildRAGPrompt(transcript, jobt.JobPayload.RetrievedContext, question)
	}

	answer, err := s.executeLLMStep(processContext, inMethodLogger, &jobt, prompt)
	if err != nil {
		// no turn is recorded on failure: memory replay assumes paired turns
		return s.jobError(jobt, err, "LLM_GENERATION_FAILURE", true)
	}

	s.recordTurns(ctx, inMethodLogger, jobt.ChatId, question, answer)

	return returnOutput(jobt, answer)
}

// IngestDocument runs extract -> chunk -> embed -> persist and reports
// the chunk count back on the payload.
func (s *service) IngestDocument(ctx context.Context, jobt jobModel.Job) jobModel.Job {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("Document_ingestion", time.Since(start)) }()

	inMethodLogger := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "JobId", jobt.Id)
	jobt.CurrentStep = jobModel.IngestProcessing

	result, err := s.extractor.Extract(jobt.JobPayload.IngestURL)
	if errors.Is(err, extract.ErrUnsupportedFormat) {
		return s.jobError(jobt, err, "UNSUPPORTED_FORMAT", false)
	}
	if strings.TrimSpace(result.Text) == "" {
		// extraction swallowed its failure; nothing retrievable came out
		return s.jobError(jobt, errors.New("no text extracted"), "EMPTY_EXTRACTION", false)
	}

	texts, err := chunker.Split(result.Text, config.ChunkSizeWords)
	if err != nil {
		return s.jobError(jobt, err, "CHUNKING_FAILURE", false)
	}
	inMethodLogger.Debug("Chunked document", "chunks", len(texts))

	jobt.CurrentStep = jobModel.EmbeddingAPICall
	vectors, err := s.embedder.BatchEmbedding(ctx, texts)
	if err != nil {
		return s.jobError(jobt, err, "EMBEDDING_FAILURE", true)
	}
	if len(vectors) != len(texts) {
		return s.jobError(jobt, errors.New("embedder returned wrong vector count"), "EMBEDDING_FAILURE", true)
	}
	for i, v := range vectors {
		if len(v) != s.embedder.Dimension() {
			return s.jobError(jobt,
				fmt.Errorf("vector %d has dimension %d, embedder promises %d", i, len(v), s.embedder.Dimension()),
				"EMBEDDING_FAILURE", true)
		}
	}

	docChunks := make([]commonModels.DocChunk, len(texts))
	for i := range texts {
		docChunks[i] = commonModels.DocChunk{
			DocumentId: jobt.JobPayload.DocumentId,
			Index:      i,
			Text:       texts[i],
			Embedding:  vectors[i],
		}
	}

	if err := s.chunkStore.SaveChunks(ctx, jobt.JobPayload.DocumentId, docChunks); err != nil {
		return s.jobError(jobt, err, "CHUNK_STORE_FAILURE", true)
	}

	jobt.JobPayload.ChunksCreated = len(docChunks)
	jobt.Status = jobModel.JobStatusComplete
	jobt.CurrentStep = jobModel.Complete
	inMethodLogger.Info("Document ingested", "documentId", jobt.JobPayload.DocumentId, "chunks", len(docChunks))
	return jobt
}

// buildIndexFromChunks rebuilds the per-request index from exactly what
// is stored for the document right now; nothing is cached across calls.
func buildIndexFromChunks(chunks []commonModels.DocChunk) (*vectorindex.FlatIndex, error) {
	idx, err := vectorindex.New(len(chunks[0].Embedding))
	if err != nil {
		return nil, err
	}
	for _, c := range chunks {
		if err := idx.Add(c.Embedding, c.Text); err != nil {
			return nil, err
		}
	}
	return idx, nil
}
