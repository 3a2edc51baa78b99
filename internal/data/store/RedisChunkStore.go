package store

import (
	"context"
	"encoding/json"

	"github.com/akurra/studybuddy/internal/config"
	"github.com/akurra/studybuddy/internal/data/redisStore"
	"github.com/akurra/studybuddy/internal/domain/commonModels"
	"github.com/akurra/studybuddy/pkg/logger_i"
)

// RedisChunkStore persists a document's (chunk, embedding) pairs as an
// ordered list keyed by document id. Embeddings ride along as plain
// float arrays in the JSON; chunk order in the list is chunk index
// order, so retrieval gets them back gapless and in position.
type RedisChunkStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisChunkStore(ctx context.Context) *RedisChunkStore {
	inner := redisStore.GetRedisStore(ctx, config.RedisChunkStore)
	if inner == nil {
		return nil
	}
	return &RedisChunkStore{
		store:  inner,
		logger: logger_i.NewLogger("ChunkStore"),
	}
}

func chunksKey(documentId string) string {
	return "chunks:" + documentId
}

// SaveChunks replaces whatever was stored for the document; re-running
// ingestion must not leave stale chunks behind.
func (s *RedisChunkStore) SaveChunks(ctx context.Context, documentId string, chunks []commonModels.DocChunk) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "documentId", documentId)

	if err := s.store.Del(ctx, chunksKey(documentId)); err != nil && !s.store.IsNil(err) {
		log.Error("Error clearing old chunks", "error", err)
		return err
	}
	if len(chunks) == 0 {
		return nil
	}

	values := make([]interface{}, 0, len(chunks))
	for _, c := range chunks {
		data, err := json.Marshal(c)
		if err != nil {
			log.Error("Error marshalling chunk", "index", c.Index, "error", err)
			return err
		}
		values = append(values, data)
	}
	if err := s.store.ListPush(ctx, chunksKey(documentId), values...); err != nil {
		log.Error("Error saving chunks", "error", err)
		return err
	}
	log.Debug("Saved chunks", "count", len(chunks))
	return nil
}

func (s *RedisChunkStore) GetChunks(ctx context.Context, documentId string) ([]commonModels.DocChunk, error) {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "documentId", documentId)

	raw, err := s.store.ListGetAll(ctx, chunksKey(documentId))
	if err != nil {
		if s.store.IsNil(err) {
			return []commonModels.DocChunk{}, nil
		}
		log.Error("Error reading chunks", "error", err)
		return nil, err
	}

	chunks := make([]commonModels.DocChunk, 0, len(raw))
	for _, r := range raw {
		var c commonModels.DocChunk
		if err := json.Unmarshal([]byte(r), &c); err != nil {
			log.Error("Stored chunk is corrupted", "error", err)
			return nil, err
		}
		chunks = append(chunks, c)
	}
	return chunks, nil
}

func (s *RedisChunkStore) DeleteChunks(ctx context.Context, documentId string) error {
	return s.store.Del(ctx, chunksKey(documentId))
}

func TestChunkStore(store *redisStore.Store) *RedisChunkStore {
	return &RedisChunkStore{
		store:  store,
		logger: logger_i.NewLogger("test chunk store"),
	}
}
