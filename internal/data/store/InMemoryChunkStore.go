package store

import (
	"context"
	"sync"

	"github.com/akurra/studybuddy/internal/domain/commonModels"
)

type InMemoryChunkStore struct {
	chunkLock *sync.RWMutex
	chunkMap  map[string][]commonModels.DocChunk
}

func InitInMemoryChunkStore() *InMemoryChunkStore {
	return &InMemoryChunkStore{
		chunkLock: new(sync.RWMutex),
		chunkMap:  make(map[string][]commonModels.DocChunk),
	}
}

func (s *InMemoryChunkStore) SaveChunks(ctx context.Context, documentId string, chunks []commonModels.DocChunk) error {
	s.chunkLock.Lock()
	defer s.chunkLock.Unlock()
	stored := make([]commonModels.DocChunk, len(chunks))
	copy(stored, chunks)
	s.chunkMap[documentId] = stored
	return nil
}

func (s *InMemoryChunkStore) GetChunks(ctx context.Context, documentId string) ([]commonModels.DocChunk, error) {
	s.chunkLock.RLock()
	defer s.chunkLock.RUnlock()
	stored := s.chunkMap[documentId]
	out := make([]commonModels.DocChunk, len(stored))
	copy(out, stored)
	return out, nil
}

func (s *InMemoryChunkStore) DeleteChunks(ctx context.Context, documentId string) error {
	s.chunkLock.Lock()
	defer s.chunkLock.Unlock()
	delete(s.chunkMap, documentId)
	return nil
}
