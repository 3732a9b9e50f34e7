package database

import (
	"context"
	"sync"
	"time"

	"github.com/denisAlshanov/learnoverse/internal/models"
)

// MemoryDB is a process-local VideoStore used for offline demos and tests.
type MemoryDB struct {
	mu      sync.RWMutex
	order   []string
	records map[string]models.VideoRecord
	now     func() time.Time
}

var _ VideoStore = (*MemoryDB)(nil)

func NewMemoryDB() *MemoryDB {
	return &MemoryDB{
		records: make(map[string]models.VideoRecord),
		now:     time.Now,
	}
}

func (m *MemoryDB) ListVideoIDs(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, len(m.order))
	copy(ids, m.order)
	return ids, nil
}

func (m *MemoryDB) VideoExists(ctx context.Context, videoID string) (bool, error) {
	videoID, err := normalizeVideoID(videoID)
	if err != nil {
		return false, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.records[videoID]
	return ok, nil
}

func (m *MemoryDB) AddVideo(ctx context.Context, videoID string) (*models.VideoRecord, error) {
	videoID, err := normalizeVideoID(videoID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[videoID]; ok {
		return nil, ErrVideoExists
	}

	record := models.VideoRecord{VideoID: videoID, CreatedAt: m.now().UTC()}
	m.records[videoID] = record
	m.order = append(m.order, videoID)
	return &record, nil
}

func (m *MemoryDB) SeedVideos(ctx context.Context, videoIDs []string) (int, error) {
	ids, err := uniqueVideoIDs(videoIDs)
	if err != nil {
		return 0, err
	}

	createdAt := m.now().UTC()
	records := make(map[string]models.VideoRecord, len(ids))
	for _, id := range ids {
		records[id] = models.VideoRecord{VideoID: id, CreatedAt: createdAt}
	}

	m.mu.Lock()
	m.records = records
	m.order = ids
	m.mu.Unlock()

	return len(ids), nil
}

func (m *MemoryDB) Ping(ctx context.Context) error {
	return nil
}

func (m *MemoryDB) Close(ctx context.Context) error {
	return nil
}
