package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/denisAlshanov/learnoverse/internal/config"
	"github.com/denisAlshanov/learnoverse/internal/models"
)

// maxTransactionWrites is Firestore's per-commit mutation limit.
const maxTransactionWrites = 500

// FirestoreDB stores one document per video, keyed by the video ID, so
// document identity doubles as the uniqueness constraint.
type FirestoreDB struct {
	client *firestore.Client
	videos *firestore.CollectionRef
	now    func() time.Time
}

var _ VideoStore = (*FirestoreDB)(nil)

// NewFirestoreDB honors FIRESTORE_EMULATOR_HOST through the client library.
func NewFirestoreDB(ctx context.Context, cfg *config.FirestoreConfig) (*FirestoreDB, error) {
	client, err := firestore.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}

	return &FirestoreDB{
		client: client,
		videos: client.Collection(cfg.Collection),
		now:    time.Now,
	}, nil
}

func (f *FirestoreDB) ListVideoIDs(ctx context.Context) ([]string, error) {
	iter := f.videos.OrderBy("createdAt", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var ids []string
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query videos: %w", err)
		}

		var record models.VideoRecord
		if err := snap.DataTo(&record); err != nil {
			return nil, fmt.Errorf("failed to decode video %s: %w", snap.Ref.ID, err)
		}
		ids = append(ids, record.VideoID)
	}

	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (f *FirestoreDB) VideoExists(ctx context.Context, videoID string) (bool, error) {
	videoID, err := normalizeVideoID(videoID)
	if err != nil {
		return false, nil
	}

	_, err = f.videos.Doc(videoID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up video %s: %w", videoID, err)
	}
	return true, nil
}

func (f *FirestoreDB) AddVideo(ctx context.Context, videoID string) (*models.VideoRecord, error) {
	videoID, err := normalizeVideoID(videoID)
	if err != nil {
		return nil, err
	}

	record := &models.VideoRecord{
		VideoID:   videoID,
		CreatedAt: f.now().UTC(),
	}

	if _, err := f.videos.Doc(videoID).Create(ctx, record); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil, ErrVideoExists
		}
		return nil, fmt.Errorf("failed to insert video %s: %w", videoID, err)
	}

	return record, nil
}

// SeedVideos replaces the collection inside a single transaction. IDs kept
// across the reset are overwritten rather than deleted and recreated.
// Deletes plus writes must fit in one commit, so a seed is bounded by
// maxTransactionWrites. Each record gets createdAt one millisecond after the
// previous one so ListVideoIDs returns the seed order.
func (f *FirestoreDB) SeedVideos(ctx context.Context, videoIDs []string) (int, error) {
	ids, err := uniqueVideoIDs(videoIDs)
	if err != nil {
		return 0, err
	}

	keep := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		keep[id] = struct{}{}
	}

	createdAt := f.now().UTC().Truncate(time.Millisecond)
	err = f.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		existing, err := tx.Documents(f.videos).GetAll()
		if err != nil {
			return fmt.Errorf("failed to read videos: %w", err)
		}

		var stale []*firestore.DocumentRef
		for _, snap := range existing {
			if _, ok := keep[snap.Ref.ID]; !ok {
				stale = append(stale, snap.Ref)
			}
		}
		if writes := len(stale) + len(ids); writes > maxTransactionWrites {
			return fmt.Errorf("seed needs %d writes, more than the %d allowed in one transaction", writes, maxTransactionWrites)
		}

		for _, ref := range stale {
			if err := tx.Delete(ref); err != nil {
				return fmt.Errorf("failed to delete video %s: %w", ref.ID, err)
			}
		}

		for i, id := range ids {
			record := models.VideoRecord{
				VideoID:   id,
				CreatedAt: createdAt.Add(time.Duration(i) * time.Millisecond),
			}
			if err := tx.Set(f.videos.Doc(id), record); err != nil {
				return fmt.Errorf("failed to write video %s: %w", id, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return len(ids), nil
}

func (f *FirestoreDB) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	iter := f.videos.Limit(1).Documents(ctx)
	defer iter.Stop()

	if _, err := iter.Next(); err != nil && !errors.Is(err, iterator.Done) {
		return err
	}
	return nil
}

func (f *FirestoreDB) Close(ctx context.Context) error {
	return f.client.Close()
}
