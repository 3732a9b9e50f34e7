package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/denisAlshanov/learnoverse/internal/config"
	"github.com/denisAlshanov/learnoverse/internal/models"
)

type MongoDB struct {
	client          *mongo.Client
	database        *mongo.Database
	videos          *mongo.Collection
	useTransactions bool
	now             func() time.Time
}

var _ VideoStore = (*MongoDB)(nil)

func NewMongoDB(cfg *config.MongoDBConfig) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetTimeout(cfg.Timeout)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(cfg.Database)

	mongodb := &MongoDB{
		client:          client,
		database:        db,
		videos:          db.Collection(cfg.Collection),
		useTransactions: cfg.UseTransactions,
		now:             time.Now,
	}

	if err := mongodb.createIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return mongodb, nil
}

func (m *MongoDB) createIndexes(ctx context.Context) error {
	videoIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "videoId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "createdAt", Value: 1}},
		},
	}

	if _, err := m.videos.Indexes().CreateMany(ctx, videoIndexes); err != nil {
		return fmt.Errorf("failed to create videos indexes: %w", err)
	}

	return nil
}

func (m *MongoDB) ListVideoIDs(ctx context.Context) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.D{{Key: "videoId", Value: 1}, {Key: "_id", Value: 0}}).
		SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := m.videos.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query videos: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.VideoRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode videos: %w", err)
	}

	ids := make([]string, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.VideoID)
	}
	return ids, nil
}

func (m *MongoDB) VideoExists(ctx context.Context, videoID string) (bool, error) {
	videoID, err := normalizeVideoID(videoID)
	if err != nil {
		return false, nil
	}

	opts := options.FindOne().SetProjection(bson.D{{Key: "_id", Value: 1}})
	err = m.videos.FindOne(ctx, bson.D{{Key: "videoId", Value: videoID}}, opts).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up video %s: %w", videoID, err)
	}
	return true, nil
}

// AddVideo relies on the unique videoId index, so concurrent adds of the same
// ID resolve to exactly one winner.
func (m *MongoDB) AddVideo(ctx context.Context, videoID string) (*models.VideoRecord, error) {
	videoID, err := normalizeVideoID(videoID)
	if err != nil {
		return nil, err
	}

	record := &models.VideoRecord{
		VideoID:   videoID,
		CreatedAt: m.now().UTC().Truncate(time.Millisecond),
	}

	if _, err := m.videos.InsertOne(ctx, record); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrVideoExists
		}
		return nil, fmt.Errorf("failed to insert video %s: %w", videoID, err)
	}

	return record, nil
}

func (m *MongoDB) SeedVideos(ctx context.Context, videoIDs []string) (int, error) {
	ids, err := uniqueVideoIDs(videoIDs)
	if err != nil {
		return 0, err
	}

	if !m.useTransactions {
		return m.replaceVideos(ctx, ids)
	}

	var inserted int
	err = m.WithTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		n, err := m.replaceVideos(sessCtx, ids)
		inserted = n
		return err
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func (m *MongoDB) replaceVideos(ctx context.Context, ids []string) (int, error) {
	if _, err := m.videos.DeleteMany(ctx, bson.D{}); err != nil {
		return 0, fmt.Errorf("failed to clear videos: %w", err)
	}

	if len(ids) == 0 {
		return 0, nil
	}

	createdAt := m.now().UTC().Truncate(time.Millisecond)
	docs := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		docs = append(docs, models.VideoRecord{VideoID: id, CreatedAt: createdAt})
	}

	result, err := m.videos.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("failed to insert videos: %w", err)
	}
	return len(result.InsertedIDs), nil
}

func (m *MongoDB) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *MongoDB) WithTransaction(ctx context.Context, fn func(sessCtx mongo.SessionContext) error) error {
	session, err := m.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	return mongo.WithSession(ctx, session, func(sessCtx mongo.SessionContext) error {
		_, err := session.WithTransaction(sessCtx, func(sessCtx mongo.SessionContext) (interface{}, error) {
			return nil, fn(sessCtx)
		})
		return err
	})
}

func (m *MongoDB) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return m.client.Ping(ctx, readpref.Primary())
}
