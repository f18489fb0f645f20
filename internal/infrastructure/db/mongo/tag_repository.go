package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stackit-hq/stackit-api/internal/core/domain"
)

const tagsCollection = "tags"

// TagRepository implements ports.TagRepository on MongoDB. The unique index
// on name closes the create-if-absent race between concurrent submissions.
type TagRepository struct {
	coll *mongo.Collection
}

func NewTagRepository(db *mongo.Database) *TagRepository {
	return &TagRepository{coll: db.Collection(tagsCollection)}
}

type mongoTag struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}

func (r *TagRepository) FindByName(ctx context.Context, name string) (*domain.Tag, error) {
	var mt mongoTag
	if err := r.coll.FindOne(ctx, bson.M{"name": name}).Decode(&mt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTagNotFound
		}
		return nil, fmt.Errorf("find tag: %w", err)
	}
	return &domain.Tag{ID: mt.ID.Hex(), Name: mt.Name}, nil
}

func (r *TagRepository) Create(ctx context.Context, name string) (*domain.Tag, error) {
	res, err := r.coll.InsertOne(ctx, mongoTag{Name: name})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrTagExists
		}
		return nil, fmt.Errorf("insert tag: %w", err)
	}
	return &domain.Tag{ID: res.InsertedID.(primitive.ObjectID).Hex(), Name: name}, nil
}

// NamesByID resolves tag ids to names. Unknown or malformed ids are left out
// of the result; callers fall back to the raw id string.
func (r *TagRepository) NamesByID(ctx context.Context, ids []string) (map[string]string, error) {
	lookup := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return lookup, nil
	}

	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}

	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("find tags: %w", err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var mt mongoTag
		if err := cur.Decode(&mt); err != nil {
			return nil, fmt.Errorf("decode tag: %w", err)
		}
		lookup[mt.ID.Hex()] = mt.Name
	}
	return lookup, cur.Err()
}

func (r *TagRepository) List(ctx context.Context) ([]domain.Tag, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer cur.Close(ctx)

	var tags []domain.Tag
	for cur.Next(ctx) {
		var mt mongoTag
		if err := cur.Decode(&mt); err != nil {
			return nil, fmt.Errorf("decode tag: %w", err)
		}
		tags = append(tags, domain.Tag{ID: mt.ID.Hex(), Name: mt.Name})
	}
	return tags, cur.Err()
}

// EnsureIndexes creates the unique name index.
func (r *TagRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
