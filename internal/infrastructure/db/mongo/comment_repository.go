package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stackit-hq/stackit-api/internal/core/domain"
)

const commentsCollection = "comments"

// CommentRepository implements ports.CommentRepository on MongoDB.
type CommentRepository struct {
	coll *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{coll: db.Collection(commentsCollection)}
}

type mongoComment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	AnswerID  string             `bson:"answer_id"`
	Content   string             `bson:"content"`
	Username  string             `bson:"username"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (r *CommentRepository) Create(ctx context.Context, c *domain.Comment) (string, error) {
	doc := mongoComment{
		AnswerID:  c.AnswerID,
		Content:   c.Content,
		Username:  c.Username,
		CreatedAt: c.CreatedAt.UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert comment: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *CommentRepository) ListByAnswer(ctx context.Context, answerID string) ([]*domain.Comment, error) {
	cur, err := r.coll.Find(
		ctx,
		bson.M{"answer_id": answerID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer cur.Close(ctx)

	var comments []*domain.Comment
	for cur.Next(ctx) {
		var mc mongoComment
		if err := cur.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode comment: %w", err)
		}
		comments = append(comments, &domain.Comment{
			ID:        mc.ID.Hex(),
			AnswerID:  mc.AnswerID,
			Content:   mc.Content,
			Username:  mc.Username,
			CreatedAt: mc.CreatedAt,
		})
	}
	return comments, cur.Err()
}

// EnsureIndexes creates the answer_id index.
func (r *CommentRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "answer_id", Value: 1}},
	})
	return err
}
