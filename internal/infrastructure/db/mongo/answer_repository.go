package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stackit-hq/stackit-api/internal/core/domain"
)

const answersCollection = "answers"

// AnswerRepository implements ports.AnswerRepository on MongoDB. Answers are
// a flat collection keyed by question_id rather than true sub-documents.
type AnswerRepository struct {
	coll *mongo.Collection
}

func NewAnswerRepository(db *mongo.Database) *AnswerRepository {
	return &AnswerRepository{coll: db.Collection(answersCollection)}
}

type mongoAnswer struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	QuestionID string             `bson:"question_id"`
	Content    string             `bson:"content"`
	Username   string             `bson:"username"`
	Votes      int                `bson:"votes"`
	IsAccepted bool               `bson:"is_accepted"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func (r *AnswerRepository) Create(ctx context.Context, a *domain.Answer) (string, error) {
	doc := mongoAnswer{
		QuestionID: a.QuestionID,
		Content:    a.Content,
		Username:   a.Username,
		Votes:      a.Votes,
		IsAccepted: a.IsAccepted,
		CreatedAt:  a.CreatedAt.UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert answer: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *AnswerRepository) FindByID(ctx context.Context, id string) (*domain.Answer, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAnswerNotFound
	}

	var ma mongoAnswer
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ma); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAnswerNotFound
		}
		return nil, fmt.Errorf("find answer: %w", err)
	}
	return ma.toDomain(), nil
}

func (r *AnswerRepository) ListByQuestion(ctx context.Context, questionID string) ([]*domain.Answer, error) {
	cur, err := r.coll.Find(
		ctx,
		bson.M{"question_id": questionID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	defer cur.Close(ctx)

	var answers []*domain.Answer
	for cur.Next(ctx) {
		var ma mongoAnswer
		if err := cur.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode answer: %w", err)
		}
		answers = append(answers, ma.toDomain())
	}
	return answers, cur.Err()
}

// CountsByQuestion aggregates answer counts per question for the feed.
func (r *AnswerRepository) CountsByQuestion(ctx context.Context) (map[string]int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$question_id", "count": bson.M{"$sum": 1}}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("count answers: %w", err)
	}
	defer cur.Close(ctx)

	counts := make(map[string]int)
	for cur.Next(ctx) {
		var row struct {
			QuestionID string `bson:"_id"`
			Count      int    `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode answer count: %w", err)
		}
		counts[row.QuestionID] = row.Count
	}
	return counts, cur.Err()
}

func (r *AnswerRepository) IncrementVotes(ctx context.Context, id string, delta int) (int, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, domain.ErrAnswerNotFound
	}

	after := options.After
	var ma mongoAnswer
	err = r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$inc": bson.M{"votes": delta}},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&ma)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, domain.ErrAnswerNotFound
		}
		return 0, fmt.Errorf("increment votes: %w", err)
	}
	return ma.Votes, nil
}

// ClearAccepted unsets is_accepted on every answer of the question.
func (r *AnswerRepository) ClearAccepted(ctx context.Context, questionID string) error {
	_, err := r.coll.UpdateMany(
		ctx,
		bson.M{"question_id": questionID},
		bson.M{"$set": bson.M{"is_accepted": false}},
	)
	if err != nil {
		return fmt.Errorf("clear accepted: %w", err)
	}
	return nil
}

// MarkAccepted sets is_accepted on the named answer.
func (r *AnswerRepository) MarkAccepted(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAnswerNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"is_accepted": true}})
	if err != nil {
		return fmt.Errorf("mark accepted: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAnswerNotFound
	}
	return nil
}

// EnsureIndexes creates the question_id index.
func (r *AnswerRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "question_id", Value: 1}},
	})
	return err
}

func (ma *mongoAnswer) toDomain() *domain.Answer {
	return &domain.Answer{
		ID:         ma.ID.Hex(),
		QuestionID: ma.QuestionID,
		Content:    ma.Content,
		Username:   ma.Username,
		Votes:      ma.Votes,
		IsAccepted: ma.IsAccepted,
		CreatedAt:  ma.CreatedAt,
	}
}
