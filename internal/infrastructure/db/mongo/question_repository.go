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

const questionsCollection = "questions"

// QuestionRepository implements ports.QuestionRepository on MongoDB.
type QuestionRepository struct {
	coll *mongo.Collection
}

func NewQuestionRepository(db *mongo.Database) *QuestionRepository {
	return &QuestionRepository{coll: db.Collection(questionsCollection)}
}

type mongoQuestion struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	TagIDs      []string           `bson:"tag_ids"`
	FileURLs    []string           `bson:"file_urls"`
	Username    string             `bson:"username"`
	Views       int                `bson:"views"`
	Votes       int                `bson:"votes"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (r *QuestionRepository) Create(ctx context.Context, q *domain.Question) (string, error) {
	doc := mongoQuestion{
		Title:       q.Title,
		Description: q.Description,
		TagIDs:      q.TagIDs,
		FileURLs:    q.FileURLs,
		Username:    q.Username,
		CreatedAt:   q.CreatedAt.UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert question: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *QuestionRepository) FindByID(ctx context.Context, id string) (*domain.Question, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrQuestionNotFound
	}

	var mq mongoQuestion
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mq); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("find question: %w", err)
	}
	return mq.toDomain(), nil
}

func (r *QuestionRepository) List(ctx context.Context) ([]*domain.Question, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer cur.Close(ctx)

	var questions []*domain.Question
	for cur.Next(ctx) {
		var mq mongoQuestion
		if err := cur.Decode(&mq); err != nil {
			return nil, fmt.Errorf("decode question: %w", err)
		}
		questions = append(questions, mq.toDomain())
	}
	return questions, cur.Err()
}

// IncrementVotes atomically applies delta and returns the updated count.
func (r *QuestionRepository) IncrementVotes(ctx context.Context, id string, delta int) (int, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, domain.ErrQuestionNotFound
	}

	after := options.After
	var mq mongoQuestion
	err = r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$inc": bson.M{"votes": delta}},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&mq)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, domain.ErrQuestionNotFound
		}
		return 0, fmt.Errorf("increment votes: %w", err)
	}
	return mq.Votes, nil
}

func (r *QuestionRepository) IncrementViews(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrQuestionNotFound
	}

	_, err = r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"views": 1}})
	if err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	return nil
}

// EnsureIndexes creates the created_at index used by the newest sort.
func (r *QuestionRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	return err
}

func (mq *mongoQuestion) toDomain() *domain.Question {
	return &domain.Question{
		ID:          mq.ID.Hex(),
		Title:       mq.Title,
		Description: mq.Description,
		TagIDs:      mq.TagIDs,
		FileURLs:    mq.FileURLs,
		Username:    mq.Username,
		Views:       mq.Views,
		Votes:       mq.Votes,
		CreatedAt:   mq.CreatedAt,
	}
}
