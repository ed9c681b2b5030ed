package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/moviegram/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/gorm"
)

// QuizRepository stores quiz documents in MongoDB and attempts in PostgreSQL
type QuizRepository interface {
	CreateQuiz(ctx context.Context, quiz *models.Quiz) error
	GetQuizByID(ctx context.Context, id string) (*models.Quiz, error)
	GetQuizzesForMedia(ctx context.Context, mediaID uint) ([]models.Quiz, error)
	SubmitAttempt(ctx context.Context, userID uint, quizID string, answers []int) (*models.QuizAttempt, error)
	GetAttemptsForUser(userID uint) ([]models.QuizAttempt, error)
}

// MongoQuizRepository implements QuizRepository backed by both stores
type MongoQuizRepository struct {
	collection *mongo.Collection
	pg         *gorm.DB
}

// NewMongoQuizRepository creates a new MongoQuizRepository
func NewMongoQuizRepository(db *mongo.Database, pg *gorm.DB) *MongoQuizRepository {
	return &MongoQuizRepository{collection: db.Collection("quizzes"), pg: pg}
}

func (r *MongoQuizRepository) CreateQuiz(ctx context.Context, quiz *models.Quiz) error {
	quiz.ID = primitive.NewObjectID()
	quiz.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, quiz)
	return err
}

func (r *MongoQuizRepository) GetQuizByID(ctx context.Context, id string) (*models.Quiz, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid quiz ID format: %w", err)
	}

	var quiz models.Quiz
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&quiz)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("quiz not found")
		}
		return nil, err
	}
	return &quiz, nil
}

func (r *MongoQuizRepository) GetQuizzesForMedia(ctx context.Context, mediaID uint) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"media_id": mediaID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &quizzes); err != nil {
		return nil, err
	}
	return quizzes, nil
}

// SubmitAttempt scores the answers against the stored quiz and records the attempt
func (r *MongoQuizRepository) SubmitAttempt(ctx context.Context, userID uint, quizID string, answers []int) (*models.QuizAttempt, error) {
	quiz, err := r.GetQuizByID(ctx, quizID)
	if err != nil {
		return nil, err
	}

	attempt := models.QuizAttempt{
		UserID: userID,
		QuizID: quiz.ID.Hex(),
		Score:  quiz.Score(answers),
		Total:  len(quiz.Questions),
	}
	if err := r.pg.Create(&attempt).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *MongoQuizRepository) GetAttemptsForUser(userID uint) ([]models.QuizAttempt, error) {
	var attempts []models.QuizAttempt
	err := r.pg.Where("user_id = ?", userID).
		Order("taken_at DESC").
		Find(&attempts).Error
	return attempts, err
}
