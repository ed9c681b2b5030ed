package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Quiz documents live in MongoDB; attempts are relational (see QuizAttempt).

type QuizQuestion struct {
	Text    string   `json:"text" bson:"text"`
	Options []string `json:"options" bson:"options"`
	Answer  int      `json:"-" bson:"answer"` // index into Options, never serialized to clients
}

type Quiz struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title     string             `json:"title" bson:"title"`
	MediaID   uint               `json:"media_id" bson:"media_id"`
	Questions []QuizQuestion     `json:"questions" bson:"questions"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// Score counts the answers matching the stored answer indexes. Extra or
// missing answers simply don't score.
func (q *Quiz) Score(answers []int) int {
	score := 0
	for i, question := range q.Questions {
		if i < len(answers) && answers[i] == question.Answer {
			score++
		}
	}
	return score
}

// QuizAttempt records one submission of a quiz by a user (PostgreSQL)
type QuizAttempt struct {
	ID      uint      `json:"id" gorm:"primaryKey"`
	UserID  uint      `json:"user_id" gorm:"index"`
	QuizID  string    `json:"quiz_id" gorm:"index;size:24"`
	Score   int       `json:"score"`
	Total   int       `json:"total"`
	TakenAt time.Time `json:"taken_at" gorm:"autoCreateTime"`
}

type CreateQuizRequest struct {
	Title     string `json:"title" validate:"required"`
	MediaID   uint   `json:"media_id" validate:"required"`
	Questions []struct {
		Text    string   `json:"text" validate:"required"`
		Options []string `json:"options" validate:"required,min=2"`
		Answer  int      `json:"answer" validate:"min=0"`
	} `json:"questions" validate:"required,min=1,dive"`
}

type SubmitQuizRequest struct {
	Answers []int `json:"answers" validate:"required"`
}
