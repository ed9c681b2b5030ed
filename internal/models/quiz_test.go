package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQuizScore(t *testing.T) {
	quiz := Quiz{
		Title: "Clássicos",
		Questions: []QuizQuestion{
			{Text: "Year of release?", Options: []string{"1972", "1974"}, Answer: 0},
			{Text: "Director?", Options: []string{"Coppola", "Scorsese"}, Answer: 0},
			{Text: "Lead actor?", Options: []string{"Pacino", "Brando"}, Answer: 1},
		},
	}

	require.Equal(t, 3, quiz.Score([]int{0, 0, 1}))
	require.Equal(t, 2, quiz.Score([]int{0, 0, 0}))
	require.Equal(t, 0, quiz.Score([]int{1, 1, 0}))

	// Missing answers don't score, extra answers are ignored
	require.Equal(t, 1, quiz.Score([]int{0}))
	require.Equal(t, 3, quiz.Score([]int{0, 0, 1, 0, 0}))
	require.Equal(t, 0, quiz.Score(nil))
}

func TestQuizScoreEmptyQuiz(t *testing.T) {
	quiz := Quiz{}
	require.Equal(t, 0, quiz.Score([]int{0, 1, 2}))
}
