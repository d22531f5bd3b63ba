package console

import (
	"errors"

	"github.com/starquake/quizapp/internal/session"
)

// Message returns the text shown to the user for err.
func Message(err error) string {
	switch {
	case errors.Is(err, session.ErrInvalidName):
		return "Quiz name cannot be empty!"
	case errors.Is(err, session.ErrInvalidCount):
		return "Invalid input! Please enter a valid number."
	case errors.Is(err, session.ErrInvalidQuestion):
		return "Question text cannot be empty."
	case errors.Is(err, session.ErrInvalidOptionCount):
		return "A question must have at least 2 options!"
	case errors.Is(err, session.ErrInvalidCorrectOption):
		return "Invalid option selected for the correct answer."
	case errors.Is(err, session.ErrNoQuizzesAvailable):
		return "No quizzes available!"
	case errors.Is(err, session.ErrDefaultQuizProtected):
		return "The default quiz cannot be deleted!"
	case errors.Is(err, session.ErrQuizNotFound):
		return "Quiz not found."
	default:
		return "Something went wrong: " + err.Error()
	}
}
