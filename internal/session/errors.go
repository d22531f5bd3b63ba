package session

import "errors"

var (
	// ErrInvalidName is returned when a quiz name is empty.
	ErrInvalidName = errors.New("quiz name cannot be empty")
	// ErrInvalidCount is returned when the question count is not a positive integer.
	ErrInvalidCount = errors.New("invalid number of questions")
	// ErrInvalidQuestion is returned when a question text is empty.
	ErrInvalidQuestion = errors.New("question text cannot be empty")
	// ErrInvalidOptionCount is returned when a question has fewer than two options.
	ErrInvalidOptionCount = errors.New("a question must have at least 2 options")
	// ErrInvalidCorrectOption is returned when the correct option is not one of the options.
	ErrInvalidCorrectOption = errors.New("invalid option selected for the correct answer")
	// ErrNoQuizzesAvailable is returned when there is nothing to play or delete.
	ErrNoQuizzesAvailable = errors.New("no quizzes available")
	// ErrDefaultQuizProtected is returned when deleting the default quiz.
	ErrDefaultQuizProtected = errors.New("the default quiz cannot be deleted")
	// ErrQuizNotFound is returned when no quiz has the requested name.
	ErrQuizNotFound = errors.New("quiz not found")
)
