package document

import "errors"

var (
	// ErrInvalidQuestionType is returned when a type outside the fixed
	// enumeration is requested.
	ErrInvalidQuestionType = errors.New("document: invalid question type")
	// ErrQuestionNotFound is only returned by the strict update/delete
	// variants; the default operations treat a missing id as a no-op.
	ErrQuestionNotFound = errors.New("document: question not found")
	// ErrDuplicateID signals a document whose questions share an id.
	ErrDuplicateID = errors.New("document: duplicate question id")
	// ErrOptionsNotAllowed flags options on a question whose type has none.
	ErrOptionsNotAllowed = errors.New("document: options not allowed for question type")
)
