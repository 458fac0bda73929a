// Package session holds the editing surface: an Editor that owns one form
// document, serialises access to it and reports each add and delete as a
// notice, plus an interactive prompt loop built on the TUI driver.
package session

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/document"
	"github.com/goliatone/go-formbuilder/pkg/notify"
)

// NoticeQuestionDeleted is emitted after a question is removed.
var NoticeQuestionDeleted = notify.Notice{
	Title:       "Question deleted",
	Description: "The question has been removed from your form",
	Variant:     notify.VariantDestructive,
}

// QuestionAddedNotice describes the notice emitted after adding a question of
// type t.
func QuestionAddedNotice(t document.QuestionType) notify.Notice {
	return notify.Notice{
		Title:       "Question added",
		Description: fmt.Sprintf("Added a new %s question", t),
		Variant:     notify.VariantDefault,
	}
}

// Option configures an Editor.
type Option func(*Editor)

// WithNotifier receives add and delete notices.
func WithNotifier(n notify.Notifier) Option {
	return func(e *Editor) {
		if n != nil {
			e.notifier = n
		}
	}
}

// WithLogger attaches a zap logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Editor guards a document with a mutex. Every accessor returns copies so
// callers never alias the live question slice.
type Editor struct {
	mu       sync.RWMutex
	doc      *document.Document
	notifier notify.Notifier
	logger   *zap.Logger
}

// NewEditor wraps doc, or a fresh default document when doc is nil.
func NewEditor(doc *document.Document, opts ...Option) *Editor {
	if doc == nil {
		doc = document.NewDefault()
	}
	e := &Editor{
		doc:      doc,
		notifier: notify.Discard,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

func (e *Editor) Title() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc.Title
}

func (e *Editor) SetTitle(title string) {
	e.mu.Lock()
	e.doc.Title = title
	e.mu.Unlock()
	e.logger.Debug("form title changed", zap.String("title", title))
}

// Questions returns a copy of the questions in display order.
func (e *Editor) Questions() []document.Question {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]document.Question, len(e.doc.Questions))
	for idx, q := range e.doc.Questions {
		out[idx] = q.Clone()
	}
	return out
}

// Question looks up a single question by id.
func (e *Editor) Question(id string) (document.Question, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	q, ok := e.doc.Question(id)
	if !ok {
		return document.Question{}, false
	}
	return q.Clone(), true
}

// AddQuestion appends a question of type t and emits a "Question added"
// notice.
func (e *Editor) AddQuestion(t document.QuestionType) (document.Question, error) {
	e.mu.Lock()
	q, err := e.doc.AddQuestion(t)
	e.mu.Unlock()
	if err != nil {
		return document.Question{}, err
	}

	e.logger.Debug("question added", zap.String("id", q.ID), zap.String("type", string(t)))
	e.notifier.Notify(QuestionAddedNotice(t))
	return q.Clone(), nil
}

// UpdateQuestion applies patch to the question with id and reports whether
// anything changed.
func (e *Editor) UpdateQuestion(id string, patch document.QuestionPatch) bool {
	e.mu.Lock()
	ok := e.doc.UpdateQuestion(id, patch)
	e.mu.Unlock()
	if ok {
		e.logger.Debug("question updated", zap.String("id", id))
	}
	return ok
}

// UpdateQuestionStrict is UpdateQuestion with the document's strict errors:
// ErrQuestionNotFound, ErrInvalidQuestionType or ErrOptionsNotAllowed.
func (e *Editor) UpdateQuestionStrict(id string, patch document.QuestionPatch) error {
	e.mu.Lock()
	err := e.doc.UpdateQuestionStrict(id, patch)
	e.mu.Unlock()
	if err != nil {
		return err
	}
	e.logger.Debug("question updated", zap.String("id", id))
	return nil
}

// DeleteQuestion removes the question with id. The notice is only emitted
// when a question was actually removed.
func (e *Editor) DeleteQuestion(id string) bool {
	e.mu.Lock()
	ok := e.doc.DeleteQuestion(id)
	e.mu.Unlock()
	if !ok {
		return false
	}

	e.logger.Debug("question deleted", zap.String("id", id))
	e.notifier.Notify(NoticeQuestionDeleted)
	return true
}

// MoveQuestion relocates the question with id to the zero-based position to.
func (e *Editor) MoveQuestion(id string, to int) bool {
	e.mu.Lock()
	ok := e.doc.MoveQuestion(id, to)
	e.mu.Unlock()
	if ok {
		e.logger.Debug("question moved", zap.String("id", id), zap.Int("position", to))
	}
	return ok
}

// Snapshot returns a deep copy of the document, suitable for saving or
// rendering while edits continue.
func (e *Editor) Snapshot() *document.Document {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.doc.Clone()
}
