package document

import (
	"fmt"
	"strings"
)

const (
	// DefaultTitle is the placeholder title of a fresh document.
	DefaultTitle = "Untitled Form"
	// SeedLabel labels the question every default document starts with.
	SeedLabel = "Name"

	maxIDAttempts = 8
)

// Question is one input definition within a form.
type Question struct {
	ID       string       `json:"id" yaml:"id"`
	Type     QuestionType `json:"type" yaml:"type"`
	Label    string       `json:"label" yaml:"label"`
	Required bool         `json:"required" yaml:"required"`
	Options  []string     `json:"options" yaml:"options"`
}

// Clone returns a copy that shares no slices with q.
func (q Question) Clone() Question {
	out := q
	out.Options = append([]string{}, q.Options...)
	return out
}

// QuestionPatch lists the attributes UpdateQuestion may overwrite. Nil
// pointers (and a nil Options slice) mean "leave unchanged"; pass an empty,
// non-nil slice to clear the options.
type QuestionPatch struct {
	Label    *string       `json:"label,omitempty" yaml:"label,omitempty"`
	Required *bool         `json:"required,omitempty" yaml:"required,omitempty"`
	Type     *QuestionType `json:"type,omitempty" yaml:"type,omitempty"`
	Options  []string      `json:"options,omitempty" yaml:"options,omitempty"`
}

// Empty reports whether the patch carries no attribute.
func (p QuestionPatch) Empty() bool {
	return p.Label == nil && p.Required == nil && p.Type == nil && p.Options == nil
}

// Document is a form under construction.
type Document struct {
	Title     string     `json:"title" yaml:"title"`
	Questions []Question `json:"questions" yaml:"questions"`

	ids IDGenerator
}

// Option configures a Document at construction time.
type Option func(*Document)

// WithIDGenerator overrides the id source used by AddQuestion.
func WithIDGenerator(gen IDGenerator) Option {
	return func(d *Document) {
		if gen != nil {
			d.ids = gen
		}
	}
}

// WithTitle replaces the placeholder title.
func WithTitle(title string) Option {
	return func(d *Document) {
		d.Title = title
	}
}

// NewDefault returns a document titled DefaultTitle holding one required
// text question labelled SeedLabel.
func NewDefault(options ...Option) *Document {
	doc := &Document{Title: DefaultTitle}
	for _, opt := range options {
		if opt != nil {
			opt(doc)
		}
	}
	doc.Questions = []Question{{
		ID:       doc.generator().NewID(),
		Type:     QuestionTypeText,
		Label:    SeedLabel,
		Required: true,
		Options:  []string{},
	}}
	return doc
}

// SetIDGenerator swaps the id source. Decoded documents have none until a
// loader assigns one, and fall back to UUIDs.
func (d *Document) SetIDGenerator(gen IDGenerator) {
	d.ids = gen
}

func (d *Document) generator() IDGenerator {
	if d.ids == nil {
		d.ids = UUIDs{}
	}
	return d.ids
}

// Len returns the number of questions.
func (d *Document) Len() int {
	return len(d.Questions)
}

// Index returns the position of the question with the given id or -1.
func (d *Document) Index(id string) int {
	for idx := range d.Questions {
		if d.Questions[idx].ID == id {
			return idx
		}
	}
	return -1
}

// Question looks up a question by id and returns a copy.
func (d *Document) Question(id string) (Question, bool) {
	idx := d.Index(id)
	if idx < 0 {
		return Question{}, false
	}
	return d.Questions[idx].Clone(), true
}

// AddQuestion appends a question of type t labelled "Question {n}" where n is
// the resulting question count. Choice types receive the default options.
func (d *Document) AddQuestion(t QuestionType) (Question, error) {
	if !t.Valid() {
		return Question{}, fmt.Errorf("%w: %q", ErrInvalidQuestionType, string(t))
	}

	id, err := d.freshID()
	if err != nil {
		return Question{}, err
	}

	q := Question{
		ID:       id,
		Type:     t,
		Label:    fmt.Sprintf("Question %d", len(d.Questions)+1),
		Required: false,
		Options:  []string{},
	}
	if t.HasOptions() {
		q.Options = DefaultOptions()
	}

	d.Questions = append(d.Questions, q)
	return q.Clone(), nil
}

func (d *Document) freshID() (string, error) {
	gen := d.generator()
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := strings.TrimSpace(gen.NewID())
		if id != "" && d.Index(id) < 0 {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: generator kept returning used ids", ErrDuplicateID)
}

// UpdateQuestion merges patch onto the question with the given id. It
// reports whether a question was changed; an unknown id, or a patch naming a
// type outside the enumeration, leaves the document untouched.
//
// Options follow the resulting type: a non-choice question always ends with
// no options, and a question switched to a choice type without any options
// receives the defaults.
func (d *Document) UpdateQuestion(id string, patch QuestionPatch) bool {
	idx := d.Index(id)
	if idx < 0 {
		return false
	}
	if patch.Type != nil && !patch.Type.Valid() {
		return false
	}

	q := &d.Questions[idx]
	prev := q.Type
	if patch.Label != nil {
		q.Label = *patch.Label
	}
	if patch.Required != nil {
		q.Required = *patch.Required
	}
	if patch.Type != nil {
		q.Type = *patch.Type
	}
	if patch.Options != nil {
		q.Options = append([]string{}, patch.Options...)
	}
	switch {
	case !q.Type.HasOptions():
		q.Options = []string{}
	case !prev.HasOptions() && len(q.Options) == 0:
		q.Options = DefaultOptions()
	}
	return true
}

// UpdateQuestionStrict behaves like UpdateQuestion but reports a missing id
// as ErrQuestionNotFound, a bad type as ErrInvalidQuestionType and options
// supplied for a non-choice question as ErrOptionsNotAllowed.
func (d *Document) UpdateQuestionStrict(id string, patch QuestionPatch) error {
	idx := d.Index(id)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrQuestionNotFound, id)
	}
	target := d.Questions[idx].Type
	if patch.Type != nil {
		if !patch.Type.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidQuestionType, string(*patch.Type))
		}
		target = *patch.Type
	}
	if len(patch.Options) > 0 && !target.HasOptions() {
		return fmt.Errorf("%w: %q is a %s question", ErrOptionsNotAllowed, id, target)
	}
	d.UpdateQuestion(id, patch)
	return nil
}

// DeleteQuestion removes the question with the given id, keeping the
// relative order of the others. It reports whether anything was removed.
func (d *Document) DeleteQuestion(id string) bool {
	idx := d.Index(id)
	if idx < 0 {
		return false
	}
	d.Questions = append(d.Questions[:idx:idx], d.Questions[idx+1:]...)
	return true
}

// DeleteQuestionStrict reports a missing id as ErrQuestionNotFound.
func (d *Document) DeleteQuestionStrict(id string) error {
	if !d.DeleteQuestion(id) {
		return fmt.Errorf("%w: %q", ErrQuestionNotFound, id)
	}
	return nil
}

// MoveQuestion relocates the question with the given id to position to,
// clamped to the list bounds. Other questions keep their relative order.
func (d *Document) MoveQuestion(id string, to int) bool {
	from := d.Index(id)
	if from < 0 {
		return false
	}
	if to < 0 {
		to = 0
	}
	if last := len(d.Questions) - 1; to > last {
		to = last
	}
	if from == to {
		return true
	}

	q := d.Questions[from]
	if from < to {
		copy(d.Questions[from:to], d.Questions[from+1:to+1])
	} else {
		copy(d.Questions[to+1:from+1], d.Questions[to:from])
	}
	d.Questions[to] = q
	return true
}

// Clone returns a deep copy sharing the id generator.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := &Document{Title: d.Title, ids: d.ids}
	out.Questions = make([]Question, len(d.Questions))
	for idx, q := range d.Questions {
		out.Questions[idx] = q.Clone()
	}
	return out
}

// Validate checks the invariants a document loaded from outside must hold:
// non-empty unique ids, known question types and no options on non-choice
// questions.
func (d *Document) Validate() error {
	if d == nil {
		return fmt.Errorf("document: nil document")
	}
	seen := make(map[string]struct{}, len(d.Questions))
	for idx, q := range d.Questions {
		if strings.TrimSpace(q.ID) == "" {
			return fmt.Errorf("document: question %d has an empty id", idx)
		}
		if _, dup := seen[q.ID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateID, q.ID)
		}
		seen[q.ID] = struct{}{}
		if !q.Type.Valid() {
			return fmt.Errorf("%w: question %q has type %q", ErrInvalidQuestionType, q.ID, string(q.Type))
		}
		if len(q.Options) > 0 && !q.Type.HasOptions() {
			return fmt.Errorf("%w: question %q is a %s question", ErrOptionsNotAllowed, q.ID, q.Type)
		}
	}
	return nil
}
