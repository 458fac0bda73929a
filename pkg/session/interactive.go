package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/document"
	"github.com/goliatone/go-formbuilder/pkg/renderers/tui"
)

// Action is one entry of the interactive menu.
type Action string

const (
	ActionAdd    Action = "Add question"
	ActionEdit   Action = "Edit question"
	ActionDelete Action = "Delete question"
	ActionMove   Action = "Move question"
	ActionRename Action = "Rename form"
	ActionDone   Action = "Done"
)

// Actions lists the menu in display order.
func Actions() []Action {
	return []Action{ActionAdd, ActionEdit, ActionDelete, ActionMove, ActionRename, ActionDone}
}

// Interactive walks an Editor through terminal prompts until the user picks
// Done or aborts.
type Interactive struct {
	editor *Editor
	driver tui.PromptDriver
}

// NewInteractive returns a prompt loop over editor. A nil driver falls back
// to the survey-backed one on stdout.
func NewInteractive(editor *Editor, driver tui.PromptDriver) (*Interactive, error) {
	if editor == nil {
		return nil, errors.New("session: editor is required")
	}
	if driver == nil {
		driver = tui.NewSurveyDriver(nil)
	}
	return &Interactive{editor: editor, driver: driver}, nil
}

// Run loops over the action menu. It returns nil on Done and tui.ErrAborted
// when the user interrupts a prompt.
func (i *Interactive) Run(ctx context.Context) error {
	actions := Actions()
	labels := make([]string, len(actions))
	for idx, action := range actions {
		labels[idx] = string(action)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := i.driver.Info(ctx, i.summary()); err != nil {
			return err
		}
		choice, err := i.driver.Select(ctx, tui.SelectConfig{
			Message: "What next?",
			Options: labels,
		})
		if err != nil {
			return err
		}
		if choice < 0 || choice >= len(actions) {
			return fmt.Errorf("session: action index %d out of range", choice)
		}

		action := actions[choice]
		if action == ActionDone {
			return nil
		}
		if err := i.perform(ctx, action); err != nil {
			return err
		}
	}
}

func (i *Interactive) perform(ctx context.Context, action Action) error {
	switch action {
	case ActionAdd:
		return i.add(ctx)
	case ActionRename:
		return i.rename(ctx)
	}

	if len(i.editor.Questions()) == 0 {
		return i.driver.Info(ctx, "The form has no questions yet.")
	}
	q, err := i.pickQuestion(ctx, string(action))
	if err != nil {
		return err
	}
	switch action {
	case ActionEdit:
		return i.edit(ctx, q)
	case ActionDelete:
		return i.remove(ctx, q)
	case ActionMove:
		return i.move(ctx, q)
	}
	return fmt.Errorf("session: unknown action %q", action)
}

func (i *Interactive) add(ctx context.Context) error {
	types := document.QuestionTypes()
	labels := make([]string, len(types))
	for idx, t := range types {
		labels[idx] = t.Label()
	}
	choice, err := i.driver.Select(ctx, tui.SelectConfig{Message: "Question type", Options: labels})
	if err != nil {
		return err
	}
	if choice < 0 || choice >= len(types) {
		return fmt.Errorf("session: type index %d out of range", choice)
	}
	_, err = i.editor.AddQuestion(types[choice])
	return err
}

func (i *Interactive) rename(ctx context.Context) error {
	title, err := i.driver.Input(ctx, tui.InputConfig{
		Message: "Form title",
		Default: i.editor.Title(),
	})
	if err != nil {
		return err
	}
	i.editor.SetTitle(strings.TrimSpace(title))
	return nil
}

func (i *Interactive) pickQuestion(ctx context.Context, message string) (document.Question, error) {
	questions := i.editor.Questions()
	labels := make([]string, len(questions))
	for idx, q := range questions {
		labels[idx] = questionLine(idx, q)
	}
	choice, err := i.driver.Select(ctx, tui.SelectConfig{Message: message, Options: labels, PageSize: 10})
	if err != nil {
		return document.Question{}, err
	}
	if choice < 0 || choice >= len(questions) {
		return document.Question{}, fmt.Errorf("session: question index %d out of range", choice)
	}
	return questions[choice], nil
}

func (i *Interactive) edit(ctx context.Context, q document.Question) error {
	label, err := i.driver.Input(ctx, tui.InputConfig{Message: "Label", Default: q.Label})
	if err != nil {
		return err
	}
	required, err := i.driver.Confirm(ctx, tui.ConfirmConfig{Message: "Required?", Default: q.Required})
	if err != nil {
		return err
	}

	types := document.QuestionTypes()
	labels := make([]string, len(types))
	current := 0
	for idx, t := range types {
		labels[idx] = t.Label()
		if t == q.Type {
			current = idx
		}
	}
	choice, err := i.driver.Select(ctx, tui.SelectConfig{Message: "Type", Options: labels, DefaultIndex: current})
	if err != nil {
		return err
	}
	if choice < 0 || choice >= len(types) {
		return fmt.Errorf("session: type index %d out of range", choice)
	}
	qt := types[choice]

	patch := document.QuestionPatch{Label: &label, Required: &required, Type: &qt}
	if qt.HasOptions() {
		defaults := q.Options
		if !q.Type.HasOptions() || len(defaults) == 0 {
			defaults = document.DefaultOptions()
		}
		raw, err := i.driver.Input(ctx, tui.InputConfig{
			Message:   "Options (comma separated)",
			Default:   strings.Join(defaults, ", "),
			Validator: validateOptions,
		})
		if err != nil {
			return err
		}
		patch.Options = SplitOptions(raw)
	}

	i.editor.UpdateQuestion(q.ID, patch)
	return nil
}

func (i *Interactive) remove(ctx context.Context, q document.Question) error {
	ok, err := i.driver.Confirm(ctx, tui.ConfirmConfig{
		Message: fmt.Sprintf("Delete %q?", displayLabel(q)),
	})
	if err != nil || !ok {
		return err
	}
	i.editor.DeleteQuestion(q.ID)
	return nil
}

func (i *Interactive) move(ctx context.Context, q document.Question) error {
	count := len(i.editor.Questions())
	raw, err := i.driver.Input(ctx, tui.InputConfig{
		Message: fmt.Sprintf("New position (1-%d)", count),
		Validator: func(value string) error {
			_, err := parsePosition(value, count)
			return err
		},
	})
	if err != nil {
		return err
	}
	pos, err := parsePosition(raw, count)
	if err != nil {
		return err
	}
	i.editor.MoveQuestion(q.ID, pos-1)
	return nil
}

func (i *Interactive) summary() string {
	var b strings.Builder
	b.WriteString(i.editor.Title())
	for idx, q := range i.editor.Questions() {
		b.WriteString("\n  ")
		b.WriteString(questionLine(idx, q))
	}
	return b.String()
}

// SplitOptions splits comma separated option text, dropping blank entries.
func SplitOptions(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func validateOptions(raw string) error {
	if len(SplitOptions(raw)) == 0 {
		return errors.New("at least one option is required")
	}
	return nil
}

func parsePosition(raw string, count int) (int, error) {
	pos, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, errors.New("position must be a number")
	}
	if pos < 1 || pos > count {
		return 0, fmt.Errorf("position must be between 1 and %d", count)
	}
	return pos, nil
}

func questionLine(idx int, q document.Question) string {
	line := fmt.Sprintf("%d. %s (%s)", idx+1, displayLabel(q), q.Type.Label())
	if q.Required {
		line += " *"
	}
	return line
}

func displayLabel(q document.Question) string {
	if label := strings.TrimSpace(q.Label); label != "" {
		return label
	}
	return "Untitled question"
}
