// Package responses stores form submissions and lays them out as a table, one
// column per question.
package responses

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-formbuilder/pkg/document"
	"github.com/goliatone/go-formbuilder/pkg/openapi"
)

// ErrInvalidSubmission wraps submissions that fail validation.
var ErrInvalidSubmission = errors.New("responses: invalid submission")

// Record is one submission. Data is keyed by question id.
type Record struct {
	ID          string         `json:"id"`
	FormID      string         `json:"formId"`
	SubmittedAt time.Time      `json:"submittedAt"`
	Data        map[string]any `json:"data"`
}

// Fetcher lists the submissions of a form, newest first.
type Fetcher interface {
	List(ctx context.Context, formID string) ([]Record, error)
}

// Store is a Fetcher that also accepts submissions.
type Store interface {
	Fetcher
	Submit(ctx context.Context, record Record) (Record, error)
}

// Validate checks data against the submission schema of doc.
func Validate(doc *document.Document, data map[string]any) (openapi.Issues, error) {
	schema, err := openapi.SubmissionSchema(doc)
	if err != nil {
		return nil, err
	}
	return openapi.ValidateSubmission(schema, data)
}

// Submit validates data against doc and stores it as a new record. Invalid
// submissions return the issues alongside an error wrapping
// ErrInvalidSubmission.
func Submit(ctx context.Context, store Store, doc *document.Document, formID string, data map[string]any) (Record, openapi.Issues, error) {
	if store == nil {
		return Record{}, nil, errors.New("responses: store is required")
	}
	if strings.TrimSpace(formID) == "" {
		return Record{}, nil, errors.New("responses: form id is required")
	}
	issues, err := Validate(doc, data)
	if err != nil {
		return Record{}, nil, err
	}
	if len(issues) > 0 {
		return Record{}, issues, fmt.Errorf("%w: %s", ErrInvalidSubmission, issues.Error())
	}
	record, err := store.Submit(ctx, Record{FormID: formID, Data: data})
	if err != nil {
		return Record{}, nil, err
	}
	return record, nil, nil
}

// prepare fills the id and timestamp of a record about to be stored.
func prepare(record Record, now func() time.Time) (Record, error) {
	if strings.TrimSpace(record.FormID) == "" {
		return Record{}, errors.New("responses: form id is required")
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.SubmittedAt.IsZero() {
		record.SubmittedAt = now().UTC()
	}
	if record.Data == nil {
		record.Data = map[string]any{}
	}
	return record, nil
}

func newestFirst(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].SubmittedAt.After(records[j].SubmittedAt)
	})
}
