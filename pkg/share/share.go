// Package share tracks whether a form is publicly reachable and hands out its
// shareable link.
package share

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

var (
	// ErrNotPublic is returned when a link is requested for a private form.
	ErrNotPublic = errors.New("share: form is not public")
	// ErrUnknownForm is returned by stores that have no state for a form.
	ErrUnknownForm = errors.New("share: unknown form")
)

// State is the sharing status of one form. Forms start private.
type State struct {
	FormID    string    `json:"formId"`
	Public    bool      `json:"public"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Store persists sharing state.
type Store interface {
	// Get returns ErrUnknownForm when the form has never been stored.
	Get(ctx context.Context, formID string) (State, error)
	SetPublic(ctx context.Context, formID string, public bool, at time.Time) (State, error)
}

// Link builds the public URL of a form: {origin}/form/{formID}.
func Link(origin, formID string) (string, error) {
	origin = strings.TrimRight(strings.TrimSpace(origin), "/")
	formID = strings.TrimSpace(formID)
	if origin == "" {
		return "", errors.New("share: origin is required")
	}
	if formID == "" {
		return "", errors.New("share: form id is required")
	}
	if _, err := url.Parse(origin); err != nil {
		return "", fmt.Errorf("share: invalid origin %q: %w", origin, err)
	}
	return origin + "/form/" + url.PathEscape(formID), nil
}
