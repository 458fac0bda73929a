package openapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Issue is one validation failure. Field is the question id, or empty for
// problems with the payload as a whole.
type Issue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Issues is the outcome of ValidateSubmission.
type Issues []Issue

// Payload groups messages by field, using "_form" for payload-level issues.
// The shape matches render.MapErrorPayload input.
func (issues Issues) Payload() map[string][]string {
	if len(issues) == 0 {
		return nil
	}
	out := make(map[string][]string)
	for _, issue := range issues {
		key := issue.Field
		if key == "" {
			key = "_form"
		}
		out[key] = append(out[key], issue.Message)
	}
	return out
}

// Error joins the issues into one message.
func (issues Issues) Error() string {
	parts := make([]string, 0, len(issues))
	for _, issue := range issues {
		if issue.Field == "" {
			parts = append(parts, issue.Message)
			continue
		}
		parts = append(parts, issue.Field+": "+issue.Message)
	}
	return "openapi: invalid submission: " + strings.Join(parts, "; ")
}

// ValidateSubmission checks data against schema, collecting every failure.
// Blank answers to optional questions are treated as unanswered. A nil result
// means the submission is valid; the returned error is for payloads that
// could not be inspected at all.
func ValidateSubmission(schema *openapi3.Schema, data map[string]any) (Issues, error) {
	if schema == nil {
		return nil, errors.New("openapi: schema is required")
	}
	value, err := normalise(schema, data)
	if err != nil {
		return nil, err
	}

	verr := schema.VisitJSON(value, openapi3.MultiErrors())
	if verr == nil {
		return nil, nil
	}

	var issues Issues
	collectIssues(verr, &issues)
	sort.SliceStable(issues, func(i, j int) bool {
		return position(schema, issues[i].Field) < position(schema, issues[j].Field)
	})
	return issues, nil
}

// normalise round-trips data through JSON so numbers arrive as float64, and
// drops blank optional answers.
func normalise(schema *openapi3.Schema, data map[string]any) (map[string]any, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: encode submission: %w", err)
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("openapi: decode submission: %w", err)
	}
	if out == nil {
		out = map[string]any{}
	}

	required := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = struct{}{}
	}
	for key, value := range out {
		if _, ok := required[key]; ok {
			continue
		}
		if value == nil {
			delete(out, key)
			continue
		}
		if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
			delete(out, key)
		}
	}
	return out, nil
}

// propertyReason recovers the key from object-level reasons such as
// `property "q1" is missing`.
var propertyReason = regexp.MustCompile(`^property "([^"]+)"`)

func collectIssues(err error, issues *Issues) {
	switch e := err.(type) {
	case openapi3.MultiError:
		for _, inner := range e {
			collectIssues(inner, issues)
		}
	case *openapi3.SchemaError:
		field := ""
		if pointer := e.JSONPointer(); len(pointer) > 0 {
			field = pointer[0]
		} else if m := propertyReason.FindStringSubmatch(e.Reason); m != nil {
			field = m[1]
		}
		*issues = append(*issues, Issue{Field: field, Message: e.Reason})
	default:
		*issues = append(*issues, Issue{Message: err.Error()})
	}
}

// position orders issues by question order; payload-level issues come first
// and unknown keys last.
func position(schema *openapi3.Schema, field string) int {
	if field == "" {
		return -1
	}
	ref, ok := schema.Properties[field]
	if !ok || ref == nil || ref.Value == nil {
		return len(schema.Properties)
	}
	if raw, ok := ref.Value.Extensions[ExtPosition].(string); ok {
		if idx, err := strconv.Atoi(raw); err == nil {
			return idx
		}
	}
	return len(schema.Properties)
}
