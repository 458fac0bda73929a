package openapi

import (
	"context"
	"strings"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/document"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

func sampleSchema(t *testing.T) *openapi3.Schema {
	t.Helper()
	schema, err := SubmissionSchema(testsupport.SampleDocument())
	if err != nil {
		t.Fatalf("submission schema: %v", err)
	}
	return schema
}

func TestSubmissionSchema_MapsQuestionTypes(t *testing.T) {
	schema := sampleSchema(t)

	if !schema.Type.Is(openapi3.TypeObject) {
		t.Fatalf("expected object schema, got %v", schema.Type)
	}
	if schema.Title != "Customer Feedback" {
		t.Fatalf("unexpected title %q", schema.Title)
	}
	if diff := cmp.Diff([]string{"q1"}, schema.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
	if len(schema.Properties) != 6 {
		t.Fatalf("expected 6 properties, got %d", len(schema.Properties))
	}

	name := schema.Properties["q1"].Value
	if !name.Type.Is(openapi3.TypeString) || name.MinLength != 1 || name.Title != "Name" {
		t.Fatalf("unexpected name schema: %+v", name)
	}
	if name.Extensions[ExtQuestionType] != "text" {
		t.Fatalf("question type extension missing: %v", name.Extensions)
	}

	choice := schema.Properties["q3"].Value
	if diff := cmp.Diff([]any{"Option 1", "Option 2"}, choice.Enum); diff != "" {
		t.Fatalf("enum mismatch (-want +got):\n%s", diff)
	}

	if number := schema.Properties["q5"].Value; !number.Type.Is(openapi3.TypeNumber) {
		t.Fatalf("expected number schema for q5, got %v", number.Type)
	}
	if file := schema.Properties["q6"].Value; file.Format != "binary" {
		t.Fatalf("expected binary format for q6, got %q", file.Format)
	}
	if long := schema.Properties["q2"].Value; long.Format != "" || long.MinLength != 0 {
		t.Fatalf("optional textarea should be a plain string: %+v", long)
	}
}

func TestSubmissionSchema_RejectsInvalidDocuments(t *testing.T) {
	if _, err := SubmissionSchema(nil); err == nil {
		t.Fatalf("expected error for nil document")
	}
	bad := &document.Document{Questions: []document.Question{{ID: "a", Type: "slider"}}}
	if _, err := SubmissionSchema(bad); err == nil {
		t.Fatalf("expected error for invalid document")
	}
}

func TestValidateSubmission_Valid(t *testing.T) {
	schema := sampleSchema(t)
	issues, err := ValidateSubmission(schema, map[string]any{
		"q1": "Jane",
		"q2": "",
		"q3": "Option 2",
		"q4": nil,
		"q5": 7,
		"q6": "receipt.pdf",
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if issues != nil {
		t.Fatalf("expected no issues, got %v", issues)
	}
}

func TestValidateSubmission_CollectsEveryIssue(t *testing.T) {
	schema := sampleSchema(t)
	issues, err := ValidateSubmission(schema, map[string]any{
		"q1":    "",
		"q3":    "Option 9",
		"q5":    "ten",
		"extra": true,
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	fields := make([]string, 0, len(issues))
	for _, issue := range issues {
		if issue.Message == "" {
			t.Fatalf("issue without message: %+v", issue)
		}
		fields = append(fields, issue.Field)
	}
	if diff := cmp.Diff([]string{"q1", "q3", "q5", "extra"}, fields); diff != "" {
		t.Fatalf("issue fields mismatch (-want +got):\n%s", diff)
	}

	payload := issues.Payload()
	if len(payload["q3"]) != 1 {
		t.Fatalf("payload should group by field: %v", payload)
	}
	if !strings.Contains(issues.Error(), "q5: ") {
		t.Fatalf("error text should name fields: %s", issues.Error())
	}
}

func TestValidateSubmission_MissingRequired(t *testing.T) {
	schema := sampleSchema(t)
	issues, err := ValidateSubmission(schema, map[string]any{})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(issues) != 1 || issues[0].Field != "q1" {
		t.Fatalf("expected one issue for q1, got %v", issues)
	}
}

func TestValidateSubmission_Errors(t *testing.T) {
	if _, err := ValidateSubmission(nil, nil); err == nil {
		t.Fatalf("expected error for nil schema")
	}
	schema := sampleSchema(t)
	if _, err := ValidateSubmission(schema, map[string]any{"q1": make(chan int)}); err == nil {
		t.Fatalf("expected error for unencodable payload")
	}
}

func TestIssuesPayload(t *testing.T) {
	issues := Issues{{Message: "body too large"}, {Field: "q1", Message: "required"}}
	want := map[string][]string{"_form": {"body too large"}, "q1": {"required"}}
	if diff := cmp.Diff(want, issues.Payload()); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
	if Issues(nil).Payload() != nil {
		t.Fatalf("empty issues should produce nil payload")
	}
}

func TestExport(t *testing.T) {
	spec, err := Export(testsupport.SampleDocument(), "feedback")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if err := spec.Validate(context.Background()); err != nil {
		t.Fatalf("exported document is invalid: %v", err)
	}

	item := spec.Paths.Value("/form/feedback/responses")
	if item == nil || item.Post == nil {
		t.Fatalf("submission operation missing")
	}
	op := item.Post
	if op.OperationID != "submit_feedback" {
		t.Fatalf("unexpected operation id %q", op.OperationID)
	}
	content := op.RequestBody.Value.Content
	if content.Get("application/json") == nil || content.Get("multipart/form-data") == nil {
		t.Fatalf("expected json and multipart bodies, got %v", content)
	}
	if op.Responses.Status(201) == nil {
		t.Fatalf("created response missing")
	}
}

func TestExport_NoMultipartWithoutFiles(t *testing.T) {
	spec, err := Export(document.NewDefault(), "plain")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	content := spec.Paths.Value("/form/plain/responses").Post.RequestBody.Value.Content
	if content.Get("multipart/form-data") != nil {
		t.Fatalf("multipart body should only appear for file questions")
	}
	if _, err := Export(document.NewDefault(), " "); err == nil {
		t.Fatalf("expected error for empty form id")
	}
}

func TestMarshal(t *testing.T) {
	spec, err := Export(document.NewDefault(), "f1")
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	jsonOut, err := Marshal(spec, "json")
	if err != nil {
		t.Fatalf("marshal json: %v", err)
	}
	if !strings.Contains(string(jsonOut), `"openapi": "3.0.3"`) {
		t.Fatalf("json output missing version:\n%s", jsonOut)
	}

	yamlOut, err := Marshal(spec, "yaml")
	if err != nil {
		t.Fatalf("marshal yaml: %v", err)
	}
	if !strings.Contains(string(yamlOut), "openapi: 3.0.3") || !strings.Contains(string(yamlOut), "/form/f1/responses:") {
		t.Fatalf("yaml output unexpected:\n%s", yamlOut)
	}

	if _, err := Marshal(spec, "toml"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}
