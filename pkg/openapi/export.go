package openapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/pkg/document"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

const (
	specVersion     = "3.0.3"
	documentVersion = "1.0.0"
)

// SubmissionPath is the endpoint a form posts its answers to.
func SubmissionPath(formID string) string {
	return "/form/" + formID + "/responses"
}

// Export wraps the submission schema of doc into an OpenAPI document with a
// single POST operation on SubmissionPath(formID). Forms with file questions
// also accept multipart bodies.
func Export(doc *document.Document, formID string) (*openapi3.T, error) {
	formID = strings.TrimSpace(formID)
	if formID == "" {
		return nil, errors.New("openapi: form id is required")
	}
	if doc == nil {
		return nil, errors.New("openapi: document is required")
	}
	form, err := model.NewBuilder().Build(formID, doc)
	if err != nil {
		return nil, fmt.Errorf("openapi: %w", err)
	}
	schema := FormSchema(form)

	content := openapi3.Content{
		"application/json": openapi3.NewMediaType().WithSchema(schema),
	}
	if hasFileField(form) {
		content["multipart/form-data"] = openapi3.NewMediaType().WithSchema(schema)
	}
	body := openapi3.NewRequestBody().WithRequired(true).WithContent(content)

	op := openapi3.NewOperation()
	op.OperationID = "submit_" + formID
	op.Summary = "Submit a response to " + form.Title
	op.RequestBody = &openapi3.RequestBodyRef{Value: body}
	op.Responses = openapi3.NewResponses(
		openapi3.WithStatus(http.StatusCreated, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription("Response recorded"),
		}),
		openapi3.WithStatus(http.StatusUnprocessableEntity, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription("Submission failed validation"),
		}),
		openapi3.WithStatus(http.StatusNotFound, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription("Form is not public"),
		}),
	)

	spec := &openapi3.T{
		OpenAPI: specVersion,
		Info: &openapi3.Info{
			Title:   form.Title,
			Version: documentVersion,
		},
		Paths: openapi3.NewPaths(),
	}
	spec.Paths.Set(SubmissionPath(formID), &openapi3.PathItem{Post: op})
	return spec, nil
}

// Marshal encodes spec as "json" (indented) or "yaml".
func Marshal(spec *openapi3.T, format string) ([]byte, error) {
	if spec == nil {
		return nil, errors.New("openapi: spec is nil")
	}
	data, err := json.MarshalIndent(spec, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("openapi: encode json: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return data, nil
	case "yaml", "yml":
		var tree any
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("openapi: convert to yaml: %w", err)
		}
		out, err := yaml.Marshal(tree)
		if err != nil {
			return nil, fmt.Errorf("openapi: encode yaml: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("openapi: unsupported format %q", format)
	}
}

func hasFileField(form model.FormModel) bool {
	for _, field := range form.Fields {
		if field.Format == model.FormatBinary {
			return true
		}
	}
	return false
}
