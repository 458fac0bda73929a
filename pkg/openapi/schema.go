package openapi

import (
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbuilder/pkg/document"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Extension keys stamped on every property.
const (
	ExtQuestionType = "x-question-type"
	ExtPosition     = "x-question-position"
)

// SubmissionSchema builds the object schema a submission to doc must satisfy.
func SubmissionSchema(doc *document.Document) (*openapi3.Schema, error) {
	if doc == nil {
		return nil, errors.New("openapi: document is required")
	}
	form, err := model.NewBuilder().Build("", doc)
	if err != nil {
		return nil, fmt.Errorf("openapi: %w", err)
	}
	return FormSchema(form), nil
}

// FormSchema builds the submission schema from an already projected form
// model, so enum values match what renderers offer.
//
//	text, textarea      string
//	multiple_choice     string + enum
//	dropdown            string + enum
//	number              number
//	file                string, format binary
//
// Required string questions also need at least one character. Unknown keys are
// rejected.
func FormSchema(form model.FormModel) *openapi3.Schema {
	schema := openapi3.NewObjectSchema().WithoutAdditionalProperties()
	schema.Title = form.Title
	schema.Description = form.Description
	schema.Properties = make(openapi3.Schemas, len(form.Fields))

	for _, field := range form.Fields {
		prop := fieldSchema(field)
		schema.Properties[field.Name] = openapi3.NewSchemaRef("", prop)
		if field.Required {
			schema.Required = append(schema.Required, field.Name)
		}
	}
	return schema
}

func fieldSchema(field model.Field) *openapi3.Schema {
	var prop *openapi3.Schema
	switch {
	case field.Type == model.FieldTypeNumber:
		prop = openapi3.NewFloat64Schema()
	case len(field.Enum) > 0:
		prop = openapi3.NewStringSchema()
		for _, option := range field.Enum {
			prop.Enum = append(prop.Enum, option)
		}
	default:
		prop = openapi3.NewStringSchema()
		if field.Format == model.FormatBinary {
			prop.Format = model.FormatBinary
		}
		if field.Required {
			prop.MinLength = 1
		}
	}

	prop.Title = field.Label
	prop.Description = field.Description
	prop.Extensions = map[string]any{
		ExtQuestionType: field.Metadata[model.MetaQuestionType],
		ExtPosition:     field.Metadata[model.MetaPosition],
	}
	return prop
}
