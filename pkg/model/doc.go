// Package model defines the typed form model consumed by renderers. Builders
// reside in internal/model and project a document.Document into a FormModel:
// each question becomes one Field named after the question id, in question
// order. Titles, labels and choice options are passed through a bluemonday
// strict policy so renderers can treat them as plain text. The question type
// is preserved under the `question.type` metadata key and the curated
// `UIHints` map carries renderer-facing directives such as `inputType`,
// `input` and `widget`.
package model
