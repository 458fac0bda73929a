// Package openapi describes form submissions with kin-openapi: a JSON schema
// per form keyed by question id, an exportable OpenAPI document for the
// submission endpoint, and payload validation that reports issues per
// question.
package openapi
