// Package orchestrator wires the document → model builder → decorators →
// theme → renderer pipeline behind a single Generate call. It backs the
// preview surface of the form builder.
package orchestrator
