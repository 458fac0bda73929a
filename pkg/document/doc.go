// Package document holds the editable form document: a title plus an ordered
// list of typed questions keyed by a stable id. Operations mutate the document
// in place and keep two invariants intact: ids are unique for the lifetime of
// the document, and list order only changes through AddQuestion (append),
// DeleteQuestion (removal) and MoveQuestion (explicit reorder).
//
// A Document is not safe for concurrent mutation. Callers that share one
// across goroutines should go through session.Editor, which serialises
// access.
package document
