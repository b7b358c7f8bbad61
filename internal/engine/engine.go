// Package engine provides the core merge logic for packmerger.
//
// The engine package acts as the orchestration layer between callers
// (CLI, web service) and the per-category merge strategies. It resolves
// the union of paths across an ordered list of input packs, applies the
// correct merger per path, synthesizes the output manifest, and embeds
// an optional normalized icon.
//
// Key components:
//   - Engine: Main orchestrator exposing Merge
//   - MergeRequest/MergeResult: plain in-memory inputs and outputs
//   - Summary: counts and ordered warnings describing the run
//
// The engine holds no global state and performs no I/O: packs come in
// as in-memory trees and the merged tree goes back to the caller, which
// keeps the merge deterministic and trivially testable.
package engine

// Engine orchestrates pack merges.
// It is the main API surface called by the CLI and the web service.
type Engine struct{}

// New creates a new Engine.
func New() *Engine {
	return &Engine{}
}
