// Package checks implements the validation phases. Each phase takes the
// completed file index (and whatever metadata it needs) and returns its
// own diagnostic batch; the orchestrator merges batches in a fixed phase
// order.
package checks

import (
	"github.com/starford/graflint/internal/parser"
	"github.com/starford/graflint/internal/storage"
)

// loadDoc re-reads and parses an already indexed file. Parse failures
// were reported during indexing, so callers skip silently on error.
func loadDoc(store storage.Provider, path string) (*parser.Node, error) {
	data, err := store.Read(path)
	if err != nil {
		return nil, err
	}
	return parser.Parse(data)
}
