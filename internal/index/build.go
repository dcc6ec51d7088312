package index

import (
	"context"
	"log/slog"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/starford/graflint/internal/diag"
	"github.com/starford/graflint/internal/grafico"
	"github.com/starford/graflint/internal/parser"
	"github.com/starford/graflint/internal/storage"
)

const parseWorkers = 8

// result is the outcome of parsing one listed file.
type result struct {
	class   string
	id      string
	failure string // parse error text, "" on success
	cached  bool
}

// Build lists every content file under model/, parses each one, and
// returns the completed index together with the parse diagnostics.
// Parsing fans out across workers; diagnostics are assembled from the
// results in list order afterwards, so their order is deterministic and
// the index is complete before any caller sees it. Folder descriptors are
// skipped. A non-nil cache short-circuits files whose checksum has not
// changed since a previous run.
func Build(ctx context.Context, store storage.Provider, cache *Cache, logger *slog.Logger) (*FileIndex, diag.Batch, error) {
	var batch diag.Batch

	files, err := store.List(grafico.ModelDir)
	if err != nil {
		return nil, batch, err
	}

	// Folder descriptors belong to the structural check, not the index.
	content := files[:0]
	for _, fi := range files {
		if filepath.Base(fi.Path) != grafico.FolderDescriptor {
			content = append(content, fi)
		}
	}

	results := make([]result, len(content))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parseWorkers)
	for i, fi := range content {
		i, fi := i, fi
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = parseOne(store, cache, fi)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, batch, err
	}

	ix := NewFileIndex()
	for i, fi := range content {
		ix.ByName[filepath.Base(fi.Path)] = fi.Path

		res := results[i]
		if res.failure != "" {
			batch.Errorf(diag.CategoryParse, "XML parse error in %s: %s", fi.Path, res.failure)
			continue
		}
		if res.id == "" {
			batch.Errorf(diag.CategoryParse, "Missing id on root: %s", fi.Path)
		}
		ix.ByPath[fi.Path] = &ModelFile{Path: fi.Path, Class: res.class, ID: res.id}

		if res.cached {
			logger.Debug("index: cache hit", slog.String("path", fi.Path))
		}
	}

	logger.Debug("index: built",
		slog.Int("files", len(ix.ByPath)),
		slog.Int("parse_errors", len(batch.Errors())))
	return ix, batch, nil
}

func parseOne(store storage.Provider, cache *Cache, fi storage.FileInfo) result {
	if cache != nil {
		if class, id, ok := cache.Get(fi.Path, fi.Checksum); ok {
			return result{class: class, id: id, cached: true}
		}
	}

	data, err := store.Read(fi.Path)
	if err != nil {
		return result{failure: err.Error()}
	}
	root, err := parser.Parse(data)
	if err != nil {
		return result{failure: err.Error()}
	}

	res := result{class: root.Local(), id: root.Attr("id")}
	if cache != nil && res.id != "" {
		_ = cache.Put(fi.Path, fi.Checksum, res.class, res.id)
	}
	return res
}
