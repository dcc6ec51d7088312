// Package testutil provides shared test helpers for building fixture
// repositories with the Grafico skeleton and content files.
package testutil

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/graflint/internal/diag"
	"github.com/starford/graflint/internal/grafico"
	"github.com/starford/graflint/internal/index"
	"github.com/starford/graflint/internal/storage"
)

// NewRepo creates a temporary repository with the full model skeleton:
// model/folder.xml plus the nine top-level folders, each with its own
// descriptor. The result passes the structural check with zero errors.
func NewRepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	WriteFile(t, root, filepath.Join(grafico.ModelDir, grafico.FolderDescriptor),
		fmt.Sprintf(`<archimate:model xmlns:archimate=%q id="id-model"/>`, grafico.ArchimateNS))

	for _, name := range grafico.TopFolders {
		WriteFile(t, root, filepath.Join(grafico.ModelDir, name, grafico.FolderDescriptor),
			fmt.Sprintf(`<archimate:Folder xmlns:archimate=%q id="id-%s"/>`, grafico.ArchimateNS, name))
	}
	return root
}

// WriteFile writes content at a repository-relative path, creating parent
// directories.
func WriteFile(t *testing.T, root, rel, content string) {
	t.Helper()
	abs := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// ElementXML renders a minimal element document.
func ElementXML(class, id string) string {
	return fmt.Sprintf(`<archimate:%s xmlns:archimate=%q id=%q name="fixture"/>`,
		class, grafico.ArchimateNS, id)
}

// RelationshipXML renders a relationship document with one source and one
// target.
func RelationshipXML(class, id, srcType, srcHref, tgtType, tgtHref string) string {
	return fmt.Sprintf(`<archimate:%s xmlns:archimate=%q xmlns:xsi=%q id=%q>
  <source xsi:type=%q href=%q/>
  <target xsi:type=%q href=%q/>
</archimate:%s>`,
		class, grafico.ArchimateNS, grafico.XSINS, id,
		srcType, srcHref, tgtType, tgtHref, class)
}

// DiagramXML wraps inner content in an ArchimateDiagramModel root.
func DiagramXML(id, inner string) string {
	return fmt.Sprintf(`<archimate:ArchimateDiagramModel xmlns:archimate=%q xmlns:xsi=%q id=%q>%s</archimate:ArchimateDiagramModel>`,
		grafico.ArchimateNS, grafico.XSINS, id, inner)
}

// WriteElement writes an element file into a top-level folder and returns
// its repository-relative path.
func WriteElement(t *testing.T, root, folder, class, id string) string {
	t.Helper()
	rel := filepath.Join(grafico.ModelDir, folder, class+"_"+id+".xml")
	WriteFile(t, root, rel, ElementXML(class, id))
	return rel
}

// WriteRelationship writes a relationship file into Relations and returns
// its repository-relative path.
func WriteRelationship(t *testing.T, root, class, id, srcType, srcHref, tgtType, tgtHref string) string {
	t.Helper()
	rel := filepath.Join(grafico.ModelDir, "Relations", class+"_"+id+".xml")
	WriteFile(t, root, rel, RelationshipXML(class, id, srcType, srcHref, tgtType, tgtHref))
	return rel
}

// NewStore wraps a fixture repository in a storage provider.
func NewStore(t *testing.T, root string) storage.Provider {
	t.Helper()
	store, err := storage.NewFS(root)
	if err != nil {
		t.Fatal(err)
	}
	return store
}

// Logger returns a logger that discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// BuildIndex builds the file index over a fixture repository without a
// parse cache.
func BuildIndex(t *testing.T, store storage.Provider) (*index.FileIndex, diag.Batch) {
	t.Helper()
	ix, batch, err := index.Build(context.Background(), store, nil, Logger())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return ix, batch
}
