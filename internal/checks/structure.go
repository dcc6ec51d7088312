package checks

import (
	"path/filepath"

	"github.com/starford/graflint/internal/diag"
	"github.com/starford/graflint/internal/grafico"
	"github.com/starford/graflint/internal/storage"
)

// Structure verifies the fixed repository skeleton: the model directory
// with its descriptor, and the nine top-level folders each holding a
// descriptor with the expected container root. Any error here gates the
// run; later phases assume a sound skeleton.
func Structure(store storage.Provider) diag.Batch {
	var b diag.Batch

	if !store.IsDir(grafico.ModelDir) {
		b.Errorf(diag.CategoryStructure, "Missing required folder: %s", filepath.Join(store.Root(), grafico.ModelDir))
		return b
	}

	rootDesc := filepath.Join(grafico.ModelDir, grafico.FolderDescriptor)
	if !store.IsFile(rootDesc) {
		b.Errorf(diag.CategoryStructure, "Missing required file: %s", rootDesc)
	}

	for _, name := range grafico.TopFolders {
		dir := filepath.Join(grafico.ModelDir, name)
		if !store.IsDir(dir) {
			b.Errorf(diag.CategoryStructure, "Missing top-level folder: %s", dir)
			continue
		}
		if !store.IsFile(filepath.Join(dir, grafico.FolderDescriptor)) {
			b.Errorf(diag.CategoryStructure, "Missing %s in: %s", grafico.FolderDescriptor, dir)
		}
	}

	// The model descriptor root must be archimate:model.
	if store.IsFile(rootDesc) {
		root, err := loadDoc(store, rootDesc)
		switch {
		case err != nil:
			b.Errorf(diag.CategoryStructure, "XML parse error in %s: %s", rootDesc, err)
		case root.Local() != grafico.ModelContainerTag || root.XMLName.Space != grafico.ArchimateNS:
			b.Errorf(diag.CategoryStructure, "%s root must be archimate:%s (got %s)",
				rootDesc, grafico.ModelContainerTag, root.Local())
		}
	}

	// Each subfolder descriptor root must be a Folder container.
	for _, name := range grafico.TopFolders {
		desc := filepath.Join(grafico.ModelDir, name, grafico.FolderDescriptor)
		if !store.IsFile(desc) {
			continue
		}
		root, err := loadDoc(store, desc)
		switch {
		case err != nil:
			b.Errorf(diag.CategoryStructure, "XML parse error in %s: %s", desc, err)
		case root.Local() != grafico.FolderContainerTag:
			b.Errorf(diag.CategoryStructure, "%s root must be archimate:%s (got %s)",
				desc, grafico.FolderContainerTag, root.Local())
		}
	}

	return b
}
