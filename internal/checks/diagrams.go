package checks

import (
	"github.com/starford/graflint/internal/catalog"
	"github.com/starford/graflint/internal/diag"
	"github.com/starford/graflint/internal/grafico"
	"github.com/starford/graflint/internal/index"
	"github.com/starford/graflint/internal/parser"
	"github.com/starford/graflint/internal/storage"
)

// Diagrams verifies every diagram file. Connection endpoints must be ids
// from the diagram's own object set (objects of sibling diagrams never
// qualify), every connection must reference its backing relationship with
// an href, and every archimate-backed object needs a bounds record plus a
// backing-element href. When rules are loaded, each connection's
// relationship type is re-evaluated against the element types visible in
// the diagram itself, which catches diagrams that visualize a
// relationship their own endpoints do not permit.
func Diagrams(ix *index.FileIndex, store storage.Provider, rules *catalog.RuleSet) diag.Batch {
	var b diag.Batch

	for _, mf := range ix.Files() {
		if !grafico.IsDiagram(mf.Class) {
			continue
		}
		root, err := loadDoc(store, mf.Path)
		if err != nil {
			continue
		}
		v := grafico.NewDiagramView(root)

		for _, conn := range v.Connections {
			if !memberOf(v, conn.SourceID) {
				b.Errorf(diag.CategoryDiagram, "Diagram connection source not found among children ids: %s in %s",
					conn.SourceID, mf.Path)
			}
			if !memberOf(v, conn.TargetID) {
				b.Errorf(diag.CategoryDiagram, "Diagram connection target not found among children ids: %s in %s",
					conn.TargetID, mf.Path)
			}

			if len(conn.Relationships) == 0 {
				b.Errorf(diag.CategoryDiagram, "Diagram connection missing <archimateRelationship> in %s", mf.Path)
				continue
			}
			for _, rel := range conn.Relationships {
				if rel.Href == "" {
					b.Errorf(diag.CategoryDiagram, "Diagram connection missing archimateRelationship href in %s", mf.Path)
				}
				if !rules.Loaded() {
					continue
				}
				rtype := parser.StripPrefix(rel.Type)
				srcType, sok := v.ElementType(conn.SourceID)
				tgtType, tok := v.ElementType(conn.TargetID)
				if rtype != "" && sok && tok && !rules.Allowed(rtype, srcType, tgtType) {
					b.Errorf(diag.CategoryLegality, "Diagram connection %s not allowed between %s and %s in %s",
						rtype, srcType, tgtType, mf.Path)
				}
			}
		}

		for _, obj := range v.ArchimateObjects {
			if !obj.HasBounds {
				b.Errorf(diag.CategoryDiagram, "DiagramModelArchimateObject missing <bounds> in %s", mf.Path)
			}
			if obj.ElementHref == "" {
				b.Errorf(diag.CategoryDiagram, "DiagramModelArchimateObject missing archimateElement href in %s", mf.Path)
			}
		}
	}

	return b
}

func memberOf(v grafico.DiagramView, id string) bool {
	if id == "" {
		return false
	}
	_, ok := v.ObjectIDs[id]
	return ok
}
