package grafico

import "github.com/starford/graflint/internal/parser"

// End is one endpoint reference of a relationship: its href and the
// declared xsi:type (raw, prefix included).
type End struct {
	Href string
	Type string
}

// RelationshipView exposes the fields the relationship checker needs from
// a parsed relationship document. Built once after parsing.
type RelationshipView struct {
	Sources []End
	Targets []End
}

// NewRelationshipView collects the direct source/target children of a
// relationship root.
func NewRelationshipView(root *parser.Node) RelationshipView {
	var v RelationshipView
	for _, c := range root.ChildrenNamed("source") {
		v.Sources = append(v.Sources, newEnd(c))
	}
	for _, c := range root.ChildrenNamed("target") {
		v.Targets = append(v.Targets, newEnd(c))
	}
	return v
}

func newEnd(n *parser.Node) End {
	return End{
		Href: n.Attr("href"),
		Type: n.AttrNS(XSINS, "type"),
	}
}

// Connection is a diagram connection: its endpoint object ids and the
// references to the relationship it visualizes.
type Connection struct {
	SourceID      string
	TargetID      string
	Relationships []End
}

// ArchimateObject is an archimate-backed diagram object.
type ArchimateObject struct {
	ID          string
	HasBounds   bool
	ElementHref string
	ElementType string // backing element xsi:type, prefix stripped
}

// DiagramView exposes the fields the diagram checker needs from a parsed
// diagram document: the object id set, the connections, and the
// archimate-backed objects. Built once after parsing.
type DiagramView struct {
	ObjectIDs        map[string]struct{}
	Connections      []Connection
	ArchimateObjects []ArchimateObject

	elementTypes map[string]string
}

// NewDiagramView walks every descendant of a diagram root. Object ids are
// collected from the fixed tag allow-list at any depth, since diagram
// objects may nest inside groups.
func NewDiagramView(root *parser.Node) DiagramView {
	v := DiagramView{
		ObjectIDs:    make(map[string]struct{}),
		elementTypes: make(map[string]string),
	}
	root.Walk(func(n *parser.Node) {
		if n == root {
			return
		}
		if id := n.Attr("id"); id != "" && IsDiagramObjectTag(n.Local()) {
			v.ObjectIDs[id] = struct{}{}
		}
		switch n.AttrNS(XSINS, "type") {
		case ConnectionType:
			conn := Connection{
				SourceID: n.Attr("source"),
				TargetID: n.Attr("target"),
			}
			for _, rel := range n.ChildrenNamed("archimateRelationship") {
				conn.Relationships = append(conn.Relationships, newEnd(rel))
			}
			v.Connections = append(v.Connections, conn)
		case ArchimateObjectType:
			obj := ArchimateObject{
				ID:        n.Attr("id"),
				HasBounds: n.Child("bounds") != nil,
			}
			if el := n.Child("archimateElement"); el != nil {
				obj.ElementHref = el.Attr("href")
				obj.ElementType = parser.StripPrefix(el.AttrNS(XSINS, "type"))
			}
			v.ArchimateObjects = append(v.ArchimateObjects, obj)
			if obj.ID != "" && obj.ElementType != "" {
				v.elementTypes[obj.ID] = obj.ElementType
			}
		}
	})
	return v
}

// ElementType resolves a diagram-object id to the type of its backing
// element, when the object is archimate-backed and declares one.
func (v DiagramView) ElementType(id string) (string, bool) {
	t, ok := v.elementTypes[id]
	return t, ok
}
