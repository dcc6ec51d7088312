// Package grafico holds the vocabulary of a Grafico-style repository: the
// fixed directory skeleton, filename and reference formats, and typed views
// over parsed relationship and diagram documents.
package grafico

import (
	"regexp"
	"strings"
)

// XML namespaces used by model documents.
const (
	ArchimateNS = "http://www.archimatetool.com/archimate"
	XSINS       = "http://www.w3.org/2001/XMLSchema-instance"
)

// Fixed repository layout names.
const (
	ModelDir         = "model"
	TypesDir         = "types"
	FolderDescriptor = "folder.xml"

	// Root tags of the folder descriptors.
	ModelContainerTag  = "model"
	FolderContainerTag = "Folder"
)

// TopFolders are the nine required top-level folders under model/.
var TopFolders = []string{
	"Strategy",
	"Business",
	"Application",
	"Technology",
	"Motivation",
	"Implementation_Migration",
	"Other",
	"Relations",
	"Diagrams",
}

// Diagram root tags. Files with either root are permitted under either of
// the same two filename tokens, regardless of the internal tag.
var diagramRoots = map[string]struct{}{
	"ArchimateDiagramModel": {},
	"SketchModel":           {},
}

// Tags whose ids count as diagram objects, at any nesting depth.
var diagramObjectTags = map[string]struct{}{
	"DiagramModelArchimateObject": {},
	"DiagramModelNote":            {},
	"DiagramModelImage":           {},
	"DiagramModelGroup":           {},
	"DiagramModelReference":       {},
}

// xsi:type values identifying diagram connections and archimate-backed
// diagram objects.
const (
	ConnectionType      = "archimate:DiagramModelArchimateConnection"
	ArchimateObjectType = "archimate:DiagramModelArchimateObject"
)

var (
	filenameRe = regexp.MustCompile(`^([A-Za-z0-9_]+)_(.+)\.xml$`)
	strictIDRe = regexp.MustCompile(`^id-[0-9A-Fa-f]{32}$`)
	hrefRe     = regexp.MustCompile(`^([^/\\]+\.xml)#(.+)$`)
)

// SplitFilename splits a content filename into its class token and
// identifier. ok is false when the name does not match <Class>_<id>.xml.
func SplitFilename(name string) (class, id string, ok bool) {
	m := filenameRe.FindStringSubmatch(name)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// ValidStrictID reports whether id matches the id-<32 hex> form.
func ValidStrictID(id string) bool {
	return strictIDRe.MatchString(id)
}

// SplitHref splits a reference of the form Filename.xml#fragment. ok is
// false for folder-qualified paths, absolute paths, or a missing fragment.
func SplitHref(href string) (file, fragment string, ok bool) {
	m := hrefRe.FindStringSubmatch(href)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// IsRelationship reports whether a root tag names a relationship document.
func IsRelationship(class string) bool {
	return strings.HasSuffix(class, "Relationship")
}

// IsDiagram reports whether a root tag is one of the diagram kinds.
func IsDiagram(class string) bool {
	_, ok := diagramRoots[class]
	return ok
}

// IsDiagramObjectTag reports whether a tag's ids belong to a diagram's
// own object set.
func IsDiagramObjectTag(tag string) bool {
	_, ok := diagramObjectTags[tag]
	return ok
}
