package checks

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/starford/graflint/internal/catalog"
	"github.com/starford/graflint/internal/testutil"
)

const objectO1 = `<DiagramModelArchimateObject xsi:type="archimate:DiagramModelArchimateObject" id="o1">
  <bounds x="0" y="0" w="120" h="55"/>
  <archimateElement xsi:type="archimate:BusinessActor" href="BusinessActor_id-a.xml#id-a"/>
</DiagramModelArchimateObject>`

const objectO2 = `<DiagramModelArchimateObject xsi:type="archimate:DiagramModelArchimateObject" id="o2">
  <bounds x="200" y="0" w="120" h="55"/>
  <archimateElement xsi:type="archimate:BusinessProcess" href="BusinessProcess_id-b.xml#id-b"/>
</DiagramModelArchimateObject>`

func connection(source, target string) string {
	return `<DiagramModelArchimateConnection xsi:type="archimate:DiagramModelArchimateConnection" id="c1" source="` + source + `" target="` + target + `">
  <archimateRelationship xsi:type="archimate:ServingRelationship" href="ServingRelationship_id-r.xml#id-r"/>
</DiagramModelArchimateConnection>`
}

func writeDiagram(t *testing.T, root, name, inner string) {
	t.Helper()
	testutil.WriteFile(t, root,
		filepath.Join("model", "Diagrams", name),
		testutil.DiagramXML("id-d", inner))
}

func TestDiagrams_WellFormedPasses(t *testing.T) {
	root := testutil.NewRepo(t)
	writeDiagram(t, root, "ArchimateDiagramModel_id-d.xml", objectO1+objectO2+connection("o1", "o2"))
	store := testutil.NewStore(t, root)
	ix, _ := testutil.BuildIndex(t, store)

	if b := Diagrams(ix, store, &catalog.RuleSet{}); b.HasErrors() {
		t.Fatalf("unexpected errors: %+v", b.Errors())
	}
}

func TestDiagrams_DanglingTargetEndpoint(t *testing.T) {
	root := testutil.NewRepo(t)
	writeDiagram(t, root, "ArchimateDiagramModel_id-d.xml", objectO1+objectO2+connection("o1", "o3"))
	store := testutil.NewStore(t, root)
	ix, _ := testutil.BuildIndex(t, store)

	b := Diagrams(ix, store, &catalog.RuleSet{})
	errs := b.Errors()
	if len(errs) != 1 {
		t.Fatalf("errors = %d, want 1: %+v", len(errs), errs)
	}
	if !strings.Contains(errs[0].Message, "target not found") || !strings.Contains(errs[0].Message, "o3") {
		t.Errorf("error = %q", errs[0].Message)
	}
}

func TestDiagrams_EndpointInSiblingDiagramStillDangles(t *testing.T) {
	root := testutil.NewRepo(t)
	// o2 exists, but only in the other diagram file. Connection
	// endpoints are local to their own diagram.
	writeDiagram(t, root, "ArchimateDiagramModel_id-d.xml", objectO1+connection("o1", "o2"))
	testutil.WriteFile(t, root,
		filepath.Join("model", "Diagrams", "ArchimateDiagramModel_id-e.xml"),
		testutil.DiagramXML("id-e", objectO2))
	store := testutil.NewStore(t, root)
	ix, _ := testutil.BuildIndex(t, store)

	b := Diagrams(ix, store, &catalog.RuleSet{})
	errs := b.Errors()
	if len(errs) != 1 {
		t.Fatalf("errors = %d, want 1: %+v", len(errs), errs)
	}
	if !strings.Contains(errs[0].Message, "o2") {
		t.Errorf("error = %q", errs[0].Message)
	}
}

func TestDiagrams_MissingBackingRelationship(t *testing.T) {
	root := testutil.NewRepo(t)
	writeDiagram(t, root, "ArchimateDiagramModel_id-d.xml", objectO1+objectO2+
		`<DiagramModelArchimateConnection xsi:type="archimate:DiagramModelArchimateConnection" id="c1" source="o1" target="o2"/>`)
	store := testutil.NewStore(t, root)
	ix, _ := testutil.BuildIndex(t, store)

	b := Diagrams(ix, store, &catalog.RuleSet{})
	errs := b.Errors()
	if len(errs) != 1 {
		t.Fatalf("errors = %d, want 1: %+v", len(errs), errs)
	}
	if !strings.Contains(errs[0].Message, "archimateRelationship") {
		t.Errorf("error = %q", errs[0].Message)
	}
}

func TestDiagrams_RelationshipMissingHref(t *testing.T) {
	root := testutil.NewRepo(t)
	writeDiagram(t, root, "ArchimateDiagramModel_id-d.xml", objectO1+objectO2+
		`<DiagramModelArchimateConnection xsi:type="archimate:DiagramModelArchimateConnection" id="c1" source="o1" target="o2">
  <archimateRelationship xsi:type="archimate:ServingRelationship"/>
</DiagramModelArchimateConnection>`)
	store := testutil.NewStore(t, root)
	ix, _ := testutil.BuildIndex(t, store)

	b := Diagrams(ix, store, &catalog.RuleSet{})
	errs := b.Errors()
	if len(errs) != 1 {
		t.Fatalf("errors = %d, want 1: %+v", len(errs), errs)
	}
	if !strings.Contains(errs[0].Message, "href") {
		t.Errorf("error = %q", errs[0].Message)
	}
}

func TestDiagrams_ObjectMissingBoundsAndElement(t *testing.T) {
	root := testutil.NewRepo(t)
	writeDiagram(t, root, "ArchimateDiagramModel_id-d.xml",
		`<DiagramModelArchimateObject xsi:type="archimate:DiagramModelArchimateObject" id="o1"/>`)
	store := testutil.NewStore(t, root)
	ix, _ := testutil.BuildIndex(t, store)

	b := Diagrams(ix, store, &catalog.RuleSet{})
	errs := b.Errors()
	if len(errs) != 2 {
		t.Fatalf("errors = %d, want 2: %+v", len(errs), errs)
	}
}

func TestDiagrams_LegalityRecheckFromDiagramTypes(t *testing.T) {
	root := testutil.NewRepo(t)
	// The diagram shows a ServingRelationship between a Node and a
	// BusinessProcess; the rules only allow it between business elements.
	writeDiagram(t, root, "ArchimateDiagramModel_id-d.xml",
		strings.Replace(objectO1, "archimate:BusinessActor", "archimate:Node", 1)+objectO2+connection("o1", "o2"))
	testutil.WriteFile(t, root, filepath.Join("types", "relationships.json"), `{
		"groups": {"BusinessElements": ["BusinessActor", "BusinessProcess"]},
		"rules": [{"relationship": "ServingRelationship", "sourceGroup": "BusinessElements", "targetGroup": "BusinessElements"}]
	}`)
	store := testutil.NewStore(t, root)
	ix, _ := testutil.BuildIndex(t, store)

	rules, err := catalog.LoadRules(root)
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	b := Diagrams(ix, store, rules)
	errs := b.Errors()
	if len(errs) != 1 {
		t.Fatalf("errors = %d, want 1: %+v", len(errs), errs)
	}
	if !strings.Contains(errs[0].Message, "not allowed between Node and BusinessProcess") {
		t.Errorf("error = %q", errs[0].Message)
	}
}

func TestDiagrams_SketchModelChecked(t *testing.T) {
	root := testutil.NewRepo(t)
	testutil.WriteFile(t, root,
		filepath.Join("model", "Diagrams", "SketchModel_id-s.xml"),
		`<archimate:SketchModel xmlns:archimate="http://www.archimatetool.com/archimate" xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" id="id-s">`+
			connection("o1", "o2")+`</archimate:SketchModel>`)
	store := testutil.NewStore(t, root)
	ix, _ := testutil.BuildIndex(t, store)

	b := Diagrams(ix, store, &catalog.RuleSet{})
	// Both endpoints dangle: no objects exist in the sketch.
	if len(b.Errors()) != 2 {
		t.Fatalf("errors = %d, want 2: %+v", len(b.Errors()), b.Errors())
	}
}
