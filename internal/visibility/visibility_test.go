package visibility

import (
	"errors"
	"strings"
	"testing"

	"github.com/mash-project/hspace/internal/gexf"
)

type fakeCatalog struct {
	public   []string
	byAuthor map[string][]string
	publicOf map[string][]string
	err      error
}

func (f fakeCatalog) PublicNames() ([]string, error) {
	return f.public, f.err
}

func (f fakeCatalog) PublicNamesByAuthor(author string) ([]string, error) {
	return f.publicOf[author], f.err
}

func (f fakeCatalog) NamesByAuthor(author string) ([]string, error) {
	return f.byAuthor[author], f.err
}

const clusteringGEXF = `<gexf xmlns:viz="http://www.gexf.net/1.2draft/viz">
  <graph>
    <nodes>
      <node id="0" label="alice/haar"><viz:position x="0" y="0"/></node>
      <node id="1" label="me/edges"><viz:position x="3" y="4"/></node>
      <node id="2" label="me/draft" public="true"><viz:position x="1" y="1"/></node>
      <node id="3" label="bob/secret"><viz:position x="-1" y="0"/></node>
    </nodes>
    <edges>
      <edge source="0" target="1"/>
    </edges>
  </graph>
</gexf>`

func testCatalog() fakeCatalog {
	return fakeCatalog{
		public: []string{"alice/haar", "me/edges"},
		publicOf: map[string][]string{
			"me": {"me/edges"},
		},
		byAuthor: map[string][]string{
			"me":  {"me/draft", "me/edges"},
			"bob": {"bob/secret"},
		},
	}
}

func readDoc(t *testing.T) *gexf.Document {
	t.Helper()
	doc, err := gexf.Read(strings.NewReader(clusteringGEXF))
	if err != nil {
		t.Fatalf("reading test document: %v", err)
	}
	return doc
}

func TestRestrict(t *testing.T) {
	doc := readDoc(t)

	res, err := Restrict(doc, testCatalog(), "me", "")
	if err != nil {
		t.Fatalf("Restrict() error = %v", err)
	}

	out := res.Document
	if len(out.Edges) != 0 {
		t.Errorf("edges kept: %v", out.Edges)
	}
	if res.Removed != 1 {
		t.Errorf("Removed = %d, want 1", res.Removed)
	}

	tests := []struct {
		label        string
		public, user bool
	}{
		{"alice/haar", true, false},
		{"me/edges", true, true},
		{"me/draft", false, true},
	}
	if len(out.Nodes) != len(tests) {
		t.Fatalf("got %d nodes, want %d", len(out.Nodes), len(tests))
	}
	for i, tt := range tests {
		n := out.Nodes[i]
		if n.Label != tt.label || n.Public != tt.public || n.User != tt.user {
			t.Errorf("node %d = %s public=%v user=%v, want %s public=%v user=%v",
				i, n.Label, n.Public, n.User, tt.label, tt.public, tt.user)
		}
		if n.Dist != nil {
			t.Errorf("node %s has dist without a reference", n.Label)
		}
	}

	if len(doc.Nodes) != 4 || len(doc.Edges) != 1 {
		t.Error("Restrict() modified its input")
	}
}

func TestRestrict_AnonymousSeesPublicOnly(t *testing.T) {
	res, err := Restrict(readDoc(t), testCatalog(), "", "")
	if err != nil {
		t.Fatal(err)
	}

	var labels []string
	for _, n := range res.Document.Nodes {
		labels = append(labels, n.Label)
		if n.User {
			t.Errorf("%s marked as owned for anonymous viewer", n.Label)
		}
	}
	if strings.Join(labels, ",") != "alice/haar,me/edges" {
		t.Errorf("visible = %v", labels)
	}
}

func TestRestrict_Reference(t *testing.T) {
	res, err := Restrict(readDoc(t), testCatalog(), "me", "alice/haar")
	if err != nil {
		t.Fatal(err)
	}
	if res.Reference != "alice/haar" {
		t.Errorf("Reference = %q", res.Reference)
	}

	want := map[string]float64{
		"alice/haar": 0,
		"me/edges":   25,
		"me/draft":   2,
	}
	for _, n := range res.Document.Nodes {
		if n.Dist == nil {
			t.Fatalf("%s has no dist", n.Label)
		}
		if *n.Dist != want[n.Label] {
			t.Errorf("dist(%s) = %v, want %v", n.Label, *n.Dist, want[n.Label])
		}
	}
}

func TestRestrict_ReferenceMayBeHidden(t *testing.T) {
	// bob/secret is not visible to "me" but still anchors the distances.
	res, err := Restrict(readDoc(t), testCatalog(), "me", "bob/secret")
	if err != nil {
		t.Fatal(err)
	}
	if res.Reference != "bob/secret" {
		t.Errorf("Reference = %q", res.Reference)
	}
	if d := res.Document.Nodes[0].Dist; d == nil || *d != 1 {
		t.Errorf("dist(alice/haar) = %v, want 1", d)
	}
}

func TestRestrict_UnknownReference(t *testing.T) {
	res, err := Restrict(readDoc(t), testCatalog(), "me", "nobody/none")
	if err != nil {
		t.Fatal(err)
	}
	if res.Reference != "" {
		t.Errorf("Reference = %q, want empty", res.Reference)
	}
	for _, n := range res.Document.Nodes {
		if n.Dist != nil {
			t.Errorf("%s has dist for an unknown reference", n.Label)
		}
	}
}

func TestRestrict_CatalogError(t *testing.T) {
	cat := testCatalog()
	cat.err = errors.New("db closed")

	if _, err := Restrict(readDoc(t), cat, "me", ""); err == nil {
		t.Error("Restrict() succeeded with a failing catalog")
	}
}

func TestSquaredDistance(t *testing.T) {
	got := SquaredDistance(gexf.Position{X: 1, Y: 2}, gexf.Position{X: 4, Y: 6})
	if got != 25 {
		t.Errorf("SquaredDistance() = %v, want 25", got)
	}
}

func TestRestrict_ReferenceMatchesLabelExactly(t *testing.T) {
	src := `<gexf><graph><nodes>
  <node id="0" label="alice/Haar"><position x="0" y="0"/></node>
  <node id="1" label="alice/haar"><position x="3" y="4"/></node>
</nodes></graph></gexf>`
	doc, err := gexf.Read(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	cat := fakeCatalog{public: []string{"alice/Haar", "alice/haar"}}

	res, err := Restrict(doc, cat, "", "alice/Haar")
	if err != nil {
		t.Fatal(err)
	}
	if res.Reference != "alice/Haar" {
		t.Fatalf("Reference = %q, want alice/Haar", res.Reference)
	}
	if d := res.Document.Nodes[1].Dist; d == nil || *d != 25 {
		t.Errorf("dist(alice/haar) = %v, want 25", d)
	}
}

func TestRankByReference(t *testing.T) {
	tests := []struct {
		name      string
		reference string
		want      map[string]float64 // nil when no ranking happens
	}{
		{
			name:      "visible reference",
			reference: "me/edges",
			want:      map[string]float64{"alice/haar": 25, "me/edges": 0, "me/draft": 13, "bob/secret": 32},
		},
		{
			name:      "unknown reference",
			reference: "nobody/none",
		},
		{
			name:      "empty reference",
			reference: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := readDoc(t)
			stale := 99.0
			doc.Nodes[0].Dist = &stale

			ok := RankByReference(doc, doc, tt.reference)
			if ok != (tt.want != nil) {
				t.Fatalf("RankByReference() = %v", ok)
			}
			if tt.want == nil {
				if d := doc.Nodes[0].Dist; d == nil || *d != stale {
					t.Errorf("document changed without a reference: dist = %v", d)
				}
				return
			}
			for _, n := range doc.Nodes {
				if n.Dist == nil || *n.Dist != tt.want[n.Label] {
					t.Errorf("dist(%s) = %v, want %v", n.Label, n.Dist, tt.want[n.Label])
				}
			}
		})
	}
}

func TestRankByReference_OtherDocument(t *testing.T) {
	full := readDoc(t)
	res, err := Restrict(full, testCatalog(), "me", "")
	if err != nil {
		t.Fatal(err)
	}

	if !RankByReference(res.Document, full, "bob/secret") {
		t.Fatal("RankByReference() did not find a node of the source document")
	}
	if d := res.Document.Nodes[0].Dist; d == nil || *d != 1 {
		t.Errorf("dist(alice/haar) = %v, want 1", d)
	}
}
