// Package graph builds small relationship graphs over extracted tables:
// a drug's synonym star and the drug-drug interaction network.
package graph

import (
	"io"
	"sort"

	"github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"
	"github.com/nishad/drugrake/internal/errors"
	"github.com/nishad/drugrake/internal/models"
)

// Vertex colors used in DOT output
const (
	ColorDrug    = "red"
	ColorSynonym = "green"
)

// Graph wraps an undirected string-keyed graph.
type Graph struct {
	g graph.Graph[string, string]
}

func newGraph() *Graph {
	return &Graph{g: graph.New(graph.StringHash)}
}

// addVertex adds v, leaving an existing vertex untouched.
func (gr *Graph) addVertex(v string, opts ...func(*graph.VertexProperties)) error {
	err := gr.g.AddVertex(v, opts...)
	if err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
		return err
	}
	return nil
}

// addEdge connects a and b once. Self loops are dropped.
func (gr *Graph) addEdge(a, b string) error {
	if a == b {
		return nil
	}
	err := gr.g.AddEdge(a, b)
	if err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
		return err
	}
	return nil
}

// SynonymGraph builds the star graph of drugID and its synonyms. The drug
// vertex is colored red and every synonym green. A synonym equal to the
// drug id is not added as a separate vertex.
func SynonymGraph(drugID string, synonyms []models.Synonym) (*Graph, error) {
	const op errors.Op = "graph.SynonymGraph"

	gr := newGraph()
	if err := gr.addVertex(drugID, graph.VertexAttribute("color", ColorDrug)); err != nil {
		return nil, errors.E(op, err)
	}
	for _, s := range synonyms {
		if s.DrugbankID != drugID || s.Synonym == drugID {
			continue
		}
		if err := gr.addVertex(s.Synonym, graph.VertexAttribute("color", ColorSynonym)); err != nil {
			return nil, errors.E(op, err)
		}
		if err := gr.addEdge(drugID, s.Synonym); err != nil {
			return nil, errors.E(op, err)
		}
	}
	return gr, nil
}

// InteractionNetwork connects every pair of drugs that interact. Rows
// without a partner id are ignored and the reverse direction of an
// interaction shares its edge.
func InteractionNetwork(interactions []models.Interaction) (*Graph, error) {
	const op errors.Op = "graph.InteractionNetwork"

	gr := newGraph()
	for _, in := range interactions {
		if in.DrugbankID == "" || in.OtherDrugbankID == nil || *in.OtherDrugbankID == "" {
			continue
		}
		other := *in.OtherDrugbankID
		if err := gr.addVertex(in.DrugbankID); err != nil {
			return nil, errors.E(op, err)
		}
		if err := gr.addVertex(other); err != nil {
			return nil, errors.E(op, err)
		}
		if err := gr.addEdge(in.DrugbankID, other); err != nil {
			return nil, errors.E(op, err)
		}
	}
	return gr, nil
}

// Order returns the number of vertices.
func (gr *Graph) Order() int {
	n, err := gr.g.Order()
	if err != nil {
		return 0
	}
	return n
}

// Size returns the number of edges.
func (gr *Graph) Size() int {
	n, err := gr.g.Size()
	if err != nil {
		return 0
	}
	return n
}

// Color returns the color attribute of v, or "" when v is absent or uncolored.
func (gr *Graph) Color(v string) string {
	_, props, err := gr.g.VertexWithProperties(v)
	if err != nil {
		return ""
	}
	return props.Attributes["color"]
}

// Neighbors returns the vertices adjacent to v, sorted. Unknown vertices
// have no neighbors.
func (gr *Graph) Neighbors(v string) []string {
	adj, err := gr.g.AdjacencyMap()
	if err != nil {
		return []string{}
	}
	out := make([]string, 0, len(adj[v]))
	for n := range adj[v] {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Vertices returns every vertex, sorted.
func (gr *Graph) Vertices() []string {
	adj, err := gr.g.AdjacencyMap()
	if err != nil {
		return []string{}
	}
	out := make([]string, 0, len(adj))
	for v := range adj {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// WriteDOT renders the graph in Graphviz DOT format.
func (gr *Graph) WriteDOT(w io.Writer) error {
	return errors.WrapMsg("graph.WriteDOT", "render dot", draw.DOT(gr.g, w))
}
