package report

import (
	"fmt"
	"html"
	"sort"

	"ppaxe-backend-controller/domain/ppi"
)

type pairKey struct {
	a, b string
}

func newPairKey(c *ppi.InteractionCandidate) pairKey {
	a, b := c.Prot1.Canonical, c.Prot2.Canonical
	if b < a {
		a, b = b, a
	}
	return pairKey{a, b}
}

/*
InteractionEdge is one unordered pair of canonical symbols.

	Exemplar: the contributing candidate with the highest score, the first one when none is scored
	Confidence: highest score among contributing candidates, nil when none is scored
*/
type InteractionEdge struct {
	Exemplar   *ppi.InteractionCandidate
	Confidence *float64
	Candidates int
}

func (e *InteractionEdge) add(c *ppi.InteractionCandidate) {
	e.Candidates++
	if !c.Scored() {
		return
	}
	if e.Confidence == nil || *c.Score > *e.Confidence {
		score := *c.Score
		e.Confidence = &score
		e.Exemplar = c
	}
}

func (e *InteractionEdge) confidenceOrder() float64 {
	if e.Confidence == nil {
		return -1
	}
	return *e.Confidence
}

func (e *InteractionEdge) ConfidenceString() string {
	if e.Confidence == nil {
		return "NA"
	}
	return fmt.Sprintf("%.3f", *e.Confidence)
}

/*
GraphSummary collapses every candidate into edges, whatever its score.

	Interactions: every candidate, duplicates kept
	Edges: first-seen order
*/
type GraphSummary struct {
	Interactions []*ppi.InteractionCandidate
	Edges        []*InteractionEdge
	index        map[pairKey]*InteractionEdge
}

func NewGraphSummary() *GraphSummary {
	return &GraphSummary{
		index: make(map[pairKey]*InteractionEdge),
	}
}

func SummarizeGraph(candidates []*ppi.InteractionCandidate) *GraphSummary {
	ret := NewGraphSummary()
	for _, c := range candidates {
		ret.Add(c)
	}
	return ret
}

func (g *GraphSummary) Add(c *ppi.InteractionCandidate) {
	g.Interactions = append(g.Interactions, c)

	key := newPairKey(c)
	edge, ok := g.index[key]
	if !ok {
		edge = &InteractionEdge{Exemplar: c}
		g.index[key] = edge
		g.Edges = append(g.Edges, edge)
	}
	edge.add(c)
}

func (g *GraphSummary) UniqInteractions() int {
	return len(g.Edges)
}

// Edge finds the edge of two symbols in either order and any spelling.
func (g *GraphSummary) Edge(symbolA, symbolB string) (*InteractionEdge, bool) {
	a, b := ppi.Canonicalize(symbolA), ppi.Canonicalize(symbolB)
	if b < a {
		a, b = b, a
	}
	edge, ok := g.index[pairKey{a, b}]
	return edge, ok
}

// SortedEdges orders by confidence, descending; unscored edges last, ties in first-seen order.
func (g *GraphSummary) SortedEdges() []*InteractionEdge {
	ret := append([]*InteractionEdge(nil), g.Edges...)
	sort.SliceStable(ret, func(i, j int) bool {
		return ret[i].confidenceOrder() > ret[j].confidenceOrder()
	})
	return ret
}

func (g *GraphSummary) Table() *Table {
	table := &Table{
		Header: []string{"Confidence", "Protein A", "Protein B", "Official symbol A", "Official symbol B", "PMID", "Sentence"},
	}

	for _, edge := range g.SortedEdges() {
		c := edge.Exemplar
		table.Rows = append(table.Rows, []string{
			edge.ConfidenceString(),
			html.EscapeString(c.Prot1.Symbol),
			html.EscapeString(c.Prot2.Symbol),
			html.EscapeString(c.Prot1.Canonical),
			html.EscapeString(c.Prot2.Canonical),
			PubMedAnchor(c.ArticleID()),
			InteractionHTML(c.Sentence),
		})
	}

	return table
}
