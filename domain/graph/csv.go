package graph

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"ppaxe-backend-controller/domain/report"
	"ppaxe-backend-controller/utils"
)

type csvBuilder struct {
	buf    bytes.Buffer
	writer *csv.Writer
}

func newCSVBuilder(header ...string) (*csvBuilder, error) {
	b := &csvBuilder{}
	b.writer = csv.NewWriter(&b.buf)
	if err := b.record(header...); err != nil {
		return nil, utils.WrapError(err, "write header fail")
	}
	return b, nil
}

func (b *csvBuilder) record(fields ...string) error {
	return b.writer.Write(fields)
}

func (b *csvBuilder) Bytes() ([]byte, error) {
	b.writer.Flush()
	if err := b.writer.Error(); err != nil {
		return nil, utils.WrapError(err, "flush csv fail")
	}
	return b.buf.Bytes(), nil
}

// ProteinCSV writes symbol,total_count,int_count in the order of the protein table.
func ProteinCSV(proteins *report.ProteinSummary, key report.ProteinSortKey) ([]byte, error) {
	builder, err := newCSVBuilder("symbol", "total_count", "int_count")
	if err != nil {
		return nil, err
	}

	for _, p := range proteins.Sorted(key) {
		err := builder.record(p.Canonical, strconv.Itoa(p.TotalCount), strconv.Itoa(p.IntCount()))
		if err != nil {
			return nil, utils.WrapErrorf(err, "record protein [%s] fail", p.Canonical)
		}
	}

	return builder.Bytes()
}

// InteractionCSV writes protein_a,protein_b,confidence,pmid, one line per edge.
func InteractionCSV(g *report.GraphSummary) ([]byte, error) {
	builder, err := newCSVBuilder("protein_a", "protein_b", "confidence", "pmid")
	if err != nil {
		return nil, err
	}

	for _, edge := range g.SortedEdges() {
		c := edge.Exemplar
		err := builder.record(c.Prot1.Canonical, c.Prot2.Canonical, edge.ConfidenceString(), c.ArticleID())
		if err != nil {
			return nil, utils.WrapErrorf(err, "record interaction %s fail", c.String())
		}
	}

	return builder.Bytes()
}
