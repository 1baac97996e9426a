package report

import (
	"fmt"
	"html"
	"sort"
	"strconv"

	"ppaxe-backend-controller/domain/ppi"
)

/*
ProteinCount accumulates one canonical symbol.

	TotalCount: candidates mentioning the symbol, once per candidate, plus mentions paired in no candidate
	Left, Right: accepted candidates with the symbol as prot1, as prot2
*/
type ProteinCount struct {
	Canonical  string `json:"symbol"`
	TotalCount int    `json:"total_count"`
	Left       int    `json:"left_count"`
	Right      int    `json:"right_count"`
}

func (p *ProteinCount) IntCount() int {
	return p.Left + p.Right
}

type ProteinSortKey string

const (
	SortByTotalCount ProteinSortKey = "total_count"
	SortByIntCount   ProteinSortKey = "int_count"
	SortByLeftCount  ProteinSortKey = "left_count"
	SortByRightCount ProteinSortKey = "right_count"
)

func ParseProteinSortKey(key string) (ProteinSortKey, error) {
	switch ProteinSortKey(key) {
	case "":
		return SortByIntCount, nil
	case SortByTotalCount, SortByIntCount, SortByLeftCount, SortByRightCount:
		return ProteinSortKey(key), nil
	}
	return "", fmt.Errorf("unknown protein sort key [%s]", key)
}

func (k ProteinSortKey) value(p *ProteinCount) int {
	switch k {
	case SortByTotalCount:
		return p.TotalCount
	case SortByLeftCount:
		return p.Left
	case SortByRightCount:
		return p.Right
	default:
		return p.IntCount()
	}
}

// ProteinSummary keeps proteins in the order they were first seen.
type ProteinSummary struct {
	policy   AcceptPolicy
	proteins []*ProteinCount
	index    map[string]*ProteinCount
}

func NewProteinSummary(policy AcceptPolicy) *ProteinSummary {
	return &ProteinSummary{
		policy: policy,
		index:  make(map[string]*ProteinCount),
	}
}

// SummarizeProteins only sees proteins that are part of some candidate.
func SummarizeProteins(candidates []*ppi.InteractionCandidate, policy AcceptPolicy) *ProteinSummary {
	ret := NewProteinSummary(policy)
	for _, c := range candidates {
		ret.Add(c)
	}
	return ret
}

// SummarizeArticles also lists proteins mentioned in sentences without candidates.
func SummarizeArticles(articles []*ppi.Article, policy AcceptPolicy) *ProteinSummary {
	ret := NewProteinSummary(policy)
	for _, article := range articles {
		for _, sentence := range article.Sentences {
			ret.AddSentence(sentence)
		}
	}
	return ret
}

func (s *ProteinSummary) get(canonical string) *ProteinCount {
	count, ok := s.index[canonical]
	if !ok {
		count = &ProteinCount{Canonical: canonical}
		s.index[canonical] = count
		s.proteins = append(s.proteins, count)
	}
	return count
}

func (s *ProteinSummary) Add(c *ppi.InteractionCandidate) {
	left := s.get(c.Prot1.Canonical)
	right := s.get(c.Prot2.Canonical)

	left.TotalCount++
	right.TotalCount++

	if s.policy.Accepts(c) {
		left.Left++
		right.Right++
	}
}

// AddSentence adds the candidates of sentence; a mention no candidate uses counts once on its own.
func (s *ProteinSummary) AddSentence(sentence *ppi.Sentence) {
	for _, m := range sentence.Mentions {
		s.get(m.Canonical)
	}

	paired := make(map[ppi.ProteinMention]struct{}, 2*len(sentence.Candidates))
	for _, c := range sentence.Candidates {
		s.Add(c)
		paired[c.Prot1] = struct{}{}
		paired[c.Prot2] = struct{}{}
	}

	for _, m := range sentence.Mentions {
		if _, ok := paired[m]; !ok {
			s.get(m.Canonical).TotalCount++
		}
	}
}

// Get looks a protein up by any spelling of its symbol.
func (s *ProteinSummary) Get(symbol string) (ProteinCount, bool) {
	count, ok := s.index[ppi.Canonicalize(symbol)]
	if !ok {
		return ProteinCount{}, false
	}
	return *count, true
}

func (s *ProteinSummary) Len() int {
	return len(s.proteins)
}

// Sorted orders by key, descending; equal keys keep first-seen order.
func (s *ProteinSummary) Sorted(key ProteinSortKey) []ProteinCount {
	ret := make([]ProteinCount, len(s.proteins))
	for i, count := range s.proteins {
		ret[i] = *count
	}

	sort.SliceStable(ret, func(i, j int) bool {
		return key.value(&ret[i]) > key.value(&ret[j])
	})
	return ret
}

func (s *ProteinSummary) Table(key ProteinSortKey) *Table {
	table := &Table{
		Header: []string{"Symbol", "Total count", "Interaction count", "Left count", "Right count"},
	}

	for _, count := range s.Sorted(key) {
		table.Rows = append(table.Rows, []string{
			html.EscapeString(count.Canonical),
			strconv.Itoa(count.TotalCount),
			strconv.Itoa(count.IntCount()),
			strconv.Itoa(count.Left),
			strconv.Itoa(count.Right),
		})
	}

	return table
}
