package report

import (
	"strconv"
	"strings"

	"ppaxe-backend-controller/domain/ppi"
)

type Counts struct {
	Articles           int `json:"articles"`
	Sentences          int `json:"sentences"`
	Candidates         int `json:"candidates"`
	Accepted           int `json:"accepted"`
	UniqueInteractions int `json:"unique_interactions"`
}

/*
Report is both summaries over one corpus.

	Proteins: interaction counts follow policy
	Graph: built from every candidate
*/
type Report struct {
	Counts   Counts
	Proteins *ProteinSummary
	Graph    *GraphSummary
	policy   AcceptPolicy
}

func newReport(policy AcceptPolicy) *Report {
	return &Report{
		Proteins: NewProteinSummary(policy),
		Graph:    NewGraphSummary(),
		policy:   policy,
	}
}

func NewReport(articles []*ppi.Article, policy AcceptPolicy) *Report {
	ret := newReport(policy)

	ret.Counts.Articles = len(articles)
	for _, article := range articles {
		ret.Counts.Sentences += len(article.Sentences)
		for _, sentence := range article.Sentences {
			ret.Proteins.AddSentence(sentence)
			for _, c := range sentence.Candidates {
				ret.addCandidate(c)
			}
		}
	}
	ret.Counts.UniqueInteractions = ret.Graph.UniqInteractions()

	return ret
}

// NewCandidateReport summarizes candidates whose articles are not at hand.
func NewCandidateReport(candidates []*ppi.InteractionCandidate, policy AcceptPolicy) *Report {
	ret := newReport(policy)

	articles := make(map[string]struct{})
	sentences := make(map[*ppi.Sentence]struct{})
	for _, c := range candidates {
		articles[c.ArticleID()] = struct{}{}
		sentences[c.Sentence] = struct{}{}
		ret.Add(c)
	}

	ret.Counts.Articles = len(articles)
	ret.Counts.Sentences = len(sentences)
	ret.Counts.UniqueInteractions = ret.Graph.UniqInteractions()
	return ret
}

func (r *Report) Add(c *ppi.InteractionCandidate) {
	r.Proteins.Add(c)
	r.addCandidate(c)
}

func (r *Report) addCandidate(c *ppi.InteractionCandidate) {
	r.Counts.Candidates++
	if r.policy.Accepts(c) {
		r.Counts.Accepted++
	}
	r.Graph.Add(c)
}

func (r *Report) countsTable() *Table {
	return &Table{
		Header: []string{"Articles", "Sentences", "Candidates", "Accepted", "Unique interactions"},
		Rows: [][]string{{
			strconv.Itoa(r.Counts.Articles),
			strconv.Itoa(r.Counts.Sentences),
			strconv.Itoa(r.Counts.Candidates),
			strconv.Itoa(r.Counts.Accepted),
			strconv.Itoa(r.Counts.UniqueInteractions),
		}},
	}
}

func (r *Report) Markdown(key ProteinSortKey) string {
	var sb strings.Builder
	sb.WriteString("# PPI report\n\n")
	sb.WriteString(r.countsTable().Markdown())
	sb.WriteString("\n## Proteins\n\n")
	sb.WriteString(r.Proteins.Table(key).Markdown())
	sb.WriteString("\n## Interactions\n\n")
	sb.WriteString(r.Graph.Table().Markdown())
	return sb.String()
}

const htmlHead = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>PPI report</title>
<style>
span.prot { color: #1f5fbf; font-weight: bold; }
span.verb { color: #b03a2e; }
</style>
</head>
<body>`

// HTMLBody is the report without the surrounding document, for embedding or sanitizing.
func (r *Report) HTMLBody(key ProteinSortKey) string {
	parts := []string{
		"<h1>PPI report</h1>",
		r.countsTable().HTML(),
		"<h2>Proteins</h2>",
		r.Proteins.Table(key).HTML(),
		"<h2>Interactions</h2>",
		r.Graph.Table().HTML(),
	}
	return strings.Join(parts, "\n")
}

// HTMLDocument wraps a body fragment into a standalone page carrying the mention styles.
func HTMLDocument(body string) string {
	return strings.Join([]string{htmlHead, body, "</body>", "</html>"}, "\n")
}

func (r *Report) HTML(key ProteinSortKey) string {
	return HTMLDocument(r.HTMLBody(key))
}
