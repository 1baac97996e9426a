package pubmed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ppaxe-backend-controller/logging"
)

const efetchBody = `<?xml version="1.0" ?>
<!DOCTYPE PubmedArticleSet PUBLIC "-//NLM//DTD PubMedArticle, 1st January 2019//EN" "https://dtd.nlm.nih.gov/ncbi/pubmed/out/pubmed_190101.dtd">
<PubmedArticleSet>
<PubmedArticle>
  <MedlineCitation Status="MEDLINE" Owner="NLM">
    <PMID Version="1">1234</PMID>
    <Article PubModel="Print">
      <ArticleTitle>MAPK binds MAPK4 in <i>C. elegans</i>.</ArticleTitle>
      <Abstract>
        <AbstractText Label="BACKGROUND">Akt3 is phosphorylated by MAPK.</AbstractText>
        <AbstractText Label="RESULTS">Levels of Ca<sup>2+</sup> rise.</AbstractText>
      </Abstract>
    </Article>
  </MedlineCitation>
</PubmedArticle>
<PubmedArticle>
  <MedlineCitation Status="MEDLINE" Owner="NLM">
    <PMID Version="1">5678</PMID>
    <Article PubModel="Print">
      <ArticleTitle>No abstract here.</ArticleTitle>
    </Article>
  </MedlineCitation>
</PubmedArticle>
</PubmedArticleSet>`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	logging.SetDefaultConfig(logging.GenerateTestConfig(t))

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := GenerateTestConfig()
	cfg.URL = server.URL
	return NewClient(cfg, logging.NewLogger())
}

func TestFetchAbstracts(t *testing.T) {
	var query string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		_, _ = w.Write([]byte(efetchBody))
	})

	abstracts, err := client.FetchAbstracts(context.Background(), []string{"1234", "5678"})
	require.Nil(t, err)
	assert.Contains(t, query, "db=pubmed")
	assert.Contains(t, query, "retmode=xml")
	assert.Contains(t, query, "id=1234%2C5678")

	require.Equal(t, 2, len(abstracts))
	assert.Equal(t, "1234", abstracts[0].PMID)
	assert.Equal(t, "MAPK binds MAPK4 in C. elegans.", abstracts[0].Title)
	assert.Equal(t, "Akt3 is phosphorylated by MAPK. Levels of Ca2+ rise.", abstracts[0].Abstract)
	assert.Equal(t, "MAPK binds MAPK4 in C. elegans. Akt3 is phosphorylated by MAPK. Levels of Ca2+ rise.", abstracts[0].Text())

	assert.Equal(t, "5678", abstracts[1].PMID)
	assert.Empty(t, abstracts[1].Abstract)
	assert.Equal(t, "No abstract here.", abstracts[1].Text())
}

func TestFetchAbstracts_Batches(t *testing.T) {
	var calls []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.URL.Query().Get("id"))
		_, _ = w.Write([]byte("<PubmedArticleSet></PubmedArticleSet>"))
	})
	client.config.BatchSize = 2

	abstracts, err := client.FetchAbstracts(context.Background(), []string{"1", "2", "3"})
	require.Nil(t, err)
	assert.Empty(t, abstracts)
	assert.Equal(t, []string{"1,2", "3"}, calls)
}

func TestFetchAbstracts_Unavailable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.FetchAbstracts(context.Background(), []string{"1"})
	assert.True(t, errors.Is(err, ErrServiceUnavailable))
}

func TestFetchAbstracts_MalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("<", 3)))
	})

	_, err := client.FetchAbstracts(context.Background(), []string{"1"})
	assert.True(t, errors.Is(err, ErrServiceUnavailable))
}
