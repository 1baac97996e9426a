package pubmed

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"ppaxe-backend-controller/utils"
)

const DefaultEFetchURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/efetch.fcgi"

var ErrServiceUnavailable = errors.New("pubmed service unavailable")

type Config struct {
	// efetch endpoint
	URL     string
	APIKey  string
	Timeout time.Duration
	// PMIDs per request
	BatchSize int
}

func GenerateTestConfig() *Config {
	return &Config{
		URL:       DefaultEFetchURL,
		Timeout:   30 * time.Second,
		BatchSize: 200,
	}
}

type Abstract struct {
	PMID     string
	Title    string
	Abstract string
}

// Text is what the pipeline reads: the title followed by the abstract.
func (a *Abstract) Text() string {
	if len(a.Title) == 0 {
		return a.Abstract
	}
	if len(a.Abstract) == 0 {
		return a.Title
	}
	return a.Title + " " + a.Abstract
}

type Client struct {
	config Config
	client *http.Client
	logger *logrus.Logger
}

func NewClient(config *Config, logger *logrus.Logger) *Client {
	cfg := *config
	if len(cfg.URL) == 0 {
		cfg.URL = DefaultEFetchURL
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 200
	}

	return &Client{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

/*
FetchAbstracts returns the articles in the order efetch answers them. PMIDs unknown to PubMed are
missing from the result.
*/
func (c *Client) FetchAbstracts(ctx context.Context, pmids []string) ([]Abstract, error) {
	ret := make([]Abstract, 0, len(pmids))

	for start := 0; start < len(pmids); start += c.config.BatchSize {
		end := start + c.config.BatchSize
		if end > len(pmids) {
			end = len(pmids)
		}

		batch, err := c.fetch(ctx, pmids[start:end])
		if err != nil {
			return nil, utils.WrapErrorf(err, "fetch pmids [%d, %d) fail", start, end)
		}
		ret = append(ret, batch...)
	}

	c.logger.Infof("fetched %d of %d pubmed abstracts", len(ret), len(pmids))
	return ret, nil
}

func (c *Client) fetch(ctx context.Context, pmids []string) ([]Abstract, error) {
	query := url.Values{}
	query.Set("db", "pubmed")
	query.Set("retmode", "xml")
	query.Set("id", strings.Join(pmids, ","))
	if len(c.config.APIKey) != 0 {
		query.Set("api_key", c.config.APIKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.URL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, utils.WrapError(err, "build efetch request fail")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, utils.WrapError(ctx.Err(), "efetch request canceled")
		}
		return nil, utils.WrapErrorf(ErrServiceUnavailable, "get efetch fail: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, utils.WrapErrorf(ErrServiceUnavailable, "read efetch response fail: %v", err)
	}

	if resp.StatusCode/100 != 2 {
		return nil, utils.WrapErrorf(ErrServiceUnavailable, "efetch answered status=%d", resp.StatusCode)
	}

	return parseArticleSet(body)
}
