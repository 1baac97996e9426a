package annotate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"ppaxe-backend-controller/domain/ppi"
	"ppaxe-backend-controller/utils"
)

type Config struct {
	// base URL of a Stanford CoreNLP server, e.g. http://localhost:9000
	URL string
	// NER label the server's model gives to proteins
	ProteinLabel string
	// optional path of a custom NER model on the server
	NERModel string
	Timeout  time.Duration
}

func GenerateTestConfig() *Config {
	return &Config{
		URL:          "http://localhost:9000",
		ProteinLabel: ppi.ProteinNER,
		Timeout:      30 * time.Second,
	}
}

/*
CoreNLP annotates sentences with a Stanford CoreNLP server (tokenize, ssplit, pos, ner).
Failures are not retried here.
*/
type CoreNLP struct {
	config     Config
	client     *http.Client
	logger     *logrus.Logger
	properties string
}

func NewCoreNLP(config *Config, logger *logrus.Logger) *CoreNLP {
	properties := map[string]string{
		"annotators":           "tokenize,ssplit,pos,ner",
		"outputFormat":         "json",
		"ssplit.isOneSentence": "true",
	}
	if len(config.NERModel) != 0 {
		properties["ner.model"] = config.NERModel
	}

	propertiesJSON, err := json.Marshal(properties)
	if err != nil {
		panic(err)
	}

	return &CoreNLP{
		config:     *config,
		client:     &http.Client{Timeout: config.Timeout},
		logger:     logger,
		properties: string(propertiesJSON),
	}
}

type coreNLPToken struct {
	Word string `json:"word"`
	POS  string `json:"pos"`
	NER  string `json:"ner"`
}

type coreNLPSentence struct {
	Tokens []coreNLPToken `json:"tokens"`
}

type coreNLPResponse struct {
	Sentences []coreNLPSentence `json:"sentences"`
}

func (c *CoreNLP) Annotate(ctx context.Context, text string) ([]ppi.Token, error) {
	endpoint := strings.TrimRight(c.config.URL, "/") + "/?properties=" + url.QueryEscape(c.properties)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBufferString(text))
	if err != nil {
		return nil, utils.WrapError(err, "build corenlp request fail")
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, utils.WrapError(ctx.Err(), "corenlp request canceled")
		}
		return nil, utils.WrapErrorf(ErrServiceUnavailable, "post to corenlp [%s] fail: %v", c.config.URL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, utils.WrapErrorf(ErrServiceUnavailable, "read corenlp response fail: %v", err)
	}

	if resp.StatusCode/100 != 2 {
		return nil, utils.WrapErrorf(ErrServiceUnavailable, "corenlp answered status=%d body=%#v", resp.StatusCode, string(body))
	}

	var parsed coreNLPResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, utils.WrapErrorf(ErrServiceUnavailable, "json unmarshal corenlp response fail: %v", err)
	}

	tokens := c.toTokens(parsed)
	c.logger.Debugf("corenlp annotated %d tokens for [%s]", len(tokens), text)

	return tokens, nil
}

func (c *CoreNLP) toTokens(parsed coreNLPResponse) []ppi.Token {
	var ret []ppi.Token
	for _, sentence := range parsed.Sentences {
		for _, token := range sentence.Tokens {
			ret = append(ret, ppi.Token{
				Word: token.Word,
				POS:  token.POS,
				NER:  c.mapNER(token.NER),
			})
		}
	}
	return ret
}

func (c *CoreNLP) mapNER(label string) string {
	switch {
	case label == c.config.ProteinLabel:
		return ppi.ProteinNER
	case label == ppi.ProteinNER:
		// the service's own "P" means something else when proteins use another label
		return "O"
	default:
		return label
	}
}

// Ping checks the server's readiness endpoint.
func (c *CoreNLP) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(c.config.URL, "/")+"/ready", nil)
	if err != nil {
		return utils.WrapError(err, "build corenlp ping request fail")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return utils.WrapErrorf(ErrServiceUnavailable, "ping corenlp [%s] fail: %v", c.config.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return utils.WrapErrorf(ErrServiceUnavailable, "corenlp not ready, status=%d", resp.StatusCode)
	}

	return nil
}

func (c *CoreNLP) String() string {
	return fmt.Sprintf("CoreNLP(%s)", c.config.URL)
}
