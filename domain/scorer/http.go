package scorer

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"ppaxe-backend-controller/domain/feature"
	"ppaxe-backend-controller/utils"
)

type predictRequest struct {
	Features []float64 `json:"features"`
	Version  string    `json:"version"`
}

type predictResponse struct {
	Score *float64 `json:"score"`
}

// HTTPClassifier posts the vector to a model server and reads {"score": x}.
type HTTPClassifier struct {
	url    string
	client *http.Client
}

func NewHTTPClassifier(url string, timeout time.Duration) *HTTPClassifier {
	return &HTTPClassifier{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (h *HTTPClassifier) Predict(ctx context.Context, features []float64) (float64, error) {
	body, err := json.Marshal(predictRequest{Features: features, Version: feature.SchemaVersion})
	if err != nil {
		return 0, utils.WrapError(err, "json marshal predict request fail")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, bytes.NewReader(body))
	if err != nil {
		return 0, utils.WrapError(err, "build predict request fail")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, utils.WrapError(ctx.Err(), "predict request canceled")
		}
		return 0, utils.WrapErrorf(ErrServiceUnavailable, "post to classifier [%s] fail: %v", h.url, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, utils.WrapErrorf(ErrServiceUnavailable, "read classifier response fail: %v", err)
	}

	if resp.StatusCode/100 != 2 {
		return 0, utils.WrapErrorf(ErrServiceUnavailable, "classifier answered status=%d body=%#v", resp.StatusCode, string(respBody))
	}

	var parsed predictResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return 0, utils.WrapErrorf(ErrServiceUnavailable, "json unmarshal classifier response fail: %v", err)
	}
	if parsed.Score == nil {
		return 0, utils.WrapErrorf(ErrServiceUnavailable, "classifier response without score: %s", string(respBody))
	}

	return *parsed.Score, nil
}
