package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/dribeiro/datahub/internal/httpx"
	"github.com/dribeiro/datahub/internal/model"
	"github.com/oliveagle/jsonpath"
)

// previewBodyLimit caps how much of the upstream response is read.
const previewBodyLimit = 64 * 1024

// UpstreamError carries a non-success status returned by the probed source.
type UpstreamError struct {
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("source returned status %d", e.StatusCode)
}

// ProbeResult is the successful outcome of a connectivity test.
type ProbeResult struct {
	StatusCode int         `json:"statusCode"`
	DurationMs int64       `json:"durationMs"`
	Preview    interface{} `json:"preview"`
	Sample     interface{} `json:"sample,omitempty"`
}

// ProbeService performs the synchronous admin connectivity test against an
// upstream source API.
type ProbeService struct {
	client *httpx.RetryingClient
}

// NewProbeService creates a new probe service
func NewProbeService(client *httpx.RetryingClient) *ProbeService {
	return &ProbeService{
		client: client,
	}
}

// Test probes the source URL with optional credential injection and returns
// a JSON preview. When the request carries a recordsPath, the matching
// fragment is extracted as a sample.
func (s *ProbeService) Test(ctx context.Context, req *model.ProbeRequest) (*ProbeResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	headers := buildAuthHeaders(req.Auth)

	slog.Info("Probing source connectivity", "url", req.URL, "auth_type", req.Auth.Type)

	start := time.Now()
	resp, err := s.client.Get(ctx, req.URL, headers)
	if err != nil {
		return nil, fmt.Errorf("source unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, previewBodyLimit))
		return nil, &UpstreamError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, previewBodyLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to read source response: %w", err)
	}

	var preview interface{}
	if err := json.Unmarshal(body, &preview); err != nil {
		return nil, fmt.Errorf("%w: source response is not valid JSON", ErrValidation)
	}

	result := &ProbeResult{
		StatusCode: resp.StatusCode,
		DurationMs: time.Since(start).Milliseconds(),
		Preview:    preview,
	}

	if req.RecordsPath != "" {
		sample, err := jsonpath.JsonPathLookup(preview, req.RecordsPath)
		if err != nil {
			slog.Debug("JSONPath sample extraction failed",
				"expression", req.RecordsPath,
				"error", err.Error(),
			)
		} else {
			result.Sample = sample
		}
	}

	return result, nil
}

// buildAuthHeaders translates probe auth into outbound request headers.
func buildAuthHeaders(auth model.ProbeAuth) map[string]string {
	headers := make(map[string]string)
	switch strings.ToLower(auth.Type) {
	case "bearer":
		headers["Authorization"] = "Bearer " + auth.Token
	case "api-key":
		name := auth.Header
		if name == "" {
			name = "X-API-Key"
		}
		headers[name] = auth.APIKey
	}
	return headers
}
