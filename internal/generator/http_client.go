package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"docquiz-service/internal/domain"
)

// HTTPGenerator calls the remote generation service over HTTP. The service
// accepts a multipart form of documents plus generation options and responds
// with the generated quiz.
type HTTPGenerator struct {
	baseURL string
	client  *http.Client
}

// NewHTTPGenerator builds a client for the service at baseURL. A zero timeout
// leaves the request unbounded; callers that want a deadline pass a context
// or a positive timeout.
func NewHTTPGenerator(baseURL string, timeout time.Duration) *HTTPGenerator {
	return &HTTPGenerator{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type generateResponse struct {
	Success bool          `json:"success"`
	Quiz    []rawQuestion `json:"quiz"`
	Error   string        `json:"error"`
}

func (g *HTTPGenerator) Generate(ctx context.Context, files []domain.SourceFile, opts domain.GenerationOptions) (domain.QuestionSet, error) {
	if len(files) == 0 {
		return nil, domain.ErrNoInput
	}

	body, contentType, err := encodeRequest(files, opts)
	if err != nil {
		return nil, &domain.GeneratorError{Reason: "encode request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/api/generate-quiz", body)
	if err != nil {
		return nil, &domain.GeneratorError{Reason: "build request", Err: err}
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, &domain.GeneratorError{Reason: "generation service unreachable", Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, &domain.GeneratorError{Reason: "read response", Err: err}
	}

	var decoded generateResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return nil, &domain.GeneratorError{Reason: fmt.Sprintf("malformed response (status %d)", resp.StatusCode), Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		reason := decoded.Error
		if reason == "" {
			reason = fmt.Sprintf("generation service returned status %d", resp.StatusCode)
		}
		return nil, &domain.GeneratorError{Reason: reason}
	}
	if !decoded.Success {
		reason := decoded.Error
		if reason == "" {
			reason = "generation service reported failure"
		}
		return nil, &domain.GeneratorError{Reason: reason}
	}

	return Sanitize(decoded.Quiz, opts.IncludeExplanations), nil
}

// encodeRequest writes the multipart form the generation service expects:
// one part per file plus the option fields, with question types as a JSON
// array string.
func encodeRequest(files []domain.SourceFile, opts domain.GenerationOptions) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range files {
		part, err := w.CreateFormFile("files", f.Name)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(f.Content); err != nil {
			return nil, "", err
		}
	}

	kinds := make([]string, len(opts.Kinds))
	for i, kind := range opts.Kinds {
		kinds[i] = string(kind)
	}
	kindsJSON, err := json.Marshal(kinds)
	if err != nil {
		return nil, "", err
	}

	fields := map[string]string{
		"question_count":       strconv.Itoa(opts.QuestionCount),
		"difficulty":           opts.Difficulty,
		"question_types":       string(kindsJSON),
		"include_explanations": strconv.FormatBool(opts.IncludeExplanations),
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
