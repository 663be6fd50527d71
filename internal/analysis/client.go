package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	"go.uber.org/zap"

	"github.com/rsilvagit/jobfit/internal/model"
)

const DefaultEndpoint = "http://127.0.0.1:8000/api/analyze"

// Doer sends HTTP requests.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type ClientOptions struct {
	Endpoint string
	HTTP     Doer
	Logger   *zap.Logger
}

// Client posts the resume and posting as a multipart form to the scoring
// service.
type Client struct {
	endpoint string
	http     Doer
	logger   *zap.Logger
}

func NewClient(opts ClientOptions) *Client {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.HTTP == nil {
		opts.HTTP = &http.Client{Timeout: 2 * time.Minute}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Client{endpoint: opts.Endpoint, http: opts.HTTP, logger: opts.Logger}
}

func (c *Client) Analyze(ctx context.Context, resume model.Resume, posting model.JobPosting) (Result, error) {
	body, contentType, err := encodeForm(resume, posting)
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return Result{}, fmt.Errorf("analysis: building request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("analysis: sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{}, fmt.Errorf("server responded with status: %d", resp.StatusCode)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("analysis: reading response: %w", err)
	}
	c.logger.Debug("analysis received",
		zap.String("endpoint", c.endpoint),
		zap.Int("bytes", len(raw)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return ParseResult(raw)
}

func encodeForm(resume model.Resume, posting model.JobPosting) (io.Reader, string, error) {
	jobData, err := json.Marshal(posting)
	if err != nil {
		return nil, "", fmt.Errorf("analysis: encoding posting: %w", err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="resume"; filename=%q`, resume.Name))
	h.Set("Content-Type", resume.ContentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("analysis: writing resume part: %w", err)
	}
	if _, err := part.Write(resume.Data); err != nil {
		return nil, "", fmt.Errorf("analysis: writing resume part: %w", err)
	}
	if err := mw.WriteField("jobData", string(jobData)); err != nil {
		return nil, "", fmt.Errorf("analysis: writing jobData field: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("analysis: closing form: %w", err)
	}
	return &buf, mw.FormDataContentType(), nil
}
