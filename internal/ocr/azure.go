package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const analyzePath = "/vision/v3.2/read/analyze"

type azure struct {
	endpoint     string
	key          string
	language     string
	pollInterval time.Duration
	timeout      time.Duration
	client       *http.Client
	logger       *slog.Logger
}

func newAzure(cfg *Config, logger *slog.Logger) *azure {
	return &azure{
		endpoint:     strings.TrimRight(cfg.Endpoint, "/"),
		key:          cfg.Key,
		language:     cfg.Language,
		pollInterval: cfg.PollIntervalDuration(),
		timeout:      cfg.TimeoutDuration(),
		client:       &http.Client{},
		logger:       logger.With("system", "ocr"),
	}
}

func (a *azure) Name() string {
	return EngineAzure
}

// RecognizePNG submits the image to the Read API and polls the returned
// operation until it completes.
func (a *azure) RecognizePNG(ctx context.Context, image []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	operation, err := a.analyze(ctx, image)
	if err != nil {
		return "", err
	}

	return a.poll(ctx, operation)
}

func (a *azure) analyze(ctx context.Context, image []byte) (string, error) {
	endpoint := a.endpoint + analyzePath
	if a.language != "" {
		endpoint += "?language=" + url.QueryEscape(a.language)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(image))
	if err != nil {
		return "", fmt.Errorf("create analyze request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", a.key)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("submit analyze request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("analyze request rejected: %d: %s", resp.StatusCode, body)
	}

	operation := resp.Header.Get("Operation-Location")
	if operation == "" {
		return "", ErrMissingOperation
	}

	return operation, nil
}

func (a *azure) poll(ctx context.Context, operation string) (string, error) {
	ticker := time.NewTicker(a.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("read operation: %w", ctx.Err())
		case <-ticker.C:
		}

		result, err := a.fetchResult(ctx, operation)
		if err != nil {
			return "", err
		}

		switch result.Status {
		case "succeeded":
			return flatten(result), nil
		case "failed":
			return "", ErrOperationFailed
		}
	}
}

func (a *azure) fetchResult(ctx context.Context, operation string) (*readResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, operation, nil)
	if err != nil {
		return nil, fmt.Errorf("create result request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", a.key)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch read result: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("read result status: %d", resp.StatusCode)
	}

	var result readResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode read result: %w", err)
	}

	return &result, nil
}

type readResult struct {
	Status        string `json:"status"`
	AnalyzeResult struct {
		ReadResults []struct {
			Lines []struct {
				Text string `json:"text"`
			} `json:"lines"`
		} `json:"readResults"`
	} `json:"analyzeResult"`
}

func flatten(result *readResult) string {
	var sb strings.Builder
	for _, page := range result.AnalyzeResult.ReadResults {
		for _, line := range page.Lines {
			sb.WriteString(line.Text)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
