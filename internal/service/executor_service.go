package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"lumo_backend/internal/config"
	"lumo_backend/internal/util"
	"lumo_backend/pkg/monitoring"
)

// runtimeSpec maps a user-facing language name onto the runtime and
// version the execution service expects.
type runtimeSpec struct {
	Language string
	Version  string
}

var languageTable = map[string]runtimeSpec{
	"python":     {Language: "python", Version: "3.10.0"},
	"javascript": {Language: "javascript", Version: "18.15.0"},
	"c":          {Language: "c", Version: "10.2.0"},
	"cpp":        {Language: "c++", Version: "10.2.0"},
	"java":       {Language: "java", Version: "15.0.2"},
}

// ExecutionResult is the normalized outcome of a code run.
type ExecutionResult struct {
	Output string `json:"output"`
}

// ExecutorService proxies user-submitted code to a Piston-compatible
// sandboxed execution service.
type ExecutorService struct {
	config config.ExecutorConfig
	client *http.Client
}

func NewExecutorService(cfg config.ExecutorConfig) *ExecutorService {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &ExecutorService{
		config: cfg,
		client: &http.Client{Timeout: timeout},
	}
}

type pistonFile struct {
	Content string `json:"content"`
}

type pistonRequest struct {
	Language       string       `json:"language"`
	Version        string       `json:"version"`
	Files          []pistonFile `json:"files"`
	Stdin          string       `json:"stdin"`
	RunTimeout     int          `json:"run_timeout"`
	CompileTimeout int          `json:"compile_timeout"`
}

type pistonResponse struct {
	Run struct {
		Output string `json:"output"`
		Signal string `json:"signal"`
	} `json:"run"`
}

// Execute runs source in the named language. Unknown languages fail
// with util.ErrUnsupportedLanguage; upstream failures are normalized to
// util.ErrExecTimeout / util.ErrUpstream so the controller can map them
// to 504 / 502 without leaking the upstream payload.
func (s *ExecutorService) Execute(ctx context.Context, language, source string) (*ExecutionResult, error) {
	spec, ok := languageTable[strings.ToLower(language)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", util.ErrUnsupportedLanguage, language)
	}

	payload := pistonRequest{
		Language:       spec.Language,
		Version:        spec.Version,
		Files:          []pistonFile{{Content: source}},
		Stdin:          "",
		RunTimeout:     5000,
		CompileTimeout: 10000,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.config.BaseURL+"/execute", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			monitoring.UpstreamCounter.WithLabelValues("executor", "timeout").Inc()
			return nil, util.ErrExecTimeout
		}
		monitoring.UpstreamCounter.WithLabelValues("executor", "transport_error").Inc()
		return nil, fmt.Errorf("%w: %v", util.ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		monitoring.UpstreamCounter.WithLabelValues("executor", "http_error").Inc()
		return nil, fmt.Errorf("%w (status %d)", util.ErrUpstream, resp.StatusCode)
	}

	var result pistonResponse
	if err := json.Unmarshal(body, &result); err != nil {
		monitoring.UpstreamCounter.WithLabelValues("executor", "bad_response").Inc()
		return nil, fmt.Errorf("%w: invalid response", util.ErrUpstream)
	}

	output := result.Run.Output
	if result.Run.Signal != "" {
		output += fmt.Sprintf("\nProcess terminated by signal: %s", result.Run.Signal)
	}
	if output == "" {
		output = "Program executed successfully with no output."
	}

	monitoring.UpstreamCounter.WithLabelValues("executor", "ok").Inc()
	return &ExecutionResult{Output: output}, nil
}

func isTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
