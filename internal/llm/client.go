package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// Chat message roles in the OpenAI-compatible wire format.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is a single message in a chat completion request.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest holds the parameters for a chat completion call.
type ChatRequest struct {
	Task        TaskType
	Messages    []ChatMessage
	Temperature *float64 // nil uses task default
	MaxTokens   *int     // nil uses task default
}

// ChatResponse holds the result of a chat completion call.
type ChatResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// ChatClient provides access to a chat completion API.
type ChatClient interface {
	// Chat sends the message list and returns the assistant's text reply.
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)

	// Available checks whether the endpoint is reachable.
	Available(ctx context.Context) bool
}

// client implements ChatClient against an OpenAI-compatible HTTP API
// (Deepseek in the default configuration).
type client struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewClient creates a ChatClient for the configured endpoint.
func NewClient(cfg Config, observer Observer) ChatClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &client{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

// chatCompletionRequest is the JSON body sent to POST /v1/chat/completions.
type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// chatCompletionResponse is the JSON body of a chat completion reply.
type chatCompletionResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message ChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func (c *client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	start := time.Now()

	taskCfg := c.cfg.Tasks[req.Task]
	temp := taskCfg.Temperature
	if req.Temperature != nil {
		temp = *req.Temperature
	}
	maxTok := taskCfg.MaxTokens
	if req.MaxTokens != nil {
		maxTok = *req.MaxTokens
	}

	timeoutMs := c.cfg.TaskTimeout(req.Task)
	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeoutMs)*time.Millisecond)
	defer cancel()

	body := chatCompletionRequest{
		Model:       c.cfg.Model,
		Messages:    req.Messages,
		Temperature: temp,
		MaxTokens:   maxTok,
	}

	var lastErr error
	attempts := 1 + c.cfg.MaxRetries

	for i := 0; i < attempts; i++ {
		resp, err := c.doRequest(ctx, body)
		if err == nil {
			latency := time.Since(start).Milliseconds()
			c.observer.OnCallComplete(CallEvent{
				Task:      req.Task,
				Model:     c.cfg.Model,
				LatencyMs: latency,
				Success:   true,
			})
			return &ChatResponse{
				Text:      resp.Choices[0].Message.Content,
				Model:     resp.Model,
				LatencyMs: latency,
			}, nil
		}
		lastErr = err

		// A provider rejection will not improve on retry.
		if IsProviderError(err) || ctx.Err() != nil {
			break
		}
	}

	latency := time.Since(start).Milliseconds()
	c.observer.OnCallComplete(CallEvent{
		Task:      req.Task,
		Model:     c.cfg.Model,
		LatencyMs: latency,
		Success:   false,
		ErrorCode: errorCode(ctx, lastErr),
	})

	switch {
	case ctx.Err() != nil:
		return nil, ErrTimeout
	case IsProviderError(lastErr):
		return nil, lastErr
	case isConnectionError(lastErr):
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
	case c.cfg.MaxRetries > 0:
		return nil, fmt.Errorf("%w: %v", ErrRetryExhausted, lastErr)
	default:
		return nil, lastErr
	}
}

func (c *client) doRequest(ctx context.Context, body chatCompletionRequest) (*chatCompletionResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := c.cfg.Endpoint + "/v1/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var resp chatCompletionResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		if httpResp.StatusCode != http.StatusOK {
			return nil, &ProviderError{StatusCode: httpResp.StatusCode, Message: string(respBody)}
		}
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		msg := string(respBody)
		if resp.Error != nil {
			msg = resp.Error.Message
		}
		return nil, &ProviderError{StatusCode: httpResp.StatusCode, Message: msg}
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, &ProviderError{Message: "response missing message content"}
	}

	return &resp, nil
}

func (c *client) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	url := c.cfg.Endpoint + "/v1/models"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(ctx context.Context, err error) string {
	switch {
	case err == nil:
		return ""
	case ctx.Err() != nil:
		return "TIMEOUT"
	case IsProviderError(err):
		return "PROVIDER"
	case isConnectionError(err):
		return "UNAVAILABLE"
	default:
		return "UNKNOWN"
	}
}
