package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/lowaak/hiit-timer/internal/config"
	"github.com/lowaak/hiit-timer/internal/workout"
)

// MinAPIKeyLength rejects obviously truncated keys before any request is made
const MinAPIKeyLength = 30

const maxResponseBytes = 4 << 20

var (
	ErrEmptyPrompt   = errors.New("workout prompt is empty")
	ErrMissingAPIKey = errors.New("generator API key is not configured")
	ErrInvalidAPIKey = errors.New("generator API key is not valid")
	ErrEmptyResponse = errors.New("generator returned an empty response")
	ErrMalformedPlan = errors.New("could not parse the generated workout plan, try refining the request")
)

// Generator turns a free-text request into a workout plan
type Generator interface {
	Generate(ctx context.Context, prompt string) (workout.WorkoutPlan, error)
}

// Client calls the Gemini generateContent REST API. Every returned plan has
// passed workout.Validate.
type Client struct {
	httpClient *http.Client
	endpoint   string
	model      string
	apiKey     string
	logger     *log.Logger
}

func NewClient(cfg config.GeneratorConfig, logger *log.Logger) *Client {
	if logger == nil {
		panic("Generator: logger cannot be nil")
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		endpoint:   strings.TrimRight(cfg.Endpoint, "/"),
		model:      cfg.Model,
		apiKey:     strings.TrimSpace(cfg.APIKey),
		logger:     logger,
	}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	SystemInstruction content   `json:"systemInstruction"`
	Contents          []content `json:"contents"`
	GenerationConfig  struct {
		ResponseMimeType string `json:"responseMimeType"`
		ResponseSchema   schema `json:"responseSchema"`
	} `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func (c *Client) Generate(ctx context.Context, prompt string) (workout.WorkoutPlan, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}
	if len(c.apiKey) < MinAPIKeyLength {
		return nil, fmt.Errorf("%w: set HIIT_GENERATOR_API_KEY or generator.api_key", ErrMissingAPIKey)
	}

	req := generateRequest{
		SystemInstruction: content{Parts: []part{{Text: systemInstruction}}},
		Contents:          []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	}
	req.GenerationConfig.ResponseMimeType = "application/json"
	req.GenerationConfig.ResponseSchema = planSchema()

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.endpoint, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	c.logger.Printf("Generator: requesting plan from %s", c.model)
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling generator: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading generator response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp.StatusCode, data)
	}

	var parsed generateResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPlan, err)
	}
	text := responseText(parsed)
	if text == "" {
		return nil, ErrEmptyResponse
	}

	plan, err := parsePlan(text)
	if err != nil {
		c.logger.Printf("Generator: rejected response: %v", err)
		return nil, err
	}
	c.logger.Printf("Generator: received %d stages, %s total", len(plan), workout.FormatTime(plan.TotalDuration()))
	return plan, nil
}

func statusError(status int, data []byte) error {
	var apiErr errorResponse
	message := strings.TrimSpace(string(data))
	if json.Unmarshal(data, &apiErr) == nil && apiErr.Error.Message != "" {
		message = apiErr.Error.Message
	}

	switch status {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
		lower := strings.ToLower(message)
		if strings.Contains(lower, "api key not valid") || strings.Contains(lower, "invalid") {
			return fmt.Errorf("%w: %s", ErrInvalidAPIKey, message)
		}
	}
	return fmt.Errorf("generator returned HTTP %d: %s", status, message)
}

func responseText(resp generateResponse) string {
	var sb strings.Builder
	for _, candidate := range resp.Candidates {
		for _, p := range candidate.Content.Parts {
			sb.WriteString(p.Text)
		}
		if sb.Len() > 0 {
			break
		}
	}
	return strings.TrimSpace(sb.String())
}

// parsePlan decodes and validates the model's JSON text. Markdown code
// fences are tolerated.
func parsePlan(text string) (workout.WorkoutPlan, error) {
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var raw any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPlan, err)
	}
	if _, ok := raw.([]any); !ok {
		return nil, fmt.Errorf("%w: expected a JSON array of stages", ErrMalformedPlan)
	}

	var plan workout.WorkoutPlan
	if err := json.Unmarshal([]byte(text), &plan); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPlan, err)
	}
	if err := workout.Validate(plan); err != nil {
		return nil, err
	}
	return plan, nil
}
