package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// Message is a single role-tagged chat message.
type Message struct {
	Role    Role
	Content string
}

// CompletionRequest describes one chat completion call.
type CompletionRequest struct {
	Model       string
	Temperature float64
	Messages    []Message
	// JSONObject asks the model to answer with a single JSON object.
	JSONObject bool
}

var (
	// ErrMissingAPIKey is returned when OPENAI_API_KEY was not configured.
	ErrMissingAPIKey = errors.New("OPENAI_API_KEY is not set")
	ErrEmptyResponse = errors.New("model returned no choices")
	ErrNoImage       = errors.New("image generation returned no image")
)

// Client is a thin wrapper around the OpenAI chat completion and image
// generation endpoints. Calls are never retried.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	sdk        *openai.Client
}

// New builds a Client. baseURL may be empty to use the SDK default.
func New(apiKey string, baseURL string) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	c := &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
	c.build()
	return c, nil
}

// UseDefaultClient routes requests through http.DefaultClient.
func (c *Client) UseDefaultClient() {
	c.httpClient = http.DefaultClient
	c.build()
}

func (c *Client) build() {
	opts := []option.RequestOption{
		option.WithAPIKey(c.apiKey),
		option.WithHTTPClient(c.httpClient),
		option.WithMaxRetries(0),
	}
	if c.baseURL != "" {
		opts = append(opts, option.WithBaseURL(c.baseURL))
	}

	client := openai.NewClient(opts...)
	c.sdk = &client
}

// Complete sends the messages and returns the first choice's text.
func (c *Client) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if c == nil || c.sdk == nil {
		return "", errors.New("openai client is not initialized")
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages))
	for _, m := range req.Messages {
		switch m.Role {
		case RoleSystem:
			messages = append(messages, openai.SystemMessage(m.Content))
		default:
			messages = append(messages, openai.UserMessage(m.Content))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(req.Model),
		Messages:    messages,
		Temperature: openai.Float(req.Temperature),
	}
	if req.JSONObject {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	resp, err := c.sdk.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("call OpenAI: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	// An empty answer is passed through; callers fall back per field.
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// GenerateImage requests exactly one standard quality image and returns its URL.
func (c *Client) GenerateImage(ctx context.Context, model string, prompt string, size string) (string, error) {
	if c == nil || c.sdk == nil {
		return "", errors.New("openai client is not initialized")
	}

	resp, err := c.sdk.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt:         prompt,
		Model:          openai.ImageModel(model),
		Size:           openai.ImageGenerateParamsSize(size),
		Quality:        openai.ImageGenerateParamsQualityStandard,
		N:              openai.Int(1),
		ResponseFormat: openai.ImageGenerateParamsResponseFormatURL,
	})
	if err != nil {
		return "", fmt.Errorf("call OpenAI: %w", err)
	}

	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", ErrNoImage
	}

	return resp.Data[0].URL, nil
}
