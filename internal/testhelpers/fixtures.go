package testhelpers

import (
	"net/http"
	"time"
)

const OpenAIBaseURL = "https://api.openai.com"

// ChatCompletion is a minimal /v1/chat/completions response carrying content.
func ChatCompletion(content string) map[string]interface{} {
	return map[string]interface{}{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Unix(),
		"model":   "gpt-4o-mini",
		"choices": []map[string]interface{}{
			{
				"index":         0,
				"finish_reason": "stop",
				"logprobs":      nil,
				"message": map[string]interface{}{
					"role":    "assistant",
					"content": content,
					"refusal": nil,
				},
			},
		},
		"usage": map[string]interface{}{
			"prompt_tokens":     36,
			"completion_tokens": 87,
			"total_tokens":      123,
		},
	}
}

// ImageGeneration is a minimal /v1/images/generations response with one URL.
func ImageGeneration(url string) map[string]interface{} {
	return map[string]interface{}{
		"created": time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Unix(),
		"data": []map[string]interface{}{
			{"url": url},
		},
	}
}

// OpenAIError is the error envelope the API returns on non-2xx responses.
func OpenAIError(message string) map[string]interface{} {
	return map[string]interface{}{
		"error": map[string]interface{}{
			"message": message,
			"type":    "invalid_request_error",
			"param":   nil,
			"code":    "invalid_api_key",
		},
	}
}

// MockChatCompletion registers one chat completion reply.
func MockChatCompletion(content string) *Expectation {
	return New(OpenAIBaseURL).Post("/v1/chat/completions").Reply(http.StatusOK).JSON(ChatCompletion(content))
}

// MockImageGeneration registers one image generation reply.
func MockImageGeneration(url string) *Expectation {
	return New(OpenAIBaseURL).Post("/v1/images/generations").Reply(http.StatusOK).JSON(ImageGeneration(url))
}

// ChatRequest is the subset of a chat completion request body the tests inspect.
type ChatRequest struct {
	Model       string   `json:"model"`
	Temperature *float64 `json:"temperature"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	ResponseFormat *struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

// ImageRequest is the subset of an image generation request body the tests inspect.
type ImageRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	Size           string `json:"size"`
	Quality        string `json:"quality"`
	N              int    `json:"n"`
	ResponseFormat string `json:"response_format"`
}
