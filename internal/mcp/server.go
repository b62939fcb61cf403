package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const ProtocolVersion = "2024-11-05"

var (
	errEmptyLine = errors.New("empty line")
	errParse     = errors.New("json parse error")
)

// Request represents a minimal JSON-RPC 2.0 request.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response represents a minimal JSON-RPC 2.0 response.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  interface{}     `json:"result,omitempty"`
	Error   *ResponseError  `json:"error,omitempty"`
}

// ResponseError is a JSON-RPC error payload.
type ResponseError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type InitializeResult struct {
	ProtocolVersion string                 `json:"protocolVersion"`
	Capabilities    map[string]interface{} `json:"capabilities"`
	ServerInfo      map[string]interface{} `json:"serverInfo"`
}

// Tool describes an MCP tool.
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	InputSchema map[string]interface{} `json:"inputSchema,omitempty"`
}

type ListToolsResult struct {
	Tools []Tool `json:"tools"`
}

type ToolCallParams struct {
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
}

// ContentItem represents a piece of tool output.
type ContentItem struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type ToolCallResult struct {
	Content []ContentItem `json:"content"`
	IsError bool          `json:"isError,omitempty"`
}

// Server exposes the diary API as MCP tools over newline-delimited JSON.
type Server struct {
	baseURL string
	client  *http.Client
	logger  *zap.SugaredLogger

	in    *bufio.Reader
	out   *bufio.Writer
	outMu sync.Mutex
	wg    sync.WaitGroup
	tools []Tool
}

func NewServer(baseURL string, client *http.Client, in io.Reader, out io.Writer, logger *zap.SugaredLogger) *Server {
	if client == nil {
		client = &http.Client{Timeout: 120 * time.Second}
	}
	return &Server{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logger:  logger,
		in:      bufio.NewReader(in),
		out:     bufio.NewWriter(out),
		tools:   Tools(),
	}
}

// Tools lists the tools the server offers.
func Tools() []Tool {
	return []Tool{
		{
			Name:        "analyze_diary",
			Description: "Analyze a diary entry: mood, reason, advice, color, image prompt and a small gift idea.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"content": map[string]interface{}{
						"type":        "string",
						"description": "Diary text to analyze.",
					},
				},
				"required": []string{"content"},
			},
		},
		{
			Name:        "generate_image",
			Description: "Generate one image for a prompt and return its URL.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"prompt": map[string]interface{}{
						"type":        "string",
						"description": "Image prompt, usually the image_prompt of analyze_diary.",
					},
					"size": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"1024x1024", "512x512", "768x1024"},
						"description": "Image size (default 512x512).",
					},
				},
				"required": []string{"prompt"},
			},
		},
	}
}

// Serve reads requests until EOF or an exit notification, handling each one
// concurrently. It returns once every in-flight request has been answered.
func (s *Server) Serve() error {
	defer s.wg.Wait()

	for {
		req, err := s.readMessage()
		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, errEmptyLine):
			continue
		case errors.Is(err, errParse):
			s.logger.Warnf("failed to parse message: %v", err)
			continue
		default:
			return fmt.Errorf("read message: %w", err)
		}

		if req.Method == "notifications/exit" {
			return nil
		}

		s.wg.Add(1)
		go func(r Request) {
			defer s.wg.Done()

			resp := s.handleRequest(r)
			// notifications get no response
			if resp == nil {
				return
			}

			if err := s.writeMessage(*resp); err != nil {
				s.logger.Errorf("failed to write message: %v", err)
			}
		}(req)
	}
}

func (s *Server) handleRequest(req Request) *Response {
	switch req.Method {
	case "initialize":
		return s.reply(req, InitializeResult{
			ProtocolVersion: ProtocolVersion,
			Capabilities: map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			ServerInfo: map[string]interface{}{
				"name":    "diary-mcp",
				"version": "1.0.0",
			},
		})
	case "notifications/initialized":
		return nil
	case "tools/list":
		return s.reply(req, ListToolsResult{Tools: s.tools})
	case "tools/call":
		return s.handleToolCall(req)
	case "ping", "shutdown":
		return s.reply(req, map[string]interface{}{})
	}

	if len(req.ID) == 0 {
		return nil
	}
	return s.error(req, -32601, fmt.Sprintf("method not found: %s", req.Method), nil)
}

func (s *Server) handleToolCall(req Request) *Response {
	var params ToolCallParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return s.error(req, -32602, "invalid params", err.Error())
		}
	}

	var (
		result *ToolCallResult
		rpcErr *ResponseError
	)
	switch params.Name {
	case "analyze_diary":
		result, rpcErr = s.callAnalyzeDiary(params.Arguments)
	case "generate_image":
		result, rpcErr = s.callGenerateImage(params.Arguments)
	default:
		return s.error(req, -32601, fmt.Sprintf("tool not found: %s", params.Name), nil)
	}

	if rpcErr != nil {
		return &Response{JSONRPC: "2.0", ID: req.ID, Error: rpcErr}
	}
	return s.reply(req, result)
}

func (s *Server) callAnalyzeDiary(args map[string]interface{}) (*ToolCallResult, *ResponseError) {
	content, rpcErr := stringArg(args, "content", true)
	if rpcErr != nil {
		return nil, rpcErr
	}
	return s.forward("/analyze", map[string]string{"content": content})
}

func (s *Server) callGenerateImage(args map[string]interface{}) (*ToolCallResult, *ResponseError) {
	prompt, rpcErr := stringArg(args, "prompt", true)
	if rpcErr != nil {
		return nil, rpcErr
	}
	size, rpcErr := stringArg(args, "size", false)
	if rpcErr != nil {
		return nil, rpcErr
	}

	body := map[string]string{"prompt": prompt}
	if size != "" {
		body["size"] = size
	}
	return s.forward("/generate-image", body)
}

// forward posts body to the diary API. Upstream failures come back as tool
// errors so the caller can read the detail.
func (s *Server) forward(path string, body interface{}) (*ToolCallResult, *ResponseError) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, &ResponseError{Code: -32603, Message: "failed to encode request", Data: err.Error()}
	}

	urlStr := s.baseURL + path
	s.logger.Debugf("Calling upstream: %s", urlStr)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, urlStr, bytes.NewReader(payload))
	if err != nil {
		return nil, &ResponseError{Code: -32000, Message: "failed to build request", Data: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &ResponseError{Code: -32000, Message: "request failed", Data: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ResponseError{Code: -32000, Message: "failed to read response", Data: err.Error()}
	}

	if resp.StatusCode >= 300 {
		return &ToolCallResult{
			Content: []ContentItem{{Type: "text", Text: fmt.Sprintf("upstream error: %s: %s", resp.Status, respBody)}},
			IsError: true,
		}, nil
	}

	return &ToolCallResult{
		Content: []ContentItem{{Type: "text", Text: string(respBody)}},
	}, nil
}

func stringArg(args map[string]interface{}, name string, required bool) (string, *ResponseError) {
	raw, ok := args[name]
	if !ok {
		if required {
			return "", &ResponseError{Code: -32602, Message: name + " is required"}
		}
		return "", nil
	}

	v, ok := raw.(string)
	if !ok || (required && strings.TrimSpace(v) == "") {
		return "", &ResponseError{Code: -32602, Message: name + " must be a non-empty string"}
	}
	return v, nil
}

func (s *Server) reply(req Request, result interface{}) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  result,
	}
}

func (s *Server) error(req Request, code int, message string, data interface{}) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Error: &ResponseError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// readMessage reads one newline-delimited JSON message.
func (s *Server) readMessage() (Request, error) {
	line, err := s.in.ReadBytes('\n')
	if err != nil && !(errors.Is(err, io.EOF) && len(bytes.TrimSpace(line)) > 0) {
		return Request{}, err
	}

	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return Request{}, errEmptyLine
	}

	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		return Request{}, fmt.Errorf("%w: %v", errParse, err)
	}

	return req, nil
}

func (s *Server) writeMessage(resp Response) error {
	s.outMu.Lock()
	defer s.outMu.Unlock()

	payload, err := json.Marshal(resp)
	if err != nil {
		return err
	}

	if _, err := s.out.Write(payload); err != nil {
		return err
	}
	if err := s.out.WriteByte('\n'); err != nil {
		return err
	}

	return s.out.Flush()
}
