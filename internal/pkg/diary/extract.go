package diary

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	DefaultAdvice   = "당신은 소중한 존재입니다."
	DefaultColorHex = "#CCCCCC"
)

var (
	adviceRe = regexp.MustCompile(`3\.\s*조언\s*[:：]?\s*(.*)`)
	colorRe  = regexp.MustCompile(`#[0-9a-fA-F]{6}`)

	ErrMalformedResponse = errors.New("malformed model response")
)

// Analysis is the structured record the gift-aware prompt asks for.
type Analysis struct {
	Mood        string `json:"mood"`
	Reason      string `json:"reason"`
	Advice      string `json:"advice"`
	ColorHex    string `json:"color_hex"`
	ColorDesc   string `json:"color_desc"`
	ImagePrompt string `json:"image_prompt"`
	Gift        string `json:"gift"`
}

var requiredKeys = []string{"mood", "reason", "advice", "color_hex", "color_desc", "image_prompt", "gift"}

// ExtractAdvice returns the text following "3. 조언" on its line, or
// DefaultAdvice with ok=false when there is none.
func ExtractAdvice(raw string) (advice string, ok bool) {
	m := adviceRe.FindStringSubmatch(raw)
	if m == nil {
		return DefaultAdvice, false
	}

	advice = strings.TrimSpace(m[1])
	if advice == "" {
		return DefaultAdvice, false
	}
	return advice, true
}

// ExtractColorHex returns the first #RRGGBB in raw as written, or
// DefaultColorHex with ok=false.
func ExtractColorHex(raw string) (hex string, ok bool) {
	hex = colorRe.FindString(raw)
	if hex == "" {
		return DefaultColorHex, false
	}
	return hex, true
}

// ParseAnalysisJSON parses raw as a JSON object carrying all seven string
// fields. Anything else fails with ErrMalformedResponse.
func ParseAnalysisJSON(raw string) (*Analysis, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrMalformedResponse)
	}

	values := make(map[string]string, len(requiredKeys))
	for _, key := range requiredKeys {
		value, ok := fields[key]
		if !ok {
			return nil, fmt.Errorf("%w: missing key %q", ErrMalformedResponse, key)
		}

		var s string
		if bytes.Equal(bytes.TrimSpace(value), []byte("null")) || json.Unmarshal(value, &s) != nil {
			return nil, fmt.Errorf("%w: key %q is not a string", ErrMalformedResponse, key)
		}
		values[key] = s
	}

	return &Analysis{
		Mood:        values["mood"],
		Reason:      values["reason"],
		Advice:      values["advice"],
		ColorHex:    values["color_hex"],
		ColorDesc:   values["color_desc"],
		ImagePrompt: values["image_prompt"],
		Gift:        values["gift"],
	}, nil
}
