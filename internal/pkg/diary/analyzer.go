package diary

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"diary/internal/config"
	"diary/internal/pkg/openai"
)

var ErrBlankDiary = errors.New("diary content is empty")

// Completer sends a chat completion request and returns the answer text.
type Completer interface {
	Complete(ctx context.Context, req openai.CompletionRequest) (string, error)
}

// ImageGenerator returns the URL of one generated image.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, model string, prompt string, size string) (string, error)
}

// Models names the upstream model used by each step.
type Models struct {
	Analysis     string
	ImagePrompt  string
	GiftAnalysis string
	Image        string
	APIImage     string
	Temperature  float64
}

func ModelsFromConfig(cfg *config.Config) Models {
	return Models{
		Analysis:     cfg.AnalysisModel,
		ImagePrompt:  cfg.ImagePromptModel,
		GiftAnalysis: cfg.GiftAnalysisModel,
		Image:        cfg.ImageModel,
		APIImage:     cfg.APIImageModel,
		Temperature:  cfg.Temperature,
	}
}

// FreeTextAnalysis is the result of the free-text pipeline. Raw is kept
// verbatim; the color is always re-derived from it.
type FreeTextAnalysis struct {
	Raw            string
	Advice         string
	AdviceFallback bool
	ImagePrompt    string
}

// ColorHex extracts the color from Raw.
func (a *FreeTextAnalysis) ColorHex() string {
	hex, _ := ExtractColorHex(a.Raw)
	return hex
}

// ColorFallback reports whether Raw carried no color code.
func (a *FreeTextAnalysis) ColorFallback() bool {
	_, ok := ExtractColorHex(a.Raw)
	return !ok
}

// Incomplete reports whether any placeholder value was substituted.
func (a *FreeTextAnalysis) Incomplete() bool {
	return a.AdviceFallback || a.ColorFallback()
}

type Analyzer struct {
	completer Completer
	images    ImageGenerator
	models    Models
}

func NewAnalyzer(completer Completer, images ImageGenerator, models Models) *Analyzer {
	return &Analyzer{completer: completer, images: images, models: models}
}

func IsBlank(diaryText string) bool {
	return strings.TrimSpace(diaryText) == ""
}

// AnalyzeFreeText runs the analysis call, extracts the advice and then runs
// the image prompt call. The two calls are sequential.
func (a *Analyzer) AnalyzeFreeText(ctx context.Context, diaryText string) (*FreeTextAnalysis, error) {
	if IsBlank(diaryText) {
		return nil, ErrBlankDiary
	}

	raw, err := a.completer.Complete(ctx, openai.CompletionRequest{
		Model:       a.models.Analysis,
		Temperature: a.models.Temperature,
		Messages:    []openai.Message{{Role: openai.RoleUser, Content: BuildAnalysisPrompt(diaryText)}},
	})
	if err != nil {
		return nil, fmt.Errorf("analyze diary: %w", err)
	}

	advice, ok := ExtractAdvice(raw)
	result := &FreeTextAnalysis{
		Raw:            raw,
		Advice:         advice,
		AdviceFallback: !ok,
	}

	imagePrompt, err := a.completer.Complete(ctx, openai.CompletionRequest{
		Model:       a.models.ImagePrompt,
		Temperature: a.models.Temperature,
		Messages:    []openai.Message{{Role: openai.RoleUser, Content: BuildImagePrompt(advice)}},
	})
	if err != nil {
		return nil, fmt.Errorf("build image prompt: %w", err)
	}
	result.ImagePrompt = imagePrompt

	return result, nil
}

// AnalyzeStructured asks for the gift-aware JSON record and parses it strictly.
func (a *Analyzer) AnalyzeStructured(ctx context.Context, diaryText string) (*Analysis, error) {
	if IsBlank(diaryText) {
		return nil, ErrBlankDiary
	}

	raw, err := a.completer.Complete(ctx, openai.CompletionRequest{
		Model:       a.models.GiftAnalysis,
		Temperature: a.models.Temperature,
		Messages: []openai.Message{
			{Role: openai.RoleSystem, Content: giftSystemPrompt},
			{Role: openai.RoleUser, Content: BuildGiftAnalysisPrompt(diaryText)},
		},
		JSONObject: true,
	})
	if err != nil {
		return nil, fmt.Errorf("analyze diary: %w", err)
	}

	return ParseAnalysisJSON(raw)
}

// GenerateImage draws prompt with the page's image model at a labelled size.
func (a *Analyzer) GenerateImage(ctx context.Context, prompt string, sizeLabel string) (string, error) {
	return a.images.GenerateImage(ctx, a.models.Image, prompt, SizeForLabel(sizeLabel))
}

// GenerateAPIImage draws prompt with the API's image model. size must be one
// of APISizes or empty.
func (a *Analyzer) GenerateAPIImage(ctx context.Context, prompt string, size string) (string, error) {
	resolved, err := ResolveAPISize(size)
	if err != nil {
		return "", err
	}
	return a.images.GenerateImage(ctx, a.models.APIImage, prompt, resolved)
}
