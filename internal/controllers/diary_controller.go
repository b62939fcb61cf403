package controllers

import (
	"errors"
	"net/http"
	"time"

	"diary/internal/models"
	"diary/internal/pkg/diary"
	"diary/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DiaryController struct {
	Analyzer *diary.Analyzer
	Store    store.DiaryStore
	Logger   *zap.SugaredLogger
	Now      func() time.Time
}

type AnalyzeRequest struct {
	Content string `json:"content" binding:"required"`
}

type GenerateImageRequest struct {
	Prompt string `json:"prompt" binding:"required"`
	Size   string `json:"size"`
}

type GenerateImageResponse struct {
	URL string `json:"url"`
}

// Analyze runs the gift-aware analysis and stores the result.
func (dc *DiaryController) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	if diary.IsBlank(req.Content) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": diary.ErrBlankDiary.Error()})
		return
	}

	ctx := c.Request.Context()
	analysis, err := dc.Analyzer.AnalyzeStructured(ctx, req.Content)
	if err != nil {
		if errors.Is(err, diary.ErrMalformedResponse) {
			dc.Logger.Warnf("model answered with a malformed analysis: %v", err)
		} else {
			dc.Logger.Errorf("failed to analyze diary: %v", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	row := newDiaryRow(req.Content, analysis, dc.now())
	if err := dc.Store.Insert(ctx, row); err != nil {
		dc.Logger.Errorf("failed to store diary: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// GenerateImage draws the given prompt at one of the API sizes.
func (dc *DiaryController) GenerateImage(c *gin.Context) {
	var req GenerateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	size, err := diary.ResolveAPISize(req.Size)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	url, err := dc.Analyzer.GenerateAPIImage(c.Request.Context(), req.Prompt, size)
	if err != nil {
		dc.Logger.Errorf("failed to generate image: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, GenerateImageResponse{URL: url})
}

func newDiaryRow(content string, analysis *diary.Analysis, date time.Time) *models.Diary {
	return &models.Diary{
		Content:     content,
		Mood:        analysis.Mood,
		Reason:      analysis.Reason,
		Advice:      analysis.Advice,
		ColorHex:    analysis.ColorHex,
		ColorDesc:   analysis.ColorDesc,
		ImagePrompt: analysis.ImagePrompt,
		Gift:        analysis.Gift,
		Date:        date,
	}
}

func (dc *DiaryController) now() time.Time {
	if dc.Now != nil {
		return dc.Now()
	}
	return time.Now()
}
