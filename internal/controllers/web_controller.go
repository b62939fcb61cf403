package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"diary/internal/pkg/diary"
	"diary/internal/session"
	"diary/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	DownloadFileName = "daily_image.png"
	DownloadMIMEType = "image/png"

	// GiftImageSize is the size the gift page always draws at.
	GiftImageSize = "1024x1024"

	blankDiaryWarning = "일기 내용을 입력해주세요."
)

// MaxDownloadBytes caps how much of an upstream image is read.
var MaxDownloadBytes int64 = 20 << 20

var ErrImageTooLarge = errors.New("image exceeds download limit")

// WebController serves the diary pages. Each stage is shown only once the
// previous stage produced its output.
type WebController struct {
	Analyzer   *diary.Analyzer
	Sessions   *session.Store
	HTTPClient *http.Client
	Logger     *zap.SugaredLogger

	// Store is optional; when set, gift page analyses are saved like API ones.
	Store store.DiaryStore
	Now   func() time.Time
}

type pageView struct {
	DiaryText   string
	Warning     string
	Error       string
	Analysis    *diary.FreeTextAnalysis
	ColorHex    string
	Incomplete  bool
	ImagePrompt string
	Sizes       []diary.SizeOption
	SizeLabel   string
	ImageURL    string
}

type giftView struct {
	DiaryText string
	Warning   string
	Error     string
	Gift      *diary.Analysis
	ImageURL  string
}

// Index renders the page from the session state. Warnings and errors are
// shown once.
func (wc *WebController) Index(c *gin.Context) {
	id, st := wc.Sessions.Load(c)

	view := pageView{
		DiaryText:   st.DiaryText,
		Warning:     st.Warning,
		Error:       st.Error,
		Analysis:    st.LastAnalysis,
		ImagePrompt: st.LastImagePrompt,
		Sizes:       diary.ScreenSizes,
		SizeLabel:   st.SizeLabel,
		ImageURL:    st.LastImageURL,
	}
	if view.SizeLabel == "" {
		view.SizeLabel = diary.ScreenSizes[0].Label
	}
	if st.LastAnalysis != nil {
		view.ColorHex = st.LastAnalysis.ColorHex()
		view.Incomplete = st.LastAnalysis.Incomplete()
	}

	wc.consumeMessages(c, id, st)
	c.HTML(http.StatusOK, "index.html", view)
}

// Analyze runs the free-text pipeline on the submitted diary.
func (wc *WebController) Analyze(c *gin.Context) {
	id, st := wc.Sessions.Load(c)
	st.DiaryText = c.PostForm("diary_text")

	if diary.IsBlank(st.DiaryText) {
		st.Warning = blankDiaryWarning
		wc.redirect(c, id, st, "/")
		return
	}

	result, err := wc.Analyzer.AnalyzeFreeText(c.Request.Context(), st.DiaryText)
	if err != nil {
		wc.Logger.Errorf("failed to analyze diary: %v", err)
		st.Error = fmt.Sprintf("분석 중 오류가 발생했습니다: %v", err)
		wc.redirect(c, id, st, "/")
		return
	}

	if result.Incomplete() {
		wc.Logger.Warnw("analysis used placeholder values",
			"adviceFallback", result.AdviceFallback,
			"colorFallback", result.ColorFallback(),
		)
	}

	st.LastAnalysis = result
	st.LastImagePrompt = result.ImagePrompt
	st.LastImageURL = ""
	wc.redirect(c, id, st, "/")
}

// GenerateImage draws the session's image prompt at the selected size.
func (wc *WebController) GenerateImage(c *gin.Context) {
	id, st := wc.Sessions.Load(c)
	if st.LastImagePrompt == "" {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	st.SizeLabel = c.DefaultPostForm("size", diary.ScreenSizes[0].Label)

	url, err := wc.Analyzer.GenerateImage(c.Request.Context(), st.LastImagePrompt, st.SizeLabel)
	if err != nil {
		wc.Logger.Errorf("failed to generate image: %v", err)
		st.Error = fmt.Sprintf("이미지 생성 중 오류가 발생했습니다: %v", err)
		wc.redirect(c, id, st, "/")
		return
	}

	st.LastImageURL = url
	wc.redirect(c, id, st, "/")
}

// Download fetches the generated image and serves it as a PNG attachment.
func (wc *WebController) Download(c *gin.Context) {
	_, st := wc.Sessions.Load(c)
	if st.LastImageURL == "" {
		c.String(http.StatusNotFound, "생성된 이미지가 없습니다.")
		return
	}

	data, err := wc.fetch(c, st.LastImageURL)
	if err != nil {
		wc.Logger.Errorf("failed to download image: %v", err)
		c.String(http.StatusBadGateway, "이미지를 내려받지 못했습니다.")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, DownloadFileName))
	c.Data(http.StatusOK, DownloadMIMEType, data)
}

// GiftIndex renders the structured analysis page with the gift suggestion.
func (wc *WebController) GiftIndex(c *gin.Context) {
	id, st := wc.Sessions.Load(c)

	view := giftView{
		DiaryText: st.GiftText,
		Warning:   st.Warning,
		Error:     st.Error,
		Gift:      st.Gift,
		ImageURL:  st.GiftImageURL,
	}

	wc.consumeMessages(c, id, st)
	c.HTML(http.StatusOK, "gift.html", view)
}

// GiftAnalyze runs the structured analysis and saves it when a store is set.
func (wc *WebController) GiftAnalyze(c *gin.Context) {
	id, st := wc.Sessions.Load(c)
	st.GiftText = c.PostForm("diary_text")

	if diary.IsBlank(st.GiftText) {
		st.Warning = blankDiaryWarning
		wc.redirect(c, id, st, "/gift")
		return
	}

	ctx := c.Request.Context()
	analysis, err := wc.Analyzer.AnalyzeStructured(ctx, st.GiftText)
	if err != nil {
		wc.Logger.Errorf("failed to analyze diary: %v", err)
		st.Error = fmt.Sprintf("분석 요청에 실패했습니다: %v", err)
		wc.redirect(c, id, st, "/gift")
		return
	}

	if wc.Store != nil {
		if err := wc.Store.Insert(ctx, newDiaryRow(st.GiftText, analysis, wc.now())); err != nil {
			wc.Logger.Errorf("failed to store diary: %v", err)
			st.Error = fmt.Sprintf("분석 결과를 저장하지 못했습니다: %v", err)
			wc.redirect(c, id, st, "/gift")
			return
		}
	}

	st.Gift = analysis
	st.GiftImageURL = ""
	wc.redirect(c, id, st, "/gift")
}

// GiftImage draws the structured record's image prompt at GiftImageSize.
func (wc *WebController) GiftImage(c *gin.Context) {
	id, st := wc.Sessions.Load(c)
	if st.Gift == nil {
		c.Redirect(http.StatusSeeOther, "/gift")
		return
	}

	url, err := wc.Analyzer.GenerateAPIImage(c.Request.Context(), st.Gift.ImagePrompt, GiftImageSize)
	if err != nil {
		wc.Logger.Errorf("failed to generate image: %v", err)
		st.Error = "이미지 생성에 실패했습니다."
		wc.redirect(c, id, st, "/gift")
		return
	}

	st.GiftImageURL = url
	wc.redirect(c, id, st, "/gift")
}

// consumeMessages clears one-shot messages once they have been rendered.
func (wc *WebController) consumeMessages(c *gin.Context, id string, st session.State) {
	if id == "" || (st.Warning == "" && st.Error == "") {
		return
	}
	st.Warning, st.Error = "", ""
	wc.Sessions.Save(c, id, st)
}

func (wc *WebController) redirect(c *gin.Context, id string, st session.State, location string) {
	wc.Sessions.Save(c, id, st)
	c.Redirect(http.StatusSeeOther, location)
}

func (wc *WebController) fetch(c *gin.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	client := wc.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image download returned %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxDownloadBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > MaxDownloadBytes {
		return nil, fmt.Errorf("%w (%d bytes)", ErrImageTooLarge, MaxDownloadBytes)
	}
	return data, nil
}

func (wc *WebController) now() time.Time {
	if wc.Now != nil {
		return wc.Now()
	}
	return time.Now()
}
