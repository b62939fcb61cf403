package routes

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"diary/internal/config"
	"diary/internal/controllers"
	"diary/internal/logging"
	"diary/internal/pkg/diary"
	"diary/internal/session"
	"diary/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

// SetupRouter builds the JSON API: POST /analyze and POST /generate-image.
func SetupRouter(cfg *config.Config, analyzer *diary.Analyzer, diaryStore store.DiaryStore, logger *zap.SugaredLogger) *gin.Engine {
	diaryController := controllers.DiaryController{
		Analyzer: analyzer,
		Store:    diaryStore,
		Logger:   logger,
	}

	router := gin.New()
	router.Use(gin.Recovery(), logging.RequestLogger(logger), cors.New(corsConfig(cfg.CORSOrigins)))

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})

	router.POST("/analyze", diaryController.Analyze)
	router.POST("/generate-image", diaryController.GenerateImage)

	return router
}

// SetupWebRouter builds the interactive diary pages. diaryStore may be nil.
func SetupWebRouter(analyzer *diary.Analyzer, sessions *session.Store, diaryStore store.DiaryStore, httpClient *http.Client, logger *zap.SugaredLogger) (*gin.Engine, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	webController := controllers.WebController{
		Analyzer:   analyzer,
		Sessions:   sessions,
		HTTPClient: httpClient,
		Logger:     logger,
		Store:      diaryStore,
	}

	router := gin.New()
	router.Use(gin.Recovery(), logging.RequestLogger(logger))
	router.SetHTMLTemplate(tmpl)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})

	router.GET("/", webController.Index)
	router.POST("/analyze", webController.Analyze)
	router.POST("/image", webController.GenerateImage)
	router.GET("/download", webController.Download)

	router.GET("/gift", webController.GiftIndex)
	router.POST("/gift", webController.GiftAnalyze)
	router.POST("/gift/image", webController.GiftImage)

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}

	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	c.AllowOrigins = origins
	return c
}
