package api

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"newsbrief/internal/domain"
)

//go:embed web/index.html
var webFS embed.FS

// Briefer is the part of the brief service the API drives.
type Briefer interface {
	SummarizeURL(ctx context.Context, rawURL string, sentenceCount int) (domain.Brief, error)
	SummarizeFeed(ctx context.Context, feedURL string, limit int, sentenceCount int) (domain.FeedBrief, error)
}

type Options struct {
	DefaultSentences int
	MaxSentences     int
}

func NewRouter(service Briefer, opts Options, log *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(recovery(log), requestLogger(log))

	r.SetHTMLTemplate(template.Must(template.ParseFS(webFS, "web/index.html")))

	h := &handler{service: service, opts: opts, log: log}

	r.GET("/", h.index)
	r.GET("/health", healthHandler)
	r.POST("/summarize", h.summarize)
	r.POST("/summarize/feed", h.summarizeFeed)

	return r
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		log.InfoContext(c.Request.Context(), "Request is handled",
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"durationMs", time.Since(start).Milliseconds())
	}
}

func recovery(log *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.ErrorContext(c.Request.Context(), "Recovered from panic",
			"panic", recovered,
			"method", c.Request.Method,
			"path", c.Request.URL.Path)

		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Error: msgInternal})
	})
}
