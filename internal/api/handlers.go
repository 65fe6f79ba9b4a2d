package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"newsbrief/internal/brief"
	"newsbrief/internal/domain"
)

const (
	msgURLRequired   = "URL is required"
	msgURLInvalid    = "URL is invalid"
	msgSentenceCount = "Sentence count is out of range"
	msgLimit         = "Limit is out of range"
	msgInvalidBody   = "Invalid request body"
	msgFetchArticle  = "Could not fetch article content"
	msgFetchFeed     = "Could not fetch feed"
	msgSummarize     = "Could not summarize article"
	msgInternal      = "Internal server error"
)

type summarizeRequest struct {
	URL       string `json:"url"`
	Sentences int    `json:"sentences"`
}

type summarizeResponse struct {
	Summary string `json:"summary"`
	Title   string `json:"title,omitempty"`
}

type feedRequest struct {
	URL       string `json:"url"`
	Limit     int    `json:"limit"`
	Sentences int    `json:"sentences"`
}

type feedItemResponse struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Summary string `json:"summary,omitempty"`
	Error   string `json:"error,omitempty"`
}

type feedResponse struct {
	Title string             `json:"title"`
	URL   string             `json:"url"`
	Items []feedItemResponse `json:"items"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type handler struct {
	service Briefer
	opts    Options
	log     *slog.Logger
}

func (h *handler) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"defaultSentences": h.opts.DefaultSentences,
		"maxSentences":     h.opts.MaxSentences,
	})
}

func (h *handler) summarize(c *gin.Context) {
	var req summarizeRequest
	if !h.bind(c, &req) {
		return
	}

	b, err := h.service.SummarizeURL(c.Request.Context(), req.URL, req.Sentences)
	if err != nil {
		h.fail(c, err, msgFetchArticle)
		return
	}

	c.JSON(http.StatusOK, summarizeResponse{Summary: b.Summary, Title: b.Title})
}

func (h *handler) summarizeFeed(c *gin.Context) {
	var req feedRequest
	if !h.bind(c, &req) {
		return
	}

	fb, err := h.service.SummarizeFeed(c.Request.Context(), req.URL, req.Limit, req.Sentences)
	if err != nil {
		h.fail(c, err, msgFetchFeed)
		return
	}

	resp := feedResponse{
		Title: fb.Title,
		URL:   fb.URL,
		Items: make([]feedItemResponse, 0, len(fb.Items)),
	}

	for _, item := range fb.Items {
		itemResp := feedItemResponse{
			Title:   item.Title,
			URL:     item.URL,
			Summary: item.Summary,
		}
		if item.Err != nil {
			_, itemResp.Error = errorStatus(item.Err, msgFetchArticle)
		}

		resp.Items = append(resp.Items, itemResp)
	}

	c.JSON(http.StatusOK, resp)
}

// bind decodes the JSON body. An empty body decodes to the zero request so
// that it is reported as a missing URL.
func (h *handler) bind(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}

	h.log.WarnContext(c.Request.Context(), "Failed to decode request body",
		"error", err,
		"path", c.Request.URL.Path)

	c.JSON(http.StatusBadRequest, errorResponse{Error: msgInvalidBody})

	return false
}

func (h *handler) fail(c *gin.Context, err error, fetchMsg string) {
	status, msg := errorStatus(err, fetchMsg)

	if status >= http.StatusInternalServerError {
		h.log.ErrorContext(c.Request.Context(), "Failed to handle request",
			"error", err,
			"path", c.Request.URL.Path)
	}

	c.JSON(status, errorResponse{Error: msg})
}

func errorStatus(err error, fetchMsg string) (int, string) {
	switch {
	case errors.Is(err, brief.ErrURLRequired):
		return http.StatusBadRequest, msgURLRequired
	case errors.Is(err, brief.ErrInvalidURL):
		return http.StatusBadRequest, msgURLInvalid
	case errors.Is(err, brief.ErrSentenceCountOutOfRange):
		return http.StatusBadRequest, msgSentenceCount
	case errors.Is(err, brief.ErrLimitOutOfRange):
		return http.StatusBadRequest, msgLimit
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest, msgInvalidBody
	case errors.Is(err, domain.ErrFetch):
		return http.StatusInternalServerError, fetchMsg
	case errors.Is(err, domain.ErrEmptySummary):
		return http.StatusInternalServerError, msgSummarize
	default:
		return http.StatusInternalServerError, msgSummarize
	}
}
