package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"reviewlens/internal/model"
	"reviewlens/pkg/llm"

	"github.com/gin-gonic/gin"
)

type SummaryHandler struct {
	summarizer llm.ReviewSummarizer
	debug      bool
}

// NewSummaryHandler returns the summary endpoint handler. With debug set,
// failures carry upstream diagnostics in the details field.
func NewSummaryHandler(summarizer llm.ReviewSummarizer, debug bool) *SummaryHandler {
	return &SummaryHandler{summarizer: summarizer, debug: debug}
}

func (h *SummaryHandler) GenerateSummary(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		slog.Error("invalid method", "method", c.Request.Method)
		c.JSON(http.StatusMethodNotAllowed, ErrorResponse{Error: "Method not allowed"})
		return
	}

	var req struct {
		Reviews json.RawMessage `json:"reviews"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("invalid summary request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Reviews must be an array"})
		return
	}

	raw := bytes.TrimSpace(req.Reviews)
	if len(raw) == 0 || raw[0] != '[' {
		slog.Error("invalid reviews format", "reviews", string(raw))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Reviews must be an array"})
		return
	}

	var reviews []model.Review
	if err := json.Unmarshal(raw, &reviews); err != nil {
		slog.Error("invalid review entry", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Each review must have string rating and reviewText fields"})
		return
	}

	if len(reviews) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "At least one review is required"})
		return
	}

	res, err := h.summarizer.Summarize(c.Request.Context(), reviews)
	if err != nil {
		slog.Error("error generating summary", "reviews", len(reviews), "error", err)
		c.JSON(http.StatusInternalServerError, h.errorResponse(err))
		return
	}

	slog.Info("summary generated", "reviews", len(reviews), "model", res.ModelUsed)
	c.JSON(http.StatusOK, SummaryResponse{Summary: res.Text})
}

func (h *SummaryHandler) errorResponse(err error) ErrorResponse {
	res := ErrorResponse{Error: err.Error()}
	if !h.debug {
		return res
	}

	var genErr *llm.GenerationError
	if errors.As(err, &genErr) {
		res.Details = genErr.Details()
	} else {
		res.Details = err.Error()
	}
	return res
}
