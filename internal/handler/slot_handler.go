package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"reviewlens/internal/orchestrator"

	"github.com/gin-gonic/gin"
)

type SlotHandler struct {
	board *orchestrator.Board
}

func NewSlotHandler(board *orchestrator.Board) *SlotHandler {
	return &SlotHandler{board: board}
}

func (h *SlotHandler) GetSlots(c *gin.Context) {
	c.JSON(http.StatusOK, h.snapshot())
}

func (h *SlotHandler) CreateSlot(c *gin.Context) {
	var req SlotRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	slot := h.board.Add(req.URL)
	c.JSON(http.StatusCreated, slot)
}

func (h *SlotHandler) UpdateSlot(c *gin.Context) {
	var req SlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	slot, err := h.board.SetURL(c.Param("id"), req.URL)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, slot)
}

func (h *SlotHandler) DeleteSlot(c *gin.Context) {
	if err := h.board.Remove(c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.snapshot())
}

// RunSlots starts a batch over the current slots. The batch outlives the
// request; clients poll GetSlots for progress.
func (h *SlotHandler) RunSlots(c *gin.Context) {
	if err := h.board.Start(context.Background()); err != nil {
		h.writeError(c, err)
		return
	}

	slog.Info("batch started", "slots", len(h.board.Snapshot()))
	c.JSON(http.StatusAccepted, h.snapshot())
}

func (h *SlotHandler) snapshot() SlotsResponse {
	return SlotsResponse{
		Slots:   h.board.Snapshot(),
		Running: h.board.Running(),
	}
}

func (h *SlotHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, orchestrator.ErrSlotNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Slot not found"})
	case errors.Is(err, orchestrator.ErrLastSlot):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "At least one slot is required"})
	case errors.Is(err, orchestrator.ErrRunning):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "A batch is already running"})
	default:
		slog.Error("slot operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal error"})
	}
}
