package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/GriffinCanCode/termhost/internal/providers/terminal"
	"github.com/GriffinCanCode/termhost/internal/shared/types"
	"github.com/GriffinCanCode/termhost/internal/shared/utils"
)

// CreateSession starts a shell. A missing session_id gets a UUID and zero
// dimensions fall back to 80x24.
func (h *Handlers) CreateSession(c *gin.Context) {
	var req types.CreateTerminalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := utils.ValidateID(req.SessionID, "session_id", false); err != nil {
		badRequest(c, err)
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	cols, rows, err := dimensions(req.Cols, req.Rows, terminal.DefaultCols, terminal.DefaultRows)
	if err != nil {
		badRequest(c, err)
		return
	}

	done := h.metrics.TrackTerminalOperation("create")
	err = h.terminals.Create(req.SessionID, cols, rows, h.sink)
	done(err)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"session_id": req.SessionID,
		"topic":      terminal.Topic(req.SessionID),
		"cols":       cols,
		"rows":       rows,
	})
}

// WriteInput sends keystrokes to a session
func (h *Handlers) WriteInput(c *gin.Context) {
	sessionID, ok := sessionParam(c)
	if !ok {
		return
	}

	var req types.TerminalInputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := utils.ValidateInput(req.Data); err != nil {
		badRequest(c, err)
		return
	}

	done := h.metrics.TrackTerminalOperation("write")
	err := h.terminals.Write(sessionID, []byte(req.Data))
	done(err)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ResizeSession changes a session's window size
func (h *Handlers) ResizeSession(c *gin.Context) {
	sessionID, ok := sessionParam(c)
	if !ok {
		return
	}

	var req types.ResizeTerminalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	cols, rows, err := dimensions(req.Cols, req.Rows, -1, -1)
	if err != nil {
		badRequest(c, err)
		return
	}

	done := h.metrics.TrackTerminalOperation("resize")
	err = h.terminals.Resize(sessionID, cols, rows)
	done(err)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// CloseSession removes a session. Unknown sessions are not an error.
func (h *Handlers) CloseSession(c *gin.Context) {
	sessionID, ok := sessionParam(c)
	if !ok {
		return
	}

	done := h.metrics.TrackTerminalOperation("close")
	err := h.terminals.Close(sessionID)
	done(err)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListSessions lists terminal sessions
func (h *Handlers) ListSessions(c *gin.Context) {
	sessions := h.terminals.List()
	c.JSON(http.StatusOK, gin.H{
		"sessions": sessions,
		"count":    len(sessions),
	})
}

// GetSession returns one session
func (h *Handlers) GetSession(c *gin.Context) {
	sessionID, ok := sessionParam(c)
	if !ok {
		return
	}

	info, err := h.terminals.Get(sessionID)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

func sessionParam(c *gin.Context) (string, bool) {
	sessionID := c.Param("id")
	if err := utils.ValidateID(sessionID, "session_id", true); err != nil {
		badRequest(c, err)
		return "", false
	}
	return sessionID, true
}

// dimensions validates cols and rows. A zero value takes its default
// unless the default is negative.
func dimensions(cols, rows, defCols, defRows int) (uint16, uint16, error) {
	if cols == 0 && defCols >= 0 {
		cols = defCols
	}
	if rows == 0 && defRows >= 0 {
		rows = defRows
	}
	if err := utils.ValidateDimension(cols, "cols"); err != nil {
		return 0, 0, err
	}
	if err := utils.ValidateDimension(rows, "rows"); err != nil {
		return 0, 0, err
	}
	return uint16(cols), uint16(rows), nil
}
