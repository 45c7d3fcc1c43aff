package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"taskpilot/internal/ai"
)

const (
	msgPromptRequired = "User prompt is required."
	msgGenerateFailed = "Failed to generate tasks from AI. Error: "
)

type generateRequest struct {
	UserPrompt string `json:"userPrompt"`
}

type generateResponse struct {
	Tasks []string `json:"tasks"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

func (s *Server) handleGenerate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Message: msgPromptRequired})
		return
	}
	prompt := strings.TrimSpace(req.UserPrompt)
	if prompt == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Message: msgPromptRequired})
		return
	}

	tasks, err := s.gen.Generate(c.Request.Context(), prompt)
	if errors.Is(err, ai.ErrEmptyPrompt) {
		c.JSON(http.StatusBadRequest, errorResponse{Message: msgPromptRequired})
		return
	}
	if err != nil {
		s.logger.Error("generate tasks", "request_id", requestID(c), "err", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Message: msgGenerateFailed + err.Error()})
		return
	}
	if tasks == nil {
		tasks = []string{}
	}
	s.logger.Debug("generated tasks", "request_id", requestID(c), "count", len(tasks))
	c.JSON(http.StatusOK, generateResponse{Tasks: tasks})
}
