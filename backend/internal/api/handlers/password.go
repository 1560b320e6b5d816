package handlers

import (
	"errors"
	"net/http"

	"passforge/backend/internal/api/middleware"
	"passforge/backend/internal/password"
	"passforge/backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type GenerateRequest struct {
	Preset string          `json:"preset"`
	Rules  *password.Rules `json:"rules,omitempty"`
	Count  int             `json:"count"`
}

type GenerateResponse struct {
	RequestID string                    `json:"request_id"`
	Preset    string                    `json:"preset"`
	Rules     password.Rules            `json:"rules"`
	Passwords []string                  `json:"passwords"`
	Analysis  []password.AnalysisResult `json:"analysis"`
	Attempts  []int                     `json:"attempts"`
}

type AnalyzeRequest struct {
	Password string `json:"password"`
}

type CheckRequest struct {
	Password string          `json:"password"`
	Preset   string          `json:"preset"`
	Rules    *password.Rules `json:"rules,omitempty"`
}

type PresetInfo struct {
	Name  string         `json:"name"`
	Rules password.Rules `json:"rules"`
}

type PasswordHandler struct {
	service *service.PasswordService
	logger  *zap.SugaredLogger
}

func NewPasswordHandler(svc *service.PasswordService, logger *zap.SugaredLogger) *PasswordHandler {
	return &PasswordHandler{
		service: svc,
		logger:  logger,
	}
}

func (h *PasswordHandler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Count == 0 {
		req.Count = 1
	}

	batch, err := h.service.GenerateBatch(c.Request.Context(), service.GenerateRequest{
		Preset: req.Preset,
		Rules:  req.Rules,
	}, req.Count)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := GenerateResponse{
		RequestID: batch.RequestID,
		Preset:    batch.Preset,
		Rules:     batch.Rules,
		Passwords: make([]string, len(batch.Results)),
		Analysis:  make([]password.AnalysisResult, len(batch.Results)),
		Attempts:  make([]int, len(batch.Results)),
	}
	for i, r := range batch.Results {
		resp.Passwords[i] = r.Password
		resp.Analysis[i] = r.Analysis
		resp.Attempts[i] = r.Attempts
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PasswordHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	c.JSON(http.StatusOK, h.service.Analyze(c.Request.Context(), req.Password))
}

func (h *PasswordHandler) Check(c *gin.Context) {
	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.service.Check(c.Request.Context(), req.Password, service.GenerateRequest{
		Preset: req.Preset,
		Rules:  req.Rules,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *PasswordHandler) Presets(c *gin.Context) {
	presets := h.service.Presets()
	out := make([]PresetInfo, 0, len(presets))
	for _, name := range password.PresetNames() {
		out = append(out, PresetInfo{Name: name, Rules: presets[password.Preset(name)]})
	}
	c.JSON(http.StatusOK, gin.H{"presets": out})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "invalid_request",
		"message": err.Error(),
	})
}

// writeError maps service failures to HTTP statuses.
func (h *PasswordHandler) writeError(c *gin.Context, err error) {
	var (
		rulesErr     *password.RulesError
		exhaustedErr *password.ExhaustedError
	)

	switch {
	case errors.As(err, &exhaustedErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":    "generation_exhausted",
			"message":  err.Error(),
			"attempts": exhaustedErr.Attempts,
		})
	case errors.Is(err, password.ErrEmptyAlphabet):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "empty_alphabet",
			"message": err.Error(),
		})
	case errors.As(err, &rulesErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":    "invalid_rules",
			"message":  err.Error(),
			"problems": rulesErr.Problems,
		})
	case errors.Is(err, password.ErrInvalidRules):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_rules",
			"message": err.Error(),
		})
	case errors.Is(err, password.ErrUnknownPreset):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "unknown_preset",
			"message": err.Error(),
		})
	case errors.Is(err, service.ErrInvalidCount), errors.Is(err, service.ErrBatchTooLarge):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_count",
			"message": err.Error(),
		})
	default:
		_ = c.Error(err)
		h.logger.Errorw("Password request failed", "request_id", middleware.GetRequestID(c), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "Something went wrong",
		})
	}
}
