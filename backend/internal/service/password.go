// Package service ties the password engine to the dictionary, metrics and audit store.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"passforge/backend/internal/config"
	"passforge/backend/internal/database/models"
	"passforge/backend/internal/password"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidCount  = errors.New("count must be at least 1")
	ErrBatchTooLarge = errors.New("batch size exceeds the configured maximum")
)

// AuditStore persists request metadata. *database.Database satisfies it.
type AuditStore interface {
	RecordGeneration(ctx context.Context, audit *models.GenerationAudit) error
	RecordAnalysis(ctx context.Context, audit *models.AnalysisAudit) error
}

// MetricsRecorder receives per-call observations. *metrics.Metrics satisfies it.
type MetricsRecorder interface {
	ObserveGeneration(preset, outcome string, attempts int, elapsed time.Duration)
	ObserveAnalysis(score int, entropyBits float64)
}

type GenerateRequest struct {
	Preset string          `json:"preset"`
	Rules  *password.Rules `json:"rules,omitempty"`
}

type Generated struct {
	Password string                  `json:"password"`
	Attempts int                     `json:"attempts"`
	Analysis password.AnalysisResult `json:"analysis"`
}

type Batch struct {
	RequestID string         `json:"request_id"`
	Preset    string         `json:"preset"`
	Rules     password.Rules `json:"rules"`
	Results   []Generated    `json:"results"`
}

type CheckResult struct {
	Compliant  bool     `json:"compliant"`
	Violations []string `json:"violations"`
}

type PasswordService struct {
	cfg       config.GeneratorConfig
	generator *password.Generator
	analyzer  *password.Analyzer
	audit     AuditStore
	metrics   MetricsRecorder
	logger    *zap.SugaredLogger
}

// NewPasswordService builds a service whose dictionary checks read words.
// audit and metrics may be nil.
func NewPasswordService(
	cfg config.GeneratorConfig,
	words password.WordList,
	audit AuditStore,
	metrics MetricsRecorder,
	logger *zap.SugaredLogger,
) *PasswordService {
	checker := password.NewChecker(words)
	return &PasswordService{
		cfg:       cfg,
		generator: password.NewGenerator(checker),
		analyzer:  password.NewAnalyzer(checker),
		audit:     audit,
		metrics:   metrics,
		logger:    logger,
	}
}

// ResolveRules picks the preset (the configured default when presetName is empty)
// and applies overrides. Overrides without a preset name imply the custom preset.
func (s *PasswordService) ResolveRules(presetName string, overrides *password.Rules) (password.Preset, password.Rules, error) {
	if presetName == "" {
		if overrides != nil {
			presetName = string(password.PresetCustom)
		} else {
			presetName = s.cfg.DefaultPreset
		}
	}

	preset, err := password.ParsePreset(presetName)
	if err != nil {
		return "", password.Rules{}, err
	}
	rules, err := preset.Resolve(overrides)
	if err != nil {
		return "", password.Rules{}, err
	}
	return preset, rules, nil
}

// Generate produces a single password with its analysis.
func (s *PasswordService) Generate(ctx context.Context, req GenerateRequest) (Generated, error) {
	batch, err := s.GenerateBatch(ctx, req, 1)
	if err != nil {
		return Generated{}, err
	}
	return batch.Results[0], nil
}

// GenerateBatch produces count independent passwords concurrently. The first
// failure cancels the remaining work and is returned.
func (s *PasswordService) GenerateBatch(ctx context.Context, req GenerateRequest, count int) (*Batch, error) {
	requestID := RequestIDFromContext(ctx)

	preset, rules, err := s.ResolveRules(req.Preset, req.Rules)
	if err == nil {
		err = s.checkCount(count)
	}
	if err != nil {
		s.recordGeneration(ctx, requestID, req.Preset, rules.Length, count, 0, err)
		return nil, err
	}

	results := make([]Generated, count)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.MaxParallel)
	for i := 0; i < count; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := s.generateOne(preset, rules)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	err = g.Wait()
	attempts := 0
	for _, r := range results {
		attempts += r.Attempts
	}
	s.recordGeneration(ctx, requestID, string(preset), rules.Length, count, attempts, err)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("Passwords generated",
		"request_id", requestID,
		"preset", preset,
		"count", count,
		"length", rules.Length,
		"attempts", attempts,
	)

	return &Batch{
		RequestID: requestID,
		Preset:    string(preset),
		Rules:     rules,
		Results:   results,
	}, nil
}

func (s *PasswordService) checkCount(count int) error {
	if count < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidCount, count)
	}
	if count > s.cfg.MaxBatch {
		return fmt.Errorf("%w: %d > %d", ErrBatchTooLarge, count, s.cfg.MaxBatch)
	}
	return nil
}

func (s *PasswordService) generateOne(preset password.Preset, rules password.Rules) (Generated, error) {
	start := time.Now()
	res, err := s.generator.Generate(rules)
	if s.metrics != nil {
		outcome, _ := Outcome(err)
		s.metrics.ObserveGeneration(string(preset), outcome, res.Attempts, time.Since(start))
	}
	if err != nil {
		return Generated{}, err
	}

	return Generated{
		Password: res.Password,
		Attempts: res.Attempts,
		Analysis: s.analyzer.Analyze(res.Password),
	}, nil
}

// Analyze estimates the strength of pw. Only derived metrics are recorded.
func (s *PasswordService) Analyze(ctx context.Context, pw string) password.AnalysisResult {
	requestID := RequestIDFromContext(ctx)
	result := s.analyzer.Analyze(pw)

	if s.metrics != nil {
		s.metrics.ObserveAnalysis(result.Score, result.EntropyBits)
	}
	if s.audit != nil {
		audit := &models.AnalysisAudit{
			RequestID:   requestID,
			Length:      len([]rune(pw)),
			Score:       result.Score,
			EntropyBits: result.EntropyBits,
		}
		if err := s.audit.RecordAnalysis(ctx, audit); err != nil {
			s.logger.Warnw("Failed to record analysis audit", "request_id", requestID, "error", err)
		}
	}

	s.logger.Debugw("Password analyzed",
		"request_id", requestID,
		"length", len([]rune(pw)),
		"score", result.Score,
	)
	return result
}

// Check reports whether pw satisfies the resolved rules and, if not, why.
func (s *PasswordService) Check(ctx context.Context, pw string, req GenerateRequest) (CheckResult, error) {
	_, rules, err := s.ResolveRules(req.Preset, req.Rules)
	if err != nil {
		return CheckResult{}, err
	}
	if err := rules.Validate(); err != nil {
		return CheckResult{}, err
	}

	violations := s.generator.Checker().Violations(pw, rules)
	return CheckResult{
		Compliant:  len(violations) == 0,
		Violations: violations,
	}, nil
}

// Presets lists every preset with its rules.
func (s *PasswordService) Presets() map[password.Preset]password.Rules {
	return password.Presets()
}

func (s *PasswordService) recordGeneration(ctx context.Context, requestID, preset string, length, count, attempts int, err error) {
	outcome, kind := Outcome(err)
	if err != nil {
		s.logger.Warnw("Password generation failed",
			"request_id", requestID,
			"preset", preset,
			"outcome", outcome,
			"error", err,
		)
	}
	if s.audit == nil {
		return
	}

	audit := &models.GenerationAudit{
		RequestID: requestID,
		Preset:    preset,
		Length:    length,
		Count:     count,
		Attempts:  attempts,
		Outcome:   outcome,
		ErrorKind: kind,
	}
	// The caller's context may already be cancelled; the audit row should still land.
	if auditErr := s.audit.RecordGeneration(context.WithoutCancel(ctx), audit); auditErr != nil {
		s.logger.Warnw("Failed to record generation audit", "request_id", requestID, "error", auditErr)
	}
}

// Outcome classifies a generation error for metrics and audit rows.
func Outcome(err error) (outcome, kind string) {
	switch {
	case err == nil:
		return models.OutcomeSuccess, ""
	case errors.Is(err, password.ErrGenerationExhausted):
		return models.OutcomeExhausted, "exhausted"
	case errors.Is(err, password.ErrEmptyAlphabet):
		return models.OutcomeInvalid, "empty_alphabet"
	case errors.Is(err, password.ErrUnknownPreset):
		return models.OutcomeInvalid, "unknown_preset"
	case errors.Is(err, password.ErrInvalidRules):
		return models.OutcomeInvalid, "invalid_rules"
	case errors.Is(err, ErrInvalidCount), errors.Is(err, ErrBatchTooLarge):
		return models.OutcomeInvalid, "invalid_count"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return models.OutcomeError, "cancelled"
	default:
		return models.OutcomeError, "internal"
	}
}
