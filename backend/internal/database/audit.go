package database

import (
	"context"
	"fmt"

	"passforge/backend/internal/database/models"
)

// DefaultRecentLimit bounds RecentGenerations when the caller passes a non-positive limit.
const DefaultRecentLimit = 50

func (d *Database) RecordGeneration(ctx context.Context, audit *models.GenerationAudit) error {
	if err := d.DB.WithContext(ctx).Create(audit).Error; err != nil {
		return fmt.Errorf("failed to record generation: %w", err)
	}
	return nil
}

func (d *Database) RecordAnalysis(ctx context.Context, audit *models.AnalysisAudit) error {
	if err := d.DB.WithContext(ctx).Create(audit).Error; err != nil {
		return fmt.Errorf("failed to record analysis: %w", err)
	}
	return nil
}

// RecentGenerations returns the newest generation records first.
func (d *Database) RecentGenerations(ctx context.Context, limit int) ([]models.GenerationAudit, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	var audits []models.GenerationAudit
	err := d.DB.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&audits).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list generations: %w", err)
	}
	return audits, nil
}

// GenerationCounts tallies generation records by outcome.
func (d *Database) GenerationCounts(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Outcome string
		Total   int64
	}
	err := d.DB.WithContext(ctx).
		Model(&models.GenerationAudit{}).
		Select("outcome, count(*) AS total").
		Group("outcome").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count generations: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Outcome] = row.Total
	}
	return counts, nil
}
