package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Generation outcomes recorded in GenerationAudit.Outcome.
const (
	OutcomeSuccess   = "success"
	OutcomeExhausted = "exhausted"
	OutcomeInvalid   = "invalid"
	OutcomeError     = "error"
)

// GenerationAudit records one generation request. The password itself is never stored.
type GenerationAudit struct {
	ID        uuid.UUID `json:"id" gorm:"type:text;primaryKey"`
	RequestID string    `json:"request_id" gorm:"index;not null"`
	Preset    string    `json:"preset" gorm:"index"`
	Length    int       `json:"length"`
	Count     int       `json:"count"`
	Attempts  int       `json:"attempts"`
	Outcome   string    `json:"outcome" gorm:"index;not null"`
	ErrorKind string    `json:"error_kind,omitempty"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

func (a *GenerationAudit) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (GenerationAudit) TableName() string {
	return "generation_audits"
}

// AnalysisAudit records one strength analysis by its derived metrics only.
type AnalysisAudit struct {
	ID          uuid.UUID `json:"id" gorm:"type:text;primaryKey"`
	RequestID   string    `json:"request_id" gorm:"index;not null"`
	Length      int       `json:"length"`
	Score       int       `json:"score" gorm:"index"`
	EntropyBits float64   `json:"entropy_bits"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}

func (a *AnalysisAudit) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (AnalysisAudit) TableName() string {
	return "analysis_audits"
}
