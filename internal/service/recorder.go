package service

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/MEKSAAA/Anti-Fake/internal/model"
	"github.com/MEKSAAA/Anti-Fake/internal/repository"
)

// PersistenceOutcome reports whether a detection made it into the
// database. Analysis results are returned to the caller either way; the
// flag only drives the response caveat.
type PersistenceOutcome struct {
	Saved bool
	Err   error
}

// OutcomeRecorder persists a finished detection.
type OutcomeRecorder interface {
	RecordDetection(record *model.DetectionRecord, isFake bool) PersistenceOutcome
}

// Recorder writes the detection record and bumps statistics in one
// transaction. A statistics failure is logged and skipped so the record
// itself still commits; a record failure rolls everything back.
type Recorder struct{}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) RecordDetection(record *model.DetectionRecord, isFake bool) PersistenceOutcome {
	err := repository.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			return err
		}
		if err := repository.BumpStatistics(tx, record.UserID, isFake); err != nil {
			zap.L().Warn("statistics update failed, keeping detection record",
				zap.Uint("user_id", record.UserID), zap.Error(err))
		}
		return nil
	})
	if err != nil {
		zap.L().Error("failed to persist detection record",
			zap.Uint("user_id", record.UserID), zap.Error(err))
		return PersistenceOutcome{Saved: false, Err: err}
	}
	return PersistenceOutcome{Saved: true}
}
