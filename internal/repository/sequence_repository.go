package repository

import (
	"context"
	"errors"

	"github.com/jvintimilla/logia-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SequenceRepository defines the interface for receipt sequence counters
type SequenceRepository interface {
	// Next atomically increments and returns the counter for a ledger module
	Next(ctx context.Context, module string) (int64, error)
}

type sequenceRepository struct {
	db *gorm.DB
}

// NewSequenceRepository creates a new sequence repository
func NewSequenceRepository(db *gorm.DB) SequenceRepository {
	return &sequenceRepository{db: db}
}

// Next increments the per-module counter under a row lock so concurrent
// receipt generation never hands out the same number twice.
func (r *sequenceRepository) Next(ctx context.Context, module string) (int64, error) {
	var next int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var seq models.ReceiptSequence
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("module = ?", module).
			First(&seq).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			seq = models.ReceiptSequence{Module: module, LastNumber: 0}
			if err := tx.Create(&seq).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		seq.LastNumber++
		next = seq.LastNumber
		return tx.Save(&seq).Error
	})

	return next, err
}
