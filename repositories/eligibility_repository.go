package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jvoverseas/intake_backend/config"
	"github.com/jvoverseas/intake_backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type EligibilityRecordRepository struct {
	collection *mongo.Collection
}

func NewEligibilityRecordRepository(db *mongo.Database) *EligibilityRecordRepository {
	return &EligibilityRecordRepository{
		collection: db.Collection(config.EligibilityRecordsCollection),
	}
}

func (r *EligibilityRecordRepository) Create(ctx context.Context, record *models.EligibilityRecord) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	if record.Analysis.Status == "" {
		record.Analysis.Status = models.AnalysisPending
	}
	if record.Analysis.SuggestedBanks == nil {
		record.Analysis.SuggestedBanks = []string{}
	}

	res, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		return fmt.Errorf("insert eligibility record: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		record.ID = id
	}
	return nil
}
