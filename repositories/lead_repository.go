package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jvoverseas/intake_backend/config"
	"github.com/jvoverseas/intake_backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type LeadRepository struct {
	collection *mongo.Collection
}

func NewLeadRepository(db *mongo.Database) *LeadRepository {
	return &LeadRepository{
		collection: db.Collection(config.LeadsCollection),
	}
}

// Create always inserts; every enquiry is kept as its own lead.
func (r *LeadRepository) Create(ctx context.Context, lead *models.Lead) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now()
	}
	if lead.Status == "" {
		lead.Status = models.LeadStatusReceived
	}

	res, err := r.collection.InsertOne(ctx, lead)
	if err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		lead.ID = id
	}
	return nil
}

func (r *LeadRepository) FindByEmail(ctx context.Context, email string) (*models.Lead, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var lead models.Lead
	if err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&lead); err != nil {
		return nil, mapNotFound(err)
	}
	return &lead, nil
}

// FindOrCreateByEmail returns the existing lead for candidate.Email or
// inserts candidate. created reports which happened. Two concurrent calls
// for a new email may both insert.
func (r *LeadRepository) FindOrCreateByEmail(ctx context.Context, candidate *models.Lead) (lead *models.Lead, created bool, err error) {
	existing, err := r.FindByEmail(ctx, candidate.Email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, fmt.Errorf("find lead: %w", err)
	}

	if err := r.Create(ctx, candidate); err != nil {
		return nil, false, err
	}
	return candidate, true, nil
}

// List returns every lead, newest first.
func (r *LeadRepository) List(ctx context.Context) ([]models.Lead, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find leads: %w", err)
	}
	defer cursor.Close(ctx)

	leads := []models.Lead{}
	if err := cursor.All(ctx, &leads); err != nil {
		return nil, fmt.Errorf("decode leads: %w", err)
	}
	return leads, nil
}
