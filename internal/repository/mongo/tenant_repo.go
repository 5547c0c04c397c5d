package mongo

import (
	"context"
	"errors"
	"log"
	"time"

	"fitcoach/coach-platform/internal/domain"
	"fitcoach/coach-platform/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const tenantCollectionName = "tenants"

// mongoTenantRepository implements the repository.TenantRepository interface using MongoDB.
type mongoTenantRepository struct {
	collection *mongo.Collection
}

// NewMongoTenantRepository creates a new instance of mongoTenantRepository.
func NewMongoTenantRepository(db *mongo.Database) repository.TenantRepository {
	return &mongoTenantRepository{
		collection: db.Collection(tenantCollectionName),
	}
}

// Create inserts a new tenant.
func (r *mongoTenantRepository) Create(ctx context.Context, tenant *domain.Tenant) (primitive.ObjectID, error) {
	if tenant.Name == "" {
		return primitive.NilObjectID, errors.New("tenant name is required")
	}

	tenant.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	tenant.CreatedAt = now
	tenant.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, tenant)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves a tenant by its ObjectID.
func (r *mongoTenantRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Tenant, error) {
	var tenant domain.Tenant
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&tenant)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &tenant, nil
}

// GetByFacebookPage retrieves the tenant wired to a Facebook page id.
func (r *mongoTenantRepository) GetByFacebookPage(ctx context.Context, pageID string) (*domain.Tenant, error) {
	var tenant domain.Tenant
	err := r.collection.FindOne(ctx, bson.M{"facebookPageId": pageID}).Decode(&tenant)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &tenant, nil
}

// List retrieves all tenants, newest first.
func (r *mongoTenantRepository) List(ctx context.Context) ([]domain.Tenant, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tenants []domain.Tenant
	if err = cursor.All(ctx, &tenants); err != nil {
		return nil, err
	}
	return tenants, nil
}

// Update replaces the tenant's mutable fields, including the whole pricing
// plan array. Invariants over the array are enforced in the service layer.
func (r *mongoTenantRepository) Update(ctx context.Context, tenant *domain.Tenant) error {
	if tenant.ID == primitive.NilObjectID {
		return errors.New("tenant ID is required for update")
	}
	tenant.UpdatedAt = time.Now().UTC()

	update := bson.M{"$set": bson.M{
		"name":         tenant.Name,
		"contactEmail": tenant.ContactEmail,
		"contactPhone": tenant.ContactPhone,
		"facebookPageId": tenant.FacebookPageID,
		"pricingPlans": tenant.PricingPlans,
		"updatedAt":    tenant.UpdatedAt,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": tenant.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureTenantIndexes creates indexes for the tenants collection.
func EnsureTenantIndexes(ctx context.Context, db *mongo.Database) {
	collection := db.Collection(tenantCollectionName)
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Printf("WARN: Index creation for %s failed: %v", collection.Name(), err)
	}
}
