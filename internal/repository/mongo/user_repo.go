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

const userCollectionName = "users"

// mongoUserRepository implements the repository.UserRepository interface using MongoDB.
type mongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new instance of mongoUserRepository.
// It expects a connected *mongo.Database instance.
func NewMongoUserRepository(db *mongo.Database) repository.UserRepository {
	return &mongoUserRepository{
		collection: db.Collection(userCollectionName),
	}
}

// Create inserts a new user into the database.
func (r *mongoUserRepository) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	if user.Email == "" || user.Role == "" {
		return primitive.NilObjectID, errors.New("user email and role are required")
	}

	user.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, user)
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

// GetByID retrieves a user by their MongoDB ObjectID.
func (r *mongoUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	var user domain.User
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetStaffByEmail retrieves a coach or superadmin by email regardless of
// tenant. The role filter keeps a same-email lead in some tenant from
// shadowing the staff account.
func (r *mongoUserRepository) GetStaffByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	filter := bson.M{
		"email": email,
		"role":  bson.M{"$in": []domain.Role{domain.RoleCoach, domain.RoleSuperAdmin}},
	}

	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByTenantAndEmail retrieves a user scoped to one tenant. Lead email
// uniqueness is per tenant, so lookups must carry the tenant id.
func (r *mongoUserRepository) GetByTenantAndEmail(ctx context.Context, tenantID primitive.ObjectID, email string) (*domain.User, error) {
	var user domain.User
	filter := bson.M{"tenantId": tenantID, "email": email}

	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ListLeads retrieves the tenant's leads, optionally filtered by status,
// newest first.
func (r *mongoUserRepository) ListLeads(ctx context.Context, tenantID primitive.ObjectID, status domain.LeadStatus) ([]domain.User, error) {
	filter := bson.M{"tenantId": tenantID, "role": domain.RoleConsumer}
	if status != "" {
		filter["leadStatus"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var leads []domain.User
	if err = cursor.All(ctx, &leads); err != nil {
		return nil, err
	}
	return leads, nil
}

// LeadsWithCallbacksBetween finds leads owning at least one follow-up whose
// callbackAt falls in [from, to). Flattening and sorting of the individual
// follow-ups happens in the service layer.
func (r *mongoUserRepository) LeadsWithCallbacksBetween(ctx context.Context, tenantID primitive.ObjectID, from, to time.Time) ([]domain.User, error) {
	filter := bson.M{
		"tenantId": tenantID,
		"role":     domain.RoleConsumer,
		"followUps": bson.M{"$elemMatch": bson.M{
			"callbackAt": bson.M{"$gte": from, "$lt": to},
		}},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var leads []domain.User
	if err = cursor.All(ctx, &leads); err != nil {
		return nil, err
	}
	return leads, nil
}

// Update replaces the mutable fields of an existing user document.
func (r *mongoUserRepository) Update(ctx context.Context, user *domain.User) error {
	if user.ID == primitive.NilObjectID {
		return errors.New("user ID is required for update")
	}
	user.UpdatedAt = time.Now().UTC()

	filter := bson.M{"_id": user.ID}
	update := bson.M{"$set": bson.M{
		"name":       user.Name,
		"firstName":  user.FirstName,
		"lastName":   user.LastName,
		"email":      user.Email,
		"phone":      user.Phone,
		"role":       user.Role,
		"leadStatus": user.LeadStatus,
		"followUps":  user.FollowUps,
		"updatedAt":  user.UpdatedAt,
	}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureUserIndexes creates necessary indexes for the users collection.
// Call this once during application startup.
func EnsureUserIndexes(ctx context.Context, db *mongo.Database) {
	collection := db.Collection(userCollectionName)
	indexes := []mongo.IndexModel{
		{
			// Lead emails are unique within a tenant, not globally.
			Keys:    bson.D{{Key: "tenantId", Value: 1}, {Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "role", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "followUps.callbackAt", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		// Not fatal at boot; queries still work without the indexes.
		log.Printf("WARN: Index creation for %s failed: %v", collection.Name(), err)
	}
}
