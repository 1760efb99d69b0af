package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	propertieserrors "venuedesk/internal/properties/errors"
	"venuedesk/pkg/config"
	"venuedesk/pkg/model"
)

const (
	CollectionName     = "Properties"
	PackagesCollection = "Packages"
)

type PropertyRepository interface {
	Create(ctx context.Context, property *model.Property) error
	Update(ctx context.Context, id string, property *model.Property) error
	FindByID(ctx context.Context, id string) (*model.PropertyWithPackages, error)
	FindActiveWithPackages(ctx context.Context) ([]*model.PropertyWithPackages, error)
	FindByOwner(ctx context.Context, accountID string) ([]*model.Property, error)
	SetActive(ctx context.Context, id string, active bool) error
	CreatePackage(ctx context.Context, pkg *model.Package) error
	FindPackagesByOwner(ctx context.Context, accountID string) ([]*model.Package, error)
	FindPackageRefs(ctx context.Context, propertyID string) ([]model.PackageRef, error)
}

type mongoPropertyRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	packages   *mongo.Collection
	cache      *catalogCache
}

func NewMongoPropertyRepository(cfg *config.Config) PropertyRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoPropertyRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		packages:   db.Collection(PackagesCollection),
		cache:      newCatalogCache(cfg.Client.Redis, cfg.CatalogCacheTTL, cfg.Log),
	}
}

func (r *mongoPropertyRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// packageLookupStage joins the referenced package ids with the Packages
// collection, projecting each down to id and name. Package ids are stored as
// hex strings, so they are converted before matching against _id.
func packageLookupStage() bson.D {
	return bson.D{{Key: "$lookup", Value: bson.M{
		"from": PackagesCollection,
		"let":  bson.M{"pids": bson.M{"$ifNull": bson.A{"$packages", bson.A{}}}},
		"pipeline": bson.A{
			bson.M{"$match": bson.M{"$expr": bson.M{
				"$in": bson.A{"$_id", bson.M{"$map": bson.M{
					"input": "$$pids",
					"as":    "pid",
					"in":    bson.M{"$toObjectId": "$$pid"},
				}}},
			}}},
			bson.M{"$project": bson.M{"package_name": 1}},
		},
		"as": "package_details",
	}}}
}

func (r *mongoPropertyRepository) Create(ctx context.Context, property *model.Property) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.StoreWriteTimeout)
	defer cancel()

	property.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, property)
	if err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		property.ID = oid.Hex()
	}
	r.cache.Invalidate(ctx)
	return nil
}

func (r *mongoPropertyRepository) Update(ctx context.Context, id string, property *model.Property) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.StoreWriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", propertieserrors.ErrInvalidID, id)
	}

	update := bson.M{"$set": bson.M{
		"title":         property.Title,
		"city":          property.City,
		"description":   property.Description,
		"packages":      property.Packages,
		"partitions":    property.Partitions,
		"gallery":       property.Gallery,
		"venue_type":    property.VenueType,
		"geometry":      property.Geometry,
		"item_priority": property.ItemPriority,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update property: %w", err)
	}
	if result.MatchedCount == 0 {
		return propertieserrors.ErrNotFound
	}
	r.cache.Invalidate(ctx)
	return nil
}

func (r *mongoPropertyRepository) FindByID(ctx context.Context, id string) (*model.PropertyWithPackages, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.StoreReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", propertieserrors.ErrInvalidID, id)
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"_id": objectID}}},
		packageLookupStage(),
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to find property: %w", err)
	}
	defer cursor.Close(ctx)

	var properties []*model.PropertyWithPackages
	if err = cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("failed to decode property: %w", err)
	}
	if len(properties) == 0 {
		return nil, propertieserrors.ErrNotFound
	}
	return properties[0], nil
}

// FindActiveWithPackages loads the public catalog: active properties sorted
// by item priority, each joined with its package details. Served from the
// cache when warm; mutations invalidate it.
func (r *mongoPropertyRepository) FindActiveWithPackages(ctx context.Context) ([]*model.PropertyWithPackages, error) {
	if catalog, ok := r.cache.Get(ctx); ok {
		return catalog, nil
	}

	ctx, cancel := r.withTimeout(ctx, r.cfg.StoreReadTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"active": true}}},
		packageLookupStage(),
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "item_priority", Value: -1},
			{Key: "created_at", Value: -1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to load active properties: %w", err)
	}
	defer cursor.Close(ctx)

	catalog := make([]*model.PropertyWithPackages, 0)
	if err = cursor.All(ctx, &catalog); err != nil {
		return nil, fmt.Errorf("failed to decode active properties: %w", err)
	}

	r.cache.Set(ctx, catalog)
	return catalog, nil
}

func (r *mongoPropertyRepository) FindByOwner(ctx context.Context, accountID string) ([]*model.Property, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.StoreReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": accountID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find properties by owner: %w", err)
	}
	defer cursor.Close(ctx)

	properties := make([]*model.Property, 0)
	if err = cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("failed to decode properties: %w", err)
	}
	return properties, nil
}

// SetActive toggles catalog visibility. Deactivation is the soft delete:
// the record and its booking history stay in place.
func (r *mongoPropertyRepository) SetActive(ctx context.Context, id string, active bool) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.StoreWriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", propertieserrors.ErrInvalidID, id)
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"active": active}},
	)
	if err != nil {
		return fmt.Errorf("failed to update property status: %w", err)
	}
	if result.MatchedCount == 0 {
		return propertieserrors.ErrNotFound
	}
	r.cache.Invalidate(ctx)
	return nil
}

func (r *mongoPropertyRepository) CreatePackage(ctx context.Context, pkg *model.Package) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.StoreWriteTimeout)
	defer cancel()

	result, err := r.packages.InsertOne(ctx, pkg)
	if err != nil {
		return fmt.Errorf("failed to create package: %w", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		pkg.ID = oid.Hex()
	}
	return nil
}

func (r *mongoPropertyRepository) FindPackagesByOwner(ctx context.Context, accountID string) ([]*model.Package, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.StoreReadTimeout)
	defer cancel()

	cursor, err := r.packages.Find(ctx, bson.M{"user_id": accountID})
	if err != nil {
		return nil, fmt.Errorf("failed to find packages by owner: %w", err)
	}
	defer cursor.Close(ctx)

	packages := make([]*model.Package, 0)
	if err = cursor.All(ctx, &packages); err != nil {
		return nil, fmt.Errorf("failed to decode packages: %w", err)
	}
	return packages, nil
}

// FindPackageRefs resolves one venue's referenced packages to id/name pairs.
func (r *mongoPropertyRepository) FindPackageRefs(ctx context.Context, propertyID string) ([]model.PackageRef, error) {
	property, err := r.FindByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property.PackageDetails == nil {
		return []model.PackageRef{}, nil
	}
	return property.PackageDetails, nil
}
