package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	bookingserrors "venuedesk/internal/bookings/errors"
	"venuedesk/pkg/config"
	mongotx "venuedesk/pkg/db/mongo"
	"venuedesk/pkg/model"
)

const (
	CollectionName       = "Bookings"
	PropertiesCollection = "Properties"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	CountConfirmedInWindow(ctx context.Context, venueID, partition string, from, to time.Time) (int64, error)
	FindBookedVenueIDs(ctx context.Context, venueID string, from, to time.Time) ([]string, error)
	FindByOwnerWithVenue(ctx context.Context, accountID string, confirmed int) ([]*model.BookingWithVenue, error)
	Deactivate(ctx context.Context, id string) error
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoBookingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout wraps the context with a store timeout unless the call is
// already inside a transaction, where wrapping the SessionContext would
// break its semantics.
func (r *mongoBookingRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.StoreWriteTimeout)
	defer cancel()

	booking.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// the partial unique slot index rejected a second confirmed
			// booking for the same venue/partition/date
			return fmt.Errorf("%w: %s/%s", bookingserrors.ErrSlotTaken, booking.Venue, booking.Partition)
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		booking.ID = oid.Hex()
	}
	return nil
}

func (r *mongoBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.StoreReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	var booking model.Booking
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}

	return &booking, nil
}

// CountConfirmedInWindow counts confirmed bookings for one venue partition
// whose event date falls in [from, to). Inquiries are excluded by the
// confirmed filter.
func (r *mongoBookingRepository) CountConfirmedInWindow(ctx context.Context, venueID, partition string, from, to time.Time) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.StoreReadTimeout)
	defer cancel()

	filter := bson.M{
		"venue":      venueID,
		"partition":  partition,
		"confirmed":  model.Confirmed,
		"status":     true,
		"event_date": bson.M{"$gte": from, "$lt": to},
	}

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings in window: %w", err)
	}
	return count, nil
}

// FindBookedVenueIDs projects the venue ids of confirmed bookings with an
// event date in [from, to). venueID narrows the scan to one venue when set.
// Partition is deliberately not part of the filter: any confirmed booking
// marks the whole venue as booked at catalog level.
func (r *mongoBookingRepository) FindBookedVenueIDs(ctx context.Context, venueID string, from, to time.Time) ([]string, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.StoreReadTimeout)
	defer cancel()

	filter := bson.M{
		"confirmed":  model.Confirmed,
		"status":     true,
		"event_date": bson.M{"$gte": from, "$lt": to},
	}
	if venueID != "" {
		filter["venue"] = venueID
	}

	opts := options.Find().SetProjection(bson.M{"venue": 1})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find booked venues: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		Venue string `bson:"venue"`
	}
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode booked venues: %w", err)
	}

	seen := make(map[string]struct{}, len(docs))
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		if _, ok := seen[d.Venue]; ok {
			continue
		}
		seen[d.Venue] = struct{}{}
		ids = append(ids, d.Venue)
	}
	return ids, nil
}

// FindByOwnerWithVenue lists an account's bookings filtered by the
// confirmed flag, each joined with its venue record. The join is a left
// join: a booking whose venue was removed keeps an empty venue_detail.
func (r *mongoBookingRepository) FindByOwnerWithVenue(ctx context.Context, accountID string, confirmed int) ([]*model.BookingWithVenue, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.StoreReadTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{
			"user_id":   accountID,
			"confirmed": confirmed,
			"status":    true,
		}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from": PropertiesCollection,
			"let":  bson.M{"vid": "$venue"},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{"$expr": bson.M{
					"$eq": bson.A{"$_id", bson.M{"$toObjectId": "$$vid"}},
				}}},
			},
			"as": "venue_detail",
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"event_date": 1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.BookingWithVenue
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}

// Deactivate soft-deletes a booking. Records are never removed.
func (r *mongoBookingRepository) Deactivate(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.StoreWriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"status": false}},
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate booking: %w", err)
	}
	if result.MatchedCount == 0 {
		return bookingserrors.ErrNotFound
	}
	return nil
}

func (r *mongoBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
