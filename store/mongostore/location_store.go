// Package mongostore keeps driver locations in a MongoDB collection.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"food-delivery-app/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "driver_locations"

type locationDocument struct {
	ID             string    `bson:"_id"`
	DriverID       string    `bson:"driverId"`
	Latitude       float64   `bson:"latitude"`
	Longitude      float64   `bson:"longitude"`
	Heading        *float64  `bson:"heading,omitempty"`
	Speed          *float64  `bson:"speed,omitempty"`
	IsAvailable    bool      `bson:"isAvailable"`
	CurrentOrderID *string   `bson:"currentOrderId,omitempty"`
	CreatedAt      time.Time `bson:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt"`
}

func (d *locationDocument) model() *models.DriverLocation {
	loc := &models.DriverLocation{
		DriverID:       d.DriverID,
		Latitude:       d.Latitude,
		Longitude:      d.Longitude,
		Heading:        d.Heading,
		Speed:          d.Speed,
		IsAvailable:    d.IsAvailable,
		CurrentOrderID: d.CurrentOrderID,
	}
	loc.ID = d.ID
	loc.CreatedAt = d.CreatedAt
	loc.UpdatedAt = d.UpdatedAt
	return loc
}

type LocationStore struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewLocationStore(db *mongo.Database) *LocationStore {
	return &LocationStore{coll: db.Collection(collectionName), now: time.Now}
}

// Connect dials uri and pings the server before returning the named database.
func Connect(ctx context.Context, uri, database string) (*mongo.Client, *mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, client.Database(database), nil
}

// EnsureIndexes creates the unique driverId index that backs one-record-per-driver.
func (s *LocationStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "driverId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create driverId index: %w", err)
	}
	return nil
}

func (s *LocationStore) FindByDriver(ctx context.Context, driverID string) (*models.DriverLocation, error) {
	var doc locationDocument
	err := s.coll.FindOne(ctx, bson.M{"driverId": driverID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find driver location: %w", err)
	}
	return doc.model(), nil
}

func (s *LocationStore) SetAvailability(ctx context.Context, driverID string, available bool) (*models.DriverLocation, error) {
	return s.upsert(ctx, driverID, bson.M{"isAvailable": available}, bson.M{"latitude": 0.0, "longitude": 0.0})
}

func (s *LocationStore) UpdatePosition(ctx context.Context, driverID string, pos models.Position) (*models.DriverLocation, error) {
	set := bson.M{
		"latitude":  pos.Latitude,
		"longitude": pos.Longitude,
		"heading":   pos.Heading,
		"speed":     pos.Speed,
	}
	return s.upsert(ctx, driverID, set, bson.M{"isAvailable": false})
}

func (s *LocationStore) SetCurrentOrder(ctx context.Context, driverID string, orderID *string) (*models.DriverLocation, error) {
	return s.upsert(ctx, driverID, bson.M{"currentOrderId": orderID},
		bson.M{"latitude": 0.0, "longitude": 0.0, "isAvailable": false})
}

func (s *LocationStore) CountAvailable(ctx context.Context) (int64, error) {
	n, err := s.coll.CountDocuments(ctx, bson.M{"isAvailable": true})
	if err != nil {
		return 0, fmt.Errorf("count available drivers: %w", err)
	}
	return n, nil
}

// upsert runs one atomic findAndModify keyed by driverId. onInsert fills the
// schema defaults of a brand-new record and must not overlap set.
func (s *LocationStore) upsert(ctx context.Context, driverID string, set, onInsert bson.M) (*models.DriverLocation, error) {
	now := s.now().UTC()
	set["updatedAt"] = now
	onInsert["_id"] = uuid.NewString()
	onInsert["createdAt"] = now

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var doc locationDocument
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"driverId": driverID},
		bson.M{"$set": set, "$setOnInsert": onInsert},
		opts,
	).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("upsert driver location: %w", err)
	}
	return doc.model(), nil
}
