// File: database/repository/appointment/appointment_mongo.go
package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"movebook/database"
	"movebook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo creates a new AppointmentRepository backed by MongoDB.
func NewMongoAppointmentRepo() AppointmentRepository {
	coll := database.MongoClient.Database("movebook").Collection("appointments")
	repo := &MongoAppointmentRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoAppointmentRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoAppointmentRepo) Append(ctx context.Context, appt *models.Appointment) error {
	now := time.Now().UTC()
	appt.CreatedAt = now
	appt.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, appt); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateBooking
		}
		return fmt.Errorf("failed to insert appointment: %w", err)
	}
	return nil
}

// AppendWithinCapacity counts and inserts inside one session transaction, the
// same discipline the file store gets from its writer lock.
func (r *MongoAppointmentRepo) AppendWithinCapacity(ctx context.Context, appt *models.Appointment, capacity int) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	now := time.Now().UTC()
	appt.CreatedAt = now
	appt.UpdatedAt = now

	txnFn := func(sc mongo.SessionContext) (interface{}, error) {
		if capacity > 0 {
			filter := bson.M{
				"date":   appt.Date,
				"time":   appt.Time,
				"status": bson.M{"$ne": models.StatusCancelled},
			}
			booked, err := r.coll.CountDocuments(sc, filter)
			if err != nil {
				return nil, fmt.Errorf("capacity count failed: %w", err)
			}
			if booked >= int64(capacity) {
				return nil, ErrSlotFull
			}
		}
		if _, err := r.coll.InsertOne(sc, appt); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, ErrDuplicateBooking
			}
			return nil, fmt.Errorf("insert appointment failed: %w", err)
		}
		return nil, nil
	}

	if _, err := sess.WithTransaction(ctx, txnFn); err != nil {
		return err
	}
	return nil
}

func (r *MongoAppointmentRepo) FindByID(ctx context.Context, bookingID string) (*models.Appointment, error) {
	var appt models.Appointment
	err := r.coll.FindOne(ctx, bson.M{"id": bookingID}).Decode(&appt)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch appointment: %w", err)
	}
	return &appt, nil
}

func (r *MongoAppointmentRepo) ListByDate(ctx context.Context, date string) ([]models.Appointment, error) {
	filter := bson.M{
		"date":   date,
		"status": bson.M{"$ne": models.StatusCancelled},
	}
	opts := options.Find().SetSort(bson.D{{Key: "time", Value: 1}, {Key: "createdAt", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var out []models.Appointment
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return out, nil
}

func (r *MongoAppointmentRepo) Update(ctx context.Context, bookingID string, patch models.AppointmentPatch) (*models.Appointment, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	for provider, eventID := range patch.ExternalEventIDs {
		set["externalEventIds."+provider] = eventID
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Appointment
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": bookingID}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}
	return &updated, nil
}
