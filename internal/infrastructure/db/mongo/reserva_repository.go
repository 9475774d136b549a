package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/surtekbb/pileta-system/internal/core/domain"
)

const reservasCollection = "reservas"

// ReservaRepository implements ports.ReservaRepository using MongoDB.
type ReservaRepository struct {
	coll *mongo.Collection
}

func NewReservaRepository(db *mongo.Database) *ReservaRepository {
	return &ReservaRepository{coll: db.Collection(reservasCollection)}
}

func (r *ReservaRepository) Create(ctx context.Context, reserva *domain.Reserva) (*domain.Reserva, error) {
	clone := *reserva
	clone.ID = newID()
	if _, err := r.coll.InsertOne(ctx, clone); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAlreadyReserved
		}
		return nil, fmt.Errorf("insert reserva: %w", err)
	}
	return &clone, nil
}

func (r *ReservaRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete reserva: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrReservaNotFound
	}
	return nil
}

func (r *ReservaRepository) FindByID(ctx context.Context, id string) (*domain.Reserva, error) {
	var reserva domain.Reserva
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&reserva); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrReservaNotFound
		}
		return nil, fmt.Errorf("find reserva: %w", err)
	}
	return &reserva, nil
}

func (r *ReservaRepository) ListByAlumno(ctx context.Context, alumnoID string) ([]domain.Reserva, error) {
	cur, err := r.coll.Find(ctx, bson.M{"alumno_id": alumnoID},
		options.Find().SetSort(bson.D{{Key: "fecha", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list reservas: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Reserva
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode reservas: %w", err)
	}
	return out, nil
}

func (r *ReservaRepository) CountByTurnoFecha(ctx context.Context, turnoID string, fecha time.Time) (int, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"turno_id": turnoID, "fecha": fecha.UTC()})
	if err != nil {
		return 0, fmt.Errorf("count reservas: %w", err)
	}
	return int(n), nil
}

// EnsureIndexes enforces one reservation per (alumno, fecha) and the per-date
// capacity count.
func (r *ReservaRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "alumno_id", Value: 1}, {Key: "fecha", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "turno_id", Value: 1}, {Key: "fecha", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
