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

const inscripcionesCollection = "inscripciones"

// InscripcionRepository implements ports.InscripcionRepository using MongoDB.
type InscripcionRepository struct {
	coll *mongo.Collection
}

func NewInscripcionRepository(db *mongo.Database) *InscripcionRepository {
	return &InscripcionRepository{coll: db.Collection(inscripcionesCollection)}
}

func (r *InscripcionRepository) Create(ctx context.Context, i *domain.Inscripcion) (*domain.Inscripcion, error) {
	clone := *i
	clone.ID = newID()
	if _, err := r.coll.InsertOne(ctx, clone); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAlreadyEnrolled
		}
		return nil, fmt.Errorf("insert inscripcion: %w", err)
	}
	return &clone, nil
}

func (r *InscripcionRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete inscripcion: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrInscripcionNotFound
	}
	return nil
}

func (r *InscripcionRepository) FindByID(ctx context.Context, id string) (*domain.Inscripcion, error) {
	var i domain.Inscripcion
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&i); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInscripcionNotFound
		}
		return nil, fmt.Errorf("find inscripcion: %w", err)
	}
	return &i, nil
}

func (r *InscripcionRepository) ListByTurno(ctx context.Context, turnoID string) ([]domain.Inscripcion, error) {
	return r.list(ctx, bson.M{"turno_id": turnoID})
}

func (r *InscripcionRepository) ListByAlumno(ctx context.Context, alumnoID string) ([]domain.Inscripcion, error) {
	return r.list(ctx, bson.M{"alumno_id": alumnoID})
}

func (r *InscripcionRepository) list(ctx context.Context, filter bson.M) ([]domain.Inscripcion, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list inscripciones: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Inscripcion
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode inscripciones: %w", err)
	}
	return out, nil
}

func (r *InscripcionRepository) CountByTurno(ctx context.Context, turnoID string) (int, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"turno_id": turnoID})
	if err != nil {
		return 0, fmt.Errorf("count inscripciones: %w", err)
	}
	return int(n), nil
}

func (r *InscripcionRepository) Exists(ctx context.Context, turnoID, alumnoID string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"turno_id": turnoID, "alumno_id": alumnoID})
	if err != nil {
		return false, fmt.Errorf("check inscripcion: %w", err)
	}
	return n > 0, nil
}

// EnsureIndexes enforces one inscripcion per (turno, alumno).
func (r *InscripcionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "turno_id", Value: 1}, {Key: "alumno_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
