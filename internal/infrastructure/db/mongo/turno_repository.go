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
	"github.com/surtekbb/pileta-system/internal/core/ports"
)

const (
	turnosCollection = "turnos"
	clasesCollection = "clases"
)

// TurnoRepository implements ports.TurnoRepository using MongoDB.
type TurnoRepository struct {
	coll *mongo.Collection
}

func NewTurnoRepository(db *mongo.Database) *TurnoRepository {
	return &TurnoRepository{coll: db.Collection(turnosCollection)}
}

func (r *TurnoRepository) Create(ctx context.Context, t *domain.Turno) (*domain.Turno, error) {
	clone := *t
	clone.ID = newID()
	if _, err := r.coll.InsertOne(ctx, clone); err != nil {
		return nil, fmt.Errorf("insert turno: %w", err)
	}
	return &clone, nil
}

func (r *TurnoRepository) Update(ctx context.Context, t *domain.Turno) (*domain.Turno, error) {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": t.ID}, t)
	if err != nil {
		return nil, fmt.Errorf("update turno: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrTurnoNotFound
	}
	return t, nil
}

func (r *TurnoRepository) SetActivo(ctx context.Context, id string, activo bool) error {
	update := bson.M{"$set": bson.M{"activo": activo, "updated_at": time.Now().UTC()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("set turno activo: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTurnoNotFound
	}
	return nil
}

func (r *TurnoRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete turno: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTurnoNotFound
	}
	return nil
}

func (r *TurnoRepository) FindByID(ctx context.Context, id string) (*domain.Turno, error) {
	var t domain.Turno
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTurnoNotFound
		}
		return nil, fmt.Errorf("find turno: %w", err)
	}
	return &t, nil
}

func (r *TurnoRepository) List(ctx context.Context, filter ports.TurnoFilter) ([]domain.Turno, error) {
	query := bson.M{}
	if len(filter.Dias) > 0 {
		query["dia_semana"] = bson.M{"$in": filter.Dias}
	}
	if filter.NivelID != "" {
		query["nivel_id"] = filter.NivelID
	}
	if filter.ProfesorID != "" {
		query["profesor_id"] = filter.ProfesorID
	}
	if filter.SoloActivo {
		query["activo"] = true
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "dia_semana", Value: 1},
		{Key: "hora_inicio", Value: 1},
	})
	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list turnos: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Turno
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode turnos: %w", err)
	}
	return out, nil
}

// ClaseRepository implements ports.ClaseRepository using MongoDB.
type ClaseRepository struct {
	coll *mongo.Collection
}

func NewClaseRepository(db *mongo.Database) *ClaseRepository {
	return &ClaseRepository{coll: db.Collection(clasesCollection)}
}

// InsertMissing inserts clases one by one, relying on the unique
// (turno_id, fecha) index to skip dates already materialized.
func (r *ClaseRepository) InsertMissing(ctx context.Context, clases []domain.Clase) (int, error) {
	created := 0
	for _, c := range clases {
		clone := c
		clone.ID = newID()
		if _, err := r.coll.InsertOne(ctx, clone); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				continue
			}
			return created, fmt.Errorf("insert clase: %w", err)
		}
		created++
	}
	return created, nil
}

func (r *ClaseRepository) FindByID(ctx context.Context, id string) (*domain.Clase, error) {
	var c domain.Clase
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClaseNotFound
		}
		return nil, fmt.Errorf("find clase: %w", err)
	}
	return &c, nil
}

func (r *ClaseRepository) ListByTurno(ctx context.Context, turnoID string) ([]domain.Clase, error) {
	cur, err := r.coll.Find(ctx,
		bson.M{"turno_id": turnoID},
		options.Find().SetSort(bson.D{{Key: "fecha", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("list clases: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Clase
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode clases: %w", err)
	}
	return out, nil
}

// EnsureIndexes creates the clase uniqueness and turno lookup indexes.
func (r *ClaseRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "turno_id", Value: 1}, {Key: "fecha", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
