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

const cambiosNivelCollection = "cambios_nivel"

// CambioNivelRepository implements ports.CambioNivelRepository using MongoDB.
type CambioNivelRepository struct {
	coll *mongo.Collection
}

func NewCambioNivelRepository(db *mongo.Database) *CambioNivelRepository {
	return &CambioNivelRepository{coll: db.Collection(cambiosNivelCollection)}
}

func (r *CambioNivelRepository) Create(ctx context.Context, c *domain.CambioNivel) (*domain.CambioNivel, error) {
	clone := *c
	clone.ID = newID()
	if _, err := r.coll.InsertOne(ctx, clone); err != nil {
		return nil, fmt.Errorf("insert cambio de nivel: %w", err)
	}
	return &clone, nil
}

func (r *CambioNivelRepository) FindByID(ctx context.Context, id string) (*domain.CambioNivel, error) {
	var c domain.CambioNivel
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCambioNivelNotFound
		}
		return nil, fmt.Errorf("find cambio de nivel: %w", err)
	}
	return &c, nil
}

func (r *CambioNivelRepository) ListPendientes(ctx context.Context) ([]domain.CambioNivel, error) {
	cur, err := r.coll.Find(ctx, bson.M{"estado": string(domain.CambioPendiente)},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list cambios de nivel: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.CambioNivel
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode cambios de nivel: %w", err)
	}
	return out, nil
}

func (r *CambioNivelRepository) ExistsPendiente(ctx context.Context, alumnoID string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{
		"alumno_id": alumnoID,
		"estado":    string(domain.CambioPendiente),
	})
	if err != nil {
		return false, fmt.Errorf("check cambio de nivel pendiente: %w", err)
	}
	return n > 0, nil
}

func (r *CambioNivelRepository) UpdateEstado(ctx context.Context, id string, estado domain.CambioNivelEstado, at time.Time) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"estado": string(estado), "resolved_at": at.UTC()},
	})
	if err != nil {
		return fmt.Errorf("update cambio de nivel: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCambioNivelNotFound
	}
	return nil
}

// EnsureIndexes backs the pendientes listing and the one-pending check.
func (r *CambioNivelRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "estado", Value: 1}, {Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "alumno_id", Value: 1}, {Key: "estado", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
