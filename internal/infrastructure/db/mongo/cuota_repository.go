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

const cuotasCollection = "cuotas"

// CuotaRepository implements ports.CuotaRepository using MongoDB.
type CuotaRepository struct {
	coll *mongo.Collection
}

func NewCuotaRepository(db *mongo.Database) *CuotaRepository {
	return &CuotaRepository{coll: db.Collection(cuotasCollection)}
}

func (r *CuotaRepository) Create(ctx context.Context, c *domain.Cuota) (*domain.Cuota, error) {
	clone := *c
	clone.ID = newID()
	if _, err := r.coll.InsertOne(ctx, clone); err != nil {
		return nil, fmt.Errorf("insert cuota: %w", err)
	}
	return &clone, nil
}

func (r *CuotaRepository) FindByID(ctx context.Context, id string) (*domain.Cuota, error) {
	var c domain.Cuota
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCuotaNotFound
		}
		return nil, fmt.Errorf("find cuota: %w", err)
	}
	return &c, nil
}

func (r *CuotaRepository) List(ctx context.Context, filter ports.CuotaFilter) ([]domain.Cuota, error) {
	query := bson.M{}
	if filter.AlumnoID != "" {
		query["alumno_id"] = filter.AlumnoID
	}
	if filter.SoloImpagas {
		query["pagada"] = false
	}
	if !filter.VencidasAl.IsZero() {
		query["fecha_vencimiento"] = bson.M{"$lt": filter.VencidasAl.UTC()}
	}

	cur, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "fecha_vencimiento", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list cuotas: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Cuota
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode cuotas: %w", err)
	}
	return out, nil
}

func (r *CuotaRepository) MarkPagada(ctx context.Context, id string, at time.Time) error {
	update := bson.M{"$set": bson.M{"pagada": true, "pagada_at": at.UTC()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("mark cuota pagada: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCuotaNotFound
	}
	return nil
}
