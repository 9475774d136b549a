package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/surtekbb/pileta-system/internal/core/domain"
)

const (
	nivelesCollection    = "niveles"
	piletasCollection    = "piletas"
	profesoresCollection = "profesores"
)

// NivelRepository implements ports.NivelRepository using MongoDB.
type NivelRepository struct {
	coll *mongo.Collection
}

func NewNivelRepository(db *mongo.Database) *NivelRepository {
	return &NivelRepository{coll: db.Collection(nivelesCollection)}
}

func (r *NivelRepository) Create(ctx context.Context, n *domain.Nivel) (*domain.Nivel, error) {
	clone := *n
	clone.ID = newID()
	if _, err := r.coll.InsertOne(ctx, clone); err != nil {
		return nil, fmt.Errorf("insert nivel: %w", err)
	}
	return &clone, nil
}

func (r *NivelRepository) Update(ctx context.Context, n *domain.Nivel) (*domain.Nivel, error) {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": n.ID}, n)
	if err != nil {
		return nil, fmt.Errorf("update nivel: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrNivelNotFound
	}
	return n, nil
}

func (r *NivelRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete nivel: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNivelNotFound
	}
	return nil
}

func (r *NivelRepository) FindByID(ctx context.Context, id string) (*domain.Nivel, error) {
	var n domain.Nivel
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&n); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNivelNotFound
		}
		return nil, fmt.Errorf("find nivel: %w", err)
	}
	return &n, nil
}

func (r *NivelRepository) List(ctx context.Context) ([]domain.Nivel, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "orden", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list niveles: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Nivel
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode niveles: %w", err)
	}
	return out, nil
}

// PiletaRepository implements ports.PiletaRepository using MongoDB.
type PiletaRepository struct {
	coll *mongo.Collection
}

func NewPiletaRepository(db *mongo.Database) *PiletaRepository {
	return &PiletaRepository{coll: db.Collection(piletasCollection)}
}

func (r *PiletaRepository) Create(ctx context.Context, p *domain.Pileta) (*domain.Pileta, error) {
	clone := *p
	clone.ID = newID()
	if _, err := r.coll.InsertOne(ctx, clone); err != nil {
		return nil, fmt.Errorf("insert pileta: %w", err)
	}
	return &clone, nil
}

func (r *PiletaRepository) Update(ctx context.Context, p *domain.Pileta) (*domain.Pileta, error) {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return nil, fmt.Errorf("update pileta: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrPiletaNotFound
	}
	return p, nil
}

func (r *PiletaRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete pileta: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPiletaNotFound
	}
	return nil
}

func (r *PiletaRepository) FindByID(ctx context.Context, id string) (*domain.Pileta, error) {
	var p domain.Pileta
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPiletaNotFound
		}
		return nil, fmt.Errorf("find pileta: %w", err)
	}
	return &p, nil
}

func (r *PiletaRepository) List(ctx context.Context) ([]domain.Pileta, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "nombre", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list piletas: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Pileta
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode piletas: %w", err)
	}
	return out, nil
}

// ProfesorRepository implements ports.ProfesorRepository using MongoDB.
type ProfesorRepository struct {
	coll *mongo.Collection
}

func NewProfesorRepository(db *mongo.Database) *ProfesorRepository {
	return &ProfesorRepository{coll: db.Collection(profesoresCollection)}
}

func (r *ProfesorRepository) Create(ctx context.Context, p *domain.Profesor) (*domain.Profesor, error) {
	clone := *p
	clone.ID = newID()
	if _, err := r.coll.InsertOne(ctx, clone); err != nil {
		return nil, fmt.Errorf("insert profesor: %w", err)
	}
	return &clone, nil
}

func (r *ProfesorRepository) Update(ctx context.Context, p *domain.Profesor) (*domain.Profesor, error) {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return nil, fmt.Errorf("update profesor: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrProfesorNotFound
	}
	return p, nil
}

func (r *ProfesorRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete profesor: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProfesorNotFound
	}
	return nil
}

func (r *ProfesorRepository) FindByID(ctx context.Context, id string) (*domain.Profesor, error) {
	var p domain.Profesor
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfesorNotFound
		}
		return nil, fmt.Errorf("find profesor: %w", err)
	}
	return &p, nil
}

func (r *ProfesorRepository) List(ctx context.Context) ([]domain.Profesor, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "apellido", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list profesores: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Profesor
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode profesores: %w", err)
	}
	return out, nil
}
