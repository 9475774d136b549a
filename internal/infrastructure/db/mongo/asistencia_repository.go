package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/surtekbb/pileta-system/internal/core/domain"
)

const asistenciasCollection = "asistencias"

// AsistenciaRepository implements ports.AsistenciaRepository using MongoDB.
type AsistenciaRepository struct {
	coll *mongo.Collection
}

func NewAsistenciaRepository(db *mongo.Database) *AsistenciaRepository {
	return &AsistenciaRepository{coll: db.Collection(asistenciasCollection)}
}

// Upsert replaces any prior record for the same (clase, alumno), so taking
// attendance twice corrects rather than duplicates.
func (r *AsistenciaRepository) Upsert(ctx context.Context, a *domain.Asistencia) error {
	if a.ID == "" {
		a.ID = newID()
	}

	filter := bson.M{"clase_id": a.ClaseID, "alumno_id": a.AlumnoID}
	update := bson.M{
		"$set": bson.M{
			"turno_id":   a.TurnoID,
			"fecha":      a.Fecha.UTC(),
			"presente":   a.Presente,
			"estado":     string(a.Estado),
			"created_at": a.CreatedAt.UTC(),
		},
		"$setOnInsert": bson.M{"_id": a.ID},
	}

	_, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert asistencia: %w", err)
	}
	return nil
}

func (r *AsistenciaRepository) ListByTurnoMonth(ctx context.Context, turnoID string, mes, anio int) ([]domain.Asistencia, error) {
	from := time.Date(anio, time.Month(mes), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	filter := bson.M{
		"turno_id": turnoID,
		"fecha":    bson.M{"$gte": from, "$lt": to},
	}

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{
		{Key: "fecha", Value: 1},
		{Key: "alumno_id", Value: 1},
	}))
	if err != nil {
		return nil, fmt.Errorf("list asistencias: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Asistencia
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode asistencias: %w", err)
	}
	return out, nil
}

// CountAusencias groups unjustified ausencias since the cutoff by alumno.
// Justified absences do not count against the alumno.
func (r *AsistenciaRepository) CountAusencias(ctx context.Context, since time.Time) (map[string]int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"estado": string(domain.AsistenciaAusente),
			"fecha":  bson.M{"$gte": since.UTC()},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$alumno_id",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate ausencias: %w", err)
	}
	defer cur.Close(ctx)

	var rows []struct {
		AlumnoID string `bson:"_id"`
		Count    int    `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode ausencias: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.AlumnoID] = row.Count
	}
	return counts, nil
}

// EnsureIndexes enforces one record per (clase, alumno) and the month query.
func (r *AsistenciaRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "clase_id", Value: 1}, {Key: "alumno_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "turno_id", Value: 1}, {Key: "fecha", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
