package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/surtekbb/pileta-system/internal/core/domain"
)

const notificacionesCollection = "notificaciones"

// NotificacionRepository implements ports.NotificacionRepository using MongoDB.
type NotificacionRepository struct {
	coll *mongo.Collection
}

func NewNotificacionRepository(db *mongo.Database) *NotificacionRepository {
	return &NotificacionRepository{coll: db.Collection(notificacionesCollection)}
}

func (r *NotificacionRepository) Insert(ctx context.Context, n *domain.Notificacion) error {
	if n.ID == "" {
		n.ID = newID()
	}
	if _, err := r.coll.InsertOne(ctx, n); err != nil {
		return fmt.Errorf("insert notificacion: %w", err)
	}
	return nil
}

func (r *NotificacionRepository) ListByUser(ctx context.Context, userID string) ([]domain.Notificacion, error) {
	cur, err := r.coll.Find(ctx,
		bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("list notificaciones: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Notificacion
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode notificaciones: %w", err)
	}
	return out, nil
}

func (r *NotificacionRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"user_id": userID, "leida": false})
	if err != nil {
		return 0, fmt.Errorf("count unread notificaciones: %w", err)
	}
	return n, nil
}

// MarkRead scopes the update by user so one user cannot touch another's
// notifications by guessing IDs.
func (r *NotificacionRepository) MarkRead(ctx context.Context, id, userID string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "user_id": userID},
		bson.M{"$set": bson.M{"leida": true}},
	)
	if err != nil {
		return fmt.Errorf("mark notificacion read: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotificacionNotFound
	}
	return nil
}

func (r *NotificacionRepository) MarkAllRead(ctx context.Context, userID string) error {
	_, err := r.coll.UpdateMany(ctx,
		bson.M{"user_id": userID, "leida": false},
		bson.M{"$set": bson.M{"leida": true}},
	)
	if err != nil {
		return fmt.Errorf("mark all notificaciones read: %w", err)
	}
	return nil
}

func (r *NotificacionRepository) Delete(ctx context.Context, id, userID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("delete notificacion: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotificacionNotFound
	}
	return nil
}

func (r *NotificacionRepository) DeleteRead(ctx context.Context, userID string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"user_id": userID, "leida": true})
	if err != nil {
		return 0, fmt.Errorf("delete read notificaciones: %w", err)
	}
	return res.DeletedCount, nil
}
