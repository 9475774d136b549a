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

const usersCollection = "users"

// UserRepository implements ports.UserRepository using MongoDB.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	ID           string    `bson:"_id"`
	Nombre       string    `bson:"nombre"`
	Apellido     string    `bson:"apellido"`
	DNI          string    `bson:"dni"`
	Email        string    `bson:"email,omitempty"`
	Telefono     string    `bson:"telefono,omitempty"`
	PasswordHash string    `bson:"password_hash"`
	Role         string    `bson:"tipo_usuario"`
	TipoCliente  string    `bson:"tipo_cliente,omitempty"`
	Status       string    `bson:"estado"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

func toMongoUser(u *domain.User) mongoUser {
	return mongoUser{
		ID:           u.ID,
		Nombre:       u.Nombre,
		Apellido:     u.Apellido,
		DNI:          u.DNI,
		Email:        u.Email,
		Telefono:     u.Telefono,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		TipoCliente:  string(u.TipoCliente),
		Status:       string(u.Status),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (m mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:           m.ID,
		Nombre:       m.Nombre,
		Apellido:     m.Apellido,
		DNI:          m.DNI,
		Email:        m.Email,
		Telefono:     m.Telefono,
		PasswordHash: m.PasswordHash,
		Role:         domain.Role(m.Role),
		TipoCliente:  domain.ClientType(m.TipoCliente),
		Status:       domain.UserStatus(m.Status),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	doc := toMongoUser(user)
	if doc.ID == "" {
		doc.ID = newID()
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	created.ID = doc.ID
	return &created, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) FindByDNI(ctx context.Context, dni string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"dni": dni})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	update := bson.M{"$set": bson.M{
		"password_hash": passwordHash,
		"updated_at":    time.Now().UTC(),
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdateStatus(ctx context.Context, id string, status domain.UserStatus) error {
	update := bson.M{"$set": bson.M{
		"estado":     string(status),
		"updated_at": time.Now().UTC(),
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// SearchAlumnos matches cliente users whose nombre, apellido or DNI starts
// with the query, case-insensitively for names.
func (r *UserRepository) SearchAlumnos(ctx context.Context, query string, limit int) ([]domain.User, error) {
	filter := bson.M{"tipo_usuario": string(domain.RoleClient)}
	if query != "" {
		filter["$or"] = bson.A{
			bson.M{"nombre": bson.M{"$regex": "^" + query, "$options": "i"}},
			bson.M{"apellido": bson.M{"$regex": "^" + query, "$options": "i"}},
			bson.M{"dni": bson.M{"$regex": "^" + query}},
		}
	}

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "apellido", Value: 1}, {Key: "nombre", Value: 1}})

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("search alumnos: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoUser
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode alumnos: %w", err)
	}

	users := make([]domain.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, *d.toDomain())
	}
	return users, nil
}

func (r *UserRepository) ListPending(ctx context.Context) ([]domain.User, error) {
	cur, err := r.coll.Find(ctx,
		bson.M{"estado": string(domain.UserStatusPending)},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("list pending users: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoUser
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode pending users: %w", err)
	}

	users := make([]domain.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, *d.toDomain())
	}
	return users, nil
}

// EnsureIndexes creates the unique DNI index on the users collection.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "dni", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
