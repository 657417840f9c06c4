package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/gestock/inventory-backend/internal/platform/database"
	"github.com/gestock/inventory-backend/internal/platform/logger"
	"github.com/gestock/inventory-backend/internal/user/domain"
)

const usersCollection = "users"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserConflict = errors.New("user with this email, username or CIF already exists")
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id bson.ObjectID) (*domain.User, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoUserRepository struct {
	col *mongo.Collection
}

func NewMongoUserRepository(h *database.Handle) UserRepository {
	return &mongoUserRepository{col: h.DB.Collection(usersCollection)}
}

func (r *mongoUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "cif", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	return err
}

func (r *mongoUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	existing := r.col.FindOne(ctx, bson.M{"$or": bson.A{
		bson.M{"email": user.Email},
		bson.M{"username": user.Username},
		bson.M{"cif": user.CIF},
	}})
	if err := existing.Err(); err == nil {
		return ErrUserConflict
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		logger.Error("CreateUser: conflict lookup failed", err)
		return err
	}

	user.ID = bson.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	if _, err := r.col.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrUserConflict
		}
		logger.Error("CreateUser: insert failed", err)
		return err
	}
	return nil
}

func (r *mongoUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		logger.Error("GetUserByEmail: query failed", err)
		return nil, err
	}
	return &user, nil
}

func (r *mongoUserRepository) GetUserByID(ctx context.Context, id bson.ObjectID) (*domain.User, error) {
	var user domain.User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		logger.Error("GetUserByID: query failed", err)
		return nil, err
	}
	return &user, nil
}
