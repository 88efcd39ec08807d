package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/princinho/parcelly/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type userRepository struct {
	col *mongo.Collection
}

func NewUserRepository(col *mongo.Collection) UserRepository {
	return &userRepository{col: col}
}

// EnsureUserIndexes creates the unique index on email. Duplicate inserts then
// fail with a duplicate key error.
func EnsureUserIndexes(ctx context.Context, col *mongo.Collection) error {
	_, err := col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: models.UserFieldEmail, Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	return errors.Wrap(err, "create user email index")
}

func (r *userRepository) List(ctx context.Context) ([]models.Document, error) {
	docs, err := findAll(ctx, r.col, bson.M{})
	return docs, errors.Wrap(err, "list users")
}

func (r *userRepository) ListByRole(ctx context.Context, role models.Role) ([]models.Document, error) {
	docs, err := findAll(ctx, r.col, bson.M{models.UserFieldRole: string(role)})
	return docs, errors.Wrap(err, "list users by role")
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (models.Document, error) {
	doc, err := findOne(ctx, r.col, bson.M{models.UserFieldEmail: email})
	if errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return doc, errors.Wrap(err, "find user")
}

func (r *userRepository) Create(ctx context.Context, doc models.Document) (*models.InsertResult, error) {
	res, err := r.col.InsertOne(ctx, withoutID(doc))
	if err != nil {
		return nil, errors.Wrap(err, "insert user")
	}
	return insertResult(res), nil
}

// UpsertByEmail merges fields into the user keyed by email, creating it when
// absent. Repeating the call leaves a single record.
func (r *userRepository) UpsertByEmail(ctx context.Context, email string, fields bson.M) (*models.UpdateResult, error) {
	set, err := BuildSet(models.FieldUpdate{Mode: models.MergeFields, Fields: fields}, nil)
	if err != nil {
		return nil, err
	}
	set[models.UserFieldEmail] = email

	opts := options.UpdateOne().SetUpsert(true)
	res, err := r.col.UpdateOne(ctx, bson.M{models.UserFieldEmail: email}, bson.M{"$set": set}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "upsert user")
	}
	return updateResult(res), nil
}

// InsertIfAbsent writes fields only when no user has this email yet. It
// reports whether a record was created.
func (r *userRepository) InsertIfAbsent(ctx context.Context, email string, fields bson.M) (bool, error) {
	onInsert := bson.M{models.UserFieldCreatedAt: time.Now()}
	for k, v := range fields {
		onInsert[k] = v
	}
	onInsert[models.UserFieldEmail] = email

	opts := options.UpdateOne().SetUpsert(true)
	res, err := r.col.UpdateOne(ctx, bson.M{models.UserFieldEmail: email}, bson.M{"$setOnInsert": onInsert}, opts)
	if err != nil {
		return false, errors.Wrap(err, "insert user if absent")
	}
	return res.UpsertedCount > 0, nil
}

func (r *userRepository) SetRole(ctx context.Context, id bson.ObjectID, role models.Role) (*models.UpdateResult, error) {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{models.UserFieldRole: string(role)}})
	if err != nil {
		return nil, errors.Wrap(err, "set user role")
	}
	return updateResult(res), nil
}
