// Package repository holds the MongoDB-backed store access for parcels,
// users and reviews. Every method is a single driver call.
package repository

import (
	"context"

	"github.com/pkg/errors"
	"github.com/princinho/parcelly/database"
	"github.com/princinho/parcelly/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

var (
	ErrNotFound    = errors.New("document not found")
	ErrEmptyUpdate = errors.New("no updates provided")
)

type ParcelRepository interface {
	List(ctx context.Context) ([]models.Document, error)
	ListByEmail(ctx context.Context, email string) ([]models.Document, error)
	ListByDeliveryMan(ctx context.Context, deliveryManID string) ([]models.Document, error)
	FindByID(ctx context.Context, id bson.ObjectID) (models.Document, error)
	Create(ctx context.Context, doc models.Document) (*models.InsertResult, error)
	Delete(ctx context.Context, id bson.ObjectID) (*models.DeleteResult, error)
	Update(ctx context.Context, id bson.ObjectID, upd models.FieldUpdate) (*models.UpdateResult, error)
}

type UserRepository interface {
	List(ctx context.Context) ([]models.Document, error)
	ListByRole(ctx context.Context, role models.Role) ([]models.Document, error)
	FindByEmail(ctx context.Context, email string) (models.Document, error)
	Create(ctx context.Context, doc models.Document) (*models.InsertResult, error)
	UpsertByEmail(ctx context.Context, email string, fields bson.M) (*models.UpdateResult, error)
	InsertIfAbsent(ctx context.Context, email string, fields bson.M) (bool, error)
	SetRole(ctx context.Context, id bson.ObjectID, role models.Role) (*models.UpdateResult, error)
}

type ReviewRepository interface {
	List(ctx context.Context) ([]models.Document, error)
	ListByDeliveryMan(ctx context.Context, deliveryManID string) ([]models.Document, error)
	Create(ctx context.Context, doc models.Document) (*models.InsertResult, error)
}

type Repositories struct {
	Parcels ParcelRepository
	Users   UserRepository
	Reviews ReviewRepository
}

// NewRepositories binds every repository to the shared client.
func NewRepositories(client *database.Client) *Repositories {
	return &Repositories{
		Parcels: NewParcelRepository(client.Collection(database.ParcelsCollection)),
		Users:   NewUserRepository(client.Collection(database.UsersCollection)),
		Reviews: NewReviewRepository(client.Collection(database.ReviewsCollection)),
	}
}

// BuildSet turns a FieldUpdate into the body of a $set. Merge updates keep
// every key but _id; allow-listed updates keep only the keys in allowed.
func BuildSet(upd models.FieldUpdate, allowed []string) (bson.M, error) {
	set := bson.M{}
	switch upd.Mode {
	case models.MergeFields:
		for k, v := range upd.Fields {
			if k == "_id" {
				continue
			}
			set[k] = v
		}
	case models.ReplaceAllowListed:
		for _, k := range allowed {
			if v, ok := upd.Fields[k]; ok {
				set[k] = v
			}
		}
	default:
		return nil, errors.Errorf("unknown update mode %d", upd.Mode)
	}

	if len(set) == 0 {
		return nil, ErrEmptyUpdate
	}
	return set, nil
}

// withoutID copies doc minus any caller-supplied _id so that the store
// assigns the identifier.
func withoutID(doc models.Document) models.Document {
	out := make(models.Document, len(doc))
	for k, v := range doc {
		if k == "_id" {
			continue
		}
		out[k] = v
	}
	return out
}

func findAll(ctx context.Context, col *mongo.Collection, filter bson.M) ([]models.Document, error) {
	cursor, err := col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := make([]models.Document, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func findOne(ctx context.Context, col *mongo.Collection, filter bson.M) (models.Document, error) {
	var doc models.Document
	err := col.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func insertResult(res *mongo.InsertOneResult) *models.InsertResult {
	return &models.InsertResult{Acknowledged: res.Acknowledged, InsertedID: res.InsertedID}
}

func updateResult(res *mongo.UpdateResult) *models.UpdateResult {
	return &models.UpdateResult{
		Acknowledged:  res.Acknowledged,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
		UpsertedID:    res.UpsertedID,
	}
}

func deleteResult(res *mongo.DeleteResult) *models.DeleteResult {
	return &models.DeleteResult{Acknowledged: res.Acknowledged, DeletedCount: res.DeletedCount}
}
