package repository

import (
	"context"

	"github.com/pkg/errors"
	"github.com/princinho/parcelly/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type parcelRepository struct {
	col *mongo.Collection
}

func NewParcelRepository(col *mongo.Collection) ParcelRepository {
	return &parcelRepository{col: col}
}

func (r *parcelRepository) List(ctx context.Context) ([]models.Document, error) {
	docs, err := findAll(ctx, r.col, bson.M{})
	return docs, errors.Wrap(err, "list parcels")
}

func (r *parcelRepository) ListByEmail(ctx context.Context, email string) ([]models.Document, error) {
	docs, err := findAll(ctx, r.col, bson.M{models.ParcelFieldEmail: email})
	return docs, errors.Wrap(err, "list parcels by email")
}

func (r *parcelRepository) ListByDeliveryMan(ctx context.Context, deliveryManID string) ([]models.Document, error) {
	docs, err := findAll(ctx, r.col, bson.M{models.ParcelFieldDeliveryManID: deliveryManID})
	return docs, errors.Wrap(err, "list parcels by delivery man")
}

func (r *parcelRepository) FindByID(ctx context.Context, id bson.ObjectID) (models.Document, error) {
	doc, err := findOne(ctx, r.col, bson.M{"_id": id})
	if errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return doc, errors.Wrap(err, "find parcel")
}

func (r *parcelRepository) Create(ctx context.Context, doc models.Document) (*models.InsertResult, error) {
	res, err := r.col.InsertOne(ctx, withoutID(doc))
	if err != nil {
		return nil, errors.Wrap(err, "insert parcel")
	}
	return insertResult(res), nil
}

func (r *parcelRepository) Delete(ctx context.Context, id bson.ObjectID) (*models.DeleteResult, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, errors.Wrap(err, "delete parcel")
	}
	return deleteResult(res), nil
}

// Update applies one $set to the parcel. Allow-listed updates are limited to
// models.ParcelEditableFields.
func (r *parcelRepository) Update(ctx context.Context, id bson.ObjectID, upd models.FieldUpdate) (*models.UpdateResult, error) {
	set, err := BuildSet(upd, models.ParcelEditableFields)
	if err != nil {
		return nil, err
	}

	opts := options.UpdateOne().SetUpsert(upd.Upsert)
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "update parcel (%s)", upd.Mode)
	}
	return updateResult(res), nil
}
