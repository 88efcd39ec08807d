package repository

import (
	"context"

	"github.com/pkg/errors"
	"github.com/princinho/parcelly/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type reviewRepository struct {
	col *mongo.Collection
}

func NewReviewRepository(col *mongo.Collection) ReviewRepository {
	return &reviewRepository{col: col}
}

func (r *reviewRepository) List(ctx context.Context) ([]models.Document, error) {
	docs, err := findAll(ctx, r.col, bson.M{})
	return docs, errors.Wrap(err, "list reviews")
}

func (r *reviewRepository) ListByDeliveryMan(ctx context.Context, deliveryManID string) ([]models.Document, error) {
	docs, err := findAll(ctx, r.col, bson.M{models.ReviewFieldDeliveryManID: deliveryManID})
	return docs, errors.Wrap(err, "list reviews by delivery man")
}

func (r *reviewRepository) Create(ctx context.Context, doc models.Document) (*models.InsertResult, error) {
	res, err := r.col.InsertOne(ctx, withoutID(doc))
	if err != nil {
		return nil, errors.Wrap(err, "insert review")
	}
	return insertResult(res), nil
}
