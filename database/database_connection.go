package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const (
	UsersCollection   = "user"
	ParcelsCollection = "parcel"
	ReviewsCollection = "reviews"
)

// Client is the process-wide store handle. It is created once at start,
// shared by every repository and closed once at shutdown.
type Client struct {
	mongo  *mongo.Client
	dbName string
}

// Connect dials the deployment with the Stable API v1 and pings the primary
// before returning.
func Connect(ctx context.Context, uri, dbName string) (*Client, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	// Send a ping to confirm a successful connection
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &Client{mongo: client, dbName: dbName}, nil
}

// Collection returns a handle on a collection of the configured database.
func (c *Client) Collection(name string) *mongo.Collection {
	return c.mongo.Database(c.dbName).Collection(name)
}

// Close disconnects the underlying client.
func (c *Client) Close(ctx context.Context) error {
	return c.mongo.Disconnect(ctx)
}
