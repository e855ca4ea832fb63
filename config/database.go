package config

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Database bundles the client and every collection the application touches.
type Database struct {
	Client *mongo.Client

	ProductCollection   *mongo.Collection
	CustomerCollection  *mongo.Collection
	InvoiceCollection   *mongo.Collection
	QuotationCollection *mongo.Collection
	AdminCollection     *mongo.Collection
	UserCollection      *mongo.Collection
	SessionCollection   *mongo.Collection
	CounterCollection   *mongo.Collection
}

func ConnectDatabase(ctx context.Context, cfg *Config) (*Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err = client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(cfg.MongoDB)
	d := &Database{
		Client:              client,
		ProductCollection:   db.Collection("products"),
		CustomerCollection:  db.Collection("customers"),
		InvoiceCollection:   db.Collection("invoices"),
		QuotationCollection: db.Collection("quotations"),
		AdminCollection:     db.Collection("admins"),
		UserCollection:      db.Collection("users"),
		SessionCollection:   db.Collection("sessions"),
		CounterCollection:   db.Collection("counters"),
	}
	if err := d.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	log.Info().Str("db", cfg.MongoDB).Msg("connected to MongoDB")
	return d, nil
}

func (d *Database) ensureIndexes(ctx context.Context) error {
	// Numbers issued before the counter existed may collide, so these stay non-unique.
	byField := func(field string) mongo.IndexModel {
		return mongo.IndexModel{Keys: bson.D{{Key: field, Value: 1}}}
	}
	// Legacy records predate the key field, so the unique index must skip them.
	singleton := mongo.IndexModel{
		Keys: bson.D{{Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true).
			SetPartialFilterExpression(bson.M{"key": bson.M{"$exists": true}}),
	}

	if _, err := d.AdminCollection.Indexes().CreateOne(ctx, singleton); err != nil {
		return fmt.Errorf("admin index: %w", err)
	}
	if _, err := d.UserCollection.Indexes().CreateOne(ctx, singleton); err != nil {
		return fmt.Errorf("user index: %w", err)
	}
	if _, err := d.InvoiceCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		byField("invoiceNo"),
		byField("payment.due"),
	}); err != nil {
		return fmt.Errorf("invoice indexes: %w", err)
	}
	if _, err := d.QuotationCollection.Indexes().CreateOne(ctx, byField("quotationNo")); err != nil {
		return fmt.Errorf("quotation index: %w", err)
	}
	return nil
}

func (d *Database) Disconnect(ctx context.Context) error {
	return d.Client.Disconnect(ctx)
}
