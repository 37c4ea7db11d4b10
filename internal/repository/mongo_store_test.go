package repository

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Runs against a real MongoDB when COURSEREVIEWS_MONGO_TEST_URI is set,
// e.g. mongodb://localhost:27017. Each run uses a throwaway database.
func TestMongoStoreIntegration(t *testing.T) {
	uri := strings.TrimSpace(os.Getenv("COURSEREVIEWS_MONGO_TEST_URI"))
	if uri == "" {
		t.Skip("set COURSEREVIEWS_MONGO_TEST_URI to run MongoDB integration tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	db := client.Database(fmt.Sprintf("course_reviews_it_%d", time.Now().UnixNano()))
	defer func() { _ = db.Drop(context.Background()) }()

	exerciseStore(t, NewMongoStore(db))
}
