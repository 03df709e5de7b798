package client

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.mongodb.org/mongo-driver/mongo"
)

// Client holds the process-wide external clients. Fields are set once at
// startup and read-only afterwards.
type Client struct {
	Mongo   *mongo.Client
	Storage *s3.Client
}

func New() *Client {
	return &Client{}
}

func (c *Client) GracefulShutdown() {
	if c.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = c.Mongo.Disconnect(ctx)
	}
}
