package client

import (
	"context"
	"fmt"

	"hackportal/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type StorageConfig struct {
	Endpoint  string // empty for plain AWS S3
	Region    string
	AccessKey string
	SecretKey string
}

func (c *Client) SetStorage(log *logger.Logger, sc StorageConfig) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(sc.Region),
	}
	if sc.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(sc.AccessKey, sc.SecretKey, ""),
		))
	}
	if sc.Endpoint != "" {
		endpoint := sc.Endpoint
		opts = append(opts, awsconfig.WithEndpointResolverWithOptions(
			aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
				return aws.Endpoint{URL: endpoint}, nil
			}),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		log.Fatal(fmt.Sprintf("Unable to load storage config: %v", err))
	}

	log.Info("Object storage client configured", "region", sc.Region, "endpoint", sc.Endpoint)
	c.Storage = s3.NewFromConfig(cfg)
}
