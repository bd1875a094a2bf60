package database

import (
	"context"
	"log"
	"os"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// DynamoDBSettings describes how to reach the negotiation tables.
//
// Supported env vars (local-friendly):
//   - AWS_REGION (default: us-east-1)
//   - AWS_ACCESS_KEY_ID (default: local)
//   - AWS_SECRET_ACCESS_KEY (default: local)
//   - DYNAMODB_ENDPOINT (optional; e.g. http://dynamodb:8000)
//   - DYNAMODB_MAX_ATTEMPTS (optional; SDK default when unset)
type DynamoDBSettings struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
	MaxAttempts     int
}

func DynamoDBSettingsFromEnv() DynamoDBSettings {
	s := DynamoDBSettings{
		Region:          getenvDefault("AWS_REGION", "us-east-1"),
		AccessKeyID:     getenvDefault("AWS_ACCESS_KEY_ID", "local"),
		SecretAccessKey: getenvDefault("AWS_SECRET_ACCESS_KEY", "local"),
		Endpoint:        os.Getenv("DYNAMODB_ENDPOINT"),
	}
	if v, err := strconv.Atoi(os.Getenv("DYNAMODB_MAX_ATTEMPTS")); err == nil && v > 0 {
		s.MaxAttempts = v
	}
	return s
}

// ConnectDynamoDB creates the DynamoDB client backing the negotiation store.
func ConnectDynamoDB() *dynamodb.Client {
	client, err := NewDynamoDBClient(context.Background(), DynamoDBSettingsFromEnv())
	if err != nil {
		log.Fatalf("failed to create dynamodb config: %v", err)
	}
	return client
}

func NewDynamoDBClient(ctx context.Context, s DynamoDBSettings) (*dynamodb.Client, error) {
	// DynamoDB Local ignores credentials but the SDK still signs requests.
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(s.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(s.AccessKeyID, s.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, err
	}

	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if s.Endpoint != "" {
			log.Printf("[database][dynamodb] using endpoint=%s", s.Endpoint)
			o.BaseEndpoint = aws.String(s.Endpoint)
		}
		if s.MaxAttempts > 0 {
			o.RetryMaxAttempts = s.MaxAttempts
		}
	}), nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
