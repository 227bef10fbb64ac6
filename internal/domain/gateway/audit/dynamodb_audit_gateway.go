package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"github.com/google/uuid"

	"weather-api/configs"
	"weather-api/internal/apperr"
	"weather-api/internal/domain/model"
	"weather-api/pkg/log"
)

// DynamoDBAPI is the subset of the DynamoDB client used by the audit gateway.
type DynamoDBAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// dynamoDBAuditGateway implements AuditGateway on top of a DynamoDB table.
type dynamoDBAuditGateway struct {
	client  DynamoDBAPI
	table   string
	timeout time.Duration
	now     func() time.Time
	newID   func() string
}

// NewDynamoDBAuditGateway creates a new instance of AuditGateway backed by DynamoDB.
func NewDynamoDBAuditGateway(client DynamoDBAPI, cfg *configs.Config) AuditGateway {
	return &dynamoDBAuditGateway{
		client:  client,
		table:   cfg.DynamoDBTable,
		timeout: cfg.AWSCallTimeout,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Record writes one event under a freshly generated id. Temperature and
// condition are extracted into their own attributes for quick scanning;
// the full document rides along serialized.
func (g *dynamoDBAuditGateway) Record(ctx context.Context, city string, storagePath string, record model.WeatherRecord) (string, error) {
	fullMetadata, err := json.Marshal(record)
	if err != nil {
		return "", apperr.AuditData("Failed to encode weather data for logging", err)
	}

	eventID := g.newID()
	item := map[string]types.AttributeValue{
		"EventId":          &types.AttributeValueMemberS{Value: eventID},
		"Timestamp":        &types.AttributeValueMemberS{Value: g.now().Format(time.RFC3339)},
		"CityName":         &types.AttributeValueMemberS{Value: city},
		"StoragePath":      &types.AttributeValueMemberS{Value: storagePath},
		"Temperature":      &types.AttributeValueMemberN{Value: strconv.FormatFloat(record.Temperature(), 'f', -1, 64)},
		"WeatherCondition": &types.AttributeValueMemberS{Value: record.Condition()},
		"FullMetadata":     &types.AttributeValueMemberS{Value: string(fullMetadata)},
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	_, err = g.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(g.table),
		Item:      item,
	})
	if err != nil {
		return "", classifyAuditError(err)
	}

	log.Infof("Successfully logged weather event for %s", city)
	return eventID, nil
}

// Ping verifies the table exists and is reachable.
func (g *dynamoDBAuditGateway) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	_, err := g.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(g.table)})
	if err != nil {
		return classifyAuditError(err)
	}
	return nil
}

// classifyAuditError mirrors the storage classification for the audit
// backend: missing table or denied access is a permission problem,
// timeouts and credential failures are connection problems.
func classifyAuditError(err error) *apperr.Error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch code := apiErr.ErrorCode(); code {
		case "ResourceNotFoundException", "AccessDeniedException":
			return apperr.AuditPermission(fmt.Sprintf("DynamoDB access error: %s", code), err)
		default:
			return apperr.Audit(fmt.Sprintf("DynamoDB operation failed: %s", code), err)
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperr.AuditConnection("Failed to connect to audit log service", err)
	}
	if strings.Contains(err.Error(), "credentials") {
		return apperr.AuditConnection("Failed to connect to audit log service", err)
	}
	return apperr.Audit("Failed to log weather event", err)
}
