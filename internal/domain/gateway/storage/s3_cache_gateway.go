package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"weather-api/configs"
	"weather-api/internal/apperr"
	"weather-api/internal/domain/model"
	"weather-api/pkg/log"
)

// S3API is the subset of the S3 client used by the cache gateway.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// s3CacheGateway implements CacheGateway on top of an S3 bucket. One
// object per fetch, keyed by city and fetch time; entries are never
// deleted by this service.
type s3CacheGateway struct {
	client  S3API
	bucket  string
	maxAge  time.Duration
	timeout time.Duration
	now     func() time.Time
}

// NewS3CacheGateway creates a new instance of CacheGateway backed by S3.
func NewS3CacheGateway(client S3API, cfg *configs.Config) CacheGateway {
	return &s3CacheGateway{
		client:  client,
		bucket:  cfg.S3Bucket,
		maxAge:  cfg.CacheExpiry,
		timeout: cfg.AWSCallTimeout,
		now:     time.Now,
	}
}

// normalizeCity lowercases the city and replaces spaces with underscores.
func normalizeCity(city string) string {
	return strings.ReplaceAll(strings.ToLower(city), " ", "_")
}

// storageKey builds the object key for a fresh upload. The timestamp
// component makes the key unique per call; two uploads for the same
// city within the same clock-second collide, which is accepted.
func (g *s3CacheGateway) storageKey(city string, now time.Time) string {
	return fmt.Sprintf("%s_%s.json", normalizeCity(city), now.Format("20060102_150405"))
}

func (g *s3CacheGateway) uri(key string) string {
	return fmt.Sprintf("s3://%s/%s", g.bucket, key)
}

// Put serializes the record as indented JSON and uploads it.
func (g *s3CacheGateway) Put(ctx context.Context, city string, record model.WeatherRecord) (string, string, error) {
	jsonData, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		log.Errorf("JSON encoding error: %v", err)
		return "", "", apperr.StorageData("Failed to encode weather data", err)
	}

	now := g.now()
	key := g.storageKey(city, now)

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	log.Infof("Uploading weather data for %s to S3", city)

	_, err = g.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(g.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(jsonData),
		ContentType: aws.String("application/json"),
		Metadata: map[string]string{
			"city":      strings.ToLower(city),
			"timestamp": now.Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", "", classifyStorageError(err, "S3 operation failed")
	}

	uri := g.uri(key)
	log.Infof("Successfully uploaded weather data to %s", uri)
	return key, uri, nil
}

// GetFresh lists the city's entries, picks the most recent one inside
// the freshness window and returns its document plus the S3 URI it was
// served from. A corrupt or unreadable fresh entry is a cache failure;
// no fallback to older entries.
func (g *s3CacheGateway) GetFresh(ctx context.Context, city string) (model.WeatherRecord, string, error) {
	if strings.TrimSpace(city) == "" {
		return nil, "", apperr.StorageData("City name must be a non-empty string", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	log.Infof("Checking S3 for recent weather data for %s", city)

	prefix := normalizeCity(city) + "_"
	listing, err := g.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(g.bucket),
		Prefix: aws.String(prefix),
	})
	if err != nil {
		if errorCode(err) == "NoSuchBucket" {
			return nil, "", apperr.StoragePermission("S3 bucket not found", err)
		}
		return nil, "", classifyStorageError(err, "Failed to retrieve cached weather data")
	}

	if len(listing.Contents) == 0 {
		log.Debugf("No cached data found for %s", city)
		return nil, "", nil
	}

	entries := listing.Contents
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].LastModified.After(*entries[j].LastModified)
	})

	minTimestamp := g.now().Add(-g.maxAge)
	newest := entries[0]
	if newest.LastModified.Before(minTimestamp) {
		log.Debugf("No recent cached data found for %s", city)
		return nil, "", nil
	}

	obj, err := g.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    newest.Key,
	})
	if err != nil {
		return nil, "", apperr.Cache("Failed to retrieve cached data", err)
	}
	defer obj.Body.Close()

	body, err := io.ReadAll(obj.Body)
	if err != nil {
		return nil, "", apperr.Cache("Failed to retrieve cached data", err)
	}

	var record model.WeatherRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, "", apperr.Cache("Cached data is corrupted", err)
	}

	log.Infof("Successfully retrieved cached weather data for %s", city)
	return record, g.uri(aws.ToString(newest.Key)), nil
}

// Ping verifies the bucket is reachable.
func (g *s3CacheGateway) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	_, err := g.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(g.bucket)})
	if err != nil {
		return classifyStorageError(err, "S3 bucket is not reachable")
	}
	return nil
}

// errorCode extracts the service error code from an SDK error chain.
func errorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

// classifyStorageError maps an S3 failure to the storage taxonomy:
// missing bucket or denied access is a permission problem, timeouts
// and credential failures are connection problems, the rest is generic.
func classifyStorageError(err error, message string) *apperr.Error {
	switch code := errorCode(err); code {
	case "NoSuchBucket", "AccessDenied":
		return apperr.StoragePermission(fmt.Sprintf("S3 access error: %s", code), err)
	case "":
	default:
		return apperr.Storage(fmt.Sprintf("S3 operation failed: %s", code), err)
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperr.StorageConnection("Failed to connect to storage service", err)
	}
	if strings.Contains(err.Error(), "credentials") {
		return apperr.StoragePermission("Invalid AWS credentials", err)
	}
	return apperr.Storage(message, err)
}
