package xs3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/teltech/logger"
	"github.com/zpiroux/orderetl/entity"
)

const ParquetContentType = "application/vnd.apache.parquet"

var log *logger.Log

func init() {
	log = logger.New()
}

// S3Client is the subset of the S3 client API used by the Store.
// We're decoupling the API here on consumer side for full unit test capabilities.
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Store implements entity.ObjectStore with AWS S3.
type Store struct {
	client      S3Client
	contentType string
	logData     bool
}

// NewStore creates a Store. If contentType is empty, ParquetContentType is set on
// put objects.
func NewStore(client S3Client, contentType string, logData bool) (*Store, error) {
	if isNil(client) {
		return nil, errors.New("invalid arguments, S3Client cannot be nil")
	}
	if contentType == "" {
		contentType = ParquetContentType
	}
	return &Store{
		client:      client,
		contentType: contentType,
		logData:     logData,
	}, nil
}

func (s *Store) Get(ctx context.Context, bucket, key string) ([]byte, error) {

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: s3://%s/%s, details: %v", entity.ErrObjectNotFound, bucket, key, err)
		}
		return nil, fmt.Errorf(s.lgprfx()+"get s3://%s/%s failed: %w", bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf(s.lgprfx()+"reading body of s3://%s/%s failed: %w", bucket, key, err)
	}

	if s.logData {
		log.Debugf(s.lgprfx()+"read %d bytes from s3://%s/%s", len(data), bucket, key)
	}
	return data, nil
}

func (s *Store) Put(ctx context.Context, bucket, key string, data []byte) error {

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(s.contentType),
	})
	if err != nil {
		return fmt.Errorf(s.lgprfx()+"put s3://%s/%s failed: %w", bucket, key, err)
	}

	if s.logData {
		log.Debugf(s.lgprfx()+"wrote %d bytes to s3://%s/%s", len(data), bucket, key)
	}
	return nil
}

func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "NoSuchKey"
	}
	return false
}

func (s *Store) lgprfx() string {
	return "[xs3.store] "
}

func isNil(v any) bool {
	return v == nil || (reflect.ValueOf(v).Kind() == reflect.Ptr && reflect.ValueOf(v).IsNil())
}
