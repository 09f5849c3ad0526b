package etltest

import (
	"encoding/json"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
)

const TestEventDir = "test/events/"

// S3Event returns a JSON S3 "ObjectCreated:Put" notification for each provided
// object key in bucket, in the format delivered to the function by the platform.
func S3Event(bucket string, keys ...string) []byte {
	var event events.S3Event
	for _, key := range keys {
		event.Records = append(event.Records, events.S3EventRecord{
			EventVersion: "2.1",
			EventSource:  "aws:s3",
			AWSRegion:    "eu-north-1",
			EventTime:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
			EventName:    "ObjectCreated:Put",
			S3: events.S3Entity{
				SchemaVersion: "1.0",
				Bucket: events.S3Bucket{
					Name: bucket,
					Arn:  "arn:aws:s3:::" + bucket,
				},
				Object: events.S3Object{
					Key:  key,
					Size: 1024,
				},
			},
		})
	}
	data, _ := json.Marshal(event)
	return data
}

// ReadTestEvent reads a file from the test events dir, with dirPath being the
// relative path from the calling test package to the repo root.
func ReadTestEvent(dirPath, name string) ([]byte, error) {
	return os.ReadFile(dirPath + TestEventDir + name)
}
