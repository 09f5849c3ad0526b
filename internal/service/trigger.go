package service

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/tidwall/gjson"
	"github.com/zpiroux/orderetl/entity"
)

const (
	pathBucketName = "Records.0.s3.bucket.name"
	pathObjectKey  = "Records.0.s3.object.key"
)

// ObjectLocatorFromEvent returns the bucket and key of the object referred to by the
// first record of an S3 notification event. Further records are ignored.
// Keys in S3 notifications are URL encoded (with '+' for space) and are decoded here.
func ObjectLocatorFromEvent(event []byte) (entity.ObjectLocator, error) {

	var locator entity.ObjectLocator

	if !gjson.ValidBytes(event) {
		return locator, errWithDetails(entity.ErrInvalidTrigger, errors.New("event is not valid JSON"))
	}

	bucket := gjson.GetBytes(event, pathBucketName)
	key := gjson.GetBytes(event, pathObjectKey)
	if bucket.String() == "" || key.String() == "" {
		return locator, errWithDetails(entity.ErrInvalidTrigger,
			fmt.Errorf("bucket (%q) or key (%q) missing in first record", bucket.String(), key.String()))
	}

	decodedKey, err := url.QueryUnescape(key.String())
	if err != nil {
		return locator, errWithDetails(entity.ErrInvalidTrigger, err)
	}

	locator.Bucket = bucket.String()
	locator.Key = decodedKey
	return locator, nil
}

func errWithDetails(err error, errDetails error) error {
	return fmt.Errorf("%w, details: %w", err, errDetails)
}
