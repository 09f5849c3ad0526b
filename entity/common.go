package entity

import (
	"errors"
	"fmt"
)

// Error values for each failing step of an invocation.
// Errors returned from the service wrap one of these with additional details,
// so error matching should be done with errors.Is().
var (
	ErrInvalidTrigger = errors.New("trigger event does not contain a usable object locator")
	ErrDecode         = errors.New("order document could not be decoded")
	ErrEncode         = errors.New("rows could not be encoded to output format")
	ErrStorage        = errors.New("object storage operation failed")
	ErrCatalog        = errors.New("catalog refresh could not be started")

	// ErrObjectNotFound is returned (wrapped) by ObjectStore implementations when
	// the requested object does not exist.
	ErrObjectNotFound = errors.New("object not found")
)

// ObjectLocator identifies a single object in object storage.
type ObjectLocator struct {
	Bucket string
	Key    string
}

func (l ObjectLocator) String() string {
	return fmt.Sprintf("%s/%s", l.Bucket, l.Key)
}

// Response is the fixed shape returned to the hosting platform on success.
// Body holds a JSON encoded string, hence the escaped quotes in DefaultResponseBody.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

const (
	DefaultStatusCode   = 200
	DefaultResponseBody = `"Hello from Lambda!"`
)

func NewSuccessResponse() Response {
	return Response{
		StatusCode: DefaultStatusCode,
		Body:       DefaultResponseBody,
	}
}

// Catalog refresher types available in config.
type CatalogType string

const (
	CatalogGlue   CatalogType = "glue"
	CatalogPubsub CatalogType = "pubsub"
	CatalogKafka  CatalogType = "kafka"
	CatalogNone   CatalogType = "none"
)

// Metrics provided by the service of its invocations since start of the process.
// Accessible from the public API with Handler.Metrics().
type Metrics struct {

	// Total number of invocations, regardless of outcome
	Invocations int64

	// Total number of invocations that failed
	FailedInvocations int64

	// Total number of orders decoded from source objects
	OrdersProcessed int64

	// Total number of rows written to output objects
	RowsWritten int64

	// Total amount of source data read
	BytesRead int64

	// Total amount of output data written
	BytesWritten int64

	// Total number of catalog refresh starts that failed
	CatalogRefreshFailures int64
}
