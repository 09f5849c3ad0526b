package xglue

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/glue"
	"github.com/aws/aws-sdk-go-v2/service/glue/types"
	"github.com/aws/smithy-go"
	"github.com/teltech/logger"
)

var log *logger.Log

func init() {
	log = logger.New()
}

// GlueClient is the subset of the Glue client API used by the Refresher.
type GlueClient interface {
	StartCrawler(ctx context.Context, params *glue.StartCrawlerInput, optFns ...func(*glue.Options)) (*glue.StartCrawlerOutput, error)
}

// Refresher implements entity.CatalogRefresher by starting a Glue crawler.
type Refresher struct {
	client GlueClient
}

func NewRefresher(client GlueClient) (*Refresher, error) {
	if isNil(client) {
		return nil, errors.New("invalid arguments, GlueClient cannot be nil")
	}
	return &Refresher{client: client}, nil
}

// StartRefresh starts the crawler with name jobName. A crawler that is already
// running is not regarded as an error, but it might have listed the output prefix
// before the new object was written, in which case the object is only cataloged on
// the next crawl.
func (r *Refresher) StartRefresh(ctx context.Context, jobName string) error {

	if jobName == "" {
		return errors.New("no crawler name provided")
	}

	_, err := r.client.StartCrawler(ctx, &glue.StartCrawlerInput{Name: aws.String(jobName)})
	if err == nil {
		log.Infof(r.lgprfx()+"crawler %s started", jobName)
		return nil
	}

	if crawlerAlreadyRunning(err) {
		log.Warnf(r.lgprfx()+"crawler %s already running and could not be restarted, new output might not be cataloged until its next run (err: %v)", jobName, err)
		return nil
	}

	return fmt.Errorf(r.lgprfx()+"could not start crawler %s: %w", jobName, err)
}

func crawlerAlreadyRunning(err error) bool {
	var cre *types.CrawlerRunningException
	if errors.As(err, &cre) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "CrawlerRunningException"
	}
	return false
}

func (r *Refresher) lgprfx() string {
	return "[xglue.refresher] "
}

func isNil(v any) bool {
	return v == nil || (reflect.ValueOf(v).Kind() == reflect.Ptr && reflect.ValueOf(v).IsNil())
}
