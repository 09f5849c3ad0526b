package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joho/godotenv"
	"github.com/zpiroux/orderetl"
	"github.com/zpiroux/orderetl/internal/pkg/entity/xs3"
)

// Function entry point, converting JSON order documents landing in S3 into parquet files
// and starting a catalog refresh after each written file.
// SDK clients are created once per execution environment and shared by all invocations.
func main() {

	// A .env file is optional, only used for local runs
	_ = godotenv.Load()

	ctx := context.Background()
	env := envConfigFromEnv()
	config := env.orderEtlConfig()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		log.Fatalf("could not load AWS config: %v", err)
	}

	store, err := xs3.NewStore(s3.NewFromConfig(awsCfg), "", config.Ops.LogEventData)
	if err != nil {
		log.Fatalf("xs3.NewStore() error: %v", err)
	}

	refresher, closeRefresher, err := newRefresher(ctx, env, awsCfg)
	if err != nil {
		log.Fatalf("could not create catalog refresher: %v", err)
	}
	defer closeRefresher()

	h, err := orderetl.New(config, store, refresher)
	if err != nil {
		log.Fatalf("orderetl.New() error: %v", err)
	}

	lambda.Start(h.Handle)
}
