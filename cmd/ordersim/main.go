package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/zpiroux/orderetl/internal/pkg/entity/xs3"
	"github.com/zpiroux/orderetl/internal/pkg/ordersim"
)

const contentTypeJson = "application/json"

// Generates a sample order document and writes it to stdout, a file, or to S3, where
// the latter triggers the function if the bucket notification is set up.
//
//	go run ./cmd/ordersim -orders 100 -bucket orders-landing-zone -key incoming/orders.json
func main() {

	var (
		nbOrders = flag.Int("orders", 0, "number of orders (if 0, a random number as given by the generator spec)")
		seed     = flag.Int64("seed", time.Now().UnixNano(), "random seed")
		specFile = flag.String("spec", "", "JSON file with generator spec (default spec if omitted)")
		outFile  = flag.String("out", "", "output file (stdout if neither out nor bucket is set)")
		bucket   = flag.String("bucket", "", "S3 bucket to upload to")
		key      = flag.String("key", "", "S3 key to upload to (required with bucket)")
	)
	flag.Parse()

	doc, err := generate(*specFile, *seed, *nbOrders)
	if err != nil {
		log.Fatalf("could not generate orders: %v", err)
	}

	switch {
	case *bucket != "":
		if *key == "" {
			log.Fatal("key is required when uploading to S3")
		}
		if err = upload(context.Background(), *bucket, *key, doc); err != nil {
			log.Fatalf("upload failed: %v", err)
		}
		log.Printf("uploaded %d bytes to s3://%s/%s", len(doc), *bucket, *key)
	case *outFile != "":
		if err = os.WriteFile(*outFile, doc, 0o644); err != nil {
			log.Fatalf("could not write file: %v", err)
		}
	default:
		fmt.Println(string(doc))
	}
}

func generate(specFile string, seed int64, nbOrders int) ([]byte, error) {

	spec := ordersim.DefaultSpec()
	if specFile != "" {
		specData, err := os.ReadFile(specFile)
		if err != nil {
			return nil, err
		}
		if spec, err = ordersim.NewSpec(specData); err != nil {
			return nil, err
		}
	}

	g, err := ordersim.New(spec, nil, seed)
	if err != nil {
		return nil, err
	}
	if nbOrders > 0 {
		return g.Orders(nbOrders)
	}
	return g.Document()
}

func upload(ctx context.Context, bucket, key string, doc []byte) error {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return err
	}
	store, err := xs3.NewStore(s3.NewFromConfig(awsCfg), contentTypeJson, false)
	if err != nil {
		return err
	}
	return store.Put(ctx, bucket, key, doc)
}
