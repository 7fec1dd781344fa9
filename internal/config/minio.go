package config

import (
	"context"
	"encoding/json"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"pelada-hub/internal/pkg/logger"
)

// publicPrefixes are the object prefixes served directly to browsers.
// Crests and feed images are public; everything else in the bucket stays
// private.
var publicPrefixes = []string{"crests/*", "feed/*"}

func NewMinIOClient(cfg *Config) (*minio.Client, error) {
	client, err := minio.New(cfg.MinIOEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
		Secure: cfg.MinIOUseSSL,
	})
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.MinIOBucket)
	if err != nil {
		return nil, err
	}

	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinIOBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
		logger.L().WithField("bucket", cfg.MinIOBucket).Info("created MinIO bucket")
	}

	resources := make([]string, 0, len(publicPrefixes))
	for _, prefix := range publicPrefixes {
		resources = append(resources, "arn:aws:s3:::"+cfg.MinIOBucket+"/"+prefix)
	}

	policy := map[string]interface{}{
		"Version": "2012-10-17",
		"Statement": []map[string]interface{}{
			{
				"Effect":    "Allow",
				"Principal": "*",
				"Action":    []string{"s3:GetObject"},
				"Resource":  resources,
			},
		},
	}
	policyJSON, _ := json.Marshal(policy)
	if err := client.SetBucketPolicy(ctx, cfg.MinIOBucket, string(policyJSON)); err != nil {
		logger.L().WithError(err).Warn("failed to set bucket policy, uploaded images may not be publicly readable")
	}

	return client, nil
}
