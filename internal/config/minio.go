package config

import (
	"context"

	"github.com/knadh/koanf/v2"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

func NewMinIO(config *koanf.Koanf, log *zap.Logger) *minio.Client {
	minioClient, err := minio.New(config.String("MINIO_URL"), &minio.Options{
		Creds:  credentials.NewStaticV4(config.String("MINIO_USER"), config.String("MINIO_PASSWORD"), ""),
		Secure: false,
	})
	if err != nil {
		log.Fatal("failed to initialize minio client", zap.Error(err))
	}

	err = EnsureBucket(context.Background(), minioClient, config.String("MINIO_BUCKET_NAME"), config.String("MINIO_LOCATION"))
	if err != nil {
		log.Fatal("failed to create minio bucket", zap.Error(err))
	}

	log.Info("minio bucket is ready", zap.String("bucket", config.String("MINIO_BUCKET_NAME")))

	return minioClient
}

func EnsureBucket(ctx context.Context, minioClient *minio.Client, bucketName string, location string) error {
	err := minioClient.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{
		Region: location,
	})
	if err != nil {
		exists, errBucketExists := minioClient.BucketExists(ctx, bucketName)
		if errBucketExists == nil && exists {
			return nil
		}
		return err
	}

	return nil
}
