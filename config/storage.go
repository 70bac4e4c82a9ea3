package config

import (
	"fmt"
	"os"
)

type S3Config struct {
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Region          string
	Endpoint        string
	PublicURL       string
}

func GetS3Config() *S3Config {
	cfg := &S3Config{
		AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		BucketName:      os.Getenv("AWS_STORAGE_BUCKET_NAME"),
		Region:          getEnv("AWS_REGION", "us-east-1"),
		Endpoint:        os.Getenv("AWS_S3_ENDPOINT"),
	}
	cfg.PublicURL = fmt.Sprintf("https://%s.s3-accelerate.amazonaws.com/media/", cfg.BucketName)
	return cfg
}
