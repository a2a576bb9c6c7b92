package stores

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/code-100-precent/LingChat/pkg/utils"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStore represents MinIO / S3 compatible object storage
type MinioStore struct {
	Endpoint        string `env:"MINIO_ENDPOINT"`
	AccessKeyID     string `env:"MINIO_ACCESS_KEY"`
	AccessKeySecret string `env:"MINIO_SECRET_KEY"`
	BucketName      string `env:"MINIO_BUCKET"`
	UseSSL          bool   `env:"MINIO_USE_SSL"`
	Domain          string `env:"MINIO_DOMAIN"` // Custom domain for public access
}

// NewMinioStore creates a new MinIO storage instance
func NewMinioStore() Store {
	return &MinioStore{
		Endpoint:        utils.GetEnv("MINIO_ENDPOINT"),
		AccessKeyID:     utils.GetEnv("MINIO_ACCESS_KEY"),
		AccessKeySecret: utils.GetEnv("MINIO_SECRET_KEY"),
		BucketName:      utils.GetEnv("MINIO_BUCKET"),
		UseSSL:          utils.GetBoolEnv("MINIO_USE_SSL"),
		Domain:          utils.GetEnv("MINIO_DOMAIN"),
	}
}

func (m *MinioStore) client() (*minio.Client, error) {
	return minio.New(m.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(m.AccessKeyID, m.AccessKeySecret, ""),
		Secure: m.UseSSL,
	})
}

// Read reads a file from object storage
func (m *MinioStore) Read(key string) (io.ReadCloser, int64, error) {
	client, err := m.client()
	if err != nil {
		return nil, 0, err
	}

	ctx := context.Background()
	stat, err := client.StatObject(ctx, m.BucketName, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to stat object: %w", err)
	}
	obj, err := client.GetObject(ctx, m.BucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get object: %w", err)
	}
	return obj, stat.Size, nil
}

// Write writes a file to object storage
func (m *MinioStore) Write(key string, r io.Reader) error {
	client, err := m.client()
	if err != nil {
		return err
	}

	_, err = client.PutObject(context.Background(), m.BucketName, key, r, -1,
		minio.PutObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}
	return nil
}

// Delete deletes a file from object storage
func (m *MinioStore) Delete(key string) error {
	client, err := m.client()
	if err != nil {
		return err
	}
	return client.RemoveObject(context.Background(), m.BucketName, key,
		minio.RemoveObjectOptions{})
}

// Exists checks if a file exists in object storage
func (m *MinioStore) Exists(key string) (bool, error) {
	client, err := m.client()
	if err != nil {
		return false, err
	}

	_, err = client.StatObject(context.Background(), m.BucketName, key,
		minio.StatObjectOptions{})
	if err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" || resp.Code == "NotFound" {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// PublicURL returns the public URL for a file in object storage
func (m *MinioStore) PublicURL(key string) string {
	key = strings.TrimPrefix(key, "/")
	if m.Domain != "" {
		return strings.TrimSuffix(m.Domain, "/") + "/" + key
	}

	scheme := "http"
	if m.UseSSL {
		scheme = "https"
	}
	u := url.URL{
		Scheme: scheme,
		Host:   m.Endpoint,
		Path:   "/" + m.BucketName + "/" + key,
	}
	return u.String()
}
