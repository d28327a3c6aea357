package helpers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// NewGCSClient creates a Google Cloud Storage client. If credsPath is empty, ADC is used.
func NewGCSClient(ctx context.Context, credsPath string) (*storage.Client, error) {
	if credsPath == "" {
		return storage.NewClient(ctx)
	}
	return storage.NewClient(ctx, option.WithCredentialsFile(credsPath))
}

// StoredObject describes an uploaded image.
type StoredObject struct {
	URL       string
	Object    string
	Name      string
	Extension string
}

// GCSStore uploads and deletes public images in one bucket.
type GCSStore struct {
	Client *storage.Client
	Bucket string
}

func NewGCSStore(client *storage.Client, bucket string) *GCSStore {
	return &GCSStore{Client: client, Bucket: bucket}
}

var ErrStorageNotConfigured = errors.New("gcs not configured")

// Put stores r under folder/<uuid><ext of filename>.
func (s *GCSStore) Put(ctx context.Context, folder, filename, contentType string, r io.Reader) (StoredObject, error) {
	if s == nil || s.Client == nil || s.Bucket == "" {
		return StoredObject{}, ErrStorageNotConfigured
	}
	ext := strings.ToLower(path.Ext(filename))
	objectPath := path.Join(folder, uuid.NewString()+ext)
	url, err := UploadObject(ctx, s.Client, s.Bucket, objectPath, contentType, r)
	if err != nil {
		return StoredObject{}, err
	}
	return StoredObject{URL: url, Object: objectPath, Name: path.Base(filename), Extension: strings.TrimPrefix(ext, ".")}, nil
}

// Remove deletes an object. Missing objects are not an error.
func (s *GCSStore) Remove(ctx context.Context, objectPath string) error {
	if s == nil || s.Client == nil || s.Bucket == "" || objectPath == "" {
		return nil
	}
	err := s.Client.Bucket(s.Bucket).Object(objectPath).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil
	}
	return err
}

// UploadObject uploads bytes from r into bucket/objectPath with the provided contentType
func UploadObject(ctx context.Context, client *storage.Client, bucket, objectPath, contentType string, r io.Reader) (string, error) {
	wc := client.Bucket(bucket).Object(objectPath).NewWriter(ctx)
	wc.ContentType = contentType
	wc.ChunkSize = 0 // small files
	if _, err := io.Copy(wc, r); err != nil {
		_ = wc.Close()
		return "", err
	}
	if err := wc.Close(); err != nil {
		return "", err
	}
	return PublicURL(bucket, objectPath), nil
}

// PublicURL builds a public URL for an object (assuming public read access or signed URLs)
func PublicURL(bucket, objectPath string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, objectPath)
}
