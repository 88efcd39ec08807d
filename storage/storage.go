// Package storage uploads proof-of-delivery images to an object store,
// either Cloudflare R2 or Google Cloud Storage.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/princinho/parcelly/config"
)

// ObjectStore writes and removes objects. Put returns the object's public URL.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// New builds the store selected by STORAGE_PROVIDER. It returns a nil store
// when no provider is configured.
func New(ctx context.Context, cfg *config.Config) (ObjectStore, error) {
	switch cfg.StorageProvider {
	case "":
		return nil, nil
	case "r2":
		store, err := NewR2Store(ctx, R2Options{
			Bucket:          cfg.R2Bucket,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			Endpoint:        cfg.R2Endpoint,
			PublicDomain:    cfg.R2PublicDomain,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	case "gcs":
		store, err := NewGCSStore(ctx, cfg.GCSBucket, cfg.GCSCredentialsFile)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage provider %q", cfg.StorageProvider)
	}
}

// ProofObjectKey names the proof image of a parcel:
// parcels/<id>/<unix>-<uuid><ext>.
func ProofObjectKey(parcelID, filename string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".bin"
	}
	return fmt.Sprintf("parcels/%s/%d-%s%s", parcelID, now.UTC().Unix(), uuid.New().String(), ext)
}
