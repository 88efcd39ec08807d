package storage

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/princinho/parcelly/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProofObjectKey(t *testing.T) {
	now := time.Unix(1700000000, 0)

	key := ProofObjectKey("65a1f0c2e4b0a1b2c3d4e5f6", "Proof.JPG", now)
	assert.Regexp(t,
		regexp.MustCompile(`^parcels/65a1f0c2e4b0a1b2c3d4e5f6/1700000000-[0-9a-f-]{36}\.jpg$`),
		key)

	other := ProofObjectKey("65a1f0c2e4b0a1b2c3d4e5f6", "Proof.JPG", now)
	assert.NotEqual(t, key, other)

	assert.Contains(t, ProofObjectKey("x", "noext", now), ".bin")
}

func TestPublicURLs(t *testing.T) {
	assert.Equal(t, "https://files.example.com/proofs/parcels/a.png",
		r2PublicURL("https://files.example.com", "proofs", "parcels/a.png"))
	assert.Equal(t, "https://storage.googleapis.com/proofs/parcels/a.png",
		gcsPublicURL("proofs", "parcels/a.png"))
}

func TestNew_Unconfigured(t *testing.T) {
	store, err := New(context.Background(), &config.Config{})
	require.NoError(t, err)
	assert.Nil(t, store)
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(context.Background(), &config.Config{StorageProvider: "ftp"})
	assert.Error(t, err)
}

func TestNewR2Store_MissingSettings(t *testing.T) {
	_, err := NewR2Store(context.Background(), R2Options{Bucket: "proofs"})
	assert.ErrorContains(t, err, "missing R2 settings")
}
