package middleware

import (
	"bytes"
	"testing"
	"time"

	"promocrm/config"

	"github.com/alicebob/miniredis/v2"
)

func newTestStorage(t *testing.T) *RedisStorage {
	t.Helper()

	mr := miniredis.RunT(t)
	storage := NewRedisStorage(config.RedisConfig{
		Enabled: true,
		Address: mr.Addr(),
	})
	t.Cleanup(func() { storage.Close() })
	return storage
}

func TestRedisStorageSetGet(t *testing.T) {
	storage := newTestStorage(t)

	if err := storage.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := storage.Get("k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !bytes.Equal(got, []byte("v")) {
		t.Fatalf("Get = %q, want v", got)
	}
}

func TestRedisStorageMissingKey(t *testing.T) {
	storage := newTestStorage(t)

	// fiber.Storage contract: a miss is (nil, nil), not an error
	got, err := storage.Get("absent")
	if err != nil {
		t.Fatalf("Get on missing key returned error: %v", err)
	}
	if got != nil {
		t.Fatalf("Get on missing key = %q, want nil", got)
	}
}

func TestRedisStorageDelete(t *testing.T) {
	storage := newTestStorage(t)

	if err := storage.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := storage.Delete("k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	got, err := storage.Get("k")
	if err != nil || got != nil {
		t.Fatalf("Get after delete = (%q, %v), want (nil, nil)", got, err)
	}
}

func TestRedisStorageReset(t *testing.T) {
	storage := newTestStorage(t)

	storage.Set("a", []byte("1"), time.Minute)
	storage.Set("b", []byte("2"), time.Minute)

	if err := storage.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if got, _ := storage.Get("a"); got != nil {
		t.Fatalf("Get after reset = %q, want nil", got)
	}
}
