package cache

import (
	"path/filepath"
	"testing"
	"time"
)

func TestKey_NormalizesClaims(t *testing.T) {
	base := Key("Vaccines cause autism")
	if Key("  vaccines cause autism  ") != base {
		t.Error("keys must ignore case and surrounding whitespace")
	}
	if Key("vaccines cause measles") == base {
		t.Error("different claims must not collide")
	}
	if len(base) <= len("medfact:v1:") {
		t.Errorf("unexpected key %q", base)
	}
}

func TestMemoryCache_RoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	key := Key("some claim")
	if _, found := c.Get(key); found {
		t.Fatal("unexpected hit on empty cache")
	}

	if err := c.Set(key, []byte("verdict"), time.Minute); err != nil {
		t.Fatal(err)
	}
	val, found := c.Get(key)
	if !found || string(val) != "verdict" {
		t.Errorf("expected hit with stored value, got %q found=%v", val, found)
	}

	_ = c.Delete(key)
	if _, found := c.Get(key); found {
		t.Error("expected miss after delete")
	}
}

func TestMemoryCache_TTLExpiry(t *testing.T) {
	c := NewMemoryCache(10*time.Millisecond, time.Minute)

	key := Key("short lived")
	_ = c.Set(key, []byte("v"), 10*time.Millisecond)

	time.Sleep(30 * time.Millisecond)
	if _, found := c.Get(key); found {
		t.Error("expected entry to expire")
	}
}

func TestDiskCache_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Minute)

	key := Key("persistent claim")
	if err := c.Set(key, []byte("verdict"), 0); err != nil {
		t.Fatal(err)
	}

	// A fresh instance over the same dir sees the entry
	c2 := NewDiskCache(dir, time.Minute)
	val, found := c2.Get(key)
	if !found || string(val) != "verdict" {
		t.Errorf("expected persisted hit, got %q found=%v", val, found)
	}
}

func TestDiskCache_ExpiredEntryRemoved(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Minute)

	key := Key("expired claim")
	_ = c.Set(key, []byte("v"), -time.Second)

	if _, found := c.Get(key); found {
		t.Error("expected expired entry to miss")
	}
	if _, err := filepath.Glob(filepath.Join(dir, "*.cache")); err != nil {
		t.Fatal(err)
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Minute)

	key := Key("layered claim")
	if err := c.Set(key, []byte("verdict"), time.Minute); err != nil {
		t.Fatal(err)
	}

	// A second layered cache over the same dir has a cold memory layer;
	// the disk hit must be promoted
	c2 := NewLayeredCache(time.Minute, dir, time.Minute)
	val, found := c2.Get(key)
	if !found || string(val) != "verdict" {
		t.Fatalf("expected disk hit, got found=%v", found)
	}

	if val, found := c2.memory.Get(key); !found || string(val) != "verdict" {
		t.Error("expected disk hit to be promoted to memory")
	}
}

func TestLayeredCache_Clear(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Minute)

	key := Key("cleared claim")
	_ = c.Set(key, []byte("v"), time.Minute)
	if err := c.Clear(); err != nil {
		t.Fatal(err)
	}
	if _, found := c.Get(key); found {
		t.Error("expected miss after clear")
	}
}
