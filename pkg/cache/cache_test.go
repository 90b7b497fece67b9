package cache

import (
	"context"
	"math"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Error("null cache must always miss")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "key"); hit {
		t.Error("null cache must not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	// Miss before write.
	if _, hit, err := c.Get(ctx, "solve:abc"); err != nil || hit {
		t.Fatalf("fresh cache: hit=%v err=%v", hit, err)
	}

	want := []byte(`{"hardpoints":true}`)
	if err := c.Set(ctx, "solve:abc", want, 0); err != nil {
		t.Fatal(err)
	}
	got, hit, err := c.Get(ctx, "solve:abc")
	if err != nil || !hit {
		t.Fatalf("after Set: hit=%v err=%v", hit, err)
	}
	if string(got) != string(want) {
		t.Errorf("Get = %q, want %q", got, want)
	}

	// Expired entries are misses.
	if err := c.Set(ctx, "solve:ttl", want, time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "solve:ttl"); hit {
		t.Error("expired entry must miss")
	}

	if err := c.Delete(ctx, "solve:abc"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "solve:abc"); hit {
		t.Error("deleted entry must miss")
	}
	// Deleting an absent key is fine.
	if err := c.Delete(ctx, "solve:gone"); err != nil {
		t.Errorf("delete absent key: %v", err)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("hash must be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("different inputs must hash differently")
	}
	if len(h1) != 64 {
		t.Errorf("hash length = %d, want 64", len(h1))
	}
}

func TestSolveKey(t *testing.T) {
	type target struct{ Track float64 }

	k1 := SolveKey(target{1220}, "bounds", "samples")
	if k1 != SolveKey(target{1220}, "bounds", "samples") {
		t.Error("solve key must be deterministic")
	}
	if k1 == SolveKey(target{1250}, "bounds", "samples") {
		t.Error("different targets must key differently")
	}
	if k1 == SolveKey(target{1220}, "bounds", "other-samples") {
		t.Error("different samples must key differently")
	}

	r1 := ReportKey(k1, "svg")
	if r1 == ReportKey(k1, "json") {
		t.Error("different formats must key differently")
	}
}

// Bound tables mark fixed axes with NaN pairs, which JSON cannot encode.
// Keys built over them must still reflect every input.
func TestSolveKeyNaNBounds(t *testing.T) {
	nan := math.NaN()
	boundsA := map[string][3][2]float64{
		"LAF": {{127, 127}, {203.2, 220.98}, {nan, nan}},
	}
	boundsB := map[string][3][2]float64{
		"LAF": {{127, 127}, {215, 230}, {nan, nan}},
	}

	kA := SolveKey("target", boundsA, "samples")
	if kA != SolveKey("target", boundsA, "samples") {
		t.Error("solve key must be deterministic for NaN-bearing bounds")
	}
	if kB := SolveKey("target", boundsB, "samples"); kA == kB {
		t.Errorf("distinct NaN-bearing bound tables share key %s", kA)
	}
	if kC := SolveKey("other-target", boundsA, "other-samples"); kA == kC {
		t.Errorf("distinct inputs with NaN-bearing bounds share key %s", kA)
	}
}
