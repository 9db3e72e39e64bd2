package repositories

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"weather-dashboard/internal/platform/db"
	"weather-dashboard/internal/ports"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func exerciseSlot(t *testing.T, slot ports.StateSlot) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := slot.Get(ctx, "weatherAppStateV2"); err != nil || ok {
		t.Fatalf("empty slot Get = ok=%v err=%v, want absent", ok, err)
	}

	if err := slot.Set(ctx, "weatherAppStateV2", `{"useGeolocation":true}`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := slot.Set(ctx, "weatherAppStateV2", `{"useGeolocation":false}`); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}

	got, ok, err := slot.Get(ctx, "weatherAppStateV2")
	if err != nil || !ok {
		t.Fatalf("Get after Set: ok=%v err=%v", ok, err)
	}
	if got != `{"useGeolocation":false}` {
		t.Fatalf("Get = %q, want the last written value", got)
	}

	if _, ok, _ := slot.Get(ctx, "otherKey"); ok {
		t.Fatalf("keys must be independent")
	}
}

func TestSqliteStateSlot(t *testing.T) {
	conn, err := db.OpenSQLite(filepath.Join(t.TempDir(), "slots.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer conn.Close()

	if err := InitSchema(context.Background(), conn); err != nil {
		t.Fatalf("InitSchema: %v", err)
	}
	// Schema creation is idempotent.
	if err := InitSchema(context.Background(), conn); err != nil {
		t.Fatalf("InitSchema second run: %v", err)
	}

	exerciseSlot(t, NewSqliteStateSlot(conn))
}

func TestRedisStateSlot(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	slot := NewRedisStateSlot(client, "dashboard:")
	exerciseSlot(t, slot)

	if !mr.Exists("dashboard:weatherAppStateV2") {
		t.Fatalf("expected prefixed key in redis, keys=%v", mr.Keys())
	}
}

func TestRedisStateSlotServerDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	slot := NewRedisStateSlot(client, "")
	if err := slot.Set(context.Background(), "k", "v"); err == nil {
		t.Fatalf("expected error when redis is unreachable")
	}
}

func TestMemoryStateSlot(t *testing.T) {
	exerciseSlot(t, NewMemoryStateSlot())
}

func TestSQLStateSlotPostgres(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	conn, err := db.Open(url)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer conn.Close()

	ctx := context.Background()
	if err := InitPostgresSchema(ctx, conn); err != nil {
		t.Fatalf("InitPostgresSchema: %v", err)
	}
	if _, err := conn.ExecContext(ctx, `DELETE FROM state_slots WHERE key IN ('weatherAppStateV2', 'otherKey')`); err != nil {
		t.Fatalf("cleanup: %v", err)
	}

	exerciseSlot(t, NewSQLStateSlot(conn))
}
