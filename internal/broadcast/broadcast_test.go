package broadcast

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matt-dz/recipehub/internal/log"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	var first, second []Change
	unsubFirst := m.Subscribe(func(c Change) { first = append(first, c) })
	m.Subscribe(func(c Change) { second = append(second, c) })

	change := Change{Profile: "p1", Key: "favorites", Origin: "tab-a"}
	if err := m.Publish(ctx, change); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if len(first) != 1 || first[0] != change {
		t.Errorf("first subscriber got %v", first)
	}
	if len(second) != 1 || second[0] != change {
		t.Errorf("second subscriber got %v", second)
	}

	unsubFirst()
	unsubFirst()
	if err := m.Publish(ctx, change); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if len(first) != 1 {
		t.Errorf("unsubscribed callback still called: %v", first)
	}
	if len(second) != 2 {
		t.Errorf("second subscriber got %d changes, want 2", len(second))
	}
}

func TestMemory_CallbackMayUnsubscribe(t *testing.T) {
	m := NewMemory()
	var unsub func()
	calls := 0
	unsub = m.Subscribe(func(Change) {
		calls++
		unsub()
	})
	_ = m.Publish(context.Background(), Change{Key: "favorites"})
	_ = m.Publish(context.Background(), Change{Key: "favorites"})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRedis(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	r, err := NewRedis(ctx, client, "recipehub:test:"+t.Name(), log.NullLogger())
	if err != nil {
		t.Fatalf("NewRedis() error = %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })

	received := make(chan Change, 1)
	r.Subscribe(func(c Change) { received <- c })

	want := Change{Profile: "p1", Key: "likedRecipes", Origin: "tab-b"}
	if err := r.Publish(ctx, want); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	select {
	case got := <-received:
		if got != want {
			t.Errorf("received %+v, want %+v", got, want)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change")
	}
}
