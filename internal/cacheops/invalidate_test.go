package cacheops

import (
	"context"
	"errors"
	"testing"
)

func seed(fc *fakeCache, keys ...string) {
	for _, k := range keys {
		fc.data[k] = []byte("x")
	}
}

func TestOnWriteClearsEntityAndLists(t *testing.T) {
	fc := newFakeCache()
	seed(fc,
		"product:one:7",
		"product:one:8",
		"product:list:all:start:20",
		"product:list:cat=3:100:20",
		"category:one:3",
	)
	iv := NewInvalidator(fc, discard(), nil)

	iv.OnWrite(context.Background(), "product", 7, nil)

	if _, ok := fc.data["product:one:7"]; ok {
		t.Fatal("entity key survived")
	}
	if _, ok := fc.data["product:list:all:start:20"]; ok {
		t.Fatal("list key survived")
	}
	if _, ok := fc.data["product:list:cat=3:100:20"]; ok {
		t.Fatal("filtered list key survived")
	}
	// другая сущность и чужой точечный ключ не тронуты
	if _, ok := fc.data["product:one:8"]; !ok {
		t.Fatal("unrelated entity key was deleted")
	}
	if _, ok := fc.data["category:one:3"]; !ok {
		t.Fatal("unrelated category key was deleted")
	}
}

func TestOnWriteInvalidatesParents(t *testing.T) {
	fc := newFakeCache()
	seed(fc,
		"product:one:7",
		"product:list:all:start:20",
		"category:one:3",
		"category:list:all:start:20",
	)
	iv := NewInvalidator(fc, discard(), nil)

	iv.OnWrite(context.Background(), "product", 7,
		[]ParentRef{{Entity: "category", ID: 3}})

	for _, k := range []string{
		"product:one:7", "product:list:all:start:20",
		"category:one:3", "category:list:all:start:20",
	} {
		if _, ok := fc.data[k]; ok {
			t.Fatalf("key %q survived", k)
		}
	}
}

// Популярный сценарий из обработчиков: заполнили список, записали, список пуст.
func TestWriteThenReadRecomputes(t *testing.T) {
	fc := newFakeCache()
	a := NewAside(fc, discard(), nil)
	iv := NewInvalidator(fc, discard(), nil)

	key := "product:list:all:start:20"
	calls := 0
	compute := func(context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "old", nil
		}
		return "new", nil
	}

	got, _ := GetOrCompute(context.Background(), a, key, 300, compute)
	if got != "old" {
		t.Fatalf("got %q", got)
	}

	iv.OnWrite(context.Background(), "product", 99, nil)

	got, _ = GetOrCompute(context.Background(), a, key, 300, compute)
	if got != "new" || calls != 2 {
		t.Fatalf("stale value after invalidation: %q calls=%d", got, calls)
	}
}

func TestOnWriteSwallowsFailures(t *testing.T) {
	fc := newFakeCache()
	seed(fc, "product:one:7")
	fc.delErr = errors.New("connection reset")
	iv := NewInvalidator(fc, discard(), nil)

	// не должно паниковать и не должно ничего возвращать наружу
	iv.OnWrite(context.Background(), "product", 7, []ParentRef{{Entity: "category", ID: 1}})
}

func TestOnWriteSkipsWhenUnavailable(t *testing.T) {
	fc := newFakeCache()
	seed(fc, "product:one:7")
	fc.available = false
	st := &countStats{}
	iv := NewInvalidator(fc, discard(), st)

	iv.OnWrite(context.Background(), "product", 7, nil)

	if st.invals != 0 {
		t.Fatalf("invalidation counted while cache down: %d", st.invals)
	}
}
