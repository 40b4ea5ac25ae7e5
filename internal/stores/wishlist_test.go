package stores_test

import (
	"sync"
	"testing"

	"lofireads/internal/domain"
	"lofireads/internal/storage"
	"lofireads/internal/stores"
)

func memkv(t *testing.T) *storage.Store {
	t.Helper()
	kv, err := storage.Open(":memory:", 0)
	if err != nil {
		t.Fatal(err)
	}
	return kv
}

var (
	bookA = domain.Book{ID: "a", Title: "Whispers in the Rain", Price: 24.99}
	bookB = domain.Book{ID: "b", Title: "Midnight Gardens", Price: 27.99}
)

func TestWishlistAddIsIdempotent(t *testing.T) {
	w := stores.NewWishlistStore(memkv(t))
	w.Add("u1", bookA)
	w.Add("u1", bookA)
	if got := w.List("u1"); len(got) != 1 {
		t.Fatalf("duplicate add created entries: %d", len(got))
	}
}

func TestWishlistInsertionOrderAndRemove(t *testing.T) {
	w := stores.NewWishlistStore(memkv(t))
	w.Add("u1", bookA)
	w.Add("u1", bookB)
	got := w.List("u1")
	if len(got) != 2 || got[0].Book.ID != "a" || got[1].Book.ID != "b" {
		t.Fatalf("insertion order broken: %+v", got)
	}
	w.Remove("u1", "a")
	got = w.List("u1")
	if len(got) != 1 || got[0].Book.ID != "b" {
		t.Fatalf("remove failed: %+v", got)
	}
	// removing again is a no-op
	w.Remove("u1", "a")
	if len(w.List("u1")) != 1 {
		t.Fatal("repeat remove changed state")
	}
}

func TestWishlistToggleTwiceRestoresMembership(t *testing.T) {
	w := stores.NewWishlistStore(memkv(t))
	if in := w.Toggle("u1", bookA); !in {
		t.Fatal("first toggle must add")
	}
	if !w.Contains("u1", "a") {
		t.Fatal("contains false after toggle-in")
	}
	if in := w.Toggle("u1", bookA); in {
		t.Fatal("second toggle must remove")
	}
	if w.Contains("u1", "a") {
		t.Fatal("contains true after toggle-out")
	}
}

func TestToggleIsAtomicUnderConcurrentFlips(t *testing.T) {
	w := stores.NewWishlistStore(memkv(t))

	// an even number of flips must land back on "not saved"
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				w.Toggle("u1", bookA)
			}
		}()
	}
	wg.Wait()

	if w.Contains("u1", "a") {
		t.Fatal("even toggle count left the book saved")
	}
	if got := w.List("u1"); len(got) != 0 {
		t.Fatalf("stray entries after toggling: %d", len(got))
	}
}

func TestWishlistScopedPerUser(t *testing.T) {
	w := stores.NewWishlistStore(memkv(t))
	w.Add("u1", bookA)
	if w.Contains("u2", "a") {
		t.Fatal("users must not share wishlists")
	}
	w.Clear("u1")
	if len(w.List("u1")) != 0 {
		t.Fatal("clear left entries behind")
	}
}

func TestWishlistPersistsAcrossStoreInstances(t *testing.T) {
	kv := memkv(t)
	stores.NewWishlistStore(kv).Add("u1", bookA)

	// a fresh store over the same backing kv sees the write
	again := stores.NewWishlistStore(kv)
	if !again.Contains("u1", "a") {
		t.Fatal("wishlist not persisted")
	}
}
