package session

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestGetMissingKey(t *testing.T) {
	store := openTestStore(t)

	value, err := store.Get("nope")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if value != "" {
		t.Errorf("missing key = %q, want empty", value)
	}
}

func TestSetOverwrites(t *testing.T) {
	store := openTestStore(t)

	if err := store.Set(KeySelectedShift, "Morning"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Set(KeySelectedShift, "Night"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	value, err := store.Get(KeySelectedShift)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if value != "Night" {
		t.Errorf("value = %q, want Night", value)
	}
}

func TestSetUserIDReplacesAllState(t *testing.T) {
	store := openTestStore(t)

	// Simulate an older session with a shift preference
	if err := store.Set(KeyUserID, "3"); err != nil {
		t.Fatal(err)
	}
	if err := store.Set(KeySelectedShift, "Night"); err != nil {
		t.Fatal(err)
	}

	if err := store.SetUserID("7"); err != nil {
		t.Fatalf("SetUserID: %v", err)
	}

	keys, err := store.Keys()
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 1 || keys[0] != KeyUserID {
		t.Errorf("keys after login = %v, want only %q", keys, KeyUserID)
	}

	userID, err := store.UserID()
	if err != nil {
		t.Fatal(err)
	}
	if userID != "7" {
		t.Errorf("userID = %q, want 7", userID)
	}
}

func TestClearRemovesEveryKey(t *testing.T) {
	store := openTestStore(t)

	if err := store.Set(KeyUserID, "7"); err != nil {
		t.Fatal(err)
	}
	if err := store.Set(KeySelectedShift, "Night"); err != nil {
		t.Fatal(err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	keys, err := store.Keys()
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 0 {
		t.Errorf("keys after logout = %v, want none", keys)
	}

	// A fresh load must show no residual shift bias beyond the default
	shift, err := store.SelectedShift()
	if err != nil {
		t.Fatal(err)
	}
	if shift != DefaultShift {
		t.Errorf("shift after logout = %q, want %q", shift, DefaultShift)
	}
}

func TestUserIDFiltersJunkValues(t *testing.T) {
	store := openTestStore(t)

	for _, junk := range []string{"null", "undefined", ""} {
		if err := store.Set(KeyUserID, junk); err != nil {
			t.Fatal(err)
		}
		userID, err := store.UserID()
		if err != nil {
			t.Fatal(err)
		}
		if userID != "" {
			t.Errorf("UserID() with stored %q = %q, want empty", junk, userID)
		}
	}
}

func TestStatePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	store, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.SetSelectedShift("Night"); err != nil {
		t.Fatal(err)
	}
	store.Close()

	reopened, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	shift, err := reopened.SelectedShift()
	if err != nil {
		t.Fatal(err)
	}
	if shift != "Night" {
		t.Errorf("shift after reopen = %q, want Night", shift)
	}
}
