package mock

import (
	"context"
	"testing"

	"doubtsolver/internal/store"
	"doubtsolver/models"
)

func TestNewSeedsDemoProfile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db, err := New(ctx)
	if err != nil {
		t.Fatalf("mock database initialization failed: %v", err)
	}

	var count int64
	if err := db.WithContext(ctx).Model(&models.Entry{}).Count(&count).Error; err != nil {
		t.Fatalf("count entries: %v", err)
	}
	if count == 0 {
		t.Fatal("expected seeded entries")
	}

	profile := store.Scope(store.NewDB(db), DemoProfile)
	var doubts []models.Doubt
	found, err := profile.Load(ctx, store.KeyDoubts, &doubts)
	if err != nil || !found {
		t.Fatalf("load seeded doubts: found=%t err=%v", found, err)
	}
	if len(doubts) != 3 {
		t.Fatalf("expected three seeded doubts, got %d", len(doubts))
	}

	var user models.User
	if found, err := profile.Load(ctx, store.KeyActiveUser, &user); err != nil || !found {
		t.Fatalf("load seeded user: found=%t err=%v", found, err)
	}
	if user.Username != "student" {
		t.Fatalf("unexpected seeded user %q", user.Username)
	}
}
