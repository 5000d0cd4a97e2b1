package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"doubtsolver/models"
)

type failingStore struct {
	err error
}

func (f failingStore) Save(context.Context, string, any) error { return f.err }

func (f failingStore) Load(context.Context, string, any) (bool, error) { return false, f.err }

func (f failingStore) Remove(context.Context, string) error { return f.err }

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Entry{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func backends(t *testing.T) map[string]Store {
	return map[string]Store{
		"memory": NewMemory(),
		"db":     NewDB(openTestDB(t)),
		"scoped": Scope(NewMemory(), "profile-a"),
	}
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			doubts := []models.Doubt{{
				ID:         42,
				Subject:    "Physics",
				Question:   "Why is the sky blue?",
				Answers:    []string{"Rayleigh scattering"},
				IsResolved: true,
				CreatedAt:  created,
			}}
			require.NoError(t, s.Save(ctx, KeyDoubts, doubts))
			var gotDoubts []models.Doubt
			found, err := s.Load(ctx, KeyDoubts, &gotDoubts)
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, doubts, gotDoubts)

			user := models.User{Username: "admin", Email: "admin@example.com"}
			require.NoError(t, s.Save(ctx, KeyActiveUser, user))
			var gotUser models.User
			found, err = s.Load(ctx, KeyActiveUser, &gotUser)
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, user, gotUser)

			require.NoError(t, s.Save(ctx, KeyDarkMode, false))
			gotDark := true
			found, err = s.Load(ctx, KeyDarkMode, &gotDark)
			require.NoError(t, err)
			require.True(t, found)
			assert.False(t, gotDark)
		})
	}
}

func TestSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Save(ctx, KeyAccounts, map[string]string{"a": "1"}))
			require.NoError(t, s.Save(ctx, KeyAccounts, map[string]string{"b": "2"}))

			var got map[string]string
			found, err := s.Load(ctx, KeyAccounts, &got)
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, map[string]string{"b": "2"}, got)
		})
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Save(ctx, KeyActiveUser, models.User{Username: "user"}))
			require.NoError(t, s.Remove(ctx, KeyActiveUser))
			require.NoError(t, s.Remove(ctx, KeyActiveUser))

			var got models.User
			found, err := s.Load(ctx, KeyActiveUser, &got)
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}

func TestLoadMissingKeyReportsAbsent(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			var got bool
			found, err := s.Load(ctx, "missing", &got)
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}

func TestThemeFlagEncodesAsBooleanText(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Save(context.Background(), KeyDarkMode, true))
	raw, ok := m.Raw(KeyDarkMode)
	require.True(t, ok)
	assert.Equal(t, "true", string(raw))
}

func TestEmptyAnswersEncodeAsArray(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Save(context.Background(), KeyDoubts, []models.Doubt{{ID: 1, Answers: []string{}}}))
	raw, ok := m.Raw(KeyDoubts)
	require.True(t, ok)
	assert.Contains(t, string(raw), `"answers":[]`)
	assert.Contains(t, string(raw), `"isResolved":false`)
}

func TestScopeIsolatesProfiles(t *testing.T) {
	ctx := context.Background()
	shared := NewMemory()
	first := Scope(shared, "one")
	second := Scope(shared, "two")

	require.NoError(t, first.Save(ctx, KeyDarkMode, false))

	var dark bool
	found, err := second.Load(ctx, KeyDarkMode, &dark)
	require.NoError(t, err)
	assert.False(t, found)

	assert.Equal(t, []string{ScopedKey("one", KeyDarkMode)}, shared.Keys())
}

func TestScopeNilStoreIsUnavailable(t *testing.T) {
	s := Scope(nil, "profile")
	assert.IsType(t, Unavailable{}, s)
}

func TestUnavailableIsNoop(t *testing.T) {
	ctx := context.Background()
	var s Unavailable
	require.NoError(t, s.Save(ctx, KeyDoubts, []models.Doubt{{ID: 1}}))
	var got []models.Doubt
	found, err := s.Load(ctx, KeyDoubts, &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, got)
	require.NoError(t, s.Remove(ctx, KeyDoubts))
}

func TestDBWithoutHandle(t *testing.T) {
	ctx := context.Background()
	s := NewDB(nil)
	assert.ErrorIs(t, s.Save(ctx, KeyDoubts, 1), gorm.ErrInvalidDB)
	_, err := s.Load(ctx, KeyDoubts, new(int))
	assert.ErrorIs(t, err, gorm.ErrInvalidDB)
	assert.ErrorIs(t, s.Remove(ctx, KeyDoubts), gorm.ErrInvalidDB)
}

func TestDBRejectsCorruptValue(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.Create(&models.Entry{Key: KeyDoubts, Value: "{not json"}).Error)

	var got []models.Doubt
	found, err := NewDB(db).Load(context.Background(), KeyDoubts, &got)
	assert.Error(t, err)
	assert.False(t, found)
}

func TestRestoreTreatsFailureAsAbsent(t *testing.T) {
	s := failingStore{err: errors.New("disk unplugged")}
	var got []models.Doubt
	assert.False(t, Restore(context.Background(), s, KeyDoubts, &got))

	Persist(context.Background(), s, KeyDoubts, got)
	Forget(context.Background(), s, KeyDoubts)
}
