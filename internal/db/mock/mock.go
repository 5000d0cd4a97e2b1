package mock

import (
	"context"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	applog "doubtsolver/internal/log"
	"doubtsolver/internal/store"
	"doubtsolver/models"
)

// DemoProfile is the profile seeded with a demo session and an extra doubt.
const DemoProfile = "demo"

// New returns an in-memory sqlite database with the entries table migrated
// and a demo profile seeded.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	db, err := gorm.Open(sqlite.Open("file:doubtsolver-mock?mode=memory&cache=shared"), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&models.Entry{}); err != nil {
		return nil, err
	}

	if err := seed(ctx, db); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return db, nil
}

func seed(ctx context.Context, db *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	profile := store.Scope(store.NewDB(db), DemoProfile)
	now := time.Now().UTC()

	doubts := append([]models.Doubt{{
		ID:        now.UnixMilli(),
		Subject:   "Physics",
		Question:  "Why does a spinning top stay upright?",
		Answers:   []string{"Angular momentum resists changes to the axis of rotation."},
		CreatedAt: now,
	}}, models.SampleDoubts()...)
	if err := profile.Save(ctx, store.KeyDoubts, doubts); err != nil {
		return err
	}

	user := models.User{Username: "student", Email: models.SynthesizedEmail("student")}
	if err := profile.Save(ctx, store.KeyActiveUser, user); err != nil {
		return err
	}

	applog.Debug(ctx, "mock database seeded", "profile", DemoProfile)
	return nil
}
