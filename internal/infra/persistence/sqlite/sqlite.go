// Package sqlite contains the concrete implementation of the persistence
// layer using GORM over an embedded SQLite database.
package sqlite

import (
	"context"
	"log/slog"

	"go.uber.org/fx"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"plantheon/config"
	"plantheon/internal/domain/lifecycle"
	"plantheon/internal/errors"
	"plantheon/internal/infra/persistence/model"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the SQLite database and migrates the schema.
func New(params Params) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(params.Config.Database.Path), &gorm.Config{
		// Disable GORM's per-statement implicit transaction.
		// We keep explicit transactions via txManager.Execute for multi-step atomic operations.
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(params.Logger, params.Config),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open SQLite database")
	}

	if err := db.AutoMigrate(&model.UserModel{}, &model.KVRecordModel{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate schema")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get SQLite sql.DB")
	}
	// SQLite serializes writers; a single connection avoids busy errors.
	sqlDB.SetMaxOpenConns(1)

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			return errors.Wrap(sqlDB.PingContext(ctx), "failed to ping SQLite")
		},
		OnStop: func(_ context.Context) error {
			return sqlDB.Close()
		},
	})

	return db, nil
}
