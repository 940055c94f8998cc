// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/church611/shepherdview/internal/app/store/memdb"
	"github.com/church611/shepherdview/internal/app/store/seed"
)

// ConnectDB builds the in-memory store. There is no external database;
// the store starts empty unless demo seeding is enabled.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	store := memdb.New()

	if appCfg.SeedDemoData {
		now := time.Now().UTC()
		store.Load(seed.Leaders(now), seed.Members())
		logger.Info("loaded demo dataset into in-memory store")
	}

	return DBDeps{Store: store}, nil
}

// EnsureSchema sets up indexes or schema as needed. The in-memory store
// has no schema to prepare.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	return nil
}
