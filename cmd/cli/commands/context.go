package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/jakechorley/leave-roster/internal/config"
	"github.com/jakechorley/leave-roster/pkg/core/services"
)

// Migrator applies pending schema migrations
type Migrator interface {
	RunMigrations(ctx context.Context) error
}

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Service  *services.Service
	Migrator Migrator
	Logger   *zap.Logger
	Ctx      context.Context
}
