package database

import (
	"context"

	"github.com/jasenardian/react-digital-clean/internal/config"
	"github.com/jasenardian/react-digital-clean/pkg/mysql"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func NewConnection(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	return mysql.NewConnection(context.Background(), cfg.Database, logger)
}
