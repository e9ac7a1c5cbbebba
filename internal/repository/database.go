package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/MEKSAAA/Anti-Fake/internal/model"
)

var db *gorm.DB

// InitDB opens the database and migrates the schema. sqlite is the
// default; mysql is selected by config for deployments.
func InitDB(driver, dsn string) error {
	var dialector gorm.Dialector
	switch strings.ToLower(driver) {
	case "mysql":
		dialector = mysql.Open(dsn)
	case "sqlite", "":
		if dir := filepath.Dir(dsn); dir != "." && !strings.HasPrefix(dsn, "file:") {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		dialector = sqlite.Open(dsn)
	default:
		return fmt.Errorf("unsupported database driver: %s", driver)
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.AutoMigrate(
		&model.User{},
		&model.DetectionRecord{},
		&model.GenerationRecord{},
		&model.GlobalStatistics{},
		&model.UserStatistics{},
		&model.TitleRecord{},
		&model.SummaryRecord{},
		&model.OptimizationRecord{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	db = conn
	zap.L().Info("Database initialized", zap.String("driver", driver))
	return nil
}

// SetDB swaps the database handle. Used by tests with an in-memory sqlite.
func SetDB(conn *gorm.DB) {
	db = conn
}

// DB returns the database handle.
func DB() *gorm.DB {
	return db
}

// Transaction runs fn atomically, rolling back on error.
func Transaction(fn func(tx *gorm.DB) error) error {
	return db.Transaction(fn)
}

// Close closes the underlying connection pool.
func Close() error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
