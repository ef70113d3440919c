package database

import (
	"context"
	"fmt"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Tomlord1122/task-manager/internal/config"
	"github.com/Tomlord1122/task-manager/internal/domain"
	"github.com/Tomlord1122/task-manager/internal/logger"
)

// Service exposes the connection pool and its health.
type Service interface {
	Health() map[string]string
	Close() error
	GetDB() *gorm.DB
	Migrate(ctx context.Context) error
}

type service struct {
	db   *gorm.DB
	name string
	log  logrus.FieldLogger
}

// New opens the pool described by cfg. Callers own the returned Service and
// must Close it.
func New(cfg config.DatabaseConfig, log *logrus.Logger, production bool) (Service, error) {
	level := gormlogger.Info
	if production {
		level = gormlogger.Warn
	}
	gormLog := gormlogger.New(
		log,
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormLog,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return Wrap(db, cfg, log)
}

// Wrap applies the pool settings to an already opened GORM handle.
func Wrap(db *gorm.DB, cfg config.DatabaseConfig, log logrus.FieldLogger) (Service, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	return &service{db: db, name: cfg.Name(), log: logger.DB(log)}, nil
}

func (s *service) GetDB() *gorm.DB {
	return s.db
}

// Migrate creates or updates the tables for every domain model.
func (s *service) Migrate(ctx context.Context) error {
	s.log.Info("running database auto-migration")
	if err := s.db.WithContext(ctx).AutoMigrate(domain.Models()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	s.log.Info("database auto-migration complete")
	return nil
}

// Health pings the database and reports pool statistics.
func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	stats := make(map[string]string)
	sqlDB, err := s.db.DB()
	if err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("failed to get underlying DB for health check: %v", err)
		s.log.WithError(err).Error("health check: no underlying DB")
		return stats
	}

	err = sqlDB.PingContext(ctx)
	if err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		s.log.WithError(err).Warn("db down")
		return stats
	}

	stats["status"] = "up"
	stats["message"] = "It's healthy"

	dbStats := sqlDB.Stats()
	stats["open_connections"] = strconv.Itoa(dbStats.OpenConnections)
	stats["in_use"] = strconv.Itoa(dbStats.InUse)
	stats["idle"] = strconv.Itoa(dbStats.Idle)
	stats["wait_count"] = strconv.FormatInt(dbStats.WaitCount, 10)
	stats["wait_duration"] = dbStats.WaitDuration.String()
	stats["max_idle_closed"] = strconv.FormatInt(dbStats.MaxIdleClosed, 10)
	stats["max_lifetime_closed"] = strconv.FormatInt(dbStats.MaxLifetimeClosed, 10)

	if dbStats.OpenConnections > 80 {
		stats["message"] = "The database is experiencing heavy load."
	}

	if dbStats.WaitCount > 1000 {
		stats["message"] = "The database has a high number of wait events, indicating potential bottlenecks."
	}

	if dbStats.MaxIdleClosed > int64(dbStats.OpenConnections)/2 && dbStats.OpenConnections > dbStats.Idle {
		stats["message"] = "Many idle connections are being closed, consider revising the connection pool settings (MaxIdleConns, ConnMaxIdleTime)."
	}

	if dbStats.MaxLifetimeClosed > int64(dbStats.OpenConnections)/2 {
		stats["message"] = "Many connections are being closed due to max lifetime, consider increasing ConnMaxLifetime or revising the connection usage pattern."
	}

	return stats
}

func (s *service) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB for closing: %w", err)
	}
	s.log.WithField("database", s.name).Info("closing connection pool")
	return sqlDB.Close()
}
