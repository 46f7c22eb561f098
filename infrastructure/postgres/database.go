package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"taskmanager/domain/models"
	"taskmanager/pkg/logger"
)

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	LogLevel string
}

func NewDatabase(config DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		config.Host, config.User, config.Password, config.DBName, config.Port, config.SSLMode)

	db, err := Open(postgres.Open(dsn), config.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

// Open opens a gorm session on any dialector with the settings the
// repositories rely on: driver errors translated to gorm sentinels and SQL
// logged through the application logger.
func Open(dialector gorm.Dialector, logLevel string) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         NewGormLogger(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Task{},
	)
}

// DropAll removes every table Migrate creates, children first.
func DropAll(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.Task{}, &models.User{})
}

type slogWriter struct {
	level slog.Level
}

func (w slogWriter) Printf(format string, args ...interface{}) {
	logger.GetLogger().Log(context.Background(), w.level, "gorm", "sql", strings.TrimSpace(fmt.Sprintf(format, args...)))
}

// NewGormLogger routes gorm's SQL log into slog. Only "debug" logs every
// statement; other levels keep slow queries and errors.
func NewGormLogger(level string) gormlogger.Interface {
	gormLevel := gormlogger.Warn
	writer := slogWriter{level: slog.LevelWarn}
	switch level {
	case "debug":
		gormLevel = gormlogger.Info
		writer.level = slog.LevelDebug
	case "error":
		gormLevel = gormlogger.Error
		writer.level = slog.LevelError
	}
	return gormlogger.New(writer, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormLevel,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
