package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

type PoolOptions struct {
	MaxOpenConnections int
	MaxIdleConnections int
	ConnMaxLife        time.Duration
}

func GormOpen(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverPostgres, "":
		dialector = postgres.Open(dsn)
	case DriverMySQL:
		dialector = mysql.Open(dsn)
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	return gorm.Open(dialector, &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		Logger: gormlogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormlogger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	})
}

func ConfigurePool(db *gorm.DB, opts PoolOptions) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if opts.MaxOpenConnections > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConnections)
	}
	if opts.MaxIdleConnections > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConnections)
	}
	if opts.ConnMaxLife > 0 {
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLife)
	}
	return nil
}

// LiveUniqueIndexer is implemented by soft-deletable models whose unique
// keys only bind rows that are not deleted. Keys are index names.
type LiveUniqueIndexer interface {
	TableName() string
	LiveUniqueIndexes() map[string][]string
}

// liveFlagColumn backs live-only unique indexes on MySQL, which has no
// partial indexes: it is 1 for live rows and NULL for deleted ones.
const liveFlagColumn = "live_flag"

func RunMigrations(db *gorm.DB, entities ...interface{}) error {
	if err := db.AutoMigrate(entities...); err != nil {
		return err
	}

	for _, entity := range entities {
		indexer, ok := entity.(LiveUniqueIndexer)
		if !ok {
			continue
		}
		for name, columns := range indexer.LiveUniqueIndexes() {
			if err := ensureLiveUniqueIndex(db, indexer.TableName(), name, columns); err != nil {
				return fmt.Errorf("failed to create index %s: %w", name, err)
			}
		}
	}
	return nil
}

func ensureLiveUniqueIndex(db *gorm.DB, table, name string, columns []string) error {
	migrator := db.Migrator()
	if migrator.HasIndex(table, name) {
		return nil
	}

	if db.Dialector.Name() != DriverMySQL {
		return db.Exec(fmt.Sprintf("CREATE UNIQUE INDEX %s ON %s (%s) WHERE deleted_at IS NULL",
			name, table, strings.Join(columns, ", "))).Error
	}

	if !migrator.HasColumn(table, liveFlagColumn) {
		err := db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s TINYINT AS (IF(deleted_at IS NULL, 1, NULL)) STORED",
			table, liveFlagColumn)).Error
		if err != nil {
			return err
		}
	}
	return db.Exec(fmt.Sprintf("CREATE UNIQUE INDEX %s ON %s (%s, %s)",
		name, table, strings.Join(columns, ", "), liveFlagColumn)).Error
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
