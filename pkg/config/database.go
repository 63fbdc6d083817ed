package config

import (
	"context"
	"fmt"
	"time"

	"github.com/anonto42/publication-scheduler/backend/pkg/logger"
	"github.com/glebarez/sqlite"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB holds the storage gateway selected by STORAGE_DRIVER. Exactly one of SQL and Mongo is set.
type DB struct {
	Driver string
	SQL    *gorm.DB
	Mongo  *mongo.Database

	mongoClient *mongo.Client
}

// InitDB opens the storage gateway described by cfg
func InitDB(cfg *Config) (*DB, error) {
	log := logger.WithModule("database")

	switch cfg.StorageDriver {
	case DriverPostgres, DriverSQLite:
		dsn := cfg.PostgresURL
		if cfg.StorageDriver == DriverSQLite {
			dsn = cfg.SQLitePath
		}
		sqlDB, err := OpenSQL(cfg.StorageDriver, dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to %s: %w", cfg.StorageDriver, err)
		}
		log.Infof("Successfully connected to %s!", cfg.StorageDriver)
		return &DB{Driver: cfg.StorageDriver, SQL: sqlDB}, nil

	case DriverMongo:
		client, err := initMongo(cfg.MongoURI)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		log.Info("Successfully connected to MongoDB!")
		return &DB{Driver: DriverMongo, Mongo: client.Database(cfg.MongoDatabase), mongoClient: client}, nil
	}

	return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}

// OpenSQL opens a GORM connection for the postgres or sqlite driver and pings it
func OpenSQL(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("driver %q is not a SQL driver", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if driver == DriverSQLite {
		// A single connection keeps an in-memory database alive and the pragma in effect.
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, err
		}
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// initMongo initializes the MongoDB connection
func initMongo(uri string) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(uri)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	// Ping the primary to verify connection
	if err = client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return client, nil
}

// Ping verifies the storage gateway is reachable
func (db *DB) Ping(ctx context.Context) error {
	if db.SQL != nil {
		sqlDB, err := db.SQL.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
	if db.mongoClient != nil {
		return db.mongoClient.Ping(ctx, nil)
	}
	return fmt.Errorf("no storage gateway configured")
}

// CloseDB closes the database connections
func (db *DB) CloseDB() {
	log := logger.WithModule("database")

	if db.SQL != nil {
		sqlDB, err := db.SQL.DB()
		if err != nil {
			log.WithError(err).Error("Error getting SQL DB from GORM")
		} else if err := sqlDB.Close(); err != nil {
			log.WithError(err).Errorf("Error closing %s connection", db.Driver)
		} else {
			log.Infof("%s connection closed.", db.Driver)
		}
	}

	if db.mongoClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.mongoClient.Disconnect(ctx); err != nil {
			log.WithError(err).Error("Error closing MongoDB connection")
		} else {
			log.Info("MongoDB connection closed.")
		}
	}
}
