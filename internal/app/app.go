package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/userbase/internal/config"
	"github.com/templui/userbase/internal/db"
	"github.com/templui/userbase/internal/picture"
	"github.com/templui/userbase/internal/repository"
	"github.com/templui/userbase/internal/service"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	Cfg            *config.Config
	DB             *sqlx.DB      // set for the sqlite and pgx drivers
	Mongo          *mongo.Client // set for the mongo driver
	Pictures       *picture.Provider
	AuthService    *service.AuthService
	UserService    *service.UserService
	ProfileService *service.ProfileService
}

type stores struct {
	accounts repository.AccountRepository
	profiles repository.ProfileRepository
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Cfg: cfg}

	// Initialize database
	s, err := a.openStores(ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := service.NewPasswordHasher(cfg.PasswordHasher)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("failed to initialize password hasher: %v", err)
	}

	// One client for every picture lookup
	a.Pictures = picture.NewProvider(
		&http.Client{Timeout: cfg.PictureTimeout},
		picture.WithTimeout(cfg.PictureTimeout),
	)

	// Services
	a.AuthService = service.NewAuthService(s.accounts, s.profiles, hasher, a.Pictures)
	a.UserService = service.NewUserService(s.accounts, s.profiles)
	a.ProfileService = service.NewProfileService(s.profiles)

	return a, nil
}

func (a *App) openStores(ctx context.Context) (stores, error) {
	cfg := a.Cfg

	switch cfg.DBDriver {
	case config.DriverMongo:
		uri := db.MongoURI(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword)
		client, database, err := db.ConnectMongo(ctx, uri, cfg.DBName)
		if err != nil {
			return stores{}, fmt.Errorf("failed to initialize database: %v", err)
		}
		a.Mongo = client

		if cfg.DBMigrate {
			err = repository.EnsureMongoIndexes(ctx, database)
			if err != nil {
				_ = a.Close()
				return stores{}, fmt.Errorf("failed to create indexes: %v", err)
			}
		}

		return stores{
			accounts: repository.NewMongoAccountRepository(database),
			profiles: repository.NewMongoProfileRepository(database),
		}, nil

	case config.DriverSQLite, config.DriverPgx:
		if cfg.DBConnection == "" {
			return stores{}, fmt.Errorf("DB_CONNECTION is required for driver %q", cfg.DBDriver)
		}
		database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
		if err != nil {
			return stores{}, fmt.Errorf("failed to initialize database: %v", err)
		}
		a.DB = database

		// Run database migrations
		if cfg.DBMigrate {
			err = db.RunMigrations(database.DB, cfg.DBDriver)
			if err != nil {
				_ = a.Close()
				return stores{}, fmt.Errorf("failed to run migrations: %v", err)
			}
		}

		return stores{
			accounts: repository.NewAccountRepository(database),
			profiles: repository.NewProfileRepository(database),
		}, nil

	case config.DriverMemory:
		slog.Warn("using in-memory store, data is lost on restart")
		memory := repository.NewMemoryStore()
		return stores{
			accounts: memory.Accounts(),
			profiles: memory.Profiles(),
		}, nil

	default:
		return stores{}, fmt.Errorf("unsupported database driver: %s", cfg.DBDriver)
	}
}

func (a *App) Close() error {
	if a.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := a.Mongo.Disconnect(ctx)
		a.Mongo = nil
		return err
	}
	if a.DB != nil {
		err := db.Close(a.DB)
		a.DB = nil
		return err
	}
	return nil
}
