// Package app assembles the remote adapter, local cache and services from
// configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/dtroode/famgram/database"
	"github.com/dtroode/famgram/internal/config"
	"github.com/dtroode/famgram/internal/idgen"
	"github.com/dtroode/famgram/internal/kv"
	"github.com/dtroode/famgram/internal/logger"
	"github.com/dtroode/famgram/internal/model"
	"github.com/dtroode/famgram/internal/remote"
	"github.com/dtroode/famgram/internal/repository/local"
	"github.com/dtroode/famgram/internal/repository/postgres"
	"github.com/dtroode/famgram/internal/service"
	"github.com/dtroode/famgram/internal/storage"
	gcsstorage "github.com/dtroode/famgram/internal/storage/gcs"
	miniostorage "github.com/dtroode/famgram/internal/storage/minio"
)

const (
	bootstrapAdminID  = "u0"
	bootstrapAdminBio = "System Administrator"
)

// remoteInitTimeout bounds each startup call to the remote backend.
var remoteInitTimeout = 5 * time.Second

// App holds the wired services and the resources they depend on.
type App struct {
	Session *service.Session
	Social  *service.Social
	Logger  *logger.Logger

	closers []func() error
}

// New wires every component described by cfg and restores the persisted
// session. An unreachable remote backend does not stop startup: the failure
// is logged and remote calls fail later with model.ErrRemoteUnavailable, so
// services fall back to the local cache.
func New(ctx context.Context, cfg *config.Config, logger *logger.Logger) (*App, error) {
	a := &App{Logger: logger}

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize remote database: %w", err)
	}
	a.closers = append(a.closers, db.Close)
	a.migrate(ctx, cfg.Database.DSN)

	repos, err := newRepositories(db)
	if err != nil {
		a.Close()
		return nil, err
	}

	backend, err := a.newObjectStorage(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to initialize image storage: %w", err)
	}
	images := storage.NewImages(backend, cfg.Storage.PublicBaseURL)

	cache, err := a.newKV(ctx, cfg.Cache)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to initialize local cache: %w", err)
	}
	localStore := local.NewStore(cache, cfg.Cache.KeyPrefix)

	if err := bootstrap(ctx, localStore, cfg.Bootstrap); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to seed local cache: %w", err)
	}

	adapter := remote.NewAdapter(repos, images, logger)
	ids := idgen.New()

	a.Social = service.NewSocial(adapter, localStore, ids, logger)
	a.Session = service.NewSession(adapter, localStore, ids, logger)
	a.Social.AttachSession(a.Session)

	if err := a.Session.Init(ctx); err != nil {
		logger.Warn("failed to restore session", "error", err)
	}

	return a, nil
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func newRepositories(db *postgres.Connection) (remote.Repositories, error) {
	repos := remote.Repositories{
		Users:    postgres.NewUserRepository(db),
		Posts:    postgres.NewPostRepository(db),
		Comments: postgres.NewCommentRepository(db),
	}

	kinds := []struct {
		kind model.MembershipKind
		dst  *model.MembershipStore
	}{
		{model.MembershipLike, &repos.Likes},
		{model.MembershipSave, &repos.Saves},
		{model.MembershipTag, &repos.Tags},
	}
	for _, k := range kinds {
		store, err := postgres.NewMembershipRepository(db, k.kind)
		if err != nil {
			return remote.Repositories{}, fmt.Errorf("failed to create %s repository: %w", k.kind, err)
		}
		*k.dst = store
	}

	return repos, nil
}

func (a *App) migrate(ctx context.Context, dsn string) {
	migrateCtx, cancel := context.WithTimeout(ctx, remoteInitTimeout)
	defer cancel()

	if err := database.Migrate(migrateCtx, dsn); err != nil {
		a.Logger.Warn("remote database unavailable, skipping migrations", "error", err)
	}
}

func (a *App) newObjectStorage(ctx context.Context, cfg *config.Config) (storage.ObjectStorage, error) {
	var backend interface {
		storage.ObjectStorage
		EnsureBucket(ctx context.Context) error
	}

	switch cfg.Storage.Backend {
	case config.StorageGCS:
		client, err := gcsstorage.NewClient(ctx, cfg.Storage.Bucket, cfg.GCS.ProjectID, cfg.GCS.CredentialsFile)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		backend = client
	default:
		minioClient, err := minio.New(cfg.Minio.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.Minio.AccessKey, cfg.Minio.SecretKey, ""),
			Secure: cfg.Minio.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create minio client: %w", err)
		}
		backend = miniostorage.New(minioClient, cfg.Storage.Bucket)
	}

	ensureCtx, cancel := context.WithTimeout(ctx, remoteInitTimeout)
	defer cancel()
	if err := backend.EnsureBucket(ensureCtx); err != nil {
		a.Logger.Warn("image storage unavailable, uploads will fail until it returns",
			"bucket", cfg.Storage.Bucket,
			"error", err)
	}

	return backend, nil
}

func (a *App) newKV(ctx context.Context, cfg config.Cache) (kv.Store, error) {
	switch cfg.Backend {
	case config.CacheRedis:
		store, err := kv.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, store.Close)
		return store, nil
	case config.CacheMemory:
		return kv.NewMemory(), nil
	default:
		return kv.NewFile(filepath.Clean(cfg.Dir))
	}
}

// bootstrap seeds the configured administrator into the local cache. The
// account is never written remotely.
func bootstrap(ctx context.Context, store *local.Store, cfg config.Bootstrap) error {
	if cfg.Username == "" {
		return nil
	}

	return store.Bootstrap(ctx, model.User{
		ID:        bootstrapAdminID,
		Username:  cfg.Username,
		Password:  cfg.Password,
		FullName:  cfg.FullName,
		AvatarURL: service.PlaceholderAvatar(cfg.FullName),
		Bio:       bootstrapAdminBio,
		Role:      model.RoleAdmin,
		Followers: []string{},
		Following: []string{},
	})
}
