package cmd

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	gomongo "go.mongodb.org/mongo-driver/mongo"

	"github.com/muller/cepapp/internal/core/ports"
	"github.com/muller/cepapp/internal/infrastructure/db/mongo"
	"github.com/muller/cepapp/internal/infrastructure/db/redis"
)

const disconnectTimeout = 5 * time.Second

// stores bundles the persistence handles shared by every subcommand.
// rdb and revocations stay nil unless TOKEN_REVOCATION_ENABLED is set.
type stores struct {
	client      *gomongo.Client
	db          *gomongo.Database
	rdb         *goredis.Client
	users       *mongo.UserRepository
	addresses   *mongo.AddressRepository
	revocations ports.TokenRevocations
}

func openStores(ctx context.Context) (*stores, error) {
	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongo")

	s := &stores{
		client:    client,
		db:        db,
		users:     mongo.NewUserRepository(db),
		addresses: mongo.NewAddressRepository(db),
	}

	if err := mongo.EnsureIndexes(ctx, s.users, s.addresses); err != nil {
		s.close()
		return nil, err
	}

	if cfg.Token.RevocationEnabled {
		rdb, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			s.close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		s.rdb = rdb
		s.revocations = redis.NewRevocationStore(rdb, cfg.Token.TTL)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("token revocation enabled")
	}

	return s, nil
}

func (s *stores) close() {
	ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
	defer cancel()

	if s.rdb != nil {
		if err := s.rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close")
		}
	}
	if err := s.client.Disconnect(ctx); err != nil {
		log.Warn().Err(err).Msg("mongo disconnect")
	}
}
