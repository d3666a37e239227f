package service

import (
	"github.com/Nithya-42/Stagelink/internal/mailer"
	redisx "github.com/Nithya-42/Stagelink/internal/redis"
	postgres "github.com/Nithya-42/Stagelink/internal/repository/postgres"
	redis "github.com/Nithya-42/Stagelink/internal/repository/redis"
	"github.com/Nithya-42/Stagelink/internal/service/admin"
	"github.com/Nithya-42/Stagelink/internal/service/booking"
	"github.com/Nithya-42/Stagelink/internal/service/catalog"
	"github.com/Nithya-42/Stagelink/internal/service/feed"
	"github.com/Nithya-42/Stagelink/internal/service/messaging"
	"github.com/Nithya-42/Stagelink/internal/service/review"
)

type Services struct {
	Booking   *booking.Service
	Feed      *feed.Service
	Catalog   *catalog.Service
	Review    *review.Service
	Messaging *messaging.Service
	Admin     *admin.Service
}

type Config struct {
	Catalog catalog.Config
}

func NewServices(
	store *postgres.Store,
	cache *redis.Cache,
	pubsub *redisx.NotificationsPubSub,
	limiter *redis.SlidingWindowLimiter,
	m *mailer.Mailer,
	cfg Config,
) *Services {
	return &Services{
		Booking:   booking.New(store, cache, pubsub, limiter),
		Feed:      feed.New(store),
		Catalog:   catalog.New(store, cache, cfg.Catalog),
		Review:    review.New(store),
		Messaging: messaging.New(store),
		Admin:     admin.New(store, cache, m),
	}
}
