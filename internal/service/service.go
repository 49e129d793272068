package service

import (
	"github.com/GlebRadaev/orderdesk/internal/config"
	"github.com/GlebRadaev/orderdesk/internal/handlers/admin"
	"github.com/GlebRadaev/orderdesk/internal/handlers/chat"
	"github.com/GlebRadaev/orderdesk/internal/handlers/orders"
	"github.com/GlebRadaev/orderdesk/internal/pg"
	"github.com/GlebRadaev/orderdesk/internal/repo"
	"github.com/GlebRadaev/orderdesk/internal/service/infoservice"
	"github.com/GlebRadaev/orderdesk/internal/service/intake"
	"github.com/GlebRadaev/orderdesk/internal/service/orderservice"
	"github.com/GlebRadaev/orderdesk/internal/service/promoservice"
	"github.com/GlebRadaev/orderdesk/internal/service/ratelimit"
	"github.com/GlebRadaev/orderdesk/internal/service/referralservice"
)

//go:generate mockgen -source=service.go -destination=mock_service.go -package=service

type OrderService interface {
	orders.Service
	admin.OrderService
}

// Stores are the backends that live outside postgres.
type Stores struct {
	Drafts     intake.DraftStore
	RateLimits ratelimit.Store
	Publisher  orderservice.Publisher
}

type Services struct {
	Machine      chat.Service
	OrderService OrderService
	PromoService admin.PromoService
}

func New(repo *repo.Repositories, txManager pg.TXManager, stores Stores, cfg *config.Config) *Services {
	promoService := promoservice.New(repo.PromoRepo)
	referralService := referralservice.New(repo.ReferralRepo, cfg.Catalog.Referral)
	orderService := orderservice.New(repo.OrderRepo, promoService, referralService, txManager, stores.Publisher)
	infoService := infoservice.New(cfg.Catalog, cfg.AdminIDs, orderService, referralService)
	limiter := ratelimit.New(stores.RateLimits, cfg.Catalog.RateLimits)

	machine := intake.New(intake.Deps{
		Drafts:    stores.Drafts,
		Limiter:   limiter,
		Promos:    promoService,
		Orders:    orderService,
		Referrals: referralService,
		Info:      infoService,
		Events:    stores.Publisher,
		Catalog:   cfg.Catalog,
	})

	return &Services{
		Machine:      machine,
		OrderService: orderService,
		PromoService: promoService,
	}
}
