package repo

import (
	"github.com/GlebRadaev/orderdesk/internal/pg"
	orderrepo "github.com/GlebRadaev/orderdesk/internal/repo/order-repo"
	promorepo "github.com/GlebRadaev/orderdesk/internal/repo/promo-repo"
	referralrepo "github.com/GlebRadaev/orderdesk/internal/repo/referral-repo"
	"github.com/GlebRadaev/orderdesk/internal/service/orderservice"
	"github.com/GlebRadaev/orderdesk/internal/service/promoservice"
	"github.com/GlebRadaev/orderdesk/internal/service/referralservice"
)

type Repositories struct {
	OrderRepo    orderservice.Repo
	PromoRepo    promoservice.Repo
	ReferralRepo referralservice.Repo
}

func New(conn pg.Database, txManager pg.TXManager, orderIDAttempts int) *Repositories {
	orderRepo := orderrepo.New(conn, txManager, orderIDAttempts)
	promoRepo := promorepo.New(conn, txManager)
	referralRepo := referralrepo.New(conn)

	return &Repositories{
		OrderRepo:    orderRepo,
		PromoRepo:    promoRepo,
		ReferralRepo: referralRepo,
	}
}
