package infoservice

import (
	"context"
	"fmt"
	"strings"

	"github.com/GlebRadaev/orderdesk/internal/config"
	"github.com/GlebRadaev/orderdesk/internal/domain"
	"go.uber.org/zap"
)

//go:generate mockgen -source=infoservice.go -destination=mock_infoservice.go -package=infoservice

type OrderLister interface {
	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
}

type BonusLister interface {
	ListBonuses(ctx context.Context, referrerID int64) ([]domain.ReferralBonus, error)
}

type Entry struct {
	Question string
	Answer   string
}

var FAQ = []Entry{
	{
		Question: "What guarantees do I get?",
		Answer: "Every work is unique and written to your requirements. All works pass a plagiarism check. " +
			"Revisions during the warranty period are free.",
	},
	{
		Question: "How do I pay?",
		Answer: "Payment is made in two parts: 50% upfront to start the work and 50% when it is ready. " +
			"The manager sends you the payment details.",
	},
	{
		Question: "What if revisions are needed?",
		Answer: "If you or your supervisor need changes, we make them for free. " +
			"Tell your manager and send the list of changes.",
	},
	{
		Question: "How long does it take?",
		Answer: "A coursework usually takes 7 to 14 days. Shorter deadlines are possible for an extra charge.",
	},
	{
		Question: "Is it confidential?",
		Answer: "Yes. Your personal data and order details are never shared with third parties.",
	},
}

type Service struct {
	catalog *config.Catalog
	admins  map[int64]bool
	orders  OrderLister
	bonuses BonusLister
}

func New(catalog *config.Catalog, adminIDs []int64, orders OrderLister, bonuses BonusLister) *Service {
	admins := make(map[int64]bool, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = true
	}
	return &Service{
		catalog: catalog,
		admins:  admins,
		orders:  orders,
		bonuses: bonuses,
	}
}

func (s *Service) Help(userID int64) string {
	var b strings.Builder
	b.WriteString("Commands:\n")
	b.WriteString("/start - main menu\n")
	b.WriteString("/order - place a new order or continue the current one\n")
	b.WriteString("/restart - start the current order over\n")
	b.WriteString("/cancel - drop the current order\n")
	b.WriteString("/back - previous step\n")
	b.WriteString("/skip - keep the current value and go on\n")
	b.WriteString("/edit <field> - change a field before confirming\n")
	b.WriteString("/cabinet - my orders and referral bonuses\n")
	b.WriteString("/prices - price list\n")
	b.WriteString("/faq - frequently asked questions\n")
	b.WriteString("/support <text> - write to the support team\n")
	b.WriteString("/feedback <text> - leave feedback\n")
	if s.admins[userID] {
		b.WriteString("\nAdministration is available over the admin API:\n")
		b.WriteString("PATCH /api/admin/orders/{id}/status - change an order status\n")
		b.WriteString("GET /api/admin/orders?status= - orders by status\n")
		b.WriteString("POST /api/admin/promos - create a promo code\n")
		b.WriteString("GET /api/admin/promos/{code}/usages - promo code usages\n")
	}
	return b.String()
}

func (s *Service) Prices() string {
	var b strings.Builder
	b.WriteString("Base prices:\n")
	for _, w := range s.catalog.WorkTypes {
		unit := "work"
		if w.PerPage > 0 {
			unit = "page"
		}
		fmt.Fprintf(&b, "%s: %d + %d per %s\n", w.Label, w.Base, w.UnitRate(), unit)
	}
	b.WriteString("Deadlines under 3 days cost 50% more, under 7 days 25% more.")
	return b.String()
}

func (s *Service) FAQ() string {
	var b strings.Builder
	b.WriteString("Frequently asked questions:\n")
	for _, e := range FAQ {
		fmt.Fprintf(&b, "\n%s\n%s\n", e.Question, e.Answer)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Cabinet lists the user's orders and the bonuses earned by inviting others.
func (s *Service) Cabinet(ctx context.Context, userID int64) (string, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return "", err
	}
	bonuses, err := s.bonuses.ListBonuses(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get referral bonuses", zap.Int64("user_id", userID), zap.Error(err))
		return "", err
	}

	var b strings.Builder
	if len(orders) == 0 {
		b.WriteString("You have no orders yet.\n")
	} else {
		b.WriteString("Your orders:\n")
		for _, o := range orders {
			fmt.Fprintf(&b, "\n#%s %s\nTopic: %s\nDeadline: %s\nPrice: %d\nStatus: %s\n",
				o.ID, o.TypeLabel, o.Topic, o.Deadline.Format("02.01.2006"), o.Price, o.Status)
		}
	}

	var total int64
	for _, bonus := range bonuses {
		total += bonus.Amount
	}
	fmt.Fprintf(&b, "\nReferral bonuses: %d from %d orders\n", total, len(bonuses))
	fmt.Fprintf(&b, "Invite friends with the link payload ref%d", userID)
	return b.String(), nil
}
