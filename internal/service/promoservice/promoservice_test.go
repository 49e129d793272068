package promoservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GlebRadaev/orderdesk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"
)

var now = time.Date(2030, 10, 8, 12, 0, 0, 0, time.UTC)

func NewMock(t *testing.T) (*Service, *MockRepo) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	service := New(repo)
	service.now = func() time.Time { return now }
	defer ctrl.Finish()
	return service, repo
}

func reasonOf(t *testing.T, err error) string {
	t.Helper()
	var promoErr *PromoError
	require.True(t, errors.As(err, &promoErr), "want *PromoError, got %v", err)
	return promoErr.Reason
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		promo  *domain.PromoRecord
		userID int64
		amount int64
		reason string
	}{
		{
			name:   "Valid unlimited",
			promo:  &domain.PromoRecord{Code: "A", DiscountType: domain.DiscountPercent, DiscountValue: 10},
			userID: 1, amount: 100,
		},
		{
			name:   "Missing",
			promo:  nil,
			reason: ReasonNotFound,
		},
		{
			name:   "Expired",
			promo:  &domain.PromoRecord{Code: "A", ExpiresAt: now.Add(-time.Minute)},
			reason: ReasonExpired,
		},
		{
			name:   "Expired wins over exhausted",
			promo:  &domain.PromoRecord{Code: "A", ExpiresAt: now.Add(-time.Minute), UsageLimit: 1, UsedCount: 1},
			reason: ReasonExpired,
		},
		{
			name:   "Exhausted",
			promo:  &domain.PromoRecord{Code: "A", ExpiresAt: now.Add(time.Hour), UsageLimit: 5, UsedCount: 5},
			reason: ReasonExhausted,
		},
		{
			name:   "Exhausted wins over wrong user",
			promo:  &domain.PromoRecord{Code: "A", UsageLimit: 1, UsedCount: 1, IsPersonal: true, PersonalUserID: 2},
			userID: 1,
			reason: ReasonExhausted,
		},
		{
			name:   "Wrong user",
			promo:  &domain.PromoRecord{Code: "A", IsPersonal: true, PersonalUserID: 2, MinOrderAmount: 1000},
			userID: 1, amount: 10,
			reason: ReasonWrongUser,
		},
		{
			name:   "Personal owner",
			promo:  &domain.PromoRecord{Code: "A", IsPersonal: true, PersonalUserID: 2},
			userID: 2,
		},
		{
			name:   "Amount too low",
			promo:  &domain.PromoRecord{Code: "A", MinOrderAmount: 1000},
			amount: 999,
			reason: ReasonAmountTooLow,
		},
		{
			name:   "Amount at minimum",
			promo:  &domain.PromoRecord{Code: "A", MinOrderAmount: 1000},
			amount: 1000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.promo, tt.userID, tt.amount, now)
			if tt.reason == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.reason, reasonOf(t, err))
		})
	}
}

func TestCheck(t *testing.T) {
	service, repo := NewMock(t)

	repo.EXPECT().FindByCode(gomock.Any(), "NOPE").Return(nil, nil)
	_, err := service.Check(context.Background(), "NOPE", 1, 100)
	assert.Equal(t, ReasonNotFound, reasonOf(t, err))
	assert.Contains(t, err.Error(), "NOPE")

	repo.EXPECT().FindByCode(gomock.Any(), "SALE").Return(nil, errors.New("database error"))
	_, err = service.Check(context.Background(), "SALE", 1, 100)
	assert.EqualError(t, err, "database error")

	promo := &domain.PromoRecord{Code: "SALE", DiscountType: domain.DiscountFixed, DiscountValue: 300}
	repo.EXPECT().FindByCode(gomock.Any(), "SALE").Return(promo, nil)
	got, err := service.Check(context.Background(), "SALE", 1, 100)
	assert.NoError(t, err)
	assert.Equal(t, promo, got)
}

func TestExhaustedAfterSingleUse(t *testing.T) {
	service, repo := NewMock(t)
	promo := &domain.PromoRecord{Code: "ONCE", DiscountType: domain.DiscountPercent, DiscountValue: 10, UsageLimit: 1}

	repo.EXPECT().FindByCode(gomock.Any(), "ONCE").DoAndReturn(func(context.Context, string) (*domain.PromoRecord, error) {
		cp := *promo
		return &cp, nil
	}).Times(2)
	repo.EXPECT().Apply(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, usage *domain.PromoUsage) error {
		if promo.UsedCount >= promo.UsageLimit {
			return domain.ErrPromoExhausted
		}
		promo.UsedCount++
		return nil
	}).Times(2)

	_, err := service.Check(context.Background(), "ONCE", 1, 2500)
	require.NoError(t, err)
	require.NoError(t, service.Apply(context.Background(), &domain.PromoUsage{Code: "ONCE", UserID: 1, OrderID: "2404815702", Discount: 250}))

	_, err = service.Check(context.Background(), "ONCE", 2, 2500)
	assert.Equal(t, ReasonExhausted, reasonOf(t, err))

	err = service.Apply(context.Background(), &domain.PromoUsage{Code: "ONCE", UserID: 2, OrderID: "1234567897", Discount: 250})
	assert.ErrorIs(t, err, domain.ErrPromoExhausted)
}

func TestCreate(t *testing.T) {
	service, repo := NewMock(t)

	tests := []struct {
		name        string
		promo       *domain.PromoRecord
		prepareMock func()
		expectErr   error
	}{
		{
			name:  "Created and normalised",
			promo: &domain.PromoRecord{Code: " summer ", DiscountType: domain.DiscountPercent, DiscountValue: 20, UsedCount: 7},
			prepareMock: func() {
				repo.EXPECT().Create(gomock.Any(), &domain.PromoRecord{Code: "SUMMER", DiscountType: domain.DiscountPercent, DiscountValue: 20}).Return(nil)
			},
		},
		{
			name:      "Percent over 100",
			promo:     &domain.PromoRecord{Code: "BIG", DiscountType: domain.DiscountPercent, DiscountValue: 101},
			expectErr: ErrInvalidPromo,
		},
		{
			name:      "Unknown type",
			promo:     &domain.PromoRecord{Code: "BIG", DiscountType: "bogo", DiscountValue: 1},
			expectErr: ErrInvalidPromo,
		},
		{
			name:      "Bad charset",
			promo:     &domain.PromoRecord{Code: "BIG SALE", DiscountType: domain.DiscountFixed, DiscountValue: 1},
			expectErr: ErrInvalidPromo,
		},
		{
			name:      "Personal without owner",
			promo:     &domain.PromoRecord{Code: "MINE", DiscountType: domain.DiscountFixed, DiscountValue: 1, IsPersonal: true},
			expectErr: ErrInvalidPromo,
		},
		{
			name:  "Duplicate",
			promo: &domain.PromoRecord{Code: "DUP", DiscountType: domain.DiscountFixed, DiscountValue: 50},
			prepareMock: func() {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(domain.ErrPromoExists)
			},
			expectErr: domain.ErrPromoExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.prepareMock != nil {
				tt.prepareMock()
			}
			err := service.Create(context.Background(), tt.promo)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestListUsages(t *testing.T) {
	service, repo := NewMock(t)
	usages := []domain.PromoUsage{{ID: 1, Code: "SALE", UserID: 1, OrderID: "2404815702", Discount: 10}}

	repo.EXPECT().ListUsages(gomock.Any(), "SALE").Return(usages, nil)
	got, err := service.ListUsages(context.Background(), "sale")
	assert.NoError(t, err)
	assert.Equal(t, usages, got)

	repo.EXPECT().ListUsages(gomock.Any(), "SALE").Return(nil, errors.New("database error"))
	_, err = service.ListUsages(context.Background(), "SALE")
	assert.Error(t, err)
}

func TestPromoErrorMessage(t *testing.T) {
	for _, reason := range []string{ReasonNotFound, ReasonExpired, ReasonExhausted, ReasonWrongUser, ReasonAmountTooLow, "other"} {
		assert.NotEmpty(t, (&PromoError{Reason: reason}).Message())
	}
}
