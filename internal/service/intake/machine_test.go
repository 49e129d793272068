package intake

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GlebRadaev/orderdesk/internal/config"
	"github.com/GlebRadaev/orderdesk/internal/domain"
	"github.com/GlebRadaev/orderdesk/internal/service/promoservice"
	"github.com/GlebRadaev/orderdesk/pkg/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const userID int64 = 7

var now = time.Date(2030, time.January, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	machine   *Machine
	drafts    *MemoryDraftStore
	limiter   *MockLimiter
	promos    *MockPromos
	orders    *MockOrders
	referrals *MockReferrals
	info      *MockInfo
	events    *MockPublisher
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		drafts:    NewMemoryDraftStore(0),
		limiter:   NewMockLimiter(ctrl),
		promos:    NewMockPromos(ctrl),
		orders:    NewMockOrders(ctrl),
		referrals: NewMockReferrals(ctrl),
		info:      NewMockInfo(ctrl),
		events:    NewMockPublisher(ctrl),
	}
	f.machine = New(Deps{
		Drafts:    f.drafts,
		Limiter:   f.limiter,
		Promos:    f.promos,
		Orders:    f.orders,
		Referrals: f.referrals,
		Info:      f.info,
		Events:    f.events,
		Catalog:   config.DefaultCatalog(),
	})
	f.machine.now = func() time.Time { return now }
	f.drafts.now = f.machine.now
	return f
}

func (f *fixture) send(t *testing.T, text string) *Reply {
	t.Helper()
	reply, err := f.machine.Handle(context.Background(), Input{UserID: userID, Text: text})
	require.NoError(t, err)
	require.NotNil(t, reply)
	return reply
}

func (f *fixture) attach(t *testing.T, att domain.Attachment) *Reply {
	t.Helper()
	reply, err := f.machine.Handle(context.Background(), Input{UserID: userID, Attachment: &att})
	require.NoError(t, err)
	return reply
}

func (f *fixture) draft(t *testing.T) *Draft {
	t.Helper()
	d, err := f.drafts.Get(context.Background(), userID)
	require.NoError(t, err)
	return d
}

// fillUntil answers the form in order and stops once step is reached.
func (f *fixture) fillUntil(t *testing.T, step Step) *Reply {
	t.Helper()
	f.limiter.EXPECT().Allow(gomock.Any(), userID, config.ActionOrderCreation).Return(true, nil)

	answers := []struct {
		step Step
		text string
	}{
		{StepChoosingType, "Курсова робота"},
		{StepTopic, "Numerical methods"},
		{StepSubject, "Math"},
		{StepDeadline, "10.01.2030"},
		{StepVolume, "20 pages"},
		{StepRequirements, "-"},
		{StepFiles, "/done"},
	}

	reply := f.send(t, "/order")
	for _, a := range answers {
		if reply.Step == step {
			return reply
		}
		require.Equal(t, a.step, reply.Step)
		reply = f.send(t, a.text)
		require.NoError(t, reply.Err)
	}
	require.Equal(t, step, reply.Step)
	return reply
}

func pdf(name string) domain.Attachment {
	return domain.Attachment{FileID: "id-" + name, FileName: name, ContentType: "application/pdf", Size: 1024}
}

func TestHandleHappyPath(t *testing.T) {
	f := newFixture(t)

	reply := f.fillUntil(t, StepPromo)
	assert.Equal(t, int64(2500), reply.Price)

	reply = f.send(t, "-")
	assert.Equal(t, StepConfirming, reply.Step)
	assert.Contains(t, reply.Messages[len(reply.Messages)-1], "Total: 2500")

	var committed *domain.Order
	f.orders.EXPECT().Commit(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, order *domain.Order) error {
		committed = order
		order.ID = "123456782"
		return nil
	})

	reply = f.send(t, "/confirm")
	require.NoError(t, reply.Err)
	assert.Equal(t, StepIdle, reply.Step)
	assert.Equal(t, "123456782", reply.OrderID)
	assert.Equal(t, int64(2500), reply.Price)

	require.NotNil(t, committed)
	assert.Equal(t, "coursework", committed.OrderType)
	assert.Equal(t, "Курсова робота", committed.TypeLabel)
	assert.Equal(t, "Numerical methods", committed.Topic)
	assert.Equal(t, 20, committed.Volume)
	assert.Equal(t, domain.StatusDraft, committed.Status)
	assert.Equal(t, time.Date(2030, time.January, 10, 0, 0, 0, 0, time.UTC), committed.Deadline)

	assert.Nil(t, f.draft(t))
}

func TestHandleWithoutDraft(t *testing.T) {
	f := newFixture(t)

	reply := f.send(t, "hello")
	assert.Equal(t, StepIdle, reply.Step)
	assert.Nil(t, f.draft(t))

	reply = f.send(t, "/back")
	assert.Equal(t, StepIdle, reply.Step)

	reply = f.attach(t, pdf("a.pdf"))
	assert.Equal(t, StepIdle, reply.Step)
}

func TestOrderResumesDraft(t *testing.T) {
	f := newFixture(t)
	f.fillUntil(t, StepVolume)
	before := f.draft(t)

	reply := f.send(t, "/order")
	assert.Equal(t, StepVolume, reply.Step)
	assert.NoError(t, reply.Err)

	after := f.draft(t)
	assert.Equal(t, before.Topic, after.Topic)
	assert.Equal(t, before.DeadlineRaw, after.DeadlineRaw)
}

func TestRestart(t *testing.T) {
	tests := []struct {
		name      string
		allowed   bool
		wantStep  Step
		wantErr   error
		wantTopic string
	}{
		{
			name:      "Allowed restart clears the draft",
			allowed:   true,
			wantStep:  StepChoosingType,
			wantTopic: "",
		},
		{
			name:      "Rate limited restart keeps the draft",
			allowed:   false,
			wantStep:  StepSubject,
			wantErr:   ErrRateLimited,
			wantTopic: "Numerical methods",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.fillUntil(t, StepSubject)

			f.limiter.EXPECT().Allow(gomock.Any(), userID, config.ActionOrderCreation).Return(tt.allowed, nil)
			if !tt.allowed {
				f.limiter.EXPECT().Window(config.ActionOrderCreation).Return(time.Hour)
			}

			reply := f.send(t, "/restart")
			assert.Equal(t, tt.wantStep, reply.Step)
			if tt.wantErr != nil {
				assert.ErrorIs(t, reply.Err, tt.wantErr)
				assert.Equal(t, "rate_limited", ErrorCode(reply.Err))
			} else {
				assert.NoError(t, reply.Err)
			}
			assert.Equal(t, tt.wantTopic, f.draft(t).Topic)
		})
	}
}

func TestOrderRateLimitedWithoutDraft(t *testing.T) {
	f := newFixture(t)
	f.limiter.EXPECT().Allow(gomock.Any(), userID, config.ActionOrderCreation).Return(false, nil)
	f.limiter.EXPECT().Window(config.ActionOrderCreation).Return(time.Hour)

	reply := f.send(t, "/order")
	assert.Equal(t, StepIdle, reply.Step)
	assert.ErrorIs(t, reply.Err, ErrRateLimited)
	assert.Nil(t, f.draft(t))
}

func TestLimiterFailure(t *testing.T) {
	f := newFixture(t)
	f.limiter.EXPECT().Allow(gomock.Any(), userID, config.ActionOrderCreation).Return(false, errors.New("redis down"))

	_, err := f.machine.Handle(context.Background(), Input{UserID: userID, Text: "/order"})
	assert.Error(t, err)
}

func TestFieldValidation(t *testing.T) {
	tests := []struct {
		name string
		at   Step
		text string
	}{
		{name: "Unknown work type", at: StepChoosingType, text: "Thesis"},
		{name: "Short topic", at: StepTopic, text: "ab"},
		{name: "Topic made of markup", at: StepTopic, text: "<b></b>ab"},
		{name: "Short subject", at: StepSubject, text: "M"},
		{name: "Past deadline", at: StepDeadline, text: "31.12.2029"},
		{name: "Garbage deadline", at: StepDeadline, text: "tomorrow"},
		{name: "Volume without number", at: StepVolume, text: "many"},
		{name: "Zero volume", at: StepVolume, text: "0"},
		{name: "Text at files step", at: StepFiles, text: "here they are"},
		{name: "Malformed promo", at: StepPromo, text: "no spaces allowed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.fillUntil(t, tt.at)

			reply := f.send(t, tt.text)
			assert.Equal(t, tt.at, reply.Step)
			var validationErr *ValidationError
			require.ErrorAs(t, reply.Err, &validationErr)
			assert.Equal(t, tt.at, validationErr.Field)
			assert.Equal(t, "validation", ErrorCode(reply.Err))
			assert.Equal(t, tt.at, f.draft(t).Step)
		})
	}
}

func TestSanitizesText(t *testing.T) {
	f := newFixture(t)
	f.fillUntil(t, StepTopic)

	reply := f.send(t, "  <b>Linear</b> algebra  ")
	require.NoError(t, reply.Err)
	assert.Equal(t, "Linear algebra", f.draft(t).Topic)
}

func TestBackAndSkip(t *testing.T) {
	f := newFixture(t)
	f.fillUntil(t, StepSubject)

	reply := f.send(t, "/back")
	assert.Equal(t, StepTopic, reply.Step)
	assert.Equal(t, "Numerical methods", f.draft(t).Topic)

	reply = f.send(t, "/skip")
	assert.Equal(t, StepSubject, reply.Step)

	reply = f.send(t, "/skip")
	assert.Equal(t, StepSubject, reply.Step)
	assert.Error(t, reply.Err)

	f.send(t, "Math")
	reply = f.send(t, "/skip")
	assert.Equal(t, StepDeadline, reply.Step)
	assert.Error(t, reply.Err)
}

func TestBackAtFirstStep(t *testing.T) {
	f := newFixture(t)
	f.fillUntil(t, StepChoosingType)

	reply := f.send(t, "/back")
	assert.Equal(t, StepChoosingType, reply.Step)
}

func TestRequirementsOptional(t *testing.T) {
	f := newFixture(t)
	f.fillUntil(t, StepRequirements)

	reply := f.send(t, "/skip")
	assert.Equal(t, StepFiles, reply.Step)
	assert.Equal(t, "", f.draft(t).Requirements)
}

func TestAttachments(t *testing.T) {
	f := newFixture(t)
	f.fillUntil(t, StepFiles)

	for i := 0; i < 5; i++ {
		reply := f.attach(t, pdf("part.pdf"))
		require.NoError(t, reply.Err)
		assert.Equal(t, StepFiles, reply.Step)
	}

	reply := f.attach(t, pdf("extra.pdf"))
	var attErr *validate.AttachmentError
	require.ErrorAs(t, reply.Err, &attErr)
	assert.Equal(t, validate.ReasonTooMany, attErr.Reason)
	assert.Equal(t, "attachment_too_many", ErrorCode(reply.Err))
	assert.Len(t, f.draft(t).Attachments, 5)

	reply = f.send(t, "/done")
	assert.Equal(t, StepPromo, reply.Step)
}

func TestAttachmentRejected(t *testing.T) {
	tests := []struct {
		name   string
		att    domain.Attachment
		reason string
	}{
		{
			name:   "Unsupported type",
			att:    domain.Attachment{FileID: "1", FileName: "a.gif", ContentType: "image/gif", Size: 10},
			reason: validate.ReasonUnsupportedType,
		},
		{
			name:   "Too large",
			att:    domain.Attachment{FileID: "1", FileName: "a.pdf", ContentType: "application/pdf", Size: 21 * 1024 * 1024},
			reason: validate.ReasonTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.fillUntil(t, StepFiles)

			reply := f.attach(t, tt.att)
			var attErr *validate.AttachmentError
			require.ErrorAs(t, reply.Err, &attErr)
			assert.Equal(t, tt.reason, attErr.Reason)
			assert.Empty(t, f.draft(t).Attachments)
		})
	}
}

func TestAttachmentOutsideFilesStep(t *testing.T) {
	f := newFixture(t)
	f.fillUntil(t, StepTopic)

	reply := f.attach(t, pdf("a.pdf"))
	assert.Equal(t, StepTopic, reply.Step)
	assert.Error(t, reply.Err)
	assert.Empty(t, f.draft(t).Attachments)
}

func TestPromoStep(t *testing.T) {
	tests := []struct {
		name         string
		check        func(f *fixture)
		wantPrice    int64
		wantDiscount int64
		wantCode     string
		wantPromo    bool
	}{
		{
			name: "Valid percent code",
			check: func(f *fixture) {
				f.promos.EXPECT().Check(gomock.Any(), "SALE10", userID, int64(2500)).Return(&domain.PromoRecord{
					Code: "SALE10", DiscountType: domain.DiscountPercent, DiscountValue: 10,
				}, nil)
			},
			wantPrice:    2250,
			wantDiscount: 250,
			wantPromo:    true,
		},
		{
			name: "Expired code advances without discount",
			check: func(f *fixture) {
				f.promos.EXPECT().Check(gomock.Any(), "SALE10", userID, int64(2500)).
					Return(nil, &promoservice.PromoError{Code: "SALE10", Reason: promoservice.ReasonExpired})
			},
			wantPrice: 2500,
			wantCode:  "promo_expired",
		},
		{
			name: "Store failure advances without discount",
			check: func(f *fixture) {
				f.promos.EXPECT().Check(gomock.Any(), "SALE10", userID, int64(2500)).Return(nil, errors.New("db down"))
			},
			wantPrice: 2500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.fillUntil(t, StepPromo)
			tt.check(f)

			reply := f.send(t, "sale10")
			assert.Equal(t, StepConfirming, reply.Step)
			assert.Equal(t, tt.wantPrice, reply.Price)
			assert.Equal(t, tt.wantDiscount, reply.Discount)
			assert.Equal(t, tt.wantCode, ErrorCode(reply.Err))
			assert.Equal(t, tt.wantPromo, f.draft(t).Promo != nil)
		})
	}
}

func TestConfirmWithPromo(t *testing.T) {
	f := newFixture(t)
	f.fillUntil(t, StepPromo)

	promo := &domain.PromoRecord{Code: "SALE10", DiscountType: domain.DiscountPercent, DiscountValue: 10}
	f.promos.EXPECT().Check(gomock.Any(), "SALE10", userID, int64(2500)).Return(promo, nil).Times(2)
	f.send(t, "SALE10")

	var committed *domain.Order
	f.orders.EXPECT().Commit(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, order *domain.Order) error {
		committed = order
		order.ID = "100000009"
		return nil
	})

	reply := f.send(t, "yes")
	require.NoError(t, reply.Err)
	assert.Equal(t, "100000009", reply.OrderID)
	require.NotNil(t, committed)
	assert.Equal(t, "SALE10", committed.PromoCode)
	assert.Equal(t, int64(2250), committed.Price)
	assert.Equal(t, int64(250), committed.Discount)
}

func TestConfirmFailures(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(f *fixture)
		wantCode  string
		wantPromo bool
	}{
		{
			name: "Promo expired before confirmation",
			setup: func(f *fixture) {
				f.promos.EXPECT().Check(gomock.Any(), "SALE10", userID, int64(2500)).
					Return(nil, &promoservice.PromoError{Code: "SALE10", Reason: promoservice.ReasonExpired})
			},
			wantCode: "promo_expired",
		},
		{
			name: "Promo exhausted by a concurrent order",
			setup: func(f *fixture) {
				f.promos.EXPECT().Check(gomock.Any(), "SALE10", userID, int64(2500)).
					Return(&domain.PromoRecord{Code: "SALE10", DiscountType: domain.DiscountFixed, DiscountValue: 100}, nil)
				f.orders.EXPECT().Commit(gomock.Any(), gomock.Any()).Return(domain.ErrPromoExhausted)
			},
			wantCode: "promo_exhausted",
		},
		{
			name: "Database failure keeps the draft",
			setup: func(f *fixture) {
				f.promos.EXPECT().Check(gomock.Any(), "SALE10", userID, int64(2500)).
					Return(&domain.PromoRecord{Code: "SALE10", DiscountType: domain.DiscountFixed, DiscountValue: 100}, nil)
				f.orders.EXPECT().Commit(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))
			},
			wantCode:  "persistence",
			wantPromo: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.fillUntil(t, StepPromo)
			f.promos.EXPECT().Check(gomock.Any(), "SALE10", userID, int64(2500)).
				Return(&domain.PromoRecord{Code: "SALE10", DiscountType: domain.DiscountFixed, DiscountValue: 100}, nil)
			reply := f.send(t, "SALE10")
			require.Equal(t, int64(2400), reply.Price)

			tt.setup(f)
			reply = f.send(t, "/confirm")
			assert.Equal(t, StepConfirming, reply.Step)
			assert.Equal(t, tt.wantCode, ErrorCode(reply.Err))
			assert.Empty(t, reply.OrderID)

			d := f.draft(t)
			require.NotNil(t, d)
			assert.Equal(t, StepConfirming, d.Step)
			assert.Equal(t, tt.wantPromo, d.Promo != nil)
			if !tt.wantPromo {
				assert.Equal(t, int64(2500), d.Price)
				assert.Equal(t, int64(0), d.Discount)
			}
		})
	}
}

func TestConfirmBeforeSummary(t *testing.T) {
	f := newFixture(t)
	f.fillUntil(t, StepVolume)

	reply := f.send(t, "/confirm")
	assert.Equal(t, StepVolume, reply.Step)
	assert.Error(t, reply.Err)
}

func TestEdit(t *testing.T) {
	f := newFixture(t)
	f.fillUntil(t, StepPromo)
	f.send(t, "-")

	reply := f.send(t, "/edit volume")
	assert.Equal(t, StepEditingField, reply.Step)
	assert.Equal(t, StepVolume, f.draft(t).EditingField)

	reply = f.send(t, "abc")
	assert.Equal(t, StepEditingField, reply.Step)
	assert.Error(t, reply.Err)

	reply = f.send(t, "30")
	require.NoError(t, reply.Err)
	assert.Equal(t, StepConfirming, reply.Step)
	assert.Equal(t, int64(3000), reply.Price)

	reply = f.send(t, "/edit deadline")
	require.NoError(t, reply.Err)
	reply = f.send(t, "02.01.2030")
	assert.Equal(t, StepConfirming, reply.Step)
	assert.Equal(t, int64(4500), reply.Price)

	reply = f.send(t, "/edit everything")
	assert.Equal(t, StepConfirming, reply.Step)
	assert.Error(t, reply.Err)
}

func TestEditFilesCollectsAgain(t *testing.T) {
	f := newFixture(t)
	f.fillUntil(t, StepFiles)
	f.attach(t, pdf("a.pdf"))
	f.send(t, "/done")
	f.send(t, "-")

	reply := f.send(t, "/edit files")
	assert.Equal(t, StepEditingField, reply.Step)
	assert.Empty(t, f.draft(t).Attachments)

	f.attach(t, pdf("b.pdf"))
	reply = f.send(t, "/done")
	assert.Equal(t, StepConfirming, reply.Step)
	require.Len(t, f.draft(t).Attachments, 1)
	assert.Equal(t, "b.pdf", f.draft(t).Attachments[0].FileName)
}

func TestEditFilesKeepsAttachmentsUntilDone(t *testing.T) {
	tests := []struct {
		name   string
		leave  func(f *fixture, t *testing.T) *Reply
		expect []string
	}{
		{
			name:   "Back restores the previous files",
			leave:  func(f *fixture, t *testing.T) *Reply { return f.send(t, "/back") },
			expect: []string{"a.pdf"},
		},
		{
			name:   "Skip restores the previous files",
			leave:  func(f *fixture, t *testing.T) *Reply { return f.send(t, "/skip") },
			expect: []string{"a.pdf"},
		},
		{
			name: "Back after a new upload restores the previous files",
			leave: func(f *fixture, t *testing.T) *Reply {
				f.attach(t, pdf("b.pdf"))
				return f.send(t, "/back")
			},
			expect: []string{"a.pdf"},
		},
		{
			name: "Switching to another field restores the previous files",
			leave: func(f *fixture, t *testing.T) *Reply {
				f.send(t, "/edit topic")
				return f.send(t, "/back")
			},
			expect: []string{"a.pdf"},
		},
		{
			name: "Done keeps the new files",
			leave: func(f *fixture, t *testing.T) *Reply {
				f.attach(t, pdf("c.pdf"))
				return f.send(t, "/done")
			},
			expect: []string{"c.pdf"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.fillUntil(t, StepFiles)
			f.attach(t, pdf("a.pdf"))
			f.send(t, "/done")
			f.send(t, "-")
			f.send(t, "/edit files")

			reply := tt.leave(f, t)
			assert.Equal(t, StepConfirming, reply.Step)

			d := f.draft(t)
			names := make([]string, 0, len(d.Attachments))
			for _, a := range d.Attachments {
				names = append(names, a.FileName)
			}
			assert.Equal(t, tt.expect, names)
			assert.Empty(t, d.PrevAttachments)
		})
	}
}

func TestEditBackReturnsToSummary(t *testing.T) {
	f := newFixture(t)
	f.fillUntil(t, StepPromo)
	f.send(t, "-")
	f.send(t, "/edit topic")

	reply := f.send(t, "/back")
	assert.Equal(t, StepConfirming, reply.Step)
	assert.Equal(t, "Numerical methods", f.draft(t).Topic)
}

func TestEditOutsideSummary(t *testing.T) {
	f := newFixture(t)
	f.fillUntil(t, StepTopic)

	reply := f.send(t, "/edit topic")
	assert.Equal(t, StepTopic, reply.Step)
	assert.Error(t, reply.Err)
}

func TestInfoCommandsKeepDraft(t *testing.T) {
	f := newFixture(t)
	f.fillUntil(t, StepDeadline)

	f.info.EXPECT().Prices().Return("price list")
	reply := f.send(t, "/prices")
	assert.Equal(t, StepDeadline, reply.Step)
	assert.Equal(t, "price list", reply.Messages[0])

	f.info.EXPECT().Help(userID).Return("help text")
	reply = f.send(t, "/help")
	assert.Equal(t, "help text", reply.Messages[0])

	f.info.EXPECT().FAQ().Return("faq text")
	f.send(t, "/faq")

	f.info.EXPECT().Cabinet(gomock.Any(), userID).Return("", errors.New("db down"))
	reply = f.send(t, "/cabinet")
	assert.Equal(t, StepDeadline, reply.Step)
	assert.NoError(t, reply.Err)

	assert.Equal(t, StepDeadline, f.draft(t).Step)
	assert.Equal(t, "Math", f.draft(t).Subject)
}

func TestUnknownCommand(t *testing.T) {
	f := newFixture(t)
	f.fillUntil(t, StepTopic)

	reply := f.send(t, "/whatever")
	assert.Equal(t, StepTopic, reply.Step)
	assert.Error(t, reply.Err)
	assert.Equal(t, StepTopic, f.draft(t).Step)
}

func TestCancel(t *testing.T) {
	f := newFixture(t)
	f.fillUntil(t, StepSubject)

	reply := f.send(t, "/cancel")
	assert.Equal(t, StepIdle, reply.Step)
	assert.Nil(t, f.draft(t))

	reply = f.send(t, "/cancel")
	assert.Equal(t, StepIdle, reply.Step)
}

func TestStartRegistersReferral(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		prepare func(f *fixture)
	}{
		{
			name: "Referral link",
			text: "/start ref42",
			prepare: func(f *fixture) {
				f.referrals.EXPECT().Register(gomock.Any(), int64(42), userID).Return(true, nil)
			},
		},
		{
			name: "Referral store failure is not shown to the user",
			text: "/start ref42",
			prepare: func(f *fixture) {
				f.referrals.EXPECT().Register(gomock.Any(), int64(42), userID).Return(false, errors.New("db down"))
			},
		},
		{name: "Self referral", text: "/start ref7", prepare: func(f *fixture) {}},
		{name: "Malformed payload", text: "/start refabc", prepare: func(f *fixture) {}},
		{name: "No payload", text: "/start", prepare: func(f *fixture) {}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.prepare(f)

			reply := f.send(t, tt.text)
			assert.Equal(t, StepIdle, reply.Step)
			assert.NoError(t, reply.Err)
		})
	}
}

func TestStartClearsDraft(t *testing.T) {
	f := newFixture(t)
	f.fillUntil(t, StepSubject)

	f.send(t, "/start")
	assert.Nil(t, f.draft(t))
}

func TestDraftStoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	drafts := NewMockDraftStore(ctrl)
	drafts.EXPECT().Get(gomock.Any(), userID).Return(nil, errors.New("redis down"))

	m := New(Deps{Drafts: drafts, Catalog: config.DefaultCatalog()})
	_, err := m.Handle(context.Background(), Input{UserID: userID, Text: "Math"})
	assert.Error(t, err)
}

func TestConfirmRechecksDeadline(t *testing.T) {
	f := newFixture(t)
	f.fillUntil(t, StepPromo)
	f.send(t, "-")

	later := now.AddDate(0, 0, 14)
	f.machine.now = func() time.Time { return later }

	reply := f.send(t, "/confirm")
	assert.Equal(t, StepEditingField, reply.Step)
	assert.Equal(t, "validation", ErrorCode(reply.Err))
	assert.Contains(t, reply.Messages[0], "Deadline cannot be in the past")
	assert.Equal(t, StepDeadline, f.draft(t).EditingField)

	reply = f.send(t, "25.01.2030")
	require.NoError(t, reply.Err)
	assert.Equal(t, StepConfirming, reply.Step)

	f.orders.EXPECT().Commit(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, order *domain.Order) error {
		assert.Equal(t, time.Date(2030, time.January, 25, 0, 0, 0, 0, time.UTC), order.Deadline)
		order.ID = "123456782"
		return nil
	})
	reply = f.send(t, "/confirm")
	require.NoError(t, reply.Err)
	assert.Equal(t, "123456782", reply.OrderID)
}

func TestForwardUserMessages(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		withDraft   bool
		prepareMock func(f *fixture)
		wantCode    string
		wantStep    Step
	}{
		{
			name: "Support message is published",
			text: "/support my order is late",
			prepareMock: func(f *fixture) {
				f.limiter.EXPECT().Allow(gomock.Any(), userID, config.ActionSupportMessage).Return(true, nil)
				f.events.EXPECT().Publish(gomock.Any(), domain.EventSupportMessage, "7", domain.UserMessage{
					UserID: userID, Text: "my order is late", CreatedAt: now,
				}).Return(nil)
			},
			wantStep: StepIdle,
		},
		{
			name:      "Feedback keeps the draft",
			text:      "/feedback <b>great</b> service",
			withDraft: true,
			prepareMock: func(f *fixture) {
				f.limiter.EXPECT().Allow(gomock.Any(), userID, config.ActionFeedback).Return(true, nil)
				f.events.EXPECT().Publish(gomock.Any(), domain.EventFeedbackSubmitted, "7", domain.UserMessage{
					UserID: userID, Text: "great service", Step: string(StepSubject), CreatedAt: now,
				}).Return(nil)
			},
			wantStep: StepSubject,
		},
		{
			name: "Support denied by the limiter",
			text: "/support hello",
			prepareMock: func(f *fixture) {
				f.limiter.EXPECT().Allow(gomock.Any(), userID, config.ActionSupportMessage).Return(false, nil)
				f.limiter.EXPECT().Window(config.ActionSupportMessage).Return(10 * time.Minute)
			},
			wantCode: "rate_limited",
			wantStep: StepIdle,
		},
		{
			name:      "Feedback denied by the limiter keeps the draft",
			text:      "/feedback nice",
			withDraft: true,
			prepareMock: func(f *fixture) {
				f.limiter.EXPECT().Allow(gomock.Any(), userID, config.ActionFeedback).Return(false, nil)
				f.limiter.EXPECT().Window(config.ActionFeedback).Return(time.Hour)
			},
			wantCode: "rate_limited",
			wantStep: StepSubject,
		},
		{
			name:        "Empty message is not counted",
			text:        "/support",
			prepareMock: func(f *fixture) {},
			wantCode:    "validation",
			wantStep:    StepIdle,
		},
		{
			name: "Publish failure",
			text: "/feedback nice",
			prepareMock: func(f *fixture) {
				f.limiter.EXPECT().Allow(gomock.Any(), userID, config.ActionFeedback).Return(true, nil)
				f.events.EXPECT().Publish(gomock.Any(), domain.EventFeedbackSubmitted, "7", gomock.Any()).Return(errors.New("queue full"))
			},
			wantCode: "persistence",
			wantStep: StepIdle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.withDraft {
				f.fillUntil(t, StepSubject)
			}
			tt.prepareMock(f)

			reply := f.send(t, tt.text)
			assert.Equal(t, tt.wantCode, ErrorCode(reply.Err))
			assert.Equal(t, tt.wantStep, reply.Step)
			if tt.withDraft {
				d := f.draft(t)
				require.NotNil(t, d)
				assert.Equal(t, StepSubject, d.Step)
				assert.Equal(t, "Numerical methods", d.Topic)
			} else {
				assert.Nil(t, f.draft(t))
			}
		})
	}
}

func TestForwardLimiterFailure(t *testing.T) {
	f := newFixture(t)
	f.limiter.EXPECT().Allow(gomock.Any(), userID, config.ActionSupportMessage).Return(false, errors.New("redis down"))

	_, err := f.machine.Handle(context.Background(), Input{UserID: userID, Text: "/support hi"})
	assert.Error(t, err)
}
