package intake

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/GlebRadaev/orderdesk/internal/config"
	"github.com/GlebRadaev/orderdesk/internal/domain"
	"github.com/GlebRadaev/orderdesk/internal/service/pricing"
	"github.com/GlebRadaev/orderdesk/internal/service/promoservice"
	"github.com/GlebRadaev/orderdesk/pkg/logger"
	"github.com/GlebRadaev/orderdesk/pkg/validate"
	"go.uber.org/zap"
)

//go:generate mockgen -source=machine.go -destination=mock_machine.go -package=intake

type Limiter interface {
	Allow(ctx context.Context, userID int64, action string) (bool, error)
	Window(action string) time.Duration
}

type Promos interface {
	Check(ctx context.Context, code string, userID, amount int64) (*domain.PromoRecord, error)
}

type Orders interface {
	Commit(ctx context.Context, order *domain.Order) error
}

type Referrals interface {
	Register(ctx context.Context, referrerID, referredID int64) (bool, error)
}

type Info interface {
	Help(userID int64) string
	Prices() string
	FAQ() string
	Cabinet(ctx context.Context, userID int64) (string, error)
}

// Publisher forwards support messages and feedback to the staff.
type Publisher interface {
	Publish(ctx context.Context, eventType, key string, payload any) error
}

type Deps struct {
	Drafts    DraftStore
	Limiter   Limiter
	Promos    Promos
	Orders    Orders
	Referrals Referrals
	Info      Info
	Events    Publisher
	Catalog   *config.Catalog
}

// Machine walks users through the order form. Inputs of one user are handled
// one at a time.
type Machine struct {
	drafts    DraftStore
	limiter   Limiter
	promos    Promos
	orders    Orders
	referrals Referrals
	info      Info
	events    Publisher
	catalog   *config.Catalog
	calc      *pricing.Calculator
	locks     *userLocks
	now       func() time.Time
}

func New(deps Deps) *Machine {
	return &Machine{
		drafts:    deps.Drafts,
		limiter:   deps.Limiter,
		promos:    deps.Promos,
		orders:    deps.Orders,
		referrals: deps.Referrals,
		info:      deps.Info,
		events:    deps.Events,
		catalog:   deps.Catalog,
		calc:      pricing.New(deps.Catalog),
		locks:     newUserLocks(),
		now:       time.Now,
	}
}

type Input struct {
	UserID     int64
	Text       string
	Attachment *domain.Attachment
}

// Reply is what goes back to the user. Err is set when the input was
// rejected; the messages already explain why.
type Reply struct {
	Messages []string
	Choices  []string
	Step     Step
	Price    int64
	Discount int64
	OrderID  string
	Err      error
}

func (r *Reply) say(messages ...string) {
	r.Messages = append(r.Messages, messages...)
}

// Handle processes one input. The returned error is reserved for failures of
// the draft store or the rate limiter.
func (m *Machine) Handle(ctx context.Context, in Input) (*Reply, error) {
	unlock := m.locks.Lock(in.UserID)
	defer unlock()

	draft, err := m.drafts.Get(ctx, in.UserID)
	if err != nil {
		logger.ForUser(in.UserID).Error("can't load draft", zap.Error(err))
		return nil, err
	}

	if in.Attachment != nil {
		return m.attach(ctx, draft, *in.Attachment)
	}

	input := validate.Classify(in.Text)
	if input.IsCommand() {
		return m.command(ctx, in.UserID, draft, input)
	}
	if draft == nil {
		return idle("Send /order to place an order or /help to see what I can do."), nil
	}
	return m.field(ctx, draft, input.Text)
}

func (m *Machine) command(ctx context.Context, userID int64, draft *Draft, input validate.Input) (*Reply, error) {
	switch input.Command {
	case "order":
		if draft != nil {
			return m.prompt(draft, "Let's continue your order."), nil
		}
		return m.begin(ctx, userID, nil)
	case "restart":
		return m.begin(ctx, userID, draft)
	case "start":
		return m.start(ctx, userID, draft, input.Arg(0))
	case "cancel":
		return m.cancel(ctx, userID, draft)
	case "help", "prices", "faq", "cabinet":
		return m.showInfo(ctx, userID, draft, input.Command), nil
	case "support", "feedback":
		return m.forward(ctx, userID, draft, input.Command, input.Rest())
	}

	if draft == nil {
		return idle("There is no order in progress. Send /order to start one."), nil
	}

	switch input.Command {
	case "back":
		return m.back(ctx, draft)
	case "skip":
		return m.skip(ctx, draft)
	case "done":
		return m.done(ctx, draft)
	case "confirm":
		if draft.Step != StepConfirming {
			return m.reject(draft, &ValidationError{Field: draft.Step, Reason: "Finish this step before confirming"}), nil
		}
		return m.commit(ctx, draft)
	case "edit":
		return m.edit(ctx, draft, input.Arg(0))
	default:
		return m.reject(draft, &ValidationError{Field: draft.Step, Reason: "Unknown command " + input.Text}), nil
	}
}

// begin replaces any draft with a new one if the user is under the order
// creation limit. A denied restart keeps the old draft.
func (m *Machine) begin(ctx context.Context, userID int64, existing *Draft) (*Reply, error) {
	ok, err := m.limiter.Allow(ctx, userID, config.ActionOrderCreation)
	if err != nil {
		return nil, err
	}
	if !ok {
		reply := &Reply{Step: StepIdle, Err: ErrRateLimited}
		if existing != nil {
			reply.Step = existing.Step
		}
		reply.say(fmt.Sprintf("Too many new orders. Please try again in %s.", m.limiter.Window(config.ActionOrderCreation)))
		return reply, nil
	}

	draft := NewDraft(userID, m.now())
	if err := m.drafts.Save(ctx, draft); err != nil {
		return nil, err
	}
	logger.ForUser(userID).Info("order draft started", zap.Bool("restart", existing != nil))
	return m.prompt(draft), nil
}

func (m *Machine) start(ctx context.Context, userID int64, draft *Draft, payload string) (*Reply, error) {
	if draft != nil {
		if err := m.drafts.Delete(ctx, userID); err != nil {
			return nil, err
		}
	}
	if referrerID, ok := parseReferral(payload); ok && referrerID != userID && m.referrals != nil {
		if _, err := m.referrals.Register(ctx, referrerID, userID); err != nil {
			logger.ForUser(userID).Error("can't register referral", zap.Error(err))
		}
	}
	reply := idle("Welcome! I will help you order a paper, a lab or any other academic work.",
		"Send /order to start, /prices to see the price list or /help for all commands.")
	reply.Choices = []string{"/order", "/prices", "/faq", "/help"}
	return reply, nil
}

func parseReferral(payload string) (int64, bool) {
	if !strings.HasPrefix(payload, "ref") {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(payload, "ref"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (m *Machine) cancel(ctx context.Context, userID int64, draft *Draft) (*Reply, error) {
	if draft == nil {
		return idle("There is no order in progress."), nil
	}
	if err := m.drafts.Delete(ctx, userID); err != nil {
		return nil, err
	}
	logger.ForUser(userID).Info("order draft cancelled", zap.String("step", string(draft.Step)))
	reply := idle("Order cancelled. Send /order whenever you want to start again.")
	reply.Choices = []string{"/order"}
	return reply, nil
}

// showInfo answers informational commands and repeats the current prompt.
func (m *Machine) showInfo(ctx context.Context, userID int64, draft *Draft, name string) *Reply {
	var text string
	switch name {
	case "help":
		text = m.info.Help(userID)
	case "prices":
		text = m.info.Prices()
	case "faq":
		text = m.info.FAQ()
	case "cabinet":
		var err error
		if text, err = m.info.Cabinet(ctx, userID); err != nil {
			logger.ForUser(userID).Error("can't build cabinet", zap.Error(err))
			text = "Your orders are unavailable right now. Please try again later."
		}
	}
	return m.current(draft, text)
}

const maxMessageLength = 2000

type userMessageKind struct {
	action string
	event  string
	thanks string
}

var userMessageKinds = map[string]userMessageKind{
	"support": {
		action: config.ActionSupportMessage,
		event:  domain.EventSupportMessage,
		thanks: "Your message was sent to the support team. We will answer you soon.",
	},
	"feedback": {
		action: config.ActionFeedback,
		event:  domain.EventFeedbackSubmitted,
		thanks: "Thank you for your feedback!",
	},
}

// forward passes a support message or feedback on to the staff. The draft is
// left as it is.
func (m *Machine) forward(ctx context.Context, userID int64, draft *Draft, command, text string) (*Reply, error) {
	kind := userMessageKinds[command]
	text = validate.Sanitize(text, maxMessageLength)
	if text == "" {
		reply := m.current(draft, fmt.Sprintf("Write your message after the command, for example /%s my order is late.", command))
		reply.Err = &ValidationError{Field: reply.Step, Reason: "Message text is required"}
		return reply, nil
	}

	ok, err := m.limiter.Allow(ctx, userID, kind.action)
	if err != nil {
		return nil, err
	}
	if !ok {
		reply := m.current(draft, fmt.Sprintf("Too many messages. Please try again in %s.", m.limiter.Window(kind.action)))
		reply.Err = ErrRateLimited
		return reply, nil
	}

	msg := domain.UserMessage{UserID: userID, Text: text, CreatedAt: m.now()}
	if draft != nil {
		msg.Step = string(draft.Step)
	}
	if err := m.events.Publish(ctx, kind.event, strconv.FormatInt(userID, 10), msg); err != nil {
		logger.ForUser(userID).Error("can't forward message", zap.String("kind", command), zap.Error(err))
		reply := m.current(draft, "Your message could not be delivered. Please try again later.")
		reply.Err = fmt.Errorf("%w: %w", ErrPersistence, err)
		return reply, nil
	}
	logger.ForUser(userID).Info("message forwarded", zap.String("kind", command))
	return m.current(draft, kind.thanks), nil
}

// current answers with notes and, when an order is in progress, repeats its
// prompt.
func (m *Machine) current(draft *Draft, notes ...string) *Reply {
	if draft == nil {
		return idle(notes...)
	}
	return m.prompt(draft, notes...)
}

func (m *Machine) field(ctx context.Context, d *Draft, text string) (*Reply, error) {
	step := d.Step
	if step == StepEditingField {
		step = d.EditingField
	}

	switch step {
	case StepFiles:
		if text == "-" {
			return m.advance(ctx, d)
		}
		return m.reject(d, &ValidationError{Field: StepFiles, Reason: "Send a file, or /done to continue"}), nil
	case StepPromo:
		return m.promo(ctx, d, text)
	case StepConfirming:
		if isYes(text) {
			return m.commit(ctx, d)
		}
		return m.prompt(d, "Send /confirm to place the order, /edit <field> to change something or /cancel."), nil
	}

	if err := m.set(d, step, text); err != nil {
		return m.reject(d, err), nil
	}
	return m.advance(ctx, d)
}

// set validates text for step and stores it in the draft.
func (m *Machine) set(d *Draft, step Step, text string) error {
	invalid := func(reason string) error {
		return &ValidationError{Field: step, Reason: reason}
	}

	switch step {
	case StepChoosingType:
		wt, ok := m.catalog.FindWorkType(text)
		if !ok {
			return invalid("Choose one of the listed work types")
		}
		d.OrderType = wt.Code
	case StepTopic:
		clean := validate.Sanitize(text, 0)
		if res := validate.Topic(clean); !res.OK() {
			return invalid(res.Reason)
		}
		d.Topic = clean
	case StepSubject:
		clean := validate.Sanitize(text, 0)
		if res := validate.Subject(clean); !res.OK() {
			return invalid(res.Reason)
		}
		d.Subject = clean
	case StepDeadline:
		deadline, res := validate.Deadline(text, m.now())
		if !res.OK() {
			return invalid(res.Reason)
		}
		d.DeadlineRaw = strings.TrimSpace(text)
		d.Deadline = deadline
	case StepVolume:
		volume, res := validate.Volume(text)
		if !res.OK() {
			return invalid(res.Reason)
		}
		d.VolumeRaw = strings.TrimSpace(text)
		d.Volume = volume
	case StepRequirements:
		clean := ""
		if text != "-" {
			clean = validate.Sanitize(text, 0)
		}
		if res := validate.Requirements(clean); !res.OK() {
			return invalid(res.Reason)
		}
		d.Requirements = clean
	default:
		return invalid("Nothing to enter at this step")
	}
	return nil
}

// advance reprices the draft and moves it forward. An edited field returns
// to the confirmation step.
func (m *Machine) advance(ctx context.Context, d *Draft, notes ...string) (*Reply, error) {
	m.reprice(d)
	if d.Step == StepEditingField {
		leaveEdit(d, true)
	} else {
		d.Step = d.Step.Next()
	}
	if err := m.drafts.Save(ctx, d); err != nil {
		return nil, err
	}
	return m.prompt(d, notes...), nil
}

func (m *Machine) back(ctx context.Context, d *Draft) (*Reply, error) {
	if d.Step == StepEditingField {
		leaveEdit(d, false)
	} else {
		d.Step = d.Step.Prev()
	}
	if err := m.drafts.Save(ctx, d); err != nil {
		return nil, err
	}
	return m.prompt(d), nil
}

// skip keeps the stored value of the current step and moves on.
func (m *Machine) skip(ctx context.Context, d *Draft) (*Reply, error) {
	switch {
	case d.Step == StepEditingField:
		return m.back(ctx, d)
	case d.Step == StepConfirming:
		return m.prompt(d, "Nothing to skip here."), nil
	case !d.Has(d.Step):
		return m.reject(d, &ValidationError{Field: d.Step, Reason: "This step is required"}), nil
	}
	return m.advance(ctx, d)
}

func (m *Machine) done(ctx context.Context, d *Draft) (*Reply, error) {
	if d.Step == StepFiles || (d.Step == StepEditingField && d.EditingField == StepFiles) {
		return m.advance(ctx, d)
	}
	return m.reject(d, &ValidationError{Field: d.Step, Reason: "Nothing to finish at this step"}), nil
}

var editable = map[string]Step{
	"type":         StepChoosingType,
	"topic":        StepTopic,
	"subject":      StepSubject,
	"deadline":     StepDeadline,
	"volume":       StepVolume,
	"requirements": StepRequirements,
	"files":        StepFiles,
	"promo":        StepPromo,
}

func (m *Machine) edit(ctx context.Context, d *Draft, name string) (*Reply, error) {
	if d.Step != StepConfirming && d.Step != StepEditingField {
		return m.reject(d, &ValidationError{Field: d.Step, Reason: "Fields can be edited at the confirmation step"}), nil
	}
	field, ok := editable[strings.ToLower(name)]
	if !ok {
		field = Step(strings.ToLower(name))
		if !field.Editable() {
			return m.reject(d, &ValidationError{
				Field:  StepConfirming,
				Reason: "Choose a field to edit: type, topic, subject, deadline, volume, requirements, files, promo",
			}), nil
		}
	}

	if d.Step == StepEditingField {
		leaveEdit(d, false)
	}
	d.Step = StepEditingField
	d.EditingField = field
	if field == StepFiles {
		d.PrevAttachments = d.Attachments
		d.Attachments = nil
	}
	if err := m.drafts.Save(ctx, d); err != nil {
		return nil, err
	}
	return m.prompt(d), nil
}

// leaveEdit returns the draft to the confirmation step. A files edit left
// without /done gets its previous attachments back.
func leaveEdit(d *Draft, finished bool) {
	if d.EditingField == StepFiles && !finished {
		d.Attachments = d.PrevAttachments
	}
	d.PrevAttachments = nil
	d.Step = StepConfirming
	d.EditingField = ""
}

func (m *Machine) attach(ctx context.Context, d *Draft, att domain.Attachment) (*Reply, error) {
	if d == nil {
		return idle("Send /order first, files are attached to an order."), nil
	}
	if d.Step != StepFiles && !(d.Step == StepEditingField && d.EditingField == StepFiles) {
		return m.reject(d, &ValidationError{Field: d.Step, Reason: "Files are accepted at the files step"}), nil
	}

	limits := validate.AttachmentLimits{
		MaxCount:     m.catalog.Files.MaxCount,
		MaxSizeBytes: m.catalog.Files.MaxSizeBytes,
		AllowedTypes: m.catalog.Files.AllowedTypes,
	}
	if err := validate.Attachment(limits, len(d.Attachments), att.Size, att.ContentType); err != nil {
		return m.reject(d, err), nil
	}

	d.Attachments = append(d.Attachments, att)
	if err := m.drafts.Save(ctx, d); err != nil {
		return nil, err
	}
	return m.prompt(d, fmt.Sprintf("File %s received (%d of %d).", att.FileName, len(d.Attachments), limits.MaxCount)), nil
}

// promo never blocks the order: a code that fails validation is dropped and
// the user goes on to confirmation without a discount.
func (m *Machine) promo(ctx context.Context, d *Draft, text string) (*Reply, error) {
	code := strings.ToUpper(strings.TrimSpace(text))
	if code == "-" || code == "" {
		d.Promo = nil
		return m.advance(ctx, d)
	}
	if res := validate.PromoCode(code); !res.OK() {
		return m.reject(d, &ValidationError{Field: StepPromo, Reason: res.Reason}), nil
	}

	promo, err := m.promos.Check(ctx, code, d.UserID, m.quote(d, nil).Price)
	if err != nil {
		d.Promo = nil
		var promoErr *promoservice.PromoError
		if !errors.As(err, &promoErr) {
			reply, saveErr := m.advance(ctx, d, "Promo codes can't be checked right now, continuing without a discount.")
			if saveErr != nil {
				return nil, saveErr
			}
			return reply, nil
		}
		reply, saveErr := m.advance(ctx, d, promoErr.Message()+". Continuing without a discount.")
		if saveErr != nil {
			return nil, saveErr
		}
		reply.Err = promoErr
		return reply, nil
	}

	d.Promo = promo
	return m.advance(ctx, d, "Promo code "+promo.Code+" applied.")
}

// commit re-checks the deadline and the promo, then persists the order.
// Any failure leaves the user in Confirming with the draft intact.
func (m *Machine) commit(ctx context.Context, d *Draft) (*Reply, error) {
	if _, res := validate.Deadline(d.DeadlineRaw, m.now()); !res.OK() {
		d.Step = StepEditingField
		d.EditingField = StepDeadline
		if err := m.drafts.Save(ctx, d); err != nil {
			return nil, err
		}
		return m.reject(d, &ValidationError{Field: StepDeadline, Reason: res.Reason + ". Please enter a new deadline"}), nil
	}
	if d.Promo != nil {
		fresh, err := m.promos.Check(ctx, d.Promo.Code, d.UserID, m.quote(d, nil).Price)
		if err != nil {
			var promoErr *promoservice.PromoError
			if errors.As(err, &promoErr) {
				return m.dropPromo(ctx, d, promoErr)
			}
			return m.commitFailed(ctx, d, err)
		}
		d.Promo = fresh
	}
	m.reprice(d)

	wt, _ := m.catalog.WorkType(d.OrderType)
	order := d.Order(wt.Label)
	if err := m.orders.Commit(ctx, order); err != nil {
		if errors.Is(err, domain.ErrPromoExhausted) && d.Promo != nil {
			return m.dropPromo(ctx, d, &promoservice.PromoError{Code: d.Promo.Code, Reason: promoservice.ReasonExhausted})
		}
		return m.commitFailed(ctx, d, err)
	}

	if err := m.drafts.Delete(ctx, d.UserID); err != nil {
		logger.ForUser(d.UserID).Error("can't delete committed draft", zap.Error(err))
	}
	logger.ForUser(d.UserID).Info("order placed", zap.String("order_id", order.ID), zap.Int64("price", order.Price))

	reply := &Reply{
		Step:     StepIdle,
		Price:    order.Price,
		Discount: order.Discount,
		OrderID:  order.ID,
		Choices:  []string{"/cabinet", "/order"},
	}
	reply.say(fmt.Sprintf("Order #%s is placed, total %d. A manager will contact you soon.", order.ID, order.Price))
	return reply, nil
}

func (m *Machine) dropPromo(ctx context.Context, d *Draft, promoErr *promoservice.PromoError) (*Reply, error) {
	d.Promo = nil
	m.reprice(d)
	if err := m.drafts.Save(ctx, d); err != nil {
		return nil, err
	}
	reply := m.prompt(d, promoErr.Message()+". The total was updated without the discount.")
	reply.Err = promoErr
	return reply, nil
}

func (m *Machine) commitFailed(ctx context.Context, d *Draft, err error) (*Reply, error) {
	logger.ForUser(d.UserID).Error("can't commit order", zap.Error(err))
	if saveErr := m.drafts.Save(ctx, d); saveErr != nil {
		return nil, saveErr
	}
	reply := m.prompt(d, "We could not save your order. Please send /confirm again in a moment.")
	reply.Err = fmt.Errorf("%w: %w", ErrPersistence, err)
	return reply, nil
}

// reprice derives the price from the current draft fields.
func (m *Machine) reprice(d *Draft) {
	if d.OrderType == "" {
		d.Price, d.Discount = 0, 0
		return
	}
	q := m.quote(d, d.Promo)
	d.Price = q.Final()
	d.Discount = q.Discount
}

func (m *Machine) quote(d *Draft, promo *domain.PromoRecord) pricing.Quote {
	return m.calc.Quote(d.OrderType, d.VolumeRaw, d.DeadlineRaw, promo, m.now())
}

func (m *Machine) reject(d *Draft, err error) *Reply {
	reply := m.prompt(d, userMessage(err))
	reply.Err = err
	return reply
}

func userMessage(err error) string {
	var (
		validationErr *ValidationError
		attachmentErr *validate.AttachmentError
		promoErr      *promoservice.PromoError
	)
	switch {
	case errors.As(err, &validationErr):
		return validationErr.Reason
	case errors.As(err, &attachmentErr):
		return "File rejected: " + attachmentErr.Detail
	case errors.As(err, &promoErr):
		return promoErr.Message()
	default:
		return "Something went wrong"
	}
}

func idle(messages ...string) *Reply {
	return &Reply{Messages: messages, Step: StepIdle}
}

func isYes(text string) bool {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "yes", "y", "+", "confirm", "так", "да":
		return true
	}
	return false
}
