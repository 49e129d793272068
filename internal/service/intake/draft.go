package intake

import (
	"context"
	"sync"
	"time"

	"github.com/GlebRadaev/orderdesk/internal/domain"
)

type Step string

const (
	StepIdle         Step = "idle"
	StepChoosingType Step = "choosing_type"
	StepTopic        Step = "topic"
	StepSubject      Step = "subject"
	StepDeadline     Step = "deadline"
	StepVolume       Step = "volume"
	StepRequirements Step = "requirements"
	StepFiles        Step = "files"
	StepPromo        Step = "promo"
	StepConfirming   Step = "confirming"
	StepEditingField Step = "editing_field"
)

var flow = []Step{
	StepChoosingType,
	StepTopic,
	StepSubject,
	StepDeadline,
	StepVolume,
	StepRequirements,
	StepFiles,
	StepPromo,
	StepConfirming,
}

func (s Step) index() int {
	for i, step := range flow {
		if step == s {
			return i
		}
	}
	return -1
}

// Next is the step after s; Confirming is the last one.
func (s Step) Next() Step {
	i := s.index()
	if i < 0 || i == len(flow)-1 {
		return s
	}
	return flow[i+1]
}

// Prev is the step before s; ChoosingType is the first one.
func (s Step) Prev() Step {
	i := s.index()
	if i <= 0 {
		return s
	}
	return flow[i-1]
}

// Editable reports whether s can be amended from the confirmation step.
func (s Step) Editable() bool {
	i := s.index()
	return i >= 0 && s != StepConfirming
}

// Draft is the order being collected for one user.
type Draft struct {
	UserID          int64               `json:"user_id"`
	Step            Step                `json:"step"`
	EditingField    Step                `json:"editing_field,omitempty"`
	OrderType       string              `json:"order_type,omitempty"`
	Topic           string              `json:"topic,omitempty"`
	Subject         string              `json:"subject,omitempty"`
	DeadlineRaw     string              `json:"deadline_raw,omitempty"`
	Deadline        time.Time           `json:"deadline,omitempty"`
	VolumeRaw       string              `json:"volume_raw,omitempty"`
	Volume          int                 `json:"volume,omitempty"`
	Requirements    string              `json:"requirements,omitempty"`
	Attachments     []domain.Attachment `json:"attachments,omitempty"`
	// PrevAttachments holds the list replaced by /edit files until the edit
	// is finished with /done.
	PrevAttachments []domain.Attachment `json:"prev_attachments,omitempty"`
	Promo           *domain.PromoRecord `json:"promo,omitempty"`
	Price           int64               `json:"price"`
	Discount        int64               `json:"discount"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

func NewDraft(userID int64, now time.Time) *Draft {
	return &Draft{
		UserID:    userID,
		Step:      StepChoosingType,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Has reports whether the value for step is stored. Optional steps always
// count as filled.
func (d *Draft) Has(step Step) bool {
	switch step {
	case StepChoosingType:
		return d.OrderType != ""
	case StepTopic:
		return d.Topic != ""
	case StepSubject:
		return d.Subject != ""
	case StepDeadline:
		return !d.Deadline.IsZero()
	case StepVolume:
		return d.Volume > 0
	case StepRequirements, StepFiles, StepPromo:
		return true
	default:
		return false
	}
}

// Order snapshots the draft. The id is assigned by the repository.
func (d *Draft) Order(typeLabel string) *domain.Order {
	order := &domain.Order{
		UserID:       d.UserID,
		OrderType:    d.OrderType,
		TypeLabel:    typeLabel,
		Topic:        d.Topic,
		Subject:      d.Subject,
		Deadline:     d.Deadline,
		Volume:       d.Volume,
		Requirements: d.Requirements,
		Attachments:  append([]domain.Attachment(nil), d.Attachments...),
		Price:        d.Price,
		Discount:     d.Discount,
		Status:       domain.StatusDraft,
	}
	if d.Promo != nil {
		order.PromoCode = d.Promo.Code
	}
	return order
}

//go:generate mockgen -source=draft.go -destination=mock_draft.go -package=intake

type DraftStore interface {
	// Get returns nil when the user has no live draft.
	Get(ctx context.Context, userID int64) (*Draft, error)
	Save(ctx context.Context, draft *Draft) error
	Delete(ctx context.Context, userID int64) error
}

// MemoryDraftStore keeps drafts in process. A draft untouched for longer than
// ttl is dropped on read; ttl 0 keeps drafts forever.
type MemoryDraftStore struct {
	mu     sync.Mutex
	drafts map[int64]Draft
	ttl    time.Duration
	now    func() time.Time
}

func NewMemoryDraftStore(ttl time.Duration) *MemoryDraftStore {
	return &MemoryDraftStore{
		drafts: make(map[int64]Draft),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *MemoryDraftStore) Get(_ context.Context, userID int64) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[userID]
	if !ok {
		return nil, nil
	}
	if s.ttl > 0 && s.now().Sub(d.UpdatedAt) > s.ttl {
		delete(s.drafts, userID)
		return nil, nil
	}
	d.Attachments = append([]domain.Attachment(nil), d.Attachments...)
	d.PrevAttachments = append([]domain.Attachment(nil), d.PrevAttachments...)
	return &d, nil
}

func (s *MemoryDraftStore) Save(_ context.Context, draft *Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := *draft
	d.UpdatedAt = s.now()
	d.Attachments = append([]domain.Attachment(nil), draft.Attachments...)
	d.PrevAttachments = append([]domain.Attachment(nil), draft.PrevAttachments...)
	s.drafts[draft.UserID] = d
	return nil
}

func (s *MemoryDraftStore) Delete(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.drafts, userID)
	return nil
}

// Sweep drops expired drafts and returns how many were removed.
func (s *MemoryDraftStore) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now, removed := s.now(), 0
	for userID, d := range s.drafts {
		if now.Sub(d.UpdatedAt) > s.ttl {
			delete(s.drafts, userID)
			removed++
		}
	}
	return removed
}
