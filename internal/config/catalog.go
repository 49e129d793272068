package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	ActionOrderCreation  = "order_creation"
	ActionSupportMessage = "support_message"
	ActionFeedback       = "feedback"

	FallbackOrderType = "other"
)

var ErrInvalidCatalog = errors.New("invalid catalog")

// WorkType is one row of the price table. Exactly one of PerPage and PerWork
// is set.
type WorkType struct {
	Code    string `yaml:"code"`
	Label   string `yaml:"label"`
	Base    int64  `yaml:"base"`
	PerPage int64  `yaml:"per_page"`
	PerWork int64  `yaml:"per_work"`
}

func (w WorkType) UnitRate() int64 {
	if w.PerPage > 0 {
		return w.PerPage
	}
	return w.PerWork
}

type RateLimit struct {
	Limit  int           `yaml:"limit"`
	Window time.Duration `yaml:"window"`
}

type FileLimits struct {
	MaxCount     int      `yaml:"max_count"`
	MaxSizeBytes int64    `yaml:"max_size_bytes"`
	AllowedTypes []string `yaml:"allowed_content_types"`
}

type Referral struct {
	BonusPercent   int64 `yaml:"bonus_percent"`
	MinOrderAmount int64 `yaml:"min_order_amount"`
}

// Catalog is read once at startup and shared read-only.
type Catalog struct {
	WorkTypes  []WorkType           `yaml:"work_types"`
	RateLimits map[string]RateLimit `yaml:"rate_limits"`
	Files      FileLimits           `yaml:"files"`
	Referral   Referral             `yaml:"referral"`
}

func DefaultCatalog() *Catalog {
	return &Catalog{
		WorkTypes: []WorkType{
			{Code: "coursework", Label: "Курсова робота", Base: 1500, PerPage: 50},
			{Code: "labwork", Label: "Лабораторна робота", Base: 200, PerWork: 30},
			{Code: "essay", Label: "Реферат", Base: 300, PerPage: 15},
			{Code: "testwork", Label: "Контрольна робота", Base: 250, PerWork: 25},
			{Code: "other", Label: "Інше", Base: 400, PerPage: 20},
		},
		RateLimits: map[string]RateLimit{
			ActionOrderCreation:  {Limit: 5, Window: time.Hour},
			ActionSupportMessage: {Limit: 10, Window: 10 * time.Minute},
			ActionFeedback:       {Limit: 3, Window: time.Hour},
		},
		Files: FileLimits{
			MaxCount:     5,
			MaxSizeBytes: 20 * 1024 * 1024,
			AllowedTypes: []string{
				"application/pdf",
				"application/msword",
				"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
				"application/vnd.ms-excel",
				"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
				"application/vnd.ms-powerpoint",
				"application/vnd.openxmlformats-officedocument.presentationml.presentation",
				"text/plain",
				"image/jpeg",
				"image/png",
				"application/zip",
				"application/x-rar-compressed",
			},
		},
		Referral: Referral{BonusPercent: 5, MinOrderAmount: 500},
	}
}

func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	catalog := DefaultCatalog()
	if err := yaml.Unmarshal(data, catalog); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return catalog, nil
}

func (c *Catalog) Validate() error {
	if len(c.WorkTypes) == 0 {
		return fmt.Errorf("%w: empty price table", ErrInvalidCatalog)
	}
	seen := make(map[string]bool, len(c.WorkTypes))
	for _, w := range c.WorkTypes {
		if w.Code == "" || seen[w.Code] {
			return fmt.Errorf("%w: duplicate or empty work type code %q", ErrInvalidCatalog, w.Code)
		}
		seen[w.Code] = true
		if (w.PerPage > 0) == (w.PerWork > 0) {
			return fmt.Errorf("%w: work type %q needs exactly one of per_page and per_work", ErrInvalidCatalog, w.Code)
		}
	}
	for action, rl := range c.RateLimits {
		if rl.Limit < 1 || rl.Window <= 0 {
			return fmt.Errorf("%w: rate limit %q", ErrInvalidCatalog, action)
		}
	}
	if c.Files.MaxCount < 0 || c.Files.MaxSizeBytes <= 0 {
		return fmt.Errorf("%w: file limits", ErrInvalidCatalog)
	}
	return nil
}

// WorkType falls back to the "other" row for unknown codes.
func (c *Catalog) WorkType(code string) (WorkType, bool) {
	var fallback WorkType
	for _, w := range c.WorkTypes {
		if w.Code == code {
			return w, true
		}
		if w.Code == FallbackOrderType {
			fallback = w
		}
	}
	return fallback, false
}

// FindWorkType matches user input against codes and labels.
func (c *Catalog) FindWorkType(input string) (WorkType, bool) {
	for _, w := range c.WorkTypes {
		if w.Code == input || w.Label == input {
			return w, true
		}
	}
	return WorkType{}, false
}
