package share

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/notify"
)

// Notices emitted by Service.
var (
	NoticePublished = notify.Notice{
		Title:       "Form published",
		Description: "Your form is now publicly accessible",
		Variant:     notify.VariantDefault,
	}
	NoticeUnpublished = notify.Notice{
		Title:       "Form unpublished",
		Description: "Your form is now private",
		Variant:     notify.VariantDefault,
	}
	NoticeLinkCopied = notify.Notice{
		Title:       "Link copied",
		Description: "Shareable link has been copied to clipboard",
		Variant:     notify.VariantDefault,
	}
)

// Option configures a Service.
type Option func(*Service)

// WithNotifier receives publish, unpublish and link notices.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithLogger attaches a zap logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides time.Now for UpdatedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// Service toggles form visibility and gates link sharing on it.
type Service struct {
	store    Store
	origin   string
	notifier notify.Notifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wraps store. origin is the scheme and host links are built on.
func NewService(store Store, origin string, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("share: store is required")
	}
	if strings.TrimSpace(origin) == "" {
		return nil, errors.New("share: origin is required")
	}
	s := &Service{
		store:    store,
		origin:   origin,
		notifier: notify.Discard,
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// State returns the sharing state of formID. Unknown forms are private.
func (s *Service) State(ctx context.Context, formID string) (State, error) {
	if strings.TrimSpace(formID) == "" {
		return State{}, errors.New("share: form id is required")
	}
	state, err := s.store.Get(ctx, formID)
	if errors.Is(err, ErrUnknownForm) {
		return State{FormID: formID}, nil
	}
	if err != nil {
		return State{}, err
	}
	return state, nil
}

// Publish makes formID public.
func (s *Service) Publish(ctx context.Context, formID string) (State, error) {
	return s.set(ctx, formID, true)
}

// Unpublish makes formID private.
func (s *Service) Unpublish(ctx context.Context, formID string) (State, error) {
	return s.set(ctx, formID, false)
}

// Toggle flips the visibility of formID.
func (s *Service) Toggle(ctx context.Context, formID string) (State, error) {
	current, err := s.State(ctx, formID)
	if err != nil {
		return State{}, err
	}
	return s.set(ctx, formID, !current.Public)
}

// ShareLink returns the public link of formID. Private forms get ErrNotPublic.
func (s *Service) ShareLink(ctx context.Context, formID string) (string, error) {
	state, err := s.State(ctx, formID)
	if err != nil {
		return "", err
	}
	if !state.Public {
		return "", fmt.Errorf("%w: %s", ErrNotPublic, formID)
	}
	link, err := Link(s.origin, formID)
	if err != nil {
		return "", err
	}
	s.notifier.Notify(NoticeLinkCopied)
	return link, nil
}

// Link returns the link of formID regardless of visibility, for display next
// to the public toggle.
func (s *Service) Link(formID string) (string, error) {
	return Link(s.origin, formID)
}

func (s *Service) set(ctx context.Context, formID string, public bool) (State, error) {
	if strings.TrimSpace(formID) == "" {
		return State{}, errors.New("share: form id is required")
	}
	state, err := s.store.SetPublic(ctx, formID, public, s.now())
	if err != nil {
		return State{}, err
	}

	s.logger.Debug("share state changed", zap.String("form", formID), zap.Bool("public", public))
	if public {
		s.notifier.Notify(NoticePublished)
	} else {
		s.notifier.Notify(NoticeUnpublished)
	}
	return state, nil
}
