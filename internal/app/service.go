package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/pscheid92/hxdemo/internal/domain"
	"github.com/pscheid92/hxdemo/internal/waveform"
)

const (
	DefaultPageSize    = 10
	DefaultPagingDelay = 1 * time.Second
)

type plotRenderer interface {
	Render(ctx context.Context, p waveform.Params) (string, error)
}

type Options struct {
	PageSize    int
	PagingDelay time.Duration
}

// Service is the application layer. Handlers reach state only through it.
type Service struct {
	sessions domain.SessionRepository
	items    domain.ItemRepository
	plots    plotRenderer
	clock    clockwork.Clock

	pageSize    int
	pagingDelay time.Duration
}

func NewService(sessions domain.SessionRepository, items domain.ItemRepository, plots plotRenderer, clock clockwork.Clock, opts Options) *Service {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	return &Service{
		sessions:    sessions,
		items:       items,
		plots:       plots,
		clock:       clock,
		pageSize:    opts.PageSize,
		pagingDelay: opts.PagingDelay,
	}
}

// Login accepts any username; the password is never checked.
func (s *Service) Login(ctx context.Context, username, _ string) (*domain.Session, error) {
	session := domain.Session{
		ID:        uuid.New(),
		Username:  username,
		CreatedAt: s.clock.Now(),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	slog.InfoContext(ctx, "User logged in", "username", username, "session_id", session.ID)
	return &session, nil
}

func (s *Service) Logout(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	slog.InfoContext(ctx, "User logged out", "session_id", sessionID)
	return nil
}

// CurrentUser returns domain.ErrSessionNotFound when the session is gone.
func (s *Service) CurrentUser(ctx context.Context, sessionID uuid.UUID) (string, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}
	return session.Username, nil
}

func (s *Service) Items(ctx context.Context) ([]string, error) {
	return s.items.List(ctx)
}

func (s *Service) AddItem(ctx context.Context, item string) ([]string, error) {
	items, err := s.items.Append(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("failed to append item: %w", err)
	}
	slog.DebugContext(ctx, "Item added", "count", len(items))
	return items, nil
}

// DeleteItem removes the item at the 1-based position. Positions outside the
// list fail with domain.ErrItemIndexOutOfRange.
func (s *Service) DeleteItem(ctx context.Context, position int) ([]string, error) {
	items, err := s.items.RemoveAt(ctx, position-1)
	if err != nil {
		return nil, fmt.Errorf("failed to delete item %d: %w", position, err)
	}
	slog.DebugContext(ctx, "Item deleted", "position", position, "count", len(items))
	return items, nil
}

// FirstPage lists "Item 1" .. "Item N" without any delay.
func (s *Service) FirstPage() []string {
	return s.labels(0)
}

// Page waits the paging delay, then lists the labels following offset page*N.
// Pages are unbounded in both directions.
func (s *Service) Page(ctx context.Context, page int) ([]string, error) {
	if s.pagingDelay > 0 {
		select {
		case <-s.clock.After(s.pagingDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.labels(page * s.pageSize), nil
}

func (s *Service) labels(offset int) []string {
	labels := make([]string, s.pageSize)
	for i := range labels {
		labels[i] = fmt.Sprintf("Item %d", offset+i+1)
	}
	return labels
}

func (s *Service) Plot(ctx context.Context, p waveform.Params) (string, error) {
	image, err := s.plots.Render(ctx, p)
	if err != nil {
		return "", fmt.Errorf("failed to render waveform: %w", err)
	}
	return image, nil
}
