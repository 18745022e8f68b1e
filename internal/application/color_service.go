package application

import (
	"context"
	"fmt"
	"time"

	"github.com/OliveiraNt/netbind/internal/domain"
	"github.com/OliveiraNt/netbind/internal/utils"
)

// ColorService handles color operations and feeds the change stream.
type ColorService struct {
	repo      domain.ColorRepository
	publisher domain.EventPublisher
	now       func() time.Time
}

// NewColorService creates a new color service. A nil publisher disables
// the change feed.
func NewColorService(repo domain.ColorRepository, publisher domain.EventPublisher) *ColorService {
	return &ColorService{
		repo:      repo,
		publisher: publisher,
		now:       time.Now,
	}
}

// ListColors returns every color in insertion order.
func (s *ColorService) ListColors() []domain.Color {
	return s.repo.FindAll()
}

// GetColor returns the first color named name.
func (s *ColorService) GetColor(name string) (domain.Color, error) {
	c, ok := s.repo.FindByName(name)
	if !ok {
		return domain.Color{}, ErrColorNotFound
	}
	return c, nil
}

// CreateColor appends a new color. Duplicate names are accepted.
func (s *ColorService) CreateColor(ctx context.Context, req domain.CreateColorRequest) (domain.Color, error) {
	if req.Name == nil {
		return domain.Color{}, fmt.Errorf("%w: missing name", ErrInvalidColor)
	}
	if req.Value == nil {
		return domain.Color{}, fmt.Errorf("%w: missing value", ErrInvalidColor)
	}

	c := domain.Color{Name: *req.Name, Value: *req.Value}
	s.repo.Add(c)
	utils.Logger.Info("color created", "name", c.Name, "value", c.Value)
	s.publish(ctx, domain.ColorCreated, c)
	return c, nil
}

// UpdateColor changes the value of the first color named name. An absent
// value leaves the color as it is.
func (s *ColorService) UpdateColor(ctx context.Context, name string, req domain.UpdateColorRequest) (domain.Color, error) {
	c, ok := s.repo.Update(name, req.Value)
	if !ok {
		return domain.Color{}, ErrColorNotFound
	}
	utils.Logger.Info("color updated", "name", c.Name, "value", c.Value)
	s.publish(ctx, domain.ColorUpdated, c)
	return c, nil
}

// DeleteColor removes the first color named name and returns it.
func (s *ColorService) DeleteColor(ctx context.Context, name string) (domain.Color, error) {
	c, ok := s.repo.Delete(name)
	if !ok {
		return domain.Color{}, ErrColorNotFound
	}
	utils.Logger.Info("color deleted", "name", c.Name)
	s.publish(ctx, domain.ColorDeleted, c)
	return c, nil
}

func (s *ColorService) publish(ctx context.Context, typ domain.ColorEventType, c domain.Color) {
	if s.publisher == nil {
		return
	}
	ev := domain.ColorEvent{Type: typ, Color: c, At: s.now().UTC()}
	if err := s.publisher.Publish(ctx, ev); err != nil {
		utils.Logger.Error("publish color event failed", "type", typ, "name", c.Name, "err", err)
	}
}
