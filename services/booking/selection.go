package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"realtalk/models"
	"realtalk/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrSelectionMissing = errors.New("selection not found")

// SelectionStore keeps in-progress selections. Entries expire when untouched.
type SelectionStore interface {
	Get(ctx context.Context, id string) (*models.Selection, error)
	Save(ctx context.Context, sel *models.Selection) error
	Delete(ctx context.Context, id string) error
}

// RedisSelectionStore stores selections as JSON under utils.SelectionPrefix.
type RedisSelectionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSelectionStore(client *redis.Client) *RedisSelectionStore {
	return &RedisSelectionStore{client: client, ttl: utils.SelectionTTL}
}

func (r *RedisSelectionStore) Get(ctx context.Context, id string) (*models.Selection, error) {
	data, err := r.client.Get(ctx, utils.SelectionPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, ErrSelectionMissing
	} else if err != nil {
		return nil, fmt.Errorf("failed to retrieve selection: %w", err)
	}

	var sel models.Selection
	if err := json.Unmarshal(data, &sel); err != nil {
		return nil, fmt.Errorf("failed to unmarshal selection: %w", err)
	}
	return &sel, nil
}

func (r *RedisSelectionStore) Save(ctx context.Context, sel *models.Selection) error {
	data, err := json.Marshal(sel)
	if err != nil {
		return fmt.Errorf("failed to marshal selection: %w", err)
	}
	if err := r.client.Set(ctx, utils.SelectionPrefix+sel.ID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store selection: %w", err)
	}
	return nil
}

func (r *RedisSelectionStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, utils.SelectionPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete selection: %w", err)
	}
	return nil
}

func (s *DefaultBookingService) CreateSelection(ctx context.Context) (*models.SelectionSummary, error) {
	sel := &models.Selection{
		ID:        uuid.NewString(),
		Slots:     map[string][]string{},
		UpdatedAt: s.now().UTC(),
	}
	if err := s.Selections.Save(ctx, sel); err != nil {
		s.logger().Error("failed to create selection", zap.Error(err))
		return nil, ErrStoreUnavailable
	}
	return s.summarize(ctx, sel)
}

func (s *DefaultBookingService) GetSelection(ctx context.Context, id string) (*models.SelectionSummary, error) {
	sel, err := s.getSelection(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, sel)
}

// ToggleSlot removes the slot when it is already selected and adds it
// otherwise. Adding requires the slot to be bookable right now. Removing the
// last slot of a date removes the date.
func (s *DefaultBookingService) ToggleSlot(ctx context.Context, id string, req models.ToggleSlotRequest) (*models.SelectionSummary, error) {
	ref := models.SlotRef{Date: req.Date, Slot: req.Slot}
	if err := validateRef(ref, s.loc()); err != nil {
		return nil, err
	}

	sel, err := s.getSelection(ctx, id)
	if err != nil {
		return nil, err
	}
	if sel.Slots == nil {
		sel.Slots = map[string][]string{}
	}

	current := sel.Slots[ref.Date]
	if containsSlot(current, ref.Slot) {
		remaining := make([]string, 0, len(current))
		for _, slot := range current {
			if slot != ref.Slot {
				remaining = append(remaining, slot)
			}
		}
		if len(remaining) == 0 {
			delete(sel.Slots, ref.Date)
		} else {
			sel.Slots[ref.Date] = remaining
		}
	} else {
		available, err := s.AvailableOn(ctx, ref.Date)
		if err != nil {
			return nil, err
		}
		if !containsSlot(available, ref.Slot) {
			return nil, withDetail(ErrSlotUnavailable, "%s %s is no longer available. Please choose another time.", ref.Date, ref.Slot)
		}
		next := append(append([]string(nil), current...), ref.Slot)
		sort.Strings(next)
		sel.Slots[ref.Date] = next
	}

	sel.UpdatedAt = s.now().UTC()
	if err := s.Selections.Save(ctx, sel); err != nil {
		s.logger().Error("failed to save selection", zap.String("selectionId", id), zap.Error(err))
		return nil, ErrStoreUnavailable
	}
	return s.summarize(ctx, sel)
}

func (s *DefaultBookingService) ClearSelection(ctx context.Context, id string) error {
	if err := s.Selections.Delete(ctx, id); err != nil {
		s.logger().Error("failed to clear selection", zap.String("selectionId", id), zap.Error(err))
		return ErrStoreUnavailable
	}
	return nil
}

func (s *DefaultBookingService) getSelection(ctx context.Context, id string) (*models.Selection, error) {
	sel, err := s.Selections.Get(ctx, id)
	if errors.Is(err, ErrSelectionMissing) {
		return nil, ErrSelectionAbsent
	}
	if err != nil {
		s.logger().Error("failed to load selection", zap.String("selectionId", id), zap.Error(err))
		return nil, ErrStoreUnavailable
	}
	return sel, nil
}

// summarize prices the selection at the current price. The price is never
// stored with the selection.
func (s *DefaultBookingService) summarize(ctx context.Context, sel *models.Selection) (*models.SelectionSummary, error) {
	price, err := s.Price(ctx)
	if err != nil {
		return nil, err
	}
	n := sel.TotalSessions()
	return &models.SelectionSummary{
		Selection:     *sel,
		TotalSessions: n,
		UnitPrice:     price,
		TotalPrice:    float64(n) * price,
	}, nil
}
