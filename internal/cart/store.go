package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tourbay/storefront/pkg/bookingapi"
	pkgerrors "github.com/tourbay/storefront/pkg/errors"
	"github.com/tourbay/storefront/pkg/logger"
)

// Remote is the slice of the booking platform API the store reconciles
// against. The platform is the system of record; the store only mirrors
// confirmed state.
type Remote interface {
	GetCart(ctx context.Context) (*bookingapi.CartSnapshot, error)
	UpdateCartItem(ctx context.Context, itemID string, req bookingapi.UpdateCartItemRequest) (*bookingapi.CartItem, error)
	DeleteCartItem(ctx context.Context, itemID string) error
	ClearCart(ctx context.Context) error
}

// SnapshotRepo persists the local mirror across restarts.
type SnapshotRepo interface {
	Save(ctx context.Context, userID, currency string, items []LineItem) error
	Load(ctx context.Context, userID string) ([]LineItem, string, error)
}

// Store is the per-user source of truth for "what is currently believed to
// be in the cart". Mutations follow an optimistic-on-confirmation
// discipline: local state changes only after the platform confirms.
type Store struct {
	userID string
	remote Remote
	repo   SnapshotRepo
	logg   *logger.Logger

	mu         sync.Mutex
	items      []LineItem
	totalItems int
	totalPrice decimal.Decimal
	currency   string

	// latestSeq tracks the newest update issued per item so late-arriving
	// responses can be discarded instead of clobbering fresher state.
	latestSeq map[string]uint64
	inflight  map[string]int
}

// NewStore builds an empty store for the given user.
func NewStore(userID string, remote Remote, repo SnapshotRepo, logg *logger.Logger, defaultCurrency string) (*Store, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if remote == nil {
		return nil, fmt.Errorf("remote cart client is required")
	}
	if defaultCurrency == "" {
		defaultCurrency = "USD"
	}
	return &Store{
		userID:     userID,
		remote:     remote,
		repo:       repo,
		logg:       logg,
		currency:   defaultCurrency,
		totalPrice: decimal.Zero,
		latestSeq:  map[string]uint64{},
		inflight:   map[string]int{},
	}, nil
}

// LoadSnapshot restores the persisted mirror, if any. Best effort: the next
// Refresh overwrites it with platform truth anyway.
func (s *Store) LoadSnapshot(ctx context.Context) {
	if s.repo == nil {
		return
	}
	items, currency, err := s.repo.Load(ctx, s.userID)
	if err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithUserID(ctx, s.userID), "cart snapshot load failed")
		}
		return
	}
	s.mu.Lock()
	s.items = items
	if currency != "" {
		s.currency = currency
	}
	s.recomputeLocked()
	s.mu.Unlock()
}

// Aggregate returns a copy of the read model.
func (s *Store) Aggregate() Aggregate {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]LineItem, len(s.items))
	copy(items, s.items)
	return Aggregate{
		Items:      items,
		TotalItems: s.totalItems,
		TotalPrice: s.totalPrice,
		Currency:   s.currency,
	}
}

// Currency returns the store's active display currency.
func (s *Store) Currency() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currency
}

// SetCurrency switches the active display currency. Item amounts stay in
// their original currency; presentation converts at render time.
func (s *Store) SetCurrency(ctx context.Context, code string) {
	s.mu.Lock()
	s.currency = code
	s.mu.Unlock()
	s.persist(ctx)
}

// IsUpdating reports whether an update for the item is in flight. Advisory
// only: the UI disables the triggering control, nothing is enforced here.
func (s *Store) IsUpdating(itemID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight[itemID] > 0
}

// AddItem appends a platform-confirmed line item to the local mirror. No
// network call happens here: detail pages hit the remote add endpoint first
// and hand the returned record to the store.
func (s *Store) AddItem(ctx context.Context, item LineItem) Result {
	if !item.ProductType.IsValid() {
		return failed(fmt.Sprintf("unknown product type %q", item.ProductType))
	}
	if item.Quantity < 1 {
		return failed("quantity must be at least 1")
	}
	if item.ID == "" {
		// local-only until the first successful sync assigns a real id
		item.ID = "local-" + uuid.NewString()
	}
	item.SelectedOptions = PruneOptions(item.SelectedOptions)

	s.mu.Lock()
	s.items = append(s.items, item)
	s.recomputeLocked()
	s.mu.Unlock()

	s.persist(ctx)
	return ok()
}

// UpdateItem merges the patch over the current item, submits the entire
// booking payload to the platform, and replaces local state with the
// server-confirmed record on success.
func (s *Store) UpdateItem(ctx context.Context, itemID string, patch UpdatePatch) Result {
	s.mu.Lock()
	idx := s.indexOfLocked(itemID)
	if idx < 0 {
		s.mu.Unlock()
		return failed("item not found in cart")
	}
	current := cloneItem(s.items[idx])
	s.mu.Unlock()

	merged, err := applyPatch(current, patch)
	if err != nil {
		return failed(err.Error())
	}

	seq := s.beginUpdate(itemID)
	defer s.endUpdate(itemID)

	confirmed, err := s.remote.UpdateCartItem(ctx, itemID, toRemoteUpdate(merged))
	if err != nil {
		if s.logg != nil {
			s.logg.Error(s.logg.WithUserID(ctx, s.userID), "cart item update rejected", err)
		}
		return failed(publicMessage(err))
	}

	applied := s.applyConfirmed(seq, itemID, *confirmed)
	if applied {
		s.persist(ctx)
		s.checkLineInvariant(ctx, *confirmed)
	}
	return ok()
}

// RemoveItem deletes the item remotely, then locally on confirmed success.
func (s *Store) RemoveItem(ctx context.Context, itemID string) Result {
	s.mu.Lock()
	idx := s.indexOfLocked(itemID)
	s.mu.Unlock()
	if idx < 0 {
		return failed("item not found in cart")
	}

	if err := s.remote.DeleteCartItem(ctx, itemID); err != nil {
		if s.logg != nil {
			s.logg.Error(s.logg.WithUserID(ctx, s.userID), "cart item removal rejected", err)
		}
		return failed(publicMessage(err))
	}

	s.mu.Lock()
	if idx := s.indexOfLocked(itemID); idx >= 0 {
		s.items = append(s.items[:idx], s.items[idx+1:]...)
		s.recomputeLocked()
	}
	s.mu.Unlock()

	s.persist(ctx)
	return ok()
}

// Clear empties the cart remotely, then locally on confirmed success.
func (s *Store) Clear(ctx context.Context) Result {
	if err := s.remote.ClearCart(ctx); err != nil {
		if s.logg != nil {
			s.logg.Error(s.logg.WithUserID(ctx, s.userID), "cart clear rejected", err)
		}
		return failed(publicMessage(err))
	}

	s.mu.Lock()
	s.items = nil
	s.recomputeLocked()
	s.mu.Unlock()

	s.persist(ctx)
	return ok()
}

// Refresh replaces the mirror wholesale with the platform snapshot. Callers
// run it after any mutation that navbar chrome depends on.
func (s *Store) Refresh(ctx context.Context) Result {
	snapshot, err := s.remote.GetCart(ctx)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(s.logg.WithUserID(ctx, s.userID), "cart refresh failed", err)
		}
		return failed(publicMessage(err))
	}

	items := make([]LineItem, 0, len(snapshot.Items))
	for _, item := range snapshot.Items {
		items = append(items, fromRemoteItem(item))
	}

	s.mu.Lock()
	s.items = items
	if snapshot.Currency != "" {
		s.currency = snapshot.Currency
	}
	s.recomputeLocked()
	s.mu.Unlock()

	s.persist(ctx)
	return ok()
}

func (s *Store) beginUpdate(itemID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latestSeq[itemID]++
	s.inflight[itemID]++
	return s.latestSeq[itemID]
}

func (s *Store) endUpdate(itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight[itemID] > 0 {
		s.inflight[itemID]--
	}
}

// applyConfirmed installs the server-confirmed record unless a newer update
// was issued for the item while this one was in flight.
func (s *Store) applyConfirmed(seq uint64, itemID string, confirmed bookingapi.CartItem) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latestSeq[itemID] != seq {
		return false
	}
	idx := s.indexOfLocked(itemID)
	if idx < 0 {
		return false
	}
	s.items[idx] = fromRemoteItem(confirmed)
	s.recomputeLocked()
	return true
}

func (s *Store) indexOfLocked(itemID string) int {
	for i := range s.items {
		if s.items[i].ID == itemID {
			return i
		}
	}
	return -1
}

func (s *Store) recomputeLocked() {
	total := 0
	price := decimal.Zero
	for _, item := range s.items {
		total += item.Quantity
		price = price.Add(item.TotalPrice)
	}
	s.totalItems = total
	s.totalPrice = price
}

func (s *Store) persist(ctx context.Context) {
	if s.repo == nil {
		return
	}
	agg := s.Aggregate()
	if err := s.repo.Save(ctx, s.userID, agg.Currency, agg.Items); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithUserID(ctx, s.userID), "cart snapshot save failed")
	}
}

func (s *Store) checkLineInvariant(ctx context.Context, item bookingapi.CartItem) {
	if item.TotalPrice.Equal(item.UnitPrice.Add(item.OptionsTotal)) {
		return
	}
	if s.logg != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{
			"item_id":       item.ID,
			"unit_price":    item.UnitPrice.String(),
			"options_total": item.OptionsTotal.String(),
			"total_price":   item.TotalPrice.String(),
		})
		s.logg.Warn(ctx, "platform line total does not equal unit price plus options")
	}
}

func applyPatch(item LineItem, patch UpdatePatch) (LineItem, error) {
	if patch.Quantity != nil {
		if item.ProductType == ProductTour {
			return item, fmt.Errorf("tour quantity is derived from participants")
		}
		if *patch.Quantity < 1 {
			return item, fmt.Errorf("quantity must be at least 1")
		}
		item.Quantity = *patch.Quantity
	}

	if len(patch.Participants) > 0 {
		if item.ProductType != ProductTour {
			return item, fmt.Errorf("participants apply to tour items only")
		}
		participants := Participants{}
		if item.BookingData.Participants != nil {
			participants = *item.BookingData.Participants
		}
		for category, count := range patch.Participants {
			if !category.IsValid() {
				return item, fmt.Errorf("unknown participant category %q", category)
			}
			if count < 0 {
				return item, fmt.Errorf("participant count cannot be negative")
			}
			participants = participants.WithCount(category, count)
		}
		if participants.Total() < 1 {
			return item, fmt.Errorf("at least one participant is required")
		}
		item.BookingData.Participants = &participants
		item.Quantity = participants.Total()
	}

	if patch.SelectedOptions != nil {
		for _, opt := range patch.SelectedOptions {
			if opt.Quantity < 0 {
				return item, fmt.Errorf("option quantity cannot be negative")
			}
		}
		item.SelectedOptions = PruneOptions(patch.SelectedOptions)
	}

	if patch.ScheduleID != nil {
		item.BookingData.ScheduleID = *patch.ScheduleID
	}
	if patch.SpecialRequests != nil {
		item.BookingData.SpecialRequests = *patch.SpecialRequests
	}

	return item, nil
}

// publicMessage reduces a failure to the user-facing string carried in a
// Result. Coded errors map through their public metadata so platform
// internals never leak into the UI.
func publicMessage(err error) string {
	if typed := pkgerrors.As(err); typed != nil {
		return pkgerrors.MetadataFor(typed.Code()).PublicMessage
	}
	return "something went wrong, please try again"
}

func cloneItem(item LineItem) LineItem {
	clone := item
	if item.BookingData.Participants != nil {
		participants := *item.BookingData.Participants
		clone.BookingData.Participants = &participants
	}
	clone.SelectedOptions = make([]SelectedOption, len(item.SelectedOptions))
	copy(clone.SelectedOptions, item.SelectedOptions)
	return clone
}
