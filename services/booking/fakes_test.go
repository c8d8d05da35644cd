package booking

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"realtalk/database/repository"
	"realtalk/models"
)

var kst = time.FixedZone("KST", 9*60*60)

// at builds a time on date at HH:MM in kst.
func at(date, hhmm string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+hhmm, kst)
	if err != nil {
		panic(err)
	}
	return t
}

type fakeAvailabilityRepo struct {
	mu   sync.Mutex
	days map[string][]string
	err  error
}

func newFakeAvailability(days map[string][]string) *fakeAvailabilityRepo {
	if days == nil {
		days = map[string][]string{}
	}
	return &fakeAvailabilityRepo{days: days}
}

func (f *fakeAvailabilityRepo) GetAll(ctx context.Context) ([]models.AvailabilityDay, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := []models.AvailabilityDay{}
	for date, slots := range f.days {
		out = append(out, models.AvailabilityDay{Date: date, Slots: append([]string(nil), slots...)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (f *fakeAvailabilityRepo) GetByDate(ctx context.Context, date string) (*models.AvailabilityDay, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	slots, ok := f.days[date]
	if !ok {
		return nil, repository.ErrAvailabilityNotFound
	}
	return &models.AvailabilityDay{Date: date, Slots: append([]string(nil), slots...)}, nil
}

func (f *fakeAvailabilityRepo) Put(ctx context.Context, day models.AvailabilityDay) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(day.Slots) == 0 {
		delete(f.days, day.Date)
		return nil
	}
	f.days[day.Date] = append([]string(nil), day.Slots...)
	return nil
}

func (f *fakeAvailabilityRepo) Delete(ctx context.Context, date string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.days[date]; !ok {
		return repository.ErrAvailabilityNotFound
	}
	delete(f.days, date)
	return nil
}

func (f *fakeAvailabilityRepo) DeleteBefore(ctx context.Context, date string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for d := range f.days {
		if d < date {
			delete(f.days, d)
			n++
		}
	}
	return n, nil
}

func (f *fakeAvailabilityRepo) Watch(ctx context.Context) (<-chan struct{}, error) {
	return make(chan struct{}), nil
}

func (f *fakeAvailabilityRepo) EnsureIndexes() error { return nil }

// fakeReservationRepo enforces slot claims the way the mongo implementation
// does: one owner per (date, slot).
type fakeReservationRepo struct {
	mu        sync.Mutex
	items     map[string]models.Reservation
	claims    map[string]string
	deleteErr map[string]error
	getErr    error
}

func newFakeReservations(rs ...models.Reservation) *fakeReservationRepo {
	f := &fakeReservationRepo{
		items:     map[string]models.Reservation{},
		claims:    map[string]string{},
		deleteErr: map[string]error{},
	}
	for _, r := range rs {
		if err := f.Create(context.Background(), &r); err != nil {
			panic(err)
		}
	}
	return f
}

func copyReservation(r models.Reservation) models.Reservation {
	entries := make([]models.SlotEntry, len(r.Entries))
	for i, e := range r.Entries {
		entries[i] = models.SlotEntry{Date: e.Date, Slots: append([]string(nil), e.Slots...)}
	}
	r.Entries = entries
	return r
}

func claimKeyOf(ref models.SlotRef) string { return ref.Date + "|" + ref.Slot }

func (f *fakeReservationRepo) GetAll(ctx context.Context) ([]models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	out := []models.Reservation{}
	for _, r := range f.items {
		out = append(out, copyReservation(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeReservationRepo) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.items[id]
	if !ok {
		return nil, repository.ErrReservationNotFound
	}
	c := copyReservation(r)
	return &c, nil
}

func (f *fakeReservationRepo) Create(ctx context.Context, r *models.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ref := range r.Claims() {
		if owner, ok := f.claims[claimKeyOf(ref)]; ok && owner != r.ID {
			return repository.ErrSlotTaken
		}
	}
	for _, ref := range r.Claims() {
		f.claims[claimKeyOf(ref)] = r.ID
	}
	f.items[r.ID] = copyReservation(*r)
	return nil
}

func (f *fakeReservationRepo) Update(ctx context.Context, r *models.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[r.ID]; !ok {
		return repository.ErrReservationNotFound
	}
	f.items[r.ID] = copyReservation(*r)
	return nil
}

func (f *fakeReservationRepo) MoveSlot(ctx context.Context, r *models.Reservation, from, to models.SlotRef) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[r.ID]; !ok {
		return repository.ErrReservationNotFound
	}
	if owner, ok := f.claims[claimKeyOf(to)]; ok && owner != r.ID {
		return repository.ErrSlotTaken
	}
	delete(f.claims, claimKeyOf(from))
	f.claims[claimKeyOf(to)] = r.ID
	f.items[r.ID] = copyReservation(*r)
	return nil
}

func (f *fakeReservationRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.deleteErr[id]; err != nil {
		return err
	}
	if _, ok := f.items[id]; !ok {
		return repository.ErrReservationNotFound
	}
	delete(f.items, id)
	for key, owner := range f.claims {
		if owner == id {
			delete(f.claims, key)
		}
	}
	return nil
}

func (f *fakeReservationRepo) BackfillClaims(ctx context.Context) (int, error) { return 0, nil }

func (f *fakeReservationRepo) Watch(ctx context.Context) (<-chan struct{}, error) {
	return make(chan struct{}), nil
}

func (f *fakeReservationRepo) EnsureIndexes() error { return nil }

func (f *fakeReservationRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}

type fakeSettingsRepo struct {
	mu    sync.Mutex
	price float64
	set   bool
}

func (f *fakeSettingsRepo) GetPrice(ctx context.Context, fallback float64) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.set {
		return fallback, nil
	}
	return f.price, nil
}

func (f *fakeSettingsRepo) SetPrice(ctx context.Context, value float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.price, f.set = value, true
	return nil
}

func (f *fakeSettingsRepo) Watch(ctx context.Context) (<-chan struct{}, error) {
	return make(chan struct{}), nil
}

type fakeSelectionStore struct {
	mu    sync.Mutex
	items map[string]models.Selection
}

func newFakeSelections() *fakeSelectionStore {
	return &fakeSelectionStore{items: map[string]models.Selection{}}
}

func (f *fakeSelectionStore) Get(ctx context.Context, id string) (*models.Selection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sel, ok := f.items[id]
	if !ok {
		return nil, ErrSelectionMissing
	}
	slots := map[string][]string{}
	for d, s := range sel.Slots {
		slots[d] = append([]string(nil), s...)
	}
	sel.Slots = slots
	return &sel, nil
}

func (f *fakeSelectionStore) Save(ctx context.Context, sel *models.Selection) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[sel.ID] = *sel
	return nil
}

func (f *fakeSelectionStore) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, id)
	return nil
}

type fakeDispatcher struct {
	mu        sync.Mutex
	emails    []models.EmailMessage
	pushes    []models.PushMessage
	emailErr  error
	failAfter int // with emailErr set, emails fail once this many were accepted
}

func (f *fakeDispatcher) SendEmail(ctx context.Context, msg models.EmailMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.emailErr != nil && len(f.emails) >= f.failAfter {
		return f.emailErr
	}
	f.emails = append(f.emails, msg)
	return nil
}

func (f *fakeDispatcher) SendPush(ctx context.Context, msg models.PushMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pushes = append(f.pushes, msg)
	return nil
}

type fakeTokens struct{}

func (fakeTokens) GenerateToken(subject, scope string, d time.Duration) (string, error) {
	return "tok-" + scope + "-" + subject, nil
}

type fakePayments struct {
	err error
}

func (f fakePayments) CreateLink(ctx context.Context, r models.Reservation, unitPrice float64) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "https://pay.test/" + r.ID, nil
}

var errBoom = errors.New("boom")

type testEnv struct {
	svc          *DefaultBookingService
	availability *fakeAvailabilityRepo
	reservations *fakeReservationRepo
	prices       *fakeSettingsRepo
	selections   *fakeSelectionStore
	notifier     *fakeDispatcher
	now          time.Time
}

func newTestEnv(now time.Time, days map[string][]string, rs ...models.Reservation) *testEnv {
	env := &testEnv{
		availability: newFakeAvailability(days),
		reservations: newFakeReservations(rs...),
		prices:       &fakeSettingsRepo{},
		selections:   newFakeSelections(),
		notifier:     &fakeDispatcher{},
		now:          now,
	}
	env.svc = &DefaultBookingService{
		Availability: env.availability,
		Reservations: env.reservations,
		Prices:       env.prices,
		Selections:   env.selections,
		Notifier:     env.notifier,
		Payments:     fakePayments{},
		Tokens:       fakeTokens{},
		Settings: Settings{
			Location:        kst,
			DefaultPrice:    2,
			AdminEmail:      "tutor@example.com",
			PublicBaseURL:   "https://realtalk.test",
			LinkTTL:         time.Hour,
			BookingTemplate: "booking",
			ConfirmTemplate: "confirm",
		},
		Now: func() time.Time { return env.now },
	}
	return env
}

func reservation(id string, createdAt time.Time, entries ...models.SlotEntry) models.Reservation {
	n := 0
	for _, e := range entries {
		n += len(e.Slots)
	}
	return models.Reservation{
		ID:            id,
		SchemaVersion: models.ReservationSchemaVersion,
		Name:          "Mina",
		Email:         "mina@example.com",
		Entries:       entries,
		CreatedAt:     createdAt.UTC(),
		TotalSessions: n,
	}
}
