// ABOUTME: Day repository: date-keyed Day records with get-or-default reads.
// ABOUTME: Holds the single default-Day factory; reads never insert.
package planner

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/sportplan/internal/models"
	"github.com/harperreed/sportplan/internal/storage"
)

// ErrInvalidSlot is returned for a slot other than morning or evening.
var ErrInvalidSlot = errors.New("invalid slot")

// SlotRef addresses one session slot of one day.
type SlotRef struct {
	Date string
	Slot models.Slot
}

func (r SlotRef) String() string {
	return r.Date + "/" + r.Slot.String()
}

// ParseSlotRef builds a SlotRef from a date key and a slot name such as
// "morning" or "training2".
func ParseSlotRef(date, slot string) (SlotRef, error) {
	sl, err := models.ParseSlot(slot)
	if err != nil {
		return SlotRef{}, fmt.Errorf("%w: %v", ErrInvalidSlot, err)
	}
	ref := SlotRef{Date: date, Slot: sl}
	if _, err := ref.validate(); err != nil {
		return SlotRef{}, err
	}
	return ref, nil
}

func (r SlotRef) validate() (time.Time, error) {
	if r.Slot != models.SlotMorning && r.Slot != models.SlotEvening {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidSlot, r.Slot)
	}
	return ParseDateKey(r.Date)
}

// DefaultDay builds the Day shown for a date with no stored record.
// Session ids derive from the date so repeated reads are identical.
func DefaultDay(t time.Time) models.Day {
	t = Civil(t)
	return models.Day{
		DayName: DayName(t),
		Date:    ShortDate(t),
		Status:  models.StatusNeutral,
		Morning: models.NewSession(defaultSessionID(models.SlotMorning, t)),
		Evening: models.NewSession(defaultSessionID(models.SlotEvening, t)),
	}
}

func defaultSessionID(slot models.Slot, t time.Time) string {
	prefix := "t1"
	if slot == models.SlotEvening {
		prefix = "t2"
	}
	return fmt.Sprintf("%s-%d", prefix, t.UnixMilli())
}

// normalizeDay refreshes display fields from the date and fills gaps left
// by older documents.
func normalizeDay(d models.Day, t time.Time) models.Day {
	d.DayName = DayName(t)
	d.Date = ShortDate(t)
	if d.Status == "" {
		d.Status = models.StatusNeutral
	}
	if d.Morning.ID == "" {
		d.Morning.ID = defaultSessionID(models.SlotMorning, t)
	}
	if d.Evening.ID == "" {
		d.Evening.ID = defaultSessionID(models.SlotEvening, t)
	}
	return d
}

// DayRepository maps date keys to Day records and persists them as one document.
type DayRepository struct {
	store  storage.Store
	logger *log.Logger
	days   map[string]models.Day
}

// NewDayRepository loads the day document from store.
func NewDayRepository(store storage.Store, logger *log.Logger) (*DayRepository, error) {
	days, err := loadDocument(store, logger, storage.KeyDays, func() map[string]models.Day {
		return map[string]models.Day{}
	})
	if err != nil {
		return nil, err
	}
	r := &DayRepository{store: store, logger: logger, days: map[string]models.Day{}}
	for key, d := range days {
		if _, err := ParseDateKey(key); err != nil {
			logger.Warn("skipping day with bad key", "key", key)
			continue
		}
		r.days[key] = d
	}
	return r, nil
}

// Get returns the stored Day, or a synthesized default without storing it.
func (r *DayRepository) Get(key string) (models.Day, error) {
	t, err := ParseDateKey(key)
	if err != nil {
		return models.Day{}, err
	}
	return r.get(key, t), nil
}

func (r *DayRepository) get(key string, t time.Time) models.Day {
	d, ok := r.days[key]
	if !ok {
		return DefaultDay(t)
	}
	return normalizeDay(d.Clone(), t)
}

// Has reports whether a Day is stored for key.
func (r *DayRepository) Has(key string) bool {
	_, ok := r.days[key]
	return ok
}

// Len returns the number of stored days.
func (r *DayRepository) Len() int {
	return len(r.days)
}

// Put replaces the Day at key wholesale.
func (r *DayRepository) Put(key string, d models.Day) error {
	return r.commit(map[string]models.Day{key: d})
}

// Update applies fn to the current Day at key and stores the result.
func (r *DayRepository) Update(key string, fn func(*models.Day)) (models.Day, error) {
	d, err := r.Get(key)
	if err != nil {
		return models.Day{}, err
	}
	fn(&d)
	if err := r.Put(key, d); err != nil {
		return models.Day{}, err
	}
	return d, nil
}

// Swap exchanges the sessions at two slots. Identical refs are a no-op.
// Missing days at either end are synthesized first.
func (r *DayRepository) Swap(a, b SlotRef) error {
	ta, err := a.validate()
	if err != nil {
		return err
	}
	tb, err := b.validate()
	if err != nil {
		return err
	}
	if a == b {
		return nil
	}

	if a.Date == b.Date {
		d := r.get(a.Date, ta)
		sa, sb := d.Session(a.Slot), d.Session(b.Slot)
		d.SetSession(a.Slot, sb)
		d.SetSession(b.Slot, sa)
		return r.commit(map[string]models.Day{a.Date: d})
	}

	da, db := r.get(a.Date, ta), r.get(b.Date, tb)
	sa, sb := da.Session(a.Slot), db.Session(b.Slot)
	da.SetSession(a.Slot, sb)
	db.SetSession(b.Slot, sa)
	return r.commit(map[string]models.Day{a.Date: da, b.Date: db})
}

// Window yields (key, Day) for n consecutive days starting at the Monday
// on or before start. The sequence is lazy and can be ranged repeatedly.
func (r *DayRepository) Window(start time.Time, n int) iter.Seq2[string, models.Day] {
	first := MondayOf(start)
	return func(yield func(string, models.Day) bool) {
		for i := 0; i < n; i++ {
			t := first.AddDate(0, 0, i)
			key := DateKey(t)
			if !yield(key, r.get(key, t)) {
				return
			}
		}
	}
}

// Snapshot returns a deep copy of every stored Day.
func (r *DayRepository) Snapshot() map[string]models.Day {
	out := make(map[string]models.Day, len(r.days))
	for k, d := range r.days {
		out[k] = d.Clone()
	}
	return out
}

// Replace swaps the whole day set, as a restore does.
func (r *DayRepository) Replace(days map[string]models.Day) error {
	next := make(map[string]models.Day, len(days))
	for key, d := range days {
		t, err := ParseDateKey(key)
		if err != nil {
			return err
		}
		next[key] = normalizeDay(d.Clone(), t)
	}
	if err := saveDocument(r.store, storage.KeyDays, next); err != nil {
		return err
	}
	r.days = next
	return nil
}

// commit applies changes and persists; on failure the prior state is kept.
func (r *DayRepository) commit(changes map[string]models.Day) error {
	next := maps.Clone(r.days)
	for key, d := range changes {
		t, err := ParseDateKey(key)
		if err != nil {
			return err
		}
		next[key] = normalizeDay(d.Clone(), t)
	}
	if err := saveDocument(r.store, storage.KeyDays, next); err != nil {
		return err
	}
	r.days = next
	for key := range changes {
		r.logger.Debug("day saved", "date", key)
	}
	return nil
}
