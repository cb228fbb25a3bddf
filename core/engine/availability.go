package engine

import (
	"time"

	"github.com/claritycare/roster-engine/core/domain"
)

// mask is a fixed-width bit vector over the operating window's 15-minute
// slots. §9's re-architecture note picks a small vector of machine words
// sized to NUM_SLOTS instead of the source's arbitrary-precision integer —
// the clinic's default 9-hour window needs 36 bits, comfortably one word.
type mask []uint64

func wordsFor(numSlots int) int {
	return (numSlots + 63) / 64
}

func newMask(numSlots int) mask {
	return make(mask, wordsFor(numSlots))
}

func (m mask) clone() mask {
	out := make(mask, len(m))
	copy(out, m)
	return out
}

func (m mask) setRange(startSlot, length int) {
	for b := startSlot; b < startSlot+length; b++ {
		m[b/64] |= 1 << uint(b%64)
	}
}

func (m mask) clearRange(startSlot, length int) {
	for b := startSlot; b < startSlot+length; b++ {
		m[b/64] &^= 1 << uint(b%64)
	}
}

func (m mask) testRange(startSlot, length int) bool {
	for b := startSlot; b < startSlot+length; b++ {
		if m[b/64]&(1<<uint(b%64)) != 0 {
			return true
		}
	}
	return false
}

func (m mask) or(other mask) {
	for i := range m {
		m[i] |= other[i]
	}
}

// entryRef remembers enough about a booked entry to subtract it from a mask
// when the caller wants to "ignore" it during a re-check (e.g. re-validating
// an edit in place).
type entryRef struct {
	TherapistID domain.TherapistID
	ClientID    *domain.ClientID
	StartSlot   int
	Length      int
}

// AvailabilityTracker is a per-entity dense bitmask of busy 15-minute slots
// (§4.5), rebuilt by the seeder and by crossover; range queries and updates
// visit each slot of the range in turn.
type AvailabilityTracker struct {
	cfg             Config
	numSlots        int
	therapistMasks  map[domain.TherapistID]mask
	clientMasks     map[domain.ClientID]mask
	entries         map[domain.ScheduleEntryID]entryRef
}

// NewAvailabilityTracker builds an empty tracker for the given config.
func NewAvailabilityTracker(cfg Config) *AvailabilityTracker {
	return &AvailabilityTracker{
		cfg:            cfg,
		numSlots:       cfg.NumSlots(),
		therapistMasks: make(map[domain.TherapistID]mask),
		clientMasks:    make(map[domain.ClientID]mask),
		entries:        make(map[domain.ScheduleEntryID]entryRef),
	}
}

// Rebuild clears all masks then ORs in every callout targeting date T and
// every entry of the schedule, per §4.5.
func (t *AvailabilityTracker) Rebuild(scheduleEntries []domain.ScheduleEntry, callouts []domain.Callout, date time.Time) {
	t.therapistMasks = make(map[domain.TherapistID]mask)
	t.clientMasks = make(map[domain.ClientID]mask)
	t.entries = make(map[domain.ScheduleEntryID]entryRef, len(scheduleEntries))

	for _, c := range callouts {
		if !c.CoversDate(date) {
			continue
		}
		startSlot, length := t.clampedSlotRange(c.TimeWindow.Start, c.TimeWindow.End)
		if length <= 0 {
			continue
		}
		switch c.EntityKind {
		case domain.EntityKindTherapist:
			t.therapistMask(domain.TherapistID(c.EntityID)).setRange(startSlot, length)
		case domain.EntityKindClient:
			t.clientMask(domain.ClientID(c.EntityID)).setRange(startSlot, length)
		}
	}

	for _, e := range scheduleEntries {
		t.Book(e.TherapistID, e.ClientID, e.StartMinute, e.EndMinute)
		startSlot, length := t.clampedSlotRange(e.StartMinute, e.EndMinute)
		t.entries[e.ID] = entryRef{TherapistID: e.TherapistID, ClientID: e.ClientID, StartSlot: startSlot, Length: length}
	}
}

func (t *AvailabilityTracker) clampedSlotRange(start, end int) (int, int) {
	if start < t.cfg.OpStart {
		start = t.cfg.OpStart
	}
	if end > t.cfg.OpEnd {
		end = t.cfg.OpEnd
	}
	if end <= start {
		return 0, 0
	}
	return t.cfg.SlotIndex(start), (end - start) / t.cfg.SlotMinutes
}

func (t *AvailabilityTracker) therapistMask(id domain.TherapistID) mask {
	m, ok := t.therapistMasks[id]
	if !ok {
		m = newMask(t.numSlots)
		t.therapistMasks[id] = m
	}
	return m
}

func (t *AvailabilityTracker) clientMask(id domain.ClientID) mask {
	m, ok := t.clientMasks[id]
	if !ok {
		m = newMask(t.numSlots)
		t.clientMasks[id] = m
	}
	return m
}

// Available reports whether the therapist (and, if given, the client) are
// both free for [start, end), optionally ignoring one already-booked entry
// by id (used when re-checking an edit in place).
func (t *AvailabilityTracker) Available(therapistID domain.TherapistID, clientID *domain.ClientID, start, end int, ignore *domain.ScheduleEntryID) bool {
	startSlot, length := t.clampedSlotRange(start, end)
	if length <= 0 {
		return false
	}

	therapistBusy := t.therapistMask(therapistID).clone()
	var clientBusy mask
	if clientID != nil {
		clientBusy = t.clientMask(*clientID).clone()
	}

	if ignore != nil {
		if ref, ok := t.entries[*ignore]; ok {
			therapistBusy.clearRange(ref.StartSlot, ref.Length)
			if clientBusy != nil && ref.ClientID != nil && clientID != nil && *ref.ClientID == *clientID {
				clientBusy.clearRange(ref.StartSlot, ref.Length)
			}
		}
	}

	if therapistBusy.testRange(startSlot, length) {
		return false
	}
	if clientBusy != nil && clientBusy.testRange(startSlot, length) {
		return false
	}
	return true
}

// Book ORs [start, end) into the therapist's mask and, if clientID is
// non-nil, the client's mask.
func (t *AvailabilityTracker) Book(therapistID domain.TherapistID, clientID *domain.ClientID, start, end int) {
	startSlot, length := t.clampedSlotRange(start, end)
	if length <= 0 {
		return
	}
	t.therapistMask(therapistID).setRange(startSlot, length)
	if clientID != nil {
		t.clientMask(*clientID).setRange(startSlot, length)
	}
}
