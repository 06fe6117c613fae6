package schedule

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mgrundel/timelane/pkg/errors"
)

// maxIDAttempts bounds id generation retries on the (practically
// impossible) uuid collision path.
const maxIDAttempts = 16

// timeFormat is used in error messages only.
const timeFormat = time.RFC3339

// record is the internal mutable representation of a stored schedule.
// Relations live in the Manager's maps, not on the record.
type record struct {
	id        string
	name      string
	start     time.Time
	end       time.Time
	level     Level
	exclusive bool
}

// Manager owns the canonical schedule set and its indexes. All operations
// are atomic: a failed Create or Delete leaves no partial state behind.
//
// The zero value is not usable; construct with NewManager. A Manager is
// safe for concurrent use, with writes strictly serialized.
type Manager struct {
	mu sync.RWMutex

	schedules map[string]*record
	byLevel   map[Level]*intervalIndex
	levels    []Level // sorted keys of byLevel
	parents   map[string]map[string]struct{}
	children  map[string]map[string]struct{}
	levelIDs  map[Level]map[string]struct{}
}

// NewManager creates an empty schedule manager.
func NewManager() *Manager {
	m := &Manager{}
	m.resetLocked()
	return m
}

// Reset discards all stored schedules, returning the manager to its
// initial empty state. Intended for tests and snapshot reloads.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetLocked()
}

func (m *Manager) resetLocked() {
	m.schedules = make(map[string]*record)
	m.byLevel = make(map[Level]*intervalIndex)
	m.levels = nil
	m.parents = make(map[string]map[string]struct{})
	m.children = make(map[string]map[string]struct{})
	m.levelIDs = make(map[Level]map[string]struct{})
}

// Create validates the payload and, on success, stores a new schedule and
// returns its assigned id. Validation is fail-fast: the first violated
// rule determines the returned error code, in this order:
//
//  1. Start < End (START_AFTER_END)
//  2. per declared parent, in payload order: existence (PARENT_NOT_FOUND),
//     strictly greater level (LEVEL_EXCEEDS_PARENT), closed containment
//     (TIME_RANGE_EXCEEDS_PARENT)
//  3. exclusivity conflicts with overlapping schedules (TIME_RANGE_OVERLAPS)
func (m *Manager) Create(p Payload) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.validateLocked(p); err != nil {
		return "", err
	}

	id, err := m.generateIDLocked()
	if err != nil {
		return "", err
	}

	m.applyLocked(id, p)
	return id, nil
}

// CreateWithID stores a schedule under a caller-provided id, preserving
// identities when loading from a snapshot or an external store. The id
// must not already be taken.
func (m *Manager) CreateWithID(id string, p Payload) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.schedules[id]; taken {
		return errors.New(errors.ErrCodeDuplicateID, "schedule id %s already exists", id)
	}
	if err := errors.ValidateScheduleID(id); err != nil {
		return err
	}
	if err := m.validateLocked(p); err != nil {
		return err
	}

	m.applyLocked(id, p)
	return nil
}

// AddParents attaches additional parents to an existing schedule. Each
// parent is validated with the same rules as at creation; on failure no
// link is added.
func (m *Manager) AddParents(id string, parentIDs []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.schedules[id]
	if !ok {
		return errors.New(errors.ErrCodeScheduleNotFound, "no schedule with id %s", id)
	}

	for _, pid := range parentIDs {
		if err := m.validateParentLocked(pid, rec.level, rec.start, rec.end); err != nil {
			return err
		}
	}

	for _, pid := range parentIDs {
		m.linkLocked(pid, id)
	}
	return nil
}

// Delete removes a schedule, detaching every parent and child link on
// both sides first. Links are non-owning, so relatives are never deleted.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.schedules[id]
	if !ok {
		return errors.New(errors.ErrCodeScheduleNotFound, "no schedule with id %s", id)
	}

	for pid := range m.parents[id] {
		delete(m.children[pid], id)
	}
	for cid := range m.children[id] {
		delete(m.parents[cid], id)
	}
	delete(m.parents, id)
	delete(m.children, id)

	if ix := m.byLevel[rec.level]; ix != nil {
		ix.remove(id)
		if ix.empty() {
			m.dropLevelLocked(rec.level)
		}
	}
	if set := m.levelIDs[rec.level]; set != nil {
		delete(set, id)
		if len(set) == 0 {
			delete(m.levelIDs, rec.level)
		}
	}

	delete(m.schedules, id)
	return nil
}

// Get returns a copy of the schedule with the given id, or false if it
// does not exist.
func (m *Manager) Get(id string) (Schedule, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.schedules[id]
	if !ok {
		return Schedule{}, false
	}
	return m.exportLocked(rec), true
}

// Len returns the number of stored schedules.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.schedules)
}

// All returns every stored schedule in canonical order (start ascending,
// then level, then name, then id).
func (m *Manager) All() []Schedule {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Schedule, 0, len(m.schedules))
	for _, rec := range m.schedules {
		out = append(out, m.exportLocked(rec))
	}
	sortCanonical(out)
	return out
}

// ---------------------------------------------------------------------------
// Validation
// ---------------------------------------------------------------------------

func (m *Manager) validateLocked(p Payload) error {
	if !p.Start.Before(p.End) {
		return errors.New(errors.ErrCodeStartAfterEnd, "start time %s is not before end time %s",
			p.Start.Format(timeFormat), p.End.Format(timeFormat))
	}
	if err := errors.ValidateScheduleName(p.Name); err != nil {
		return err
	}
	if err := errors.ValidateScheduleLevel(p.Level); err != nil {
		return err
	}

	for _, pid := range p.Parents {
		if err := m.validateParentLocked(pid, p.Level, p.Start, p.End); err != nil {
			return err
		}
	}

	return m.checkOverlapsLocked(p)
}

func (m *Manager) validateParentLocked(pid string, level Level, start, end time.Time) error {
	parent, ok := m.schedules[pid]
	if !ok {
		return errors.New(errors.ErrCodeParentNotFound, "parent schedule %s not found", pid)
	}
	if parent.level >= level {
		return errors.New(errors.ErrCodeLevelExceedsParent,
			"level %d is not below parent %s at level %d", level, pid, parent.level)
	}
	if parent.start.After(start) || parent.end.Before(end) {
		return errors.New(errors.ErrCodeTimeRangeExceedsParent,
			"time range exceeds parent schedule %s", pid)
	}
	return nil
}

// checkOverlapsLocked scans every stored schedule whose range intersects
// the payload's under half-open semantics and whose level is at or above
// (numerically <=) the payload's, applying the exclusivity rules:
//
//   - same level and either side exclusive: conflict
//   - payload exclusive against any coarser-or-equal level: conflict
//   - existing exclusive at any coarser-or-equal level: conflict
//
// Declared parents are exempt: a child may overlap the parents it is
// contained in, even exclusive ones.
func (m *Manager) checkOverlapsLocked(p Payload) error {
	declared := make(map[string]struct{}, len(p.Parents))
	for _, pid := range p.Parents {
		declared[pid] = struct{}{}
	}

	var hits []string
	for _, level := range m.levels {
		if level > p.Level {
			break
		}
		hits = m.byLevel[level].overlapping(hits[:0], p.Start, p.End)
		for _, id := range hits {
			if _, isParent := declared[id]; isParent {
				continue
			}
			e := m.schedules[id]
			sameLevel := e.level == p.Level
			switch {
			case sameLevel && (e.exclusive || p.Exclusive):
			case p.Exclusive && e.level <= p.Level:
			case e.exclusive && e.level <= p.Level:
			default:
				continue
			}
			return errors.New(errors.ErrCodeTimeRangeOverlaps,
				"time range overlaps schedule %s (%s)", id, e.name)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Mutation helpers
// ---------------------------------------------------------------------------

func (m *Manager) generateIDLocked() (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := uuid.NewString()
		if _, taken := m.schedules[id]; !taken {
			return id, nil
		}
	}
	return "", errors.New(errors.ErrCodeDuplicateID, "could not generate a unique schedule id")
}

func (m *Manager) applyLocked(id string, p Payload) {
	rec := &record{
		id:        id,
		name:      p.Name,
		start:     p.Start,
		end:       p.End,
		level:     p.Level,
		exclusive: p.Exclusive,
	}
	m.schedules[id] = rec

	ix := m.byLevel[p.Level]
	if ix == nil {
		ix = &intervalIndex{}
		m.byLevel[p.Level] = ix
		m.insertLevelLocked(p.Level)
	}
	ix.insert(interval{start: p.Start, end: p.End, id: id})

	set := m.levelIDs[p.Level]
	if set == nil {
		set = make(map[string]struct{})
		m.levelIDs[p.Level] = set
	}
	set[id] = struct{}{}

	for _, pid := range p.Parents {
		m.linkLocked(pid, id)
	}
}

// linkLocked records the symmetric parent/child relation.
func (m *Manager) linkLocked(parentID, childID string) {
	kids := m.children[parentID]
	if kids == nil {
		kids = make(map[string]struct{})
		m.children[parentID] = kids
	}
	kids[childID] = struct{}{}

	pars := m.parents[childID]
	if pars == nil {
		pars = make(map[string]struct{})
		m.parents[childID] = pars
	}
	pars[parentID] = struct{}{}
}

func (m *Manager) insertLevelLocked(level Level) {
	i := sort.SearchInts(m.levels, level)
	m.levels = append(m.levels, 0)
	copy(m.levels[i+1:], m.levels[i:])
	m.levels[i] = level
}

func (m *Manager) dropLevelLocked(level Level) {
	delete(m.byLevel, level)
	if i := sort.SearchInts(m.levels, level); i < len(m.levels) && m.levels[i] == level {
		m.levels = append(m.levels[:i], m.levels[i+1:]...)
	}
}

func (m *Manager) exportLocked(rec *record) Schedule {
	return Schedule{
		ID:        rec.id,
		Name:      rec.name,
		Start:     rec.start,
		End:       rec.end,
		Level:     rec.level,
		Exclusive: rec.exclusive,
		Parents:   sortedIDs(m.parents[rec.id]),
		Children:  sortedIDs(m.children[rec.id]),
	}
}

func sortedIDs(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
