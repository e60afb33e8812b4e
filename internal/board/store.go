package board

import (
	"fmt"
	"log"
	"os"
	"slices"
	"strings"
	"sync"
	"time"
)

// Persistence loads and saves whole board snapshots.
//
// Load returns found=false when nothing usable is stored (absent or malformed),
// and a non-nil error only when the storage itself could not be read.
type Persistence interface {
	Load() (snap Snapshot, found bool, err error)
	Save(snap Snapshot) error
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for persistence diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Store is the single authoritative copy of a board's roster, identity and
// tasks. All methods are safe for concurrent use; each one is atomic together
// with the commit that follows it.
type Store struct {
	mu      sync.Mutex
	persist Persistence
	logger  *log.Logger
	now     func() time.Time

	// lastStamp is the most recent timestamp handed out; stamps only grow.
	lastStamp time.Time

	members []string
	me      string
	tasks   []Task

	persistErr error
}

// Open initialises a Store from p. When p holds no usable snapshot the store is
// seeded with the default roster and a demo task. When p cannot be read the
// store still opens with defaults but never writes, so the unreadable data is
// not clobbered. A nil p gives a memory-only store.
func Open(p Persistence, opts ...Option) *Store {
	s := &Store{
		persist: p,
		logger:  log.New(os.Stderr, "[workboard] ", log.LstdFlags),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if p == nil {
		s.adopt(s.seedSnapshot())
		return s
	}

	snap, found, err := p.Load()
	switch {
	case err != nil:
		s.persistErr = fmt.Errorf("%w: %v", ErrPersistenceUnavailable, err)
		s.logger.Printf("load failed, continuing in memory only: %v", err)
		s.adopt(s.seedSnapshot())
	case !found:
		s.adopt(s.seedSnapshot())
		s.commit()
	default:
		if s.adopt(snap) {
			s.commit()
		}
	}
	return s
}

// adopt installs snap as the current state, filling defaults and repairing the
// identity. It reports whether anything had to be repaired.
func (s *Store) adopt(snap Snapshot) bool {
	repaired := false

	members := make([]string, 0, len(snap.Members))
	for _, m := range snap.Members {
		m = strings.TrimSpace(m)
		if m == "" || slices.Contains(members, m) {
			repaired = true
			continue
		}
		members = append(members, m)
	}
	if len(members) == 0 {
		members = append(members, DefaultMembers...)
		repaired = true
	}

	me := snap.Me
	if me == "" {
		me = DefaultIdentity
		repaired = true
	}
	if !slices.Contains(members, me) {
		s.logger.Printf("identity %q is not on the roster, switching to %q", me, members[0])
		me = members[0]
		repaired = true
	}

	tasks := make([]Task, 0, len(snap.Tasks))
	for _, t := range snap.Tasks {
		t = t.clone()
		if t.UpdatedAt.After(s.lastStamp) {
			s.lastStamp = t.UpdatedAt
		}
		tasks = append(tasks, t)
	}

	s.members = members
	s.me = me
	s.tasks = tasks
	return repaired
}

// stamp returns the current instant at millisecond precision, strictly later
// than any stamp handed out or loaded before.
func (s *Store) stamp() time.Time {
	t := s.now().UTC().Truncate(time.Millisecond)
	if !t.After(s.lastStamp) {
		t = s.lastStamp.Add(time.Millisecond)
	}
	s.lastStamp = t
	return t
}

// snapshotLocked copies the current state. Callers hold s.mu.
func (s *Store) snapshotLocked() Snapshot {
	tasks := make([]Task, len(s.tasks))
	for i, t := range s.tasks {
		tasks[i] = t.clone()
	}
	return Snapshot{
		Members: slices.Clone(s.members),
		Me:      s.me,
		Tasks:   tasks,
	}
}

// commit writes the full state to persistence. The first failure switches the
// store to memory-only mode for the rest of the session.
func (s *Store) commit() {
	if s.persist == nil || s.persistErr != nil {
		return
	}
	if err := s.persist.Save(s.snapshotLocked()); err != nil {
		s.persistErr = fmt.Errorf("%w: %v", ErrPersistenceUnavailable, err)
		s.logger.Printf("save failed, continuing in memory only: %v", err)
	}
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.tasks, func(t Task) bool { return t.ID == id })
}

func (s *Store) isMember(name string) bool {
	return slices.Contains(s.members, name)
}

func (s *Store) checkAssignee(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: assignee is required", ErrValidation)
	}
	if !s.isMember(name) {
		return fmt.Errorf("%w: %q is not a team member", ErrValidation, name)
	}
	return nil
}

// memberOrMe trims name and falls back to the current identity when it is
// blank. A non-blank name must be on the roster.
func (s *Store) memberOrMe(name, field string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s.me, nil
	}
	if !s.isMember(name) {
		return "", fmt.Errorf("%w: %s %q is not a team member", ErrValidation, field, name)
	}
	return name, nil
}

func checkDueDate(d Date) error {
	if d.IsZero() {
		return nil
	}
	_, err := ParseDate(string(d))
	return err
}

// CreateTask adds a new task built from d, created by creator (the current
// identity when empty), and places it first in the collection.
func (s *Store) CreateTask(d Draft, creator string) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	title := strings.TrimSpace(d.Title)
	if title == "" {
		return Task{}, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if err := s.checkAssignee(d.Assignee); err != nil {
		return Task{}, err
	}
	status := d.Status
	if status == "" {
		status = StatusTodo
	}
	if !status.Valid() {
		return Task{}, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	if err := checkDueDate(d.DueDate); err != nil {
		return Task{}, err
	}
	creator, err := s.memberOrMe(creator, "creator")
	if err != nil {
		return Task{}, err
	}

	now := s.stamp()
	t := Task{
		ID:          NewID("task"),
		Title:       title,
		Description: d.Description,
		Assignee:    d.Assignee,
		Creator:     creator,
		DueDate:     d.DueDate,
		Status:      status,
		Reports:     []Report{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.tasks = slices.Insert(s.tasks, 0, t)
	s.commit()
	return t.clone(), nil
}

// UpdateTask merges p into the task with the given id. The result must still
// have a title and a roster assignee, otherwise nothing changes.
func (s *Store) UpdateTask(id string, p Patch) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Task{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	t := s.tasks[i].clone()

	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
		if t.Title == "" {
			return Task{}, fmt.Errorf("%w: title is required", ErrValidation)
		}
	}
	if p.Assignee != nil {
		if err := s.checkAssignee(*p.Assignee); err != nil {
			return Task{}, err
		}
		t.Assignee = *p.Assignee
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.DueDate != nil {
		if err := checkDueDate(*p.DueDate); err != nil {
			return Task{}, err
		}
		t.DueDate = *p.DueDate
	}
	if p.Status != nil {
		if !p.Status.Valid() {
			return Task{}, fmt.Errorf("%w: unknown status %q", ErrValidation, *p.Status)
		}
		t.Status = *p.Status
	}

	t.UpdatedAt = s.stamp()
	s.tasks[i] = t
	s.commit()
	return t.clone(), nil
}

// DeleteTask removes the task with the given id. Deleting an unknown id is a
// no-op; the return value reports whether anything was removed.
func (s *Store) DeleteTask(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	s.commit()
	return true
}

// SetStatus moves a task to status. Any status may follow any other.
func (s *Store) SetStatus(id string, status Status) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !status.Valid() {
		return Task{}, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	i := s.indexOf(id)
	if i < 0 {
		return Task{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.tasks[i].Status = status
	s.tasks[i].UpdatedAt = s.stamp()
	s.commit()
	return s.tasks[i].clone(), nil
}

// AddReport prepends a report to the task's history. Blank text is rejected;
// an empty date means today and an empty author means the current identity;
// any other author must be on the roster.
func (s *Store) AddReport(taskID string, r ReportDraft) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(taskID)
	if i < 0 {
		return Task{}, fmt.Errorf("%w: %s", ErrNotFound, taskID)
	}
	text := strings.TrimSpace(r.Text)
	if text == "" {
		return Task{}, fmt.Errorf("%w: report text is required", ErrValidation)
	}
	date := r.Date
	if date.IsZero() {
		date = DateOf(s.now().Local())
	} else if _, err := ParseDate(string(date)); err != nil {
		return Task{}, err
	}
	author, err := s.memberOrMe(r.Author, "author")
	if err != nil {
		return Task{}, err
	}

	t := s.tasks[i].clone()
	t.Reports = slices.Insert(t.Reports, 0, Report{
		ID:     NewID("r"),
		Date:   date,
		Author: author,
		Text:   text,
	})
	t.UpdatedAt = s.stamp()
	s.tasks[i] = t
	s.commit()
	return t.clone(), nil
}

// AddMember appends name to the roster. Blank and duplicate names are ignored;
// the return value reports whether the roster changed.
func (s *Store) AddMember(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" || s.isMember(name) {
		return false
	}
	s.members = append(s.members, name)
	s.commit()
	return true
}

// SetIdentity switches the current identity to a roster member and reports
// whether it changed.
func (s *Store) SetIdentity(name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isMember(name) {
		return false, fmt.Errorf("%w: %q is not a team member", ErrValidation, name)
	}
	if name == s.me {
		return false, nil
	}
	s.me = name
	s.commit()
	return true, nil
}

// Members returns the roster in insertion order.
func (s *Store) Members() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.members)
}

// CurrentIdentity returns the member acting as the local user.
func (s *Store) CurrentIdentity() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.me
}

// DefaultAssignee is the preselected assignee for a new task: the second
// roster member, or the first when there is only one.
func (s *Store) DefaultAssignee() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.members) > 1 {
		return s.members[1]
	}
	return s.members[0]
}

// Tasks returns every task, newest first.
func (s *Store) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked().Tasks
}

// Task returns the task with the given id.
func (s *Store) Task(id string) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Task{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.tasks[i].clone(), nil
}

// Snapshot returns a copy of the full state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Durable reports whether changes are still being written to persistence.
func (s *Store) Durable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist != nil && s.persistErr == nil
}

// PersistErr returns the failure that switched the store to memory-only mode,
// or nil.
func (s *Store) PersistErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistErr
}
