package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"confschedule/internal/domain"
)

// fakeUserRepo is an in-memory UserRepository for tests.
type fakeUserRepo struct {
	byID   map[string]*domain.User
	nextID int
	err    error // if set, Create returns this error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:   make(map[string]*domain.User),
		nextID: 1,
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if f.err != nil {
		return f.err
	}
	for _, existing := range f.byID {
		if existing.Username == u.Username {
			return domain.ErrAlreadyExists
		}
	}
	u.ID = fmt.Sprintf("u-%d", f.nextID)
	f.nextID++
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, u := range f.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) ListByUsernames(ctx context.Context, usernames []string, role domain.Role) ([]*domain.User, error) {
	var out []*domain.User
	for _, name := range usernames {
		for _, u := range f.byID {
			if u.Username == name && u.Role == role {
				out = append(out, u)
			}
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Count(ctx context.Context) (int, error) {
	return len(f.byID), nil
}

// fakeRoomRepo is an in-memory RoomRepository for tests.
type fakeRoomRepo struct {
	byID   map[string]*domain.Room
	nextID int
	err    error
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{
		byID:   make(map[string]*domain.Room),
		nextID: 1,
	}
}

func (f *fakeRoomRepo) Create(ctx context.Context, room *domain.Room) error {
	if f.err != nil {
		return f.err
	}
	for _, existing := range f.byID {
		if existing.Name == room.Name {
			return domain.ErrAlreadyExists
		}
	}
	room.ID = fmt.Sprintf("room-%d", f.nextID)
	f.nextID++
	f.byID[room.ID] = room
	return nil
}

func (f *fakeRoomRepo) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	if r, ok := f.byID[id]; ok {
		return r, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRoomRepo) List(ctx context.Context) ([]*domain.Room, error) {
	out := make([]*domain.Room, 0, len(f.byID))
	for _, r := range f.byID {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeRoomRepo) Count(ctx context.Context) (int, error) {
	return len(f.byID), nil
}

// fakePresentationRepo is an in-memory PresentationRepository for tests.
type fakePresentationRepo struct {
	byID   map[string]*domain.Presentation
	nextID int
	err    error
}

func newFakePresentationRepo() *fakePresentationRepo {
	return &fakePresentationRepo{
		byID:   make(map[string]*domain.Presentation),
		nextID: 1,
	}
}

func (f *fakePresentationRepo) Create(ctx context.Context, p *domain.Presentation) error {
	if f.err != nil {
		return f.err
	}
	p.ID = fmt.Sprintf("p-%d", f.nextID)
	f.nextID++
	f.byID[p.ID] = p
	return nil
}

func (f *fakePresentationRepo) GetByID(ctx context.Context, id string) (*domain.Presentation, error) {
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakePresentationRepo) Update(ctx context.Context, p *domain.Presentation) error {
	if _, ok := f.byID[p.ID]; !ok {
		return domain.ErrNotFound
	}
	f.byID[p.ID] = p
	return nil
}

func (f *fakePresentationRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakePresentationRepo) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Presentation, int, error) {
	all := make([]*domain.Presentation, 0, len(f.byID))
	for _, p := range f.byID {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := len(all)
	offset := params.Offset()
	if offset >= total {
		return []*domain.Presentation{}, total, nil
	}
	end := offset + params.PageSize
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (f *fakePresentationRepo) ListByPresenterID(ctx context.Context, presenterID string) ([]*domain.Presentation, error) {
	var out []*domain.Presentation
	for _, p := range f.byID {
		for _, pr := range p.Presenters {
			if pr.ID == presenterID {
				out = append(out, p)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakePresentationRepo) HasPresenter(ctx context.Context, presentationID, presenterID string) (bool, error) {
	p, ok := f.byID[presentationID]
	if !ok {
		return false, nil
	}
	for _, pr := range p.Presenters {
		if pr.ID == presenterID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePresentationRepo) Count(ctx context.Context) (int, error) {
	return len(f.byID), nil
}

// fakeScheduleRepo is an in-memory ScheduleRepository for tests. CreateEntry
// re-checks for overlap under a mutex, mirroring the transactional guarantee
// of the real repository.
type fakeScheduleRepo struct {
	mu        sync.Mutex
	byID      map[string]*domain.ScheduleEntry
	listeners map[string]map[string]bool // entryID -> userID set
	users     *fakeUserRepo              // resolves listener IDs on reads, optional
	nextID    int
	err       error
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{
		byID:      make(map[string]*domain.ScheduleEntry),
		listeners: make(map[string]map[string]bool),
		nextID:    1,
	}
}

func (f *fakeScheduleRepo) CreateEntry(ctx context.Context, entry *domain.ScheduleEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for _, existing := range f.byID {
		if existing.RoomID == entry.RoomID &&
			Overlaps(entry.StartTime, entry.EndTime, existing.StartTime, existing.EndTime) {
			return domain.ErrScheduleConflict
		}
	}
	entry.ID = fmt.Sprintf("se-%d", f.nextID)
	f.nextID++
	f.byID[entry.ID] = entry
	return nil
}

func (f *fakeScheduleRepo) GetByID(ctx context.Context, id string) (*domain.ScheduleEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *e
	out.Listeners = f.resolveListeners(id)
	return &out, nil
}

func (f *fakeScheduleRepo) ListByRoom(ctx context.Context, roomID string) ([]*domain.ScheduleEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.ScheduleEntry
	for _, e := range f.byID {
		if e.RoomID == roomID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (f *fakeScheduleRepo) List(ctx context.Context) ([]*domain.ScheduleEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.ScheduleEntry
	for _, e := range f.byID {
		copied := *e
		copied.Listeners = f.resolveListeners(e.ID)
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RoomID != out[j].RoomID {
			return out[i].RoomID < out[j].RoomID
		}
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out, nil
}

func (f *fakeScheduleRepo) AddListener(ctx context.Context, entryID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[entryID]; !ok {
		return domain.ErrNotFound
	}
	if f.listeners[entryID] == nil {
		f.listeners[entryID] = make(map[string]bool)
	}
	f.listeners[entryID][userID] = true
	return nil
}

func (f *fakeScheduleRepo) Count(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byID), nil
}

func (f *fakeScheduleRepo) resolveListeners(entryID string) []*domain.User {
	out := []*domain.User{}
	if f.users == nil {
		return out
	}
	ids := make([]string, 0, len(f.listeners[entryID]))
	for id := range f.listeners[entryID] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if u, ok := f.users.byID[id]; ok {
			out = append(out, u)
		}
	}
	return out
}

// fakeEmailService records sent registration confirmations.
type fakeEmailService struct {
	sent []*domain.RegistrationEmailData
	err  error
}

func (f *fakeEmailService) SendRegistrationConfirmation(ctx context.Context, data *domain.RegistrationEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}
