// Package memory implementa los puertos de persistencia en proceso. Se usa con STORE_DRIVER=memory
// (desarrollo local sin base de datos) y como doble en las pruebas de casos de uso y HTTP.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/reservas-canchas/internal/domain"
	"github.com/jhoicas/reservas-canchas/internal/domain/entity"
	"github.com/jhoicas/reservas-canchas/internal/domain/repository"
)

var (
	_ repository.UserRepository      = (*UserRepo)(nil)
	_ repository.AuditRepository     = (*AuditRepo)(nil)
	_ repository.CourtRepository     = (*CourtRepo)(nil)
	_ repository.CourtTypeRepository = (*CourtTypeRepo)(nil)
)

// UserRepo usuarios en memoria con email único.
type UserRepo struct {
	mu      sync.RWMutex
	byID    map[string]*entity.User
	byEmail map[string]string
}

// NewUserRepository construye el repositorio vacío.
func NewUserRepository() *UserRepo {
	return &UserRepo{byID: map[string]*entity.User{}, byEmail: map[string]string{}}
}

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[user.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	cp := *user
	r.byID[cp.ID] = &cp
	r.byEmail[cp.Email] = cp.ID
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	id, ok := r.byEmail[email]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

// Count número de usuarios con ese email (0 o 1).
func (r *UserRepo) Count(email string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, u := range r.byID {
		if u.Email == email {
			n++
		}
	}
	return n
}

// AuditRepo bitácora en memoria.
type AuditRepo struct {
	mu      sync.RWMutex
	seq     int64
	entries []*entity.AuditEntry
}

// NewAuditRepository construye la bitácora vacía.
func NewAuditRepository() *AuditRepo {
	return &AuditRepo{}
}

func (r *AuditRepo) OpenSession(_ context.Context, entry *entity.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.UserID == entry.UserID && e.IsOpen() {
			at := entry.EntryTime
			e.ExitTime = &at
		}
	}
	r.appendLocked(entry)
	return nil
}

func (r *AuditRepo) SealOpen(_ context.Context, userID string, entryID int64, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *entity.AuditEntry
	for _, e := range r.entries {
		if e.UserID != userID || !e.IsOpen() {
			continue
		}
		if entryID != 0 && e.ID != entryID {
			continue
		}
		if latest == nil || !e.EntryTime.Before(latest.EntryTime) {
			latest = e
		}
	}
	if latest == nil {
		return false, nil
	}
	latest.ExitTime = &at
	return true, nil
}

func (r *AuditRepo) Append(_ context.Context, entry *entity.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appendLocked(entry)
	return nil
}

func (r *AuditRepo) appendLocked(entry *entity.AuditEntry) {
	r.seq++
	entry.ID = r.seq
	cp := *entry
	r.entries = append(r.entries, &cp)
}

func (r *AuditRepo) List(_ context.Context, f repository.AuditFilter) ([]*entity.AuditEntry, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var matched []*entity.AuditEntry
	for _, e := range r.entries {
		if f.UserID != "" && e.UserID != f.UserID {
			continue
		}
		if f.ActionKind != "" && e.ActionKind != f.ActionKind {
			continue
		}
		cp := *e
		matched = append(matched, &cp)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].EntryTime.Equal(matched[j].EntryTime) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].EntryTime.After(matched[j].EntryTime)
	})
	total := len(matched)
	if f.Offset >= total {
		return []*entity.AuditEntry{}, total, nil
	}
	end := total
	if f.Limit > 0 && f.Offset+f.Limit < end {
		end = f.Offset + f.Limit
	}
	return matched[f.Offset:end], total, nil
}

// Entries copia de todas las entradas de userID en orden de inserción.
func (r *AuditRepo) Entries(userID string) []entity.AuditEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []entity.AuditEntry
	for _, e := range r.entries {
		if userID == "" || e.UserID == userID {
			out = append(out, *e)
		}
	}
	return out
}

// OpenCount número de entradas LOGIN abiertas de userID.
func (r *AuditRepo) OpenCount(userID string) int {
	n := 0
	for _, e := range r.Entries(userID) {
		if e.IsOpen() {
			n++
		}
	}
	return n
}

// CourtTypeRepo catálogo de tipos en memoria.
type CourtTypeRepo struct {
	mu    sync.RWMutex
	seq   int64
	types map[int64]*entity.CourtType
}

// NewCourtTypeRepository construye el catálogo vacío.
func NewCourtTypeRepository() *CourtTypeRepo {
	return &CourtTypeRepo{types: map[int64]*entity.CourtType{}}
}

func (r *CourtTypeRepo) List(_ context.Context) ([]*entity.CourtType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.CourtType, 0, len(r.types))
	for _, t := range r.types {
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *CourtTypeRepo) GetByID(_ context.Context, id int64) (*entity.CourtType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *CourtTypeRepo) Upsert(_ context.Context, name string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.types {
		if strings.EqualFold(t.Name, name) {
			return t.ID, nil
		}
	}
	r.seq++
	r.types[r.seq] = &entity.CourtType{ID: r.seq, Name: name}
	return r.seq, nil
}

// CourtRepo canchas y horarios en memoria. Resuelve el nombre del tipo con types.
type CourtRepo struct {
	mu          sync.RWMutex
	seq         int64
	scheduleSeq int64
	courts      map[int64]*entity.Court
	types       *CourtTypeRepo
}

// NewCourtRepository construye el repositorio vacío.
func NewCourtRepository(types *CourtTypeRepo) *CourtRepo {
	return &CourtRepo{courts: map[int64]*entity.Court{}, types: types}
}

func (r *CourtRepo) List(ctx context.Context) ([]*entity.Court, error) {
	r.mu.RLock()
	ids := make([]int64, 0, len(r.courts))
	for id := range r.courts {
		ids = append(ids, id)
	}
	r.mu.RUnlock()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*entity.Court, 0, len(ids))
	for _, id := range ids {
		c, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if c != nil {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *CourtRepo) GetByID(ctx context.Context, id int64) (*entity.Court, error) {
	r.mu.RLock()
	c, ok := r.courts[id]
	var cp entity.Court
	if ok {
		cp = *c
		cp.Schedules = append([]entity.Schedule(nil), c.Schedules...)
	}
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	cp.TypeName = ""
	if cp.TypeID != nil {
		t, err := r.types.GetByID(ctx, *cp.TypeID)
		if err != nil {
			return nil, err
		}
		if t != nil {
			cp.TypeName = t.Name
		}
	}
	return &cp, nil
}

func (r *CourtRepo) Create(ctx context.Context, court *entity.Court) error {
	if err := r.checkType(ctx, court.TypeID); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	court.ID = r.seq
	cp := *court
	cp.Schedules = nil
	if court.TypeID != nil {
		v := *court.TypeID
		cp.TypeID = &v
	}
	r.courts[cp.ID] = &cp
	return nil
}

func (r *CourtRepo) Update(ctx context.Context, id int64, patch repository.CourtPatch) (*entity.Court, error) {
	if err := r.checkType(ctx, patch.TypeID); err != nil {
		return nil, err
	}
	r.mu.Lock()
	c, ok := r.courts[id]
	if ok {
		if patch.Name != nil {
			c.Name = *patch.Name
		}
		if patch.Available != nil {
			c.Available = *patch.Available
		}
		if patch.TypeID != nil {
			v := *patch.TypeID
			c.TypeID = &v
		}
	}
	r.mu.Unlock()
	if !ok {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

func (r *CourtRepo) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.courts[id]; !ok {
		return false, nil
	}
	delete(r.courts, id)
	return true, nil
}

func (r *CourtRepo) AddSchedule(_ context.Context, s *entity.Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.courts[s.CourtID]
	if !ok {
		return domain.ErrNotFound
	}
	r.scheduleSeq++
	s.ID = r.scheduleSeq
	c.Schedules = append(c.Schedules, *s)
	return nil
}

func (r *CourtRepo) DeleteSchedule(_ context.Context, courtID, scheduleID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.courts[courtID]
	if !ok {
		return false, nil
	}
	for i, s := range c.Schedules {
		if s.ID == scheduleID {
			c.Schedules = append(c.Schedules[:i], c.Schedules[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *CourtRepo) checkType(ctx context.Context, typeID *int64) error {
	if typeID == nil {
		return nil
	}
	t, err := r.types.GetByID(ctx, *typeID)
	if err != nil {
		return err
	}
	if t == nil {
		return domain.NewValidationError(entity.CourtFieldType, "el tipo de cancha no existe")
	}
	return nil
}
