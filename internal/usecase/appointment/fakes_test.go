package appointment

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/clock"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/push"
)

// ------------------------------------------------------------
// memRepo: repositório em memória com as mesmas regras do Postgres
// (filtro de confirmados e índice único parcial).
// ------------------------------------------------------------

type memRepo struct {
	mu           sync.Mutex
	barbers      map[string]models.Barber
	services     map[string]models.Service
	profiles     map[string]models.Profile
	appointments map[string]models.Appointment
	seq          int

	listErr     error
	leakPending bool // simula uma consulta que devolve todos os status
	listCalls   int
}

func newMemRepo() *memRepo {
	return &memRepo{
		barbers:      map[string]models.Barber{},
		services:     map[string]models.Service{},
		profiles:     map[string]models.Profile{},
		appointments: map[string]models.Appointment{},
	}
}

func (r *memRepo) addBarber(b models.Barber)   { r.barbers[b.ID] = b }
func (r *memRepo) addService(s models.Service) { r.services[s.ID] = s }
func (r *memRepo) addProfile(p models.Profile) { r.profiles[p.ID] = p }
func (r *memRepo) put(ap models.Appointment)   { r.appointments[ap.ID] = ap }

func (r *memRepo) get(id string) models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.appointments[id]
}

func (r *memRepo) GetBarber(_ context.Context, id string) (*models.Barber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.barbers[id]
	if !ok {
		return nil, errors.Mark(errors.New("barber"), domain.ErrNotFound)
	}
	return &b, nil
}

func (r *memRepo) GetService(_ context.Context, id string) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.services[id]
	if !ok {
		return nil, errors.Mark(errors.New("service"), domain.ErrNotFound)
	}
	return &s, nil
}

func (r *memRepo) GetProfile(_ context.Context, id string) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, errors.Mark(errors.New("profile"), domain.ErrNotFound)
	}
	return &p, nil
}

func (r *memRepo) ListAdminPushTokens(context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, p := range r.profiles {
		if p.IsAdmin && p.PushToken != "" {
			out = append(out, p.PushToken)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *memRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	if ap.ID == "" {
		ap.ID = fmt.Sprintf("ap-%d", r.seq)
	}
	ap.CreatedAt = time.Now()
	r.appointments[ap.ID] = *ap
	return nil
}

func (r *memRepo) GetAppointment(_ context.Context, id string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.appointments[id]
	if !ok {
		return nil, errors.Mark(errors.New("appointment"), domain.ErrNotFound)
	}
	ap.Profile = r.profiles[ap.ProfileID]
	ap.Barber = r.barbers[ap.BarberID]
	ap.Service = r.services[ap.ServiceID]
	return &ap, nil
}

func (r *memRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.appointments[ap.ID]
	if !ok {
		return errors.Mark(errors.New("appointment"), domain.ErrNotFound)
	}
	if ap.Status == string(domain.StatusConfirmed) {
		for id, other := range r.appointments {
			if id != ap.ID && other.Status == string(domain.StatusConfirmed) &&
				other.BarberID == cur.BarberID &&
				other.AppointmentDate == cur.AppointmentDate &&
				other.AppointmentTime == cur.AppointmentTime {
				return errors.Mark(errors.New("duplicate key"), domain.ErrSlotTaken)
			}
		}
	}
	cur.Status = ap.Status
	cur.UpdatedAt = ap.UpdatedAt
	r.appointments[ap.ID] = cur
	return nil
}

func (r *memRepo) CountConfirmedAt(_ context.Context, barberID, date, clockTime, excludeID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, ap := range r.appointments {
		if id != excludeID && ap.BarberID == barberID && ap.AppointmentDate == date &&
			ap.AppointmentTime == clockTime && ap.Status == string(domain.StatusConfirmed) {
			n++
		}
	}
	return n, nil
}

func (r *memRepo) ListConfirmedForDay(_ context.Context, barberID, date string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.BarberID != barberID || ap.AppointmentDate != date {
			continue
		}
		if !r.leakPending && ap.Status != string(domain.StatusConfirmed) {
			continue
		}
		out = append(out, ap)
	}
	return out, nil
}

func (r *memRepo) ListAppointments(_ context.Context, f domain.ListFilter) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, ap := range r.appointments {
		if f.ProfileID != "" && ap.ProfileID != f.ProfileID {
			continue
		}
		if f.Date != "" && ap.AppointmentDate != f.Date {
			continue
		}
		if f.Status != "" && ap.Status != f.Status {
			continue
		}
		ap.Profile = r.profiles[ap.ProfileID]
		ap.Barber = r.barbers[ap.BarberID]
		ap.Service = r.services[ap.ServiceID]
		out = append(out, ap)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AppointmentDate != out[j].AppointmentDate {
			return out[i].AppointmentDate > out[j].AppointmentDate
		}
		return out[i].AppointmentTime < out[j].AppointmentTime
	})
	return out, nil
}

var _ domain.Repository = (*memRepo)(nil)

// ------------------------------------------------------------
// Colaboradores
// ------------------------------------------------------------

type recordingAuditor struct {
	mu     sync.Mutex
	events []audit.Event
}

func (a *recordingAuditor) Dispatch(ev audit.Event) {
	a.mu.Lock()
	a.events = append(a.events, ev)
	a.mu.Unlock()
}

func (a *recordingAuditor) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.events))
	for _, ev := range a.events {
		out = append(out, ev.Action)
	}
	return out
}

type recordingNotifier struct {
	mu   sync.Mutex
	msgs []push.Message
}

func (n *recordingNotifier) Dispatch(msg push.Message) {
	if msg.To == "" {
		return
	}
	n.mu.Lock()
	n.msgs = append(n.msgs, msg)
	n.mu.Unlock()
}

type recordingReminders struct {
	mu        sync.Mutex
	scheduled []string
	cancelled []string
	listed    int
}

func (r *recordingReminders) Schedule(_ context.Context, ap *models.Appointment) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scheduled = append(r.scheduled, ap.ID)
	return true, nil
}

func (r *recordingReminders) ScheduleAll(_ context.Context, apps []models.Appointment) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listed += len(apps)
	return len(apps)
}

func (r *recordingReminders) Cancel(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancelled = append(r.cancelled, id)
	return nil
}

// ------------------------------------------------------------
// Fixture
// ------------------------------------------------------------

type fixture struct {
	repo      *memRepo
	auditor   *recordingAuditor
	notifier  *recordingNotifier
	reminders *recordingReminders
	clock     *clock.MockClock

	availability *GetAvailability
	create       *CreateAppointment
	update       *UpdateAppointmentStatus
	cancel       *CancelAppointment
	list         *ListAppointments
}

func newFixture() *fixture {
	repo := newMemRepo()
	repo.addBarber(models.Barber{ID: "B1", Name: "Rafael", IsActive: true})
	repo.addBarber(models.Barber{ID: "B2", Name: "Inactive", IsActive: false})
	repo.addService(models.Service{ID: "S1", BarberID: "B1", Name: "Corte", Price: 40, IsActive: true})
	repo.addService(models.Service{ID: "S2", BarberID: "B2", Name: "Barba", IsActive: true})
	repo.addService(models.Service{ID: "S3", BarberID: "B1", Name: "Antigo", IsActive: false})
	repo.addProfile(models.Profile{ID: "C1", Name: "Ana", PushToken: "tok-c1"})
	repo.addProfile(models.Profile{ID: "C2", Name: "Bruno"})
	repo.addProfile(models.Profile{ID: "ADM", Name: "Dono", IsAdmin: true, PushToken: "tok-admin"})

	clk := clock.NewMockClock(time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC))
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	f := &fixture{
		repo:      repo,
		auditor:   &recordingAuditor{},
		notifier:  &recordingNotifier{},
		reminders: &recordingReminders{},
		clock:     clk,
	}

	f.availability = NewGetAvailability(repo, time.UTC)
	f.create = NewCreateAppointment(repo, f.availability, f.auditor, f.notifier, clk, time.UTC, log)
	f.update = NewUpdateAppointmentStatus(repo, f.reminders, f.auditor, f.notifier, clk, log)
	f.cancel = NewCancelAppointment(repo, f.auditor, clk)
	f.list = NewListAppointments(repo, f.reminders, time.UTC)
	return f
}
