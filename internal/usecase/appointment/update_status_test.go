package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/push"
)

func pendingAt(id, customer, clockTime string) func(*fixture) {
	return func(f *fixture) {
		ap := confirmed(id, "B1", "2025-06-01", clockTime, customer)
		ap.Status = string(domain.StatusPending)
		f.repo.put(ap)
	}
}

func TestConfirmSchedulesReminderAndNotifies(t *testing.T) {
	f := newFixture()
	pendingAt("a1", "C1", "14:00:00")(f)

	ap, err := f.update.Execute(context.Background(), UpdateStatusInput{ActorID: "ADM", AppointmentID: "a1", Status: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), ap.Status)
	assert.NotNil(t, f.repo.get("a1").UpdatedAt)

	assert.Equal(t, []string{"a1"}, f.reminders.scheduled)
	assert.Empty(t, f.reminders.cancelled)

	require.Len(t, f.notifier.msgs, 1)
	assert.Equal(t, "tok-c1", f.notifier.msgs[0].To)
	assert.Equal(t, push.TitleStatusChanged, f.notifier.msgs[0].Title)
	assert.Equal(t, "Your appointment with Rafael for Corte has been confirmed", f.notifier.msgs[0].Body)
	assert.Equal(t, []string{"appointment_status_changed"}, f.auditor.actions())

	// confirmado passa a bloquear 02:00 PM, mas não 02:30 PM
	booked, err := f.availability.Execute(context.Background(), domain.AvailabilityInput{BarberID: "B1", Date: "2025-06-01"})
	require.NoError(t, err)
	assert.False(t, booked.IsAvailable("02:00 PM"))
	assert.True(t, booked.IsAvailable("02:30 PM"))
}

func TestLeavingConfirmedCancelsReminder(t *testing.T) {
	f := newFixture()
	f.repo.put(confirmed("a1", "B1", "2025-06-01", "14:00:00", "C1"))

	_, err := f.update.Execute(context.Background(), UpdateStatusInput{AppointmentID: "a1", Status: "in_progress"})
	require.NoError(t, err)

	assert.Equal(t, []string{"a1"}, f.reminders.cancelled)
	assert.Equal(t, "Your appointment with Rafael for Corte has been in progress", f.notifier.msgs[0].Body)
}

func TestSecondConfirmationOfSameSlotIsRejected(t *testing.T) {
	f := newFixture()
	pendingAt("a1", "C1", "14:00:00")(f)
	pendingAt("a2", "C2", "14:00:00")(f)

	_, err := f.update.Execute(context.Background(), UpdateStatusInput{AppointmentID: "a1", Status: "confirmed"})
	require.NoError(t, err)

	_, err = f.update.Execute(context.Background(), UpdateStatusInput{AppointmentID: "a2", Status: "confirmed"})
	assert.True(t, httperr.IsBusiness(err, "slot_already_confirmed"))
	assert.Equal(t, string(domain.StatusPending), f.repo.get("a2").Status)

	// o pendente perdedor ainda pode ser cancelado
	_, err = f.update.Execute(context.Background(), UpdateStatusInput{AppointmentID: "a2", Status: "cancelled"})
	assert.NoError(t, err)
}

func TestUpdateStatusErrors(t *testing.T) {
	f := newFixture()
	f.repo.put(confirmed("done", "B1", "2025-06-01", "10:00:00", "C1"))
	completed := f.repo.get("done")
	completed.Status = string(domain.StatusCompleted)
	f.repo.put(completed)

	_, err := f.update.Execute(context.Background(), UpdateStatusInput{AppointmentID: "done", Status: "bogus"})
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))

	_, err = f.update.Execute(context.Background(), UpdateStatusInput{AppointmentID: "missing", Status: "confirmed"})
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))

	_, err = f.update.Execute(context.Background(), UpdateStatusInput{AppointmentID: "done", Status: "pending"})
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	assert.Empty(t, f.notifier.msgs)
	assert.Empty(t, f.auditor.actions())
}

func TestCustomerCancelOwnPending(t *testing.T) {
	f := newFixture()
	pendingAt("a1", "C1", "14:00:00")(f)

	_, err := f.cancel.Execute(context.Background(), "C2", "a1")
	assert.True(t, httperr.IsBusiness(err, "forbidden"))

	ap, err := f.cancel.Execute(context.Background(), "C1", "a1")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), ap.Status)
	assert.Equal(t, string(domain.StatusCancelled), f.repo.get("a1").Status)
	assert.Empty(t, f.notifier.msgs, "customer cancellation sends no push")

	_, err = f.cancel.Execute(context.Background(), "C1", "a1")
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	_, err = f.cancel.Execute(context.Background(), "C1", "missing")
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}
