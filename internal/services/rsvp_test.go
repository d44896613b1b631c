package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusevents/internal/domain"
)

func TestRSVPService_RSVP(t *testing.T) {
	ctx := context.Background()
	student := domain.NewStudentActor(10, "sam", nil)
	board := domain.NewStudentActor(11, "blake", []int64{5})
	admin := domain.NewAdminActor(1, "admin")

	t.Run("first RSVP creates", func(t *testing.T) {
		eventRepo := newFakeEventRepo()
		event := seedEvent(t, eventRepo, &domain.Event{HostOrganizationID: ptrInt64(5), Status: domain.StatusPublished, IsApproved: true})
		rsvpRepo := newFakeRSVPRepo()
		svc := NewRSVPService(eventRepo, rsvpRepo, testTimeout)

		rsvp, created, err := svc.RSVP(ctx, student, event.ID)
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, event.ID, rsvp.EventID)
		assert.Equal(t, int64(10), rsvp.UserID)
	})

	t.Run("second RSVP is idempotent", func(t *testing.T) {
		eventRepo := newFakeEventRepo()
		event := seedEvent(t, eventRepo, &domain.Event{HostOrganizationID: ptrInt64(5), Status: domain.StatusPublished, IsApproved: true})
		rsvpRepo := newFakeRSVPRepo()
		svc := NewRSVPService(eventRepo, rsvpRepo, testTimeout)

		first, created, err := svc.RSVP(ctx, student, event.ID)
		require.NoError(t, err)
		require.True(t, created)

		second, created, err := svc.RSVP(ctx, student, event.ID)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, first.ID, second.ID)

		count, err := rsvpRepo.CountByEventID(ctx, event.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "at most one RSVP per user and event")
	})

	t.Run("anonymous cannot RSVP", func(t *testing.T) {
		eventRepo := newFakeEventRepo()
		event := seedEvent(t, eventRepo, &domain.Event{HostOrganizationID: ptrInt64(5), Status: domain.StatusPublished, IsApproved: true})
		svc := NewRSVPService(eventRepo, newFakeRSVPRepo(), testTimeout)

		_, _, err := svc.RSVP(ctx, domain.Anonymous, event.ID)
		require.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("invisible event looks absent", func(t *testing.T) {
		eventRepo := newFakeEventRepo()
		event := seedEvent(t, eventRepo, &domain.Event{HostOrganizationID: ptrInt64(5), Status: domain.StatusDraft})
		svc := NewRSVPService(eventRepo, newFakeRSVPRepo(), testTimeout)

		_, _, err := svc.RSVP(ctx, student, event.ID)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("cancelled event rejects everyone", func(t *testing.T) {
		eventRepo := newFakeEventRepo()
		event := seedEvent(t, eventRepo, &domain.Event{HostOrganizationID: ptrInt64(5), Status: domain.StatusCancelled, IsApproved: true})
		svc := NewRSVPService(eventRepo, newFakeRSVPRepo(), testTimeout)

		// Visible to board and admin, so they get forbidden, not 404.
		_, _, err := svc.RSVP(ctx, board, event.ID)
		require.ErrorIs(t, err, domain.ErrForbidden)
		_, _, err = svc.RSVP(ctx, admin, event.ID)
		require.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("board RSVPs to own org draft", func(t *testing.T) {
		eventRepo := newFakeEventRepo()
		event := seedEvent(t, eventRepo, &domain.Event{HostOrganizationID: ptrInt64(5), Status: domain.StatusDraft})
		svc := NewRSVPService(eventRepo, newFakeRSVPRepo(), testTimeout)

		_, created, err := svc.RSVP(ctx, board, event.ID)
		require.NoError(t, err)
		assert.True(t, created)
	})
}

func TestRSVPService_CancelRSVP(t *testing.T) {
	ctx := context.Background()
	student := domain.NewStudentActor(10, "sam", nil)

	t.Run("cancel removes the RSVP", func(t *testing.T) {
		eventRepo := newFakeEventRepo()
		event := seedEvent(t, eventRepo, &domain.Event{HostOrganizationID: ptrInt64(5), Status: domain.StatusPublished, IsApproved: true})
		rsvpRepo := newFakeRSVPRepo()
		svc := NewRSVPService(eventRepo, rsvpRepo, testTimeout)

		_, _, err := svc.RSVP(ctx, student, event.ID)
		require.NoError(t, err)
		require.NoError(t, svc.CancelRSVP(ctx, student, event.ID))

		count, err := rsvpRepo.CountByEventID(ctx, event.ID)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("cancel without RSVP is not found", func(t *testing.T) {
		eventRepo := newFakeEventRepo()
		event := seedEvent(t, eventRepo, &domain.Event{HostOrganizationID: ptrInt64(5), Status: domain.StatusPublished, IsApproved: true})
		svc := NewRSVPService(eventRepo, newFakeRSVPRepo(), testTimeout)

		require.ErrorIs(t, svc.CancelRSVP(ctx, student, event.ID), domain.ErrNotFound)
	})

	t.Run("anonymous cannot cancel", func(t *testing.T) {
		svc := NewRSVPService(newFakeEventRepo(), newFakeRSVPRepo(), testTimeout)
		require.ErrorIs(t, svc.CancelRSVP(ctx, domain.Anonymous, 1), domain.ErrUnauthenticated)
	})
}

func TestRSVPService_ListMyRSVPs(t *testing.T) {
	ctx := context.Background()
	student := domain.NewStudentActor(10, "sam", nil)

	eventRepo := newFakeEventRepo()
	kept := seedEvent(t, eventRepo, &domain.Event{HostOrganizationID: ptrInt64(5), Status: domain.StatusPublished, IsApproved: true})
	doomed := seedEvent(t, eventRepo, &domain.Event{HostOrganizationID: ptrInt64(5), Status: domain.StatusPublished, IsApproved: true})
	rsvpRepo := newFakeRSVPRepo()
	svc := NewRSVPService(eventRepo, rsvpRepo, testTimeout)

	_, _, err := svc.RSVP(ctx, student, kept.ID)
	require.NoError(t, err)
	_, _, err = svc.RSVP(ctx, student, doomed.ID)
	require.NoError(t, err)

	// Event deleted out from under its RSVP; the listing skips it.
	require.NoError(t, eventRepo.Delete(ctx, doomed.ID))

	list, err := svc.ListMyRSVPs(ctx, student)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, kept.ID, list[0].Event.ID)

	_, err = svc.ListMyRSVPs(ctx, domain.Anonymous)
	require.ErrorIs(t, err, domain.ErrUnauthenticated)
}
