//go:build integration

package main_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shareloop/service-sharing/internal/domain"
	bookingDomain "github.com/shareloop/service-sharing/internal/domain/booking"
	itemDomain "github.com/shareloop/service-sharing/internal/domain/item"
	userDomain "github.com/shareloop/service-sharing/internal/domain/user"
	"github.com/shareloop/service-sharing/internal/repository"
)

func seedUser(t *testing.T, db *gorm.DB, name, email string) *userDomain.User {
	t.Helper()
	u := &userDomain.User{Name: name, Email: email}
	require.NoError(t, repository.NewGormUserRepository(db).Save(context.Background(), u))
	return u
}

func seedItem(t *testing.T, db *gorm.DB, ownerID int64, name string, available bool) *itemDomain.Item {
	t.Helper()
	it := &itemDomain.Item{Name: name, Description: name + " description", Available: available, OwnerID: ownerID}
	require.NoError(t, repository.NewGormItemRepository(db).Save(context.Background(), it))
	return it
}

func seedBooking(t *testing.T, db *gorm.DB, itemID, bookerID int64, start, end time.Time, status bookingDomain.Status) *bookingDomain.Booking {
	t.Helper()
	repo := repository.NewGormBookingRepository(db)
	bk := bookingDomain.New(itemID, bookerID, start, end)
	require.NoError(t, repo.Save(context.Background(), bk))
	if status != bookingDomain.StatusWaiting {
		decided, err := repo.DecideStatus(context.Background(), bk.ID(), status)
		require.NoError(t, err)
		return decided
	}
	return bk
}

func TestBookingListings_StateFilters(t *testing.T) {
	infra := setupPostgres(t)
	defer infra.Cleanup()
	truncateAll(t, infra.DB)
	ctx := context.Background()

	owner := seedUser(t, infra.DB, "Ivan", "ivan@example.com")
	booker := seedUser(t, infra.DB, "Maria", "maria@example.com")
	it := seedItem(t, infra.DB, owner.ID, "Drill", true)

	now := time.Now().UTC().Truncate(time.Microsecond)
	past := seedBooking(t, infra.DB, it.ID, booker.ID, now.Add(-3*time.Hour), now.Add(-2*time.Hour), bookingDomain.StatusApproved)
	current := seedBooking(t, infra.DB, it.ID, booker.ID, now.Add(-time.Hour), now.Add(time.Hour), bookingDomain.StatusApproved)
	future := seedBooking(t, infra.DB, it.ID, booker.ID, now.Add(2*time.Hour), now.Add(3*time.Hour), bookingDomain.StatusWaiting)
	rejected := seedBooking(t, infra.DB, it.ID, booker.ID, now.Add(4*time.Hour), now.Add(5*time.Hour), bookingDomain.StatusRejected)

	repo := repository.NewGormBookingRepository(infra.DB)
	page := bookingDomain.Page{Offset: 0, Limit: 10}

	cases := []struct {
		state bookingDomain.State
		want  []int64
	}{
		// Ordered by start descending throughout.
		{bookingDomain.StateAll, []int64{rejected.ID(), future.ID(), current.ID(), past.ID()}},
		{bookingDomain.StateCurrent, []int64{current.ID()}},
		{bookingDomain.StatePast, []int64{past.ID()}},
		{bookingDomain.StateFuture, []int64{rejected.ID(), future.ID()}},
		{bookingDomain.StateWaiting, []int64{future.ID()}},
		{bookingDomain.StateRejected, []int64{rejected.ID()}},
	}
	for _, tc := range cases {
		t.Run(string(tc.state), func(t *testing.T) {
			forBooker, err := repo.ListForBooker(ctx, booker.ID, tc.state, now, page)
			require.NoError(t, err)
			gotBooker := make([]int64, len(forBooker))
			for i, bk := range forBooker {
				gotBooker[i] = bk.ID()
			}
			assert.Equal(t, tc.want, gotBooker)

			forOwner, err := repo.ListForOwner(ctx, owner.ID, tc.state, now, page)
			require.NoError(t, err)
			gotOwner := make([]int64, len(forOwner))
			for i, bk := range forOwner {
				gotOwner[i] = bk.ID()
			}
			assert.Equal(t, tc.want, gotOwner)
		})
	}
}

func TestBookingListings_Pagination(t *testing.T) {
	infra := setupPostgres(t)
	defer infra.Cleanup()
	truncateAll(t, infra.DB)
	ctx := context.Background()

	owner := seedUser(t, infra.DB, "Ivan", "ivan@example.com")
	booker := seedUser(t, infra.DB, "Maria", "maria@example.com")
	it := seedItem(t, infra.DB, owner.ID, "Drill", true)

	now := time.Now().UTC().Truncate(time.Microsecond)
	var ids []int64
	for i := 0; i < 5; i++ {
		bk := seedBooking(t, infra.DB, it.ID, booker.ID,
			now.Add(time.Duration(i+1)*time.Hour), now.Add(time.Duration(i+2)*time.Hour), bookingDomain.StatusWaiting)
		ids = append(ids, bk.ID())
	}

	repo := repository.NewGormBookingRepository(infra.DB)

	first, err := repo.ListForBooker(ctx, booker.ID, bookingDomain.StateAll, now, bookingDomain.Page{Offset: 0, Limit: 2})
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, ids[4], first[0].ID())
	assert.Equal(t, ids[3], first[1].ID())

	second, err := repo.ListForBooker(ctx, booker.ID, bookingDomain.StateAll, now, bookingDomain.Page{Offset: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.Equal(t, ids[2], second[0].ID())
	assert.Equal(t, ids[1], second[1].ID())
}

func TestDecideStatus_SecondDeciderLoses(t *testing.T) {
	infra := setupPostgres(t)
	defer infra.Cleanup()
	truncateAll(t, infra.DB)
	ctx := context.Background()

	owner := seedUser(t, infra.DB, "Ivan", "ivan@example.com")
	booker := seedUser(t, infra.DB, "Maria", "maria@example.com")
	it := seedItem(t, infra.DB, owner.ID, "Drill", true)

	now := time.Now().UTC()
	bk := seedBooking(t, infra.DB, it.ID, booker.ID, now.Add(time.Hour), now.Add(2*time.Hour), bookingDomain.StatusWaiting)

	repo := repository.NewGormBookingRepository(infra.DB)

	approved, err := repo.DecideStatus(ctx, bk.ID(), bookingDomain.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, bookingDomain.StatusApproved, approved.Status())

	_, err = repo.DecideStatus(ctx, bk.ID(), bookingDomain.StatusRejected)
	var statusErr *domain.StatusUpdateError
	assert.ErrorAs(t, err, &statusErr)

	// The first decision sticks.
	reloaded, err := repo.FindByID(ctx, bk.ID())
	require.NoError(t, err)
	assert.Equal(t, bookingDomain.StatusApproved, reloaded.Status())
}

func TestLastAndNextForItem(t *testing.T) {
	infra := setupPostgres(t)
	defer infra.Cleanup()
	truncateAll(t, infra.DB)
	ctx := context.Background()

	owner := seedUser(t, infra.DB, "Ivan", "ivan@example.com")
	booker := seedUser(t, infra.DB, "Maria", "maria@example.com")
	it := seedItem(t, infra.DB, owner.ID, "Drill", true)

	now := time.Now().UTC().Truncate(time.Microsecond)
	last := seedBooking(t, infra.DB, it.ID, booker.ID, now.Add(-4*time.Hour), now.Add(-3*time.Hour), bookingDomain.StatusApproved)
	seedBooking(t, infra.DB, it.ID, booker.ID, now.Add(-2*time.Hour), now.Add(-time.Hour), bookingDomain.StatusRejected)
	next := seedBooking(t, infra.DB, it.ID, booker.ID, now.Add(time.Hour), now.Add(2*time.Hour), bookingDomain.StatusWaiting)

	repo := repository.NewGormBookingRepository(infra.DB)

	gotLast, err := repo.LastForItem(ctx, it.ID, now)
	require.NoError(t, err)
	// Rejected bookings never show up as summaries.
	require.NotNil(t, gotLast)
	assert.Equal(t, last.ID(), gotLast.ID())

	gotNext, err := repo.NextForItem(ctx, it.ID, now)
	require.NoError(t, err)
	require.NotNil(t, gotNext)
	assert.Equal(t, next.ID(), gotNext.ID())

	// An item with no bookings yields nil, nil.
	empty := seedItem(t, infra.DB, owner.ID, "Ladder", true)
	gotLast, err = repo.LastForItem(ctx, empty.ID, now)
	require.NoError(t, err)
	assert.Nil(t, gotLast)
	gotNext, err = repo.NextForItem(ctx, empty.ID, now)
	require.NoError(t, err)
	assert.Nil(t, gotNext)
}

func TestExistsFinishedFor_GatesOnStartAndStatus(t *testing.T) {
	infra := setupPostgres(t)
	defer infra.Cleanup()
	truncateAll(t, infra.DB)
	ctx := context.Background()

	owner := seedUser(t, infra.DB, "Ivan", "ivan@example.com")
	booker := seedUser(t, infra.DB, "Maria", "maria@example.com")
	stranger := seedUser(t, infra.DB, "Petr", "petr@example.com")
	it := seedItem(t, infra.DB, owner.ID, "Drill", true)

	now := time.Now().UTC()
	repo := repository.NewGormBookingRepository(infra.DB)

	// Future booking does not open the comment gate.
	seedBooking(t, infra.DB, it.ID, booker.ID, now.Add(time.Hour), now.Add(2*time.Hour), bookingDomain.StatusApproved)
	ok, err := repo.ExistsFinishedFor(ctx, it.ID, booker.ID, now)
	require.NoError(t, err)
	assert.False(t, ok)

	// A started booking does.
	seedBooking(t, infra.DB, it.ID, booker.ID, now.Add(-2*time.Hour), now.Add(-time.Hour), bookingDomain.StatusApproved)
	ok, err = repo.ExistsFinishedFor(ctx, it.ID, booker.ID, now)
	require.NoError(t, err)
	assert.True(t, ok)

	// A rejected booking does not count for another user.
	seedBooking(t, infra.DB, it.ID, stranger.ID, now.Add(-2*time.Hour), now.Add(-time.Hour), bookingDomain.StatusRejected)
	ok, err = repo.ExistsFinishedFor(ctx, it.ID, stranger.ID, now)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	infra := setupPostgres(t)
	defer infra.Cleanup()
	truncateAll(t, infra.DB)
	ctx := context.Background()

	repo := repository.NewGormUserRepository(infra.DB)
	require.NoError(t, repo.Save(ctx, &userDomain.User{Name: "Ivan", Email: "ivan@example.com"}))

	err := repo.Save(ctx, &userDomain.User{Name: "Impostor", Email: "ivan@example.com"})
	var exists *domain.EmailExistsError
	assert.ErrorAs(t, err, &exists)
}

func TestItemSearch_CaseInsensitiveAndAvailableOnly(t *testing.T) {
	infra := setupPostgres(t)
	defer infra.Cleanup()
	truncateAll(t, infra.DB)
	ctx := context.Background()

	owner := seedUser(t, infra.DB, "Ivan", "ivan@example.com")
	seedItem(t, infra.DB, owner.ID, "Cordless DRILL", true)
	seedItem(t, infra.DB, owner.ID, "Hammer drill", false)
	seedItem(t, infra.DB, owner.ID, "Ladder", true)

	repo := repository.NewGormItemRepository(infra.DB)
	found, err := repo.Search(ctx, "drill", itemDomain.Page{Offset: 0, Limit: 10})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Cordless DRILL", found[0].Name)
}
