package application

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/shareloop/service-sharing/internal/domain/booking"
	"github.com/shareloop/service-sharing/internal/domain/item"
	"github.com/shareloop/service-sharing/internal/domain/request"
	"github.com/shareloop/service-sharing/internal/domain/user"
)

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) Save(ctx context.Context, bk *booking.Booking) error {
	return m.Called(ctx, bk).Error(0)
}

func (m *mockBookingRepo) FindByID(ctx context.Context, id int64) (*booking.Booking, error) {
	args := m.Called(ctx, id)
	if bk := args.Get(0); bk != nil {
		return bk.(*booking.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) DecideStatus(ctx context.Context, id int64, target booking.Status) (*booking.Booking, error) {
	args := m.Called(ctx, id, target)
	if bk := args.Get(0); bk != nil {
		return bk.(*booking.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) ListForBooker(ctx context.Context, bookerID int64, state booking.State, now time.Time, page booking.Page) ([]*booking.Booking, error) {
	args := m.Called(ctx, bookerID, state, now, page)
	if bks := args.Get(0); bks != nil {
		return bks.([]*booking.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) ListForOwner(ctx context.Context, ownerID int64, state booking.State, now time.Time, page booking.Page) ([]*booking.Booking, error) {
	args := m.Called(ctx, ownerID, state, now, page)
	if bks := args.Get(0); bks != nil {
		return bks.([]*booking.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) LastForItem(ctx context.Context, itemID int64, now time.Time) (*booking.Booking, error) {
	args := m.Called(ctx, itemID, now)
	if bk := args.Get(0); bk != nil {
		return bk.(*booking.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) NextForItem(ctx context.Context, itemID int64, now time.Time) (*booking.Booking, error) {
	args := m.Called(ctx, itemID, now)
	if bk := args.Get(0); bk != nil {
		return bk.(*booking.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) ExistsFinishedFor(ctx context.Context, itemID, bookerID int64, before time.Time) (bool, error) {
	args := m.Called(ctx, itemID, bookerID, before)
	return args.Bool(0), args.Error(1)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Save(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id int64) (*user.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*user.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) FindAll(ctx context.Context) ([]*user.User, error) {
	args := m.Called(ctx)
	if us := args.Get(0); us != nil {
		return us.([]*user.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) ListByIDs(ctx context.Context, ids []int64) ([]*user.User, error) {
	args := m.Called(ctx, ids)
	if us := args.Get(0); us != nil {
		return us.([]*user.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockItemRepo struct{ mock.Mock }

func (m *mockItemRepo) Save(ctx context.Context, it *item.Item) error {
	return m.Called(ctx, it).Error(0)
}

func (m *mockItemRepo) FindByID(ctx context.Context, id int64) (*item.Item, error) {
	args := m.Called(ctx, id)
	if it := args.Get(0); it != nil {
		return it.(*item.Item), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockItemRepo) ListByIDs(ctx context.Context, ids []int64) ([]*item.Item, error) {
	args := m.Called(ctx, ids)
	if its := args.Get(0); its != nil {
		return its.([]*item.Item), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockItemRepo) Update(ctx context.Context, it *item.Item) error {
	return m.Called(ctx, it).Error(0)
}

func (m *mockItemRepo) ListByOwner(ctx context.Context, ownerID int64, page item.Page) ([]*item.Item, error) {
	args := m.Called(ctx, ownerID, page)
	if its := args.Get(0); its != nil {
		return its.([]*item.Item), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockItemRepo) CountByOwner(ctx context.Context, ownerID int64) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockItemRepo) Search(ctx context.Context, text string, page item.Page) ([]*item.Item, error) {
	args := m.Called(ctx, text, page)
	if its := args.Get(0); its != nil {
		return its.([]*item.Item), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockItemRepo) ListByRequestIDs(ctx context.Context, requestIDs []int64) ([]*item.Item, error) {
	args := m.Called(ctx, requestIDs)
	if its := args.Get(0); its != nil {
		return its.([]*item.Item), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockCommentRepo struct{ mock.Mock }

func (m *mockCommentRepo) Save(ctx context.Context, c *item.Comment) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockCommentRepo) ListByItem(ctx context.Context, itemID int64) ([]*item.Comment, error) {
	args := m.Called(ctx, itemID)
	if cs := args.Get(0); cs != nil {
		return cs.([]*item.Comment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCommentRepo) ListByItemIDs(ctx context.Context, itemIDs []int64) ([]*item.Comment, error) {
	args := m.Called(ctx, itemIDs)
	if cs := args.Get(0); cs != nil {
		return cs.([]*item.Comment), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockRequestRepo struct{ mock.Mock }

func (m *mockRequestRepo) Save(ctx context.Context, r *request.ItemRequest) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockRequestRepo) FindByID(ctx context.Context, id int64) (*request.ItemRequest, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*request.ItemRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRequestRepo) ListByRequestor(ctx context.Context, requestorID int64) ([]*request.ItemRequest, error) {
	args := m.Called(ctx, requestorID)
	if rs := args.Get(0); rs != nil {
		return rs.([]*request.ItemRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRequestRepo) ListOthers(ctx context.Context, requestorID int64, page request.Page) ([]*request.ItemRequest, error) {
	args := m.Called(ctx, requestorID, page)
	if rs := args.Get(0); rs != nil {
		return rs.([]*request.ItemRequest), args.Error(1)
	}
	return nil, args.Error(1)
}
