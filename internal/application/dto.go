package application

import (
	"github.com/shareloop/service-sharing/internal/domain/booking"
	"github.com/shareloop/service-sharing/internal/domain/item"
	"github.com/shareloop/service-sharing/internal/domain/request"
	"github.com/shareloop/service-sharing/internal/domain/user"
	"github.com/shareloop/service-sharing/internal/localtime"
)

// UserDTO is the response representation of a user.
type UserDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ItemShortDTO is the item summary nested in a booking response.
type ItemShortDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
}

// BookingDTO is the full booking view returned by booking endpoints.
type BookingDTO struct {
	ID     int64                   `json:"id"`
	Start  localtime.LocalDateTime `json:"start"`
	End    localtime.LocalDateTime `json:"end"`
	Item   ItemShortDTO            `json:"item"`
	Booker UserDTO                 `json:"booker"`
	Status string                  `json:"status"`
}

// BookingSummaryDTO is the minimal booking view attached to an item's
// last/next booking fields.
type BookingSummaryDTO struct {
	ID       int64                   `json:"id"`
	BookerID int64                   `json:"bookerId"`
	Start    localtime.LocalDateTime `json:"start"`
	End      localtime.LocalDateTime `json:"end"`
}

// CommentDTO is the response representation of a comment.
type CommentDTO struct {
	ID         int64                   `json:"id"`
	Text       string                  `json:"text"`
	AuthorName string                  `json:"authorName"`
	Created    localtime.LocalDateTime `json:"created"`
}

// ItemDTO is the full item view. LastBooking and NextBooking are only
// populated for the item's owner; absence serializes as null, never an
// error.
type ItemDTO struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Available   bool               `json:"available"`
	LastBooking *BookingSummaryDTO `json:"lastBooking"`
	NextBooking *BookingSummaryDTO `json:"nextBooking"`
	Comments    []CommentDTO       `json:"comments"`
	RequestID   *int64             `json:"requestId,omitempty"`
}

// RequestDTO is the response representation of an item request.
type RequestDTO struct {
	ID          int64                   `json:"id"`
	Description string                  `json:"description"`
	RequestorID int64                   `json:"requestorId"`
	Created     localtime.LocalDateTime `json:"created"`
}

// RequestItemDTO is an item listed as answering a request.
type RequestItemDTO struct {
	ItemID      int64  `json:"itemId"`
	ItemName    string `json:"itemName"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   int64  `json:"requestId"`
}

// RequestWithItemsDTO is a request together with the items answering it.
type RequestWithItemsDTO struct {
	ID          int64                   `json:"id"`
	Description string                  `json:"description"`
	Created     localtime.LocalDateTime `json:"created"`
	Items       []RequestItemDTO        `json:"items"`
}

// --- Mapping helpers ---

func toUserDTO(u *user.User) UserDTO {
	return UserDTO{ID: u.ID, Name: u.Name, Email: u.Email}
}

func toItemShortDTO(it *item.Item) ItemShortDTO {
	return ItemShortDTO{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
	}
}

func toBookingDTO(bk *booking.Booking, it *item.Item, booker *user.User) BookingDTO {
	return BookingDTO{
		ID:     bk.ID(),
		Start:  localtime.Of(bk.Start()),
		End:    localtime.Of(bk.End()),
		Item:   toItemShortDTO(it),
		Booker: toUserDTO(booker),
		Status: string(bk.Status()),
	}
}

func toBookingSummaryDTO(bk *booking.Booking) *BookingSummaryDTO {
	if bk == nil {
		return nil
	}
	return &BookingSummaryDTO{
		ID:       bk.ID(),
		BookerID: bk.BookerID(),
		Start:    localtime.Of(bk.Start()),
		End:      localtime.Of(bk.End()),
	}
}

func toCommentDTO(c *item.Comment, authorName string) CommentDTO {
	return CommentDTO{
		ID:         c.ID,
		Text:       c.Text,
		AuthorName: authorName,
		Created:    localtime.Of(c.Created),
	}
}

func toItemDTO(it *item.Item, last, next *booking.Booking, comments []CommentDTO) ItemDTO {
	return ItemDTO{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Available:   it.Available,
		LastBooking: toBookingSummaryDTO(last),
		NextBooking: toBookingSummaryDTO(next),
		Comments:    comments,
		RequestID:   it.RequestID,
	}
}

func toRequestDTO(r *request.ItemRequest) RequestDTO {
	return RequestDTO{
		ID:          r.ID,
		Description: r.Description,
		RequestorID: r.RequestorID,
		Created:     localtime.Of(r.Created),
	}
}

func toRequestItemDTO(it *item.Item) RequestItemDTO {
	dto := RequestItemDTO{
		ItemID:      it.ID,
		ItemName:    it.Name,
		Description: it.Description,
		Available:   it.Available,
	}
	if it.RequestID != nil {
		dto.RequestID = *it.RequestID
	}
	return dto
}

func toRequestWithItemsDTO(r *request.ItemRequest, items []*item.Item) RequestWithItemsDTO {
	answering := make([]RequestItemDTO, 0, len(items))
	for _, it := range items {
		answering = append(answering, toRequestItemDTO(it))
	}
	return RequestWithItemsDTO{
		ID:          r.ID,
		Description: r.Description,
		Created:     localtime.Of(r.Created),
		Items:       answering,
	}
}
