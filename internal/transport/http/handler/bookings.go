package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"roomdesk/internal/domain"
	"roomdesk/internal/service"
	"roomdesk/internal/transport/http/ez"
	"roomdesk/internal/transport/http/middleware"
	resp "roomdesk/internal/transport/http/response"
)

type BookingHandler struct {
	bookings *service.BookingService
}

func NewBookingHandler(bookings *service.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// listQuery narrows the admin listing. Dates are RFC 3339 and select
// bookings fully contained in [startDate, endDate].
type listQuery struct {
	User      string `form:"user"`
	Room      string `form:"room"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}

func (q *listQuery) filter() (domain.BookingFilter, error) {
	f := domain.BookingFilter{UserID: q.User, RoomID: q.Room}
	if q.StartDate != "" {
		t, err := time.Parse(time.RFC3339, q.StartDate)
		if err != nil {
			return f, ez.BadRequest("startDate: " + err.Error())
		}
		f.From = &t
	}
	if q.EndDate != "" {
		t, err := time.Parse(time.RFC3339, q.EndDate)
		if err != nil {
			return f, ez.BadRequest("endDate: " + err.Error())
		}
		f.To = &t
	}
	return f, nil
}

func (h *BookingHandler) Mount(authed *gin.RouterGroup) {
	e := ez.New(authed)
	admin := []string{domain.RoleAdmin}

	ez.Register(e, ez.Action[service.CreateBookingInput, *domain.Booking]{
		Method: http.MethodPost,
		Path:   "/bookings",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *service.CreateBookingInput) (*domain.Booking, error) {
			uid := c.GetString(middleware.KeyUserID)
			isAdmin := c.GetString(middleware.KeyRole) == domain.RoleAdmin
			return h.bookings.Create(c.Request.Context(), *in, uid, isAdmin)
		},
	})

	ez.Register(e, ez.Action[listQuery, []domain.Booking]{
		Method: http.MethodGet,
		Path:   "/bookings",
		Binder: ez.BindQuery,
		Roles:  admin,
		Handler: func(c *gin.Context, in *listQuery) ([]domain.Booking, error) {
			f, err := in.filter()
			if err != nil {
				return nil, err
			}
			return h.bookings.FindByFilters(f)
		},
	})

	ez.Register(e, ez.Action[listQuery, []domain.Booking]{
		Method: http.MethodGet,
		Path:   "/bookings/my",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *listQuery) ([]domain.Booking, error) {
			f, err := in.filter()
			if err != nil {
				return nil, err
			}
			f.UserID = c.GetString(middleware.KeyUserID)
			return h.bookings.FindByFilters(f)
		},
	})

	e.Raw(http.MethodGet, "/bookings/export/csv", h.exportCSV)

	ez.Register(e, ez.Action[struct{}, []domain.HourCount]{
		Method: http.MethodGet,
		Path:   "/bookings/analytics/peak-hours",
		Binder: ez.BindNone,
		Roles:  admin,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.HourCount, error) {
			return h.bookings.PeakHours()
		},
	})

	type idleQuery struct {
		Days int `form:"days" binding:"omitempty,min=1"`
	}
	ez.Register(e, ez.Action[idleQuery, []domain.Room]{
		Method: http.MethodGet,
		Path:   "/bookings/analytics/idle-rooms",
		Binder: ez.BindQuery,
		Roles:  admin,
		Handler: func(c *gin.Context, in *idleQuery) ([]domain.Room, error) {
			return h.bookings.IdleRooms(in.Days)
		},
	})

	ez.Register(e, ez.Action[struct{}, *domain.Booking]{
		Method: http.MethodGet,
		Path:   "/bookings/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Booking, error) {
			return h.ownBooking(c)
		},
	})

	ez.Register(e, ez.Action[service.UpdateBookingInput, *domain.Booking]{
		Method: http.MethodPut,
		Path:   "/bookings/:id",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *service.UpdateBookingInput) (*domain.Booking, error) {
			if _, err := h.ownBooking(c); err != nil {
				return nil, err
			}
			if c.GetString(middleware.KeyRole) != domain.RoleAdmin {
				in.User = nil
			}
			return h.bookings.Update(c.Param("id"), *in)
		},
	})

	type statusIn struct {
		Status string `json:"status" binding:"required"`
	}
	ez.Register(e, ez.Action[statusIn, *domain.Booking]{
		Method: http.MethodPatch,
		Path:   "/bookings/:id/status",
		Binder: ez.BindJSON,
		Roles:  admin,
		Handler: func(c *gin.Context, in *statusIn) (*domain.Booking, error) {
			return h.bookings.UpdateStatus(c.Request.Context(), c.Param("id"), in.Status)
		},
	})

	ez.Register(e, ez.Action[struct{}, *domain.Booking]{
		Method: http.MethodDelete,
		Path:   "/bookings/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Booking, error) {
			if _, err := h.ownBooking(c); err != nil {
				return nil, err
			}
			return h.bookings.Delete(c.Param("id"))
		},
	})
}

// ownBooking fetches the path booking and enforces owner scope: a
// non-admin asking for someone else's booking gets not-found, never
// forbidden, so foreign ids stay unguessable.
func (h *BookingHandler) ownBooking(c *gin.Context) (*domain.Booking, error) {
	b, err := h.bookings.FindByID(c.Param("id"))
	if err != nil {
		return nil, err
	}
	if c.GetString(middleware.KeyRole) != domain.RoleAdmin && b.UserID != c.GetString(middleware.KeyUserID) {
		return nil, ez.NotFound(fmt.Sprintf("booking %s not found", c.Param("id")))
	}
	return b, nil
}

func (h *BookingHandler) exportCSV(c *gin.Context) {
	if c.GetString(middleware.KeyRole) != domain.RoleAdmin {
		c.JSON(http.StatusOK, resp.Error(resp.CodeForbidden, "forbidden"))
		return
	}
	list, err := h.bookings.FindAll()
	if err != nil {
		c.JSON(http.StatusOK, resp.Error(resp.CodeServerError, err.Error()))
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="bookings-`+time.Now().UTC().Format("20060102")+`.csv"`)
	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"_id", "user", "room", "startDate", "endDate", "status"})
	for i := range list {
		b := &list[i]
		_ = w.Write([]string{
			b.ID,
			b.UserID,
			b.RoomID,
			b.StartDate.UTC().Format(time.RFC3339),
			b.EndDate.UTC().Format(time.RFC3339),
			b.Status,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}
