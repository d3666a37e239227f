package httpgin

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/Nithya-42/Stagelink/internal/auth"
	redisrepo "github.com/Nithya-42/Stagelink/internal/repository/redis"
	"github.com/Nithya-42/Stagelink/internal/service"
	"github.com/Nithya-42/Stagelink/internal/service/admin"
	"github.com/Nithya-42/Stagelink/internal/service/booking"
	"github.com/Nithya-42/Stagelink/internal/service/catalog"
	"github.com/Nithya-42/Stagelink/internal/service/messaging"
	"github.com/Nithya-42/Stagelink/internal/service/review"
)

func NewRouter(
	svcs *service.Services,
	a *auth.Auth,
	idem *redisrepo.IdempotencyStore,
	logger *slog.Logger,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery(), LoggingMiddleware(logger), RequestIDMiddleware(), CORS())
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// health
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public API
	r.POST("/auth/login", handleLogin(a))

	r.GET("/artists", handleListArtists(svcs))
	r.GET("/artists/:id", handleGetArtist(svcs))
	r.GET("/artists/:id/calendar", handleArtistCalendar(svcs))
	r.GET("/artists/:id/availability", handleArtistAvailability(svcs))
	r.GET("/artists/:id/reviews", handleArtistReviews(svcs))

	// Authenticated API
	authed := r.Group("/", AuthMiddleware(a))
	{
		authed.POST("/bookings", handleCreateBooking(svcs, idem))
		authed.GET("/bookings", handleListBookings(svcs))
		authed.GET("/bookings/upcoming", handleListUpcomingBookings(svcs))
		authed.GET("/bookings/past", handleListPastBookings(svcs))
		authed.GET("/bookings/:id", handleGetBooking(svcs))
		authed.POST("/bookings/:id/respond", handleRespondBooking(svcs))

		authed.GET("/notifications", handleListNotifications(svcs))
		authed.GET("/notifications/unread-count", handleUnreadCount(svcs))

		authed.GET("/calendar", handleMyCalendar(svcs))
		authed.POST("/calendar", handleBlockDate(svcs))
		authed.DELETE("/calendar/:date", handleUnblockDate(svcs))

		authed.POST("/reviews", handleAddReview(svcs))
		authed.POST("/artists/:id/favorite", handleToggleFavorite(svcs))
		authed.GET("/favorites", handleListFavorites(svcs))

		authed.POST("/conversations", handleStartConversation(svcs))
		authed.GET("/conversations", handleInbox(svcs))
		authed.GET("/conversations/:id/messages", handleListMessages(svcs))
		authed.POST("/conversations/:id/messages", handleSendMessage(svcs))
	}

	// Staff API
	staff := r.Group("/admin", AuthMiddleware(a), StaffOnlyMiddleware())
	{
		staff.POST("/artists/:id/approve", handleApproveArtist(svcs))
		staff.POST("/bookings/complete-elapsed", handleCompleteElapsed(svcs))
	}

	return r
}

// --- Handlers with Swagger annotations ---

// @Summary  Log in
// @Param    req body  LoginRequest true "payload"
// @Success  200 {object} LoginResponse
// @Failure  401 {object} ErrorResponse
// @Failure  403 {object} ErrorResponse "account pending approval"
// @Router   /auth/login [post]
func handleLogin(a *auth.Auth) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		token, user, err := a.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrInvalidCredentials):
				c.JSON(
					http.StatusUnauthorized,
					ErrorResponse{Error: "invalid email or password"},
				)
			case errors.Is(err, auth.ErrAccountInactive):
				c.JSON(
					http.StatusForbidden,
					ErrorResponse{Error: "account is pending approval"},
				)
			default:
				respondErr(c, err)
			}
			return
		}

		c.JSON(http.StatusOK, LoginResponse{
			Token: token,
			ID:    user.ID,
			Email: user.Email,
			Role:  user.Role,
			Staff: user.Staff,
		})
	}
}

// @Summary  List approved artists
// @Param    category  query  string  false "category filter"
// @Param    location  query  string  false "location filter"
// @Success  200 {array} domain.ArtistProfile
// @Router   /artists [get]
func handleListArtists(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		artists, err := svcs.Catalog.ListArtists(
			c.Request.Context(),
			c.Query("category"),
			c.Query("location"),
		)
		if err != nil {
			respondErr(c, err)
			return
		}
		// ETag + Cache-Control 30s
		writeJSONWithCache(c, http.StatusOK, artists, "public, max-age=30", true)
	}
}

// @Summary  Get artist profile
// @Param    id  path  int  true  "Artist ID"
// @Success  200 {object} domain.ArtistSummary
// @Failure  404 {object} ErrorResponse
// @Router   /artists/{id} [get]
func handleGetArtist(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		artistID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		a, err := svcs.Catalog.GetArtist(c.Request.Context(), artistID)
		if err != nil {
			respondErr(c, err)
			return
		}
		// ETag + Cache-Control 60s
		writeJSONWithCache(c, http.StatusOK, a, "public, max-age=60", true)
	}
}

// @Summary  Artist calendar (blocked dates)
// @Param    id  path  int  true  "Artist ID"
// @Success  200 {array} domain.Availability
// @Router   /artists/{id}/calendar [get]
func handleArtistCalendar(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		artistID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		entries, err := svcs.Catalog.Calendar(c.Request.Context(), artistID)
		if err != nil {
			respondErr(c, err)
			return
		}
		// ETag + Cache-Control 15s
		writeJSONWithCache(c, http.StatusOK, entries, "public, max-age=15", true)
	}
}

// @Summary  Check artist availability on a date
// @Param    id    path   int     true  "Artist ID"
// @Param    date  query  string  true  "YYYY-MM-DD"
// @Success  200 {object} AvailabilityResponse
// @Router   /artists/{id}/availability [get]
func handleArtistAvailability(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		artistID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		date, err := parseDate(c.Query("date"))
		if err != nil {
			badRequest(c, "invalid date (YYYY-MM-DD)")
			return
		}
		available, err := svcs.Catalog.IsAvailable(c.Request.Context(), artistID, date)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, AvailabilityResponse{
			Date:      date.Format(time.DateOnly),
			Available: available,
		})
	}
}

// @Summary  List artist reviews
// @Param    id  path  int  true  "Artist ID"
// @Success  200 {array} domain.Review
// @Router   /artists/{id}/reviews [get]
func handleArtistReviews(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		artistID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		reviews, err := svcs.Review.ListForArtist(c.Request.Context(), artistID)
		if err != nil {
			respondErr(c, err)
			return
		}
		// ETag + Cache-Control 30s
		writeJSONWithCache(c, http.StatusOK, reviews, "public, max-age=30", true)
	}
}

// @Summary  Create booking request (idempotent)
// @Param    req body  CreateBookingRequest true "payload"
// @Header   201 {string} Idempotency-Key "echo"
// @Success  201 {object} domain.Booking
// @Failure  400 {object} ErrorResponse
// @Failure  409 {object} ErrorResponse "date unavailable / idem in progress"
// @Failure  429 {object} ErrorResponse "rate limited"
// @Security BearerAuth
// @Router   /bookings [post]
func handleCreateBooking(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		var req CreateBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		eventDate, err := parseDate(req.EventDate)
		if err != nil {
			badRequest(c, "invalid event_date (YYYY-MM-DD)")
			return
		}

		idemKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
		var idemStorageKey string
		if idem != nil && idemKey != "" {
			idemStorageKey = redisrepo.KeyIdemBooking(user.ID, idemKey)

			if payload, ok, _ := idem.GetResult(
				c.Request.Context(),
				idemStorageKey,
			); ok {
				c.Header("Idempotency-Key", idemKey)
				c.Data(
					http.StatusCreated,
					"application/json; charset=utf-8",
					[]byte(payload),
				)
				return
			}

			locked, err := idem.AcquireLock(
				c.Request.Context(),
				idemStorageKey,
				60*time.Second,
			)
			if err != nil {
				respondErr(c, err)
				return
			}
			if !locked {
				if payload, ok, _ := idem.GetResult(
					c.Request.Context(),
					idemStorageKey,
				); ok {
					c.Header("Idempotency-Key", idemKey)
					c.Data(
						http.StatusCreated,
						"application/json; charset=utf-8",
						[]byte(payload),
					)
					return
				}
				c.Header("Retry-After", "1")
				c.JSON(
					http.StatusConflict,
					ErrorResponse{Error: "idempotency key in progress"},
				)
				return
			}
		}

		rlKey := "org:" + strconv.FormatInt(user.ID, 10)

		b, err := svcs.Booking.Create(
			c.Request.Context(),
			user.ID,
			req.ArtistID,
			eventDate,
			sanitizer.Sanitize(req.EventDetails),
			rlKey,
		)
		if err != nil {
			if idemStorageKey != "" && idem != nil {
				_ = idem.Release(c.Request.Context(), idemStorageKey)
			}
			if isRateLimitedErr(err) {
				c.Header("Retry-After", "60")
				c.JSON(
					http.StatusTooManyRequests,
					ErrorResponse{Error: err.Error()},
				)
				return
			}
			respondErr(c, err)
			return
		}

		if idemStorageKey != "" && idem != nil {
			payload, _ := json.Marshal(b)
			_ = idem.SaveResult(c.Request.Context(), idemStorageKey, string(payload))
			c.Header("Idempotency-Key", idemKey)
		}

		c.JSON(http.StatusCreated, b)
	}
}

// @Summary  List my bookings
// @Success  200 {array} domain.Booking
// @Security BearerAuth
// @Router   /bookings [get]
func handleListBookings(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		items, err := svcs.Booking.ListForUser(c.Request.Context(), user)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// @Summary  List my upcoming accepted bookings
// @Success  200 {array} domain.Booking
// @Security BearerAuth
// @Router   /bookings/upcoming [get]
func handleListUpcomingBookings(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		items, err := svcs.Booking.ListUpcoming(c.Request.Context(), user.ID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// @Summary  List my past bookings
// @Success  200 {array} domain.Booking
// @Security BearerAuth
// @Router   /bookings/past [get]
func handleListPastBookings(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		items, err := svcs.Booking.ListPast(c.Request.Context(), user.ID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// @Summary  Get booking
// @Param    id  path  string  true  "Booking ID (uuid)"
// @Success  200 {object} domain.Booking
// @Failure  404 {object} ErrorResponse
// @Security BearerAuth
// @Router   /bookings/{id} [get]
func handleGetBooking(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		bookingID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		b, err := svcs.Booking.Get(c.Request.Context(), user.ID, bookingID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, b)
	}
}

// @Summary  Accept or decline a booking request
// @Param    id  path  string  true  "Booking ID (uuid)"
// @Param    req body  RespondBookingRequest true "payload"
// @Success  200 {object} domain.Booking
// @Failure  403 {object} ErrorResponse
// @Failure  409 {object} ErrorResponse "already responded"
// @Security BearerAuth
// @Router   /bookings/{id}/respond [post]
func handleRespondBooking(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		bookingID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		var req RespondBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		b, err := svcs.Booking.Respond(
			c.Request.Context(),
			user.ID,
			bookingID,
			booking.Action(req.Action),
		)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, b)
	}
}

// @Summary  List notifications and mark them read
// @Success  200 {object} NotificationsResponse
// @Security BearerAuth
// @Router   /notifications [get]
func handleListNotifications(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		items, unread, err := svcs.Feed.List(c.Request.Context(), user.ID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, NotificationsResponse{
			Notifications: items,
			UnreadCount:   unread,
		})
	}
}

// @Summary  Count unread notifications
// @Success  200 {object} UnreadCountResponse
// @Security BearerAuth
// @Router   /notifications/unread-count [get]
func handleUnreadCount(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		n, err := svcs.Feed.UnreadCount(c.Request.Context(), user.ID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, UnreadCountResponse{UnreadCount: n})
	}
}

// @Summary  My calendar (artist)
// @Success  200 {array} domain.Availability
// @Security BearerAuth
// @Router   /calendar [get]
func handleMyCalendar(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		entries, err := svcs.Catalog.MyCalendar(c.Request.Context(), user)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, entries)
	}
}

// @Summary  Block a date on my calendar
// @Param    req body  BlockDateRequest true "payload"
// @Success  201 {object} domain.Availability
// @Failure  403 {object} ErrorResponse
// @Security BearerAuth
// @Router   /calendar [post]
func handleBlockDate(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		var req BlockDateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		date, err := parseDate(req.Date)
		if err != nil {
			badRequest(c, "invalid date (YYYY-MM-DD)")
			return
		}
		entry, err := svcs.Catalog.BlockDate(c.Request.Context(), user, date)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, entry)
	}
}

// @Summary  Unblock a date on my calendar
// @Param    date  path  string  true  "YYYY-MM-DD"
// @Success  204
// @Failure  409 {object} ErrorResponse "date held by an accepted booking"
// @Security BearerAuth
// @Router   /calendar/{date} [delete]
func handleUnblockDate(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		date, err := parseDate(c.Param("date"))
		if err != nil {
			badRequest(c, "invalid date (YYYY-MM-DD)")
			return
		}
		if err := svcs.Catalog.UnblockDate(c.Request.Context(), user, date); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Review a completed booking
// @Param    req body  AddReviewRequest true "payload"
// @Success  201 {object} domain.Review
// @Failure  409 {object} ErrorResponse "already reviewed / not completed"
// @Security BearerAuth
// @Router   /reviews [post]
func handleAddReview(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		var req AddReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		bookingID, err := uuid.Parse(req.BookingID)
		if err != nil {
			badRequest(c, "invalid booking_id")
			return
		}
		rv, err := svcs.Review.Add(
			c.Request.Context(),
			user.ID,
			bookingID,
			req.Rating,
			sanitizer.Sanitize(req.Comment),
		)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, rv)
	}
}

// @Summary  Toggle favorite artist
// @Param    id  path  int  true  "Artist ID"
// @Success  200 {object} ToggleFavoriteResponse
// @Security BearerAuth
// @Router   /artists/{id}/favorite [post]
func handleToggleFavorite(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		artistID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		favorited, err := svcs.Review.ToggleFavorite(c.Request.Context(), user, artistID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, ToggleFavoriteResponse{Favorited: favorited})
	}
}

// @Summary  List my favorite artists
// @Success  200 {array} domain.ArtistProfile
// @Security BearerAuth
// @Router   /favorites [get]
func handleListFavorites(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		artists, err := svcs.Review.ListFavorites(c.Request.Context(), user)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, artists)
	}
}

// @Summary  Start (or reopen) a conversation with an artist
// @Param    req body  StartConversationRequest true "payload"
// @Success  201 {object} domain.Conversation
// @Security BearerAuth
// @Router   /conversations [post]
func handleStartConversation(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		var req StartConversationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		conv, err := svcs.Messaging.Start(c.Request.Context(), user, req.ArtistID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, conv)
	}
}

// @Summary  Inbox
// @Success  200 {array} domain.ConversationWithUnread
// @Security BearerAuth
// @Router   /conversations [get]
func handleInbox(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		convs, err := svcs.Messaging.Inbox(c.Request.Context(), user.ID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, convs)
	}
}

// @Summary  List conversation messages and mark them read
// @Param    id  path  int  true  "Conversation ID"
// @Success  200 {array} domain.Message
// @Failure  403 {object} ErrorResponse
// @Security BearerAuth
// @Router   /conversations/{id}/messages [get]
func handleListMessages(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		conversationID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		msgs, err := svcs.Messaging.Messages(c.Request.Context(), user.ID, conversationID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, msgs)
	}
}

// @Summary  Send a message
// @Param    id  path  int  true  "Conversation ID"
// @Param    req body  SendMessageRequest true "payload"
// @Success  201 {object} domain.Message
// @Failure  403 {object} ErrorResponse
// @Security BearerAuth
// @Router   /conversations/{id}/messages [post]
func handleSendMessage(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		conversationID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		var req SendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		msg, err := svcs.Messaging.Send(
			c.Request.Context(),
			user.ID,
			conversationID,
			sanitizer.Sanitize(req.Content),
		)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, msg)
	}
}

// @Summary  Approve an artist account
// @Param    id  path  int  true  "Artist ID"
// @Success  204
// @Failure  404 {object} ErrorResponse
// @Security BearerAuth
// @Router   /admin/artists/{id}/approve [post]
func handleApproveArtist(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			return
		}
		artistID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		if err := svcs.Admin.ApproveArtist(c.Request.Context(), user, artistID); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Complete bookings whose event date has passed
// @Success  200 {object} CompletedResponse
// @Security BearerAuth
// @Router   /admin/bookings/complete-elapsed [post]
func handleCompleteElapsed(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := svcs.Booking.CompleteElapsed(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, CompletedResponse{Completed: n})
	}
}

// --- Helpers ---

func parseInt64Param(c *gin.Context, name string) (int64, bool) {
	s := c.Param(name)
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return v, true
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	v, err := uuid.Parse(c.Param(name))
	if err != nil {
		badRequest(c, "invalid "+name)
		return uuid.Nil, false
	}
	return v, true
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func isRateLimitedErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "rate limited")
}

func respondErr(c *gin.Context, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	switch {
	// booking service
	case errors.Is(err, booking.ErrPastDate):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "event date is in the past"})
	case errors.Is(err, booking.ErrInvalidAction):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid action"})
	case errors.Is(err, booking.ErrOrganizerOnly):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "only organizers can request bookings"})
	case errors.Is(err, booking.ErrNotYourBooking):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "booking belongs to another artist"})
	case errors.Is(err, booking.ErrArtistNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "artist not found"})
	case errors.Is(err, booking.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "booking not found"})
	case errors.Is(err, booking.ErrArtistUnavailable):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "artist is unavailable on that date"})
	case errors.Is(err, booking.ErrAlreadyResponded):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "booking has already been responded to"})

	// catalog service
	case errors.Is(err, catalog.ErrPastDate):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "date is in the past"})
	case errors.Is(err, catalog.ErrArtistOnly):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "only artists manage a calendar"})
	case errors.Is(err, catalog.ErrArtistNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "artist not found"})
	case errors.Is(err, catalog.ErrDateNotBlocked):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "date is not blocked"})
	case errors.Is(err, catalog.ErrDateBooked):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "date is held by an accepted booking"})

	// review service
	case errors.Is(err, review.ErrInvalidRating):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "rating must be between 1 and 5"})
	case errors.Is(err, review.ErrOrganizerOnly):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "only organizers can do this"})
	case errors.Is(err, review.ErrNotYourBooking):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "booking belongs to another organizer"})
	case errors.Is(err, review.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "booking not found"})
	case errors.Is(err, review.ErrArtistNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "artist not found"})
	case errors.Is(err, review.ErrBookingNotDone):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "booking is not completed yet"})
	case errors.Is(err, review.ErrAlreadyReviewed):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "booking already has a review"})

	// messaging service
	case errors.Is(err, messaging.ErrEmptyMessage):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "message content is empty"})
	case errors.Is(err, messaging.ErrOrganizerOnly):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "only organizers can start conversations"})
	case errors.Is(err, messaging.ErrNotParticipant):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "not a participant"})
	case errors.Is(err, messaging.ErrConversationNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "conversation not found"})
	case errors.Is(err, messaging.ErrArtistNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "artist not found"})

	// admin service
	case errors.Is(err, admin.ErrStaffOnly):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "staff access required"})
	case errors.Is(err, admin.ErrArtistNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "artist not found"})

	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
