package httpgin

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nithya-42/Stagelink/internal/service/admin"
	"github.com/Nithya-42/Stagelink/internal/service/booking"
	"github.com/Nithya-42/Stagelink/internal/service/catalog"
	"github.com/Nithya-42/Stagelink/internal/service/messaging"
	"github.com/Nithya-42/Stagelink/internal/service/review"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRespondErr_StatusMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{booking.ErrPastDate, http.StatusBadRequest},
		{booking.ErrInvalidAction, http.StatusBadRequest},
		{booking.ErrOrganizerOnly, http.StatusForbidden},
		{booking.ErrNotYourBooking, http.StatusForbidden},
		{booking.ErrArtistNotFound, http.StatusNotFound},
		{booking.ErrBookingNotFound, http.StatusNotFound},
		{booking.ErrArtistUnavailable, http.StatusConflict},
		{booking.ErrAlreadyResponded, http.StatusConflict},
		{catalog.ErrPastDate, http.StatusBadRequest},
		{catalog.ErrArtistOnly, http.StatusForbidden},
		{catalog.ErrArtistNotFound, http.StatusNotFound},
		{catalog.ErrDateNotBlocked, http.StatusNotFound},
		{catalog.ErrDateBooked, http.StatusConflict},
		{review.ErrInvalidRating, http.StatusBadRequest},
		{review.ErrOrganizerOnly, http.StatusForbidden},
		{review.ErrNotYourBooking, http.StatusForbidden},
		{review.ErrBookingNotFound, http.StatusNotFound},
		{review.ErrBookingNotDone, http.StatusConflict},
		{review.ErrAlreadyReviewed, http.StatusConflict},
		{messaging.ErrEmptyMessage, http.StatusBadRequest},
		{messaging.ErrOrganizerOnly, http.StatusForbidden},
		{messaging.ErrNotParticipant, http.StatusForbidden},
		{messaging.ErrConversationNotFound, http.StatusNotFound},
		{admin.ErrStaffOnly, http.StatusForbidden},
		{admin.ErrArtistNotFound, http.StatusNotFound},
		{errors.New("pool exhausted"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondErr(c, tt.err)

			assert.Equal(t, tt.want, w.Code)

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestRespondErr_WrappedError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondErr(c, fmt.Errorf("service.booking.Respond:%w", booking.ErrAlreadyResponded))

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRespondErr_Nil(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondErr(c, nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("2026-06-15")
	require.NoError(t, err)
	assert.Equal(t, 2026, d.Year())
	assert.Equal(t, "2026-06-15", d.Format("2006-01-02"))

	_, err = parseDate("15/06/2026")
	require.Error(t, err)

	_, err = parseDate("")
	require.Error(t, err)
}

func TestIsRateLimitedErr(t *testing.T) {
	assert.True(t, isRateLimitedErr(errors.New("service.booking.Create: rate limited, retry in 30s")))
	assert.False(t, isRateLimitedErr(errors.New("something else")))
	assert.False(t, isRateLimitedErr(nil))
}

func TestSanitizer_StripsMarkup(t *testing.T) {
	assert.Equal(t,
		"wedding reception",
		sanitizer.Sanitize(`<script>alert(1)</script>wedding <b>reception</b>`),
	)
}

func TestCurrentUser_Missing(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	_, ok := currentUser(c)
	assert.False(t, ok)
}
