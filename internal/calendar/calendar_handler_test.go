package calendar_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/businessregulatoryreviewagency/brra/internal/calendar"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newCalendarHandler() *calendar.Handler {
	return calendar.NewHandler(calendar.NewEngine(calendar.Zambia()))
}

func doGet(t *testing.T, h func(*gin.Context), target string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	h(c)
	return w
}

func TestCalendarHandler_WorkingDays(t *testing.T) {
	h := newCalendarHandler()

	t.Run("success - plain business week", func(t *testing.T) {
		w := doGet(t, h.WorkingDays, "/calendar/working-days?start=2025-06-02&end=2025-06-06")

		assert.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Ok   bool `json:"ok"`
			Data struct {
				WorkingDays int `json:"working_days"`
			} `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.Ok)
		assert.Equal(t, 5, body.Data.WorkingDays)
	})

	t.Run("success - easter week skips holidays", func(t *testing.T) {
		w := doGet(t, h.WorkingDays, "/calendar/working-days?start=2025-04-17&end=2025-04-22")

		assert.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Data struct {
				WorkingDays int `json:"working_days"`
			} `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, 2, body.Data.WorkingDays)
	})

	t.Run("negative - malformed start date", func(t *testing.T) {
		w := doGet(t, h.WorkingDays, "/calendar/working-days?start=17-04-2025&end=2025-04-22")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("negative - missing end date", func(t *testing.T) {
		w := doGet(t, h.WorkingDays, "/calendar/working-days?start=2025-04-17")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCalendarHandler_MonthsBetween(t *testing.T) {
	h := newCalendarHandler()

	t.Run("success", func(t *testing.T) {
		w := doGet(t, h.MonthsBetween, "/calendar/months-between?start=2025-01-15&end=2025-06-02")

		assert.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Data struct {
				Months int `json:"months"`
			} `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, 5, body.Data.Months)
	})

	t.Run("negative - malformed date", func(t *testing.T) {
		w := doGet(t, h.MonthsBetween, "/calendar/months-between?start=2025-01-15&end=june")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCalendarHandler_AccruedDays(t *testing.T) {
	h := newCalendarHandler()

	t.Run("success - default rate", func(t *testing.T) {
		w := doGet(t, h.AccruedDays, "/calendar/accrued-days?months=5")

		assert.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Data struct {
				RatePerMonth float64 `json:"rate_per_month"`
				AccruedDays  int     `json:"accrued_days"`
			} `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, 2.5, body.Data.RatePerMonth)
		assert.Equal(t, 12, body.Data.AccruedDays)
	})

	t.Run("success - explicit rate", func(t *testing.T) {
		w := doGet(t, h.AccruedDays, "/calendar/accrued-days?months=7&rate=1.75")

		assert.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Data struct {
				AccruedDays int `json:"accrued_days"`
			} `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, 12, body.Data.AccruedDays)
	})

	t.Run("negative - months not a number", func(t *testing.T) {
		w := doGet(t, h.AccruedDays, "/calendar/accrued-days?months=five")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("negative - negative rate", func(t *testing.T) {
		w := doGet(t, h.AccruedDays, "/calendar/accrued-days?months=3&rate=-1")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
