package calendar

import (
	"net/http"
	"strconv"
	"time"

	"github.com/businessregulatoryreviewagency/brra/internal/accrual"
	"github.com/businessregulatoryreviewagency/brra/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler exposes read-only previews of the working-day arithmetic so the
// portal can show day counts before a request is submitted.
type Handler struct {
	engine *Engine
	logger *zap.Logger
}

func NewHandler(engine *Engine, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("calendar.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("calendar.handler")
	}
	return &Handler{engine: engine, logger: l}
}

type workingDaysResponse struct {
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	WorkingDays int    `json:"working_days"`
}

type monthsBetweenResponse struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Months    int    `json:"months"`
}

type accruedDaysResponse struct {
	Months       int     `json:"months"`
	RatePerMonth float64 `json:"rate_per_month"`
	AccruedDays  int     `json:"accrued_days"`
}

func (h *Handler) parseRange(c *gin.Context) (time.Time, time.Time, bool) {
	start, err := time.Parse("2006-01-02", c.Query("start"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "start must be a YYYY-MM-DD date", nil)
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse("2006-01-02", c.Query("end"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "end must be a YYYY-MM-DD date", nil)
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func (h *Handler) WorkingDays(c *gin.Context) {
	start, end, ok := h.parseRange(c)
	if !ok {
		return
	}

	resp := workingDaysResponse{
		StartDate:   start.Format("2006-01-02"),
		EndDate:     end.Format("2006-01-02"),
		WorkingDays: h.engine.WorkingDays(start, end),
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) MonthsBetween(c *gin.Context) {
	start, end, ok := h.parseRange(c)
	if !ok {
		return
	}

	resp := monthsBetweenResponse{
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
		Months:    MonthsBetween(start, end),
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) AccruedDays(c *gin.Context) {
	months, err := strconv.Atoi(c.Query("months"))
	if err != nil || months < 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "months must be a non-negative integer", nil)
		return
	}

	rate := accrual.DefaultRate
	if raw := c.Query("rate"); raw != "" {
		rate, err = strconv.ParseFloat(raw, 64)
		if err != nil || rate < 0 {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "rate must be a non-negative number", nil)
			return
		}
	}

	resp := accruedDaysResponse{
		Months:       months,
		RatePerMonth: rate,
		AccruedDays:  accrual.Days(months, rate),
	}
	response.Success(c, http.StatusOK, resp, nil)
}
