// Package api exposes the simulator over a small REST surface, for clients
// that want one-shot runs instead of the live WebSocket session.
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"solar_battery_sim/internal/chart"
	"solar_battery_sim/internal/model"
	"solar_battery_sim/internal/simulator"
	"solar_battery_sim/internal/solar"
)

// ErrorDetail is the error body shape shared by all endpoints.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// Handler serves the simulation endpoints.
type Handler struct {
	defaults model.Params
}

func NewHandler(defaults model.Params) *Handler {
	return &Handler{defaults: defaults}
}

// Register mounts the API routes on the router.
func (h *Handler) Register(r gin.IRouter) {
	v1 := r.Group("/api/v1")
	v1.POST("/simulate", h.Simulate)
	v1.GET("/defaults", h.Defaults)
	v1.GET("/sun", h.Sun)
	v1.GET("/chart.png", h.Chart)
}

// Simulate handles POST /api/v1/simulate. Zero fields in the request take
// the server's default values.
func (h *Handler) Simulate(c *gin.Context) {
	var req model.Params
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()},
		})
		return
	}

	params := model.Merge(h.defaults, req)
	res, err := simulator.Run(params)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: ErrorDetail{Code: "INVALID_PARAMS", Message: err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, res)
}

// Defaults handles GET /api/v1/defaults.
func (h *Handler) Defaults(c *gin.Context) {
	c.JSON(http.StatusOK, h.defaults)
}

// SunResponse describes the sun times for one day.
type SunResponse struct {
	LatitudeDeg   float64 `json:"latitude_deg"`
	Day           int     `json:"day"`
	DaylightHours float64 `json:"daylight_hours"`
	Sunrise       string  `json:"sunrise"`
	Sunset        string  `json:"sunset"`
}

// Sun handles GET /api/v1/sun?lat=&day=.
func (h *Handler) Sun(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: ErrorDetail{Code: "INVALID_LATITUDE", Message: "lat must be a number"},
		})
		return
	}
	day, err := strconv.Atoi(c.DefaultQuery("day", "1"))
	if err != nil || day < 1 || day > model.DaysInYear {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: ErrorDetail{Code: "INVALID_DAY", Message: "day must be between 1 and 365"},
		})
		return
	}
	if lat < -66 || lat > 66 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: ErrorDetail{Code: "INVALID_LATITUDE", Message: model.ErrLatitudeRange.Error()},
		})
		return
	}

	date := model.DayOfYear(day)
	c.JSON(http.StatusOK, SunResponse{
		LatitudeDeg:   lat,
		Day:           day,
		DaylightHours: solar.DaylightHours(lat, day-1),
		Sunrise:       solar.Sunrise(date, lat).Format(time.RFC3339),
		Sunset:        solar.Sunset(date, lat).Format(time.RFC3339),
	})
}

// Chart handles GET /api/v1/chart.png. Parameters come from the query
// string; anything omitted takes the default.
func (h *Handler) Chart(c *gin.Context) {
	params := h.defaults
	if v := c.Query("lat"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: ErrorDetail{Code: "INVALID_LATITUDE", Message: "lat must be a number"},
			})
			return
		}
		params.LatitudeDeg = f
	}
	if v := c.Query("load"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			params.LoadW = f
		}
	}
	if v := c.Query("capacity"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			params.BatteryCapacityWh = f
		}
	}
	if v := c.Query("solar"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			params.SolarNominalW = f
		}
	}

	res, err := simulator.Run(params)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: ErrorDetail{Code: "INVALID_PARAMS", Message: err.Error()},
		})
		return
	}

	png, err := chart.RenderPNG(res)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: ErrorDetail{Code: "RENDER_ERROR", Message: err.Error()},
		})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
