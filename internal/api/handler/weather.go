package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/skycast/skycast/internal/api/models"
	"github.com/skycast/skycast/internal/api/response"
	"github.com/skycast/skycast/internal/forecast"
	"github.com/skycast/skycast/internal/location"
	"github.com/skycast/skycast/internal/provider/resilience"
	"github.com/skycast/skycast/internal/widget"
)

// WeatherHandler serves the widget render payload.
type WeatherHandler struct {
	controller *widget.Controller
}

// NewWeatherHandler creates a new WeatherHandler.
func NewWeatherHandler(controller *widget.Controller) *WeatherHandler {
	return &WeatherHandler{controller: controller}
}

// GetWeather handles GET /v1/weather.
// Accepts either ?city=<query> or ?lat=<deg>&lon=<deg>; exactly one form is
// required.
func (h *WeatherHandler) GetWeather(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	city := q.Get("city")
	latStr, lonStr := q.Get("lat"), q.Get("lon")

	switch {
	case city != "" && (latStr != "" || lonStr != ""):
		response.BadRequest(w, r, "provide either city or lat/lon, not both", nil)
		return

	case city != "":
		data, err := h.controller.Load(r.Context(), city)
		if err != nil {
			writeLoadError(w, r, err)
			return
		}
		response.JSON(w, r, http.StatusOK, data)

	case latStr != "" || lonStr != "":
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lon, lonErr := strconv.ParseFloat(lonStr, 64)
		if latErr != nil || lonErr != nil {
			response.BadRequest(w, r, "lat and lon must both be decimal degrees", []models.FieldError{
				{Field: "lat", Message: "decimal degrees, -90 to 90"},
				{Field: "lon", Message: "decimal degrees, -180 to 180"},
			})
			return
		}
		data, err := h.controller.LoadByCoordinates(r.Context(), lat, lon)
		if err != nil {
			writeLoadError(w, r, err)
			return
		}
		response.JSON(w, r, http.StatusOK, data)

	default:
		response.BadRequest(w, r, "city or lat/lon query parameter required", nil)
	}
}

// writeLoadError maps a load-cycle failure to its problem response.
func writeLoadError(w http.ResponseWriter, r *http.Request, err error) {
	var coordErr *forecast.CoordinateError
	var statusErr *resilience.StatusError

	switch {
	case errors.Is(err, location.ErrInvalidQuery):
		response.BadRequest(w, r, err.Error(), []models.FieldError{
			{Field: "city", Message: "2-100 characters, no <, >, \", ' or &"},
		})

	case errors.As(err, &coordErr):
		response.BadRequest(w, r, err.Error(), []models.FieldError{
			{Field: coordErr.Field, Message: err.Error()},
		})

	case errors.Is(err, forecast.ErrInvalidCoordinate):
		response.BadRequest(w, r, err.Error(), nil)

	case errors.Is(err, location.ErrNotFound):
		response.NotFound(w, r, err.Error())

	case errors.Is(err, resilience.ErrTimeout):
		response.GatewayTimeout(w, r, "the weather provider did not respond in time")

	case errors.Is(err, resilience.ErrConnectivity), errors.Is(err, resilience.ErrCircuitOpen):
		response.ServiceUnavailable(w, r, "the weather provider is unreachable")

	case errors.Is(err, location.ErrInvalidData), errors.Is(err, forecast.ErrInvalidPayload), errors.As(err, &statusErr):
		response.BadGateway(w, r, "the weather provider returned unusable data")

	default:
		response.InternalError(w, r, "an unexpected error occurred")
	}
}
