package widget

import (
	"math"
	"time"

	"github.com/skycast/skycast/internal/forecast"
	"github.com/skycast/skycast/internal/location"
)

// HourlyWindow is the number of hourly entries the widget strip shows.
const HourlyWindow = 12

// compassLabels are the 16 compass points, clockwise from north.
var compassLabels = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// weekdayNames is Sunday-first, matching time.Weekday ordering.
var weekdayNames = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// Time layouts used by the forecast provider.
const (
	hourlyTimeLayout = "2006-01-02T15:04"
	dailyTimeLayout  = "2006-01-02"
)

// Clock supplies the current wall-clock time. Builders use it only for the
// "last updated" stamp and hourly windowing, so tests inject a fixed one.
type Clock func() time.Time

// Builder transforms raw payloads into view models. It is pure: given the
// same payload, location and clock, it always produces identical output.
type Builder struct {
	clock Clock
}

// NewBuilder creates a view-model builder. A nil clock defaults to time.Now.
func NewBuilder(clock Clock) *Builder {
	if clock == nil {
		clock = time.Now
	}
	return &Builder{clock: clock}
}

// BuildCurrent builds the current-conditions card from a validated payload.
// The location is not folded into the card itself (it travels alongside in
// RenderData) but callers pass it so the pair stays consistent.
func (b *Builder) BuildCurrent(p *forecast.Payload, _ *location.Location) *CurrentConditions {
	cur := p.Current
	description, icon := DescribeWeatherCode(cur.WeatherCode)

	cc := &CurrentConditions{
		Temperature:        roundInt(cur.Temperature),
		FeelsLike:          roundInt(cur.ApparentTemperature),
		Humidity:           cur.Humidity,
		WindSpeed:          roundInt(cur.WindSpeed),
		WindDirection:      cur.WindDirection,
		WindDirectionLabel: WindDirectionLabel(cur.WindDirection),
		WeatherCode:        cur.WeatherCode,
		Description:        description,
		Icon:               icon,
		UpdatedAt:          b.localTime(p).Format("Mon, Jan 2, 3:04 PM"),
	}

	if cur.Pressure != nil {
		v := roundInt(*cur.Pressure)
		cc.Pressure = &v
	}
	if cur.Visibility != nil {
		// Provider reports meters; the widget shows kilometers.
		v := roundInt(*cur.Visibility / 1000)
		cc.VisibilityKm = &v
	}

	return cc
}

// BuildToday builds the summary card for the current day (daily index 0, the
// row BuildDaily skips). Returns nil when the daily series is empty.
func (b *Builder) BuildToday(p *forecast.Payload) *TodaySummary {
	d := p.Daily
	if len(d.Time) == 0 {
		return nil
	}

	description, icon := DescribeWeatherCode(d.WeatherCode[0])
	return &TodaySummary{
		Date:          d.Time[0],
		WeatherCode:   d.WeatherCode[0],
		Description:   description,
		Icon:          icon,
		TempMax:       roundInt(d.TemperatureMax[0]),
		TempMin:       roundInt(d.TemperatureMin[0]),
		FeelsLikeMax:  roundInt(d.ApparentTemperatureMax[0]),
		FeelsLikeMin:  roundInt(d.ApparentTemperatureMin[0]),
		Precipitation: precipValue(d.PrecipitationSum[0]),
		MaxWind:       roundInt(d.WindSpeedMax[0]),
	}
}

// BuildHourly builds up to HourlyWindow entries starting at currentHour within
// the hourly series, stopping early when the series runs out.
func (b *Builder) BuildHourly(p *forecast.Payload, currentHour int) []HourlyEntry {
	h := p.Hourly
	start := currentHour
	if start < 0 {
		start = 0
	}
	if start >= len(h.Time) {
		return []HourlyEntry{}
	}

	end := start + HourlyWindow
	if end > len(h.Time) {
		end = len(h.Time)
	}

	entries := make([]HourlyEntry, 0, end-start)
	for i := start; i < end; i++ {
		_, icon := DescribeWeatherCode(h.WeatherCode[i])
		entry := HourlyEntry{
			Time:        h.Time[i],
			Temperature: roundInt(h.Temperature[i]),
			WeatherCode: h.WeatherCode[i],
			Icon:        icon,
		}
		if t, err := time.Parse(hourlyTimeLayout, h.Time[i]); err == nil {
			entry.Hour = t.Hour()
		}
		entries = append(entries, entry)
	}

	return entries
}

// BuildDaily builds the daily forecast list, skipping today (index 0) and
// covering the rest of the horizon.
func (b *Builder) BuildDaily(p *forecast.Payload) []DailyEntry {
	d := p.Daily
	if len(d.Time) <= 1 {
		return []DailyEntry{}
	}

	entries := make([]DailyEntry, 0, len(d.Time)-1)
	for i := 1; i < len(d.Time); i++ {
		description, icon := DescribeWeatherCode(d.WeatherCode[i])
		entry := DailyEntry{
			Date:          d.Time[i],
			WeatherCode:   d.WeatherCode[i],
			Description:   description,
			Icon:          icon,
			TempMax:       roundInt(d.TemperatureMax[i]),
			TempMin:       roundInt(d.TemperatureMin[i]),
			FeelsLikeMax:  roundInt(d.ApparentTemperatureMax[i]),
			FeelsLikeMin:  roundInt(d.ApparentTemperatureMin[i]),
			Precipitation: precipValue(d.PrecipitationSum[i]),
			MaxWind:       roundInt(d.WindSpeedMax[i]),
		}
		if t, err := time.Parse(dailyTimeLayout, d.Time[i]); err == nil {
			name := weekdayNames[int(t.Weekday())]
			entry.Weekday = name
			entry.WeekdayShort = name[:3]
		}
		entries = append(entries, entry)
	}

	return entries
}

// LocalHour returns the current hour of day at the payload's location,
// derived from the injected clock and the provider-reported UTC offset.
func (b *Builder) LocalHour(p *forecast.Payload) int {
	return b.localTime(p).Hour()
}

// localTime shifts the clock into the payload's timezone.
func (b *Builder) localTime(p *forecast.Payload) time.Time {
	offset := time.Duration(p.UTCOffsetSeconds) * time.Second
	return b.clock().UTC().Add(offset)
}

// WindDirectionLabel maps a 0-360 degree bearing to one of 16 compass labels.
func WindDirectionLabel(degrees float64) string {
	idx := int(math.Round(degrees/22.5)) % 16
	if idx < 0 {
		idx += 16
	}
	return compassLabels[idx]
}

func roundInt(v float64) int {
	return int(math.Round(v))
}

func precipValue(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
