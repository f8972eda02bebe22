package insight

import (
	"encoding/json"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"space-explorer/models"
)

// MaxSols is the maximum number of sols decoded from one feed
const MaxSols = 5

// Decoder turns the InSight weather feed into weather records. The feed is an
// object keyed by sol number with a "sol_keys" array listing the sols, so it is
// walked as a generic JSON tree rather than unmarshalled into a fixed schema.
type Decoder struct {
	// Now supplies the date used when a sol has no usable First_UTC
	Now func() time.Time
}

// NewDecoder creates a decoder that uses the wall clock
func NewDecoder() Decoder {
	return Decoder{Now: time.Now}
}

// Decode decodes raw feed bytes using the wall clock
func Decode(raw []byte) []models.MarsWeather {
	return NewDecoder().Decode(raw)
}

// Decode returns up to MaxSols records in the order given by sol_keys.
// A feed that cannot be read yields an empty slice; sols whose key is not a
// positive integer or whose entry is not an object are skipped.
func (d Decoder) Decode(raw []byte) []models.MarsWeather {
	var root map[string]any
	if err := json.Unmarshal(raw, &root); err != nil {
		slog.Debug("insight feed is not a JSON object", "error", err)
		return []models.MarsWeather{}
	}

	keys, ok := stringList(root["sol_keys"])
	if !ok {
		slog.Debug("insight feed has no usable sol_keys")
		return []models.MarsWeather{}
	}
	if len(keys) > MaxSols {
		keys = keys[:MaxSols]
	}

	out := make([]models.MarsWeather, 0, len(keys))
	for _, key := range keys {
		solData, ok := root[key].(map[string]any)
		if !ok {
			continue
		}
		sol, err := strconv.Atoi(key)
		if err != nil || sol <= 0 {
			continue
		}
		out = append(out, d.decodeSol(sol, solData))
	}
	return out
}

func (d Decoder) decodeSol(sol int, data map[string]any) models.MarsWeather {
	firstUTC := stringOr(data["First_UTC"], "")

	return models.MarsWeather{
		Sol:            sol,
		EarthDate:      d.earthDate(firstUTC),
		FirstUTC:       firstUTC,
		LastUTC:        stringOr(data["Last_UTC"], ""),
		Temperature:    aggregate(data["AT"], models.DefaultTemperature),
		Pressure:       aggregate(data["PRE"], models.DefaultPressure),
		WindSpeed:      aggregate(data["HWS"], models.DefaultWindSpeed),
		WindDirection:  windDirection(data["WD"]),
		Season:         stringOr(data["Season"], models.DefaultSeason),
		NorthernSeason: stringOr(data["Northern_season"], models.DefaultSeason),
		SouthernSeason: stringOr(data["Southern_season"], models.DefaultSeason),
		MonthOrdinal:   intOr(data["Month_ordinal"], models.DefaultMonthOrdinal),
	}
}

// earthDate cuts a UTC timestamp at its "T" separator
func (d Decoder) earthDate(utc string) string {
	if date, _, found := strings.Cut(utc, "T"); found {
		return date
	}
	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	return now().Format(time.DateOnly)
}

// aggregate fills each of av/mn/mx/ct independently, so a sensor object missing
// one statistic keeps the others.
func aggregate(v any, def models.Aggregate) models.Aggregate {
	obj, ok := v.(map[string]any)
	if !ok {
		return def
	}
	return models.Aggregate{
		Average: floatOr(obj["av"], def.Average),
		Minimum: floatOr(obj["mn"], def.Minimum),
		Maximum: floatOr(obj["mx"], def.Maximum),
		Count:   intOr(obj["ct"], def.Count),
	}
}

// windDirection is only built when both WD and WD.most_common are objects
func windDirection(v any) *models.WindDirection {
	wd, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	mc, ok := wd["most_common"].(map[string]any)
	if !ok {
		return nil
	}
	def := models.DefaultWindDirectionPoint
	return &models.WindDirection{
		MostCommon: models.WindDirectionPoint{
			CompassDegrees: floatOr(mc["compass_degrees"], def.CompassDegrees),
			CompassPoint:   stringOr(mc["compass_point"], def.CompassPoint),
			CompassRight:   floatOr(mc["compass_right"], def.CompassRight),
			CompassUp:      floatOr(mc["compass_up"], def.CompassUp),
			Count:          intOr(mc["ct"], def.Count),
		},
	}
}

func stringList(v any) ([]string, bool) {
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

func stringOr(v any, def string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return def
}

func floatOr(v any, def float64) float64 {
	if f, ok := v.(float64); ok {
		return f
	}
	return def
}

// intOr accepts only integral JSON numbers
func intOr(v any, def int) int {
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return def
	}
	return int(f)
}
