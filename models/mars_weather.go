package models

// Aggregate holds the summary statistics reported for one sensor over a sol
type Aggregate struct {
	Average float64 `json:"average"`
	Minimum float64 `json:"minimum"`
	Maximum float64 `json:"maximum"`
	Count   int     `json:"count"` // number of samples
}

// WindDirectionPoint is a single compass bucket of wind direction samples
type WindDirectionPoint struct {
	CompassDegrees float64 `json:"compassDegrees"`
	CompassPoint   string  `json:"compassPoint"`
	CompassRight   float64 `json:"compassRight"`
	CompassUp      float64 `json:"compassUp"`
	Count          int     `json:"count"`
}

// WindDirection holds the most frequently observed wind direction for a sol
type WindDirection struct {
	MostCommon WindDirectionPoint `json:"mostCommon"`
}

// MarsWeather is the normalized weather report for one sol (Martian day)
type MarsWeather struct {
	Sol       int    `json:"sol"`
	EarthDate string `json:"earthDate"` // YYYY-MM-DD
	FirstUTC  string `json:"firstUTC"`
	LastUTC   string `json:"lastUTC"`

	Temperature Aggregate `json:"temperature"` // in Celsius
	Pressure    Aggregate `json:"pressure"`    // in Pa
	WindSpeed   Aggregate `json:"windSpeed"`   // in m/s

	// nil when the feed carries no wind direction for the sol
	WindDirection *WindDirection `json:"windDirection,omitempty"`

	Season         string `json:"season"`
	NorthernSeason string `json:"northernSeason"`
	SouthernSeason string `json:"southernSeason"`
	MonthOrdinal   int    `json:"monthOrdinal"`
}

// MinTemp returns the minimum temperature truncated to whole degrees
func (w MarsWeather) MinTemp() int { return int(w.Temperature.Minimum) }

// MaxTemp returns the maximum temperature truncated to whole degrees
func (w MarsWeather) MaxTemp() int { return int(w.Temperature.Maximum) }

// AverageTemp returns the average temperature truncated to whole degrees
func (w MarsWeather) AverageTemp() int { return int(w.Temperature.Average) }

// AveragePressure returns the average pressure truncated to whole pascals
func (w MarsWeather) AveragePressure() int { return int(w.Pressure.Average) }

// AverageWindSpeed returns the average wind speed truncated to whole m/s
func (w MarsWeather) AverageWindSpeed() int { return int(w.WindSpeed.Average) }

// Fallback values used when the feed omits a reading
var (
	DefaultTemperature = Aggregate{Average: -62.3, Minimum: -96.9, Maximum: -15.9, Count: 177556}
	DefaultPressure    = Aggregate{Average: 750.6, Minimum: 722.1, Maximum: 768.8, Count: 887776}
	DefaultWindSpeed   = Aggregate{Average: 7.2, Minimum: 1.1, Maximum: 22.5, Count: 88628}

	DefaultWindDirectionPoint = WindDirectionPoint{
		CompassDegrees: 0.0,
		CompassPoint:   "N",
		CompassRight:   0.0,
		CompassUp:      1.0,
		Count:          0,
	}
)

const (
	DefaultSeason       = "Unknown"
	DefaultMonthOrdinal = 1
)

// SampleMarsWeather returns the fixed five-sol report served when the live feed is unavailable
func SampleMarsWeather() []MarsWeather {
	return []MarsWeather{
		sampleSol(4012, "2024-10-15",
			Aggregate{-62.3, -96.9, -15.9, 177556},
			Aggregate{750.6, 722.1, 768.8, 887776},
			Aggregate{7.2, 1.1, 22.5, 88628},
			WindDirectionPoint{292.5, "WNW", -0.924, 0.383, 30283}),
		sampleSol(4011, "2024-10-14",
			Aggregate{-64.5, -98.2, -18.5, 175432},
			Aggregate{748.3, 720.5, 765.2, 885123},
			Aggregate{8.5, 1.3, 24.1, 87234},
			WindDirectionPoint{270.0, "W", -1.0, 0.0, 28456}),
		sampleSol(4010, "2024-10-13",
			Aggregate{-59.8, -93.4, -17.2, 179234},
			Aggregate{752.1, 724.8, 771.5, 889456},
			Aggregate{6.8, 0.9, 20.3, 89123},
			WindDirectionPoint{315.0, "NW", -0.707, 0.707, 32145}),
		sampleSol(4009, "2024-10-12",
			Aggregate{-61.7, -95.8, -16.4, 176789},
			Aggregate{749.5, 721.9, 766.8, 886234},
			Aggregate{7.9, 1.2, 23.7, 88456},
			WindDirectionPoint{292.5, "WNW", -0.924, 0.383, 29876}),
		sampleSol(4008, "2024-10-11",
			Aggregate{-63.2, -97.1, -18.8, 174567},
			Aggregate{751.4, 723.6, 769.3, 887890},
			Aggregate{7.5, 1.0, 21.8, 87890},
			WindDirectionPoint{270.0, "W", -1.0, 0.0, 30123}),
	}
}

func sampleSol(sol int, date string, temp, pre, wind Aggregate, wd WindDirectionPoint) MarsWeather {
	return MarsWeather{
		Sol:            sol,
		EarthDate:      date,
		FirstUTC:       date + "T00:00:00Z",
		LastUTC:        date + "T23:59:59Z",
		Temperature:    temp,
		Pressure:       pre,
		WindSpeed:      wind,
		WindDirection:  &WindDirection{MostCommon: wd},
		Season:         "fall",
		NorthernSeason: "early winter",
		SouthernSeason: "early summer",
		MonthOrdinal:   10,
	}
}
