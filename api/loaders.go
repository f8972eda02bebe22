package api

import (
	"context"
	"log/slog"
	"time"

	"space-explorer/datasource"
	"space-explorer/models"
	"space-explorer/providers/insight"
)

// Notices shown next to sample data. Transport and decode failures share one
// notice so the screen cannot tell them apart.
const (
	WeatherUnavailableNotice  = "Live Mars weather is unavailable; showing sample data."
	PicturesUnavailableNotice = "Live pictures are unavailable; showing sample pictures."
)

// LoadMarsWeather fetches and decodes the weather feed. It never fails: when
// the source is missing, errors, or yields no usable sols, the sample report
// is returned with a notice.
func LoadMarsWeather(ctx context.Context, src datasource.MarsWeatherSource) MarsWeatherReport {
	if src == nil {
		return sampleWeatherReport()
	}

	raw, err := src.FetchMarsWeather(ctx)
	if err != nil {
		slog.Warn("mars weather fetch failed", "source", src.Name(), "error", err)
		return sampleWeatherReport()
	}

	records := insight.Decode(raw)
	if len(records) == 0 {
		slog.Warn("mars weather feed had no usable sols", "source", src.Name(), "bytes", len(raw))
		return sampleWeatherReport()
	}

	slog.Info("mars weather updated", "source", src.Name(), "sols", len(records), "latest", records[0].Sol)
	return MarsWeatherReport{
		Records:  records,
		Source:   SourceLive,
		Provider: src.Name(),
		Updated:  time.Now(),
	}
}

func sampleWeatherReport() MarsWeatherReport {
	return MarsWeatherReport{
		Records: models.SampleMarsWeather(),
		Source:  SourceSample,
		Notice:  WeatherUnavailableNotice,
		Updated: time.Now(),
	}
}

// LoadPictures asks each source in turn for count pictures and returns the
// first success, or the sample pictures with a notice.
func LoadPictures(ctx context.Context, sources []datasource.PictureSource, count int) PictureReport {
	for _, src := range sources {
		apods, err := src.FetchPictures(ctx, count)
		if err != nil {
			slog.Warn("picture fetch failed", "source", src.Name(), "error", err)
			continue
		}
		if len(apods) == 0 {
			continue
		}
		return livePictureReport(src.Name(), apods)
	}
	return samplePictureReport(count)
}

// LoadTodayPicture asks each source in turn for today's picture
func LoadTodayPicture(ctx context.Context, sources []datasource.PictureSource) PictureReport {
	for _, src := range sources {
		apod, err := src.FetchPicture(ctx)
		if err != nil {
			slog.Warn("today's picture fetch failed", "source", src.Name(), "error", err)
			continue
		}
		return livePictureReport(src.Name(), []models.APODResponse{apod})
	}
	return samplePictureReport(1)
}

func livePictureReport(provider string, apods []models.APODResponse) PictureReport {
	pictures := make([]models.SpacePicture, 0, len(apods))
	for _, a := range apods {
		pictures = append(pictures, models.NewSpacePictureFromAPOD(a))
	}
	return PictureReport{
		Pictures: pictures,
		Source:   SourceLive,
		Provider: provider,
		Updated:  time.Now(),
	}
}

func samplePictureReport(count int) PictureReport {
	pictures := models.SamplePictures()
	if count > 0 && count < len(pictures) {
		pictures = pictures[:count]
	}
	return PictureReport{
		Pictures: pictures,
		Source:   SourceSample,
		Notice:   PicturesUnavailableNotice,
		Updated:  time.Now(),
	}
}
