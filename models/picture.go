package models

import (
	"github.com/google/uuid"
)

// APODResponse is the Astronomy Picture of the Day payload
type APODResponse struct {
	Date        string `json:"date"` // YYYY-MM-DD
	Explanation string `json:"explanation"`
	Title       string `json:"title"`
	URL         string `json:"url,omitempty"`
	HDURL       string `json:"hdurl,omitempty"`
	MediaType   string `json:"media_type,omitempty"` // "image" or "video"
}

// SpacePicture is a picture shown in the photo viewer
type SpacePicture struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageName   string    `json:"imageName"` // symbol name, or "photo" for remote pictures
	ImageURL    string    `json:"imageURL,omitempty"`
	Date        string    `json:"date"`
}

// RemoteImageName is the symbol used for pictures that came from a feed
const RemoteImageName = "photo"

// pictureNamespace scopes picture IDs so they never collide with other name-based UUIDs
var pictureNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://apod.nasa.gov/apod/"))

// PictureID derives a stable identifier from a picture's date and title, so
// the same picture keeps its ID however often it is fetched or served from cache.
func PictureID(date, title string) uuid.UUID {
	return uuid.NewSHA1(pictureNamespace, []byte(date+"\x00"+title))
}

// NewSpacePicture creates a picture identified by its date and title
func NewSpacePicture(title, description, imageName, date string) SpacePicture {
	return SpacePicture{
		ID:          PictureID(date, title),
		Title:       title,
		Description: description,
		ImageName:   imageName,
		Date:        date,
	}
}

// NewSpacePictureFromAPOD converts an APOD entry into a picture
func NewSpacePictureFromAPOD(apod APODResponse) SpacePicture {
	p := NewSpacePicture(apod.Title, apod.Explanation, RemoteImageName, apod.Date)
	p.ImageURL = apod.URL
	return p
}

// SamplePictures returns the fixed pictures served when no feed is reachable
func SamplePictures() []SpacePicture {
	return []SpacePicture{
		NewSpacePicture(
			"Andromeda Galaxy",
			"The Andromeda Galaxy is a barred spiral galaxy and is the nearest major galaxy to the Milky Way.",
			"star.fill",
			"2024-10-15",
		),
		NewSpacePicture(
			"Eagle Nebula",
			"The Eagle Nebula is a young open cluster of stars in the constellation Serpens, discovered by Jean-Philippe de Cheseaux in 1745-46.",
			"sparkles",
			"2024-10-14",
		),
		NewSpacePicture(
			"Hubble Deep Field",
			"An image of a small region in the constellation Ursa Major, constructed from a series of observations by the Hubble Space Telescope.",
			"square.grid.3x3.fill",
			"2024-10-13",
		),
		NewSpacePicture(
			"Jupiter's Great Red Spot",
			"A persistent high-pressure region in the atmosphere of Jupiter, producing an anticyclonic storm.",
			"circle.fill",
			"2024-10-12",
		),
		NewSpacePicture(
			"Saturn's Rings",
			"Saturn's rings are made of billions of pieces of ice, rock and dust, some as small as a grain of sand.",
			"circle.circle.fill",
			"2024-10-11",
		),
	}
}
