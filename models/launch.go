package models

import (
	"strings"

	"github.com/google/uuid"
)

// SpaceLaunch is an entry in the launch schedule
type SpaceLaunch struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Agency      string    `json:"agency"`
	LaunchDate  string    `json:"launchDate"` // YYYY-MM-DD
	Location    string    `json:"location"`
	MissionType string    `json:"missionType"`
	Status      string    `json:"status"` // "Scheduled" or "Launched"
}

// FilterLaunches returns the launches whose name, agency, location or mission
// type contains query, ignoring case. An empty query matches everything.
func FilterLaunches(launches []SpaceLaunch, query string) []SpaceLaunch {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return launches
	}

	out := make([]SpaceLaunch, 0, len(launches))
	for _, l := range launches {
		if strings.Contains(strings.ToLower(l.Name), query) ||
			strings.Contains(strings.ToLower(l.Agency), query) ||
			strings.Contains(strings.ToLower(l.Location), query) ||
			strings.Contains(strings.ToLower(l.MissionType), query) {
			out = append(out, l)
		}
	}
	return out
}

func newLaunch(name, agency, date, location, missionType, status string) SpaceLaunch {
	return SpaceLaunch{
		ID:          uuid.New(),
		Name:        name,
		Agency:      agency,
		LaunchDate:  date,
		Location:    location,
		MissionType: missionType,
		Status:      status,
	}
}

// SampleLaunches returns the static launch schedule
func SampleLaunches() []SpaceLaunch {
	return []SpaceLaunch{
		newLaunch("Falcon 9 - Starlink Group 6-25", "SpaceX", "2024-10-20", "Cape Canaveral, FL", "Communications", "Scheduled"),
		newLaunch("Artemis II", "NASA", "2025-09-01", "Kennedy Space Center, FL", "Crewed Lunar Flyby", "Scheduled"),
		newLaunch("JUICE - Jupiter Icy Moons Explorer", "ESA", "2023-04-14", "Kourou, French Guiana", "Planetary Exploration", "Launched"),
		newLaunch("Chandrayaan-3", "ISRO", "2023-07-14", "Satish Dhawan Space Centre", "Lunar Landing", "Launched"),
		newLaunch("New Glenn - First Flight", "Blue Origin", "2024-12-01", "Cape Canaveral, FL", "Test Flight", "Scheduled"),
		newLaunch("Crew Dragon - Crew-8", "SpaceX", "2024-11-15", "Kennedy Space Center, FL", "ISS Crew Transport", "Scheduled"),
	}
}
