package dto

import "weather-dashboard/internal/domain"

type CityResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Country     string  `json:"country"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	DisplayName string  `json:"display_name"`
}

type SearchCitiesResponse struct {
	Query  string         `json:"query"`
	Cities []CityResponse `json:"cities"`
}

func NewCityResponse(c domain.City) CityResponse {
	return CityResponse{
		ID:          c.ID,
		Name:        c.Name,
		Country:     c.Country,
		Lat:         c.Lat,
		Lon:         c.Lon,
		DisplayName: c.DisplayName(),
	}
}

func NewCityResponses(cities []domain.City) []CityResponse {
	out := make([]CityResponse, 0, len(cities))
	for _, c := range cities {
		out = append(out, NewCityResponse(c))
	}
	return out
}
