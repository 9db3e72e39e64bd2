package domain

// City is a geocoded place the user picked from search suggestions.
// The ID is assigned by the geocoding service and is the only identity:
// two cities are the same city when their IDs match.
type City struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Render "name (country)", or just the name when the country is unknown.
func (c City) DisplayName() string {
	if c.Country == "" {
		return c.Name
	}
	return c.Name + " (" + c.Country + ")"
}

func (c City) Coordinates() Coordinates {
	return Coordinates{Lat: c.Lat, Lon: c.Lon}
}

func (c City) Same(other City) bool { return c.ID == other.ID }

// PendingSelection is what an autocomplete field remembers about the suggestion
// the user picked. The displayed name is kept by the field itself.
type PendingSelection struct {
	CityID  int64
	Lat     float64
	Lon     float64
	Country string
}

// Build the city a submitted form refers to.
func (p PendingSelection) City(name string) City {
	return City{
		ID:      p.CityID,
		Name:    name,
		Country: p.Country,
		Lat:     p.Lat,
		Lon:     p.Lon,
	}
}

// Capture the selection data of a suggestion.
func SelectionOf(c City) PendingSelection {
	return PendingSelection{CityID: c.ID, Lat: c.Lat, Lon: c.Lon, Country: c.Country}
}
