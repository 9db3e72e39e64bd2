package domain

// AppState is everything the dashboard persists between sessions.
//
// When UseGeolocation is true MainCity is ignored for rendering decisions,
// although it may still be stored. ExtraCities is ordered and unique by ID.
type AppState struct {
	UseGeolocation bool   `json:"useGeolocation"`
	MainCity       *City  `json:"mainCity"`
	ExtraCities    []City `json:"extraCities"`
}

func DefaultAppState() AppState {
	return AppState{
		UseGeolocation: true,
		MainCity:       nil,
		ExtraCities:    []City{},
	}
}

// Return a deep copy so callers can't mutate shared slices or the main city.
func (s AppState) Clone() AppState {
	out := AppState{
		UseGeolocation: s.UseGeolocation,
		ExtraCities:    make([]City, len(s.ExtraCities)),
	}
	copy(out.ExtraCities, s.ExtraCities)
	if s.MainCity != nil {
		mc := *s.MainCity
		out.MainCity = &mc
	}
	return out
}

func (s AppState) HasExtraCity(id int64) bool {
	for _, c := range s.ExtraCities {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (s AppState) ExtraCity(id int64) (City, bool) {
	for _, c := range s.ExtraCities {
		if c.ID == id {
			return c, true
		}
	}
	return City{}, false
}

// Report whether id is the manually chosen main city.
// Geolocation mode never matches: its coordinates carry no city id.
func (s AppState) IsMainCity(id int64) bool {
	return !s.UseGeolocation && s.MainCity != nil && s.MainCity.ID == id
}

// Return a copy of the state with the extra city removed.
func (s AppState) WithoutExtraCity(id int64) AppState {
	out := s.Clone()
	kept := out.ExtraCities[:0]
	for _, c := range out.ExtraCities {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	out.ExtraCities = kept
	return out
}
