package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math"
	"weather-dashboard/internal/domain"
	"weather-dashboard/internal/ports"
)

// Slot key holding the JSON-serialized AppState.
const StateKey = "weatherAppStateV2"

// StateStore loads and saves the AppState through a StateSlot.
// Neither operation fails towards the caller: problems are logged and the
// in-memory state stays authoritative.
type StateStore struct {
	slot ports.StateSlot
	key  string
}

func NewStateStore(slot ports.StateSlot) *StateStore {
	return &StateStore{slot: slot, key: StateKey}
}

// Load returns the persisted state, or the default state when the slot is
// empty, unreadable, or holds something other than a JSON object.
func (s *StateStore) Load(ctx context.Context) domain.AppState {
	raw, ok, err := s.slot.Get(ctx, s.key)
	if err != nil {
		log.Printf("state load failed: %v", &domain.PersistenceError{Op: domain.PersistenceRead, Key: s.key, Err: err})
		return domain.DefaultAppState()
	}
	if !ok || raw == "" {
		return domain.DefaultAppState()
	}

	st, err := decodeState(raw)
	if err != nil {
		log.Printf("state load failed key=%q: %v", s.key, err)
		return domain.DefaultAppState()
	}

	return st
}

// Save persists state. Write failures are logged and swallowed.
func (s *StateStore) Save(ctx context.Context, state domain.AppState) {
	st := state.Clone()

	b, err := json.Marshal(st)
	if err != nil {
		log.Printf("state save failed key=%q: encode: %v", s.key, err)
		return
	}

	if err := s.slot.Set(ctx, s.key, string(b)); err != nil {
		log.Printf("state save failed: %v", &domain.PersistenceError{Op: domain.PersistenceWrite, Key: s.key, Err: err})
	}
}

// decodeState applies the same lenient coercion the dashboard always used:
// useGeolocation is truthiness, a falsy or undecodable mainCity is nil, and a
// non-array extraCities is empty.
func decodeState(raw string) (domain.AppState, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return domain.AppState{}, err
	}
	if obj == nil {
		return domain.AppState{}, errors.New("state is null")
	}

	st := domain.AppState{
		UseGeolocation: truthy(obj["useGeolocation"]),
		ExtraCities:    []domain.City{},
	}

	if v, ok := obj["mainCity"]; ok && truthy(v) {
		if c, ok := decodeCity(v); ok {
			st.MainCity = &c
		} else {
			log.Printf("state load: dropping undecodable mainCity %s", v)
		}
	}

	var items []json.RawMessage
	if v, ok := obj["extraCities"]; ok && json.Unmarshal(v, &items) == nil {
		seen := make(map[int64]struct{}, len(items))
		for _, item := range items {
			c, ok := decodeCity(item)
			if !ok {
				log.Printf("state load: dropping undecodable extra city %s", item)
				continue
			}
			if _, dup := seen[c.ID]; dup {
				continue
			}
			seen[c.ID] = struct{}{}
			st.ExtraCities = append(st.ExtraCities, c)
		}
	}

	return st, nil
}

type storedCity struct {
	ID      *int64  `json:"id"`
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

func decodeCity(raw json.RawMessage) (domain.City, bool) {
	var sc storedCity
	if err := json.Unmarshal(raw, &sc); err != nil || sc.ID == nil {
		return domain.City{}, false
	}
	return domain.City{ID: *sc.ID, Name: sc.Name, Country: sc.Country, Lat: sc.Lat, Lon: sc.Lon}, true
}

// truthy mirrors JavaScript's Boolean() for a decoded JSON value; a missing value is false.
func truthy(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0 && !math.IsNaN(t)
	case string:
		return t != ""
	default:
		return true
	}
}
