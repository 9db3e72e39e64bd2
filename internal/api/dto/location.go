package dto

// GeolocationRequest carries either a position or the reason the browser
// could not get one ("denied", "unavailable", "timeout", "unsupported").
type GeolocationRequest struct {
	Lat   *float64 `json:"lat"`
	Lon   *float64 `json:"lon"`
	Error string   `json:"error"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
