package dto

type InputRequest struct {
	Value string `json:"value"`
}

type SelectRequest struct {
	Index *int `json:"index"`
}

type FieldResponse struct {
	Name        string         `json:"name"`
	Value       string         `json:"value"`
	State       string         `json:"state"`
	Suggestions []CityResponse `json:"suggestions"`
	Selected    bool           `json:"selected"`
}
