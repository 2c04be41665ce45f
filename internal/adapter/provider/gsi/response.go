package gsi

// addressSearchResult is one feature of the AddressSearch response array.
// Coordinates are [longitude, latitude].
type addressSearchResult struct {
	Geometry struct {
		Coordinates []float64 `json:"coordinates"`
		Type        string    `json:"type"`
	} `json:"geometry"`
	Type       string `json:"type"`
	Properties struct {
		AddressCode string `json:"addressCode"`
		Title       string `json:"title"`
	} `json:"properties"`
}

// reverseResponse is the LonLatToAddress response. Results is absent when
// the point is outside any municipality.
type reverseResponse struct {
	Results *struct {
		MuniCd *string `json:"muniCd"`
		Lv01Nm *string `json:"lv01Nm"`
	} `json:"results"`
}
