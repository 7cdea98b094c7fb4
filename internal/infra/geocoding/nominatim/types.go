package nominatim

// searchResult mirrors the relevant parts of the /search payload.
// Nominatim encodes coordinates as decimal strings.
type searchResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// reverseResult mirrors the relevant parts of the /reverse payload
type reverseResult struct {
	DisplayName string `json:"display_name"`
	Error       string `json:"error,omitempty"`
}
