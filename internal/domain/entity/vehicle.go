package entity

// VehicleProfile describes the vehicle the route is optimized for.
// It is forwarded to the recommendation backend unchanged.
type VehicleProfile struct {
	Type       string  `json:"type"`
	Model      string  `json:"model"`
	FuelType   string  `json:"fuel_type"`
	Efficiency float64 `json:"efficiency"`
}

// IsValid reports whether the profile can be sent to the backend
func (v VehicleProfile) IsValid() bool {
	return v.Type != "" && v.Model != "" && v.FuelType != "" && v.Efficiency > 0
}
