package recommendation

import (
	"greenroute/internal/domain/entity"
	"greenroute/internal/domain/service"
)

// requestBody is the JSON body the backend expects
type requestBody struct {
	OriginCoords      [2]float64        `json:"origin_coords"`
	DestinationCoords [2]float64        `json:"destination_coords"`
	Vehicle           vehicleBody       `json:"vehicle"`
	APIKeys           map[string]string `json:"api_keys,omitempty"`
}

type vehicleBody struct {
	Type       string  `json:"type"`
	Model      string  `json:"model"`
	Efficiency float64 `json:"efficiency"`
	FuelType   string  `json:"fuel_type"`
}

// errorBody is the subset of a failed response the client reads
type errorBody struct {
	Error string `json:"error"`
}

func toWire(req *service.RouteRequest) requestBody {
	body := requestBody{
		OriginCoords:      latLon(req.Origin),
		DestinationCoords: latLon(req.Destination),
		Vehicle: vehicleBody{
			Type:       req.Vehicle.Type,
			Model:      req.Vehicle.Model,
			Efficiency: req.Vehicle.Efficiency,
			FuelType:   req.Vehicle.FuelType,
		},
	}

	if len(req.Credentials) > 0 {
		body.APIKeys = req.Credentials
	}

	return body
}

func latLon(c entity.Coordinate) [2]float64 {
	return [2]float64{c.Lat, c.Lng}
}
