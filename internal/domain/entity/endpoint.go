package entity

// Endpoint identifies which end of a route an address belongs to.
type Endpoint string

const (
	EndpointOrigin      Endpoint = "origin"
	EndpointDestination Endpoint = "destination"
)

// String returns the string representation of the Endpoint.
func (e Endpoint) String() string {
	return string(e)
}
