package types

// API represents an API Gateway v2 HTTP API
type API struct {
	ID       string
	Name     string
	Protocol string
	Endpoint string
}

// Route represents one route of an HTTP API
type Route struct {
	ID     string
	Method string
	Path   string
	Target string
}
