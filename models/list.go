package models

// Paginated envelope returned by all v2 list endpoints.
type ListEnvelope[T any] struct {
	Count   int `json:"count"`
	Results []T `json:"results"`
}

// Reference to a resource embedded inside another resource's response.
type ResourceRef struct {
	ID   int    `json:"id,omitempty"`
	UUID string `json:"uuid,omitempty"`
}
