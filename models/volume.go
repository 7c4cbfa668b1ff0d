package models

// Volume statuses reported by the API.
const (
	VolumeStatusAttached    = "attached"
	VolumeStatusNotAttached = "not attached"
)

type Volume struct {
	ID       int         `json:"id,omitempty"`
	UUID     string      `json:"uuid,omitempty"`
	Name     string      `json:"name,omitempty"`
	Status   string      `json:"status,omitempty"`
	Provider ResourceRef `json:"provider,omitempty"`
	Identity ResourceRef `json:"identity,omitempty"`
}

// Request body for the v1 volume action endpoint.
type VolumeActionRequest struct {
	Action string `json:"action"`
}
