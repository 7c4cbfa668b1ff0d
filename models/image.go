package models

type Image struct {
	ID       int            `json:"id,omitempty"`
	UUID     string         `json:"uuid,omitempty"`
	Name     string         `json:"name,omitempty"`
	Versions []ImageVersion `json:"versions,omitempty"`
}

// One published version of an image. The machine list lives behind the
// version URL, not inline.
type ImageVersion struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
	URL  string `json:"url,omitempty"`
}

// Response body of an image version URL.
type ImageVersionDetail struct {
	Machines []ProviderMachine `json:"machines,omitempty"`
}

// A concrete machine image on one provider, launchable by UUID.
type ProviderMachine struct {
	UUID string `json:"uuid,omitempty"`
}
