package models

type Project struct {
	ID    int          `json:"id,omitempty"`
	UUID  string       `json:"uuid,omitempty"`
	Name  string       `json:"name,omitempty"`
	Owner ProjectOwner `json:"owner,omitempty"`
}

type ProjectOwner struct {
	Name string `json:"name,omitempty"`
}

// Request body for creating a project.
type ProjectCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Owner       string `json:"owner"`
}
