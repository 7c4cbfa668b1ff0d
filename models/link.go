package models

// External link owned by an account.
type Link struct {
	ID    int    `json:"id,omitempty"`
	UUID  string `json:"uuid,omitempty"`
	Title string `json:"title,omitempty"`
	Link  string `json:"link,omitempty"`
}
