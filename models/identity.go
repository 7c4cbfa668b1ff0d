package models

type Identity struct {
	ID       int          `json:"id,omitempty"`
	UUID     string       `json:"uuid,omitempty"`
	User     IdentityUser `json:"user,omitempty"`
	Provider ResourceRef  `json:"provider,omitempty"`
}

type IdentityUser struct {
	Username string `json:"username,omitempty"`
}
