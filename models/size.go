package models

type Size struct {
	ID     int    `json:"id,omitempty"`
	Alias  string `json:"alias,omitempty"`
	Name   string `json:"name,omitempty"`
	CPU    int    `json:"cpu,omitempty"`
	Mem    int    `json:"mem,omitempty"`
	Disk   int    `json:"disk,omitempty"`
	Active bool   `json:"active,omitempty"`
}
