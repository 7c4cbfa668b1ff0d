package models

import "fmt"

// Named quota bucket limiting compute-unit consumption for an account.
type AllocationSource struct {
	ID             int     `json:"id,omitempty"`
	UUID           string  `json:"uuid,omitempty"`
	Name           string  `json:"name,omitempty"`
	ComputeAllowed int     `json:"compute_allowed"`
	ComputeUsed    float64 `json:"compute_used,omitempty"`
}

func (a AllocationSource) Validate() error {
	if a.UUID == "" {
		return fmt.Errorf("allocation source response missing \"uuid\"")
	}
	return nil
}

// Request body for updating an allocation source's AU limit.
type AllocationSourceUpdateRequest struct {
	ComputeAllowed int `json:"compute_allowed"`
}
