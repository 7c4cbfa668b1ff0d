package models

import "fmt"

// Instance statuses reported by the API. Activity is a transient sub-status
// ("deploying", "networking", ...) that clears once the instance settles.
const (
	InstanceStatusActive      = "active"
	InstanceStatusError       = "error"
	InstanceStatusDeployError = "deploy_error"
)

type Instance struct {
	ID        int         `json:"id,omitempty"`
	UUID      string      `json:"uuid,omitempty"`
	Name      string      `json:"name,omitempty"`
	Status    string      `json:"status,omitempty"`
	Activity  string      `json:"activity,omitempty"`
	IPAddress string      `json:"ip_address,omitempty"`
	Provider  ResourceRef `json:"provider,omitempty"`
	Identity  ResourceRef `json:"identity,omitempty"`
	StartDate string      `json:"start_date,omitempty"`
}

// Active reports whether the instance has fully settled: primary status
// "active" with no transient activity.
func (i Instance) Active() bool {
	return i.Status == InstanceStatusActive && i.Activity == ""
}

// Failed reports whether the instance reached a terminal failure status.
func (i Instance) Failed() bool {
	return i.Status == InstanceStatusError || i.Status == InstanceStatusDeployError
}

func (i Instance) Validate() error {
	if i.UUID == "" {
		return fmt.Errorf("instance response missing \"uuid\"")
	}
	if i.Provider.UUID == "" {
		return fmt.Errorf("instance response missing \"provider.uuid\"")
	}
	if i.Identity.UUID == "" {
		return fmt.Errorf("instance response missing \"identity.uuid\"")
	}
	return nil
}

// Request body for launching an instance off an image version.
type InstanceCreateRequest struct {
	Name               string   `json:"name"`
	SourceAlias        string   `json:"source_alias"`
	SizeAlias          string   `json:"size_alias"`
	AllocationSourceID string   `json:"allocation_source_id"`
	Project            string   `json:"project"`
	Identity           string   `json:"identity"`
	Scripts            []string `json:"scripts"`
}

// Request body for the v1 instance action endpoint.
type InstanceActionRequest struct {
	Action     string `json:"action"`
	RebootType string `json:"reboot_type,omitempty"`
}
