package batch

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/cyverse-ops/atmoctl/config"
	"github.com/cyverse-ops/atmoctl/models"
)

// One scripted response for an instance status poll.
type statusStep struct {
	code     int
	status   string
	activity string
}

// fakeAPI is an in-memory Atmosphere-compatible server. Catalogs are keyed
// by username; the bearer token "tok-<username>" identifies the caller.
type fakeAPI struct {
	t   *testing.T
	mu  sync.Mutex
	srv *httptest.Server

	accounts   map[string]string
	sizes      []models.Size
	images     []models.Image
	machines   map[string][]models.ProviderMachine
	identities map[string][]models.Identity
	projects   map[string][]models.Project
	volumes    map[string][]models.Volume
	instances  map[string][]models.Instance
	links      map[string][]models.Link
	allocs     map[string][]models.AllocationSource

	// Launch requests accepted, in arrival order.
	launched []models.InstanceCreateRequest
	// Scripted status sequences per instance id; the last step repeats.
	statusSeq map[int][]statusStep
	// Volumes report "not attached" after this many polls.
	detachAfter map[string]int
	detachPolls map[string]int

	patchCount   int
	deletedLinks int
	nextID       int
}

func newFakeAPI(t *testing.T) *fakeAPI {
	f := &fakeAPI{
		t:           t,
		accounts:    map[string]string{},
		machines:    map[string][]models.ProviderMachine{},
		identities:  map[string][]models.Identity{},
		projects:    map[string][]models.Project{},
		volumes:     map[string][]models.Volume{},
		instances:   map[string][]models.Instance{},
		links:       map[string][]models.Link{},
		allocs:      map[string][]models.AllocationSource{},
		statusSeq:   map[int][]statusStep{},
		detachAfter: map[string]int{},
		detachPolls: map[string]int{},
		nextID:      1000,
	}
	f.srv = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeAPI) platform() config.Platform {
	return config.Platform{
		Name:     "test",
		BaseURL:  f.srv.URL,
		TokenURL: f.srv.URL + "/terrain/token",
	}
}

// addAccount seeds a user with matching identity, project, and allocation
// source, all named after the username.
func (f *fakeAPI) addAccount(username string, password string) {
	f.accounts[username] = password
	f.identities[username] = []models.Identity{{
		ID:   f.nextID,
		UUID: "identity-" + username,
		User: models.IdentityUser{Username: username},
	}}
	f.projects[username] = []models.Project{{
		ID:   f.nextID + 1,
		UUID: "project-" + username,
		Name: username,
	}}
	f.allocs[username] = []models.AllocationSource{{
		ID:             f.nextID + 2,
		UUID:           "alloc-" + username,
		Name:           username,
		ComputeAllowed: 168,
	}}
	f.nextID += 3
}

func (f *fakeAPI) addImage(id int, name string, version string, machineUUIDs ...string) {
	versionPath := fmt.Sprintf("/api/v2/image_versions/%d-%s", id, version)
	f.images = append(f.images, models.Image{
		ID:   id,
		Name: name,
		Versions: []models.ImageVersion{{
			ID:   fmt.Sprintf("%d-%s", id, version),
			Name: version,
			URL:  f.srv.URL + versionPath,
		}},
	})

	var machines []models.ProviderMachine
	for _, uuid := range machineUUIDs {
		machines = append(machines, models.ProviderMachine{UUID: uuid})
	}
	f.machines[versionPath] = machines
}

func (f *fakeAPI) username(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "TOKEN tok-") {
		return ""
	}
	return strings.TrimPrefix(auth, "TOKEN tok-")
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeEnvelope[T any](w http.ResponseWriter, items []T) {
	writeJSON(w, models.ListEnvelope[T]{Count: len(items), Results: items})
}

func (f *fakeAPI) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := r.URL.Path
	user := f.username(r)

	switch {
	case path == "/terrain/token":
		username, password, ok := r.BasicAuth()
		if !ok || f.accounts[username] == "" || f.accounts[username] != password {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(w, models.TokenResponse{AccessToken: "tok-" + username, ExpiresIn: 3600})

	case path == "/api/v2/identities":
		if user == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeEnvelope(w, f.identities[user])

	case path == "/api/v2/sizes":
		writeEnvelope(w, f.sizes)

	case path == "/api/v2/images":
		writeEnvelope(w, f.images)

	case strings.HasPrefix(path, "/api/v2/image_versions/"):
		writeJSON(w, models.ImageVersionDetail{Machines: f.machines[path]})

	case path == "/api/v2/projects" && r.Method == "GET":
		writeEnvelope(w, f.projects[user])

	case path == "/api/v2/projects" && r.Method == "POST":
		var req models.ProjectCreateRequest
		json.NewDecoder(r.Body).Decode(&req)
		project := models.Project{ID: f.nextID, UUID: fmt.Sprintf("project-%d", f.nextID), Name: req.Name}
		f.nextID++
		f.projects[user] = append(f.projects[user], project)
		writeJSON(w, project)

	case strings.HasPrefix(path, "/api/v2/projects/") && r.Method == "DELETE":
		id, _ := strconv.Atoi(strings.TrimPrefix(path, "/api/v2/projects/"))
		var kept []models.Project
		for _, p := range f.projects[user] {
			if p.ID != id {
				kept = append(kept, p)
			}
		}
		f.projects[user] = kept
		writeJSON(w, map[string]any{})

	case path == "/api/v2/allocation_sources":
		if q := r.URL.Query().Get("username"); q != "" {
			writeEnvelope(w, f.allocs[q])
			return
		}
		writeEnvelope(w, f.allocs[user])

	case strings.HasPrefix(path, "/api/v2/allocation_sources/") && r.Method == "PATCH":
		uuid := strings.TrimPrefix(path, "/api/v2/allocation_sources/")
		var req models.AllocationSourceUpdateRequest
		json.NewDecoder(r.Body).Decode(&req)
		f.patchCount++
		for username, sources := range f.allocs {
			for i, source := range sources {
				if source.UUID == uuid {
					f.allocs[username][i].ComputeAllowed = req.ComputeAllowed
					writeJSON(w, f.allocs[username][i])
					return
				}
			}
		}
		w.WriteHeader(http.StatusNotFound)

	case path == "/api/v2/instances" && r.Method == "POST":
		var req models.InstanceCreateRequest
		json.NewDecoder(r.Body).Decode(&req)
		f.launched = append(f.launched, req)
		instance := models.Instance{
			ID:       f.nextID,
			UUID:     fmt.Sprintf("instance-%d", f.nextID),
			Name:     req.Name,
			Status:   "pending",
			Activity: "deploying",
			Provider: models.ResourceRef{UUID: "provider-1"},
			Identity: models.ResourceRef{UUID: req.Identity},
		}
		f.nextID++
		f.instances[user] = append(f.instances[user], instance)
		writeJSON(w, instance)

	case path == "/api/v2/instances" && r.Method == "GET":
		writeEnvelope(w, f.instances[user])

	case strings.HasPrefix(path, "/api/v2/instances/") && r.Method == "GET":
		id, _ := strconv.Atoi(strings.TrimPrefix(path, "/api/v2/instances/"))
		f.serveInstanceStatus(w, user, id)

	case path == "/api/v2/volumes" && r.Method == "GET":
		writeEnvelope(w, f.volumes[user])

	case strings.HasPrefix(path, "/api/v2/volumes/") && r.Method == "GET":
		id, _ := strconv.Atoi(strings.TrimPrefix(path, "/api/v2/volumes/"))
		f.serveVolume(w, user, id)

	case path == "/api/v2/links" && r.Method == "GET":
		writeEnvelope(w, f.links[user])

	case strings.HasPrefix(path, "/api/v2/links/") && r.Method == "DELETE":
		id, _ := strconv.Atoi(strings.TrimPrefix(path, "/api/v2/links/"))
		var kept []models.Link
		for _, l := range f.links[user] {
			if l.ID != id {
				kept = append(kept, l)
			}
		}
		f.links[user] = kept
		f.deletedLinks++
		writeJSON(w, map[string]any{})

	case strings.HasPrefix(path, "/api/v1/provider/"):
		f.serveV1(w, r, user)

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeAPI) serveInstanceStatus(w http.ResponseWriter, user string, id int) {
	if steps := f.statusSeq[id]; len(steps) > 0 {
		step := steps[0]
		if len(steps) > 1 {
			f.statusSeq[id] = steps[1:]
		}
		if step.code != 0 && step.code != http.StatusOK {
			w.WriteHeader(step.code)
			return
		}
		for _, instance := range f.instances[user] {
			if instance.ID == id {
				instance.Status = step.status
				instance.Activity = step.activity
				writeJSON(w, instance)
				return
			}
		}
	}

	for _, instance := range f.instances[user] {
		if instance.ID == id {
			writeJSON(w, instance)
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
}

func (f *fakeAPI) serveVolume(w http.ResponseWriter, user string, id int) {
	for _, volume := range f.volumes[user] {
		if volume.ID != id {
			continue
		}
		if volume.Status == models.VolumeStatusAttached {
			f.detachPolls[volume.UUID]++
			if f.detachPolls[volume.UUID] >= f.detachAfter[volume.UUID] {
				volume.Status = models.VolumeStatusNotAttached
			}
		}
		writeJSON(w, volume)
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

// serveV1 handles the provider/identity-scoped endpoints:
// /api/v1/provider/{p}/identity/{i}/(instance|volume)/{uuid}[/action]
func (f *fakeAPI) serveV1(w http.ResponseWriter, r *http.Request, user string) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) < 8 {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	kind, uuid := parts[6], parts[7]
	action := len(parts) == 9 && parts[8] == "action"

	switch {
	case kind == "instance" && action && r.Method == "POST":
		writeJSON(w, map[string]any{})

	case kind == "instance" && r.Method == "DELETE":
		var kept []models.Instance
		for _, instance := range f.instances[user] {
			if instance.UUID != uuid {
				kept = append(kept, instance)
			}
		}
		f.instances[user] = kept
		writeJSON(w, map[string]any{})

	case kind == "volume" && action && r.Method == "POST":
		writeJSON(w, map[string]any{})

	case kind == "volume" && r.Method == "DELETE":
		var kept []models.Volume
		for _, volume := range f.volumes[user] {
			if volume.UUID != uuid {
				kept = append(kept, volume)
			}
		}
		f.volumes[user] = kept
		writeJSON(w, map[string]any{})

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}
