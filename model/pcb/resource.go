package pcb

// Resource is a single exclusive, non-preemptible resource
type Resource struct {
	// PID of the process using the resource, nil when free
	PID *int `json:"pid,omitempty" yaml:"pid,omitempty"`
}

// NewResource creates a free resource
func NewResource() Resource {
	return Resource{}
}

// IsFree returns true when nobody holds the resource
func (r *Resource) IsFree() bool {
	return r.PID == nil
}

// IsHeldBy returns true when pid holds the resource
func (r *Resource) IsHeldBy(pid int) bool {
	return r.PID != nil && *r.PID == pid
}

// Holder returns the holder pid and whether the resource is held
func (r *Resource) Holder() (int, bool) {
	if r.PID == nil {
		return 0, false
	}
	return *r.PID, true
}

// Occupy assigns the resource to pid. Callers must check IsFree first.
func (r *Resource) Occupy(pid int) {
	r.PID = &pid
}

// Release frees the resource
func (r *Resource) Release() {
	r.PID = nil
}
