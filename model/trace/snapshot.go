package trace

import (
	"sort"

	"github.com/viant/schedsim/model/pcb"
)

// Snapshot captures the scheduler containers at the end of one loop iteration
type Snapshot struct {
	// Tick is the number of productive ticks so far
	Tick int `json:"tick"`
	// Iteration is the zero based loop iteration that produced the snapshot
	Iteration int  `json:"iteration"`
	Executed  bool `json:"executed"`

	Running  *pcb.PCB     `json:"running,omitempty"`
	Ready    []*pcb.PCB   `json:"ready"`
	Waiting  []*pcb.PCB   `json:"waiting"`
	Finished []*pcb.PCB   `json:"finished"`
	Resource pcb.Resource `json:"resource"`
}

// All returns records in container order: running, ready, waiting, finished
func (s *Snapshot) All() []*pcb.PCB {
	ret := make([]*pcb.PCB, 0, len(s.Ready)+len(s.Waiting)+len(s.Finished)+1)
	if s.Running != nil {
		ret = append(ret, s.Running)
	}
	ret = append(ret, s.Ready...)
	ret = append(ret, s.Waiting...)
	ret = append(ret, s.Finished...)
	return ret
}

// Sorted returns All ordered by state, preserving container order among equals
func (s *Snapshot) Sorted() []*pcb.PCB {
	ret := s.All()
	sort.SliceStable(ret, func(i, j int) bool {
		return ret[i].State.Rank() < ret[j].State.Rank()
	})
	return ret
}

// Lookup returns the record for pid or nil
func (s *Snapshot) Lookup(pid int) *pcb.PCB {
	for _, item := range s.All() {
		if item.PID == pid {
			return item
		}
	}
	return nil
}

// PIDs returns all pids in ascending order
func (s *Snapshot) PIDs() []int {
	all := s.All()
	ret := make([]int, 0, len(all))
	for _, item := range all {
		ret = append(ret, item.PID)
	}
	sort.Ints(ret)
	return ret
}

// Idle returns true when no process occupies the running slot
func (s *Snapshot) Idle() bool {
	return s.Running == nil
}
