package scheduler

import "github.com/viant/schedsim/model/pcb"

// Queue is an ordered, slice backed sequence of process records. Front is
// index 0. The working set is small, so linear scans are preferred over a heap.
type Queue struct {
	items []*pcb.PCB
}

// NewQueue creates a queue holding items in the supplied order
func NewQueue(items ...*pcb.PCB) *Queue {
	ret := &Queue{items: make([]*pcb.PCB, 0, len(items))}
	ret.items = append(ret.items, items...)
	return ret
}

// Len returns number of queued records
func (q *Queue) Len() int { return len(q.items) }

// IsEmpty returns true when nothing is queued
func (q *Queue) IsEmpty() bool { return len(q.items) == 0 }

// PushBack appends a record at the back
func (q *Queue) PushBack(p *pcb.PCB) {
	q.items = append(q.items, p)
}

// PushFront inserts a record at the front
func (q *Queue) PushFront(p *pcb.PCB) {
	q.items = append(q.items, nil)
	copy(q.items[1:], q.items)
	q.items[0] = p
}

// PopFront removes and returns the front record
func (q *Queue) PopFront() (*pcb.PCB, bool) {
	if len(q.items) == 0 {
		return nil, false
	}
	ret := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	if len(q.items) == 0 {
		q.items = q.items[:0:0]
	}
	return ret, true
}

// Front returns the front record without removing it
func (q *Queue) Front() *pcb.PCB {
	if len(q.items) == 0 {
		return nil
	}
	return q.items[0]
}

// Remove deletes and returns the record at index
func (q *Queue) Remove(index int) (*pcb.PCB, bool) {
	if index < 0 || index >= len(q.items) {
		return nil, false
	}
	ret := q.items[index]
	copy(q.items[index:], q.items[index+1:])
	q.items[len(q.items)-1] = nil
	q.items = q.items[:len(q.items)-1]
	return ret, true
}

// MinPriorityIndex returns the index of the first record with the lowest
// priority value, or -1 for an empty queue. Equal priorities keep FIFO order:
// the earliest entry wins.
func (q *Queue) MinPriorityIndex() int {
	index := -1
	for i, item := range q.items {
		if index == -1 || item.Priority < q.items[index].Priority {
			index = i
		}
	}
	return index
}

// MoveMinPriorityToFront moves the first minimum priority record to the front
// keeping the relative order of the remaining records.
func (q *Queue) MoveMinPriorityToFront() {
	index := q.MinPriorityIndex()
	if index <= 0 {
		return
	}
	item, _ := q.Remove(index)
	q.PushFront(item)
}

// Each visits records front to back
func (q *Queue) Each(fn func(p *pcb.PCB)) {
	for _, item := range q.items {
		fn(item)
	}
}

// Clone returns copies of queued records front to back
func (q *Queue) Clone() []*pcb.PCB {
	ret := make([]*pcb.PCB, 0, len(q.items))
	for _, item := range q.items {
		ret = append(ret, item.Clone())
	}
	return ret
}
