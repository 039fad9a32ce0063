package console

import (
	"fmt"
	"io"
	"sync"
	"text/tabwriter"

	"github.com/viant/schedsim/model/pcb"
	"github.com/viant/schedsim/model/trace"
)

var header = []string{"PID", "Name", "State", "Priority", "Type", "Running Time", "Total Time", "Resource Request Time"}

// Render writes the process table of snapshot, ordered Running, Ready,
// Waiting, Finished and by container order within a state.
func Render(w io.Writer, snapshot *trace.Snapshot) error {
	return RenderList(w, snapshot.Sorted())
}

// RenderList writes records as a table in the supplied order
func RenderList(w io.Writer, list []*pcb.PCB) error {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.Debug)
	writeRow(tw, header...)
	for _, item := range list {
		writeRow(tw,
			fmt.Sprint(item.PID),
			item.Name,
			string(item.State),
			fmt.Sprint(item.Priority),
			string(item.Type),
			fmt.Sprint(item.RunningTime),
			fmt.Sprint(item.TotalTime),
			fmt.Sprint(item.ResourceRequestTime),
		)
	}
	return tw.Flush()
}

func writeRow(w io.Writer, columns ...string) {
	for i, column := range columns {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, column)
	}
	fmt.Fprint(w, "\t\n")
}

// RenderHeader writes the line that introduces a per tick table
func RenderHeader(w io.Writer, tick int) error {
	_, err := fmt.Fprintf(w, "+ PCB list (tick = %d)\n", tick)
	return err
}

// RenderTrace writes the initial table followed by one table per snapshot
func RenderTrace(w io.Writer, aTrace *trace.Trace) error {
	initial := &trace.Snapshot{Ready: aTrace.Initial}
	if err := Render(w, initial); err != nil {
		return err
	}
	for _, snapshot := range aTrace.Snapshots {
		if err := RenderHeader(w, snapshot.Tick); err != nil {
			return err
		}
		if err := Render(w, snapshot); err != nil {
			return err
		}
	}
	return nil
}

// RenderStats writes per process statistics
func RenderStats(w io.Writer, stats []*trace.Stats) error {
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.Debug)
	writeRow(tw, "PID", "Name", "Completed At", "Ready Ticks", "Waiting Ticks", "Dispatches", "Preemptions", "Blocks", "Resource")
	for _, s := range stats {
		completed := "-"
		if s.CompletedAt >= 0 {
			completed = fmt.Sprint(s.CompletedAt)
		}
		resource := "no"
		if s.Acquired {
			resource = "yes"
		}
		writeRow(tw,
			fmt.Sprint(s.PID),
			s.Name,
			completed,
			fmt.Sprint(s.ReadyTicks),
			fmt.Sprint(s.WaitingTicks),
			fmt.Sprint(s.Dispatches),
			fmt.Sprint(s.Preemptions),
			fmt.Sprint(s.Blocks),
			resource,
		)
	}
	return tw.Flush()
}

// Renderer prints a table after every scheduler iteration
type Renderer struct {
	w   io.Writer
	mux sync.Mutex
	err error
}

// OnTick renders snapshot under its tick header
func (r *Renderer) OnTick(snapshot *trace.Snapshot) {
	r.mux.Lock()
	defer r.mux.Unlock()
	if r.err != nil {
		return
	}
	if r.err = RenderHeader(r.w, snapshot.Tick); r.err != nil {
		return
	}
	r.err = Render(r.w, snapshot)
}

// Err returns the first write error
func (r *Renderer) Err() error {
	r.mux.Lock()
	defer r.mux.Unlock()
	return r.err
}

// NewRenderer creates a renderer writing to w
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}
