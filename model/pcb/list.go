package pcb

import "fmt"

// ListFile represents the process list document
type ListFile struct {
	PCBList []*PCB `json:"pcb_list" yaml:"pcb_list"`
}

// Normalize applies document defaults (missing state means Ready) and checks
// enumerated fields.
func (l *ListFile) Normalize() error {
	for i, item := range l.PCBList {
		if item == nil {
			return fmt.Errorf("pcb_list[%d]: empty record", i)
		}
		if item.State == "" {
			item.State = StateReady
		} else {
			state, err := ParseState(string(item.State))
			if err != nil {
				return fmt.Errorf("pcb_list[%d] (pid %d): %w", i, item.PID, err)
			}
			item.State = state
		}
		processType, err := ParseType(string(item.Type))
		if err != nil {
			return fmt.Errorf("pcb_list[%d] (pid %d): %w", i, item.PID, err)
		}
		item.Type = processType
	}
	return nil
}
