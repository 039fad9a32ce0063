package pcb

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/schedsim/model/pcb"
	"github.com/viant/schedsim/service/meta"
)

// DefaultURL is the process list read when no input is given
const DefaultURL = "mock_pcb.json"

// Service loads process lists from {"pcb_list": [...]} documents
type Service struct {
	metaService *meta.Service
}

// Load reads and normalizes the process list at URL; an empty URL means DefaultURL
func (s *Service) Load(ctx context.Context, URL string) ([]*pcb.PCB, error) {
	if URL == "" {
		URL = DefaultURL
	}
	document := &pcb.ListFile{}
	if err := s.metaService.Load(ctx, URL, document); err != nil {
		return nil, fmt.Errorf("failed to load process list: %w", err)
	}
	if err := document.Normalize(); err != nil {
		return nil, fmt.Errorf("invalid process list %v: %w", URL, err)
	}
	return document.PCBList, nil
}

// New creates a process list loader backed by fs (afs.New() when nil)
func New(fs afs.Service, options ...storage.Option) *Service {
	return &Service{metaService: meta.New(fs, options...)}
}
