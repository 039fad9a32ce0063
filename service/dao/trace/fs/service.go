package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/option"
	"github.com/viant/afs/url"
	"github.com/viant/schedsim/model/trace"
	"github.com/viant/schedsim/service/dao"
	"github.com/viant/schedsim/service/dao/criteria"
)

// Service archives run traces as JSON files under a base URL
type Service struct {
	basePath string
	fs       afs.Service
	mu       sync.RWMutex
}

var _ dao.Service[string, trace.Trace] = (*Service)(nil)

// Save persists a trace as <basePath>/<id>.json
func (s *Service) Save(ctx context.Context, aTrace *trace.Trace) error {
	if aTrace == nil {
		return dao.ErrNilEntity
	}
	if aTrace.ID == "" {
		return dao.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(aTrace)
	if err != nil {
		return fmt.Errorf("failed to marshal trace: %w", err)
	}
	filePath := s.tracePath(aTrace.ID)
	if err = s.fs.Upload(ctx, filePath, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save trace to file %s: %w", filePath, err)
	}
	return nil
}

// Load reads a trace by run id
func (s *Service) Load(ctx context.Context, id string) (*trace.Trace, error) {
	if id == "" {
		return nil, dao.ErrInvalidID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	filePath := s.tracePath(id)
	exists, err := s.fs.Exists(ctx, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to check if trace exists: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("trace %s: %w", id, dao.ErrNotFound)
	}
	data, err := s.fs.DownloadWithURL(ctx, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read trace file: %w", err)
	}
	ret := &trace.Trace{}
	if err = json.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to unmarshal trace %s: %w", id, err)
	}
	return ret, nil
}

// Delete removes an archived trace
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return dao.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	filePath := s.tracePath(id)
	exists, err := s.fs.Exists(ctx, filePath)
	if err != nil {
		return fmt.Errorf("failed to check if trace exists: %w", err)
	}
	if !exists {
		return fmt.Errorf("trace %s: %w", id, dao.ErrNotFound)
	}
	if err = s.fs.Delete(ctx, filePath); err != nil {
		return fmt.Errorf("failed to delete trace file: %w", err)
	}
	return nil
}

// List returns archived traces ordered by start time
func (s *Service) List(ctx context.Context, parameters ...*dao.Parameter) ([]*trace.Trace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	objects, err := s.fs.List(ctx, s.basePath, option.NewRecursive(true))
	if err != nil {
		return nil, fmt.Errorf("failed to list trace files: %w", err)
	}
	var traces []*trace.Trace
	for _, object := range objects {
		if object.IsDir() || !strings.HasSuffix(object.Name(), ".json") {
			continue
		}
		data, err := s.fs.Download(ctx, object)
		if err != nil {
			log.Printf("failed to read trace file %s: %v", object.URL(), err)
			continue
		}
		aTrace := &trace.Trace{}
		if err := json.Unmarshal(data, aTrace); err != nil {
			log.Printf("failed to unmarshal trace from %s: %v", object.URL(), err)
			continue
		}
		if !criteria.FilterBySource(aTrace.Source, parameters) {
			continue
		}
		traces = append(traces, aTrace)
	}
	sort.SliceStable(traces, func(i, j int) bool { return traces[i].StartedAt.Before(traces[j].StartedAt) })
	return traces, nil
}

func (s *Service) tracePath(id string) string {
	return url.Join(s.basePath, id+".json")
}

// New creates a file based trace archive, creating basePath when missing
func New(basePath string) (*Service, error) {
	if basePath == "" {
		return nil, fmt.Errorf("base path cannot be empty")
	}
	fs := afs.New()
	ctx := context.Background()
	exists, _ := fs.Exists(ctx, basePath)
	if !exists {
		if err := fs.Create(ctx, basePath, file.DefaultDirOsMode, true); err != nil {
			return nil, fmt.Errorf("failed to create base directory: %w", err)
		}
	}
	basePath = url.Normalize(basePath, file.Scheme)
	return &Service{basePath: basePath, fs: fs}, nil
}
