package meta

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"gopkg.in/yaml.v3"
)

// Service loads JSON or YAML documents from any afs supported URL
type Service struct {
	fs      afs.Service
	options []storage.Option
}

// IsYAML reports whether URL names a YAML document
func IsYAML(URL string) bool {
	switch strings.ToLower(path.Ext(URL)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Download returns raw document content with ${env.KEY} references expanded
func (s *Service) Download(ctx context.Context, URL string) ([]byte, error) {
	data, err := s.fs.DownloadWithURL(ctx, url.Normalize(URL, file.Scheme), s.options...)
	if err != nil {
		return nil, fmt.Errorf("failed to download %v: %w", URL, err)
	}
	return []byte(expandEnv(string(data))), nil
}

// Load decodes URL into target, YAML for .yaml/.yml, JSON otherwise
func (s *Service) Load(ctx context.Context, URL string, target interface{}) error {
	data, err := s.Download(ctx, URL)
	if err != nil {
		return err
	}
	if IsYAML(URL) {
		err = yaml.Unmarshal(data, target)
	} else {
		err = json.Unmarshal(data, target)
	}
	if err != nil {
		return fmt.Errorf("failed to decode %v: %w", URL, err)
	}
	return nil
}

// New creates a document service; options are passed to every download,
// for example an *embed.FS for embed:// URLs
func New(fs afs.Service, options ...storage.Option) *Service {
	if fs == nil {
		fs = afs.New()
	}
	return &Service{fs: fs, options: options}
}
