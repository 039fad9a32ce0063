package memory

import (
	"github.com/viant/schedsim/model/trace"
	"github.com/viant/schedsim/service/dao"
	"github.com/viant/schedsim/service/dao/criteria"
	"github.com/viant/schedsim/service/dao/store"
)

// Service keeps run traces in memory, keyed by run id
type Service struct {
	*store.MemoryStore[string, trace.Trace]
}

var _ dao.Service[string, trace.Trace] = (*Service)(nil)

func New() *Service {
	return &Service{
		MemoryStore: store.NewMemoryStore[string, trace.Trace](func(t *trace.Trace) string { return t.ID }).
			WithMatcher(func(t *trace.Trace, parameters []*dao.Parameter) bool {
				return criteria.FilterBySource(t.Source, parameters)
			}),
	}
}
