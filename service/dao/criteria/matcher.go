package criteria

import (
	"github.com/viant/schedsim/service/dao"
)

// SourceParameter restricts listings to traces of the given process list URL(s)
const SourceParameter = "Source"

func FilterBySource(source string, parameters []*dao.Parameter) bool {
	for _, parameter := range parameters {
		if parameter == nil || parameter.Name != SourceParameter {
			continue
		}
		switch actual := parameter.Value.(type) {
		case string:
			return source == actual
		case []string:
			for _, s := range actual {
				if source == s {
					return true
				}
			}
			return false
		}
	}
	return true
}
