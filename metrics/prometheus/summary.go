package prometheus

import (
	"fmt"
	"sort"
	"strings"

	prom "github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// Summarize renders gathered metric families whose name starts with prefix
// as "name{labels} value" lines, sorted by name.
func Summarize(gatherer prom.Gatherer, prefix string) ([]string, error) {
	families, err := gatherer.Gather()
	if err != nil {
		return nil, fmt.Errorf("failed to gather metrics: %w", err)
	}
	var ret []string
	for _, family := range families {
		if !strings.HasPrefix(family.GetName(), prefix) {
			continue
		}
		for _, metric := range family.GetMetric() {
			ret = append(ret, fmt.Sprintf("%s%s %s", family.GetName(), labels(metric), value(family.GetType(), metric)))
		}
	}
	sort.Strings(ret)
	return ret, nil
}

func labels(metric *dto.Metric) string {
	pairs := metric.GetLabel()
	if len(pairs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		parts = append(parts, fmt.Sprintf("%s=%q", pair.GetName(), pair.GetValue()))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func value(metricType dto.MetricType, metric *dto.Metric) string {
	switch metricType {
	case dto.MetricType_COUNTER:
		return fmt.Sprint(metric.GetCounter().GetValue())
	case dto.MetricType_GAUGE:
		return fmt.Sprint(metric.GetGauge().GetValue())
	case dto.MetricType_HISTOGRAM:
		h := metric.GetHistogram()
		return fmt.Sprintf("count=%d sum=%v", h.GetSampleCount(), h.GetSampleSum())
	}
	return "?"
}
