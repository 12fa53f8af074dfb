// Package metrics emits renewal lifecycle metrics with consistent tagging.
package metrics

import (
	"time"

	obserrors "github.com/cloudfolio/siteops/internal/observability/errors"
	"github.com/cloudfolio/siteops/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultNoop    = "noop"
)

// StageMetric captures one stage transition of a renewal run.
type StageMetric struct {
	Domain   string
	Stage    string
	Result   string
	Duration time.Duration
	Err      error
}

// EmitRenewalStage emits standardised renewal stage metrics.
func EmitRenewalStage(sink statsd.Sink, in StageMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"domain": in.Domain,
		"stage":  in.Stage,
		"result": in.Result,
	}

	if in.Err != nil && in.Result == ResultError {
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count("renewal.stage", 1, tags)

	if in.Duration > 0 {
		sink.Timing("renewal.stage_duration", in.Duration, CloneTags(tags))
	}
}

// EmitRenewalOutcome emits the terminal result of a full renewal run.
func EmitRenewalOutcome(sink statsd.Sink, domain, outcome string, duration time.Duration) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"domain":  domain,
		"outcome": outcome,
	}
	sink.Count("renewal.run", 1, tags)
	if duration > 0 {
		sink.Timing("renewal.run_duration", duration, CloneTags(tags))
	}
}

// CloneTags creates a shallow copy of a tag map, filtering out empty keys.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		if k == "" {
			continue
		}
		out[k] = v
	}
	return out
}
