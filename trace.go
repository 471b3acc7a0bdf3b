package tmd

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tmd'.
func tracer() tracing.Trace {
	return tracing.Select("tmd")
}
