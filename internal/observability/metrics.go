// Package observability holds the server's Prometheus collectors.
package observability

import "github.com/prometheus/client_golang/prometheus"

var (
	// ToolCalls counts MCP tool invocations by tool name and outcome.
	ToolCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deckhand_tool_calls_total",
			Help: "MCP tool invocations by tool and status.",
		},
		[]string{"tool", "status"},
	)

	// TransitionPatches counts per-slide transition patch outcomes.
	TransitionPatches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deckhand_transition_patches_total",
			Help: "Per-slide transition patch outcomes.",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(ToolCalls, TransitionPatches)
}
