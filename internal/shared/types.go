package shared

// Task types and queues shared between the API (enqueue side) and the worker
// (processing side).
const (
	TypeEnrichmentSweep = "enrichment:sweep"

	QueueEnrichment = "enrichment"
)
