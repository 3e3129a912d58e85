/*
Package zapflow is the high-level entry point for the funnel flow-graph and
webhook field-mapping engine.

It wires the pure cores (pkg/flow, pkg/mapping) to the driven ports
(pkg/ports) and exposes a small Service API used by the HTTP adapter and the
CLI: persist funnels behind structural validation, apply graph edit
commands, and ingest webhook payloads into routed extraction results.

# Usage

	store := memory.NewStore()
	svc := zapflow.New(zapflow.WithStores(store, store))

	funnel := &domain.FunnelDefinition{ID: "welcome", Name: "Welcome"}
	if _, err := svc.SaveFunnel(ctx, funnel); err != nil {
		log.Fatal(err)
	}

	result, err := svc.Ingest(ctx, "hotmart", payload)
*/
package zapflow
