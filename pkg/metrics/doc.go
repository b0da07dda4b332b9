// Package metrics exports render activity to Prometheus.
//
// An Observer implements component.Observer and carries the counters the
// live preview server updates:
//
//	obs := metrics.New(metrics.WithNamespace("storefront"))
//	component.SetObserver(obs)
//	http.Handle("/metrics", obs.Handler())
//
// Metrics collected (with the default namespace):
//   - storefront_renders_total{kind,reason}
//   - storefront_list_changes_total{op}
//   - storefront_async_settled_total{outcome}
//   - storefront_async_duration_seconds
//   - storefront_live_clients
//   - storefront_live_events_total{type,handled}
//   - storefront_loop_tasks_total, storefront_loop_panics_total,
//     storefront_loop_dropped_total, storefront_loop_pending (after ObserveLoop)
package metrics
