// Package http serves the admin API of a running bean context.
//
//	GET /health        lifecycle state and context id
//	GET /beans         every bean, optionally ?type=<runtime type>
//	GET /beans/{id}    one bean with its post-processed definition
//	GET /metrics       Prometheus exposition
//
// Request and Response wrap the standard library types with small helpers
// used by the handlers.
package http
