// Package metrics exposes process counters through expvar.
package metrics

import "expvar"

var (
	HTTPRequests   = expvar.NewInt("alpaca_http_requests")
	HTTPErrors     = expvar.NewInt("alpaca_http_errors")
	HTTPRetries    = expvar.NewInt("alpaca_http_retries")
	StreamMessages = expvar.NewInt("alpaca_stream_messages")
)
