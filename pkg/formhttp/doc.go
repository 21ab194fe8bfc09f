// Package formhttp exposes form validation over HTTP.
//
// Routes (chi):
//
//	POST /forms/{form}/validate   {"session": "...", "data": {...}} -> formstate.State
//	POST /forms/{form}/live       datastar signals {session, data} -> SSE signal patch
//	GET  /forms/{form}/state      ?session=... -> last published formstate.State
//	GET  /forms                   registered form names
//	GET  /healthz                 readiness of the configured checks
//
// The validate endpoint answers 200 for a valid submission and 422 with the
// per-field errors otherwise. The live endpoint is meant for datastar
// frontends: it revalidates only sessions that were submitted once and
// patches the `errors` signal with one entry per field, empty for fields that
// pass, so stale messages are cleared on the client.
//
// Messages are localized through the language that i18n.Middleware stores in
// the request context when a translator is configured.
package formhttp
