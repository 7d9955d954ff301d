// Package config loads the notesweb.json configuration.
//
// Values are resolved in order: built-in defaults, the file, then
// environment overrides (BASE_URL, NOTESWEB_HISTORY, NOTESWEB_ADDR,
// NOTESWEB_ASSETS_DIR, NOTESWEB_ASSETS_BUCKET, NOTESWEB_LOG_LEVEL).
//
//	{
//	  "history": "web",
//	  "base": "/notes/",
//	  "address": ":5173",
//	  "assets": {"dir": "public"},
//	  "metrics": {"enabled": true, "path": "/metrics"},
//	  "tracing": {"enabled": false},
//	  "log": {"level": "info", "format": "text"}
//	}
//
// Errors carry codes from internal/errors (E120 parse, E121 base, E122
// address, E123 history mode, E124 logging, E125 metrics path, E141
// missing file).
package config
