// Package app assembles the notes web client from its configuration: the
// route table, the views, the asset source, metrics, tracing and the
// server.
package app
