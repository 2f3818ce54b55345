// Package cli provides the interactive pdfconv command-line client.
//
// It wires configuration, local storage, the conversion services and an
// interactive REPL. Typical flow: upload PDF files, pick target formats,
// run the batch and download the results.
//
// Key features:
//   - Upload / list / remove files with admission checks
//   - Format catalog, per-format settings and presets
//   - Batch conversion with pause, resume, reset and per-file retry
//   - Conversion history with re-download
//   - Daily usage quota and cache inspection
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
