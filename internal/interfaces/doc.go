// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Conversion
//
//   - Converter: runs the detect, parse and serialize pipeline (internal/http/stores.go),
//     implemented by conversion.Engine
//   - EntryExporter: writes converted entries somewhere (internal/exporters/generic.go)
//
// ## Data Access Interfaces
//
//   - JobStore: conversion job persistence (internal/audit/service.go)
//   - JobReader: read-only job log access for HTTP (internal/http/stores.go)
//   - ConversionLogger: records one job per conversion call (internal/http/stores.go)
//
// ## Background Maintenance
//
//   - JobCleaner: deletes old jobs (internal/tasks/cleanup_jobs.go)
//   - CleanupEnqueuer: hands cleanup to the task queue (internal/scheduler/job_cleanup.go)
//   - TaskRunner: task queue access for HTTP (internal/http/stores.go)
//
// # Adding a New Input Format
//
// To accept another reference export format (e.g. CSL JSON):
//
//  1. Create a parser package under internal/, following internal/ris:
//
//     type Parser struct{}
//
//     func (p *Parser) Parse(r io.Reader, opts entities.ConversionOptions) ([]*entities.ReferenceEntry, []string, error)
//
//  2. Add a entities.SourceFormat constant and a detection rule in
//     internal/conversion/detect.go
//
//  3. Dispatch to the parser in conversion.Engine.Convert
//
// # Adding a New Output Target
//
//  1. Implement exporters.EntryExporter in internal/exporters/
//
//     var _ exporters.EntryExporter = (*MyExporter)(nil)
//
//  2. Wire it into the CLI or an HTTP handler
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for examples.
package interfaces
