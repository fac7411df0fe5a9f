// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldOutput     = "output"
	FieldRef        = "ref"
	FieldWorkingDir = "working_dir"

	// Parser fields.
	FieldMacro   = "macro"
	FieldStream  = "stream"
	FieldCharset = "charset"
	FieldJobs    = "jobs"

	// Statistics fields.
	FieldDocsDiscovered = "docs_discovered"
	FieldDocsProcessed  = "docs_processed"
	FieldDocsFailed     = "docs_failed"
	FieldMessages       = "messages"
	FieldTranslated     = "translated"
	FieldUntranslated   = "untranslated"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
