package runner

// DocOutcome is the result of processing one document.
type DocOutcome struct {
	// Path is the document that was processed.
	Path string

	// Messages is the number of catalog messages the document
	// produced.
	Messages int

	// Warnings counts non-fatal diagnostics.
	Warnings int

	// Error is set when the document could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// DocsDiscovered is the total number of documents found.
	DocsDiscovered int

	// DocsProcessed is the number of documents processed successfully.
	DocsProcessed int

	// DocsFailed is the number of documents that hit a fatal
	// diagnostic.
	DocsFailed int

	// Messages is the total number of catalog messages.
	Messages int

	// Warnings is the total number of non-fatal diagnostics.
	Warnings int
}

// Result is the overall runner result, ordered by discovery order.
type Result struct {
	Docs  []DocOutcome
	Stats Stats
}

func (r *Result) accumulate(outcome DocOutcome) {
	r.Docs = append(r.Docs, outcome)
	if outcome.Error != nil {
		r.Stats.DocsFailed++
	} else {
		r.Stats.DocsProcessed++
	}
	r.Stats.Messages += outcome.Messages
	r.Stats.Warnings += outcome.Warnings
}

// FirstError returns the first per-document error, if any.
func (r *Result) FirstError() error {
	for _, d := range r.Docs {
		if d.Error != nil {
			return d.Error
		}
	}
	return nil
}
