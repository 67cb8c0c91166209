package domain

// IngestionResult accumulates the outcome of parsing one or more .dlog
// files. Per-record failures are counted and described, never fatal.
type IngestionResult struct {
	Files   int      `json:"files"`   // files that were read
	Total   int      `json:"total"`   // records seen
	Success int      `json:"success"` // records parsed
	Failed  int      `json:"failed"`  // malformed records skipped
	Skipped int      `json:"skipped"` // empty records skipped
	Errors  []string `json:"errors"`  // per-record error descriptions
}

// Merge folds another result into this one.
func (r *IngestionResult) Merge(other *IngestionResult) {
	if other == nil {
		return
	}
	r.Files += other.Files
	r.Total += other.Total
	r.Success += other.Success
	r.Failed += other.Failed
	r.Skipped += other.Skipped
	r.Errors = append(r.Errors, other.Errors...)
}

// ExtractionResult accumulates the outcome of decompressing the archives of
// one folder. A folder with zero archives is a successful no-op.
type ExtractionResult struct {
	Archives  int      `json:"archives"`  // archives found
	Extracted int      `json:"extracted"` // archives decompressed
	Failed    int      `json:"failed"`    // corrupt or unreadable archives
	Errors    []string `json:"errors"`    // per-archive error descriptions
}
