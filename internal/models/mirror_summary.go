package models

import "time"

// MirrorSummary describes the outcome of one mirror run. A run that produced
// a summary saved its document; asset failures do not change that.
type MirrorSummary struct {
	RunID        string         `json:"run_id"`
	TargetURL    string         `json:"target_url"`
	OutputDir    string         `json:"output_dir"`
	DocumentPath string         `json:"document_path"`
	DocumentSize int            `json:"document_size"`
	Stored       []StoredAsset  `json:"stored"`
	Failed       []AssetFailure `json:"failed"`
	Skipped      []SkippedRef   `json:"skipped"`
	Discovered   int            `json:"discovered"`
	Attempts     int            `json:"attempts"`
	Collisions   int            `json:"collisions"`
	StartedAt    time.Time      `json:"started_at"`
	FinishedAt   time.Time      `json:"finished_at"`
}

// SkippedRef is a reference dropped without an attempt (non-fetchable scheme).
type SkippedRef struct {
	RawRef   string        `json:"raw_ref"`
	Category AssetCategory `json:"category"`
	Scheme   string        `json:"scheme"`
}

// Duration returns wall-clock time of the run
func (s *MirrorSummary) Duration() time.Duration {
	if s.FinishedAt.IsZero() {
		return 0
	}
	return s.FinishedAt.Sub(s.StartedAt)
}

// StoredIn returns the stored assets of one category, in commit order.
func (s *MirrorSummary) StoredIn(category AssetCategory) []StoredAsset {
	var out []StoredAsset
	for _, a := range s.Stored {
		if a.Category == category {
			out = append(out, a)
		}
	}
	return out
}
