package types

// PatchResult describes a completed patch run
type PatchResult struct {
	ConfigPath string `json:"config_path"`
	BackupPath string `json:"backup_path"`
	Field      string `json:"field"`
	Current    string `json:"current"`
	Editor     string `json:"editor"`

	// Previous is the display value found by the key scan. Empty when the
	// scan found nothing; it may belong to a different Address key than Field.
	Previous string `json:"previous,omitempty"`

	// Changed reports whether the document bytes differ after the edit
	Changed bool `json:"changed"`
}

// PreviousOrUnknown returns the previous value for display
func (r *PatchResult) PreviousOrUnknown() string {
	if r.Previous == "" {
		return "unknown"
	}
	return r.Previous
}
