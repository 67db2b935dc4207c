package posting

// RawPosting is the unstructured job description being analyzed. Source is an
// optional label (file path, URL) used only for logging.
type RawPosting struct {
	Text   string `json:"text"`
	Source string `json:"source,omitempty"`
}
