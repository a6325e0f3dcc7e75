package domain

// InferenceRequest is a single non-streaming generation call. Images are
// filesystem paths; the client encodes them.
type InferenceRequest struct {
	Model  string
	Prompt string
	Images []string
	JSON   bool
}

func (r InferenceRequest) Shape() string {
	if len(r.Images) > 0 {
		return "vision"
	}
	return "text"
}
