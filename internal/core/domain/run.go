package domain

// RunRequest configures one rename/organize pass over a directory.
type RunRequest struct {
	Directory       string
	Mode            Mode
	Execute         bool
	CaseStyle       string
	Categories      []string
	RenameInFolders bool
}

// RunInfo is reported once scanning has finished.
type RunInfo struct {
	RunID           string
	Directory       string
	Mode            Mode
	Files           int
	Model           string
	CaseStyle       string
	Categories      []string
	RenameInFolders bool
	Execute         bool
}

// TranscribeRequest describes one OCR pass over a PDF. Page bounds are
// 1-based and inclusive; zero means unbounded.
type TranscribeRequest struct {
	PDFPath    string
	OutputPath string
	Model      string
	Prompt     string
	DPI        int
	StartPage  int
	EndPage    int
	MaxPages   int
	JSON       bool
}

type TranscribeResult struct {
	OutputPath string
	Pages      []int
	ImagePaths []string
}
