package model

// Path represents a file system path.
type Path string

// File represents a source code file.
type File struct {
	FullPath  Path
	ShortPath Path
}

// Source is one source unit handed to the pipeline.
type Source struct {
	Origin *File
}

// Fragment is the extraction result of one source unit: its messages in
// declaration order plus the per-message diagnostics that were skipped.
type Fragment struct {
	Source      Source
	Messages    []Message
	Diagnostics []Diagnostic
}
