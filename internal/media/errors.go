package media

import "fmt"

// UploadError reports the first file of a batch that failed to upload.
// Committed lists the paths stored before the failure; they are not removed.
type UploadError struct {
	Index     int
	Name      string
	Path      string
	Committed []string
	Err       error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %q (file %d) failed: %v", e.Name, e.Index+1, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }
