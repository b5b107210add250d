package media

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/portfolio-site/portfolio-backend/internal/apperr"
)

// AcceptedExtensions are the image types the admin form offers.
var AcceptedExtensions = []string{".png", ".jpg", ".jpeg", ".webp"}

func Accepted(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, a := range AcceptedExtensions {
		if ext == a {
			return true
		}
	}
	return false
}

// CheckFiles rejects a batch containing a file the form would not accept.
func CheckFiles(files []File) error {
	for _, f := range files {
		if !Accepted(f.Name) {
			return apperr.Invalid("images", fmt.Sprintf("%q is not one of %s", f.Name, strings.Join(AcceptedExtensions, ", ")))
		}
	}
	return nil
}
