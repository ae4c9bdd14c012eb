package distribution

import (
	"archive/zip"
	"fmt"

	"github.com/dbrown540/pypeline-cli/internal/project"
)

// VerifyManifestAtRoot reopens the archive at path and reports whether the
// manifest filename appears in its entry list with no directory prefix. This
// is the sanity check behind Snowflake's structural requirement; the single
// check is all the verification a produced archive gets.
func VerifyManifestAtRoot(path string) (bool, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return false, fmt.Errorf("reopen archive %s: %w", path, err)
	}
	defer reader.Close()

	for _, entry := range reader.File {
		if entry.Name == project.ManifestFilename {
			return true, nil
		}
	}
	return false, nil
}
