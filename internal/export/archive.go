package export

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/piwi3910/BarNest/internal/model"
)

// ExportPerTagZIP writes a ZIP archive containing one PDF report per tag
// in the project's plan.
func ExportPerTagZIP(path string, project model.Project) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	if err := WritePerTagZIP(f, project); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WritePerTagZIP streams the per-tag PDF archive to a writer.
func WritePerTagZIP(w io.Writer, project model.Project) error {
	tags := PlanTags(project)
	if len(tags) == 0 {
		return fmt.Errorf("no tags to archive")
	}

	zw := zip.NewWriter(w)
	for _, tag := range tags {
		entry, err := zw.Create(safeFileName(tag) + ".pdf")
		if err != nil {
			zw.Close()
			return fmt.Errorf("failed to add archive entry for %q: %w", tag, err)
		}
		if err := WriteTagPDF(entry, project, tag); err != nil {
			zw.Close()
			return fmt.Errorf("failed to render PDF for %q: %w", tag, err)
		}
	}
	return zw.Close()
}

// safeFileName makes a tag usable as an archive entry name.
func safeFileName(tag string) string {
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-")
	return replacer.Replace(tag)
}
