package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/biasscan-cli/internal/utils"
)

// ErrEmptyReport is returned when exporting a report with nothing in it.
var ErrEmptyReport = errors.New("report is empty; run an analysis first")

// Export writes the rendered report to path atomically, creating parent
// directories as needed.
func Export(r *Report, path, format string) error {
	if r.Empty() {
		return ErrEmptyReport
	}
	data, err := r.Render(format)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := utils.SafeWriteFile(path, data); err != nil {
		return fmt.Errorf("export report: %w", err)
	}
	return nil
}
