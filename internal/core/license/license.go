// Package license fills in the placeholders of the template's LICENSE file.
package license

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/nightconcept/pyinit-go/internal/core/config"
	"github.com/nightconcept/pyinit-go/internal/core/fsutil"
)

const (
	YearToken = "<year>"
	NameToken = "<name>"
)

// Render replaces every <year> with year and every <name> with name.
// The year is substituted first, so a name containing "<year>" is left as typed.
func Render(text string, name string, year int) string {
	text = strings.ReplaceAll(text, YearToken, strconv.Itoa(year))
	return strings.ReplaceAll(text, NameToken, name)
}

// Update rewrites LICENSE in dirPath in place.
func Update(dirPath, name string, now time.Time) error {
	fullPath := filepath.Join(dirPath, config.LicenseName)
	data, err := os.ReadFile(fullPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", config.LicenseName, err)
	}
	if err := fsutil.ReplaceFile(fullPath, []byte(Render(string(data), name, now.Year()))); err != nil {
		return fmt.Errorf("writing %s: %w", config.LicenseName, err)
	}
	return nil
}
