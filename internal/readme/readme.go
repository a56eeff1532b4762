// Package readme loads a project's long description.
package readme

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/LCHCAPITALHUMAIN/ml-toast/internal/platform/logging"
)

// ContentType is the long description content type of a markdown README.
const ContentType = "text/markdown"

// Load returns the text of the file at path with CRLF and CR line endings
// converted to LF. Any failure to read it yields an empty string; the README
// is optional for a distribution.
func Load(ctx context.Context, path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		logging.FromContext(ctx).Debug("readme not loaded",
			slog.String("path", path),
			slog.Any("error", err),
		)
		return ""
	}
	return newlines.Replace(string(data))
}

var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")
