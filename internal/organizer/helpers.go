package organizer

import (
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"showsort/internal/episode"
	"showsort/internal/fault"
	"showsort/internal/logging"
	"showsort/internal/relocate"
)

// ExtensionFilter matches file names against a video extension allow-list.
type ExtensionFilter struct {
	exts map[string]struct{}
}

// NewExtensionFilter builds a filter from extensions such as ".mkv". Matching
// is case-insensitive; a missing leading dot is tolerated.
func NewExtensionFilter(exts []string) ExtensionFilter {
	set := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = struct{}{}
	}
	return ExtensionFilter{exts: set}
}

// Match reports whether path carries a recognized video extension.
func (f ExtensionFilter) Match(path string) bool {
	_, ok := f.exts[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Settings are shared by both passes.
type Settings struct {
	Extensions ExtensionFilter
	// Policy decides whether a per-file failure stops the pass. Nil aborts.
	Policy  FailurePolicy
	Pretend bool
}

func (s Settings) policy() FailurePolicy {
	if s.Policy == nil {
		return AbortOnFailure
	}
	return s.Policy
}

// FileFailure records a file the pass could not handle.
type FileFailure struct {
	Path string
	Err  error
}

// libraryPath is the canonical nested location of an episode.
func libraryPath(root string, id episode.Identity) string {
	return filepath.Join(root, id.ShowName, id.SeasonDir(), id.FormattedFilename())
}

// classifyRootError tags errors reading a role directory. A vanished root or
// an unreachable mount ends the pass.
func classifyRootError(phase, root, path string, err error) error {
	switch {
	case path == root && errors.Is(err, fs.ErrNotExist):
		return fault.Wrap(fault.ErrUnavailable, phase, "read directory", root+" does not exist", err)
	case relocate.IsUnavailable(err):
		return fault.Wrap(fault.ErrUnavailable, phase, "read directory", path, err)
	default:
		return fault.Wrap(fault.ErrFilesystem, phase, "read directory", path, err)
	}
}

func logDuplicates(logger *slog.Logger, report DuplicateReport) {
	for _, group := range report {
		logging.WarnWithContext(logger, "duplicate episode in library", "duplicate_episode",
			logging.String(logging.FieldEpisodeKey, group.Key.String()),
			logging.Strings("paths", group.Paths),
			logging.String(logging.FieldErrorHint, "keep one copy and delete the others"),
			logging.String(logging.FieldImpact, "library holds more than one file for this episode"),
		)
	}
}
