package relocate

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"showsort/internal/logging"
)

// Outcome describes what Relocate did.
type Outcome int

const (
	// Skipped means src and dest are the same path.
	Skipped Outcome = iota
	// Performed means a rename, link, or redundant-link removal happened
	// (or would have, in pretend mode).
	Performed
	// AlreadyLinked means dest is already a hard link to src.
	AlreadyLinked
)

func (o Outcome) String() string {
	switch o {
	case Skipped:
		return "skipped"
	case Performed:
		return "performed"
	case AlreadyLinked:
		return "already_linked"
	default:
		return "unknown"
	}
}

// Options control a single relocation.
type Options struct {
	// AsLink creates a hard link at dest and keeps src.
	AsLink bool
	// Pretend logs the action without touching the filesystem.
	Pretend bool
}

// Relocator performs safe relocations and logs each decision.
type Relocator struct {
	logger *slog.Logger
}

// New constructs a Relocator. A nil logger discards output.
func New(logger *slog.Logger) *Relocator {
	return &Relocator{logger: logging.NewComponentLogger(logger, "relocate")}
}

// Relocate moves (or links, with AsLink) src to dest.
func (r *Relocator) Relocate(ctx context.Context, src, dest string, opts Options) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Skipped, err
	}
	logger := logging.WithContext(ctx, r.logger)

	srcAbs, err := filepath.Abs(src)
	if err != nil {
		return Skipped, classify("resolve source", src, err)
	}
	destAbs, err := filepath.Abs(dest)
	if err != nil {
		return Skipped, classify("resolve destination", dest, err)
	}
	if srcAbs == destAbs {
		logger.Debug("already in place", logging.String("path", srcAbs))
		return Skipped, nil
	}

	srcInfo, err := os.Stat(srcAbs)
	if err != nil {
		return Skipped, classify("stat source", srcAbs, err)
	}

	attrs := []logging.Attr{
		logging.String("src", srcAbs),
		logging.String("dest", destAbs),
	}
	if opts.Pretend {
		attrs = append(attrs, logging.Bool("pretend", true))
	}

	destInfo, err := os.Lstat(destAbs)
	switch {
	case err == nil:
		return r.resolveExisting(logger, srcAbs, destAbs, srcInfo, destInfo, opts, attrs)
	case !errors.Is(err, fs.ErrNotExist):
		return Skipped, classify("stat destination", destAbs, err)
	}

	if !opts.Pretend {
		if err := os.MkdirAll(filepath.Dir(destAbs), 0o755); err != nil {
			return Skipped, classify("create destination directory", filepath.Dir(destAbs), err)
		}
	}

	if opts.AsLink {
		if !opts.Pretend {
			if err := os.Link(srcAbs, destAbs); err != nil {
				return Skipped, classify("link", destAbs, err)
			}
		}
		logger.Info("linked", logging.Args(attrs...)...)
		return Performed, nil
	}

	if !opts.Pretend {
		if err := os.Rename(srcAbs, destAbs); err != nil {
			return Skipped, classify("move", destAbs, err)
		}
	}
	logger.Info("moved", logging.Args(attrs...)...)
	return Performed, nil
}

func (r *Relocator) resolveExisting(logger *slog.Logger, src, dest string, srcInfo, destInfo fs.FileInfo, opts Options, attrs []logging.Attr) (Outcome, error) {
	if !os.SameFile(srcInfo, destInfo) {
		return Skipped, &OverwriteError{Src: src, Dest: dest}
	}
	if opts.AsLink {
		logger.Debug("already linked", logging.Args(attrs...)...)
		return AlreadyLinked, nil
	}
	if !opts.Pretend {
		if err := os.Remove(src); err != nil {
			return Skipped, classify("remove redundant link", src, err)
		}
	}
	logger.Info("removed redundant link", logging.Args(attrs...)...)
	return Performed, nil
}
