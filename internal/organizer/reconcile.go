package organizer

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"

	"showsort/internal/episode"
	"showsort/internal/logging"
	"showsort/internal/relocate"
)

// DuplicateGroup lists every path that resolved to one episode, in the order
// the walk observed them.
type DuplicateGroup struct {
	Key   episode.Key
	Paths []string
}

// DuplicateReport holds groups in first-observed key order.
type DuplicateReport []DuplicateGroup

// ReconcileResult summarizes one library walk.
type ReconcileResult struct {
	// Scanned counts recognized video files visited.
	Scanned int
	// Relocated counts files moved to their canonical path.
	Relocated  int
	Duplicates DuplicateReport
	Failures   []FileFailure
}

// Reconciler normalizes a library tree in place.
type Reconciler struct {
	logger    *slog.Logger
	relocator *relocate.Relocator
	settings  Settings
}

// NewReconciler constructs a reconciler. A nil relocator gets one sharing logger.
func NewReconciler(logger *slog.Logger, relocator *relocate.Relocator, settings Settings) *Reconciler {
	if relocator == nil {
		relocator = relocate.New(logger)
	}
	return &Reconciler{
		logger:    logging.NewComponentLogger(logger, "reconciler"),
		relocator: relocator,
		settings:  settings,
	}
}

// episodeIndex groups resulting paths by episode key, remembering key order.
type episodeIndex struct {
	order []episode.Key
	paths map[episode.Key][]string
}

func newEpisodeIndex() *episodeIndex {
	return &episodeIndex{paths: make(map[episode.Key][]string)}
}

func (x *episodeIndex) add(key episode.Key, path string) {
	if _, ok := x.paths[key]; !ok {
		x.order = append(x.order, key)
	}
	x.paths[key] = append(x.paths[key], path)
}

func (x *episodeIndex) duplicates() DuplicateReport {
	var report DuplicateReport
	for _, key := range x.order {
		if paths := x.paths[key]; len(paths) > 1 {
			report = append(report, DuplicateGroup{Key: key, Paths: paths})
		}
	}
	return report
}

// Reconcile walks root in lexical order, moving every recognized video file
// to root/Show/Season N/Show SxxExx.ext, and reports duplicate episodes. The
// partial result is returned alongside any error that stopped the walk.
func (r *Reconciler) Reconcile(ctx context.Context, root string) (*ReconcileResult, error) {
	ctx = logging.WithPhase(ctx, "reconcile")
	logger := logging.WithContext(ctx, r.logger)
	policy := r.settings.policy()

	root, err := filepath.Abs(root)
	if err != nil {
		return nil, classifyRootError("reconcile", root, root, err)
	}

	result := &ReconcileResult{}
	index := newEpisodeIndex()
	visited := make(map[string]struct{})
	// Destinations claimed by simulated moves, so a dry run reports the
	// conflicts a real run would hit.
	claimed := make(map[string]string)

	fail := func(path string, err error) error {
		result.Failures = append(result.Failures, FileFailure{Path: path, Err: err})
		return policy(ctx, path, err)
	}

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			classified := classifyRootError("reconcile", root, path, err)
			if path == root {
				return classified
			}
			return fail(path, classified)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || !d.Type().IsRegular() || !r.settings.Extensions.Match(path) {
			return nil
		}
		if _, seen := visited[path]; seen {
			return nil
		}
		result.Scanned++

		id, err := episode.Parse(path)
		if err != nil {
			return fail(path, err)
		}
		dest := libraryPath(root, id)

		var outcome relocate.Outcome
		if owner, taken := claimed[dest]; taken && owner != path {
			err = &relocate.OverwriteError{Src: path, Dest: dest}
		} else {
			outcome, err = r.relocator.Relocate(ctx, path, dest, relocate.Options{Pretend: r.settings.Pretend})
		}
		if err != nil {
			visited[path] = struct{}{}
			index.add(id.Key(), path)
			return fail(path, err)
		}

		if r.settings.Pretend {
			claimed[dest] = path
		}
		visited[dest] = struct{}{}
		index.add(id.Key(), dest)
		if outcome == relocate.Performed {
			result.Relocated++
		}
		return nil
	})

	result.Duplicates = index.duplicates()
	logDuplicates(logger, result.Duplicates)
	logger.Info("library reconciled",
		logging.String("library", root),
		logging.Int("scanned", result.Scanned),
		logging.Int("relocated", result.Relocated),
		logging.Int("duplicates", len(result.Duplicates)),
		logging.Int("failures", len(result.Failures)),
	)
	if walkErr != nil {
		return result, walkErr
	}
	return result, nil
}
