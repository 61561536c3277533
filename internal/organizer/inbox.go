package organizer

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"showsort/internal/episode"
	"showsort/internal/logging"
	"showsort/internal/relocate"
)

// Roots names the directories an inbox pass works with.
type Roots struct {
	Inbox   string
	Library string
	// Unwatched is optional; when set every new episode is linked there too.
	Unwatched string
}

// Placement records where an inbox file landed in the library root.
type Placement struct {
	Source   string
	Dest     string
	Identity episode.Identity
}

// RunSummary is the outcome of a full inbox pass plus reconciliation.
type RunSummary struct {
	// Processed counts inbox files that reached the library. Zero means
	// nothing new arrived.
	Processed  int
	Placements []Placement
	Failures   []FileFailure
	Reconcile  *ReconcileResult
}

// AllFailures returns inbox failures followed by reconcile failures.
func (s *RunSummary) AllFailures() []FileFailure {
	failures := append([]FileFailure(nil), s.Failures...)
	if s.Reconcile != nil {
		failures = append(failures, s.Reconcile.Failures...)
	}
	return failures
}

// InboxProcessor moves new arrivals into the library and then reconciles it.
type InboxProcessor struct {
	logger     *slog.Logger
	relocator  *relocate.Relocator
	reconciler *Reconciler
	roots      Roots
	// keep links inbox files into the library instead of moving them.
	keep     bool
	settings Settings
}

// NewInboxProcessor constructs an inbox processor. Keep leaves inbox files in
// place (for seeding) and hard-links them into the library instead.
func NewInboxProcessor(logger *slog.Logger, relocator *relocate.Relocator, roots Roots, keep bool, settings Settings) *InboxProcessor {
	if relocator == nil {
		relocator = relocate.New(logger)
	}
	return &InboxProcessor{
		logger:     logging.NewComponentLogger(logger, "inbox"),
		relocator:  relocator,
		reconciler: NewReconciler(logger, relocator, settings),
		roots:      roots,
		keep:       keep,
		settings:   settings,
	}
}

// Process handles every recognized video file directly inside the inbox in
// name order, then reconciles the library. The partial summary is returned
// alongside any error that stopped the run.
func (p *InboxProcessor) Process(ctx context.Context) (*RunSummary, error) {
	summary := &RunSummary{}
	if err := p.processInbox(ctx, summary); err != nil {
		return summary, err
	}

	result, err := p.reconciler.Reconcile(ctx, p.roots.Library)
	summary.Reconcile = result
	if err != nil {
		return summary, err
	}
	return summary, nil
}

func (p *InboxProcessor) processInbox(ctx context.Context, summary *RunSummary) error {
	ctx = logging.WithPhase(ctx, "inbox")
	logger := logging.WithContext(ctx, p.logger)
	policy := p.settings.policy()

	entries, err := os.ReadDir(p.roots.Inbox)
	if err != nil {
		return classifyRootError("inbox", p.roots.Inbox, p.roots.Inbox, err)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !entry.Type().IsRegular() {
			continue
		}
		src := filepath.Join(p.roots.Inbox, entry.Name())
		if !p.settings.Extensions.Match(src) {
			logger.Debug("ignoring non-video file", logging.String("path", src))
			continue
		}

		placement, err := p.place(ctx, src)
		if err != nil {
			summary.Failures = append(summary.Failures, FileFailure{Path: src, Err: err})
			if stop := policy(ctx, src, err); stop != nil {
				return stop
			}
			continue
		}
		summary.Processed++
		summary.Placements = append(summary.Placements, placement)
		logger.Info("new episode",
			logging.String("show", placement.Identity.ShowName),
			logging.String("file", placement.Identity.FormattedFilename()),
			logging.String(logging.FieldEpisodeKey, placement.Identity.Key().String()),
		)
	}

	logger.Info("inbox processed",
		logging.String("inbox", p.roots.Inbox),
		logging.Int("processed", summary.Processed),
		logging.Int("failures", len(summary.Failures)),
	)
	return nil
}

func (p *InboxProcessor) place(ctx context.Context, src string) (Placement, error) {
	id, err := episode.Parse(src)
	if err != nil {
		return Placement{}, err
	}
	name := id.FormattedFilename()
	dest := filepath.Join(p.roots.Library, name)

	opts := relocate.Options{AsLink: p.keep, Pretend: p.settings.Pretend}
	if _, err := p.relocator.Relocate(ctx, src, dest, opts); err != nil {
		return Placement{}, err
	}

	if p.roots.Unwatched != "" {
		// Nothing exists at dest during a dry run; link from the source instead.
		linkSrc := dest
		if p.settings.Pretend {
			linkSrc = src
		}
		mirror := filepath.Join(p.roots.Unwatched, name)
		linkOpts := relocate.Options{AsLink: true, Pretend: p.settings.Pretend}
		if _, err := p.relocator.Relocate(ctx, linkSrc, mirror, linkOpts); err != nil {
			return Placement{}, err
		}
	}

	return Placement{Source: src, Dest: dest, Identity: id}, nil
}
