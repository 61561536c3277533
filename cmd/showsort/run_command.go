package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"showsort/internal/organizer"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Move new episodes from the inbox into the library, then reconcile it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withPass(cmd, func(runCtx context.Context, env passEnv) error {
				roots := organizer.Roots{
					Inbox:     env.cfg.Inbox,
					Library:   env.cfg.Library,
					Unwatched: env.cfg.Unwatched,
				}
				processor := organizer.NewInboxProcessor(env.logger, env.relocator, roots, ctx.flags.keep, env.settings)
				summary, err := processor.Process(runCtx)

				r := reporter{out: cmd.OutOrStdout(), pretend: ctx.flags.pretend, checksum: ctx.flags.checksum}
				if summary != nil {
					r.inbox(summary)
					if summary.Reconcile != nil {
						r.reconcile(summary.Reconcile)
					}
					r.failures(summary.AllFailures())
				}
				if err != nil {
					return err
				}
				return failureError(len(summary.AllFailures()))
			})
		},
	}
}

func newReconcileCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Move every library file to its Show/Season path and report duplicates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withPass(cmd, func(runCtx context.Context, env passEnv) error {
				reconciler := organizer.NewReconciler(env.logger, env.relocator, env.settings)
				result, err := reconciler.Reconcile(runCtx, env.cfg.Library)

				r := reporter{out: cmd.OutOrStdout(), pretend: ctx.flags.pretend, checksum: ctx.flags.checksum}
				if result != nil {
					r.reconcile(result)
					r.failures(result.Failures)
				}
				if err != nil {
					return err
				}
				return failureError(len(result.Failures))
			})
		},
	}
}

func failureError(count int) error {
	if count == 0 {
		return nil
	}
	return fmt.Errorf("%d file(s) could not be organized", count)
}
