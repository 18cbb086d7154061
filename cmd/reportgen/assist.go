package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-reportgen/pkg/assist"
	"github.com/goliatone/go-reportgen/pkg/clipboard"
	"github.com/goliatone/go-reportgen/pkg/session"
)

var noCopy bool

var assistCmd = &cobra.Command{
	Use:   "assist",
	Short: "Fill a report interactively and copy it to the clipboard",
	RunE:  runAssist,
}

func init() {
	assistCmd.Flags().BoolVar(&noCopy, "no-copy", false, "print the report without copying it")
}

func runAssist(cmd *cobra.Command, _ []string) error {
	a, err := bootstrap(true)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	reader, err := a.catalogReader(ctx)
	if err != nil {
		return err
	}

	runner, err := assist.New(reader,
		assist.WithDriver(assist.NewSurveyDriver(cmd.OutOrStdout())),
		assist.WithLogger(a.logger.Named("assist")),
		assist.WithSessionOptions(session.WithLogger(a.logger.Named("session"))),
	)
	if err != nil {
		return err
	}

	view, err := runner.Run(ctx)
	if errors.Is(err, assist.ErrAborted) {
		fmt.Fprintln(cmd.ErrOrStderr(), color.YellowString("Rapport abandonné."))
		return nil
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, view.Report.Text)
	if noCopy || view.Report.Text == "" {
		return nil
	}

	copier := clipboard.NewCopier(clipboard.System{}, clipboard.WithLogger(a.logger.Named("clipboard")))
	copyReport(cmd.OutOrStdout(), cmd.ErrOrStderr(), copier, view.Report.Text)
	return nil
}

// copyReport copies text and reports the outcome. The confirmation is only
// printed while the copier still acknowledges the write.
func copyReport(out, errOut io.Writer, copier *clipboard.Copier, text string) {
	copier.Copy(text)
	copier.Wait()
	if err := copier.Err(); err != nil {
		fmt.Fprintln(errOut, color.YellowString("Copie impossible : %v", err))
		return
	}
	if copier.Acknowledged() {
		fmt.Fprintln(out, color.GreenString("Copié !"))
	}
}
