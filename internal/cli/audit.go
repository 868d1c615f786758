package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/oltre/internal/colour"
	"github.com/jmylchreest/oltre/internal/tokens"
)

func newAuditCmd(a *app) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Check the contrast of the configured token set",
		Long: `Check text and brand colours against their backgrounds in light mode and,
when dark mode is enabled, dark mode. Pairs below WCAG AA for normal text are
reported as failures.`,
		Args: cobra.NoArgs,
	}
	ov := bindOverrides(cmd)
	cmd.Flags().BoolVar(&strict, "strict", false, "exit with an error when any pair fails AA")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := a.loadConfig()
		if err != nil {
			return err
		}
		if err := ov.apply(cfg); err != nil {
			return err
		}
		set, err := tokens.Build(cfg)
		if err != nil {
			return err
		}

		entries := set.Audit()
		failures := tokens.Failures(entries)

		out := cmd.OutOrStdout()
		if a.jsonOutput {
			if err := printJSON(out, map[string]any{"entries": entries, "failures": len(failures)}); err != nil {
				return err
			}
		} else {
			sw := newSwatcher(out)
			t := NewTable("Mode", "Foreground", "Background", "Sample", "Ratio", "Grade")
			for _, e := range entries {
				fg, _ := colour.ParseHex(e.FgHex)
				bg, _ := colour.ParseHex(e.BgHex)
				t.AddRow(string(e.Mode), e.Foreground, e.Background, sw.pair(fg, bg, "Aa"),
					fmt.Sprintf("%.2f", e.Ratio), sw.grade(e.Grade()))
			}
			if err := t.Fprint(out); err != nil {
				return err
			}
			if len(failures) == 0 {
				a.status(out, "\n✓ All %d pairs meet WCAG AA\n", len(entries))
			} else {
				a.status(out, "\n⚠ %d of %d pairs are below WCAG AA\n", len(failures), len(entries))
			}
		}

		if strict && len(failures) > 0 {
			return fmt.Errorf("%d contrast pair(s) below WCAG AA", len(failures))
		}
		return nil
	}

	return cmd
}
