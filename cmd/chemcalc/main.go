// Command chemcalc is a command-line companion to the chemistry API. It
// evaluates chemical formulas locally, without a running server.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"chem-calc-api/internal/chem"
	"chem-calc-api/internal/formula"
	"chem-calc-api/internal/ptable"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "chemcalc",
		Short:         "Evaluate chemical formulas from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newMassCmd())
	root.AddCommand(newAtomsCmd())
	root.AddCommand(newParseCmd())

	return root
}

func newMassCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mass <formula>",
		Short: "Compute the molar mass of a formula",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mass, err := chem.MolarMass(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s, %d sig digits)\n",
				mass.String(), mass.Value.String(), mass.Value.SigDigits())
			return nil
		},
	}
}

func newAtomsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "atoms <formula>",
		Short: "List the per-element atom counts of a formula",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flat, err := chem.FlattenFormula(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), flat)
			return nil
		},
	}
}

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <formula>",
		Short: "Print the canonical form of a parsed formula",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := formula.Parse(args[0], ptable.Ions)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), canonical(root))
			return nil
		},
	}
}

// canonical renders the parse tree back to formula text, with implicit
// polyatomic groups made explicit and coefficients in bracketed form.
func canonical(root *formula.Root) string {
	parts := make([]string, 0, len(root.Compounds))
	for _, c := range root.Compounds {
		var b strings.Builder
		if !c.Count.IsOne() {
			b.WriteString("[")
			b.WriteString(c.Count.String())
			b.WriteString("]")
		}
		b.WriteString(c.Symbol)
		if c.Phase != formula.PhaseUnspecified {
			b.WriteString("(")
			b.WriteString(c.Phase.String())
			b.WriteString(")")
		}
		parts = append(parts, b.String())
	}
	return strings.Join(parts, "*")
}
