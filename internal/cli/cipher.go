package cli

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/efxvdb/pkg/cipher"
	"github.com/matzehuels/efxvdb/pkg/errors"
)

// cipherCommand creates the cipher inspection command.
func (c *CLI) cipherCommand() *cobra.Command {
	var policy string

	cmd := &cobra.Command{
		Use:   "cipher",
		Short: "Inspect the identifier cipher",
	}
	cmd.PersistentFlags().StringVar(&policy, "duplicates", "", "duplicate policy: first, last, strict (default from config)")

	table := func(cmd *cobra.Command) (*cipher.Table, error) {
		name := c.settings().Cipher.Duplicates
		if cmd.Flags().Changed("duplicates") {
			name = policy
		}
		p, err := cipher.ParsePolicy(name)
		if err != nil {
			return nil, err
		}
		return cipher.ForPolicy(p)
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Report duplicate keys and byte collisions in the cipher table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := table(cmd)
			if err != nil {
				return err
			}
			writeCipherReport(cmd.OutOrStdout(), t)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "encode NAME...",
		Short:   "Print the encoded bytes of identifiers",
		Example: "  efxvdb cipher encode add counter '$scopeinfo'",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := table(cmd)
			if err != nil {
				return err
			}
			return writeEncoded(cmd.OutOrStdout(), t, args)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "decode HEX",
		Short:   "Decode a length-prefixed identifier (display only, the cipher is not injective)",
		Example: "  efxvdb cipher decode '03 4a 4a 41'",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := table(cmd)
			if err != nil {
				return err
			}
			raw, err := hex.DecodeString(strings.NewReplacer(" ", "", ":", "").Replace(args[0]))
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse hex")
			}
			name, n, err := t.DecodeIdentifier(raw)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			if n < len(raw) {
				fmt.Fprintln(cmd.OutOrStdout(), StyleDim.Render(fmt.Sprintf("%d trailing bytes ignored", len(raw)-n)))
			}
			return nil
		},
	})

	return cmd
}

// writeCipherReport prints table statistics, every duplicated key with the
// code the policy kept, and every byte shared by several characters.
func writeCipherReport(w io.Writer, t *cipher.Table) {
	fmt.Fprintf(w, "%s %s\n", StyleTitle.Render("Cipher table"), StyleDim.Render("("+t.Policy().String()+" wins)"))
	fmt.Fprintf(w, "  entries     %s\n", StyleNumber.Render(fmt.Sprint(len(cipher.DefaultEntries()))))
	fmt.Fprintf(w, "  characters  %s\n", StyleNumber.Render(fmt.Sprint(t.Len())))
	fmt.Fprintf(w, "  charset     %s\n", StyleValue.Render(t.Chars()))

	dups := t.Duplicates()
	fmt.Fprintf(w, "\n%s %s\n", StyleTitle.Render("Duplicate keys"), StyleDim.Render(fmt.Sprintf("(%d)", len(dups))))
	for _, d := range dups {
		kept, _ := t.EncodeChar(d.Char)
		codes := make([]string, len(d.Codes))
		for i, code := range d.Codes {
			codes[i] = fmt.Sprintf("%02x", code)
			if code == kept {
				codes[i] = StyleSuccess.Render(codes[i])
			}
		}
		fmt.Fprintf(w, "  %q  %s\n", d.Char, strings.Join(codes, " "))
	}

	col := t.Collisions()
	fmt.Fprintf(w, "\n%s %s\n", StyleTitle.Render("Byte collisions"), StyleDim.Render(fmt.Sprintf("(%d)", len(col))))
	for b := 0; b < 256; b++ {
		chars, ok := col[byte(b)]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "  %02x  %s\n", b, StyleWarning.Render(string(chars)))
	}
}

// writeEncoded prints one line per name. Names with unmapped characters
// are reported together after the others are printed.
func writeEncoded(w io.Writer, t *cipher.Table, names []string) error {
	var bad []string
	for _, name := range names {
		enc, err := t.EncodeIdentifier(name)
		if err != nil {
			bad = append(bad, fmt.Sprintf("%s (%q)", name, t.Unmapped(name)))
			continue
		}
		fmt.Fprintf(w, "%-24s %s\n", name, StyleNumber.Render(fmt.Sprintf("% x", enc)))
	}
	if len(bad) > 0 {
		return errors.New(errors.ErrCodeUnmappedCharacter, "unmapped characters in %s", strings.Join(bad, ", "))
	}
	return nil
}
