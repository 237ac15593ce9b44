package display

import (
	"github.com/spf13/cobra"
)

// FormatFromCommand reads the command's --format flag. A --json flag set to
// true wins over it.
func FormatFromCommand(cmd *cobra.Command) (Format, error) {
	if cmd == nil {
		return FormatText, nil
	}

	if f := cmd.Flags().Lookup("json"); f != nil && f.Changed {
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return FormatJSON, nil
		}
	}

	if f := cmd.Flags().Lookup("format"); f != nil {
		return ParseFormat(f.Value.String())
	}
	return FormatText, nil
}
