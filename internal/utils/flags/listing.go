// Package flags binds the flags shared by several grass commands.
package flags

import "github.com/spf13/cobra"

const (
	// AllFlagName selects every category instead of a single one.
	AllFlagName = "all"
	// AllFlagShorthand is the shorthand of AllFlagName.
	AllFlagShorthand = "a"
	// FormatFlagName selects the output format.
	FormatFlagName = "format"

	allFlagUsage    = "Include every configured category"
	formatFlagUsage = "Output format"
)

// ListingFlagValues holds the values of the listing flags. Format is empty unless the flag was set.
type ListingFlagValues struct {
	All    bool
	Format string
}

// BindListingFlags attaches --all and --format to command. defaultFormat only affects the usage
// text; the effective default is resolved by the caller.
func BindListingFlags(command *cobra.Command, formats []string, defaultFormat string) *ListingFlagValues {
	values := &ListingFlagValues{}
	if command == nil {
		return values
	}
	AddToggleFlag(command.Flags(), &values.All, AllFlagName, AllFlagShorthand, false, allFlagUsage)
	command.Flags().Var(NewChoiceValue(&values.Format, formats), FormatFlagName, FormatChoiceUsage(defaultFormat, formats, formatFlagUsage))
	return values
}
