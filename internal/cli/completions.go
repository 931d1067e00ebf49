package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// authMethods contains the --auth-method spellings offered for shell completion.
var authMethods = []string{"standard", "aws-iam", "azure-entra-id", "google-iam"}

// completeAuthMethods provides shell completion for the --auth-method flag.
func completeAuthMethods(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var matches []string
	for _, m := range authMethods {
		if strings.HasPrefix(m, toComplete) {
			matches = append(matches, m)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}

// completeSourceRoot limits positional completion to directories.
func completeSourceRoot(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveFilterDirs
}
