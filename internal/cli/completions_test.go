package cli

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestCompleteAuthMethods(t *testing.T) {
	cmd := &cobra.Command{}

	t.Run("returns all methods for empty input", func(t *testing.T) {
		completions, directive := completeAuthMethods(cmd, nil, "")
		if len(completions) != len(authMethods) {
			t.Errorf("expected %d completions, got %d", len(authMethods), len(completions))
		}
		if directive != cobra.ShellCompDirectiveNoFileComp {
			t.Errorf("expected ShellCompDirectiveNoFileComp, got %v", directive)
		}
	})

	t.Run("filters by prefix", func(t *testing.T) {
		completions, _ := completeAuthMethods(cmd, nil, "az")
		if len(completions) != 1 || completions[0] != "azure-entra-id" {
			t.Errorf("expected [azure-entra-id], got %v", completions)
		}
	})

	t.Run("returns empty for non-matching prefix", func(t *testing.T) {
		completions, _ := completeAuthMethods(cmd, nil, "xyz")
		if len(completions) != 0 {
			t.Errorf("expected 0 completions, got %d", len(completions))
		}
	})
}

func TestCompleteSourceRoot(t *testing.T) {
	cmd := &cobra.Command{}

	t.Run("returns FilterDirs directive for first arg", func(t *testing.T) {
		_, directive := completeSourceRoot(cmd, nil, "")
		if directive != cobra.ShellCompDirectiveFilterDirs {
			t.Errorf("expected ShellCompDirectiveFilterDirs, got %v", directive)
		}
	})

	t.Run("returns NoFileComp when args already provided", func(t *testing.T) {
		_, directive := completeSourceRoot(cmd, []string{"./data"}, "")
		if directive != cobra.ShellCompDirectiveNoFileComp {
			t.Errorf("expected ShellCompDirectiveNoFileComp, got %v", directive)
		}
	})
}
