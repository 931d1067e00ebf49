package cli

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/vvka-141/babynames/pkg/babynames"
)

func TestRequireSourcePath(t *testing.T) {
	cmd := &cobra.Command{
		Use: "load <root>",
	}

	t.Run("returns error when no args", func(t *testing.T) {
		err := RequireSourcePath(cmd, []string{})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "missing required argument: <root>") {
			t.Errorf("expected error to contain 'missing required argument: <root>', got: %s", err.Error())
		}
		if !strings.Contains(err.Error(), "Example:") {
			t.Errorf("expected error to contain 'Example:', got: %s", err.Error())
		}
	})

	t.Run("returns nil when arg provided", func(t *testing.T) {
		if err := RequireSourcePath(cmd, []string{"./data"}); err != nil {
			t.Errorf("expected nil, got: %v", err)
		}
	})

	t.Run("returns error when too many args", func(t *testing.T) {
		err := RequireSourcePath(cmd, []string{"a", "b"})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "accepts 1 arg") {
			t.Errorf("expected error to contain 'accepts 1 arg', got: %s", err.Error())
		}
	})
}

func TestCommands_ArgsValidationIsUsageError(t *testing.T) {
	for _, cmd := range []*cobra.Command{exportCmd, loadCmd, scanCmd} {
		t.Run(cmd.Name(), func(t *testing.T) {
			err := cmd.Args(cmd, []string{})
			if err == nil {
				t.Fatal("Expected error for missing args")
			}
			if code := babynames.ExitCodeForError(err); code != babynames.ExitUsageError {
				t.Errorf("Expected exit code %d (usage), got %d for: %v", babynames.ExitUsageError, code, err)
			}

			err = cmd.Args(cmd, []string{"a", "b"})
			if code := babynames.ExitCodeForError(err); code != babynames.ExitUsageError {
				t.Errorf("Expected exit code %d (usage) for too many args, got %d", babynames.ExitUsageError, code)
			}
		})
	}
}
