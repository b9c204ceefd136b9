package cmd

import (
	"fmt"
	"os"

	"github.com/chris-regnier/jrnlctl/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var passwdYes bool

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Change the journal password",
	Long:  "Re-encrypt the journal under a new password. An empty password leaves it unprotected.",
	Example: `  jrnlctl passwd -f journal.jrnl
  jrnlctl passwd -y`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(s *session) error {
			password, err := promptNewPassword(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if !passwdYes && term.IsTerminal(int(os.Stdin.Fd())) {
				ok, err := ui.Confirm(fmt.Sprintf("Re-encrypt %s?", s.path), true, ui.ResolveTheme(appConfig.Theme))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.ErrOrStderr(), "Password unchanged.")
					return nil
				}
			}
			if err := passwdRun(s, password); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Password changed.")
			return nil
		})
	},
}

// passwdRun saves the session's journal under password.
func passwdRun(s *session, password string) error {
	old := s.password
	s.password = password
	if err := s.save(); err != nil {
		s.password = old
		return fmt.Errorf("saving %s: %w", s.path, err)
	}
	return nil
}

func init() {
	passwdCmd.Flags().BoolVarP(&passwdYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(passwdCmd)
}
