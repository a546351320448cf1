// Package login implements the login command.
package login

import (
	"fmt"
	"os"

	"expense-view/cmd/root"
	"expense-view/internal/apierror"

	"github.com/spf13/cobra"
)

var password string

// Cmd represents the login command
var Cmd = &cobra.Command{
	Use:   "login",
	Short: "Check the backend password",
	Long: `Log in to the backend and report whether the password is accepted.

The password comes from --password, then from EXPENSE_PASSWORD or
server.password in the config file. Other commands log in automatically
when a password is configured.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{root.AnnotationSkipAuth: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		pw := resolvePassword(password, c.GetConfig().Server.Password)
		if pw == "" {
			return fmt.Errorf("no password given: use --password or set EXPENSE_PASSWORD")
		}
		if err := c.GetClient().Login(cmd.Context(), pw); err != nil {
			return fmt.Errorf("%s", apierror.UserMessage(err))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Logged in to %s\n", c.GetClient().BaseURL())
		return nil
	},
}

func resolvePassword(flag, configured string) string {
	if flag != "" {
		return flag
	}
	if configured != "" {
		return configured
	}
	return os.Getenv("EXPENSE_PASSWORD")
}

func init() {
	Cmd.Flags().StringVar(&password, "password", "", "Backend password")
}
