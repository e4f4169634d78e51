package commands

import (
	"github.com/spf13/cobra"

	"github.com/educreatorschool-design/hanvitlms/internal/auth"
	"github.com/educreatorschool-design/hanvitlms/internal/printer"
)

var (
	loginPassword string
	loginSecret   string
)

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Sign in and store the session locally",
	Long: `Login signs in as a student with --password, or as the administrator
with --secret checked against HANVIT_ADMIN_SECRET. The session is part
of the persisted local state but is never synchronized to other devices.`,
	Args: cobra.ExactArgs(1),
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	RunE:  runLogout,
}

func init() {
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Student account password")
	loginCmd.Flags().StringVar(&loginSecret, "secret", "", "Administrator shared secret")
	loginCmd.MarkFlagsMutuallyExclusive("password", "secret")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	cfg, st, files, err := openStore()
	if err != nil {
		return err
	}
	files.Attach(st)

	users := st.Users()

	if loginSecret != "" {
		admin, err := auth.AdminLogin(users, loginSecret, cfg.AdminSecret)
		if err != nil {
			return err
		}
		st.Login(*admin)
		printer.Success("Signed in as administrator %s\n", admin.Email)
		return nil
	}

	user, err := auth.StudentLogin(users, args[0], loginPassword)
	if err != nil {
		return err
	}
	st.Login(*user)
	printer.Success("Signed in as %s (%s)\n", user.Name, user.Email)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	_, st, files, err := openStore()
	if err != nil {
		return err
	}
	files.Attach(st)

	st.Logout()
	printer.Success("Signed out\n")
	return nil
}
