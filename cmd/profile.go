package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/masteryloop/internal/profile"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the local learner profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		l, err := profile.NewSessionStore(s.ProfileRepo()).Load(cmd.Context())
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if l == nil {
			fmt.Fprintln(w, "Not signed in. Use 'masteryloop profile login'.")
			return nil
		}
		fmt.Fprintf(w, "Name:     %s\n", l.Name)
		fmt.Fprintf(w, "Account:  %s\n", l.Label())
		fmt.Fprintf(w, "Track:    %s\n", l.Track)
		if l.Subject != "" {
			fmt.Fprintf(w, "Studying: %s\n", l.Subject)
		}
		return nil
	},
}

var profileLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in as the local learner",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		profiles := profile.NewSessionStore(s.ProfileRepo())
		l := profile.Learner{Name: name, Email: email}
		// Keep the last subject so the TUI reopens where the learner left off.
		if last, err := profiles.Last(cmd.Context()); err == nil && last != nil {
			l.Subject = last.Subject
		}
		signed, err := profiles.SignIn(cmd.Context(), l)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s.\n", signed.Name)
		return nil
	},
}

var profileLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out; --forget also deletes the stored profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		forget, _ := cmd.Flags().GetBool("forget")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		profiles := profile.NewSessionStore(s.ProfileRepo())
		if forget {
			err = profiles.Forget(cmd.Context())
		} else {
			err = profiles.SignOut(cmd.Context())
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
		return nil
	},
}

func init() {
	profileLoginCmd.Flags().String("name", "", "Display name (default \""+profile.DefaultName+"\")")
	profileLoginCmd.Flags().String("email", "", "Email address (optional)")
	profileLogoutCmd.Flags().Bool("forget", false, "Delete the stored profile")

	profileCmd.AddCommand(profileLoginCmd, profileLogoutCmd)
}
