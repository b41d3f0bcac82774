package cmd

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/zalukaj-cli/zalukaj/auth"
	"github.com/zalukaj-cli/zalukaj/color"
	"github.com/zalukaj-cli/zalukaj/config"
	"github.com/zalukaj-cli/zalukaj/icon"
	"github.com/zalukaj-cli/zalukaj/key"
	"github.com/zalukaj-cli/zalukaj/style"
	"github.com/zalukaj-cli/zalukaj/zalukaj"
)

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringP("username", "u", "", "Account name")
	loginCmd.Flags().Bool("password-stdin", false, "Read the password from standard input instead of prompting")
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and remember the account",
	Long: `Sign in to the site. The username is saved to the config file and the
password to the system keyring, so later runs can renew the session on their own.`,
	Run: func(cmd *cobra.Command, args []string) {
		username := lo.Must(cmd.Flags().GetString("username"))
		if username == "" {
			username = viper.GetString(key.ZalukajUsername)
		}
		if username == "" {
			handleErr(survey.AskOne(&survey.Input{Message: "Nazwa użytkownika"}, &username, survey.WithValidator(survey.Required)))
		}

		var password string
		if lo.Must(cmd.Flags().GetBool("password-stdin")) {
			_, err := fmt.Fscanln(cmd.InOrStdin(), &password)
			handleErr(err)
		} else {
			handleErr(survey.AskOne(&survey.Password{Message: "Hasło"}, &password, survey.WithValidator(survey.Required)))
		}

		user, err := newClient().Login(cmd.Context(), username, password)
		handleErr(err)
		if !user.IsLogged() {
			handleErr(errors.New("the site did not start a session"))
		}

		handleErr(auth.SetPassword(username, password))
		viper.Set(key.ZalukajUsername, username)
		handleErr(config.Save())

		fmt.Printf("%s Witaj %s %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), style.Bold(user.Name), style.Premium(user.AccountType, user.IsPremium()))
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
	logoutCmd.Flags().BoolP("forget", "f", false, "Also remove the stored password")
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the saved session",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(newClient().Logout())

		if lo.Must(cmd.Flags().GetBool("forget")) {
			if username := viper.GetString(key.ZalukajUsername); username != "" {
				handleErr(auth.DeletePassword(username))
			}
		}

		fmt.Printf("%s Wylogowano\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
	whoamiCmd.Flags().BoolP("json", "j", false, "Print the account as JSON")
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the account of the saved session",
	Run: func(cmd *cobra.Command, args []string) {
		user, err := newClient().FetchUserData(cmd.Context())
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			printJSON(cmd, user)
			return
		}

		if !user.IsLogged() {
			fmt.Printf("%s %s\n", icon.Get(icon.Account), style.Faint("niezalogowany"))
			return
		}
		fmt.Println(describeUser(user))
	},
}

func describeUser(user *zalukaj.User) string {
	return fmt.Sprintf("%s %s %s", icon.Get(icon.Account), style.Bold(user.Name), style.Premium(user.AccountType, user.IsPremium()))
}
