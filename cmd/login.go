package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"novelreader/auth"
)

type loginArgs struct {
	Username string
	Password string
}

var lArgs loginArgs

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and save the access token locally",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved access token",
	RunE:  runLogout,
}

func init() {
	loginCmd.Flags().StringVarP(&lArgs.Username, "username", "u", "", "username")
	loginCmd.Flags().StringVarP(&lArgs.Password, "password", "p", "", "password (prompted when omitted)")
	RootCmd.AddCommand(loginCmd)
	RootCmd.AddCommand(logoutCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	if lArgs.Username == "" {
		return fmt.Errorf("username is required")
	}
	if lArgs.Password == "" {
		fmt.Print("password: ")
		scanner := bufio.NewScanner(os.Stdin)
		if !scanner.Scan() {
			return fmt.Errorf("password is required")
		}
		lArgs.Password = strings.TrimSpace(scanner.Text())
	}

	token, err := client.Login(cmd.Context(), lArgs.Username, lArgs.Password)
	if err != nil {
		return fmt.Errorf("failed to log in: %v", err)
	}
	if err := st.SetToken(token); err != nil {
		return fmt.Errorf("failed to save token: %v", err)
	}

	user, err := auth.UserFromToken(token)
	if err != nil {
		return fmt.Errorf("failed to read token: %v", err)
	}
	fmt.Printf("logged in as %s\n", user.PenName)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	if err := st.ClearToken(); err != nil {
		return fmt.Errorf("failed to clear token: %v", err)
	}
	fmt.Println("logged out")
	return nil
}
