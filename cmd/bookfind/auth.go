package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")
		if username == "" || password == "" {
			return errors.New("both --username and --password are required")
		}
		c, err := newCore()
		if err != nil {
			return err
		}
		sess, err := c.client.Login(cmd.Context(), username, password)
		if err != nil {
			return errors.New(explainError(err))
		}
		fmt.Printf("Signed in as %s\n", sess.IdentityLabel)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and store the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		if username == "" || email == "" || password == "" {
			return errors.New("--username, --email, and --password are required")
		}
		c, err := newCore()
		if err != nil {
			return err
		}
		sess, err := c.client.Register(cmd.Context(), username, email, password)
		if err != nil {
			return errors.New(explainError(err))
		}
		fmt.Printf("Account created, signed in as %s\n", sess.IdentityLabel)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newCore()
		if err != nil {
			return err
		}
		if err := c.client.Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Signed out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user, if any",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newCore()
		if err != nil {
			return err
		}
		if !c.sessions.IsUsable() {
			fmt.Println("Not signed in")
			return nil
		}
		sess, err := c.sessions.Load()
		if err != nil {
			return err
		}
		fmt.Printf("Signed in as %s\n", sess.IdentityLabel)
		return nil
	},
}

func init() {
	loginCmd.Flags().String("username", "", "account username")
	loginCmd.Flags().String("password", "", "account password")
	registerCmd.Flags().String("username", "", "account username")
	registerCmd.Flags().String("email", "", "account email")
	registerCmd.Flags().String("password", "", "account password")

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
}
