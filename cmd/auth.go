package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/khrees2412/hireboard/internal/session"
	"github.com/khrees2412/hireboard/pkg/models"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the job board",
	Example: `  hireboard login --email ann@example.com
  hireboard login --email ann@example.com --password secret`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := appFrom(cmd)
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		reader := bufio.NewReader(os.Stdin)
		if email == "" {
			email = prompt(reader, "Email: ")
		}
		if password == "" {
			password = prompt(reader, "Password: ")
		}

		if _, err := a.Session.Login(cmd.Context(), email, password); err != nil {
			return err
		}

		s := a.Session.Session()
		if s.User == nil {
			fmt.Println("✓ Logged in (profile could not be loaded yet, try 'hireboard whoami')")
			return nil
		}
		fmt.Printf("✓ Logged in as %s (%s)\n", s.User.Username, s.User.Role())
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and log in",
	Example: `  hireboard register --email ann@example.com --username ann
  hireboard register --email boss@example.com --username boss --employer yes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := appFrom(cmd)
		reader := bufio.NewReader(os.Stdin)

		r := models.Registration{}
		r.Email, _ = cmd.Flags().GetString("email")
		r.Username, _ = cmd.Flags().GetString("username")
		r.Password, _ = cmd.Flags().GetString("password")
		employer, _ := cmd.Flags().GetString("employer")

		if r.Email == "" {
			r.Email = prompt(reader, "Email: ")
		}
		if r.Username == "" {
			r.Username = prompt(reader, "Username: ")
		}
		if r.Password == "" {
			r.Password = prompt(reader, "Password: ")
			r.ConfirmPassword = prompt(reader, "Confirm password: ")
		}
		if !cmd.Flags().Changed("employer") {
			employer = prompt(reader, "Are you an employer? (y/N): ")
		}

		isEmployer, err := session.ParseEmployerFlag(employer)
		if err != nil {
			return err
		}
		r.IsSupervisor = isEmployer

		if _, err := a.Session.Register(cmd.Context(), r); err != nil {
			return err
		}

		role := models.RoleCandidate
		if isEmployer {
			role = models.RoleEmployer
		}
		fmt.Printf("✓ Account created for %s as %s\n", r.Username, role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved session",
	RunE: func(cmd *cobra.Command, args []string) error {
		appFrom(cmd).Logout(cmd.Context())
		fmt.Println("✓ Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := appFrom(cmd)
		s, err := a.RequireSession(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println(titleStyle.Render("Account"))
		fmt.Printf("%s %s\n", labelStyle.Render("Username:"), valueStyle.Render(s.User.Username))
		fmt.Printf("%s %s\n", labelStyle.Render("Email:"), valueStyle.Render(s.User.Email))
		fmt.Printf("%s %s\n", labelStyle.Render("Role:"), valueStyle.Render(string(s.User.Role())))
		fmt.Printf("%s %s\n", labelStyle.Render("API:"), mutedStyle.Render(a.API.BaseURL()))
		return nil
	},
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(labelStyle.Render(label))
	line, _ := reader.ReadString('\n')
	return strings.TrimRight(line, "\r\n")
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)

	loginCmd.Flags().String("email", "", "Account email")
	loginCmd.Flags().String("password", "", "Account password (prompted when omitted)")

	registerCmd.Flags().String("email", "", "Account email")
	registerCmd.Flags().String("username", "", "Public username")
	registerCmd.Flags().String("password", "", "Account password (prompted when omitted)")
	registerCmd.Flags().String("employer", "no", "Register as an employer (yes/no)")
}
