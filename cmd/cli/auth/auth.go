package auth

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/Kingsheunn/Diary/cmd/cli/client"
	"github.com/Kingsheunn/Diary/cmd/cli/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// InitAuth registers the auth commands (signup, login, logout, whoami) on the root command.
func InitAuth(rootCmd *cobra.Command) {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Sign up, log in and out",
		Long:  "Create an account or log in. The token is stored locally for future commands.",
	}
	authCmd.AddCommand(signupCmd(), loginCmd(), logoutCmd(), whoamiCmd())
	rootCmd.AddCommand(authCmd)
}

type authResponse struct {
	Token string `json:"token"`
	User  struct {
		ID    int    `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
}

// ==========================
// Signup
// ==========================
func signupCmd() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and log in",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if name, err = promptIfEmpty(name, "Name: "); err != nil {
				return err
			}
			if email, err = promptIfEmpty(email, "Email: "); err != nil {
				return err
			}
			if password, err = passwordIfEmpty(password); err != nil {
				return err
			}

			var resp authResponse
			payload := map[string]string{"name": name, "email": email, "password": password}
			if err := client.Call("POST", "/auth/signup", payload, &resp, false); err != nil {
				return fmt.Errorf("signup failed: %w", err)
			}
			return saveSession(resp, "Account created")
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")
	return cmd
}

// ==========================
// Login
// ==========================
func loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the Diary API",
		Long:  "Authenticate with the Diary API and store the token for subsequent CLI commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if email, err = promptIfEmpty(email, "Email: "); err != nil {
				return err
			}
			if password, err = passwordIfEmpty(password); err != nil {
				return err
			}

			var resp authResponse
			payload := map[string]string{"email": email, "password": password}
			if err := client.Call("POST", "/auth/login", payload, &resp, false); err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			return saveSession(resp, "Login successful")
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")
	return cmd
}

// ==========================
// Logout
// ==========================
func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the locally saved token",
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := config.DeleteToken()
			if err != nil {
				return err
			}
			if !removed {
				fmt.Println("No user logged in.")
				return nil
			}
			fmt.Println("Logged out successfully.")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			var user authResponse
			if err := client.Call("GET", "/profile", nil, &user.User, true); err != nil {
				return err
			}
			fmt.Printf("%s <%s> (id %d)\n", user.User.Name, user.User.Email, user.User.ID)
			return nil
		},
	}
}

func saveSession(resp authResponse, msg string) error {
	if resp.Token == "" {
		return fmt.Errorf("no token returned by API")
	}
	if err := config.SaveToken(resp.Token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	fmt.Printf("%s. Logged in as %s.\n", msg, resp.User.Email)
	return nil
}

func promptIfEmpty(value, label string) (string, error) {
	if value != "" {
		return value, nil
	}
	fmt.Print(label)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read %s: %w", strings.TrimSuffix(label, ": "), err)
	}
	return strings.TrimSpace(line), nil
}

// passwordIfEmpty prompts without echo when stdin is a terminal.
func passwordIfEmpty(value string) (string, error) {
	if value != "" {
		return value, nil
	}
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return promptIfEmpty("", "Password: ")
	}
	fmt.Print("Password: ")
	b, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}
