// Command agendactl is a small client for the AgendaPro auth API: it logs
// in, shows the current session, and logs out, persisting session state the
// same way the web client does.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/tiagomuniz-ia/agendapro-final/internal/client"
)

const defaultAPIURL = "http://localhost:3001"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "agendactl:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		usage()
		return fmt.Errorf("missing command")
	}

	apiURL := os.Getenv("AGENDAPRO_API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	storage, err := openStorage()
	if err != nil {
		return err
	}
	c := client.New(apiURL, storage)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch args[0] {
	case "login":
		return runLogin(ctx, c, args[1:])
	case "whoami":
		return runWhoami(ctx, c)
	case "logout":
		return runLogout(c)
	default:
		usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: agendactl <command>

commands:
  login [-email <email>]   authenticate and persist the session
  whoami                   verify the stored session and print the profile
  logout                   clear the persisted session`)
}

func openStorage() (*client.FileStorage, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home dir: %w", err)
	}
	return client.NewFileStorage(filepath.Join(home, ".agendapro", "session.json"))
}

func runLogin(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" {
		fmt.Print("Email: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("read email: %w", err)
		}
		*email = strings.TrimSpace(line)
	}

	fmt.Print("Senha: ")
	senhaBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	result, err := c.Login(ctx, client.LoginForm{
		Email: *email,
		Senha: string(senhaBytes),
	})
	if err != nil {
		return err
	}

	if result.FieldErrors != nil {
		for field, msg := range result.FieldErrors {
			fmt.Fprintf(os.Stderr, "%s: %s\n", field, msg)
		}
		return fmt.Errorf("invalid form")
	}

	if !result.Success {
		return fmt.Errorf("%s", result.Message)
	}

	fmt.Printf("Bem-vindo, %s (%s)\n", result.User.Nome, result.User.Cargo)
	return nil
}

func runWhoami(ctx context.Context, c *client.Client) error {
	ok, err := c.CheckAccess(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("not logged in")
	}

	profile, _ := c.StoredProfile()
	if profile == nil {
		return fmt.Errorf("not logged in")
	}

	fmt.Printf("id:    %d\nnome:  %s\nemail: %s\ncargo: %s\n",
		profile.ID, profile.Nome, profile.Email, profile.Cargo)
	return nil
}

func runLogout(c *client.Client) error {
	if err := c.Logout(); err != nil {
		return err
	}
	fmt.Println("logged out")
	return nil
}
