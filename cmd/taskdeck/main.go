// Package main is the entry point for the taskdeck CLI.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/taskdeck/taskdeck/internal/api"
	"github.com/taskdeck/taskdeck/internal/cache"
	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/session"
)

const version = "0.1.0"

const helpText = `taskdeck - task management from the terminal

USAGE:
    taskdeck <command> [options]

COMMANDS:
    login            Sign in with email and password
    register         Create an account
    google-login     Sign in with a Google account
    logout           Discard the local session
    whoami           Show the signed-in user
    profile          Update name/email
    passwd           Change password

    list             List tasks (filterable)
    show             Show one task with attachments
    add              Create a task
    edit             Update a task
    rm               Delete a task
    rm-attachment    Remove an attachment from a task

    categories       List categories
    category         Manage categories (add/edit/rm)

    calendar         Mirror a task into the calendar (add/rm)
    notify-due       Desktop-notify tasks due within 24h

OPTIONS:
    -h, --help      Show this help message
    -v, --version   Show version information
    --init          Create a template config file

CONFIGURATION:
    Config file: ~/.config/taskdeck/config.yaml
    Session token is stored in the system keyring.

Run 'taskdeck <command> -h' for command options.
`

const configTemplate = `# taskdeck configuration
# Location: ~/.config/taskdeck/config.yaml

server:
  # taskdeck API root
  base_url: "http://localhost:5000/api"

# Optional: Google OAuth client for 'taskdeck google-login'
# google:
#   client_id: ""
#   client_secret: ""

ui:
  color: true
  notifications: true
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app bundles the wired core components behind every command.
type app struct {
	cfg     *config.Config
	client  *api.Client
	session *session.Store
	cache   *cache.Cache
	log     *logrus.Logger
}

func run(args []string) error {
	if len(args) == 0 {
		fmt.Print(helpText)
		return nil
	}

	switch args[0] {
	case "-h", "--help", "help":
		fmt.Print(helpText)
		return nil
	case "-v", "--version", "version":
		fmt.Printf("taskdeck version %s\n", version)
		return nil
	case "--init", "init":
		return createConfigTemplate()
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.cache.Close()

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		return a.cmdLogin(rest)
	case "register":
		return a.cmdRegister(rest)
	case "google-login":
		return a.cmdGoogleLogin(rest)
	case "logout":
		a.session.Logout()
		fmt.Println("Logged out.")
		return nil
	case "whoami":
		return a.cmdWhoami(rest)
	case "profile":
		return a.cmdProfile(rest)
	case "passwd":
		return a.cmdPasswd(rest)
	case "list":
		return a.cmdList(rest)
	case "show":
		return a.cmdShow(rest)
	case "add":
		return a.cmdAdd(rest)
	case "edit":
		return a.cmdEdit(rest)
	case "rm":
		return a.cmdRemove(rest)
	case "rm-attachment":
		return a.cmdRemoveAttachment(rest)
	case "categories":
		return a.cmdCategories(rest)
	case "category":
		return a.cmdCategory(rest)
	case "calendar":
		return a.cmdCalendar(rest)
	case "notify-due":
		return a.cmdNotifyDue(rest)
	default:
		return fmt.Errorf("unknown command %q (run 'taskdeck help')", cmd)
	}
}

// newApp wires the core: gateway, session store, entity cache, and the
// auth-change subscription that (re)populates the cache.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	if os.Getenv("TASKDECK_DEBUG") != "" {
		log.SetLevel(logrus.DebugLevel)
	}

	client := api.NewClient(cfg.Server.BaseURL)
	sess := session.New(client, config.Tokens{}, log)
	store := cache.New(client, log)
	sess.OnAuthChange(store.HandleAuthChange)

	return &app{
		cfg:     cfg,
		client:  client,
		session: sess,
		cache:   store,
		log:     log,
	}, nil
}

// requireAuth restores a persisted session, failing when none survives
// verification.
func (a *app) requireAuth() error {
	if a.session.Verify() {
		return nil
	}
	return fmt.Errorf("not logged in (run 'taskdeck login')")
}

// createConfigTemplate creates a template configuration file.
func createConfigTemplate() error {
	path, err := config.ConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Config file already exists: %s\n", path)
		fmt.Print("Overwrite? [y/N]: ")

		var response string
		fmt.Scanln(&response)

		if response != "y" && response != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if _, err := config.ConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(configTemplate), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Config file created: %s\n\n", path)
	fmt.Println("Next steps:")
	fmt.Println("  1. Point base_url at your taskdeck server")
	fmt.Println("  2. Run 'taskdeck register' or 'taskdeck login'")

	return nil
}
