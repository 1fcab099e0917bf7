package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/taskdeck/taskdeck/internal/api"
	"github.com/taskdeck/taskdeck/internal/auth"
)

func (a *app) cmdLogin(args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "Account email")
	password := fs.String("password", "", "Account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return fmt.Errorf("usage: taskdeck login -email <email> -password <password>")
	}

	user, err := a.session.Login(api.Credentials{Email: *email, Password: *password})
	if err != nil {
		return fmt.Errorf("%s", a.session.Err())
	}

	fmt.Printf("Logged in as %s <%s>\n", user.Name, user.Email)
	return nil
}

func (a *app) cmdRegister(args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	name := fs.String("name", "", "Display name")
	email := fs.String("email", "", "Account email")
	password := fs.String("password", "", "Account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" || *email == "" || *password == "" {
		return fmt.Errorf("usage: taskdeck register -name <name> -email <email> -password <password>")
	}

	user, err := a.session.Register(api.RegisterRequest{
		Name:     *name,
		Email:    *email,
		Password: *password,
	})
	if err != nil {
		return fmt.Errorf("%s", a.session.Err())
	}

	fmt.Printf("Account created. Logged in as %s <%s>\n", user.Name, user.Email)
	return nil
}

func (a *app) cmdGoogleLogin(args []string) error {
	fs := flag.NewFlagSet("google-login", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	idToken, err := auth.GetIDToken(context.Background(), a.cfg.Google.ClientID, a.cfg.Google.ClientSecret)
	if err != nil {
		return err
	}

	user, err := a.session.LoginWithGoogle(idToken)
	if err != nil {
		return fmt.Errorf("%s", a.session.Err())
	}

	fmt.Printf("Logged in as %s <%s>\n", user.Name, user.Email)
	return nil
}

func (a *app) cmdWhoami(args []string) error {
	if err := a.requireAuth(); err != nil {
		return err
	}

	user := a.session.User()
	fmt.Printf("%s <%s>", user.Name, user.Email)
	if user.GoogleID != "" {
		fmt.Print(" (Google account)")
	}
	fmt.Println()
	return nil
}

func (a *app) cmdProfile(args []string) error {
	fs := flag.NewFlagSet("profile", flag.ContinueOnError)
	name := fs.String("name", "", "New display name")
	email := fs.String("email", "", "New email")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" && *email == "" {
		return fmt.Errorf("usage: taskdeck profile [-name <name>] [-email <email>]")
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	user, err := a.session.UpdateProfile(api.ProfileRequest{Name: *name, Email: *email})
	if err != nil {
		return fmt.Errorf("%s", a.session.Err())
	}

	fmt.Printf("Profile updated: %s <%s>\n", user.Name, user.Email)
	return nil
}

func (a *app) cmdPasswd(args []string) error {
	fs := flag.NewFlagSet("passwd", flag.ContinueOnError)
	current := fs.String("current", "", "Current password")
	next := fs.String("new", "", "New password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *current == "" || *next == "" {
		return fmt.Errorf("usage: taskdeck passwd -current <password> -new <password>")
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	if err := a.session.ChangePassword(api.PasswordRequest{
		CurrentPassword: *current,
		NewPassword:     *next,
	}); err != nil {
		return fmt.Errorf("%s", a.session.Err())
	}

	fmt.Println("Password changed.")
	return nil
}
