package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/scmwinlinaung/galaxy-name-lab-admin/internal/namelab"
)

func main() {
	loginCmd := flag.NewFlagSet("login", flag.ExitOnError)
	loginEmail := loginCmd.String("email", "", "Admin email")
	loginPassword := loginCmd.String("password", "", "Admin password")

	createCmd := flag.NewFlagSet("create-admin", flag.ExitOnError)
	createToken := createCmd.String("token", "", "Auth token (from 'login')")
	createName := createCmd.String("name", "", "Name of the new admin")
	createEmail := createCmd.String("email", "", "Email of the new admin")
	createPassword := createCmd.String("password", "", "Password for the new admin")

	resetCmd := flag.NewFlagSet("reset-password", flag.ExitOnError)
	resetToken := resetCmd.String("token", "", "Auth token (from 'login')")
	resetID := resetCmd.String("id", "", "ID of the admin to reset")
	resetPassword := resetCmd.String("password", "", "New password")

	if len(os.Args) < 2 {
		usage()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch os.Args[1] {
	case "login":
		loginCmd.Parse(os.Args[2:])
		if *loginEmail == "" || *loginPassword == "" {
			fmt.Println("email and password are required")
			loginCmd.PrintDefaults()
			os.Exit(1)
		}
		api := newClient("")
		token, err := api.Login(ctx, *loginEmail, *loginPassword)
		if err != nil {
			log.Fatalf("Login failed: %v", err)
		}
		fmt.Println(token)
	case "create-admin":
		createCmd.Parse(os.Args[2:])
		if *createToken == "" || *createName == "" || *createEmail == "" || *createPassword == "" {
			fmt.Println("token, name, email and password are required")
			createCmd.PrintDefaults()
			os.Exit(1)
		}
		api := newClient(*createToken)
		_, err := api.CreateAdmin(ctx, namelab.CreateAdminRequest{
			Name:     *createName,
			Email:    *createEmail,
			Password: *createPassword,
		})
		if err != nil {
			log.Fatalf("Failed to create admin: %v", err)
		}
		fmt.Printf("Admin '%s' created successfully.\n", *createEmail)
	case "reset-password":
		resetCmd.Parse(os.Args[2:])
		if *resetToken == "" || *resetID == "" || *resetPassword == "" {
			fmt.Println("token, id and password are required")
			resetCmd.PrintDefaults()
			os.Exit(1)
		}
		api := newClient(*resetToken)
		if err := api.ResetAdminPassword(ctx, *resetID, *resetPassword); err != nil {
			log.Fatalf("Failed to reset password: %v", err)
		}
		fmt.Println("Password reset successfully.")
	default:
		usage()
	}
}

func newClient(token string) *namelab.Client {
	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = namelab.DefaultBaseURL
	}
	opts := []namelab.Option{}
	if token != "" {
		opts = append(opts, namelab.WithTokenSource(namelab.StaticToken(token)))
	}
	return namelab.NewClient(baseURL, opts...)
}

func usage() {
	fmt.Println("expected 'login', 'create-admin' or 'reset-password' subcommand")
	os.Exit(1)
}
