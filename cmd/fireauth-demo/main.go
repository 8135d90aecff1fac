// Command fireauth-demo signs in against a real project (or the local
// emulator) and walks the basic account operations. It exists to exercise
// the SDK end to end; set FIREBASE_API_KEY in the environment or a .env
// file.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/firescope/fireauth"
)

func main() {
	// A missing .env file is fine, the variables may come from the shell.
	_ = godotenv.Load()

	var (
		email    = flag.String("email", "", "account email")
		password = flag.String("password", "", "account password")
		signUp   = flag.Bool("signup", false, "create the account instead of signing in")
		logLevel = flag.String("log-level", "info", "log level: debug, info or error")
	)
	flag.Parse()

	if err := run(*email, *password, *signUp, *logLevel); err != nil {
		fmt.Fprintln(os.Stderr, "fireauth-demo:", err)
		os.Exit(1)
	}
}

func run(email, password string, signUp bool, logLevel string) error {
	apiKey := os.Getenv("FIREBASE_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("FIREBASE_API_KEY is not set")
	}
	if email == "" || password == "" {
		return fmt.Errorf("-email and -password are required")
	}

	config := fireauth.CreateConfig()
	config.APIKey = apiKey
	config.LogLevel = logLevel
	if emulator := os.Getenv("FIREBASE_AUTH_EMULATOR_HOST"); emulator != "" {
		config.IdentityToolkitURL = "http://" + emulator + "/identitytoolkit.googleapis.com/v1"
		config.SecureTokenURL = "http://" + emulator + "/securetoken.googleapis.com/v1"
	}

	client, err := fireauth.New(config)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var session *fireauth.Session
	if signUp {
		session, err = client.SignUpWithEmailPassword(ctx, email, password)
	} else {
		session, err = client.SignInWithEmailPassword(ctx, email, password)
	}
	if err != nil {
		return err
	}
	fmt.Printf("signed in as %s (token expires %s)\n", session.LocalID(), session.ExpiresAt().Format(time.RFC3339))

	user, session, err := session.GetUserData(ctx)
	if err != nil {
		if fireauth.SessionRevoked(err) {
			return fmt.Errorf("session revoked, sign in again: %w", err)
		}
		return err
	}
	fmt.Printf("email=%s verified=%v providers=%d created=%s\n",
		user.Email, user.EmailVerified, len(user.ProviderUserInfo), user.CreatedAt)

	session, err = session.UpdateProfile(ctx, fireauth.UpdateProfileParams{DisplayName: "fireauth demo"})
	if err != nil {
		return err
	}
	fmt.Println("display name updated")

	providers, err := client.FetchProvidersForEmail(ctx, user.Email, "http://localhost")
	if err != nil {
		return err
	}
	fmt.Printf("providers for %s: %v\n", user.Email, providers)

	return nil
}
