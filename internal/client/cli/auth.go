package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/shopcore/internal/client/models"
	"github.com/dmitrijs2005/shopcore/internal/common"
)

// SignUp interactively collects signup data and registers a new account.
// A successful signup also signs the user in.
func (a *App) SignUp(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	name, err := GetSimpleText(a.reader, "Enter name (optional)", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.auth.SignUp(ctx, models.SignupData{
		Email:    email,
		Password: string(password),
		Name:     name,
	})
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	a.user = user
	fmt.Printf("Account created. Welcome, %s!\n", displayName(user))
	return nil
}

// SignIn interactively collects credentials and authenticates.
func (a *App) SignIn(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.auth.SignIn(ctx, email, string(password))
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	a.user = user
	fmt.Printf("Welcome back, %s!\n", displayName(user))
	return nil
}

// Logout ends the session and resets the accumulated product list so the
// next session does not see this one's catalog.
func (a *App) Logout(ctx context.Context) error {
	a.auth.Logout(ctx)
	a.products.Reset()
	a.user = nil
	fmt.Println("Signed out.")
	return nil
}

// WhoAmI prints the current account.
func (a *App) WhoAmI(ctx context.Context) error {
	if a.user == nil {
		fmt.Println("Not signed in.")
		return nil
	}
	fmt.Printf("%s <%s>\n", displayName(a.user), a.user.Email)
	return nil
}
