package scenarios

import (
	"context"
	"fmt"
)

// Scenario names
const (
	RegisterEmptyData    = "register-empty-data"
	RegisterInvalidEmail = "register-invalid-email"
	RegisterSuccess      = "register-success"
	LoginSaveCookies     = "login-save-cookies"
	LoginReuseCookies    = "login-reuse-cookies"
	AdminProductSearch   = "admin-product-search"
)

// CustomerCookiesKey is the storage key of the logged in customer session
const CustomerCookiesKey = "customer"

// AdminSearchProduct is the catalog product looked up in the admin console
const AdminSearchProduct = "Lenovo IdeaCentre 600 All-in-One PC"

// Catalog - returns every scenario in run order
func Catalog() []Scenario {
	return []Scenario{
		{
			Name:        RegisterEmptyData,
			Description: "Submitting the register form empty shows every required field message",
			Run:         registerEmptyData,
		},
		{
			Name:        RegisterInvalidEmail,
			Description: "An invalid email is rejected by the register form",
			Run:         registerInvalidEmail,
		},
		{
			Name:        RegisterSuccess,
			Description: "A new customer registers and logs out",
			Run:         registerSuccess,
		},
		{
			Name:        LoginSaveCookies,
			Description: "A registered customer logs in and the session cookies are stored",
			Run:         loginSaveCookies,
		},
		{
			Name:        LoginReuseCookies,
			Description: "Stored session cookies log a fresh browser in without the form",
			DependsOn:   LoginSaveCookies,
			Run:         loginReuseCookies,
		},
		{
			Name:        AdminProductSearch,
			Description: "The admin finds a product by name and opens its detail page",
			Run:         adminProductSearch,
		},
	}
}

func registerEmptyData(ctx context.Context, env *Env) error {
	env.Step("Open storefront")
	home, err := env.Pages.OpenStorefront()
	if err != nil {
		return err
	}

	env.Step("Open register page")
	register, err := home.ClickRegisterLink(ctx)
	if err != nil {
		return err
	}

	env.Step("Submit empty form")
	if err := register.ClickRegisterButton(ctx); err != nil {
		return err
	}

	checks := []struct {
		field string
		get   func(context.Context) (string, error)
		want  string
	}{
		{"first name", register.FirstNameErrorMessage, "First name is required."},
		{"last name", register.LastNameErrorMessage, "Last name is required."},
		{"email", register.EmailErrorMessage, "Email is required."},
		{"password", register.PasswordErrorMessage, "Password is required."},
		{"confirm password", register.ConfirmPasswordErrorMessage, "Password is required."},
	}
	env.Step("Verify required field messages")
	for _, c := range checks {
		got, err := c.get(ctx)
		if err != nil {
			return fmt.Errorf("failed to read %s message: %w", c.field, err)
		}
		if err := Expect(c.field+" message", got, c.want); err != nil {
			return err
		}
	}
	return nil
}

func registerInvalidEmail(ctx context.Context, env *Env) error {
	env.Step("Open storefront")
	home, err := env.Pages.OpenStorefront()
	if err != nil {
		return err
	}

	register, err := home.ClickRegisterLink(ctx)
	if err != nil {
		return err
	}

	env.Step("Enter invalid email")
	if err := register.InputEmail(ctx, "afc@afc@com"); err != nil {
		return err
	}
	if err := register.ClickRegisterButton(ctx); err != nil {
		return err
	}

	got, err := register.EmailErrorMessage(ctx)
	if err != nil {
		return err
	}
	return Expect("email message", got, "Wrong email")
}

func registerSuccess(ctx context.Context, env *Env) error {
	env.Step("Open storefront")
	home, err := env.Pages.OpenStorefront()
	if err != nil {
		return err
	}

	register, err := home.ClickRegisterLink(ctx)
	if err != nil {
		return err
	}

	data := RandomRegistration(env.Credentials().UserPassword)
	env.Step("Register %s", data.Email)
	if err := register.Fill(ctx, data); err != nil {
		return err
	}
	if err := register.ClickRegisterButton(ctx); err != nil {
		return err
	}

	got, err := register.SuccessMessage(ctx)
	if err != nil {
		return err
	}
	if err := Expect("registration result", got, "Your registration completed"); err != nil {
		return err
	}

	env.Step("Log out")
	home, err = register.ClickLogoutLink(ctx)
	if err != nil {
		return err
	}
	anonymous, err := home.IsLogoutLinkUndisplayed()
	if err != nil {
		return err
	}
	return Expect("logged out", anonymous, true)
}

func loginSaveCookies(ctx context.Context, env *Env) error {
	env.Step("Open storefront")
	home, err := env.Pages.OpenStorefront()
	if err != nil {
		return err
	}

	register, err := home.ClickRegisterLink(ctx)
	if err != nil {
		return err
	}
	data := RandomRegistration(env.Credentials().UserPassword)
	env.Step("Register %s", data.Email)
	if err := register.Fill(ctx, data); err != nil {
		return err
	}
	if err := register.ClickRegisterButton(ctx); err != nil {
		return err
	}
	if home, err = register.ClickLogoutLink(ctx); err != nil {
		return err
	}

	env.Step("Log in as %s", data.Email)
	login, err := home.ClickLoginLink(ctx)
	if err != nil {
		return err
	}
	if err := login.CheckRememberMe(ctx); err != nil {
		return err
	}
	if home, err = login.LoginAs(ctx, data.Email, data.Password); err != nil {
		return err
	}
	loggedIn, err := home.IsMyAccountLinkDisplayed()
	if err != nil {
		return err
	}
	if err := Expect("my account link displayed", loggedIn, true); err != nil {
		return err
	}

	env.Step("Store session cookies")
	cookies, err := env.Browser.Cookies()
	if err != nil {
		return err
	}
	if err := env.Storage.SaveCookies(CustomerCookiesKey, cookies); err != nil {
		return fmt.Errorf("failed to save cookies: %w", err)
	}
	return nil
}

func loginReuseCookies(ctx context.Context, env *Env) error {
	cookies, err := env.Storage.LoadCookies(CustomerCookiesKey)
	if err != nil {
		return fmt.Errorf("failed to load cookies: %w", err)
	}
	if len(cookies) == 0 {
		return Skipf("no stored cookies under %q", CustomerCookiesKey)
	}

	env.Step("Open storefront")
	home, err := env.Pages.OpenStorefront()
	if err != nil {
		return err
	}

	env.Step("Restore %d cookies", len(cookies))
	if err := env.Browser.SetCookies(ctx, cookies); err != nil {
		return err
	}

	loggedIn, err := home.IsMyAccountLinkDisplayed()
	if err != nil {
		return err
	}
	return Expect("my account link displayed", loggedIn, true)
}

func adminProductSearch(ctx context.Context, env *Env) error {
	creds := env.Credentials()

	env.Step("Open admin console")
	login, err := env.Pages.OpenAdmin()
	if err != nil {
		return err
	}

	env.Step("Log in as %s", creds.AdminEmail)
	dashboard, err := login.LoginAs(ctx, creds.AdminEmail, creds.AdminPassword)
	if err != nil {
		return err
	}

	env.Step("Search products for %q", AdminSearchProduct)
	products, err := dashboard.OpenProductsPage(ctx)
	if err != nil {
		return err
	}
	if err := products.SearchByName(ctx, AdminSearchProduct); err != nil {
		return err
	}
	listed, err := products.IsProductListed(ctx, AdminSearchProduct)
	if err != nil {
		return err
	}
	if err := Expect("product listed", listed, true); err != nil {
		return err
	}

	env.Step("Open product detail")
	detail, err := products.EditProduct(ctx, AdminSearchProduct)
	if err != nil {
		return err
	}
	name, err := detail.ProductName(ctx)
	if err != nil {
		return err
	}
	if err := Expect("product name", name, AdminSearchProduct); err != nil {
		return err
	}

	_, err = detail.BackToProductList(ctx)
	return err
}
