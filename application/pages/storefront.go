package pages

import (
	"context"

	"storefront_automation/application/element"
	"storefront_automation/application/pages/pageui"
	"storefront_automation/domain/entities"
)

// HomePage is the storefront landing page
type HomePage struct {
	userChrome
}

func (p *HomePage) Kind() Kind { return HomeKind }

func (p *HomePage) ClickLoginLink(ctx context.Context) (*LoginPage, error) {
	if err := p.tk.click(ctx, pageui.LoginLink); err != nil {
		return nil, err
	}
	return p.tk.Pages.Login(), nil
}

func (p *HomePage) ClickRegisterLink(ctx context.Context) (*RegisterPage, error) {
	if err := p.tk.click(ctx, pageui.RegisterLink); err != nil {
		return nil, err
	}
	return p.tk.Pages.Register(), nil
}

// OpenProduct - follows the featured product titled name
func (p *HomePage) OpenProduct(ctx context.Context, name string) (*ProductPage, error) {
	if err := p.tk.click(ctx, pageui.DynamicProductTitle, name); err != nil {
		return nil, err
	}
	return p.tk.Pages.Product(), nil
}

// LoginPage is the customer sign-in form
type LoginPage struct {
	userChrome
}

func (p *LoginPage) Kind() Kind { return LoginKind }

func (p *LoginPage) InputEmail(ctx context.Context, email string) error {
	return p.tk.typeText(ctx, pageui.LoginEmail, email)
}

func (p *LoginPage) InputPassword(ctx context.Context, password string) error {
	return p.tk.typeText(ctx, pageui.LoginPassword, password)
}

// CheckRememberMe - ticks "Remember me?" so the authentication cookie
// outlives the browser session
func (p *LoginPage) CheckRememberMe(ctx context.Context) error {
	loc := pageui.LoginRememberMe.MustResolve()
	if _, err := p.tk.Wait.ElementClickable(ctx, loc); err != nil {
		return err
	}
	return p.tk.Element.Check(loc)
}

// ClickLoginButton - submits the form and stays on the login page, for
// checking validation errors
func (p *LoginPage) ClickLoginButton(ctx context.Context) error {
	return p.tk.click(ctx, pageui.LoginButton)
}

// LoginAs - signs in and lands on the home page
func (p *LoginPage) LoginAs(ctx context.Context, email, password string) (*HomePage, error) {
	if err := p.InputEmail(ctx, email); err != nil {
		return nil, err
	}
	if err := p.InputPassword(ctx, password); err != nil {
		return nil, err
	}
	if err := p.ClickLoginButton(ctx); err != nil {
		return nil, err
	}
	return p.tk.Pages.Home(), nil
}

func (p *LoginPage) EmailErrorMessage(ctx context.Context) (string, error) {
	return p.tk.text(ctx, pageui.LoginEmailError)
}

func (p *LoginPage) SummaryErrorMessage(ctx context.Context) (string, error) {
	return p.tk.text(ctx, pageui.LoginSummaryError)
}

// Gender is the radio choice of the register and customer info forms
type Gender int

const (
	GenderUnset Gender = iota
	GenderMale
	GenderFemale
)

func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "male"
	case GenderFemale:
		return "female"
	default:
		return "unset"
	}
}

func (g Gender) locator() (entities.LocatorTemplate, bool) {
	switch g {
	case GenderMale:
		return pageui.GenderMale, true
	case GenderFemale:
		return pageui.GenderFemale, true
	default:
		return "", false
	}
}

// Registration is the data entered on the register form. Empty fields are
// left untouched.
type Registration struct {
	Gender          Gender
	FirstName       string
	LastName        string
	Day             string
	Month           string
	Year            string
	Email           string
	Company         string
	Password        string
	ConfirmPassword string
}

// RegisterPage is the customer registration form
type RegisterPage struct {
	userChrome
}

func (p *RegisterPage) Kind() Kind { return RegisterKind }

// SelectGender - clicks the radio button of g; GenderUnset is a no-op
func (p *RegisterPage) SelectGender(ctx context.Context, g Gender) error {
	t, ok := g.locator()
	if !ok {
		return nil
	}
	return p.tk.click(ctx, t)
}

func (p *RegisterPage) InputEmail(ctx context.Context, email string) error {
	return p.InputToTextboxByID(ctx, pageui.EmailID, email)
}

// Fill - enters every non-empty field of r
func (p *RegisterPage) Fill(ctx context.Context, r Registration) error {
	if err := p.SelectGender(ctx, r.Gender); err != nil {
		return err
	}
	fields := []struct{ id, value string }{
		{pageui.FirstNameID, r.FirstName},
		{pageui.LastNameID, r.LastName},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if err := p.InputToTextboxByID(ctx, f.id, f.value); err != nil {
			return err
		}
	}

	dropdowns := []struct{ name, value string }{
		{pageui.DayOfBirthName, r.Day},
		{pageui.MonthOfBirthName, r.Month},
		{pageui.YearOfBirthName, r.Year},
	}
	for _, d := range dropdowns {
		if d.value == "" {
			continue
		}
		if err := p.SelectDropdownByName(ctx, d.name, d.value); err != nil {
			return err
		}
	}

	fields = []struct{ id, value string }{
		{pageui.CompanyID, r.Company},
		{pageui.EmailID, r.Email},
		{pageui.PasswordID, r.Password},
		{pageui.ConfirmPasswordID, r.ConfirmPassword},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if err := p.InputToTextboxByID(ctx, f.id, f.value); err != nil {
			return err
		}
	}
	return nil
}

// ClickRegisterButton - submits the form; the result renders on the same page
func (p *RegisterPage) ClickRegisterButton(ctx context.Context) error {
	return p.tk.click(ctx, pageui.RegisterButton)
}

// FieldErrorMessage - returns the validation message under the field with the given id
func (p *RegisterPage) FieldErrorMessage(ctx context.Context, id string) (string, error) {
	return p.tk.text(ctx, pageui.DynamicFieldError, id)
}

func (p *RegisterPage) FirstNameErrorMessage(ctx context.Context) (string, error) {
	return p.FieldErrorMessage(ctx, pageui.FirstNameID)
}

func (p *RegisterPage) LastNameErrorMessage(ctx context.Context) (string, error) {
	return p.FieldErrorMessage(ctx, pageui.LastNameID)
}

func (p *RegisterPage) EmailErrorMessage(ctx context.Context) (string, error) {
	return p.FieldErrorMessage(ctx, pageui.EmailID)
}

func (p *RegisterPage) PasswordErrorMessage(ctx context.Context) (string, error) {
	return p.FieldErrorMessage(ctx, pageui.PasswordID)
}

func (p *RegisterPage) ConfirmPasswordErrorMessage(ctx context.Context) (string, error) {
	return p.FieldErrorMessage(ctx, pageui.ConfirmPasswordID)
}

func (p *RegisterPage) SuccessMessage(ctx context.Context) (string, error) {
	return p.tk.text(ctx, pageui.RegisterResult)
}

// ExistingEmailMessage - returns the summary error shown for a taken email
func (p *RegisterPage) ExistingEmailMessage(ctx context.Context) (string, error) {
	return p.tk.text(ctx, pageui.RegisterError)
}

func (p *RegisterPage) ClickContinueButton(ctx context.Context) (*HomePage, error) {
	if err := p.tk.click(ctx, pageui.ContinueButton); err != nil {
		return nil, err
	}
	return p.tk.Pages.Home(), nil
}

// SearchPage is the catalog search page
type SearchPage struct {
	userChrome
}

func (p *SearchPage) Kind() Kind { return SearchKind }

func (p *SearchPage) Search(ctx context.Context, keyword string) error {
	if err := p.tk.typeText(ctx, pageui.SearchKeyword, keyword); err != nil {
		return err
	}
	return p.tk.click(ctx, pageui.SearchButton)
}

// AdvancedSearch - searches keyword within a category, optionally
// including its subcategories
func (p *SearchPage) AdvancedSearch(ctx context.Context, keyword, category string, subcategories bool) error {
	if err := p.tk.typeText(ctx, pageui.SearchKeyword, keyword); err != nil {
		return err
	}
	if err := p.tk.Element.Check(pageui.SearchAdvanced.MustResolve()); err != nil {
		return err
	}
	if err := p.SelectDropdownByName(ctx, pageui.SearchCategoryName, category); err != nil {
		return err
	}
	sub := pageui.SearchSubCategories.MustResolve()
	toggle := p.tk.Element.Uncheck
	if subcategories {
		toggle = p.tk.Element.Check
	}
	if err := toggle(sub); err != nil {
		return err
	}
	return p.tk.click(ctx, pageui.SearchButton)
}

func (p *SearchPage) ResultTitles(ctx context.Context) ([]string, error) {
	return p.tk.texts(ctx, pageui.SearchResultTitles)
}

func (p *SearchPage) ResultCount() (int, error) {
	return p.tk.Element.Count(pageui.SearchResultTitles.MustResolve())
}

func (p *SearchPage) NoResultMessage(ctx context.Context) (string, error) {
	return p.tk.text(ctx, pageui.SearchNoResult)
}

func (p *SearchPage) WarningMessage(ctx context.Context) (string, error) {
	return p.tk.text(ctx, pageui.SearchWarning)
}

// SortBy - picks a sort option and waits for the product grid to reload
func (p *SearchPage) SortBy(ctx context.Context, option string) error {
	if err := p.tk.Element.SelectByVisibleText(ctx, pageui.SearchOrderBy.MustResolve(), option); err != nil {
		return err
	}
	return p.tk.Wait.ElementInvisible(ctx, pageui.SearchLoadingProducts.MustResolve())
}

func (p *SearchPage) AreNamesSorted(order element.Order) (bool, error) {
	return p.tk.Element.IsStringSorted(pageui.SearchResultTitles.MustResolve(), order)
}

func (p *SearchPage) ArePricesSorted(order element.Order) (bool, error) {
	return p.tk.Element.IsFloatSorted(pageui.SearchResultPrices.MustResolve(), order)
}

func (p *SearchPage) OpenProduct(ctx context.Context, name string) (*ProductPage, error) {
	if err := p.tk.click(ctx, pageui.DynamicProductTitle, name); err != nil {
		return nil, err
	}
	return p.tk.Pages.Product(), nil
}

// ProductPage is a product detail page
type ProductPage struct {
	userChrome
}

func (p *ProductPage) Kind() Kind { return ProductKind }

func (p *ProductPage) ProductName(ctx context.Context) (string, error) {
	return p.tk.text(ctx, pageui.ProductName)
}

func (p *ProductPage) ClickAddReview(ctx context.Context) (*ProductReviewPage, error) {
	if err := p.tk.click(ctx, pageui.AddReviewLink); err != nil {
		return nil, err
	}
	return p.tk.Pages.ProductReview(), nil
}

// Review is a product review submitted from the storefront
type Review struct {
	Title  string
	Text   string
	Rating string
}

// ProductReviewPage is the review form of a product
type ProductReviewPage struct {
	userChrome
}

func (p *ProductReviewPage) Kind() Kind { return ProductReviewKind }

func (p *ProductReviewPage) SubmitReview(ctx context.Context, r Review) error {
	if err := p.tk.typeText(ctx, pageui.ReviewTitle, r.Title); err != nil {
		return err
	}
	if err := p.tk.typeText(ctx, pageui.ReviewText, r.Text); err != nil {
		return err
	}
	if r.Rating != "" {
		if err := p.tk.Element.Check(pageui.DynamicReviewRating.MustResolve(r.Rating)); err != nil {
			return err
		}
	}
	return p.tk.click(ctx, pageui.ReviewSubmitButton)
}

func (p *ProductReviewPage) ResultMessage(ctx context.Context) (string, error) {
	return p.tk.text(ctx, pageui.ReviewResult)
}
