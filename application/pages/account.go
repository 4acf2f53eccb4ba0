package pages

import (
	"context"

	"storefront_automation/application/pages/pageui"
)

// CustomerInfo is the editable profile of a signed-in customer. Empty
// fields are left untouched.
type CustomerInfo struct {
	FirstName string
	LastName  string
	Email     string
	Company   string
}

// CustomerInfoPage is the "Customer info" account page
type CustomerInfoPage struct {
	accountMenu
}

func (p *CustomerInfoPage) Kind() Kind { return CustomerInfoKind }

func (p *CustomerInfoPage) Update(ctx context.Context, info CustomerInfo) error {
	fields := []struct{ id, value string }{
		{pageui.FirstNameID, info.FirstName},
		{pageui.LastNameID, info.LastName},
		{pageui.EmailID, info.Email},
		{pageui.CompanyID, info.Company},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if err := p.InputToTextboxByID(ctx, f.id, f.value); err != nil {
			return err
		}
	}
	return p.tk.click(ctx, pageui.CustomerSaveButton)
}

// Info - reads the profile currently shown in the form
func (p *CustomerInfoPage) Info(ctx context.Context) (CustomerInfo, error) {
	var info CustomerInfo
	targets := []struct {
		id  string
		dst *string
	}{
		{pageui.FirstNameID, &info.FirstName},
		{pageui.LastNameID, &info.LastName},
		{pageui.EmailID, &info.Email},
		{pageui.CompanyID, &info.Company},
	}
	for _, t := range targets {
		v, err := p.TextboxValueByID(ctx, t.id)
		if err != nil {
			return CustomerInfo{}, err
		}
		*t.dst = v
	}
	return info, nil
}

// SelectedGender - returns the checked gender radio button
func (p *CustomerInfoPage) SelectedGender() (Gender, error) {
	for _, g := range []Gender{GenderMale, GenderFemale} {
		t, _ := g.locator()
		ok, err := p.tk.Element.IsSelected(t.MustResolve())
		if err != nil {
			return GenderUnset, err
		}
		if ok {
			return g, nil
		}
	}
	return GenderUnset, nil
}

// SuccessMessage - returns the notification shown after saving
func (p *CustomerInfoPage) SuccessMessage(ctx context.Context) (string, error) {
	return p.tk.text(ctx, pageui.SuccessBar)
}

// Address is a postal address entered on the address form
type Address struct {
	FirstName   string
	LastName    string
	Email       string
	Company     string
	Country     string
	State       string
	City        string
	Address1    string
	Address2    string
	PostalCode  string
	PhoneNumber string
}

// AddressPage is the "Addresses" account page
type AddressPage struct {
	accountMenu
}

func (p *AddressPage) Kind() Kind { return AddressKind }

// AddNew - opens the address form, fills it and saves
func (p *AddressPage) AddNew(ctx context.Context, a Address) error {
	if err := p.tk.click(ctx, pageui.AddressAddButton); err != nil {
		return err
	}
	before := []struct{ id, value string }{
		{"Address_FirstName", a.FirstName},
		{"Address_LastName", a.LastName},
		{"Address_Email", a.Email},
		{"Address_Company", a.Company},
	}
	for _, f := range before {
		if f.value == "" {
			continue
		}
		if err := p.InputToTextboxByID(ctx, f.id, f.value); err != nil {
			return err
		}
	}
	if a.Country != "" {
		if err := p.SelectDropdownByName(ctx, pageui.AddressCountry, a.Country); err != nil {
			return err
		}
	}
	if a.State != "" {
		if err := p.SelectDropdownByName(ctx, pageui.AddressState, a.State); err != nil {
			return err
		}
	}
	after := []struct{ id, value string }{
		{"Address_City", a.City},
		{"Address_Address1", a.Address1},
		{"Address_Address2", a.Address2},
		{"Address_ZipPostalCode", a.PostalCode},
		{"Address_PhoneNumber", a.PhoneNumber},
	}
	for _, f := range after {
		if f.value == "" {
			continue
		}
		if err := p.InputToTextboxByID(ctx, f.id, f.value); err != nil {
			return err
		}
	}
	return p.tk.click(ctx, pageui.AddressSaveButton)
}

// AddressField - returns a line of the first listed address by its class,
// e.g. "name", "email" or "country"
func (p *AddressPage) AddressField(ctx context.Context, class string) (string, error) {
	return p.tk.text(ctx, pageui.DynamicAddressField, class)
}

// OrderPage lists past orders
type OrderPage struct {
	accountMenu
}

func (p *OrderPage) Kind() Kind { return OrderKind }

func (p *OrderPage) OrderCount() (int, error) {
	return p.tk.Element.Count(pageui.OrderItems.MustResolve())
}

type DownloadableProductPage struct {
	accountMenu
}

func (p *DownloadableProductPage) Kind() Kind { return DownloadableProductKind }

type BackInStockSubscriptionPage struct {
	accountMenu
}

func (p *BackInStockSubscriptionPage) Kind() Kind { return BackInStockSubscriptionKind }

type RewardPointPage struct {
	accountMenu
}

func (p *RewardPointPage) Kind() Kind { return RewardPointKind }

func (p *RewardPointPage) CurrentBalance(ctx context.Context) (string, error) {
	return p.tk.text(ctx, pageui.RewardPointBalance)
}

// ChangePasswordPage is the password change form
type ChangePasswordPage struct {
	accountMenu
}

func (p *ChangePasswordPage) Kind() Kind { return ChangePasswordKind }

func (p *ChangePasswordPage) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	fields := []struct{ id, value string }{
		{pageui.OldPasswordID, oldPassword},
		{pageui.NewPasswordID, newPassword},
		{pageui.ConfirmNewPasswordID, newPassword},
	}
	for _, f := range fields {
		if err := p.InputToTextboxByID(ctx, f.id, f.value); err != nil {
			return err
		}
	}
	return p.tk.click(ctx, pageui.ChangePasswordButton)
}

func (p *ChangePasswordPage) SuccessMessage(ctx context.Context) (string, error) {
	return p.tk.text(ctx, pageui.SuccessBar)
}

// CloseNotification - dismisses the success bar and waits for it to go away
func (p *ChangePasswordPage) CloseNotification(ctx context.Context) error {
	if err := p.tk.click(ctx, pageui.CloseBar); err != nil {
		return err
	}
	return p.tk.Wait.ElementInvisible(ctx, pageui.SuccessBar.MustResolve())
}

// MyProductReviewPage lists reviews written by the customer
type MyProductReviewPage struct {
	accountMenu
}

func (p *MyProductReviewPage) Kind() Kind { return MyProductReviewKind }

func (p *MyProductReviewPage) ReviewTitles(ctx context.Context) ([]string, error) {
	return p.tk.texts(ctx, pageui.MyReviewTitles)
}

func (p *MyProductReviewPage) ReviewTexts(ctx context.Context) ([]string, error) {
	return p.tk.texts(ctx, pageui.MyReviewTexts)
}
