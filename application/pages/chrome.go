package pages

import (
	"context"

	"storefront_automation/application/pages/pageui"
)

// forms holds the generic form helpers every page offers
type forms struct {
	tk *Toolkit
}

// Toolkit - returns the session helpers backing the page
func (f forms) Toolkit() *Toolkit { return f.tk }

// InputToTextboxByID - types value into the input whose id is id
func (f forms) InputToTextboxByID(ctx context.Context, id, value string) error {
	return f.tk.typeText(ctx, pageui.DynamicTextboxByID, value, id)
}

// SelectDropdownByName - selects value in the native dropdown named name
func (f forms) SelectDropdownByName(ctx context.Context, name, value string) error {
	return f.tk.Element.SelectByVisibleText(ctx, pageui.DynamicDropdownByName.MustResolve(name), value)
}

// SelectedInDropdownByName - returns the selected option text of the dropdown named name
func (f forms) SelectedInDropdownByName(name string) (string, error) {
	return f.tk.Element.SelectedOptionText(pageui.DynamicDropdownByName.MustResolve(name))
}

// ClickButtonByText - clicks the button labelled text
func (f forms) ClickButtonByText(ctx context.Context, text string) error {
	loc := pageui.DynamicButtonByText.MustResolve(text)
	if _, err := f.tk.Wait.ElementVisible(ctx, loc); err != nil {
		return err
	}
	return f.tk.Element.Click(loc)
}

// TextboxValueByID - returns the current value of the input whose id is id
func (f forms) TextboxValueByID(ctx context.Context, id string) (string, error) {
	loc := pageui.DynamicTextboxByID.MustResolve(id)
	if _, err := f.tk.Wait.ElementVisible(ctx, loc); err != nil {
		return "", err
	}
	return f.tk.Element.Attribute(loc, "value")
}

// userChrome is the storefront header and footer
type userChrome struct {
	forms
}

// OpenFooterPage - follows the footer link labelled name
func (c userChrome) OpenFooterPage(ctx context.Context, name string) error {
	return c.tk.click(ctx, pageui.DynamicFooterLink, name)
}

// PageTitle - returns the heading of the current storefront page
func (c userChrome) PageTitle(ctx context.Context) (string, error) {
	return c.tk.text(ctx, pageui.PageTitle)
}

func (c userChrome) IsMyAccountLinkDisplayed() (bool, error) {
	return c.tk.displayed(pageui.MyAccountLink)
}

// IsLogoutLinkUndisplayed - reports whether the session is anonymous
func (c userChrome) IsLogoutLinkUndisplayed() (bool, error) {
	return c.tk.undisplayed(pageui.UserLogoutLink)
}

func (c userChrome) ClickMyAccountLink(ctx context.Context) (*CustomerInfoPage, error) {
	if err := c.tk.click(ctx, pageui.MyAccountLink); err != nil {
		return nil, err
	}
	return c.tk.Pages.CustomerInfo(), nil
}

func (c userChrome) ClickLogoutLink(ctx context.Context) (*HomePage, error) {
	if err := c.tk.click(ctx, pageui.UserLogoutLink); err != nil {
		return nil, err
	}
	return c.tk.Pages.Home(), nil
}

// SearchFor - submits keyword through the header search box
func (c userChrome) SearchFor(ctx context.Context, keyword string) (*SearchPage, error) {
	if err := c.tk.typeText(ctx, pageui.HeaderSearchBox, keyword); err != nil {
		return nil, err
	}
	if err := c.tk.click(ctx, pageui.HeaderSearchBtn); err != nil {
		return nil, err
	}
	return c.tk.Pages.Search(), nil
}

// accountMenu is the "My account" sidebar
type accountMenu struct {
	userChrome
}

func (m accountMenu) openAccountLink(ctx context.Context, label string) error {
	return m.tk.click(ctx, pageui.DynamicAccountLink, label)
}

func (m accountMenu) OpenCustomerInfoPage(ctx context.Context) (*CustomerInfoPage, error) {
	if err := m.openAccountLink(ctx, pageui.CustomerInfoLabel); err != nil {
		return nil, err
	}
	return m.tk.Pages.CustomerInfo(), nil
}

func (m accountMenu) OpenAddressPage(ctx context.Context) (*AddressPage, error) {
	if err := m.openAccountLink(ctx, pageui.AddressesLabel); err != nil {
		return nil, err
	}
	return m.tk.Pages.Address(), nil
}

func (m accountMenu) OpenOrderPage(ctx context.Context) (*OrderPage, error) {
	if err := m.openAccountLink(ctx, pageui.OrdersLabel); err != nil {
		return nil, err
	}
	return m.tk.Pages.Order(), nil
}

func (m accountMenu) OpenDownloadableProductPage(ctx context.Context) (*DownloadableProductPage, error) {
	if err := m.openAccountLink(ctx, pageui.DownloadableProductsLabel); err != nil {
		return nil, err
	}
	return m.tk.Pages.DownloadableProduct(), nil
}

func (m accountMenu) OpenBackInStockSubscriptionPage(ctx context.Context) (*BackInStockSubscriptionPage, error) {
	if err := m.openAccountLink(ctx, pageui.BackInStockSubscriptionLabel); err != nil {
		return nil, err
	}
	return m.tk.Pages.BackInStockSubscription(), nil
}

func (m accountMenu) OpenRewardPointPage(ctx context.Context) (*RewardPointPage, error) {
	if err := m.openAccountLink(ctx, pageui.RewardPointsLabel); err != nil {
		return nil, err
	}
	return m.tk.Pages.RewardPoint(), nil
}

func (m accountMenu) OpenChangePasswordPage(ctx context.Context) (*ChangePasswordPage, error) {
	if err := m.openAccountLink(ctx, pageui.ChangePasswordLabel); err != nil {
		return nil, err
	}
	return m.tk.Pages.ChangePassword(), nil
}

func (m accountMenu) OpenMyProductReviewPage(ctx context.Context) (*MyProductReviewPage, error) {
	if err := m.openAccountLink(ctx, pageui.MyProductReviewsLabel); err != nil {
		return nil, err
	}
	return m.tk.Pages.MyProductReview(), nil
}

// NoDataMessage - returns the empty-list notice shown by account pages
func (m accountMenu) NoDataMessage(ctx context.Context) (string, error) {
	return m.tk.text(ctx, pageui.NoData)
}

// adminChrome is the admin console layout around every signed-in page
type adminChrome struct {
	forms
}

// waitForAjax - waits for the admin loading indicator to disappear
func (c adminChrome) waitForAjax(ctx context.Context) error {
	return c.tk.Wait.ElementInvisible(ctx, pageui.AdminAjaxBusy.MustResolve())
}

func (c adminChrome) ClickSideMenuItem(ctx context.Context, item string) error {
	return c.tk.click(ctx, pageui.DynamicSideMenuItem, item)
}

func (c adminChrome) ClickSideMenuSubItem(ctx context.Context, item string) error {
	return c.tk.click(ctx, pageui.DynamicSideSubMenuItem, item)
}

// ContentTitle - returns the heading of the current admin page
func (c adminChrome) ContentTitle(ctx context.Context) (string, error) {
	return c.tk.text(ctx, pageui.AdminContentTitle)
}

// OpenProductsPage - opens Catalog > Products from the side menu
func (c adminChrome) OpenProductsPage(ctx context.Context) (*AdminProductsPage, error) {
	if err := c.ClickSideMenuItem(ctx, pageui.CatalogMenu); err != nil {
		return nil, err
	}
	if err := c.ClickSideMenuSubItem(ctx, pageui.ProductsMenu); err != nil {
		return nil, err
	}
	if err := c.waitForAjax(ctx); err != nil {
		return nil, err
	}
	return c.tk.Pages.AdminProducts(), nil
}

func (c adminChrome) ClickLogoutLink(ctx context.Context) (*AdminLoginPage, error) {
	if err := c.tk.click(ctx, pageui.AdminLogoutLink); err != nil {
		return nil, err
	}
	return c.tk.Pages.AdminLogin(), nil
}
