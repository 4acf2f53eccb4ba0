package pages

import (
	"context"

	"storefront_automation/application/pages/pageui"
)

// AdminLoginPage is the admin console sign-in form
type AdminLoginPage struct {
	forms
}

func (p *AdminLoginPage) Kind() Kind { return AdminLoginKind }

// LoginAs - signs in and lands on the dashboard
func (p *AdminLoginPage) LoginAs(ctx context.Context, email, password string) (*AdminDashboardPage, error) {
	if err := p.tk.typeText(ctx, pageui.AdminEmail, email); err != nil {
		return nil, err
	}
	if err := p.tk.typeText(ctx, pageui.AdminPassword, password); err != nil {
		return nil, err
	}
	if err := p.tk.click(ctx, pageui.AdminLoginButton); err != nil {
		return nil, err
	}
	return p.tk.Pages.AdminDashboard(), nil
}

func (p *AdminLoginPage) ErrorMessage(ctx context.Context) (string, error) {
	return p.tk.text(ctx, pageui.AdminLoginError)
}

// AdminDashboardPage is the landing page after admin sign-in
type AdminDashboardPage struct {
	adminChrome
}

func (p *AdminDashboardPage) Kind() Kind { return AdminDashboardKind }

// AdminProductsPage is the catalog product grid
type AdminProductsPage struct {
	adminChrome
}

func (p *AdminProductsPage) Kind() Kind { return AdminProductsKind }

// SearchByName - filters the grid by product name and waits for it to reload
func (p *AdminProductsPage) SearchByName(ctx context.Context, name string) error {
	if err := p.tk.typeText(ctx, pageui.AdminSearchProductName, name); err != nil {
		return err
	}
	if err := p.tk.click(ctx, pageui.AdminSearchButton); err != nil {
		return err
	}
	return p.waitForAjax(ctx)
}

func (p *AdminProductsPage) ResultCount() (int, error) {
	return p.tk.Element.Count(pageui.AdminProductRows.MustResolve())
}

func (p *AdminProductsPage) IsProductListed(ctx context.Context, name string) (bool, error) {
	loc := pageui.DynamicProductCell.MustResolve(name)
	if _, err := p.tk.Wait.ElementVisible(ctx, loc); err != nil {
		return false, err
	}
	return true, nil
}

func (p *AdminProductsPage) EditProduct(ctx context.Context, name string) (*AdminProductDetailPage, error) {
	if err := p.tk.click(ctx, pageui.DynamicProductEdit, name); err != nil {
		return nil, err
	}
	return p.tk.Pages.AdminProductDetail(), nil
}

// AdminProductDetailPage is the product edit form
type AdminProductDetailPage struct {
	adminChrome
}

func (p *AdminProductDetailPage) Kind() Kind { return AdminProductDetailKind }

func (p *AdminProductDetailPage) ProductName(ctx context.Context) (string, error) {
	loc := pageui.AdminProductNameInput.MustResolve()
	if _, err := p.tk.Wait.ElementVisible(ctx, loc); err != nil {
		return "", err
	}
	return p.tk.Element.Attribute(loc, "value")
}

func (p *AdminProductDetailPage) BackToProductList(ctx context.Context) (*AdminProductsPage, error) {
	if err := p.tk.click(ctx, pageui.AdminBackToList); err != nil {
		return nil, err
	}
	if err := p.waitForAjax(ctx); err != nil {
		return nil, err
	}
	return p.tk.Pages.AdminProducts(), nil
}
