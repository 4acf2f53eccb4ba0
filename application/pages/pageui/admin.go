package pageui

// Admin layout
const (
	AdminLogoutLink   tpl = "//a[text()='Logout']"
	AdminAjaxBusy     tpl = "//div[@id='ajaxBusy']/span"
	AdminContentTitle tpl = "//div[@class='content-header']/h1"

	// top level menu label, e.g. Catalog
	DynamicSideMenuItem tpl = "//nav//a[contains(@class,'nav-link')]/p[normalize-space()='%s']"
	// nested menu label, e.g. Products
	DynamicSideSubMenuItem tpl = "//nav//ul[contains(@class,'nav-treeview')]//p[normalize-space()='%s']"
)

// Admin login
const (
	AdminEmail       tpl = "//input[@id='Email']"
	AdminPassword    tpl = "//input[@id='Password']"
	AdminLoginButton tpl = "//button[contains(@class,'login-button')]"
	AdminLoginError  tpl = "//div[contains(@class,'validation-summary-errors')]"
)

// Admin catalog
const (
	CatalogMenu  = "Catalog"
	ProductsMenu = "Products"

	AdminSearchProductName tpl = "//input[@id='SearchProductName']"
	AdminSearchButton      tpl = "//button[@id='search-products']"
	AdminProductRows       tpl = "//table[@id='products-grid']/tbody/tr[not(contains(@class,'dataTables_empty'))]"

	// product name
	DynamicProductCell tpl = "//table[@id='products-grid']//td[text()='%s']"
	// product name
	DynamicProductEdit tpl = "//table[@id='products-grid']//td[text()='%s']/following-sibling::td/a[contains(@href,'Edit')]"

	AdminProductNameInput tpl = "//input[@id='Name']"
	AdminBackToList       tpl = "//div[@class='content-header']//a[contains(@href,'Product/List')]"
)
