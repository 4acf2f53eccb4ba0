// Package pageui holds the XPath locator templates of every page. Templates
// with %s placeholders are resolved with the values named in their comment.
package pageui

import "storefront_automation/domain/entities"

type tpl = entities.LocatorTemplate

// Header, footer and account sidebar shared by storefront pages
const (
	LoginLink       tpl = "//a[@class='ico-login']"
	RegisterLink    tpl = "//a[@class='ico-register']"
	MyAccountLink   tpl = "//a[@class='ico-account']"
	UserLogoutLink  tpl = "//a[@class='ico-logout']"
	HeaderSearchBox tpl = "//input[@id='small-searchterms']"
	HeaderSearchBtn tpl = "//form[@id='small-search-box-form']//button[@type='submit']"
	PageTitle       tpl = "//div[@class='page-title']/h1"
	NoData          tpl = "//div[@class='no-data']"
	SuccessBar      tpl = "//div[@class='bar-notification success']/p"
	CloseBar        tpl = "//div[@class='bar-notification success']/span[@class='close']"

	// footer link text
	DynamicFooterLink tpl = "//div[@class='footer']//a[text()='%s']"
	// sidebar link text
	DynamicAccountLink tpl = "//div[contains(@class,'block-account-navigation')]//a[text()='%s']"
	// input id
	DynamicTextboxByID tpl = "//input[@id='%s']"
	// select name
	DynamicDropdownByName tpl = "//select[@name='%s']"
	// button text
	DynamicButtonByText tpl = "//button[text()='%s']"
)

// Account sidebar labels
const (
	CustomerInfoLabel            = "Customer info"
	AddressesLabel               = "Addresses"
	OrdersLabel                  = "Orders"
	DownloadableProductsLabel    = "Downloadable products"
	BackInStockSubscriptionLabel = "Back in stock subscriptions"
	RewardPointsLabel            = "Reward points"
	ChangePasswordLabel          = "Change password"
	MyProductReviewsLabel        = "My product reviews"
)

// Home page
const (
	// product name
	DynamicProductTitle tpl = "//h2[@class='product-title']/a[text()='%s']"
)

// Login page
const (
	LoginEmail        tpl = "//input[@id='Email']"
	LoginPassword     tpl = "//input[@id='Password']"
	LoginRememberMe   tpl = "//input[@id='RememberMe']"
	LoginButton       tpl = "//button[contains(@class,'login-button')]"
	LoginEmailError   tpl = "//span[@id='Email-error']"
	LoginSummaryError tpl = "//div[contains(@class,'validation-summary-errors')]"
)

// Register page
const (
	GenderMale     tpl = "//input[@id='gender-male']"
	GenderFemale   tpl = "//input[@id='gender-female']"
	RegisterButton tpl = "//button[@id='register-button']"
	RegisterResult tpl = "//div[@class='result']"
	RegisterError  tpl = "//div[contains(@class,'message-error')]//li"
	ContinueButton tpl = "//a[contains(@class,'register-continue-button')]"

	// field id, e.g. FirstName
	DynamicFieldError tpl = "//span[@id='%s-error']"
)

// Register and customer info field ids
const (
	FirstNameID       = "FirstName"
	LastNameID        = "LastName"
	EmailID           = "Email"
	CompanyID         = "Company"
	PasswordID        = "Password"
	ConfirmPasswordID = "ConfirmPassword"
	DayOfBirthName    = "DateOfBirthDay"
	MonthOfBirthName  = "DateOfBirthMonth"
	YearOfBirthName   = "DateOfBirthYear"
)

// Search page
const (
	SearchKeyword         tpl = "//input[@id='q']"
	SearchButton          tpl = "//button[contains(@class,'search-button')]"
	SearchAdvanced        tpl = "//input[@id='advs']"
	SearchSubCategories   tpl = "//input[@id='isc']"
	SearchCategoryName        = "cid"
	SearchResultTitles    tpl = "//div[@class='product-item']//h2[@class='product-title']/a"
	SearchResultPrices    tpl = "//div[@class='product-item']//span[contains(@class,'actual-price')]"
	SearchNoResult        tpl = "//div[@class='no-result']"
	SearchWarning         tpl = "//div[@class='warning']"
	SearchOrderBy         tpl = "//select[@id='products-orderby']"
	SearchLoadingProducts tpl = "//div[@class='ajax-products-busy']"
)

// Product and review pages
const (
	ProductName        tpl = "//div[@class='product-name']/h1"
	AddReviewLink      tpl = "//div[@class='product-review-links']/a[text()='Add your review']"
	ReviewTitle        tpl = "//input[@id='AddProductReview_Title']"
	ReviewText         tpl = "//textarea[@id='AddProductReview_ReviewText']"
	ReviewSubmitButton tpl = "//button[@name='add-review']"
	ReviewResult       tpl = "//div[@class='result']"

	// rating 1-5
	DynamicReviewRating tpl = "//input[@id='addproductrating_%s']"
)

// Account pages
const (
	CustomerSaveButton tpl = "//button[@id='save-info-button']"

	AddressAddButton  tpl = "//button[contains(@class,'add-address-button')]"
	AddressSaveButton tpl = "//button[contains(@class,'save-address-button')]"
	AddressCountry        = "Address.CountryId"
	AddressState          = "Address.StateProvinceId"
	// li class inside the first listed address, e.g. name, email, city-state-zip
	DynamicAddressField tpl = "(//div[@class='address-list']//li[@class='%s'])[1]"

	OrderItems tpl = "//div[@class='order-list']//div[contains(@class,'order-item')]"

	RewardPointBalance tpl = "//div[@class='current-balance']"

	OldPasswordID            = "OldPassword"
	NewPasswordID            = "NewPassword"
	ConfirmNewPasswordID     = "ConfirmNewPassword"
	ChangePasswordButton tpl = "//button[contains(@class,'change-password-button')]"

	MyReviewTitles tpl = "//div[@class='product-review-item']//div[@class='review-title']/strong"
	MyReviewTexts  tpl = "//div[@class='product-review-item']//div[@class='review-text']"
)
