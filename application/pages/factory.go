package pages

import "fmt"

// Kind names a page type
type Kind int

const (
	HomeKind Kind = iota + 1
	LoginKind
	RegisterKind
	SearchKind
	ProductKind
	ProductReviewKind
	CustomerInfoKind
	AddressKind
	OrderKind
	DownloadableProductKind
	BackInStockSubscriptionKind
	RewardPointKind
	ChangePasswordKind
	MyProductReviewKind
	AdminLoginKind
	AdminDashboardKind
	AdminProductsKind
	AdminProductDetailKind
)

var kindNames = map[Kind]string{
	HomeKind:                    "Home",
	LoginKind:                   "Login",
	RegisterKind:                "Register",
	SearchKind:                  "Search",
	ProductKind:                 "Product",
	ProductReviewKind:           "ProductReview",
	CustomerInfoKind:            "CustomerInfo",
	AddressKind:                 "Address",
	OrderKind:                   "Order",
	DownloadableProductKind:     "DownloadableProduct",
	BackInStockSubscriptionKind: "BackInStockSubscription",
	RewardPointKind:             "RewardPoint",
	ChangePasswordKind:          "ChangePassword",
	MyProductReviewKind:         "MyProductReview",
	AdminLoginKind:              "AdminLogin",
	AdminDashboardKind:          "AdminDashboard",
	AdminProductsKind:           "AdminProducts",
	AdminProductDetailKind:      "AdminProductDetail",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Kinds - returns every page kind in declaration order
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(kindNames))
	for k := HomeKind; k <= AdminProductDetailKind; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// ParseKind - looks a kind up by its name
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown page kind %q", name)
}

// Page is implemented by every page object
type Page interface {
	Kind() Kind
}

// Factory builds page objects bound to one session toolkit
type Factory struct {
	tk *Toolkit
}

func (f *Factory) Home() *HomePage                 { return &HomePage{userChrome{forms{f.tk}}} }
func (f *Factory) Login() *LoginPage               { return &LoginPage{userChrome{forms{f.tk}}} }
func (f *Factory) Register() *RegisterPage         { return &RegisterPage{userChrome{forms{f.tk}}} }
func (f *Factory) Search() *SearchPage             { return &SearchPage{userChrome{forms{f.tk}}} }
func (f *Factory) Product() *ProductPage           { return &ProductPage{userChrome{forms{f.tk}}} }
func (f *Factory) ProductReview() *ProductReviewPage {
	return &ProductReviewPage{userChrome{forms{f.tk}}}
}
func (f *Factory) CustomerInfo() *CustomerInfoPage { return &CustomerInfoPage{f.account()} }
func (f *Factory) Address() *AddressPage           { return &AddressPage{f.account()} }
func (f *Factory) Order() *OrderPage               { return &OrderPage{f.account()} }
func (f *Factory) DownloadableProduct() *DownloadableProductPage {
	return &DownloadableProductPage{f.account()}
}
func (f *Factory) BackInStockSubscription() *BackInStockSubscriptionPage {
	return &BackInStockSubscriptionPage{f.account()}
}
func (f *Factory) RewardPoint() *RewardPointPage         { return &RewardPointPage{f.account()} }
func (f *Factory) ChangePassword() *ChangePasswordPage   { return &ChangePasswordPage{f.account()} }
func (f *Factory) MyProductReview() *MyProductReviewPage { return &MyProductReviewPage{f.account()} }
func (f *Factory) AdminLogin() *AdminLoginPage           { return &AdminLoginPage{forms{f.tk}} }
func (f *Factory) AdminDashboard() *AdminDashboardPage {
	return &AdminDashboardPage{adminChrome{forms{f.tk}}}
}
func (f *Factory) AdminProducts() *AdminProductsPage {
	return &AdminProductsPage{adminChrome{forms{f.tk}}}
}
func (f *Factory) AdminProductDetail() *AdminProductDetailPage {
	return &AdminProductDetailPage{adminChrome{forms{f.tk}}}
}

func (f *Factory) account() accountMenu {
	return accountMenu{userChrome{forms{f.tk}}}
}

// Open - builds the page of the given kind for callers that only know it at runtime
func (f *Factory) Open(kind Kind) (Page, error) {
	switch kind {
	case HomeKind:
		return f.Home(), nil
	case LoginKind:
		return f.Login(), nil
	case RegisterKind:
		return f.Register(), nil
	case SearchKind:
		return f.Search(), nil
	case ProductKind:
		return f.Product(), nil
	case ProductReviewKind:
		return f.ProductReview(), nil
	case CustomerInfoKind:
		return f.CustomerInfo(), nil
	case AddressKind:
		return f.Address(), nil
	case OrderKind:
		return f.Order(), nil
	case DownloadableProductKind:
		return f.DownloadableProduct(), nil
	case BackInStockSubscriptionKind:
		return f.BackInStockSubscription(), nil
	case RewardPointKind:
		return f.RewardPoint(), nil
	case ChangePasswordKind:
		return f.ChangePassword(), nil
	case MyProductReviewKind:
		return f.MyProductReview(), nil
	case AdminLoginKind:
		return f.AdminLogin(), nil
	case AdminDashboardKind:
		return f.AdminDashboard(), nil
	case AdminProductsKind:
		return f.AdminProducts(), nil
	case AdminProductDetailKind:
		return f.AdminProductDetail(), nil
	default:
		return nil, fmt.Errorf("unknown page kind %d", int(kind))
	}
}

// OpenStorefront - navigates to the storefront home page
func (f *Factory) OpenStorefront() (*HomePage, error) {
	if err := f.tk.Browser.Open(f.tk.urls.Storefront); err != nil {
		return nil, err
	}
	return f.Home(), nil
}

// OpenAdmin - navigates to the admin console login page
func (f *Factory) OpenAdmin() (*AdminLoginPage, error) {
	if err := f.tk.Browser.Open(f.tk.urls.Admin); err != nil {
		return nil, err
	}
	return f.AdminLogin(), nil
}
