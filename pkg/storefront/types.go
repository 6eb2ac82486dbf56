// pkg/storefront/types.go
package storefront

import "time"

// Wire types mirroring the storefront API payloads.

type Variant struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Size      string `json:"size"`
	Stock     int    `json:"stock"`
}

type Product struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Category        string     `json:"category"`
	Price           float64    `json:"price"`
	Currency        string     `json:"currency"`
	Images          []string   `json:"images"`
	DropDate        *time.Time `json:"drop_date,omitempty"`
	SoldOut         bool       `json:"sold_out"`
	Variants        []Variant  `json:"variants"`
	UnitPrice       float64    `json:"unit_price"`
	OriginalPrice   float64    `json:"original_price"`
	DiscountPercent int        `json:"discount_percent"`
	Released        bool       `json:"released"`
}

type ShippingRule struct {
	FlatFee  float64 `json:"flat_fee"`
	FreeOver float64 `json:"free_over"`
}

type ShippingConfig struct {
	DomesticCountry string       `json:"domestic_country"`
	Domestic        ShippingRule `json:"domestic"`
	International   ShippingRule `json:"international"`
}

type StoreContact struct {
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

type PaymentOptions struct {
	CardEnabled    bool `json:"card_enabled"`
	CashOnDelivery bool `json:"cash_on_delivery"`
}

type FAQEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Position int    `json:"position"`
}

type Config struct {
	Shipping ShippingConfig `json:"shipping"`
	Store    StoreContact   `json:"store"`
	Payment  PaymentOptions `json:"payment"`
	FAQ      []FAQEntry     `json:"faq"`
}

type Discount struct {
	Name       string    `json:"name"`
	Percent    int       `json:"percent"`
	Scope      string    `json:"scope"`
	ProductIDs []string  `json:"product_ids,omitempty"`
	EndsAt     time.Time `json:"ends_at"`
}

// Snapshot is the full storefront state the client keeps as a local mirror.
type Snapshot struct {
	Products    []Product  `json:"products"`
	Discounts   []Discount `json:"discounts"`
	Config      *Config    `json:"config"`
	GeneratedAt time.Time  `json:"generated_at"`
}

type CartLine struct {
	ProductID string `json:"id"`
	Size      string `json:"selected_size"`
	Quantity  int    `json:"quantity"`
}

type OrderRequest struct {
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone,omitempty"`

	ShippingAddress string `json:"shipping_address"`
	City            string `json:"city"`
	PostalCode      string `json:"postal_code"`
	Country         string `json:"country"`

	InvoiceCompany string `json:"invoice_company,omitempty"`
	InvoiceVAT     string `json:"invoice_vat,omitempty"`

	Items []CartLine `json:"items"`
}

type PlacedOrder struct {
	ID       string  `json:"id"`
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping_cost"`
	Total    float64 `json:"total"`
	Currency string  `json:"currency"`
	Status   string  `json:"status"`
}

type PaymentIntent struct {
	ClientSecret string `json:"client_secret"`
	PaymentID    string `json:"payment_id"`
	Status       string `json:"status"`
}
