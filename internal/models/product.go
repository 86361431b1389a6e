package models

// Product is a catalog entry. Price is in the currency's minor unit and is
// the single source of truth for order totals.
type Product struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Price          int64    `json:"price"`
	CategoryID     int64    `json:"categoryId"`
	CategoryName   string   `json:"categoryName"`
	Introduction   *string  `json:"introduction"`
	Origin         *string  `json:"origin"`
	ProductionDate *string  `json:"productionDate"`
	ExpiryDate     *string  `json:"expiryDate"`
	ImageURLs      []string `json:"imageUrls"`
}

// Category is reference data pointed at by Product.CategoryID.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Method is a shipping or payment method row.
type Method struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
