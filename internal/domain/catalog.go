package domain

// Description is the resolved two-part product description.
type Description struct {
	Short string `json:"short"`
	Long  string `json:"long"`
}

// Product is the canonical, fully-resolved product shape that every
// consumer sees. Derived from a RawProduct; immutable once produced.
type Product struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	Description    Description       `json:"description"`
	Price          float64           `json:"price"`
	Images         []string          `json:"images"`
	Category       string            `json:"category"`     // slug of Type
	CategoryName   string            `json:"categoryName"` // human-readable Type
	FullCategory   string            `json:"fullCategory"` // raw hierarchical label, informational only
	Type           string            `json:"type"`
	Subcategory    string            `json:"subcategory,omitempty"`
	Tags           []string          `json:"tags"`
	Vendor         string            `json:"vendor,omitempty"`
	InStock        bool              `json:"inStock"`
	Specifications map[string]string `json:"specifications"`
	ExternalLinks  map[string]string `json:"externalLinks"`
	Variants       []Variant         `json:"variants"`
}

// Category is derived by grouping products on their slugified type.
// Categories are never stored; the set is always consistent with the
// current product list.
type Category struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Image        string `json:"image"`
	ProductCount int    `json:"productCount"`
}

// ProductStats summarizes the catalog. Price figures are computed over
// normalized prices greater than zero.
type ProductStats struct {
	TotalProducts   int     `json:"totalProducts"`
	InStockCount    int     `json:"inStockCount"`
	OutOfStockCount int     `json:"outOfStockCount"`
	TotalCategories int     `json:"totalCategories"`
	TotalTags       int     `json:"totalTags"`
	AveragePrice    float64 `json:"averagePrice"`
	MinPrice        float64 `json:"minPrice"`
	MaxPrice        float64 `json:"maxPrice"`
}

// FilterCriteria describes a conjunctive product filter. Nil pointer
// fields mean "not filtered on". Tags matches when ANY requested tag is
// present on the product (case-insensitive).
type FilterCriteria struct {
	Category    string   `json:"category,omitempty" form:"category"`
	Subcategory string   `json:"subcategory,omitempty" form:"subcategory"`
	InStock     *bool    `json:"inStock,omitempty" form:"inStock"`
	MinPrice    *float64 `json:"minPrice,omitempty" form:"minPrice"`
	MaxPrice    *float64 `json:"maxPrice,omitempty" form:"maxPrice"`
	Tags        []string `json:"tags,omitempty" form:"tags"`
}

// SortKey selects a product ordering.
type SortKey string

const (
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortNameAsc   SortKey = "name-asc"
	SortNameDesc  SortKey = "name-desc"
	// SortRelevance leaves the order unchanged; search results arrive
	// already ranked.
	SortRelevance SortKey = "relevance"
)

// ContactMessage is a storefront contact-form submission. Orders are
// handled manually over email, so the backend only records the inquiry.
type ContactMessage struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message" binding:"required"`
}
