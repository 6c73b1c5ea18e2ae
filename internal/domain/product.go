package domain

// Product mirrors the backend ProductDto. Prices are integral VND.
type Product struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Price        int64  `json:"price"`
	ImageURL     string `json:"imageUrl,omitempty"`
	CategoryID   int64  `json:"categoryId,omitempty"`
	CategoryName string `json:"categoryName,omitempty"`
	Quantity     int    `json:"quantity"`
}

// ProductPage is one page of a paginated product listing.
type ProductPage struct {
	Content       []Product `json:"content"`
	TotalPages    int       `json:"totalPages"`
	TotalElements int64     `json:"totalElements"`
	Number        int       `json:"number"`
	Size          int       `json:"size"`
}
