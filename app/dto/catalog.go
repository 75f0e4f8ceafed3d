package dto

// CategoryRequest creates or updates a category.
type CategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Description string `json:"description" validate:"nullable,max=512"`
}

// ProductRequest creates or updates a product.
type ProductRequest struct {
	Name          string  `json:"name" validate:"required,min=2,max=255"`
	Price         float64 `json:"price" validate:"required,gt=0"`
	StockQuantity int     `json:"stock_quantity" validate:"gte=0"`
	Properties    string  `json:"properties" validate:"nullable,max=4096"`
	ImageURL      string  `json:"image_url" validate:"nullable,url"`
	CategoryIDs   []uint  `json:"category_ids"`
}
