package models

// Product is a catalog item. Price and stock are validated at the DTO
// boundary (price > 0, stock >= 0); the model itself stays permissive so
// seeded and imported data loads without ceremony.
type Product struct {
	Base
	Name          string  `gorm:"size:255;not null;index" json:"name"`
	Price         float64 `gorm:"not null" json:"price"`
	StockQuantity int     `gorm:"not null;default:0" json:"stock_quantity"`
	Properties    string  `gorm:"type:text" json:"properties"`
	ImageURL      string  `gorm:"size:512" json:"image_url,omitempty"`

	Categories []Category `gorm:"many2many:product_categories;joinForeignKey:ProductID;joinReferences:CategoryID" json:"categories,omitempty"`
}

// Category groups products. Name uniqueness is case-insensitive and checked
// by the service before insert; the unique index is the store-level backstop.
type Category struct {
	Base
	Name        string `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	Products []Product `gorm:"many2many:product_categories;joinForeignKey:CategoryID;joinReferences:ProductID" json:"products,omitempty"`
}

// ProductCategory is the product↔category join row. It has no soft-delete
// flag: removing either parent removes the link outright. The FK constraints
// cascade at the store level; services also stage the link removals
// explicitly so the commit's affected-row count stays accountable.
type ProductCategory struct {
	ProductID  uint `gorm:"primaryKey;autoIncrement:false" json:"product_id"`
	CategoryID uint `gorm:"primaryKey;autoIncrement:false" json:"category_id"`

	Product  *Product  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ProductCategory) TableName() string { return "product_categories" }
