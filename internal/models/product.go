package models

// Product represents a product in the catalog.
type Product struct {
	ID          uint    `json:"id" gorm:"primaryKey;autoIncrement"`
	Nombre      string  `json:"nombre" gorm:"type:varchar(128);not null;uniqueIndex"`
	Cantidad    int     `json:"cantidad" gorm:"not null"`
	Precio      float64 `json:"precio" gorm:"not null"`
	Descripcion string  `json:"descripcion" gorm:"type:varchar(128);not null"`
	Categoria   string  `json:"categoria" gorm:"type:varchar(128);not null"`
	Active      bool    `json:"active" gorm:"not null;default:true"`
}

// TableName pins the table name so both drivers agree on it.
func (Product) TableName() string {
	return "products"
}

// ToMap returns the flat representation used for single and list responses.
func (p Product) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"id":          p.ID,
		"nombre":      p.Nombre,
		"cantidad":    p.Cantidad,
		"precio":      p.Precio,
		"descripcion": p.Descripcion,
		"categoria":   p.Categoria,
		"active":      p.Active,
	}
}

// CreateProductRequest is the caller-supplied payload for a new product.
// Numeric fields are pointers so a missing key fails validation while zero is accepted.
// Text fields must contain something other than whitespace.
type CreateProductRequest struct {
	Nombre      string   `json:"nombre" form:"nombre" validate:"required,notblank,max=128"`
	Cantidad    *int     `json:"cantidad" form:"cantidad" validate:"required"`
	Precio      *float64 `json:"precio" form:"precio" validate:"required"`
	Descripcion string   `json:"descripcion" form:"descripcion" validate:"required,notblank,max=128"`
	Categoria   string   `json:"categoria" form:"categoria" validate:"required,notblank,max=128"`
}

// NewProduct builds an active Product from a validated request.
func (r CreateProductRequest) NewProduct() *Product {
	p := &Product{
		Nombre:      r.Nombre,
		Descripcion: r.Descripcion,
		Categoria:   r.Categoria,
		Active:      true,
	}
	if r.Cantidad != nil {
		p.Cantidad = *r.Cantidad
	}
	if r.Precio != nil {
		p.Precio = *r.Precio
	}
	return p
}
