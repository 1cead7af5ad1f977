package model

// CartItem is one line of a cart: a snapshot of the product taken when it
// was first added, plus the requested purchase quantity. Stock holds the
// product's available quantity at snapshot time and bounds later quantity
// updates.
type CartItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Unit      string  `json:"unit"`
	Stock     int     `json:"stock"`
	Quantity  int     `json:"quantity"`
}

// LineTotal returns price times quantity for this line.
func (i CartItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

// SnapshotItem builds a cart line from a product and a requested quantity.
func SnapshotItem(p Product, quantity int) CartItem {
	return CartItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
		Unit:      p.Unit,
		Stock:     p.Quantity,
		Quantity:  quantity,
	}
}
