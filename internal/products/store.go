package products

import "context"

type Product struct {
	ID       int64 `json:"id"`
	Name     Value `json:"name"`
	Price    Value `json:"price"`
	Quantity Value `json:"quantity"`
}

// Fields are the client-supplied values of a new product.
type Fields struct {
	Name     Value
	Price    Value
	Quantity Value
}

// Patch is a partial update: nil fields keep their current value.
type Patch struct {
	Name     *Value
	Price    *Value
	Quantity *Value
}

func (p Patch) apply(cur Product) Product {
	if p.Name != nil {
		cur.Name = p.Name.clone()
	}
	if p.Price != nil {
		cur.Price = p.Price.clone()
	}
	if p.Quantity != nil {
		cur.Quantity = p.Quantity.clone()
	}
	return cur
}

type Store interface {
	Create(ctx context.Context, f Fields) (Product, error)
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id int64) (Product, bool, error)
	Update(ctx context.Context, id int64, p Patch) (Product, bool, error)
	Delete(ctx context.Context, id int64) (Product, bool, error)
	Len(ctx context.Context) (int, error)
	Ping(ctx context.Context) error
}
