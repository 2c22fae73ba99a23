package registry

import (
	"fmt"

	"github.com/coopstore/coopstore/internal/domain"
)

// ProductRegistry holds the catalog in the order products were added.
// Product ids and names are both unique regardless of case.
type ProductRegistry struct {
	products list[domain.Product]
	names    *nameIndex
}

func NewProductRegistry() *ProductRegistry {
	return &ProductRegistry{
		products: newList(func(p *domain.Product) string { return p.ID }),
		names:    newNameIndex(),
	}
}

// RestoreProductRegistry rebuilds the catalog from saved products
func RestoreProductRegistry(products []*domain.Product) (*ProductRegistry, error) {
	r := NewProductRegistry()
	for _, p := range products {
		if _, err := r.Add(p); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add stores a product under its own id
func (r *ProductRegistry) Add(p *domain.Product) (string, error) {
	if r.names.has(p.Name) {
		return "", fmt.Errorf("duplicate product name %q", p.Name)
	}
	if err := r.products.add(p); err != nil {
		return "", err
	}
	r.names.insert(p.Name, p.ID)
	return p.ID, nil
}

func (r *ProductRegistry) Get(id string) (*domain.Product, bool) {
	return r.products.get(id)
}

func (r *ProductRegistry) Remove(id string) bool {
	p, ok := r.products.remove(id)
	if ok {
		r.names.remove(p.Name, p.ID)
	}
	return ok
}

// ExistsByName reports whether any product already uses name, any case
func (r *ProductRegistry) ExistsByName(name string) bool {
	return r.names.has(name)
}

// SearchByName returns products whose name starts with prefix, any case
func (r *ProductRegistry) SearchByName(prefix string) []*domain.Product {
	var out []*domain.Product
	for _, id := range r.names.withPrefix(prefix) {
		if p, ok := r.products.get(id); ok {
			out = append(out, p)
		}
	}
	return out
}

func (r *ProductRegistry) All() []*domain.Product {
	return r.products.all()
}

func (r *ProductRegistry) Len() int {
	return r.products.len()
}
