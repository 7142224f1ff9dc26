package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Product is a single catalogue entry. Price is in øre (integer minor
// currency units).
type Product struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// Catalogue is the active-product list of a room. It is replaced wholesale
// on each refresh, never mutated in place.
type Catalogue struct {
	Products []Product `json:"products"`

	byID map[int]int
}

// NewCatalogue builds a catalogue from a product list.
func NewCatalogue(products []Product) *Catalogue {
	c := &Catalogue{Products: products}
	c.index()
	return c
}

func (c *Catalogue) index() {
	c.byID = make(map[int]int, len(c.Products))
	for i, p := range c.Products {
		c.byID[p.ID] = i
	}
}

// Find returns the product with the given id, or false if absent.
func (c *Catalogue) Find(id int) (Product, bool) {
	if c.byID == nil {
		c.index()
	}
	i, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.Products[i], true
}

// Len returns the number of products.
func (c *Catalogue) Len() int {
	return len(c.Products)
}

// UnmarshalJSON decodes the upstream active-products shape: a mapping from
// product-id string to a [name, price] tuple. Products are ordered by id so
// repeated fetches yield a stable catalogue.
func (c *Catalogue) UnmarshalJSON(data []byte) error {
	var raw map[string][2]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode product map: %w", err)
	}

	products := make([]Product, 0, len(raw))
	for idStr, tuple := range raw {
		id, err := strconv.Atoi(idStr)
		if err != nil {
			return fmt.Errorf("decode product id %q: %w", idStr, err)
		}

		var name string
		if err := json.Unmarshal(tuple[0], &name); err != nil {
			return fmt.Errorf("decode product %d name: %w", id, err)
		}

		var price int64
		if err := json.Unmarshal(tuple[1], &price); err != nil {
			return fmt.Errorf("decode product %d price: %w", id, err)
		}

		products = append(products, Product{ID: id, Name: name, Price: price})
	}

	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })

	c.Products = products
	c.index()
	return nil
}
