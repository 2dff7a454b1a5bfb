// Package fare holds the static fare catalog: destination code to
// positive price. Fixed at construction, never mutated.
package fare

import (
	"fmt"

	"github.com/juju/errors"
	"github.com/citymetro/kiosk/currency"
)

type Destination struct {
	Code  string
	Name  string
	Price currency.Amount
}

func (d *Destination) String() string {
	return fmt.Sprintf("fare.%s %s price=%s", d.Code, d.Name, d.Price.Format2D())
}

type Catalog struct {
	items map[string]Destination
	order []string
}

func NewCatalog(items []Destination) (*Catalog, error) {
	c := &Catalog{
		items: make(map[string]Destination, len(items)),
		order: make([]string, 0, len(items)),
	}
	for _, d := range items {
		if d.Code == "" {
			return nil, errors.Errorf("fare catalog: empty code name=%s", d.Name)
		}
		if d.Price == 0 {
			return nil, errors.Errorf("fare catalog: code=%s price must be positive", d.Code)
		}
		if _, ok := c.items[d.Code]; ok {
			return nil, errors.Errorf("fare catalog: duplicate code=%s", d.Code)
		}
		c.items[d.Code] = d
		c.order = append(c.order, d.Code)
	}
	if len(c.items) == 0 {
		return nil, errors.Errorf("fare catalog: empty")
	}
	return c, nil
}

func (c *Catalog) Get(code string) (Destination, bool) {
	d, ok := c.items[code]
	return d, ok
}

func (c *Catalog) Len() int { return len(c.items) }

// List returns destinations in config order.
func (c *Catalog) List() []Destination {
	ds := make([]Destination, 0, len(c.order))
	for _, code := range c.order {
		ds = append(ds, c.items[code])
	}
	return ds
}

// Default is the City Metro simulation catalog.
func Default() *Catalog {
	c, err := NewCatalog([]Destination{
		{Code: "A", Name: "Station A", Price: 1000},
		{Code: "B", Name: "Station B", Price: 2000},
		{Code: "C", Name: "Station C", Price: 3000},
		{Code: "D", Name: "Station D", Price: 5000},
	})
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultNominals is the accepted denomination set of the simulation.
func DefaultNominals() []currency.Nominal {
	return []currency.Nominal{500, 1000, 2000}
}
