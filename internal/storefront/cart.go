package storefront

import (
	"fmt"

	"catalog/internal/models"

	"github.com/shopspring/decimal"
)

// Line is one product in the cart. Quantity is always at least 1.
type Line struct {
	Product  models.Product
	Quantity int
}

// Subtotal is price times quantity, computed exactly.
func (l Line) Subtotal() decimal.Decimal {
	return decimal.NewFromFloat(l.Product.Price).Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is the client-side shopping cart. It lives only in memory and is
// not safe for concurrent use.
type Cart struct {
	lines []Line
}

// Add puts one unit of product in the cart. A product already in the cart,
// matched by ID, gets its quantity incremented instead of a second line.
func (c *Cart) Add(product models.Product) Notification {
	for i := range c.lines {
		if c.lines[i].Product.ID == product.ID {
			c.lines[i].Quantity++
			return success(product.Name + " added to cart!")
		}
	}
	c.lines = append(c.lines, Line{Product: product, Quantity: 1})
	return success(product.Name + " added to cart!")
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []Line {
	lines := make([]Line, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// Count is the number of units across all lines.
func (c *Cart) Count() int {
	count := 0
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

// Total is the sum of every line subtotal.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// Summary is the notification shown when the user opens the cart.
func (c *Cart) Summary() Notification {
	if len(c.lines) == 0 {
		return info("Your cart is empty")
	}
	return info(fmt.Sprintf("Cart total: $%s", c.Total().StringFixed(2)))
}
