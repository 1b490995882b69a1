package order

import (
	"fmt"
	"strings"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/shared"
)

// SizeQuantity is a single (size, quantity) pair of an order item
type SizeQuantity struct {
	Size     Size `json:"size"`
	Quantity int  `json:"quantity" validate:"gte=0"`
}

// Item is one design/colour line of an order with its size breakdown.
// A size appears at most once per item.
type Item struct {
	DesignNumber    string         `json:"design_number" validate:"required,max=100"`
	Color           string         `json:"color" validate:"max=100"`
	SizesQuantities []SizeQuantity `json:"sizes_quantities" validate:"dive"`
}

// Quantity returns the quantity entered for size, zero when absent
func (i *Item) Quantity(size Size) int {
	for _, sq := range i.SizesQuantities {
		if sq.Size == size {
			return sq.Quantity
		}
	}
	return 0
}

// SetQuantity sets the quantity for a size. A zero quantity removes the size
// from the item: zero means "not ordered". New sizes are appended.
func (i *Item) SetQuantity(size Size, quantity int) error {
	if !size.IsValid() {
		return shared.NewDomainError("INVALID_SIZE", "Unknown size: "+size.String())
	}
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}

	for idx, sq := range i.SizesQuantities {
		if sq.Size != size {
			continue
		}
		if quantity == 0 {
			i.SizesQuantities = append(i.SizesQuantities[:idx:idx], i.SizesQuantities[idx+1:]...)
			return nil
		}
		i.SizesQuantities[idx].Quantity = quantity
		return nil
	}

	if quantity > 0 {
		i.SizesQuantities = append(i.SizesQuantities, SizeQuantity{Size: size, Quantity: quantity})
	}
	return nil
}

// TotalQuantity sums the quantities of all sizes
func (i *Item) TotalQuantity() int {
	total := 0
	for _, sq := range i.SizesQuantities {
		total += sq.Quantity
	}
	return total
}

// HasQuantity reports whether any size carries a non-zero quantity
func (i *Item) HasQuantity() bool {
	for _, sq := range i.SizesQuantities {
		if sq.Quantity > 0 {
			return true
		}
	}
	return false
}

// IsBlank reports whether the item carries no design, colour or quantity
func (i *Item) IsBlank() bool {
	return strings.TrimSpace(i.DesignNumber) == "" &&
		strings.TrimSpace(i.Color) == "" &&
		!i.HasQuantity()
}

// HasSize reports whether the item lists size, whatever its quantity
func (i *Item) HasSize(size Size) bool {
	for _, sq := range i.SizesQuantities {
		if sq.Size == size {
			return true
		}
	}
	return false
}

// validateSizes checks catalog membership, uniqueness and sign of every pair
func (i *Item) validateSizes() error {
	seen := make(map[Size]struct{}, len(i.SizesQuantities))
	for _, sq := range i.SizesQuantities {
		if !sq.Size.IsValid() {
			return shared.NewDomainError("INVALID_SIZE", fmt.Sprintf("Design %s: unknown size %q", i.DesignNumber, sq.Size))
		}
		if _, dup := seen[sq.Size]; dup {
			return shared.NewDomainError("DUPLICATE_SIZE", fmt.Sprintf("Design %s: size %s appears more than once", i.DesignNumber, sq.Size))
		}
		if sq.Quantity < 0 {
			return shared.NewDomainError("INVALID_QUANTITY", fmt.Sprintf("Design %s: quantity for size %s cannot be negative", i.DesignNumber, sq.Size))
		}
		seen[sq.Size] = struct{}{}
	}
	return nil
}

// normalize canonicalizes size labels and drops zero-quantity pairs
func (i *Item) normalize() {
	i.DesignNumber = strings.TrimSpace(i.DesignNumber)
	i.Color = strings.TrimSpace(i.Color)
	kept := make([]SizeQuantity, 0, len(i.SizesQuantities))
	for _, sq := range i.SizesQuantities {
		if sq.Quantity == 0 {
			continue
		}
		if parsed, err := ParseSize(sq.Size.String()); err == nil {
			sq.Size = parsed
		}
		kept = append(kept, sq)
	}
	i.SizesQuantities = kept
}
