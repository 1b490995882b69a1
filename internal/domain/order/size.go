package order

import (
	"strings"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/shared"
)

// Size is a garment size drawn from a fixed catalog
type Size string

const (
	SizeS   Size = "S"
	SizeM   Size = "M"
	SizeL   Size = "L"
	SizeXL  Size = "XL"
	SizeXXL Size = "XXL"
	Size3XL Size = "3XL"
	Size4XL Size = "4XL"
)

var sizeCatalog = []Size{SizeS, SizeM, SizeL, SizeXL, SizeXXL, Size3XL, Size4XL}

// Sizes returns the size catalog in display order
func Sizes() []Size {
	out := make([]Size, len(sizeCatalog))
	copy(out, sizeCatalog)
	return out
}

// IsValid reports whether the size is part of the catalog
func (s Size) IsValid() bool {
	return s.Rank() >= 0
}

// Rank returns the catalog position of the size, or -1 when unknown
func (s Size) Rank() int {
	for i, c := range sizeCatalog {
		if c == s {
			return i
		}
	}
	return -1
}

// String returns the string representation of Size
func (s Size) String() string {
	return string(s)
}

// ParseSize parses a size label case-insensitively
func ParseSize(v string) (Size, error) {
	s := Size(strings.ToUpper(strings.TrimSpace(v)))
	if !s.IsValid() {
		return "", shared.NewDomainError("INVALID_SIZE", "Unknown size: "+v)
	}
	return s, nil
}
