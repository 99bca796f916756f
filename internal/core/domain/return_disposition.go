package domain

import "fmt"

// ReturnDisposition says where goods go once a storno is complete.
type ReturnDisposition string

const (
	DispositionRestock        ReturnDisposition = "restock"
	DispositionReturnSupplier ReturnDisposition = "return_supplier"
)

// ParseReturnDisposition validates a wire value.
func ParseReturnDisposition(v string) (ReturnDisposition, error) {
	switch d := ReturnDisposition(v); d {
	case DispositionRestock, DispositionReturnSupplier:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDisposition, v)
}

// ActionText is the instruction printed for warehouse staff.
func (d ReturnDisposition) ActionText() string {
	switch d {
	case DispositionRestock:
		return "ACTION: ZURÜCK INS LAGER."
	case DispositionReturnSupplier:
		return "ACTION: RETOURE AN LIEFERANT."
	}
	return ""
}

// Ptr returns a pointer to a copy of d.
func (d ReturnDisposition) Ptr() *ReturnDisposition {
	return &d
}
