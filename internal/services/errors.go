package services

import (
	"errors"
)

// Kind classifies a service error so transports can map it without parsing
// messages.
type Kind string

// Error kinds
const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindIntegrity  Kind = "integrity"
)

// Error is a structured service error with a machine-readable kind
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Common service errors
var (
	ErrNotFound               = &Error{KindNotFound, "registro no encontrado"}
	ErrCompanyNotFound        = &Error{KindNotFound, "compañía de seguros no encontrada"}
	ErrTypeNotOffered         = &Error{KindConflict, "la compañía no ofrece este tipo de seguro"}
	ErrInvalidAmount          = &Error{KindValidation, "el monto debe ser mayor que cero"}
	ErrInvalidMethod          = &Error{KindValidation, "método de pago inválido"}
	ErrPolicyFullyPaid        = &Error{KindConflict, "la póliza ya está totalmente pagada"}
	ErrAmountExceedsDebt      = &Error{KindConflict, "el monto excede la deuda restante de la póliza"}
	ErrAlreadyCancelled       = &Error{KindConflict, "la póliza ya fue cancelada"}
	ErrPolicyNotTransferable  = &Error{KindConflict, "una póliza cancelada no puede transferirse"}
	ErrVehiclesDifferentOwner = &Error{KindConflict, "los vehículos pertenecen a clientes distintos"}
	ErrInvalidTransition      = &Error{KindConflict, "transición de estado inválida"}
	ErrNoMatchingRule         = &Error{KindNotFound, "ninguna regla de precio coincide con los parámetros"}
	ErrPricingTypeManual      = &Error{KindConflict, "el seguro obligatorio se cotiza manualmente, no por reglas"}
	ErrPricingTypeRoadService = &Error{KindConflict, "el servicio vial se cotiza por su propia tarifa, no por reglas"}
	ErrPricingTypeMismatch    = &Error{KindConflict, "la compañía no ofrece un tipo de seguro con este esquema de precios"}
	ErrRoadServiceInactive    = &Error{KindConflict, "el servicio vial está inactivo"}
)

// KindOf extracts the kind from a service error. Internal errors that carry
// no kind report the empty string.
func KindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return ""
}
