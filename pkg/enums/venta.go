package enums

import "fmt"

// SaleEstado is the lifecycle state of a sale.
type SaleEstado string

const (
	SaleCompletada SaleEstado = "completada"
	SaleCancelada  SaleEstado = "cancelada"
)

func (e SaleEstado) String() string { return string(e) }

func (e SaleEstado) IsValid() bool {
	switch e {
	case SaleCompletada, SaleCancelada:
		return true
	}
	return false
}

// MetodoPago is the payment method recorded with a sale.
type MetodoPago string

const (
	PagoEfectivo      MetodoPago = "efectivo"
	PagoTarjeta       MetodoPago = "tarjeta"
	PagoTransferencia MetodoPago = "transferencia"
)

func (m MetodoPago) String() string { return string(m) }

func (m MetodoPago) IsValid() bool {
	switch m {
	case PagoEfectivo, PagoTarjeta, PagoTransferencia:
		return true
	}
	return false
}

// ParseMetodoPago validates a payment method, defaulting empty to efectivo.
func ParseMetodoPago(raw string) (MetodoPago, error) {
	if raw == "" {
		return PagoEfectivo, nil
	}
	m := MetodoPago(raw)
	if !m.IsValid() {
		return "", fmt.Errorf("invalid payment method %q", raw)
	}
	return m, nil
}

// StockFilter narrows product listings by stock condition.
type StockFilter string

const (
	StockBajo    StockFilter = "bajo"
	StockAgotado StockFilter = "agotado"
)

func (f StockFilter) String() string { return string(f) }

func (f StockFilter) IsValid() bool {
	switch f {
	case StockBajo, StockAgotado:
		return true
	}
	return false
}
