package enums

// RecordEstado marks whether a row is active or soft-deleted.
type RecordEstado string

const (
	RecordActivo   RecordEstado = "activo"
	RecordInactivo RecordEstado = "inactivo"
)

func (e RecordEstado) String() string { return string(e) }

func (e RecordEstado) IsValid() bool {
	switch e {
	case RecordActivo, RecordInactivo:
		return true
	}
	return false
}

// SessionEstado is the lifecycle state of a login session.
type SessionEstado string

const (
	SessionActiva   SessionEstado = "activa"
	SessionRevocada SessionEstado = "revocada"
)

func (e SessionEstado) String() string { return string(e) }

func (e SessionEstado) IsValid() bool {
	switch e {
	case SessionActiva, SessionRevocada:
		return true
	}
	return false
}
