package entity

import (
	"encoding/json"
	"time"
)

// Kind clasifica el origen de una entidad del directorio: la colección de
// cuentas individuales o la de cuentas cliente/empresa.
type Kind string

const (
	KindIndividual Kind = "individual"
	KindClient     Kind = "client"
)

// ClientIDPrefix separa el espacio de ids de clientes del de individuos:
// ambas colecciones usan ids disjuntos pero sin garantía de no colisión.
const ClientIDPrefix = "client-"

// Role etiqueta cerrada derivada del texto libre de roles del backend.
// Las cuentas administrativas se muestran como Individual (decisión de
// producto, no un bug del normalizador).
type Role string

const (
	RoleIndividual Role = "Individual"
	RoleClient     Role = "Client"
)

// StateCode variantes del estado normalizado.
type StateCode int

const (
	StateActive StateCode = iota
	StateDeleted
	StateOther
)

// State estado normalizado de una cuenta. El conjunto es cerrado en
// {Active, Deleted} más la variante abierta Other, que conserva tal cual el
// texto de estado que el backend envía y no mapeamos.
type State struct {
	Code  StateCode
	Label string // solo con StateOther: texto original capitalizado
}

var (
	Active  = State{Code: StateActive}
	Deleted = State{Code: StateDeleted}
)

// OtherState estado de paso directo para texto no mapeado.
func OtherState(label string) State {
	return State{Code: StateOther, Label: label}
}

func (s State) IsActive() bool  { return s.Code == StateActive }
func (s State) IsDeleted() bool { return s.Code == StateDeleted }

func (s State) String() string {
	switch s.Code {
	case StateActive:
		return "Active"
	case StateDeleted:
		return "Deleted"
	default:
		return s.Label
	}
}

// MarshalJSON serializa el estado como su etiqueta, de modo que el formato en
// el wire es idéntico al comportamiento de paso directo original.
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// RosterEntity vista unificada de una cuenta individual o cliente tras la
// fusión de las dos colecciones del backend.
//
// El roster se construye completo en cada descarga y nunca se muta en sitio:
// un refetch lo reemplaza por entero. ID es único dentro del roster fusionado;
// los ids de clientes llevan el prefijo ClientIDPrefix.
type RosterEntity struct {
	ID               string
	Kind             Kind
	DisplayName      string
	Email            string
	Role             Role
	State            State
	PublicationCount int
	// IsPrivileged es true para todo individuo por política; para clientes se
	// calcula con heurísticas de texto. La UI lo usa para ocultar el conteo
	// de publicaciones.
	IsPrivileged bool
	CreatedAt    *time.Time
	// Raw conserva el registro crudo solo como referencia de depuración.
	Raw map[string]any `json:"-"`
}
