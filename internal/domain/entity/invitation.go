package entity

import (
	"regexp"
	"time"
)

// LocalIDPrefix prefijo sintético de los ids de invitación emitidos
// localmente, distinguible de los ids numéricos que emite el servidor.
const LocalIDPrefix = "local-"

var serverIDPattern = regexp.MustCompile(`^[0-9]+$`)

// Invitation una entrada del ledger de códigos de invitación.
//
// Code solo existe en el lado que creó la invitación (o que lo obtuvo en la
// emisión): el endpoint remoto de listado no devuelve códigos en claro, solo
// el estado de consumo. Por eso en la reconciliación la copia local gana.
type Invitation struct {
	ID        string    `json:"id"`
	Code      string    `json:"code,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	Active    bool      `json:"active"`
	CreatedBy string    `json:"created_by,omitempty"`
}

// IsServerIssued true si el id tiene la forma numérica que emite el servidor.
// Solo para estos ids tiene sentido intentar el borrado remoto.
func (i Invitation) IsServerIssued() bool {
	return serverIDPattern.MatchString(i.ID)
}

// IsPlaceholder true si la entrada no tiene ningún campo con significado:
// sin código, sin fecha, sin creador y sin email. Son filas semilla vacías
// que no deben mostrarse.
func (i Invitation) IsPlaceholder() bool {
	return i.Code == "" && i.CreatedAt.IsZero() && i.CreatedBy == "" && i.Email == ""
}
