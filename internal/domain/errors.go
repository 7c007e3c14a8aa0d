package domain

import "errors"

// Errores de dominio (sin dependencias externas).
//
// Taxonomía de fallos de E/S: los fallos de red y de esquema nunca son
// fatales para el proceso; la capa de aplicación los degrada a resultado
// vacío o parcial. Solo las mutaciones explícitas del usuario (crear/revocar
// invitación, borrar entidad del roster) propagan un error visible.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrRemoteUnavailable = errors.New("backend del directorio no disponible")
	ErrCacheCorrupt      = errors.New("caché local corrupta")
)
