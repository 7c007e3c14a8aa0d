package ports

import "context"

// Cache puerto del almacén clave-valor local del servicio. No es el sistema
// de registro: guarda el ledger local de invitaciones (única copia con el
// código en claro) y el descriptor de sesión del operador.
//
// Las implementaciones no necesitan serializar accesos: de eso se encarga el
// actor de localcache, que es el único llamador en producción.
type Cache interface {
	// Get devuelve (nil, nil) si la clave no existe.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Clipboard puerto de copiado al portapapeles del sistema. Es un efecto de
// mejor esfuerzo: el llamador registra el error y lo descarta, nunca lo
// propaga al usuario.
type Clipboard interface {
	Copy(text string) error
}
