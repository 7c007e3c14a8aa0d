package ports

import "context"

// DirectoryAPI define el puerto de salida hacia el backend heredado del
// directorio (el sistema de registro). Devuelve registros crudos sin esquema
// contratado; la normalización vive en internal/domain/schema.
//
// Siguiendo el principio de inversión de dependencias (DIP), la capa de
// aplicación solo conoce este contrato; el adaptador HTTP concreto vive en
// infrastructure y los tests inyectan fakes.
type DirectoryAPI interface {
	// ListIndividuals / ListClients descargan una colección completa.
	// includeDeleted pide al backend incluir filas con borrado lógico.
	ListIndividuals(ctx context.Context, includeDeleted bool) ([]map[string]any, error)
	ListClients(ctx context.Context, includeDeleted bool) ([]map[string]any, error)

	GetIndividual(ctx context.Context, id string) (map[string]any, error)
	GetClient(ctx context.Context, id string) (map[string]any, error)
	DeleteIndividual(ctx context.Context, id string) error
	DeleteClient(ctx context.Context, id string) error

	// ListPublications descarga la colección independiente de publicaciones
	// para el join por clave foránea del contador.
	ListPublications(ctx context.Context) ([]map[string]any, error)

	ListInvitations(ctx context.Context) ([]map[string]any, error)
	// CreateInvitation emite un código nuevo; email puede ser vacío.
	CreateInvitation(ctx context.Context, email string) (map[string]any, error)
	DeleteInvitation(ctx context.Context, id string) error
}
