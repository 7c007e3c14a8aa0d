// Package publications calcula cuántas publicaciones pertenecen a cada
// entidad del roster. Los esquemas de origen no los controla este servicio y
// varían por backend: la cadena de fallbacks acepta algunos falsos negativos
// a cambio de no romperse ante derivas de esquema.
package publications

import (
	"math"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/jhoicas/Directorio-api/internal/domain/entity"
	"github.com/jhoicas/Directorio-api/internal/domain/schema"
)

// Alias de conteo directo sobre la propia entidad.
var countAliases = []string{
	"publicaciones_count", "publications_count", "publication_count",
	"posts_count", "post_count", "pubs", "num_publicaciones",
	"total_publicaciones", "total_posts",
}

// Alias de campos array con las publicaciones embebidas.
var arrayAliases = []string{"publicaciones", "posts"}

// namePattern nombres de campo que huelen a conteo de publicaciones, para la
// búsqueda estructural del paso 3.
var namePattern = regexp.MustCompile(`(?i)(public|post|count|total|items|list)`)

// maxSearchDepth profundidad máxima de la búsqueda estructural.
const maxSearchDepth = 2

// Tally conteo de publicaciones por dueño, separado por tipo de dueño.
type Tally struct {
	Clients map[string]int
	Users   map[string]int
}

// OwnerKind tipo de dueño resuelto para un registro de publicación.
type OwnerKind int

const (
	OwnerNone OwnerKind = iota
	OwnerClient
	OwnerUser
)

// OwnerResolver estrategia conectable para resolver el dueño de un registro
// de publicación. Las listas de alias cambian cuando el backend cambia; el
// algoritmo de conteo, no.
type OwnerResolver interface {
	Owner(pub map[string]any) (id string, kind OwnerKind, ok bool)
}

// AliasOwnerResolver resuelve el dueño probando alias de client-id primero y
// de user-id después (solo si ningún client-id aplicó).
type AliasOwnerResolver struct {
	ClientAliases []string
	UserAliases   []string
}

// NewAliasOwnerResolver estrategia por defecto con los alias conocidos.
func NewAliasOwnerResolver() *AliasOwnerResolver {
	return &AliasOwnerResolver{
		ClientAliases: []string{
			"client_id", "clientId", "cliente_id", "clienteId", "id_cliente",
		},
		UserAliases: []string{
			"user_id", "userId", "usuario_id", "usuarioId", "id_usuario",
			"owner_id", "ownerId", "author_id", "autor_id",
		},
	}
}

func (r *AliasOwnerResolver) Owner(pub map[string]any) (string, OwnerKind, bool) {
	if id, ok := schema.Extract(pub, r.ClientAliases); ok {
		return NormalizeID(id), OwnerClient, true
	}
	if id, ok := schema.Extract(pub, r.UserAliases); ok {
		return NormalizeID(id), OwnerUser, true
	}
	return "", OwnerNone, false
}

// NormalizeID canonicaliza ids numéricos para que "7" y 7 hagan join
// idéntico. Los ids no numéricos pasan recortados tal cual.
func NormalizeID(raw string) string {
	s := strings.TrimSpace(raw)
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return s
}

// Counter aplica la cadena de fallbacks de conteo.
type Counter struct {
	resolver OwnerResolver
}

// NewCounter construye el contador; con resolver nil usa la estrategia de
// alias por defecto.
func NewCounter(resolver OwnerResolver) *Counter {
	if resolver == nil {
		resolver = NewAliasOwnerResolver()
	}
	return &Counter{resolver: resolver}
}

// BuildTally recorre la colección de publicaciones una sola vez y acumula el
// conteo por dueño. Un registro sin dueño resoluble no aporta a ningún
// conteo: se descarta en silencio, no es un error.
func (c *Counter) BuildTally(pubs []map[string]any) Tally {
	t := Tally{Clients: map[string]int{}, Users: map[string]int{}}
	for _, pub := range pubs {
		id, kind, ok := c.resolver.Owner(pub)
		if !ok {
			continue
		}
		switch kind {
		case OwnerClient:
			t.Clients[id]++
		case OwnerUser:
			t.Users[id]++
		}
	}
	return t
}

// Count devuelve el número de publicaciones de la entidad, en orden estricto
// de fallbacks y deteniéndose en el primer acierto:
//
//  1. campo numérico directo (o string numérico) bajo un alias de conteo
//  2. longitud de un array de publicaciones embebido
//  3. búsqueda estructural acotada por nombre de campo
//  4. join contra la colección independiente (el tally)
//
// id es el id crudo de la entidad, sin prefijo de namespacing.
func (c *Counter) Count(record map[string]any, id string, kind entity.Kind, tally Tally) int {
	flat := schema.Flatten(record)

	for _, a := range countAliases {
		if v, ok := flat[a]; ok {
			if n, ok := asCount(v); ok {
				return n
			}
		}
	}

	for _, a := range arrayAliases {
		if list, ok := flat[a].([]any); ok && len(list) > 0 {
			return len(list)
		}
	}

	if n, ok := searchStructure(flat, 0, map[uintptr]bool{}); ok {
		return n
	}

	key := NormalizeID(id)
	if kind == entity.KindClient {
		return tally.Clients[key]
	}
	return tally.Users[key]
}

// searchStructure búsqueda en profundidad sobre la estructura anidada de la
// entidad: gana el primer campo cuyo nombre casa con namePattern y cuyo
// valor es numérico o un array no vacío. Máximo dos niveles, con guarda de
// ciclos por identidad del mapa y claves en orden estable para que el
// resultado sea determinista.
func searchStructure(node map[string]any, depth int, seen map[uintptr]bool) (int, bool) {
	ptr := reflect.ValueOf(node).Pointer()
	if seen[ptr] {
		return 0, false
	}
	seen[ptr] = true

	keys := make([]string, 0, len(node))
	for k := range node {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := node[k]
		if namePattern.MatchString(k) {
			if n, ok := asCount(v); ok {
				return n, true
			}
			if list, ok := v.([]any); ok && len(list) > 0 {
				return len(list), true
			}
		}
		if child, ok := v.(map[string]any); ok && depth < maxSearchDepth {
			if n, ok := searchStructure(child, depth+1, seen); ok {
				return n, true
			}
		}
	}
	return 0, false
}

// asCount interpreta un valor como conteo positivo. El cero se trata como
// no-acierto para que la cadena siga hacia el join.
func asCount(v any) (int, bool) {
	switch t := v.(type) {
	case float64:
		if t > 0 && t == math.Trunc(t) {
			return int(t), true
		}
	case int:
		if t > 0 {
			return t, true
		}
	case int64:
		if t > 0 {
			return int(t), true
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil && n > 0 {
			return n, true
		}
	}
	return 0, false
}
