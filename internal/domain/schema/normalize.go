package schema

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/Directorio-api/internal/domain/entity"
)

// Tokens de clasificación. Se comparan contra texto plegado (minúsculas y
// sin tildes), de modo que "CLIENTE", "cliente" y "Clienté" son equivalentes.
var (
	clientTokens = []string{"client", "cliente"}
	adminTokens  = []string{
		"admin", "administrador", "administrator",
		"superuser", "super_user", "super user", "root", "staff",
	}
	// El orden importa: "inactivo" contiene "activ", así que los tokens de
	// borrado se evalúan primero.
	deletedTokens = []string{"suspend", "elimin", "delet", "remov", "borrad"}
)

// adminFlagKeys campos booleanos explícitos que marcan cuentas administrativas.
var adminFlagKeys = []string{
	"admin", "is_admin", "isAdmin", "es_admin",
	"superuser", "is_superuser", "is_staff",
}

// foldText minúsculas sin marcas diacríticas, para clasificar el texto libre
// del backend ("SUSPENDIDO" ≡ "suspendído").
func foldText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

func containsAny(text string, tokens []string) bool {
	for _, tok := range tokens {
		if strings.Contains(text, tok) {
			return true
		}
	}
	return false
}

// DeriveRole clasifica una cuenta en {Individual, Client} a partir de todo el
// texto de rol presente en el registro, incluidas colecciones anidadas de
// roles. Un token de cliente gana; un token administrativo se colapsa en
// Individual (las cuentas admin se muestran como individuos en este roster,
// decisión de producto); el resto es Individual.
func DeriveRole(record map[string]any) entity.Role {
	text := foldText(roleText(record))
	if containsAny(text, clientTokens) {
		return entity.RoleClient
	}
	return entity.RoleIndividual
}

// IsPrivileged true si la cuenta tiene un flag booleano de admin activado o
// si su texto buscable (roles, colecciones de roles, valores de texto del
// registro, email) contiene un token administrativo o de superusuario.
//
// Nota: los individuos se reportan siempre privilegiados por política; esa
// regla la aplica el fusionador del roster, no esta heurística.
func IsPrivileged(record map[string]any) bool {
	flat := Flatten(record)
	for _, key := range adminFlagKeys {
		if b, ok := flat[key].(bool); ok && b {
			return true
		}
	}
	var sb strings.Builder
	sb.WriteString(roleText(record))
	sb.WriteByte(' ')
	collectStrings(&sb, record, 0)
	if email, ok := Extract(record, EmailAliases); ok {
		sb.WriteByte(' ')
		sb.WriteString(email)
	}
	return containsAny(foldText(sb.String()), adminTokens)
}

// NormalizeState clasifica texto libre de estado. Tokens de suspensión o
// borrado → Deleted; tokens de actividad → Active; vacío → Active (defecto);
// texto no mapeado pasa capitalizado tal cual como variante Other — el
// conjunto de estados es abierto a propósito.
func NormalizeState(raw string) entity.State {
	text := strings.TrimSpace(raw)
	if text == "" {
		return entity.Active
	}
	folded := foldText(text)
	switch {
	case containsAny(folded, deletedTokens):
		return entity.Deleted
	case strings.Contains(folded, "activ"):
		return entity.Active
	default:
		return entity.OtherState(capitalize(text))
	}
}

// roleText concatena todo el texto de rol del registro: campos escalares de
// rol más entradas de colecciones de roles (strings u objetos con nombre).
func roleText(record map[string]any) string {
	flat := Flatten(record)
	var parts []string
	for _, a := range RoleAliases {
		if v, ok := flat[a]; ok && v != nil {
			if s, isStr := v.(string); !isStr || s != "" {
				parts = append(parts, Stringify(v))
			}
		}
	}
	for _, key := range []string{"roles", "perfiles", "groups", "grupos"} {
		switch coll := flat[key].(type) {
		case string:
			parts = append(parts, coll)
		case []any:
			for _, item := range coll {
				switch t := item.(type) {
				case string:
					parts = append(parts, t)
				case map[string]any:
					if name, ok := Extract(t, []string{"name", "nombre", "role", "rol"}); ok {
						parts = append(parts, name)
					}
				}
			}
		}
	}
	return strings.Join(parts, " ")
}

// collectStrings acumula los valores string del registro hasta dos niveles de
// profundidad. Es el fallback "JSON crudo" de la búsqueda de privilegios,
// pero sobre valores: incluir los nombres de clave haría que un flag
// `"admin": false` marcara la cuenta como privilegiada.
func collectStrings(sb *strings.Builder, node map[string]any, depth int) {
	if depth > 2 {
		return
	}
	for _, v := range node {
		switch t := v.(type) {
		case string:
			sb.WriteString(t)
			sb.WriteByte(' ')
		case map[string]any:
			collectStrings(sb, t, depth+1)
		case []any:
			for _, item := range t {
				if s, ok := item.(string); ok {
					sb.WriteString(s)
					sb.WriteByte(' ')
				} else if m, ok := item.(map[string]any); ok {
					collectStrings(sb, m, depth+1)
				}
			}
		}
	}
}

// capitalize primera runa en mayúscula, resto en minúscula ("SUSPENDIDO" no
// llega aquí; "pendiente" → "Pendiente").
func capitalize(s string) string {
	runes := []rune(strings.ToLower(s))
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
