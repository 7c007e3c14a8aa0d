// Package schema normaliza registros crudos del backend heredado del
// directorio. El backend no contrata nombres de campo: cada atributo
// semántico se localiza probando una lista ordenada de alias sobre el
// registro aplanado. La ausencia de un campo es un caso normal y silencioso,
// nunca un error.
package schema

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// wrapperKeys sub-objetos que el backend anida con frecuencia alrededor de
// los datos reales. Se fusionan superficialmente sobre el registro en este
// orden fijo: los wrappers posteriores pisan a los anteriores.
var wrapperKeys = []string{
	"data", "attributes",
	"user", "usuario",
	"account", "cuenta",
	"client", "cliente",
	"profile", "perfil",
	"contact", "contacto",
}

// Flatten aplana un registro crudo fusionando superficialmente los wrappers
// conocidos. No recurre: solo un nivel de anidación, que es lo que el
// backend produce en la práctica.
func Flatten(record map[string]any) map[string]any {
	flat := make(map[string]any, len(record))
	for k, v := range record {
		flat[k] = v
	}
	for _, w := range wrapperKeys {
		nested, ok := record[w].(map[string]any)
		if !ok {
			continue
		}
		for k, v := range nested {
			flat[k] = v
		}
	}
	return flat
}

// Extract devuelve el primer valor cuyo alias está presente y cuya
// stringificación recortada no es vacía. (_, false) si ningún alias aplica.
func Extract(record map[string]any, aliases []string) (string, bool) {
	flat := Flatten(record)
	for _, a := range aliases {
		v, ok := flat[a]
		if !ok || v == nil {
			continue
		}
		s := strings.TrimSpace(Stringify(v))
		if s != "" {
			return s, true
		}
	}
	return "", false
}

// Stringify convierte un valor crudo a texto. Los números JSON llegan como
// float64; los enteros se formatean sin parte decimal para que "7" y 7
// produzcan el mismo texto.
func Stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == math.Trunc(t) && math.Abs(t) < 1e15 {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
