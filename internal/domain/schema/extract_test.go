package schema_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Directorio-api/internal/domain/schema"
)

// El valor puede venir en el registro raíz o dentro de un wrapper anidado;
// el resultado debe ser el mismo.
func TestExtract_WrapperAnidado(t *testing.T) {
	v, ok := schema.Extract(map[string]any{
		"cliente": map[string]any{"nombre": "Ana"},
	}, []string{"name", "nombre"})
	require.True(t, ok)
	assert.Equal(t, "Ana", v)
}

func TestExtract_OrdenDeAlias(t *testing.T) {
	record := map[string]any{"nombre": "Ana", "name": "Anne"}
	v, ok := schema.Extract(record, []string{"name", "nombre"})
	require.True(t, ok)
	assert.Equal(t, "Anne", v, "debe ganar el primer alias de la lista")
}

// Dos registros que representan la misma persona bajo alias distintos deben
// normalizar idéntico.
func TestExtract_AliasEquivalentes(t *testing.T) {
	r1 := map[string]any{"email": "ana@x.co"}
	r2 := map[string]any{"profile": map[string]any{"correo": "ana@x.co"}}

	v1, ok1 := schema.Extract(r1, schema.EmailAliases)
	v2, ok2 := schema.Extract(r2, schema.EmailAliases)
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, v1, v2)
}

func TestExtract_AusenciaSilenciosa(t *testing.T) {
	v, ok := schema.Extract(map[string]any{"otro": "x"}, []string{"name", "nombre"})
	assert.False(t, ok)
	assert.Empty(t, v)

	// Registro vacío y valores nil o en blanco tampoco deben fallar.
	_, ok = schema.Extract(map[string]any{}, schema.NameAliases)
	assert.False(t, ok)
	_, ok = schema.Extract(map[string]any{"name": nil}, schema.NameAliases)
	assert.False(t, ok)
	_, ok = schema.Extract(map[string]any{"name": "   "}, schema.NameAliases)
	assert.False(t, ok, "un valor solo-espacios cuenta como ausente")
}

func TestExtract_NumerosComoTexto(t *testing.T) {
	// Los números JSON llegan como float64; un id 7 debe extraerse como "7".
	v, ok := schema.Extract(map[string]any{"id": float64(7)}, schema.IDAliases)
	require.True(t, ok)
	assert.Equal(t, "7", v)
}

func TestFlatten_PrecedenciaDeWrappers(t *testing.T) {
	// "profile" va después de "user" en el orden fijo, así que pisa su valor.
	record := map[string]any{
		"user":    map[string]any{"city": "Bogotá"},
		"profile": map[string]any{"city": "Medellín"},
	}
	flat := schema.Flatten(record)
	assert.Equal(t, "Medellín", flat["city"])
}

func TestExtractTime_Formatos(t *testing.T) {
	cases := []struct {
		name   string
		record map[string]any
	}{
		{"RFC3339", map[string]any{"created_at": "2026-03-01T10:00:00Z"}},
		{"solo fecha", map[string]any{"fecha_creacion": "2026-03-01"}},
		{"epoch segundos", map[string]any{"created": float64(1772359200)}},
		{"epoch en string", map[string]any{"createdAt": "1772359200"}},
		{"wrapper anidado", map[string]any{"data": map[string]any{"created_at": "2026-03-01"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts, ok := schema.ExtractTime(tc.record, schema.CreatedAtAliases)
			require.True(t, ok)
			assert.Equal(t, 2026, ts.Year())
			assert.Equal(t, time.March, ts.Month())
		})
	}
}

func TestExtractTime_SinFechaResoluble(t *testing.T) {
	_, ok := schema.ExtractTime(map[string]any{"created_at": "no es fecha"}, schema.CreatedAtAliases)
	assert.False(t, ok)
	_, ok = schema.ExtractTime(map[string]any{}, schema.CreatedAtAliases)
	assert.False(t, ok)
}
