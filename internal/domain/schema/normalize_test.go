package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Directorio-api/internal/domain/entity"
	"github.com/jhoicas/Directorio-api/internal/domain/schema"
)

func TestNormalizeState_TokensDeBorrado(t *testing.T) {
	for _, raw := range []string{"SUSPENDIDO", "suspendido", "suspendído", "eliminado", "deleted", "removed", "borrado"} {
		assert.Equal(t, entity.Deleted, schema.NormalizeState(raw), "raw=%q", raw)
	}
}

func TestNormalizeState_Activo(t *testing.T) {
	assert.Equal(t, entity.Active, schema.NormalizeState("activo"))
	assert.Equal(t, entity.Active, schema.NormalizeState("ACTIVE"))
	assert.Equal(t, entity.Active, schema.NormalizeState(""), "vacío es Active por defecto")
	assert.Equal(t, entity.Active, schema.NormalizeState("   "))
}

// Texto no mapeado pasa capitalizado como variante Other: el conjunto de
// estados es abierto a propósito.
func TestNormalizeState_PasoDirecto(t *testing.T) {
	st := schema.NormalizeState("PENDIENTE")
	assert.Equal(t, entity.StateOther, st.Code)
	assert.Equal(t, "Pendiente", st.String())
	assert.False(t, st.IsActive())
	assert.False(t, st.IsDeleted())
}

func TestDeriveRole_Cliente(t *testing.T) {
	assert.Equal(t, entity.RoleClient, schema.DeriveRole(map[string]any{"rol": "CLIENTE"}))
	assert.Equal(t, entity.RoleClient, schema.DeriveRole(map[string]any{"type": "client"}))
	assert.Equal(t, entity.RoleClient, schema.DeriveRole(map[string]any{
		"roles": []any{map[string]any{"nombre": "Cliente premium"}},
	}))
}

// Las cuentas administrativas se muestran como Individual en este roster:
// decisión de producto, no un defecto del normalizador.
func TestDeriveRole_AdminColapsaEnIndividual(t *testing.T) {
	assert.Equal(t, entity.RoleIndividual, schema.DeriveRole(map[string]any{"rol": "administrador"}))
	assert.Equal(t, entity.RoleIndividual, schema.DeriveRole(map[string]any{
		"roles": []any{"superuser"},
	}))
}

func TestDeriveRole_Defecto(t *testing.T) {
	assert.Equal(t, entity.RoleIndividual, schema.DeriveRole(map[string]any{}))
	assert.Equal(t, entity.RoleIndividual, schema.DeriveRole(map[string]any{"rol": "usuario"}))
}

// Mismo rol bajo alias distintos debe clasificar idéntico.
func TestDeriveRole_AliasEquivalentes(t *testing.T) {
	r1 := map[string]any{"rol": "cliente"}
	r2 := map[string]any{"user": map[string]any{"user_type": "client"}}
	assert.Equal(t, schema.DeriveRole(r1), schema.DeriveRole(r2))
}

func TestIsPrivileged(t *testing.T) {
	cases := []struct {
		name   string
		record map[string]any
		want   bool
	}{
		{"flag booleano explícito", map[string]any{"is_admin": true}, true},
		{"flag en false no privilegia", map[string]any{"is_admin": false, "rol": "usuario"}, false},
		{"token en el rol", map[string]any{"rol": "Administrador"}, true},
		{"token en colección de roles", map[string]any{"roles": []any{"staff", "root"}}, true},
		{"token en el email", map[string]any{"email": "admin@empresa.co"}, true},
		{"token en texto anidado", map[string]any{"perfil": map[string]any{"descripcion": "superuser de la plataforma"}}, true},
		{"cuenta normal", map[string]any{"rol": "usuario", "email": "ana@x.co"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, schema.IsPrivileged(tc.record))
		})
	}
}
