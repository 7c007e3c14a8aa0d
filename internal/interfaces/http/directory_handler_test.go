package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Directorio-api/internal/application/dto"
	"github.com/jhoicas/Directorio-api/internal/application/invitation"
	"github.com/jhoicas/Directorio-api/internal/application/metrics"
	"github.com/jhoicas/Directorio-api/internal/application/publications"
	"github.com/jhoicas/Directorio-api/internal/application/roster"
	"github.com/jhoicas/Directorio-api/internal/infrastructure/export"
	"github.com/jhoicas/Directorio-api/internal/infrastructure/localcache"
	apphttp "github.com/jhoicas/Directorio-api/internal/interfaces/http"
	"github.com/jhoicas/Directorio-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

// fakeDirectoryAPI backend en memoria para los tests de los handlers.
type fakeDirectoryAPI struct {
	individuals []map[string]any
	clients     []map[string]any
	deleted     []string
}

func (f *fakeDirectoryAPI) ListIndividuals(_ context.Context, _ bool) ([]map[string]any, error) {
	return f.individuals, nil
}
func (f *fakeDirectoryAPI) ListClients(_ context.Context, _ bool) ([]map[string]any, error) {
	return f.clients, nil
}
func (f *fakeDirectoryAPI) ListPublications(_ context.Context) ([]map[string]any, error) {
	return nil, nil
}
func (f *fakeDirectoryAPI) GetIndividual(_ context.Context, _ string) (map[string]any, error) {
	return nil, nil
}
func (f *fakeDirectoryAPI) GetClient(_ context.Context, _ string) (map[string]any, error) {
	return nil, nil
}
func (f *fakeDirectoryAPI) DeleteIndividual(_ context.Context, id string) error {
	f.deleted = append(f.deleted, "individual:"+id)
	return nil
}
func (f *fakeDirectoryAPI) DeleteClient(_ context.Context, id string) error {
	f.deleted = append(f.deleted, "client:"+id)
	return nil
}
func (f *fakeDirectoryAPI) ListInvitations(_ context.Context) ([]map[string]any, error) {
	return nil, nil
}
func (f *fakeDirectoryAPI) CreateInvitation(_ context.Context, _ string) (map[string]any, error) {
	return map[string]any{"id": "10", "code": "WXYZ"}, nil
}
func (f *fakeDirectoryAPI) DeleteInvitation(_ context.Context, _ string) error { return nil }

type memKV struct{ data map[string][]byte }

func (m *memKV) Get(_ context.Context, key string) ([]byte, error) { return m.data[key], nil }
func (m *memKV) Set(_ context.Context, key string, v []byte) error {
	m.data[key] = v
	return nil
}

type noopClipboard struct{}

func (noopClipboard) Copy(string) error { return nil }

// buildAPIApp monta la aplicación completa con el router real sobre fakes.
func buildAPIApp(t *testing.T, api *fakeDirectoryAPI) *fiber.App {
	t.Helper()
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	actor := localcache.NewActor(&memKV{data: map[string][]byte{}})
	t.Cleanup(actor.Close)
	store := localcache.NewStore(actor, log)

	counter := publications.NewCounter(publications.NewAliasOwnerResolver())
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		RosterSvc:     roster.NewService(api, counter, log),
		MetricsSvc:    metrics.NewService(api, log),
		InvitationSvc: invitation.NewService(api, store, noopClipboard{}, log),
		API:           api,
		PDF:           export.NewRosterPDFGenerator(),
		JWTSecret:     testJWTSecret,
	})
	return app
}

func authedRequest(t *testing.T, method, target string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("Authorization", tokenForRole(t, "admin"))
	return req
}

// ──────────────────────────────────────────────────────────────────────────────
// Directorio
// ──────────────────────────────────────────────────────────────────────────────

func TestDirectory_ListFiltraPorEstado(t *testing.T) {
	api := &fakeDirectoryAPI{
		individuals: []map[string]any{
			{"id": "1", "nombre": "Ana", "estado": "activo"},
			{"id": "2", "nombre": "Luis", "estado": "eliminado"},
		},
		clients: []map[string]any{
			{"id": "9", "razon_social": "Acme SAS", "estado": "activo"},
		},
	}
	app := buildAPIApp(t, api)

	resp, err := app.Test(authedRequest(t, http.MethodGet, "/api/directory/"), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.DirectoryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, 2, body.Total, "por defecto solo se listan cuentas activas")
	assert.Equal(t, "1", body.Entries[0].ID, "individuos primero")
	assert.Equal(t, "client-9", body.Entries[1].ID, "los clientes llevan id con namespacing")
}

func TestDirectory_ListEstadoDeleted(t *testing.T) {
	api := &fakeDirectoryAPI{
		individuals: []map[string]any{
			{"id": "1", "nombre": "Ana", "estado": "activo"},
			{"id": "2", "nombre": "Luis", "estado": "eliminado"},
		},
	}
	app := buildAPIApp(t, api)

	resp, err := app.Test(authedRequest(t, http.MethodGet, "/api/directory/?state=deleted"), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body dto.DirectoryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, 1, body.Total)
	assert.Equal(t, "2", body.Entries[0].ID)
	assert.Equal(t, "Deleted", body.Entries[0].State)
}

func TestDirectory_EstadoInvalidoRetorna400(t *testing.T) {
	app := buildAPIApp(t, &fakeDirectoryAPI{})
	resp, err := app.Test(authedRequest(t, http.MethodGet, "/api/directory/?state=zombi"), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// El conteo de publicaciones se omite en el wire para cuentas privilegiadas;
// los individuos siempre lo son.
func TestDirectory_ConteoOmitidoParaPrivilegiados(t *testing.T) {
	api := &fakeDirectoryAPI{
		individuals: []map[string]any{
			{"id": "1", "nombre": "Ana", "estado": "activo", "publicaciones": float64(4)},
		},
		clients: []map[string]any{
			{"id": "9", "razon_social": "Acme SAS", "estado": "activo", "publicaciones": float64(3)},
		},
	}
	app := buildAPIApp(t, api)

	resp, err := app.Test(authedRequest(t, http.MethodGet, "/api/directory/"), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body dto.DirectoryResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, 2, body.Total)

	assert.Nil(t, body.Entries[0].PublicationCount, "individuo: conteo suprimido")
	require.NotNil(t, body.Entries[1].PublicationCount, "cliente no privilegiado: conteo visible")
	assert.Equal(t, 3, *body.Entries[1].PublicationCount)
}

// El borrado de un cliente con id namespaced debe llegar al backend sin el
// prefijo.
func TestDirectory_DeleteClientQuitaPrefijo(t *testing.T) {
	api := &fakeDirectoryAPI{}
	app := buildAPIApp(t, api)

	resp, err := app.Test(authedRequest(t, http.MethodDelete, "/api/directory/clients/client-9"), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, []string{"client:9"}, api.deleted)
}

func TestDirectory_SinTokenRetorna401(t *testing.T) {
	app := buildAPIApp(t, &fakeDirectoryAPI{})
	req := httptest.NewRequest(http.MethodGet, "/api/directory/", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Métricas
// ──────────────────────────────────────────────────────────────────────────────

func TestMetrics_Global(t *testing.T) {
	api := &fakeDirectoryAPI{
		individuals: []map[string]any{
			{"id": "1", "estado": "activo"},
			{"id": "2", "estado": "eliminado"},
		},
		clients: []map[string]any{
			{"id": "9", "estado": "activo"},
			{"id": "10", "estado": "eliminado"},
		},
	}
	app := buildAPIApp(t, api)

	resp, err := app.Test(authedRequest(t, http.MethodGet, "/api/directory/metrics"), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.MetricsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 1, body.ActiveIndividuals)
	assert.Equal(t, 1, body.ActiveClients)
	assert.Equal(t, 1, body.DeletedClients)
}

// ──────────────────────────────────────────────────────────────────────────────
// Invitaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestInvitations_CrearYListar(t *testing.T) {
	app := buildAPIApp(t, &fakeDirectoryAPI{})

	createResp, err := app.Test(authedRequest(t, http.MethodPost, "/api/invitations/"), -1)
	require.NoError(t, err)
	defer createResp.Body.Close()
	require.Equal(t, http.StatusCreated, createResp.StatusCode)

	var created dto.InvitationResponse
	require.NoError(t, json.NewDecoder(createResp.Body).Decode(&created))
	assert.Equal(t, "10", created.ID)
	assert.Equal(t, "WXYZ", created.Code)

	listResp, err := app.Test(authedRequest(t, http.MethodGet, "/api/invitations/"), -1)
	require.NoError(t, err)
	defer listResp.Body.Close()
	require.Equal(t, http.StatusOK, listResp.StatusCode)

	var list []dto.InvitationResponse
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, "WXYZ", list[0].Code, "la copia local conserva el código en claro")
}

func TestInvitations_Revocar(t *testing.T) {
	app := buildAPIApp(t, &fakeDirectoryAPI{})

	createResp, err := app.Test(authedRequest(t, http.MethodPost, "/api/invitations/"), -1)
	require.NoError(t, err)
	createResp.Body.Close()

	delResp, err := app.Test(authedRequest(t, http.MethodDelete, "/api/invitations/10"), -1)
	require.NoError(t, err)
	defer delResp.Body.Close()
	assert.Equal(t, http.StatusNoContent, delResp.StatusCode)

	listResp, err := app.Test(authedRequest(t, http.MethodGet, "/api/invitations/"), -1)
	require.NoError(t, err)
	defer listResp.Body.Close()
	var list []dto.InvitationResponse
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&list))
	assert.Empty(t, list, "la invitación revocada no vuelve a aparecer")
}
