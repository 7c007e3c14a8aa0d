// Package restapi implementa el puerto DirectoryAPI contra el backend HTTP
// heredado del directorio. El backend no contrata nombres de campo ni la
// forma del envoltorio de sus colecciones, así que el cliente decodifica con
// tolerancia y entrega registros crudos sin interpretar.
//
// Usa net/http de la stdlib; no requiere librerías de terceros.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/Directorio-api/internal/application/ports"
	"github.com/jhoicas/Directorio-api/internal/domain"
)

var _ ports.DirectoryAPI = (*Client)(nil)

// wrapperCollectionKeys claves bajo las que el backend suele envolver un
// array de resultados cuando no lo devuelve desnudo.
var wrapperCollectionKeys = []string{
	"data", "items", "results", "rows", "list",
	"usuarios", "users", "clientes", "clients",
	"publicaciones", "publications", "invitaciones", "invitations",
}

// Config parámetros del cliente.
type Config struct {
	BaseURL string
	Token   string // Bearer token; vacío = sin autenticación
	Timeout time.Duration
}

// Client cliente HTTP del backend del directorio.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient construye el cliente. Timeout cero aplica 15 s por defecto.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) ListIndividuals(ctx context.Context, includeDeleted bool) ([]map[string]any, error) {
	return c.list(ctx, "/usuarios", includeDeleted)
}

func (c *Client) ListClients(ctx context.Context, includeDeleted bool) ([]map[string]any, error) {
	return c.list(ctx, "/clientes", includeDeleted)
}

func (c *Client) ListPublications(ctx context.Context) ([]map[string]any, error) {
	return c.list(ctx, "/publicaciones", false)
}

func (c *Client) ListInvitations(ctx context.Context) ([]map[string]any, error) {
	return c.list(ctx, "/invitaciones", false)
}

func (c *Client) GetIndividual(ctx context.Context, id string) (map[string]any, error) {
	return c.object(ctx, http.MethodGet, "/usuarios/"+url.PathEscape(id), nil)
}

func (c *Client) GetClient(ctx context.Context, id string) (map[string]any, error) {
	return c.object(ctx, http.MethodGet, "/clientes/"+url.PathEscape(id), nil)
}

func (c *Client) DeleteIndividual(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/usuarios/"+url.PathEscape(id), nil)
	return err
}

func (c *Client) DeleteClient(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/clientes/"+url.PathEscape(id), nil)
	return err
}

func (c *Client) CreateInvitation(ctx context.Context, email string) (map[string]any, error) {
	var payload any
	if email != "" {
		payload = map[string]string{"email": email}
	} else {
		payload = map[string]string{}
	}
	return c.object(ctx, http.MethodPost, "/invitaciones", payload)
}

func (c *Client) DeleteInvitation(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/invitaciones/"+url.PathEscape(id), nil)
	return err
}

// list descarga una colección, pidiendo los borrados lógicos si aplica.
func (c *Client) list(ctx context.Context, path string, includeDeleted bool) ([]map[string]any, error) {
	if includeDeleted {
		path += "?include_deleted=true"
	}
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return decodeCollection(body)
}

// object ejecuta la petición y decodifica un objeto JSON suelto.
func (c *Client) object(ctx context.Context, method, path string, payload any) (map[string]any, error) {
	body, err := c.do(ctx, method, path, payload)
	if err != nil {
		return nil, err
	}
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, fmt.Errorf("decodificar respuesta de %s: %w", path, err)
	}
	return obj, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", domain.ErrRemoteUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: leer respuesta de %s: %v", domain.ErrRemoteUnavailable, path, err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("%w: %s %s devolvió %d", domain.ErrRemoteUnavailable, method, path, resp.StatusCode)
	}
	return body, nil
}

// decodeCollection acepta tanto un array JSON desnudo como un objeto
// envoltorio con el array bajo una clave conocida. Las entradas que no son
// objetos se descartan en silencio.
func decodeCollection(body []byte) ([]map[string]any, error) {
	var asList []any
	if err := json.Unmarshal(body, &asList); err == nil {
		return onlyObjects(asList), nil
	}

	var asObject map[string]any
	if err := json.Unmarshal(body, &asObject); err != nil {
		return nil, fmt.Errorf("decodificar colección: %w", err)
	}
	for _, key := range wrapperCollectionKeys {
		if list, ok := asObject[key].([]any); ok {
			return onlyObjects(list), nil
		}
	}
	// Objeto sin array reconocible: colección vacía, no un error.
	return nil, nil
}

func onlyObjects(list []any) []map[string]any {
	out := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}
