// Package invitation reconcilia el ledger de invitaciones, repartido entre
// el almacén remoto autoritativo y la caché local, que es la única que
// conserva el código en claro creado en la emisión.
package invitation

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Directorio-api/internal/application/ports"
	"github.com/jhoicas/Directorio-api/internal/domain/entity"
	"github.com/jhoicas/Directorio-api/internal/domain/schema"
	"github.com/jhoicas/Directorio-api/internal/infrastructure/localcache"
	"github.com/jhoicas/Directorio-api/pkg/logger"
)

// Alias del código secreto en la respuesta de emisión.
var codeAliases = []string{"code", "codigo", "invitation_code", "invitationCode", "token"}

var (
	emailAliases     = []string{"email", "correo", "mail"}
	createdByAliases = []string{"created_by", "createdBy", "creado_por", "creator", "autor"}
	activeAliases    = []string{"active", "activa", "activo", "enabled", "valid"}
	consumedAliases  = []string{"consumed", "consumida", "used", "usada", "claimed", "redeemed"}
)

// futureSkew margen contra artefactos de semilla o de desfase de reloj.
const futureSkew = 60 * time.Second

// Service operaciones del ledger de invitaciones con semántica de doble
// escritura sobre remoto y caché local.
type Service struct {
	api   ports.DirectoryAPI
	cache *localcache.Store
	clip  ports.Clipboard
	log   *logger.Logger
	now   func() time.Time
	newID func() string
}

// NewService construye el reconciliador.
func NewService(api ports.DirectoryAPI, cache *localcache.Store, clip ports.Clipboard, log *logger.Logger) *Service {
	return &Service{
		api:   api,
		cache: cache,
		clip:  clip,
		log:   log,
		now:   time.Now,
		newID: func() string { return entity.LocalIDPrefix + uuid.NewString() },
	}
}

// Create emite una invitación en el backend y antepone la copia local, la
// única que lleva el código en claro, con la atribución del operador en
// sesión. Copiar el código al portapapeles es mejor esfuerzo: un fallo se
// registra y se descarta.
//
// Es una mutación explícita del usuario: el fallo remoto sí se propaga.
func (s *Service) Create(ctx context.Context, email string) (*entity.Invitation, error) {
	resp, err := s.api.CreateInvitation(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("emitir invitación: %w", err)
	}

	inv := entity.Invitation{
		Email:     email,
		CreatedAt: s.now(),
		Active:    true,
	}
	inv.Code, _ = schema.Extract(resp, codeAliases)
	if id, ok := schema.Extract(resp, schema.IDAliases); ok {
		inv.ID = id
	} else {
		inv.ID = s.newID()
	}
	if sess, err := s.cache.Session(ctx); err == nil && sess != nil {
		inv.CreatedBy = sess.DisplayName
	}

	if err := s.cache.PrependInvitation(ctx, inv); err != nil {
		s.log.Warn().Err(err).Str("id", inv.ID).
			Msg("no se pudo persistir la invitación en la caché local")
	}
	if inv.Code != "" {
		if err := s.clip.Copy(inv.Code); err != nil {
			s.log.Debug().Err(err).Msg("copia al portapapeles fallida")
		}
	}
	return &inv, nil
}

// List descarga el ledger remoto, lo proyecta a la forma local y lo
// reconcilia con la caché por id; el resultado fusionado se persiste de
// vuelta. Si el remoto falla, devuelve la caché tal cual, en silencio:
// disponibilidad sobre consistencia.
func (s *Service) List(ctx context.Context) ([]entity.Invitation, error) {
	local, err := s.cache.Invitations(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("caché local ilegible; se parte de vacío")
		local = nil
	}

	remoteRaw, err := s.api.ListInvitations(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("ledger remoto no disponible; se sirve la caché local")
		return local, nil
	}

	remote := make([]entity.Invitation, 0, len(remoteRaw))
	for _, rec := range remoteRaw {
		remote = append(remote, mapRemote(rec))
	}

	merged := Merge(local, remote)
	if err := s.cache.SaveInvitations(ctx, merged); err != nil {
		s.log.Warn().Err(err).Msg("no se pudo persistir el ledger fusionado")
	}
	return merged, nil
}

// Revoke borra la invitación. El borrado remoto se intenta solo para ids con
// forma de servidor y su fallo se registra sin bloquear: la caché local se
// recorta incondicionalmente para que la UI nunca vuelva a mostrar una
// invitación revocada. La reconciliación eventual del remoto es un hueco
// asumido.
func (s *Service) Revoke(ctx context.Context, inv entity.Invitation) error {
	if inv.IsServerIssued() {
		if err := s.api.DeleteInvitation(ctx, inv.ID); err != nil {
			s.log.Error().Err(err).Str("id", inv.ID).
				Msg("borrado remoto de la invitación fallido; se recorta la caché igualmente")
		}
	}
	return s.cache.RemoveInvitation(ctx, inv.ID)
}

// Visible filtra el ledger para la UI: descarta filas placeholder sin ningún
// campo con significado, descarta fechas de creación a más de 60 s en el
// futuro (artefactos de semilla o de reloj) y conserva solo las activas.
func Visible(all []entity.Invitation, now time.Time) []entity.Invitation {
	out := make([]entity.Invitation, 0, len(all))
	for _, inv := range all {
		if inv.IsPlaceholder() {
			continue
		}
		if !inv.CreatedAt.IsZero() && inv.CreatedAt.After(now.Add(futureSkew)) {
			continue
		}
		if !inv.Active {
			continue
		}
		out = append(out, inv)
	}
	return out
}

// Merge deduplica local y remoto por id. En colisión la copia local gana —
// solo ella puede llevar el código en claro — pero el estado de consumo lo
// dicta el remoto, y los campos vacíos locales se rellenan desde él. El
// resultado queda ordenado por fecha de creación descendente.
func Merge(local, remote []entity.Invitation) []entity.Invitation {
	out := make([]entity.Invitation, len(local))
	copy(out, local)

	index := make(map[string]int, len(out))
	for i, inv := range out {
		index[inv.ID] = i
	}

	for _, r := range remote {
		i, ok := index[r.ID]
		if !ok {
			index[r.ID] = len(out)
			out = append(out, r)
			continue
		}
		out[i].Active = r.Active
		if out[i].Email == "" {
			out[i].Email = r.Email
		}
		if out[i].CreatedBy == "" {
			out[i].CreatedBy = r.CreatedBy
		}
		if out[i].CreatedAt.IsZero() {
			out[i].CreatedAt = r.CreatedAt
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// mapRemote proyecta una entrada remota a la forma local. El endpoint de
// listado nunca devuelve códigos en claro, así que Code queda vacío.
func mapRemote(rec map[string]any) entity.Invitation {
	var inv entity.Invitation
	inv.ID, _ = schema.Extract(rec, schema.IDAliases)
	inv.Email, _ = schema.Extract(rec, emailAliases)
	inv.CreatedBy, _ = schema.Extract(rec, createdByAliases)
	if t, ok := schema.ExtractTime(rec, schema.CreatedAtAliases); ok {
		inv.CreatedAt = t
	}
	inv.Active = remoteActive(rec)
	return inv
}

// remoteActive lee el flag de actividad, o su inverso de consumo, el que
// esté presente; sin ninguno, la entrada se asume activa.
func remoteActive(rec map[string]any) bool {
	flat := schema.Flatten(rec)
	for _, k := range activeAliases {
		if b, ok := asBool(flat[k]); ok {
			return b
		}
	}
	for _, k := range consumedAliases {
		if b, ok := asBool(flat[k]); ok {
			return !b
		}
	}
	return true
}

func asBool(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		switch t {
		case "true", "1", "si", "sí":
			return true, true
		case "false", "0", "no":
			return false, true
		}
	case float64:
		return t != 0, true
	}
	return false, false
}
