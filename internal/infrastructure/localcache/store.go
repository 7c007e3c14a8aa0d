package localcache

import (
	"context"
	"encoding/json"

	"github.com/jhoicas/Directorio-api/internal/domain/entity"
	"github.com/jhoicas/Directorio-api/pkg/logger"
)

// Store acceso tipado a las dos claves fijas de la caché local: el ledger de
// invitaciones y el descriptor de sesión del operador.
//
// Un valor almacenado que no parsea se trata como caché vacía, nunca como
// error fatal: la caché no es el sistema de registro.
type Store struct {
	actor *Actor
	log   *logger.Logger
}

// NewStore construye el acceso tipado sobre el actor.
func NewStore(actor *Actor, log *logger.Logger) *Store {
	return &Store{actor: actor, log: log}
}

// Invitations devuelve el ledger local, más reciente primero.
func (s *Store) Invitations(ctx context.Context) ([]entity.Invitation, error) {
	raw, err := s.actor.Get(ctx, KeyInvitations)
	if err != nil {
		return nil, err
	}
	return s.decodeInvitations(raw), nil
}

// SaveInvitations reemplaza el ledger local completo.
func (s *Store) SaveInvitations(ctx context.Context, list []entity.Invitation) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return s.actor.Set(ctx, KeyInvitations, raw)
}

// PrependInvitation antepone una invitación al ledger (más reciente primero)
// en una sola operación del actor.
func (s *Store) PrependInvitation(ctx context.Context, inv entity.Invitation) error {
	return s.actor.Update(ctx, KeyInvitations, func(current []byte) ([]byte, error) {
		list := s.decodeInvitations(current)
		return json.Marshal(append([]entity.Invitation{inv}, list...))
	})
}

// RemoveInvitation recorta del ledger local la entrada con el id dado.
func (s *Store) RemoveInvitation(ctx context.Context, id string) error {
	return s.actor.Update(ctx, KeyInvitations, func(current []byte) ([]byte, error) {
		list := s.decodeInvitations(current)
		kept := list[:0]
		for _, inv := range list {
			if inv.ID != id {
				kept = append(kept, inv)
			}
		}
		return json.Marshal(kept)
	})
}

// Session devuelve el descriptor de sesión, o (nil, nil) si no hay sesión.
func (s *Store) Session(ctx context.Context) (*entity.Session, error) {
	raw, err := s.actor.Get(ctx, KeySession)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var sess entity.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		s.log.Warn().Err(err).Msg("descriptor de sesión corrupto; se trata como ausente")
		return nil, nil
	}
	return &sess, nil
}

// SaveSession persiste el descriptor de sesión del operador.
func (s *Store) SaveSession(ctx context.Context, sess entity.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.actor.Set(ctx, KeySession, raw)
}

func (s *Store) decodeInvitations(raw []byte) []entity.Invitation {
	if len(raw) == 0 {
		return nil
	}
	var list []entity.Invitation
	if err := json.Unmarshal(raw, &list); err != nil {
		s.log.Warn().Err(err).Msg("ledger local de invitaciones corrupto; se trata como vacío")
		return nil
	}
	return list
}
