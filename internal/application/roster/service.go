// Package roster fusiona las dos colecciones del backend (individuos y
// clientes) en un único roster normalizado para el directorio administrativo.
package roster

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Directorio-api/internal/application/ports"
	"github.com/jhoicas/Directorio-api/internal/application/publications"
	"github.com/jhoicas/Directorio-api/internal/domain/entity"
	"github.com/jhoicas/Directorio-api/internal/domain/schema"
	"github.com/jhoicas/Directorio-api/pkg/logger"
)

// Filter visibilidad de estado solicitada por el llamador del roster.
type Filter struct {
	// IncludeDeleted pide al backend incluir las filas con borrado lógico.
	IncludeDeleted bool
}

// Service construye el roster fusionado. No pagina ni ordena entre tipos:
// eso es asunto de la capa de presentación. El orden es lista-tras-lista,
// individuos primero.
type Service struct {
	api     ports.DirectoryAPI
	counter *publications.Counter
	log     *logger.Logger

	mu      sync.RWMutex
	current []entity.RosterEntity
	gate    fetchGate
}

// NewService construye el servicio del roster.
func NewService(api ports.DirectoryAPI, counter *publications.Counter, log *logger.Logger) *Service {
	return &Service{api: api, counter: counter, log: log}
}

type listResult struct {
	records []map[string]any
	err     error
}

// BuildRoster emite las tres descargas (individuos, clientes, publicaciones)
// en paralelo con join all-settled: la caída de una fuente no cancela las
// otras. La fuente que falla degrada a sublista vacía; la fusión nunca
// aborta por un fallo parcial.
func (s *Service) BuildRoster(ctx context.Context, filter Filter) []entity.RosterEntity {
	indCh := make(chan listResult, 1)
	cliCh := make(chan listResult, 1)
	pubCh := make(chan listResult, 1)

	go func() {
		r, err := s.api.ListIndividuals(ctx, filter.IncludeDeleted)
		indCh <- listResult{r, err}
	}()
	go func() {
		r, err := s.api.ListClients(ctx, filter.IncludeDeleted)
		cliCh <- listResult{r, err}
	}()
	go func() {
		r, err := s.api.ListPublications(ctx)
		pubCh <- listResult{r, err}
	}()

	ind := <-indCh
	cli := <-cliCh
	pub := <-pubCh

	if ind.err != nil {
		s.log.Warn().Err(ind.err).Msg("fuente de individuos caída; degradando a sublista vacía")
		ind.records = nil
	}
	if cli.err != nil {
		s.log.Warn().Err(cli.err).Msg("fuente de clientes caída; degradando a sublista vacía")
		cli.records = nil
	}
	if pub.err != nil {
		s.log.Warn().Err(pub.err).Msg("publicaciones no disponibles; el join contará cero")
		pub.records = nil
	}

	tally := s.counter.BuildTally(pub.records)
	roster := make([]entity.RosterEntity, 0, len(ind.records)+len(cli.records))
	seen := make(map[string]bool)

	for _, rec := range ind.records {
		e := s.normalize(rec, entity.KindIndividual, tally)
		if e.ID != "" && seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		roster = append(roster, e)
	}
	for _, rec := range cli.records {
		e := s.normalize(rec, entity.KindClient, tally)
		if e.ID != "" && seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		roster = append(roster, e)
	}
	return roster
}

// normalize proyecta un registro crudo a la entidad unificada del roster.
func (s *Service) normalize(rec map[string]any, kind entity.Kind, tally publications.Tally) entity.RosterEntity {
	rawID, _ := schema.Extract(rec, schema.IDAliases)
	id := rawID
	if kind == entity.KindClient && rawID != "" {
		id = entity.ClientIDPrefix + rawID
	}

	name, _ := schema.Extract(rec, schema.NameAliases)
	email, _ := schema.Extract(rec, schema.EmailAliases)
	stateText, _ := schema.Extract(rec, schema.StateAliases)

	privileged := schema.IsPrivileged(rec)
	if kind == entity.KindIndividual {
		// Política: todo individuo se reporta privilegiado para que la UI
		// suprima su conteo de publicaciones.
		privileged = true
	}

	var createdAt *time.Time
	if t, ok := schema.ExtractTime(rec, schema.CreatedAtAliases); ok {
		createdAt = &t
	}

	return entity.RosterEntity{
		ID:               id,
		Kind:             kind,
		DisplayName:      name,
		Email:            email,
		Role:             schema.DeriveRole(rec),
		State:            schema.NormalizeState(stateText),
		PublicationCount: s.counter.Count(rec, rawID, kind, tally),
		IsPrivileged:     privileged,
		CreatedAt:        createdAt,
		Raw:              rec,
	}
}

// Refresh reconstruye el snapshot del roster. Una descarga superada por otra
// emitida después no publica su resultado, sin importar en qué orden
// terminen: la guardia de secuencia descarta respuestas obsoletas.
// Devuelve true si el resultado quedó aplicado.
func (s *Service) Refresh(ctx context.Context, filter Filter) bool {
	seq := s.gate.begin()
	roster := s.BuildRoster(ctx, filter)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.gate.commit(seq) {
		return false
	}
	s.current = roster
	return true
}

// Current devuelve el último snapshot aplicado.
func (s *Service) Current() []entity.RosterEntity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.RosterEntity, len(s.current))
	copy(out, s.current)
	return out
}

// fetchGate guardia de secuencia monótona: solo la descarga emitida más
// recientemente puede publicar su resultado.
type fetchGate struct {
	mu     sync.Mutex
	issued uint64
}

func (g *fetchGate) begin() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.issued++
	return g.issued
}

// commit devuelve false si seq ya no es la última secuencia emitida.
func (g *fetchGate) commit(seq uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return seq == g.issued
}
