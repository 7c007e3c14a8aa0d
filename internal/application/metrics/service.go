// Package metrics calcula los contadores de población completa del
// directorio, deliberadamente desacoplados del filtro que el roster tenga
// aplicado: el requisito de producto son contadores globales.
package metrics

import (
	"context"
	"time"

	"github.com/jhoicas/Directorio-api/internal/application/ports"
	"github.com/jhoicas/Directorio-api/internal/domain/entity"
	"github.com/jhoicas/Directorio-api/internal/domain/schema"
	"github.com/jhoicas/Directorio-api/pkg/logger"
)

// newWindow ventana del contador de altas recientes.
const newWindow = 30 * 24 * time.Hour

// GlobalMetrics contadores de población completa.
type GlobalMetrics struct {
	ActiveIndividuals int `json:"active_individuals"`
	ActiveClients     int `json:"active_clients"`
	DeletedClients    int `json:"deleted_clients"`
	// NewWithin30Days cuenta solo cuentas individuales (decisión de alcance
	// explícita: los clientes se descargan para los otros contadores pero
	// quedan fuera de este).
	NewWithin30Days int `json:"new_within_30_days"`
}

// Service agregador de métricas globales.
type Service struct {
	api ports.DirectoryAPI
	log *logger.Logger
	now func() time.Time
}

// NewService construye el agregador.
func NewService(api ports.DirectoryAPI, log *logger.Logger) *Service {
	return &Service{api: api, log: log, now: time.Now}
}

type listResult struct {
	records []map[string]any
	err     error
}

// ComputeGlobalMetrics descarga la población completa de ambas colecciones
// (incluyendo borrados lógicos) en paralelo con join all-settled y calcula
// los cuatro contadores. La fuente que falla aporta cero, no aborta.
//
// Un registro sin fecha de creación resoluble queda fuera del contador de
// ventana pero sigue contando en los contadores por estado. La deduplicación
// por id con namespacing evita el doble conteo si un mismo id apareciera en
// ambas colecciones.
func (s *Service) ComputeGlobalMetrics(ctx context.Context) GlobalMetrics {
	indCh := make(chan listResult, 1)
	cliCh := make(chan listResult, 1)

	go func() {
		r, err := s.api.ListIndividuals(ctx, true)
		indCh <- listResult{r, err}
	}()
	go func() {
		r, err := s.api.ListClients(ctx, true)
		cliCh <- listResult{r, err}
	}()

	ind := <-indCh
	cli := <-cliCh
	if ind.err != nil {
		s.log.Warn().Err(ind.err).Msg("métricas sin fuente de individuos")
		ind.records = nil
	}
	if cli.err != nil {
		s.log.Warn().Err(cli.err).Msg("métricas sin fuente de clientes")
		cli.records = nil
	}

	now := s.now()
	windowStart := now.Add(-newWindow)
	seen := make(map[string]bool)
	var m GlobalMetrics

	for _, rec := range ind.records {
		id, _ := schema.Extract(rec, schema.IDAliases)
		if id != "" {
			if seen[id] {
				continue
			}
			seen[id] = true
		}
		stateText, _ := schema.Extract(rec, schema.StateAliases)
		if schema.NormalizeState(stateText).IsActive() {
			m.ActiveIndividuals++
		}
		if t, ok := schema.ExtractTime(rec, schema.CreatedAtAliases); ok {
			if !t.Before(windowStart) && !t.After(now) {
				m.NewWithin30Days++
			}
		}
	}

	for _, rec := range cli.records {
		id, _ := schema.Extract(rec, schema.IDAliases)
		if id != "" {
			nsID := entity.ClientIDPrefix + id
			if seen[nsID] {
				continue
			}
			seen[nsID] = true
		}
		stateText, _ := schema.Extract(rec, schema.StateAliases)
		state := schema.NormalizeState(stateText)
		switch {
		case state.IsActive():
			m.ActiveClients++
		case state.IsDeleted():
			m.DeletedClients++
		}
	}
	return m
}
