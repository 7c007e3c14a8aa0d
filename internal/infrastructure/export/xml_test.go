package export_test

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Directorio-api/internal/domain/entity"
	"github.com/jhoicas/Directorio-api/internal/infrastructure/export"
)

func TestRosterXML(t *testing.T) {
	created := time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)
	roster := []entity.RosterEntity{
		{
			ID:               "1",
			Kind:             entity.KindIndividual,
			DisplayName:      "Ana Gómez",
			Email:            "ana@x.co",
			Role:             entity.RoleIndividual,
			State:            entity.Active,
			PublicationCount: 2,
			CreatedAt:        &created,
		},
		{
			ID:          "client-9",
			Kind:        entity.KindClient,
			DisplayName: "Acme SAS",
			Role:        entity.RoleClient,
			State:       entity.OtherState("Pendiente"),
		},
	}

	data, err := export.RosterXML(roster, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(data))

	root := doc.SelectElement("directorio")
	require.NotNil(t, root)
	assert.Equal(t, "2", root.SelectAttrValue("total", ""))

	entidades := root.SelectElements("entidad")
	require.Len(t, entidades, 2)

	assert.Equal(t, "1", entidades[0].SelectAttrValue("id", ""))
	assert.Equal(t, "Ana Gómez", entidades[0].SelectElement("nombre").Text())
	assert.Equal(t, "Active", entidades[0].SelectElement("estado").Text())
	assert.Equal(t, "2026-02-10T08:00:00Z", entidades[0].SelectElement("creado").Text())

	assert.Equal(t, "client-9", entidades[1].SelectAttrValue("id", ""))
	assert.Nil(t, entidades[1].SelectElement("email"), "sin email no se emite el elemento")
	assert.Equal(t, "Pendiente", entidades[1].SelectElement("estado").Text(),
		"el estado no mapeado pasa tal cual")
}
