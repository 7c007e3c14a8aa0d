// Package export produce las representaciones descargables del roster
// fusionado: XML para intercambio y PDF para impresión.
package export

import (
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/jhoicas/Directorio-api/internal/domain/entity"
)

// RosterXML serializa el roster a un documento XML indentado.
func RosterXML(roster []entity.RosterEntity, generatedAt time.Time) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("directorio")
	root.CreateAttr("generado", generatedAt.UTC().Format(time.RFC3339))
	root.CreateAttr("total", strconv.Itoa(len(roster)))

	for _, e := range roster {
		node := root.CreateElement("entidad")
		node.CreateAttr("id", e.ID)
		node.CreateAttr("tipo", string(e.Kind))

		node.CreateElement("nombre").SetText(e.DisplayName)
		if e.Email != "" {
			node.CreateElement("email").SetText(e.Email)
		}
		node.CreateElement("rol").SetText(string(e.Role))
		node.CreateElement("estado").SetText(e.State.String())
		node.CreateElement("publicaciones").SetText(strconv.Itoa(e.PublicationCount))
		if e.CreatedAt != nil {
			node.CreateElement("creado").SetText(e.CreatedAt.UTC().Format(time.RFC3339))
		}
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}
