// Package clipboard copia texto al portapapeles del sistema invocando la
// utilidad nativa disponible (pbcopy, wl-copy o xclip). Es una comodidad de
// operador, siempre de mejor esfuerzo: quien lo llama decide si el fallo
// importa.
//
// Se apoya en os/exec porque no hay utilidad de portapapeles portable sin
// enlazar con las librerías gráficas de cada plataforma.
package clipboard

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/jhoicas/Directorio-api/internal/application/ports"
)

var _ ports.Clipboard = (*Copier)(nil)

// candidates utilidades de portapapeles en orden de preferencia.
var candidates = [][]string{
	{"pbcopy"},
	{"wl-copy"},
	{"xclip", "-selection", "clipboard"},
}

// Copier localiza la utilidad de portapapeles una sola vez, en la
// construcción.
type Copier struct {
	cmd []string
}

// New detecta la utilidad disponible. Sin ninguna, Copy devolverá error en
// cada llamada.
func New() *Copier {
	for _, c := range candidates {
		if _, err := exec.LookPath(c[0]); err == nil {
			return &Copier{cmd: c}
		}
	}
	return &Copier{}
}

// Copy envía el texto por stdin a la utilidad detectada.
func (c *Copier) Copy(text string) error {
	if len(c.cmd) == 0 {
		return fmt.Errorf("sin utilidad de portapapeles disponible")
	}
	cmd := exec.Command(c.cmd[0], c.cmd[1:]...)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", c.cmd[0], err)
	}
	return nil
}
