package entity

// Session descriptor de la sesión del operador, escrito en la caché local al
// hacer login. La emisión de invitaciones lo lee para la atribución
// (created_by) de los códigos emitidos.
type Session struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Role        string `json:"role"`
}
