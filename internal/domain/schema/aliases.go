package schema

// Listas de alias por atributo semántico. Cada backend nombra sus campos a
// su manera (y mezcla español e inglés); extender la cobertura es añadir un
// alias aquí, sin tocar la lógica de extracción.
var (
	NameAliases = []string{
		"name", "nombre", "full_name", "fullName", "display_name",
		"displayName", "nombre_completo", "razon_social", "razonSocial",
		"username",
	}
	EmailAliases = []string{
		"email", "correo", "mail", "email_address", "correo_electronico",
	}
	PhoneAliases = []string{
		"phone", "telefono", "tel", "celular", "mobile", "phone_number",
	}
	CityAliases = []string{
		"city", "ciudad", "municipio", "localidad",
	}
	BirthdateAliases = []string{
		"birthdate", "fecha_nacimiento", "fechaNacimiento", "birth_date", "dob",
	}
	StateAliases = []string{
		"state", "estado", "status", "situacion",
	}
	RoleAliases = []string{
		"role", "rol", "perfil", "tipo", "type", "user_type", "userType",
	}
	IDAliases = []string{
		"id", "_id", "uuid", "user_id", "userId", "usuario_id",
		"client_id", "clientId", "cliente_id", "clienteId", "codigo",
	}
	CreatedAtAliases = []string{
		"created_at", "createdAt", "fecha_creacion", "fechaCreacion",
		"fecha_registro", "fechaRegistro", "fecha_alta", "registered_at",
		"created",
	}
)
