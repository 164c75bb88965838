// devtoken emite un JWT firmado con JWT_SECRET para probar la API en desarrollo.
// En producción los tokens los emite el proveedor de identidad.
//
// Uso: go run ./cmd/devtoken [rol] [user_id]
// Rol por defecto admin; roles válidos: admin, operador, consulta.
package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/jhoicas/LogFlow-api/pkg/config"
	pkgjwt "github.com/jhoicas/LogFlow-api/pkg/jwt"
)

func main() {
	role := "admin"
	if len(os.Args) > 1 {
		role = os.Args[1]
	}
	switch role {
	case "admin", "operador", "consulta":
	default:
		fmt.Fprintf(os.Stderr, "Rol inválido %q\n", role)
		os.Exit(2)
	}
	userID := uuid.New().String()
	if len(os.Args) > 2 {
		userID = os.Args[2]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	tok, err := pkgjwt.Generate(cfg.JWT.Secret, userID, role, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
