// Comando issue_token emite un JWT de operador para llamar a la API.
//
//	go run ./cmd/issue_token -user bodega-01 -role bodeguero
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/reposicion-api/pkg/config"
	"github.com/jhoicas/reposicion-api/pkg/jwt"
)

func main() {
	userID := flag.String("user", "", "identificador del operador (obligatorio)")
	role := flag.String("role", jwt.RoleBodeguero, "admin | bodeguero | gerente")
	minutes := flag.Int("minutes", 0, "vigencia en minutos (default JWT_EXPIRATION_MINUTES)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	if *userID == "" {
		fmt.Fprintln(os.Stderr, "-user es obligatorio")
		os.Exit(2)
	}
	switch *role {
	case jwt.RoleAdmin, jwt.RoleBodeguero, jwt.RoleGerente:
	default:
		fmt.Fprintf(os.Stderr, "rol desconocido: %q\n", *role)
		os.Exit(2)
	}
	exp := cfg.JWT.Expiration
	if *minutes > 0 {
		exp = *minutes
	}

	token, err := jwt.Generate(cfg.JWT.Secret, *userID, *role, cfg.JWT.Issuer, exp)
	if err != nil {
		fmt.Fprintln(os.Stderr, "generar token:", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
