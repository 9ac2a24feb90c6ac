// @title           Categorías API
// @version         1.0
// @description     API REST de categorías jerárquicas por usuario.
// @BasePath        /
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Escribir "Bearer" seguido de un espacio y el token JWT.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
