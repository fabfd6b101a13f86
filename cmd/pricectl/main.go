// Command pricectl ejecuta un ciclo completo formulario → petición → vista contra el
// servicio de recomendación de precios e imprime el resultado.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:  "pricectl",
		Usage: "consulta la recomendación de precio para un conjunto de parámetros",
		Commands: []*cli.Command{
			predictCommand(),
			{
				Name:  "version",
				Usage: "muestra la versión",
				Action: func(c *cli.Context) error {
					fmt.Fprintln(c.App.Writer, "pricectl "+version)
					return nil
				},
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
