// @title         hr-trainer API
// @version       1.0
// @description   Treinamento de entrevistas de atendimento: chat com um cliente simulado por IA, avaliação automática e painel de RH.
// @BasePath      /api
// @schemes       http
// @host          localhost:8080
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hr-trainer",
	Short: "Mock-interview trainer HTTP API",
	Long:  "hr-trainer runs customer-service mock interviews against an AI persona and scores them with an AI rubric evaluation.",
	// no subcommand: serve
	RunE: runServe,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
