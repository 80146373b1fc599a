// Command config-schema writes the JSON Schema for gram.yml to a file, so
// editors with YAML language servers can validate project configs.
package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/grovetools/gram/config"
)

func main() {
	schemaBytes, err := config.GenerateSchema()
	if err != nil {
		log.Fatalf("Error generating schema: %v", err)
	}

	outputDir := "docs"
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		log.Fatalf("Error creating output directory: %v", err)
	}

	outputPath := filepath.Join(outputDir, "gram.schema.json")
	if err := os.WriteFile(outputPath, schemaBytes, 0644); err != nil {
		log.Fatalf("Error writing schema file: %v", err)
	}

	log.Printf("Wrote %s", outputPath)
}
