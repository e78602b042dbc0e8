package utils

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// CargarConfiguracion lee un archivo JSON y lo decodifica al tipo pedido.
// A diferencia de un módulo ejecutable, acá no se puede abortar el proceso:
// cualquier problema se devuelve como error al que embebe la biblioteca.
func CargarConfiguracion[T any](ruta string) (*T, error) {
	slog.Debug("Cargando configuración", "ruta", ruta)

	absPath, err := filepath.Abs(ruta)
	if err != nil {
		return nil, fmt.Errorf("error obteniendo ruta absoluta de %s: %w", ruta, err)
	}

	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("error abriendo archivo de configuración %s: %w", absPath, err)
	}
	defer file.Close()

	// Decodificar JSON directamente al tipo genérico
	var config T
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return nil, fmt.Errorf("error decodificando configuración %s: %w", absPath, err)
	}

	slog.Debug("Configuración cargada", "ruta", absPath)
	return &config, nil
}
