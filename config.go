package simos

import (
	"fmt"

	"github.com/sisoputnfrba/tp-2025-2c-LosCuervosXeneizes/utils"
)

// Config define la configuración del simulador.
type Config struct {
	CantidadDiscos int    `json:"CANTIDAD_DISCOS"`
	TamanioMemoria uint64 `json:"TAMANIO_MEMORIA"`
	TamanioPagina  uint64 `json:"TAMANIO_PAGINA"`
	LogLevel       string `json:"LOG_LEVEL,omitempty"`
}

// ConfigDesdeArchivo carga la configuración desde un archivo JSON.
func ConfigDesdeArchivo(ruta string) (*Config, error) {
	return utils.CargarConfiguracion[Config](ruta)
}

// NewDesdeConfig construye el simulador a partir de una configuración,
// inicializando el logger con el nivel pedido.
func NewDesdeConfig(cfg *Config) (*SimOS, error) {
	if cfg.LogLevel != "" {
		utils.InicializarLogger(cfg.LogLevel, "SimOS")
	}
	return New(cfg.CantidadDiscos, cfg.TamanioMemoria, cfg.TamanioPagina)
}

func validarConfiguracion(cantidadDiscos int, cantidadRAM uint64, tamanioPagina uint64) error {
	if cantidadDiscos < 0 {
		return fmt.Errorf("%w: cantidad de discos negativa (%d)", ErrInvalidConfiguration, cantidadDiscos)
	}
	if tamanioPagina == 0 {
		return fmt.Errorf("%w: tamaño de página cero", ErrInvalidConfiguration)
	}
	if tamanioPagina > cantidadRAM {
		return fmt.Errorf("%w: tamaño de página (%d) mayor que la RAM (%d)", ErrInvalidConfiguration, tamanioPagina, cantidadRAM)
	}
	return nil
}
