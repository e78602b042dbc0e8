package simos

import (
	"errors"

	"github.com/sisoputnfrba/tp-2025-2c-LosCuervosXeneizes/discos"
)

var (
	// ErrNoRunningProcess indica que la operación requiere un proceso
	// ejecutando y la CPU está ociosa.
	ErrNoRunningProcess = errors.New("no hay ningún proceso ejecutando en la CPU")

	// ErrDiskIndexOutOfRange indica un número de disco inexistente.
	ErrDiskIndexOutOfRange = discos.ErrFueraDeRango

	// ErrInvalidConfiguration indica parámetros de construcción inválidos.
	ErrInvalidConfiguration = errors.New("configuración inválida")
)
