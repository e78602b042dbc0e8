// Package discos administra los N discos del simulador: cada disco tiene
// un slot "sirviendo" y una cola FIFO de solicitudes de lectura pendientes.
package discos

import (
	"errors"
	"fmt"

	"github.com/sisoputnfrba/tp-2025-2c-LosCuervosXeneizes/utils"
)

// ErrFueraDeRango se devuelve cuando el número de disco no existe.
var ErrFueraDeRango = errors.New("número de disco fuera de rango")

// FileReadRequest es una solicitud de lectura de archivo. El valor cero
// (PID 0, nombre vacío) significa disco ocioso.
type FileReadRequest struct {
	PID      int
	FileName string
}

type disco struct {
	sirviendo FileReadRequest
	cola      []FileReadRequest
}

type Administrador struct {
	discos []disco
}

// NuevoAdministrador crea los discos 0..cantidad-1, todos ociosos.
func NuevoAdministrador(cantidad int) *Administrador {
	return &Administrador{discos: make([]disco, cantidad)}
}

// Cantidad devuelve el número de discos configurado.
func (a *Administrador) Cantidad() int {
	return len(a.discos)
}

func (a *Administrador) validar(numero int) error {
	if numero < 0 || numero >= len(a.discos) {
		return fmt.Errorf("disco %d: %w", numero, ErrFueraDeRango)
	}
	return nil
}

// Solicitar encola una lectura para el proceso. Si el disco está ocioso la
// solicitud pasa directo al slot de servicio; si no, al final de la cola.
func (a *Administrador) Solicitar(pid int, numero int, archivo string) error {
	if err := a.validar(numero); err != nil {
		return err
	}

	solicitud := FileReadRequest{PID: pid, FileName: archivo}
	d := &a.discos[numero]

	if d.sirviendo.PID == 0 {
		d.sirviendo = solicitud
		utils.InfoLog.Debug("Disco comienza a servir", "disco", numero, "pid", pid, "archivo", archivo)
	} else {
		d.cola = append(d.cola, solicitud)
		utils.InfoLog.Debug("Solicitud encolada en disco", "disco", numero, "pid", pid, "archivo", archivo)
	}
	return nil
}

// CompletarTrabajo termina la solicitud en servicio y devuelve su PID.
// Promueve la cabeza de la cola al slot, o deja el disco ocioso si la cola
// está vacía. Con el disco ya ocioso devuelve 0.
func (a *Administrador) CompletarTrabajo(numero int) (int, error) {
	if err := a.validar(numero); err != nil {
		return 0, err
	}

	d := &a.discos[numero]
	servido := d.sirviendo.PID
	d.sirviendo = FileReadRequest{}

	if len(d.cola) > 0 {
		d.sirviendo, d.cola = utils.Desencolar(d.cola)
	}

	return servido, nil
}

// Purgar elimina de todas las colas las solicitudes pendientes del proceso,
// preservando el orden de las que sobreviven. El slot en servicio no se
// toca: esa solicitud se drena recién cuando el disco reporte completarla.
func (a *Administrador) Purgar(pid int) {
	for i := range a.discos {
		d := &a.discos[i]
		d.cola = utils.Filtrar(d.cola, func(s FileReadRequest) bool {
			return s.PID != pid
		})
	}
}

// Estado devuelve una copia del slot en servicio del disco.
func (a *Administrador) Estado(numero int) (FileReadRequest, error) {
	if err := a.validar(numero); err != nil {
		return FileReadRequest{}, err
	}
	return a.discos[numero].sirviendo, nil
}

// Cola devuelve una copia de la cola del disco, próxima a servir primero.
func (a *Administrador) Cola(numero int) ([]FileReadRequest, error) {
	if err := a.validar(numero); err != nil {
		return nil, err
	}

	copia := make([]FileReadRequest, len(a.discos[numero].cola))
	copy(copia, a.discos[numero].cola)
	return copia, nil
}
