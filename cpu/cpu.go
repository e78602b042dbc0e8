// Package cpu implementa el planificador de corto plazo del simulador:
// un único slot de ejecución más una cola de listos FIFO.
package cpu

import (
	"github.com/sisoputnfrba/tp-2025-2c-LosCuervosXeneizes/utils"
)

// NingunProceso es el PID centinela que indica CPU ociosa.
const NingunProceso = 0

type CPU struct {
	ejecutando int
	colaListos []int
}

// Nueva crea una CPU ociosa con la cola de listos vacía.
func Nueva() *CPU {
	return &CPU{ejecutando: NingunProceso, colaListos: []int{}}
}

// Encolar agrega el proceso al final de la cola de listos.
func (c *CPU) Encolar(pid int) {
	c.colaListos = append(c.colaListos, pid)
}

// Despachar pasa la cabeza de la cola de listos a ejecución.
// Es idempotente: si ya hay un proceso ejecutando no hace nada.
func (c *CPU) Despachar() {
	if c.ejecutando != NingunProceso || len(c.colaListos) == 0 {
		return
	}

	c.ejecutando, c.colaListos = utils.Desencolar(c.colaListos)
	utils.InfoLog.Debug("Proceso despachado a la CPU", "pid", c.ejecutando)
}

// InterrupcionDeTimer manda el proceso en ejecución al final de la cola y
// despacha la cabeza. Con la cola vacía el proceso conserva la CPU.
func (c *CPU) InterrupcionDeTimer() {
	if len(c.colaListos) == 0 {
		return
	}

	c.colaListos = append(c.colaListos, c.ejecutando)
	c.ejecutando = NingunProceso
	c.Despachar()
}

// DesalojarEjecutando deja la CPU ociosa sin tocar la cola de listos.
// Lo usa el kernel cuando el proceso termina o se bloquea.
func (c *CPU) DesalojarEjecutando() {
	c.ejecutando = NingunProceso
}

// RemoverDeCola elimina todas las apariciones del PID en la cola de listos.
func (c *CPU) RemoverDeCola(pid int) {
	c.colaListos = utils.Remover(c.colaListos, pid)
}

// Ejecutando devuelve el PID en la CPU, o NingunProceso si está ociosa.
func (c *CPU) Ejecutando() int {
	return c.ejecutando
}

// ColaListos devuelve una copia de la cola de listos, cabeza primero.
func (c *CPU) ColaListos() []int {
	copia := make([]int, len(c.colaListos))
	copy(copia, c.colaListos)
	return copia
}
