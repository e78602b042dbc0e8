// Package simos simula el estado visible desde el kernel de un sistema
// operativo de una CPU, varios discos y memoria paginada. Cada operación
// es una transición de estado sincrónica y atómica: no hay concurrencia
// real, ni E/S real, ni código de usuario. El driver externo serializa
// todas las llamadas e inspecciona el estado con las consultas Get*.
package simos

import (
	"fmt"
	"sync"

	"github.com/sisoputnfrba/tp-2025-2c-LosCuervosXeneizes/cpu"
	"github.com/sisoputnfrba/tp-2025-2c-LosCuervosXeneizes/discos"
	"github.com/sisoputnfrba/tp-2025-2c-LosCuervosXeneizes/kernel"
	"github.com/sisoputnfrba/tp-2025-2c-LosCuervosXeneizes/memoria"
	"github.com/sisoputnfrba/tp-2025-2c-LosCuervosXeneizes/utils"
)

// NoProcess es el PID centinela de CPU o disco ocioso.
const NoProcess = cpu.NingunProceso

// FileReadRequest es la solicitud que sirve o espera un disco.
type FileReadRequest = discos.FileReadRequest

// MemoryItem es un marco ocupado de la RAM.
type MemoryItem = memoria.MemoryItem

// Metricas acumula contadores de la instancia desde su creación.
type Metricas struct {
	ProcesosCreados            int
	FallosDePagina             uint64
	Desalojos                  uint64
	TrabajosDeDiscoCompletados int
}

// SimOS es una instancia del simulador. Cada instancia es independiente;
// el mutex solo hace segura una instancia embebida, las operaciones en sí
// son transiciones secuenciales.
type SimOS struct {
	mu sync.Mutex

	procesos *kernel.TablaProcesos
	cpu      *cpu.CPU
	memoria  *memoria.Administrador
	discos   *discos.Administrador

	procesosCreados     int
	trabajosCompletados int
}

// New crea un simulador con la cantidad de discos, RAM total en bytes y
// tamaño de página en bytes indicados.
func New(numberOfDisks int, amountOfRAM uint64, pageSize uint64) (*SimOS, error) {
	if err := validarConfiguracion(numberOfDisks, amountOfRAM, pageSize); err != nil {
		return nil, err
	}

	utils.InfoLog.Info("Simulador inicializado",
		"discos", numberOfDisks, "ram", amountOfRAM, "tamanio_pagina", pageSize)

	return &SimOS{
		procesos: kernel.NuevaTabla(),
		cpu:      cpu.Nueva(),
		memoria:  memoria.NuevoAdministrador(amountOfRAM, pageSize),
		discos:   discos.NuevoAdministrador(numberOfDisks),
	}, nil
}

// NewProcess crea un proceso de nivel superior y lo encola. Si la CPU
// estaba ociosa el proceso nuevo pasa a ejecutar.
func (s *SimOS) NewProcess() {
	s.mu.Lock()
	defer s.mu.Unlock()

	pid := s.procesos.CrearProceso()
	s.procesosCreados++
	s.cpu.Encolar(pid)
	s.cpu.Despachar()
}

// SimFork hace que el proceso en ejecución forkee un hijo, que queda al
// final de la cola de listos. El hijo nunca pasa directo a la CPU.
func (s *SimOS) SimFork() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	padre := s.cpu.Ejecutando()
	if padre == NoProcess {
		return ErrNoRunningProcess
	}

	hijo := s.procesos.ForkearProceso(padre)
	s.procesosCreados++
	s.cpu.Encolar(hijo)
	return nil
}

// SimExit termina el proceso en ejecución: baja de la CPU, libera sus
// marcos, purga sus solicitudes de disco pendientes, termina en cascada a
// sus descendientes, resuelve la relación con el padre (lo despierta si
// esperaba, o queda zombie) y redespacha.
func (s *SimOS) SimExit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pid := s.cpu.Ejecutando()
	if pid == NoProcess {
		return ErrNoRunningProcess
	}

	s.cpu.DesalojarEjecutando()
	s.procesos.TerminarProceso(pid, s.cpu, s.memoria, s.discos)
	s.cpu.Despachar()
	return nil
}

// SimWait hace que el proceso en ejecución espere a un hijo. Con un hijo
// zombie disponible lo cosecha y sigue ejecutando; si no, se bloquea y la
// CPU pasa al siguiente de la cola de listos.
func (s *SimOS) SimWait() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pid := s.cpu.Ejecutando()
	if pid == NoProcess {
		return ErrNoRunningProcess
	}

	if _, bloqueado := s.procesos.EsperarProceso(pid); bloqueado {
		s.cpu.DesalojarEjecutando()
		s.cpu.Despachar()
	}
	return nil
}

// TimerInterrupt desaloja al proceso en ejecución al final de la cola de
// listos. Con la cola vacía el proceso conserva la CPU.
func (s *SimOS) TimerInterrupt() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cpu.Ejecutando() == NoProcess {
		return ErrNoRunningProcess
	}

	s.cpu.InterrupcionDeTimer()
	return nil
}

// DiskReadRequest encola una lectura del proceso en ejecución sobre el
// disco dado. El proceso deja la CPU incondicionalmente, aunque la cola de
// listos esté vacía.
func (s *SimOS) DiskReadRequest(diskNumber int, fileName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pid := s.cpu.Ejecutando()
	if pid == NoProcess {
		return ErrNoRunningProcess
	}

	if err := s.discos.Solicitar(pid, diskNumber, fileName); err != nil {
		return err
	}

	utils.InfoLog.Info(fmt.Sprintf("(%d) - Bloqueado por IO: disco %d, archivo %s", pid, diskNumber, fileName))
	s.cpu.DesalojarEjecutando()
	s.cpu.Despachar()
	return nil
}

// DiskJobCompleted informa que el disco terminó la solicitud en servicio.
// El proceso servido vuelve a la cola de listos, salvo que haya sido
// terminado en cascada mientras el disco lo servía: en ese caso el PID se
// descarta. Con el disco ocioso la operación no tiene efecto.
func (s *SimOS) DiskJobCompleted(diskNumber int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	estado, err := s.discos.Estado(diskNumber)
	if err != nil {
		return err
	}
	if estado.PID == NoProcess {
		return nil
	}

	servido, err := s.discos.CompletarTrabajo(diskNumber)
	if err != nil {
		return err
	}
	s.trabajosCompletados++
	utils.InfoLog.Info(fmt.Sprintf("(%d) - Fin de IO: disco %d", servido, diskNumber))

	if s.procesos.ListoParaEjecutar(servido) {
		s.cpu.Encolar(servido)
		s.cpu.Despachar()
	} else {
		utils.InfoLog.Info(fmt.Sprintf("(%d) - Fin de IO descartado: el proceso ya no existe", servido))
	}
	return nil
}

// AccessMemoryAddress resuelve un acceso del proceso en ejecución a una
// dirección lógica, cargando la página si hace falta y refrescando su
// recencia en el orden LRU.
func (s *SimOS) AccessMemoryAddress(address uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pid := s.cpu.Ejecutando()
	if pid == NoProcess {
		return ErrNoRunningProcess
	}

	s.memoria.Acceder(pid, address)
	return nil
}

// GetCPU devuelve el PID del proceso en ejecución, o NoProcess.
func (s *SimOS) GetCPU() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cpu.Ejecutando()
}

// GetReadyQueue devuelve una copia de la cola de listos, cabeza primero.
func (s *SimOS) GetReadyQueue() []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cpu.ColaListos()
}

// GetMemory devuelve los marcos ocupados ordenados por número de marco
// ascendente. Los zombies no ocupan memoria.
func (s *SimOS) GetMemory() []MemoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.memoria.Ocupados()
}

// GetDisk devuelve la solicitud que sirve el disco, o la solicitud vacía
// (PID 0, nombre vacío) si está ocioso.
func (s *SimOS) GetDisk(diskNumber int) (FileReadRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.discos.Estado(diskNumber)
}

// GetDiskQueue devuelve una copia de la cola del disco, próxima a servir
// primero.
func (s *SimOS) GetDiskQueue(diskNumber int) ([]FileReadRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.discos.Cola(diskNumber)
}

// Metricas devuelve una copia de los contadores de la instancia.
func (s *SimOS) Metricas() Metricas {
	s.mu.Lock()
	defer s.mu.Unlock()

	fallos, desalojos := s.memoria.Estadisticas()
	return Metricas{
		ProcesosCreados:            s.procesosCreados,
		FallosDePagina:             fallos,
		Desalojos:                  desalojos,
		TrabajosDeDiscoCompletados: s.trabajosCompletados,
	}
}
