// Package kernel mantiene la tabla de procesos del simulador: el árbol
// padre/hijo, los estados zombie y esperando, y la terminación en cascada
// que coordina a la CPU, la memoria y los discos.
package kernel

import (
	"fmt"

	"github.com/sisoputnfrba/tp-2025-2c-LosCuervosXeneizes/cpu"
	"github.com/sisoputnfrba/tp-2025-2c-LosCuervosXeneizes/discos"
	"github.com/sisoputnfrba/tp-2025-2c-LosCuervosXeneizes/memoria"
	"github.com/sisoputnfrba/tp-2025-2c-LosCuervosXeneizes/utils"
)

// SinPadre es el PID centinela para los procesos de nivel superior.
const SinPadre = 0

// Proceso es la entrada de la tabla de procesos. Los hijos se guardan como
// PIDs en orden de fork, nunca como punteros: el árbol vive en la tabla.
type Proceso struct {
	PID           int
	PadrePID      int
	Hijos         []int
	EsZombie      bool
	EstaEsperando bool
}

func (p *Proceso) String() string {
	return fmt.Sprintf("Proceso{PID: %d, Padre: %d, Hijos: %v, Zombie: %t, Esperando: %t}",
		p.PID, p.PadrePID, p.Hijos, p.EsZombie, p.EstaEsperando)
}

// TablaProcesos asigna PIDs crecientes desde 1, sin reciclar.
type TablaProcesos struct {
	proximoPID int
	procesos   map[int]*Proceso
}

func NuevaTabla() *TablaProcesos {
	return &TablaProcesos{
		proximoPID: 1,
		procesos:   make(map[int]*Proceso),
	}
}

// CrearProceso da de alta un proceso sin padre y devuelve su PID.
func (t *TablaProcesos) CrearProceso() int {
	pid := t.proximoPID
	t.proximoPID++
	t.procesos[pid] = &Proceso{PID: pid, PadrePID: SinPadre}

	utils.InfoLog.Info(fmt.Sprintf("(%d) - Se crea el proceso", pid))
	return pid
}

// ForkearProceso da de alta un hijo del proceso dado y devuelve su PID.
func (t *TablaProcesos) ForkearProceso(padrePID int) int {
	pid := t.proximoPID
	t.proximoPID++
	t.procesos[pid] = &Proceso{PID: pid, PadrePID: padrePID}

	padre := t.procesos[padrePID]
	padre.Hijos = append(padre.Hijos, pid)

	utils.InfoLog.Info(fmt.Sprintf("(%d) - Se crea el proceso - Padre: %d", pid, padrePID))
	return pid
}

// TerminarProceso finaliza el proceso: libera sus marcos, purga sus
// solicitudes de disco pendientes, termina en cascada a todos sus
// descendientes y resuelve la relación con el padre. El desalojo de la CPU
// y el redespacho los hace el orquestador.
func (t *TablaProcesos) TerminarProceso(pid int, c *cpu.CPU, m *memoria.Administrador, d *discos.Administrador) {
	proceso := t.procesos[pid]

	m.Liberar(pid)
	d.Purgar(pid)
	t.terminarEnCascada(proceso, c, m, d)

	if proceso.PadrePID == SinPadre {
		delete(t.procesos, pid)
		utils.InfoLog.Info(fmt.Sprintf("(%d) - Finaliza el proceso", pid))
		return
	}

	padre := t.procesos[proceso.PadrePID]
	if padre.EstaEsperando {
		padre.EstaEsperando = false
		padre.Hijos = utils.Remover(padre.Hijos, pid)
		delete(t.procesos, pid)
		c.Encolar(padre.PID)
		utils.InfoLog.Info(fmt.Sprintf("(%d) - Finaliza el proceso - Despierta al padre %d", pid, padre.PID))
	} else {
		proceso.EsZombie = true
		utils.InfoLog.Info(fmt.Sprintf("(%d) - Finaliza el proceso - Queda zombie", pid))
	}
}

// terminarEnCascada destruye el subárbol de descendientes de raíz. La raíz
// misma no se toca: su destino lo decide TerminarProceso. Los descendientes
// no quedan zombies, se eliminan de la tabla directamente. Una solicitud de
// un descendiente que esté siendo servida por un disco no se cancela: se
// drena cuando el disco la complete y el PID devuelto se descarta.
func (t *TablaProcesos) terminarEnCascada(raiz *Proceso, c *cpu.CPU, m *memoria.Administrador, d *discos.Administrador) {
	for _, hijoPID := range raiz.Hijos {
		hijo := t.procesos[hijoPID]
		t.terminarEnCascada(hijo, c, m, d)

		m.Liberar(hijoPID)
		d.Purgar(hijoPID)
		c.RemoverDeCola(hijoPID)
		delete(t.procesos, hijoPID)

		utils.InfoLog.Info(fmt.Sprintf("(%d) - Finaliza el proceso - Terminación en cascada por %d", hijoPID, raiz.PID))
	}
	raiz.Hijos = nil
}

// EsperarProceso busca el primer hijo zombie en orden de fork. Si lo
// encuentra lo cosecha (lo saca de la lista de hijos y de la tabla) y el
// padre sigue ejecutando. Si no, marca al padre como esperando y el
// orquestador lo baja de la CPU.
func (t *TablaProcesos) EsperarProceso(pid int) (hijoCosechado int, bloqueado bool) {
	proceso := t.procesos[pid]

	for _, hijoPID := range proceso.Hijos {
		if t.procesos[hijoPID].EsZombie {
			proceso.Hijos = utils.Remover(proceso.Hijos, hijoPID)
			delete(t.procesos, hijoPID)
			utils.InfoLog.Info(fmt.Sprintf("(%d) - Cosecha al hijo zombie %d", pid, hijoPID))
			return hijoPID, false
		}
	}

	proceso.EstaEsperando = true
	utils.InfoLog.Info(fmt.Sprintf("(%d) - Se bloquea esperando un hijo", pid))
	return 0, true
}

// ListoParaEjecutar informa si el PID refiere a un proceso vivo que puede
// volver a la cola de listos: existe, no es zombie y no está esperando.
func (t *TablaProcesos) ListoParaEjecutar(pid int) bool {
	proceso, existe := t.procesos[pid]
	return existe && !proceso.EsZombie && !proceso.EstaEsperando
}

// Buscar devuelve una copia del proceso, con su lista de hijos copiada.
func (t *TablaProcesos) Buscar(pid int) (Proceso, bool) {
	proceso, existe := t.procesos[pid]
	if !existe {
		return Proceso{}, false
	}

	copia := *proceso
	copia.Hijos = make([]int, len(proceso.Hijos))
	copy(copia.Hijos, proceso.Hijos)
	return copia, true
}

// Cantidad devuelve cuántos procesos hay en la tabla, zombies incluidos.
func (t *TablaProcesos) Cantidad() int {
	return len(t.procesos)
}
