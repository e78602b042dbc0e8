// Package memoria administra la RAM paginada del simulador: tabla de
// marcos, tabla de páginas por (proceso, página) y reemplazo LRU global
// entre todos los procesos.
package memoria

import (
	"container/list"
	"fmt"
	"slices"

	"github.com/sisoputnfrba/tp-2025-2c-LosCuervosXeneizes/utils"
)

// MemoryItem describe un marco ocupado de la RAM.
type MemoryItem struct {
	PID         int
	PageNumber  uint64
	FrameNumber uint64
}

func (m MemoryItem) String() string {
	return fmt.Sprintf("Marco{PID: %d, Página: %d, Marco: %d}", m.PID, m.PageNumber, m.FrameNumber)
}

type clavePagina struct {
	pid    int
	pagina uint64
}

type Administrador struct {
	tamanioPagina  uint64
	cantidadMarcos uint64

	marcos       map[uint64]MemoryItem  // marco ocupado -> contenido
	tablaPaginas map[clavePagina]uint64 // (pid, página) -> marco

	// Orden LRU: el frente de la lista es el marco más recientemente usado.
	// elementos da acceso O(1) al nodo de cada marco ocupado.
	lru       *list.List
	elementos map[uint64]*list.Element

	// Huecos dejados por liberaciones, ordenados ascendente: la próxima
	// asignación reutiliza el índice libre más chico antes de estrenar uno.
	marcosLibres []uint64

	marcosPorProceso map[int][]uint64

	fallosDePagina uint64
	desalojos      uint64
}

// NuevoAdministrador crea la memoria con cantidadRAM/tamanioPagina marcos.
// La validación del tamaño de página la hace el constructor del simulador.
func NuevoAdministrador(cantidadRAM uint64, tamanioPagina uint64) *Administrador {
	return &Administrador{
		tamanioPagina:    tamanioPagina,
		cantidadMarcos:   cantidadRAM / tamanioPagina,
		marcos:           make(map[uint64]MemoryItem),
		tablaPaginas:     make(map[clavePagina]uint64),
		lru:              list.New(),
		elementos:        make(map[uint64]*list.Element),
		marcosPorProceso: make(map[int][]uint64),
	}
}

// Acceder resuelve un acceso del proceso a una dirección lógica y deja la
// página correspondiente cargada en RAM. Un hit solo refresca la recencia;
// un miss asigna el marco libre de índice más chico o, sin capacidad,
// desaloja el marco menos recientemente usado.
func (a *Administrador) Acceder(pid int, direccion uint64) {
	pagina := direccion / a.tamanioPagina
	clave := clavePagina{pid: pid, pagina: pagina}

	if marco, presente := a.tablaPaginas[clave]; presente {
		a.lru.MoveToFront(a.elementos[marco])
		utils.InfoLog.Debug("Acceso con página presente", "pid", pid, "página", pagina, "marco", marco)
		return
	}

	a.fallosDePagina++

	if uint64(len(a.marcos)) < a.cantidadMarcos {
		a.asignar(pid, pagina, clave)
		return
	}

	a.reemplazar(pid, pagina, clave)
}

// asignar ocupa el marco libre de índice más chico; sin huecos, el
// próximo índice a estrenar coincide con la cantidad de marcos ocupados.
func (a *Administrador) asignar(pid int, pagina uint64, clave clavePagina) {
	var marco uint64
	if len(a.marcosLibres) > 0 {
		marco, a.marcosLibres = utils.Desencolar(a.marcosLibres)
	} else {
		marco = uint64(len(a.marcos))
	}

	a.marcos[marco] = MemoryItem{PID: pid, PageNumber: pagina, FrameNumber: marco}
	a.tablaPaginas[clave] = marco
	a.elementos[marco] = a.lru.PushFront(marco)
	a.marcosPorProceso[pid] = append(a.marcosPorProceso[pid], marco)

	utils.InfoLog.Debug("Marco asignado", "pid", pid, "página", pagina, "marco", marco)
}

// reemplazar desaloja el marco del final del orden LRU y lo reocupa.
func (a *Administrador) reemplazar(pid int, pagina uint64, clave clavePagina) {
	marco := a.lru.Back().Value.(uint64)
	victima := a.marcos[marco]

	delete(a.tablaPaginas, clavePagina{pid: victima.PID, pagina: victima.PageNumber})
	a.marcosPorProceso[victima.PID] = utils.Remover(a.marcosPorProceso[victima.PID], marco)
	if len(a.marcosPorProceso[victima.PID]) == 0 {
		delete(a.marcosPorProceso, victima.PID)
	}

	a.marcos[marco] = MemoryItem{PID: pid, PageNumber: pagina, FrameNumber: marco}
	a.tablaPaginas[clave] = marco
	a.lru.MoveToFront(a.elementos[marco])
	a.marcosPorProceso[pid] = append(a.marcosPorProceso[pid], marco)
	a.desalojos++

	utils.InfoLog.Debug("Marco desalojado y reasignado",
		"marco", marco, "pid_victima", victima.PID, "página_victima", victima.PageNumber,
		"pid", pid, "página", pagina)
}

// Liberar devuelve todos los marcos del proceso como huecos reutilizables,
// en orden ascendente de índice.
func (a *Administrador) Liberar(pid int) {
	marcos, existe := a.marcosPorProceso[pid]
	if !existe {
		return
	}

	for _, marco := range marcos {
		item := a.marcos[marco]
		delete(a.tablaPaginas, clavePagina{pid: pid, pagina: item.PageNumber})
		delete(a.marcos, marco)
		a.lru.Remove(a.elementos[marco])
		delete(a.elementos, marco)
		a.marcosLibres = append(a.marcosLibres, marco)
	}
	delete(a.marcosPorProceso, pid)
	slices.Sort(a.marcosLibres)

	utils.InfoLog.Debug("Memoria del proceso liberada", "pid", pid, "marcos_liberados", len(marcos))
}

// Ocupados devuelve una copia de los marcos ocupados, ordenados por
// número de marco ascendente.
func (a *Administrador) Ocupados() []MemoryItem {
	items := make([]MemoryItem, 0, len(a.marcos))
	for _, item := range a.marcos {
		items = append(items, item)
	}
	slices.SortFunc(items, func(x, y MemoryItem) int {
		switch {
		case x.FrameNumber < y.FrameNumber:
			return -1
		case x.FrameNumber > y.FrameNumber:
			return 1
		default:
			return 0
		}
	})
	return items
}

// Estadisticas devuelve los fallos de página y desalojos acumulados.
func (a *Administrador) Estadisticas() (fallosDePagina uint64, desalojos uint64) {
	return a.fallosDePagina, a.desalojos
}
