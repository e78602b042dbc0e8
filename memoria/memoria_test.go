package memoria

import (
	"os"
	"slices"
	"testing"

	"github.com/sisoputnfrba/tp-2025-2c-LosCuervosXeneizes/utils"
)

func TestMain(m *testing.M) {
	utils.InicializarLogger("error", "test")
	os.Exit(m.Run())
}

func itemsIguales(t *testing.T, obtenidos []MemoryItem, esperados []MemoryItem) {
	t.Helper()
	if !slices.Equal(obtenidos, esperados) {
		t.Fatalf("marcos incorrectos:\n  obtenidos: %v\n  esperados: %v", obtenidos, esperados)
	}
}

func TestAsignaMarcosEnOrden(t *testing.T) {
	a := NuevoAdministrador(12, 4) // 3 marcos

	a.Acceder(1, 0)
	a.Acceder(1, 4)
	a.Acceder(1, 8)

	itemsIguales(t, a.Ocupados(), []MemoryItem{
		{PID: 1, PageNumber: 0, FrameNumber: 0},
		{PID: 1, PageNumber: 1, FrameNumber: 1},
		{PID: 1, PageNumber: 2, FrameNumber: 2},
	})
}

func TestHitNoCambiaLosMarcos(t *testing.T) {
	a := NuevoAdministrador(8, 4)

	a.Acceder(1, 0)
	antes := a.Ocupados()

	// Distintas direcciones de la misma página son la misma entrada
	a.Acceder(1, 3)
	itemsIguales(t, a.Ocupados(), antes)

	fallos, _ := a.Estadisticas()
	if fallos != 1 {
		t.Fatalf("un hit no es un fallo de página: fallos=%d", fallos)
	}
}

// El escenario clásico: llenar la RAM, refrescar una página y verificar
// que el desalojo cae sobre la menos recientemente usada.
func TestDesalojaLaMenosRecientementeUsada(t *testing.T) {
	a := NuevoAdministrador(12, 4) // 3 marcos

	a.Acceder(1, 0)  // página 0 -> marco 0
	a.Acceder(1, 4)  // página 1 -> marco 1
	a.Acceder(1, 8)  // página 2 -> marco 2
	a.Acceder(1, 0)  // hit: página 0 vuelve a ser la más reciente
	a.Acceder(1, 16) // miss sin capacidad: desaloja la página 1 (marco 1)

	itemsIguales(t, a.Ocupados(), []MemoryItem{
		{PID: 1, PageNumber: 0, FrameNumber: 0},
		{PID: 1, PageNumber: 4, FrameNumber: 1},
		{PID: 1, PageNumber: 2, FrameNumber: 2},
	})

	if len(a.Ocupados()) != 3 {
		t.Fatalf("el desalojo no debe cambiar la cantidad de marcos ocupados")
	}
}

func TestDesalojoEsGlobalEntreProcesos(t *testing.T) {
	a := NuevoAdministrador(8, 4) // 2 marcos

	a.Acceder(1, 0) // marco 0
	a.Acceder(2, 0) // marco 1
	a.Acceder(2, 4) // desaloja el marco 0 (del proceso 1)

	itemsIguales(t, a.Ocupados(), []MemoryItem{
		{PID: 2, PageNumber: 1, FrameNumber: 0},
		{PID: 2, PageNumber: 0, FrameNumber: 1},
	})
}

func TestLiberarYReusoAscendente(t *testing.T) {
	a := NuevoAdministrador(16, 4) // 4 marcos

	a.Acceder(1, 0)  // marco 0
	a.Acceder(2, 0)  // marco 1
	a.Acceder(1, 4)  // marco 2
	a.Acceder(2, 4)  // marco 3

	a.Liberar(1) // libera los marcos 0 y 2

	itemsIguales(t, a.Ocupados(), []MemoryItem{
		{PID: 2, PageNumber: 0, FrameNumber: 1},
		{PID: 2, PageNumber: 1, FrameNumber: 3},
	})

	// Los huecos se reutilizan en orden ascendente de índice
	a.Acceder(3, 0)
	a.Acceder(3, 4)
	itemsIguales(t, a.Ocupados(), []MemoryItem{
		{PID: 3, PageNumber: 0, FrameNumber: 0},
		{PID: 2, PageNumber: 0, FrameNumber: 1},
		{PID: 3, PageNumber: 1, FrameNumber: 2},
		{PID: 2, PageNumber: 1, FrameNumber: 3},
	})
}

func TestLiberarTodoSeComportaComoMemoriaNueva(t *testing.T) {
	a := NuevoAdministrador(8, 4)

	a.Acceder(1, 0)
	a.Acceder(1, 4)
	a.Liberar(1)

	if len(a.Ocupados()) != 0 {
		t.Fatalf("la memoria debía quedar vacía: %v", a.Ocupados())
	}

	// Mismo patrón de asignación que un proceso recién llegado
	a.Acceder(2, 100)
	itemsIguales(t, a.Ocupados(), []MemoryItem{
		{PID: 2, PageNumber: 25, FrameNumber: 0},
	})
}

func TestLiberarProcesoSinMarcosNoHaceNada(t *testing.T) {
	a := NuevoAdministrador(8, 4)
	a.Acceder(1, 0)

	a.Liberar(42)
	if len(a.Ocupados()) != 1 {
		t.Fatalf("liberar un PID sin marcos mutó el estado: %v", a.Ocupados())
	}
}

func TestEstadisticas(t *testing.T) {
	a := NuevoAdministrador(8, 4) // 2 marcos

	a.Acceder(1, 0)  // fallo
	a.Acceder(1, 4)  // fallo
	a.Acceder(1, 0)  // hit
	a.Acceder(1, 8)  // fallo + desalojo

	fallos, desalojos := a.Estadisticas()
	if fallos != 3 || desalojos != 1 {
		t.Fatalf("esperaba 3 fallos y 1 desalojo, obtuve %d y %d", fallos, desalojos)
	}
}
