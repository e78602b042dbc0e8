package cpu

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

func TestDespachoIdempotente(t *testing.T) {
	c := Nueva()

	c.Despachar()
	if c.Ejecutando() != NingunProceso {
		t.Fatalf("despachar sin procesos dejó ejecutando %d", c.Ejecutando())
	}

	c.Encolar(1)
	c.Encolar(2)
	c.Despachar()
	if c.Ejecutando() != 1 {
		t.Fatalf("esperaba ejecutando 1, obtuve %d", c.Ejecutando())
	}

	// Con la CPU ocupada, despachar no toca nada
	c.Despachar()
	if c.Ejecutando() != 1 || !slices.Equal(c.ColaListos(), []int{2}) {
		t.Fatalf("despachar con CPU ocupada mutó el estado: ejecutando=%d cola=%v", c.Ejecutando(), c.ColaListos())
	}
}

func TestInterrupcionDeTimerRota(t *testing.T) {
	c := Nueva()
	c.Encolar(1)
	c.Despachar()
	c.Encolar(2)
	c.Encolar(3)

	c.InterrupcionDeTimer()
	if c.Ejecutando() != 2 || !slices.Equal(c.ColaListos(), []int{3, 1}) {
		t.Fatalf("rotación incorrecta: ejecutando=%d cola=%v", c.Ejecutando(), c.ColaListos())
	}
}

func TestInterrupcionDeTimerConColaVacia(t *testing.T) {
	c := Nueva()
	c.Encolar(7)
	c.Despachar()

	c.InterrupcionDeTimer()
	if c.Ejecutando() != 7 || len(c.ColaListos()) != 0 {
		t.Fatalf("la interrupción con cola vacía debe ser identidad: ejecutando=%d cola=%v", c.Ejecutando(), c.ColaListos())
	}
}

func TestDesalojarEjecutando(t *testing.T) {
	c := Nueva()
	c.Encolar(1)
	c.Despachar()
	c.Encolar(2)

	c.DesalojarEjecutando()
	if c.Ejecutando() != NingunProceso {
		t.Fatalf("la CPU debía quedar ociosa, ejecutando=%d", c.Ejecutando())
	}
	if !slices.Equal(c.ColaListos(), []int{2}) {
		t.Fatalf("desalojar no debe tocar la cola: %v", c.ColaListos())
	}
}

func TestRemoverDeCola(t *testing.T) {
	c := Nueva()
	for _, pid := range []int{1, 2, 3, 2, 4} {
		c.Encolar(pid)
	}

	c.RemoverDeCola(2)
	if !slices.Equal(c.ColaListos(), []int{1, 3, 4}) {
		t.Fatalf("remover debe sacar todas las apariciones preservando el orden: %v", c.ColaListos())
	}
}

func TestColaListosDevuelveCopia(t *testing.T) {
	c := Nueva()
	c.Encolar(1)
	c.Encolar(2)

	copia := c.ColaListos()
	copia[0] = 99
	if !slices.Equal(c.ColaListos(), []int{1, 2}) {
		t.Fatalf("la consulta debe devolver una copia: %v", c.ColaListos())
	}
}
