package schedmodel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleMatrix() *Matrix {
	m := NewMatrix([]string{"sun", "mon"}, []string{"06-14", "14-22"}, []string{"gate"})
	m.SetCell("sun", "06-14", 0, []string{"alice"})
	m.SetCell("sun", "14-22", 0, []string{"bob"})
	return m
}

func TestMatrixTotalAssigned(t *testing.T) {
	m := sampleMatrix()
	require.Equal(t, 2, m.TotalAssigned())
}

func TestMatrixSignatureStableAcrossEquivalentBuilds(t *testing.T) {
	a := sampleMatrix()
	b := NewMatrix([]string{"sun", "mon"}, []string{"06-14", "14-22"}, []string{"gate"})
	b.SetCell("sun", "06-14", 0, []string{"alice"})
	b.SetCell("sun", "14-22", 0, []string{"bob"})
	require.Equal(t, a.Signature(), b.Signature())
}

func TestMatrixSignatureDiffersOnContentChange(t *testing.T) {
	a := sampleMatrix()
	b := sampleMatrix()
	b.SetCell("sun", "06-14", 0, []string{"carol"})
	require.NotEqual(t, a.Signature(), b.Signature())
}

func TestWorkerDayShift(t *testing.T) {
	m := sampleMatrix()
	ds := m.WorkerDayShift("alice")
	require.Equal(t, map[string]int{"sun": 0}, ds)
}
