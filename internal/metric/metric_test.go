package metric

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMetrics_WriteFile(t *testing.T) {
	m := New()
	for i := 0; i < 3; i++ {
		m.Line()
	}
	m.Error("param")
	m.Error("param")
	m.Error("date-time")

	path := filepath.Join(t.TempDir(), "icslint.prom")
	if err := m.WriteFile(path); err != nil {
		t.Fatal("WriteFile() error = ", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	for _, want := range []string{
		"# TYPE icslint_lines_total counter\n",
		"icslint_lines_total 3\n",
		`icslint_errors_total{rule="date-time"} 1` + "\n",
		`icslint_errors_total{rule="param"} 2` + "\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("WriteFile() wrote\n%s\nwithout %q", got, want)
		}
	}
}

func TestMetrics_Nil(t *testing.T) {
	var m *Metrics
	m.Line()
	m.Error("param")
}
