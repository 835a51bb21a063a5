package logger

import "testing"

func TestInitLevels(t *testing.T) {
	for _, lvl := range []string{"debug", "info", "warn", "warning", "error", "", "bogus"} {
		Init(lvl, "development")
		if L() == nil {
			t.Fatalf("expected logger after Init(%q)", lvl)
		}
	}
	Init("info", "production")
	Infof("production logger works: %d", 1)
	Sync()
}
