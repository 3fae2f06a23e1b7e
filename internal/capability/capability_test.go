package capability

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDetect_ContactsFromCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.csv")
	csvData := "Asha Rao,+91 98765 43210\nBharat,9123456789\n"
	if err := os.WriteFile(path, []byte(csvData), 0o600); err != nil {
		t.Fatal(err)
	}

	set := Detect(path, nil)
	if !set.Contacts.Available() {
		t.Fatal("contacts should be available")
	}

	// Lookup normalizes formatting on both sides.
	if name, ok := set.Contacts.Lookup("919876543210"); !ok || name != "Asha Rao" {
		t.Errorf("Lookup = %q, %v", name, ok)
	}
	if name, ok := set.Contacts.Lookup("91-000-00000"); ok {
		t.Errorf("unexpected match: %q", name)
	}
}

func TestDetect_UnavailableVariants(t *testing.T) {
	set := Detect("", nil)
	if set.Contacts.Available() {
		t.Error("contacts should be unavailable without a file")
	}
	if _, ok := set.Contacts.Lookup("911"); ok {
		t.Error("unavailable contacts must never match")
	}
	if set.Notifier.Available() {
		t.Error("notifier should be unavailable without an output")
	}
	set.Notifier.Notify("t", "b") // must not panic
}

func TestDetect_MissingFileFallsBack(t *testing.T) {
	set := Detect(filepath.Join(t.TempDir(), "nope.csv"), nil)
	if set.Contacts.Available() {
		t.Error("missing file should resolve to the unavailable variant")
	}
}

func TestTerminalNotifier(t *testing.T) {
	var buf bytes.Buffer
	set := Detect("", &buf)
	if !set.Notifier.Available() {
		t.Fatal("notifier should be available with an output")
	}
	set.Notifier.Notify("Settlement", "Asha paid you")
	if !strings.Contains(buf.String(), "Asha paid you") {
		t.Errorf("output = %q", buf.String())
	}
}
