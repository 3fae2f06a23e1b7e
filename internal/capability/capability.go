// Package capability resolves optional device integrations once at startup.
// Call sites receive either a working provider or an explicit Unavailable
// variant; nobody probes for a capability ad hoc.
package capability

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Contacts resolves phone numbers to display names.
type Contacts interface {
	Available() bool
	Lookup(phoneNumber string) (name string, ok bool)
}

// Notifier delivers settlement notifications to the user.
type Notifier interface {
	Available() bool
	Notify(title, body string)
}

// Set holds the resolved providers for this run.
type Set struct {
	Contacts Contacts
	Notifier Notifier
}

// Detect resolves all capabilities. contactsFile may be empty (no contacts
// integration configured); out may be nil (no notification surface).
func Detect(contactsFile string, out io.Writer) Set {
	return Set{
		Contacts: detectContacts(contactsFile),
		Notifier: detectNotifier(out),
	}
}

func detectContacts(path string) Contacts {
	if path == "" {
		return unavailableContacts{}
	}
	f, err := os.Open(path)
	if err != nil {
		return unavailableContacts{}
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return unavailableContacts{}
	}

	byPhone := make(map[string]string, len(records))
	for _, rec := range records {
		if len(rec) < 2 {
			continue
		}
		name := strings.TrimSpace(rec[0])
		phone := normalizePhone(rec[1])
		if name != "" && phone != "" {
			byPhone[phone] = name
		}
	}
	return csvContacts{byPhone: byPhone}
}

func detectNotifier(out io.Writer) Notifier {
	if out == nil {
		return unavailableNotifier{}
	}
	return terminalNotifier{out: out}
}

func normalizePhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

type csvContacts struct {
	byPhone map[string]string
}

func (csvContacts) Available() bool { return true }

func (c csvContacts) Lookup(phoneNumber string) (string, bool) {
	name, ok := c.byPhone[normalizePhone(phoneNumber)]
	return name, ok
}

type unavailableContacts struct{}

func (unavailableContacts) Available() bool              { return false }
func (unavailableContacts) Lookup(string) (string, bool) { return "", false }

type terminalNotifier struct {
	out io.Writer
}

func (terminalNotifier) Available() bool { return true }

func (n terminalNotifier) Notify(title, body string) {
	fmt.Fprintf(n.out, "\a  %s — %s\n", title, body)
}

type unavailableNotifier struct{}

func (unavailableNotifier) Available() bool       { return false }
func (unavailableNotifier) Notify(string, string) {}
