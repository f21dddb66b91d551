// gpio/namespace.go
package gpio

import (
	"bufio"
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"mockmachine-go/hwerr"
)

// Namespace resolves pin aliases. In open mode (the default) any name
// resolves to itself, so tests run without a pin table. Loading a table
// switches to strict mode, where only listed names resolve.
type Namespace struct {
	mu     sync.RWMutex
	strict bool
	table  map[string]string
}

func newNamespace() *Namespace {
	return &Namespace{}
}

// Resolve maps name to its canonical pin name.
func (n *Namespace) Resolve(name string) (string, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if !n.strict {
		return name, nil
	}
	if canonical, ok := n.table[name]; ok {
		return canonical, nil
	}
	return "", errors.Wrapf(hwerr.ErrUndefinedAlias, "pin %q not defined in alias table", name)
}

// Strict reports whether a table is loaded.
func (n *Namespace) Strict() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.strict
}

func (n *Namespace) configure(table map[string]string) {
	n.mu.Lock()
	n.strict = table != nil
	n.table = table
	n.mu.Unlock()
}

// LoadAliasTable configures both namespaces from a CSV file of
// "alias,canonical" rows. "#" starts a comment, blank lines are ignored and
// rows whose alias begins with "-" are hidden: neither the alias nor its
// canonical name resolves. An empty path, or a file that cannot be read,
// selects open mode; an unreadable table is not an error.
func (r *Registry) LoadAliasTable(path string) {
	if path == "" {
		r.board.configure(nil)
		r.cpu.configure(nil)
		return
	}
	f, err := os.Open(path)
	if err != nil {
		r.board.configure(nil)
		r.cpu.configure(nil)
		return
	}
	defer f.Close()

	board := make(map[string]string)
	cpu := make(map[string]string)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		alias, canonical, ok := strings.Cut(line, ",")
		if !ok {
			continue
		}
		alias = strings.TrimSpace(alias)
		canonical = strings.TrimSpace(canonical)
		if alias == "" || canonical == "" {
			continue
		}
		if strings.HasPrefix(alias, "-") {
			continue
		}
		board[alias] = canonical
		cpu[canonical] = canonical
	}
	if sc.Err() != nil {
		r.board.configure(nil)
		r.cpu.configure(nil)
		return
	}
	r.board.configure(board)
	r.cpu.configure(cpu)
}
