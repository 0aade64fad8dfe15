package store

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/go-json-experiment/json"
	"github.com/olekukonko/tablewriter"

	"src.autoui.dev/pkg/config"
	"src.autoui.dev/pkg/prog"
	"src.autoui.dev/pkg/vals"
)

// Program is the subprogram that shows the persisted state.
type Program struct {
	state  bool
	db     string
	clear  string
	json   *bool
	config *string
}

func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.BoolVar(&p.state, "state", false, "show persisted widget state and dev sessions")
	fs.StringVar(&p.db, "db", "", "path to the state database; overrides autoui.yaml")
	fs.StringVar(&p.clear, "clear", "", "delete the persisted state of this source; used with -state")
	p.json = fs.JSON()
	p.config = fs.Config()
}

func (p *Program) Run(fds [3]*os.File, args []string) error {
	if !p.state {
		return prog.ErrNextProgram
	}
	if len(args) > 0 {
		return prog.BadUsage("arguments are not allowed with -state")
	}
	path := p.db
	if path == "" {
		c, err := config.Find("", *p.config)
		if err != nil {
			return err
		}
		path = c.Dev.Store
	}
	st, err := Open(path)
	if err != nil {
		return err
	}
	defer st.Close()

	if p.clear != "" {
		return st.DeleteSnapshot(p.clear)
	}
	if *p.json {
		return writeJSON(fds[1], st)
	}
	return writeTables(fds[1], st)
}

type stateDump struct {
	Snapshots map[string]Snapshot `json:"snapshots"`
	Sessions  []Session           `json:"sessions"`
}

func dump(st *Store) (*stateDump, error) {
	sources, err := st.Sources()
	if err != nil {
		return nil, err
	}
	d := &stateDump{Snapshots: make(map[string]Snapshot, len(sources))}
	for _, source := range sources {
		snap, err := st.Snapshot(source)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", source, err)
		}
		d.Snapshots[source] = snap
	}
	d.Sessions, err = st.Sessions()
	return d, err
}

func writeJSON(w io.Writer, st *Store) error {
	d, err := dump(st)
	if err != nil {
		return err
	}
	data, err := json.Marshal(d, json.Deterministic(true))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

func writeTables(w io.Writer, st *Store) error {
	d, err := dump(st)
	if err != nil {
		return err
	}
	if len(d.Snapshots) == 0 && len(d.Sessions) == 0 {
		fmt.Fprintln(w, "no persisted state")
		return nil
	}

	if len(d.Snapshots) > 0 {
		t := newTable(w, "SOURCE", "WIDGET", "FIELD", "VALUE")
		for _, source := range sortedKeys(d.Snapshots) {
			snap := d.Snapshots[source]
			for _, widget := range sortedKeys(snap) {
				fields := snap[widget]
				for _, name := range sortedKeys(fields) {
					t.Append([]string{source, widget, name, vals.Repr(fields[name])})
				}
			}
		}
		t.Render()
	}
	if len(d.Sessions) > 0 {
		if len(d.Snapshots) > 0 {
			fmt.Fprintln(w)
		}
		t := newTable(w, "SEQ", "ID", "SOURCE", "STARTED")
		for _, sess := range d.Sessions {
			t.Append([]string{
				fmt.Sprint(sess.Seq), sess.ID, sess.Source,
				sess.Started.Format("2006-01-02 15:04:05")})
		}
		t.Render()
	}
	return nil
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	t.SetHeader(header)
	t.SetAutoFormatHeaders(false)
	t.SetBorder(false)
	t.SetColumnSeparator("")
	t.SetHeaderLine(false)
	t.SetAutoWrapText(false)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	t.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	return t
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
