package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	cachearrow "github.com/VanDung-dev/NamedCache/arrow"
	"github.com/VanDung-dev/NamedCache/bridge"
)

// Result is the outcome of one command, printed as a line of text or JSON.
type Result struct {
	Line   int         `json:"line"`
	Op     string      `json:"op"`
	Status string      `json:"status,omitempty"`
	Value  interface{} `json:"value"`
}

// Runner executes parsed commands against an adapter, going through the same
// owned-allocation calls a C host would use.
type Runner struct {
	adapter *bridge.Adapter
	decoder *cachearrow.Encoder
}

// NewRunner creates a Runner over a.
func NewRunner(a *bridge.Adapter) *Runner {
	return &Runner{adapter: a, decoder: cachearrow.NewEncoder()}
}

// Exec runs a single command.
func (r *Runner) Exec(c Command) (Result, error) {
	a := r.adapter
	res := Result{Line: c.Line, Op: c.Op}
	switch c.Op {
	case "create-map":
		a.CreateMap(c.Args[0])
	case "create-set":
		a.CreateSet(c.Args[0])
	case "upsert-number":
		v, err := strconv.ParseFloat(c.Args[2], 64)
		if err != nil {
			return res, err
		}
		res.Status = a.UpsertNumberStatus(c.Args[0], c.Args[1], v).String()
	case "upsert-text":
		res.Status = a.UpsertTextStatus(c.Args[0], c.Args[1], c.Args[2]).String()
	case "insert":
		res.Value = a.InsertSetMember(c.Args[0], c.Args[1])
	case "remove-entry":
		res.Value = a.RemoveMapEntry(c.Args[0], c.Args[1])
	case "remove-member":
		res.Value = a.RemoveSetMember(c.Args[0], c.Args[1])
	case "map-contains":
		res.Value = a.MapContains(c.Args[0], c.Args[1])
	case "set-contains":
		res.Value = a.SetContains(c.Args[0], c.Args[1])
	case "map-size":
		res.Value = a.MapSize(c.Args[0])
	case "set-size":
		res.Value = a.SetSize(c.Args[0])
	case "get-text":
		p, st := a.GetTextStatus(c.Args[0], c.Args[1])
		res.Status = st.String()
		if p != nil {
			res.Value = bridge.ReadText(p)
			a.FreeText(p)
		}
	case "get-number":
		v, st := a.GetNumberStatus(c.Args[0], c.Args[1])
		res.Status = st.String()
		if st == bridge.StatusOK {
			res.Value = v
		}
	case "members":
		m, err := a.Store().Sets.Members(c.Args[0])
		if err != nil {
			res.Status = bridge.StatusCollectionNotFound.String()
		} else {
			res.Value = m
		}
	case "export":
		p, n := a.ExportNumericEntries(c.Args[0])
		res.Value = bridge.ReadEntries(p, n)
		a.FreeEntries(p, n)
	case "export-ipc":
		p, n, st := a.ExportNumericEntriesIPC(c.Args[0])
		res.Status = st.String()
		if p != nil {
			data := bridge.ReadBuffer(p, n)
			a.FreeBuffer(p)
			entries, err := r.decoder.DecodeEntries(data)
			if err != nil {
				return res, fmt.Errorf("decode export: %w", err)
			}
			res.Value = entries
		}
	case "stats":
		p := a.StatsJSON()
		if p != nil {
			res.Value = json.RawMessage(bridge.ReadText(p))
			a.FreeText(p)
		}
	default:
		return res, fmt.Errorf("%w %q", ErrUnknownOp, c.Op)
	}
	return res, nil
}

// Run executes every command and writes one output line per command.
func (r *Runner) Run(cmds []Command, w io.Writer, asJSON bool) error {
	enc := json.NewEncoder(w)
	for _, c := range cmds {
		res, err := r.Exec(c)
		if err != nil {
			return fmt.Errorf("line %d: %w", c.Line, err)
		}
		if asJSON {
			if err := enc.Encode(res); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintln(w, formatText(res)); err != nil {
			return err
		}
	}
	return nil
}

func formatText(res Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d %s", res.Line, res.Op)
	if res.Status != "" {
		fmt.Fprintf(&b, " [%s]", res.Status)
	}
	if res.Value != nil {
		switch v := res.Value.(type) {
		case json.RawMessage:
			fmt.Fprintf(&b, " %s", v)
		case string:
			fmt.Fprintf(&b, " %q", v)
		default:
			fmt.Fprintf(&b, " %v", v)
		}
	}
	return b.String()
}
