package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VanDung-dev/NamedCache/bridge"
)

func TestParseScript(t *testing.T) {
	src := `# scores
create-map scores
upsert-number scores alice 10

upsert-text scores "bob smith" "hello world"
get-text scores ""
stats
`
	cmds, err := ParseScript(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, cmds, 5)

	assert.Equal(t, Command{Line: 2, Op: "create-map", Args: []string{"scores"}}, cmds[0])
	assert.Equal(t, []string{"scores", "bob smith", "hello world"}, cmds[2].Args)
	assert.Equal(t, []string{"scores", ""}, cmds[3].Args)
	assert.Equal(t, 5, cmds[2].Line)
	assert.Empty(t, cmds[4].Args)
}

func TestParseScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown op", "frobnicate x"},
		{"too few args", "upsert-number m k"},
		{"too many args", "map-size m extra"},
		{"bad number", "upsert-number m k ten"},
		{"unterminated quote", `create-map "abc`},
		{"quote glued to word", `insert s "a"b`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScript(strings.NewReader(tt.src))
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "line 1")
		})
	}

	_, err := ParseScript(strings.NewReader("nope"))
	assert.True(t, errors.Is(err, ErrUnknownOp))
}

func runScript(t *testing.T, src string, asJSON bool) string {
	t.Helper()
	cmds, err := ParseScript(strings.NewReader(src))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, NewRunner(bridge.NewAdapter(nil, nil)).Run(cmds, &out, asJSON))
	return out.String()
}

func TestRunScoresScenario(t *testing.T) {
	out := runScript(t, `create-map scores
upsert-number scores alice 10
upsert-number scores bob 20
upsert-number scores alice 15
map-size scores
get-number scores alice
get-number scores carol
upsert-text scores alice hi
get-number scores alice
get-text scores alice
export scores
`, false)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 11)
	assert.Equal(t, "2 upsert-number [inserted]", lines[1])
	assert.Equal(t, "4 upsert-number [overwritten]", lines[3])
	assert.Equal(t, "5 map-size 2", lines[4])
	assert.Equal(t, "6 get-number [ok] 15", lines[5])
	assert.Equal(t, "7 get-number [key not found]", lines[6])
	assert.Equal(t, "9 get-number [tag mismatch]", lines[8])
	assert.Equal(t, `10 get-text [ok] "hi"`, lines[9])
	assert.Contains(t, lines[10], "bob")
	assert.NotContains(t, lines[10], "alice")
}

func TestRunJSON(t *testing.T) {
	out := runScript(t, `create-set seen
insert seen x
insert seen x
members seen
export-ipc absent
`, true)

	var results []Result
	dec := json.NewDecoder(strings.NewReader(out))
	for dec.More() {
		var r Result
		require.NoError(t, dec.Decode(&r))
		results = append(results, r)
	}
	require.Len(t, results, 5)
	assert.Equal(t, true, results[1].Value)
	assert.Equal(t, false, results[2].Value)
	assert.Equal(t, []interface{}{"x"}, results[3].Value)
	assert.Equal(t, "collection not found", results[4].Status)
}

func TestRunExportIPC(t *testing.T) {
	out := runScript(t, `create-map m
upsert-number m a 1.5
upsert-text m b text
export-ipc m
`, false)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "4 export-ipc [ok] [{a 1.5}]", lines[3])
}

func FuzzParseScript(f *testing.F) {
	f.Add("create-map m\nupsert-number m k 1\n")
	f.Add(`upsert-text m "a b" "c"`)
	f.Add("# only a comment")
	f.Add("`raw` \"\\x00\"")

	f.Fuzz(func(t *testing.T, src string) {
		cmds, err := ParseScript(strings.NewReader(src))
		if err != nil {
			return
		}
		for _, c := range cmds {
			if got, want := len(c.Args), arity[c.Op]; got != want {
				t.Fatalf("line %d: %s parsed with %d args, want %d", c.Line, c.Op, got, want)
			}
		}
	})
}

func TestRunRejectsNULArguments(t *testing.T) {
	out := runScript(t, `create-map m
upsert-number m "a\x00b" 1
upsert-text m t "x\x00y"
map-size m
`, false)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "2 upsert-number [invalid argument]", lines[1])
	assert.Equal(t, "3 upsert-text [invalid argument]", lines[2])
	assert.Equal(t, "4 map-size 0", lines[3])
}
