package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/symfind/dataset"
)

const hcpYAML = `lattice:
  - [3.17, 0, 0]
  - [-1.585, 2.7453005299966704, 0]
  - [0, 0, 5.14]
positions:
  - [0.3333333333333333, 0.6666666666666666, 0.25]
  - [0.6666666666666666, 0.3333333333333333, 0.75]
numbers: [1, 1]
`

const rockSaltJSON = `{
  "lattice": [[5.64, 0, 0], [0, 5.64, 0], [0, 0, 5.64]],
  "positions": [[0, 0, 0], [0, 0.5, 0.5], [0.5, 0, 0.5], [0.5, 0.5, 0],
                [0.5, 0, 0], [0.5, 0.5, 0.5], [0, 0, 0.5], [0, 0.5, 0]],
  "numbers": [11, 11, 11, 11, 17, 17, 17, 17]
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// execute runs the command line args with stdin and returns stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRoot_Text(t *testing.T) {
	out, err := execute(t, "", writeFile(t, "hcp.yaml", hcpYAML))
	require.NoError(t, err)
	assert.Contains(t, out, "P 6_3/m m c")
	assert.Contains(t, out, "hP2")
	assert.Contains(t, out, "-6m2")
}

func TestRoot_JSON(t *testing.T) {
	out, err := execute(t, "", "-o", "json", writeFile(t, "hcp.yaml", hcpYAML))
	require.NoError(t, err)

	var r report
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, 194, r.Number)
	assert.Equal(t, 488, r.HallNumber)
	assert.Len(t, r.Operations, 24)
	require.Len(t, r.Atoms, 2)
	for _, a := range r.Atoms {
		assert.Equal(t, "c", a.Wyckoff)
		assert.Equal(t, 1, a.Number)
	}
	assert.Equal(t, []int{0, 1}, r.Std.MappingToPrim)
	assert.Equal(t, "spglib", r.Setting)
}

func TestRoot_StdinYAML(t *testing.T) {
	out, err := execute(t, rockSaltJSON, "--format", "yaml", "-")
	require.NoError(t, err)

	var r report
	require.NoError(t, yaml.Unmarshal([]byte(out), &r))
	assert.Equal(t, 225, r.Number)
	assert.Equal(t, "cF8", r.PearsonSymbol)
	assert.Len(t, r.Std.Cell.Positions, 8)
	assert.Len(t, r.PrimStd.Cell.Positions, 2)
	for _, a := range r.Atoms {
		want := "a"
		if a.Number == 17 {
			want = "b"
		}
		assert.Equal(t, want, a.Wyckoff)
	}
}

func TestRoot_Environment(t *testing.T) {
	path := writeFile(t, "hcp.yaml", hcpYAML)

	t.Setenv("SYMFIND_SETTING", "hall:1")
	_, err := execute(t, "", path)
	require.ErrorIs(t, err, dataset.ErrSettingMismatch)

	t.Setenv("SYMFIND_SETTING", "hall:488")
	_, err = execute(t, "", path)
	require.NoError(t, err)

	// Flags win over the environment.
	_, err = execute(t, "", "--setting", "spglib", path)
	require.NoError(t, err)
}

func TestRoot_ConfigFile(t *testing.T) {
	config := writeFile(t, "symfind.yaml", "format: json\nsymprec: 1.0e-5\nangle-tolerance: 3\n")
	out, err := execute(t, "", "--config", config, writeFile(t, "hcp.yaml", hcpYAML))
	require.NoError(t, err)

	var r report
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, 1e-5, r.Symprec)
	assert.Equal(t, "3°", r.AngleTolerance)
}

func TestRoot_DefaultConfigFile(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(home, "symfind"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(home, "symfind", "config.yaml"), []byte("format: json\n"), 0o600))

	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", home)
	xdg.Reload()

	out, err := execute(t, "", writeFile(t, "hcp.yaml", hcpYAML))
	require.NoError(t, err)
	var r report
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, 194, r.Number)
}

func TestRoot_Errors(t *testing.T) {
	path := writeFile(t, "hcp.yaml", hcpYAML)

	_, err := execute(t, "", "-o", "xml", path)
	assert.ErrorIs(t, err, errUsage)

	_, err = execute(t, "", "--retries=-1", path)
	assert.ErrorIs(t, err, errUsage)

	_, err = execute(t, "", "--setting", "unknown", path)
	assert.Error(t, err)

	_, err = execute(t, "", writeFile(t, "bad.yaml", "lattice: [[1, 0, 0], [0, 1, 0], [0, 0, 1]]\nspecies: [1]\n"))
	assert.Error(t, err)

	_, err = execute(t, "", writeFile(t, "empty.yaml", "lattice: [[1, 0, 0], [0, 1, 0], [0, 0, 1]]\n"))
	assert.ErrorIs(t, err, dataset.ErrDegenerateInput)

	_, err = execute(t, "", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = execute(t, "")
	assert.Error(t, err)
}

func TestHall(t *testing.T) {
	out, err := execute(t, "", "hall", "488")
	require.NoError(t, err)
	assert.Contains(t, out, "P 6_3/m m c")
	assert.Contains(t, out, "-P 6c 2c")
	assert.Contains(t, out, "2c")
	assert.Contains(t, out, "24l")

	_, err = execute(t, "", "hall", "x")
	assert.ErrorIs(t, err, errUsage)

	_, err = execute(t, "", "hall", "531")
	assert.Error(t, err)
}

func TestReduce(t *testing.T) {
	path := writeFile(t, "hcp.yaml", hcpYAML)
	for _, method := range []string{"niggli", "delaunay", "minkowski"} {
		out, err := execute(t, "", "reduce", "--method", method, path)
		require.NoError(t, err, method)
		assert.Contains(t, out, "3.170000", method)
		assert.Contains(t, out, "5.140000", method)
	}

	_, err := execute(t, "", "reduce", "--method", "lll", path)
	assert.ErrorIs(t, err, errUsage)
}

func TestReadCell_JSON(t *testing.T) {
	c, err := readCell(strings.NewReader(rockSaltJSON))
	require.NoError(t, err)
	assert.Equal(t, 8, c.NumAtoms())
	assert.InDelta(t, 5.64*5.64*5.64, c.Lattice.Volume(), 1e-9)

	doc := cellOf(c)
	assert.Equal(t, c.Numbers, doc.Numbers)
	assert.Equal(t, [3]float64{0.5, 0, 0}, doc.Positions[4])
}
