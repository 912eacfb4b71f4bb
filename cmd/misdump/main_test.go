// SPDX-License-Identifier: MIT
package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/fisherprime/mission"
)

func writeMissions(t *testing.T) (group, data, broken string) {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"group.mis": `new SimGroup(MissionGroup) {
   new Item(Gem1 : BaseGem) { dataBlock = GemItem; points = 2; };
};`,
		"data.mis":   `datablock ItemData(BaseGem) { shapeFile = "gem.dts"; points = 1; };`,
		"broken.mis": `new SimGroup(Broken) {`,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}

	return filepath.Join(dir, "group.mis"), filepath.Join(dir, "data.mis"), filepath.Join(dir, "broken.mis")
}

func run(args ...string) (string, error) {
	var out bytes.Buffer

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	err := cmd.ExecuteContext(context.Background())

	return out.String(), err
}

func TestParseCmd(t *testing.T) {
	group, data, broken := writeMissions(t)

	out, err := run("parse", group)
	require.NoError(t, err)
	assert.Contains(t, out, group+" (")
	assert.Contains(t, out, "): 2 elements\n")
	assert.Regexp(t, `Item\s+1\n`, out)
	assert.Regexp(t, `SimGroup\s+1\n`, out)

	out, err = run("parse", "--format", "mission", data)
	require.NoError(t, err)
	assert.Equal(t, "// "+data+"\ndatablock ItemData(BaseGem) {\n   points = 1;\n   shapeFile = \"gem.dts\";\n};\n", out)

	out, err = run("parse", "-f", "spew", data)
	require.NoError(t, err)
	assert.Contains(t, out, `Tag: (string) (len=8) "ItemData"`)
	assert.Contains(t, out, `"gem.dts"`)

	out, err = run("parse", group, broken)
	assert.ErrorIs(t, err, mission.ErrUnterminatedBlock)
	assert.Contains(t, out, "MissionGroup", "successful documents are still printed")
	assert.Contains(t, out, "2 elements")

	_, err = run("parse", "--format", "xml", data)
	assert.ErrorContains(t, err, "unknown format")

	_, err = run("parse", "--delimiter", "''", data)
	assert.ErrorContains(t, err, "single byte")
}

func TestFindCmd(t *testing.T) {
	group, data, _ := writeMissions(t)

	out, err := run("find", "gem1", group, data)
	require.NoError(t, err)
	assert.Equal(t, "new Item(Gem1 : BaseGem) {\n   dataBlock = GemItem;\n   points = 2;\n};\n", out)

	out, err = run("find", "Gem1", group, data, "--field", "shapeFile,points", "--field", "points")
	require.NoError(t, err)
	assert.Equal(t, "shapeFile = gem.dts\npoints = 2\n", out)

	out, err = run("find", "Gem1", group, data, "--inherited")
	require.NoError(t, err)
	assert.Equal(t, "dataBlock = GemItem\npoints = 2\nshapeFile = gem.dts\n", out)

	_, err = run("find", "Gem2", group)
	assert.ErrorIs(t, err, mission.ErrNotFound)
}
