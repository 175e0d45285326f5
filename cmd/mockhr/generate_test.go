package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nomemory/lambdas/hr"
	"github.com/nomemory/lambdas/utils/store"
	"github.com/nomemory/lambdas/utils/yamlstream"
)

func TestGenerate_Jsonl(t *testing.T) {
	out, err := executeCommand("generate --count 5 --seed 7")
	require.NoError(t, err)

	var got []hr.Manager
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		var m hr.Manager
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		got = append(got, m)
	}
	require.Equal(t, hr.NewMock(7).Managers(5), got)
}

func TestGenerate_Json(t *testing.T) {
	out, err := executeCommand("generate --count 5 --seed 7 --format json")
	require.NoError(t, err)

	var got []hr.Manager
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, hr.NewMock(7).Managers(5), got)
}

func TestGenerate_Yaml(t *testing.T) {
	out, err := executeCommand("generate --count 3 --seed 7 --format yaml")
	require.NoError(t, err)

	got, err := yamlstream.ReadYamlDocuments[hr.Manager](func(_ context.Context) (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(out)), nil
	}).Collect(context.Background())
	require.NoError(t, err)
	require.Equal(t, hr.NewMock(7).Managers(3), got)
}

func TestGenerate_Csv(t *testing.T) {
	out, err := executeCommand("generate --count 4 --seed 3 --format csv")
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)

	expected := hr.NewMock(3).Managers(4)
	require.Len(t, records, len(expected)+1)
	require.Equal(t, []string{"id", "name", "department", "salary"}, records[0])
	for i, m := range expected {
		require.Equal(t, []string{
			strconv.FormatInt(m.ID, 10),
			m.Name,
			m.Department,
			strconv.FormatFloat(m.Salary, 'f', 2, 64),
		}, records[i+1])
	}
}

func TestGenerate_OutputFile(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "dataset.jsonl")
	out, err := executeCommand("generate --count 5 --seed 7 --output " + outputPath)
	require.NoError(t, err)
	require.Empty(t, out)

	managerStore, err := store.NewFileJsonStreamStore[hr.Manager](outputPath)
	require.NoError(t, err)
	got, err := managerStore.ReadStream(false).Collect(context.Background())
	require.NoError(t, err)
	require.Equal(t, hr.NewMock(7).Managers(5), got)
}

func TestGenerate_EmptyDataset(t *testing.T) {
	out, err := executeCommand("generate --count 0 --format json")
	require.NoError(t, err)
	require.JSONEq(t, "[]", out)
}

func TestGenerate_UnknownFormat(t *testing.T) {
	_, err := executeCommand("generate --count 1 --format parquet")
	require.ErrorIs(t, err, errUserInput)
}

func TestGenerate_NegativeCount(t *testing.T) {
	_, err := executeCommand("generate --count -1")
	require.ErrorIs(t, err, errUserInput)
}
