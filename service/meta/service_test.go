package meta

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type document struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

func TestService_Load(t *testing.T) {
	t.Setenv("SCHEDSIM_NAME", "demo")
	dir := t.TempDir()
	testCases := []struct {
		name    string
		file    string
		content string
		expect  *document
		err     bool
	}{
		{name: "json", file: "doc.json", content: `{"name":"${env.SCHEDSIM_NAME}","count":2}`, expect: &document{Name: "demo", Count: 2}},
		{name: "yaml", file: "doc.yaml", content: "name: ${env.SCHEDSIM_NAME}\ncount: 3\n", expect: &document{Name: "demo", Count: 3}},
		{name: "yml", file: "doc.yml", content: "name: x\n", expect: &document{Name: "x"}},
		{name: "malformed", file: "bad.json", content: `{"name":`, err: true},
	}
	srv := New(nil)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			URL := filepath.Join(dir, tc.file)
			require.NoError(t, os.WriteFile(URL, []byte(tc.content), 0o644))
			actual := &document{}
			err := srv.Load(context.Background(), URL, actual)
			if tc.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expect, actual)
		})
	}

	err := srv.Load(context.Background(), filepath.Join(dir, "missing.json"), &document{})
	assert.Error(t, err)
}
