package file_test

import (
	"testing"

	"github.com/aretw0/protocompat/internal/testutils"
	"github.com/aretw0/protocompat/pkg/adapters/file"
	contract "github.com/aretw0/protocompat/pkg/ports/tests"
)

func TestFileSource_Contract(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteFile(t, dir, "client.json", testutils.ClientJSON)
	testutils.WriteFile(t, dir, "nested/server.yaml", testutils.ServerYAML)
	testutils.WriteFile(t, dir, "notes.txt", "ignored")
	testutils.WriteFile(t, dir, ".hidden/skip.json", "{}")

	contract.GraphSourceContractTest(t, file.NewSource(dir), map[string][]byte{
		"client.json":        []byte(testutils.ClientJSON),
		"nested/server.yaml": []byte(testutils.ServerYAML),
	})
}
