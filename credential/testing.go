// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package credential

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestWriteFile writes fields as a json key file in a temp dir and returns
// its path.
func TestWriteFile(t *testing.T, fields map[string]string) string {
	t.Helper()
	require := require.New(t)
	b, err := json.MarshalIndent(fields, "", "  ")
	require.NoError(err)
	path := filepath.Join(t.TempDir(), "service-account.json")
	require.NoError(os.WriteFile(path, b, 0o600))
	return path
}
