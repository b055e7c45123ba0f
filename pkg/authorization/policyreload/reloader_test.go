// Copyright 2016 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package policyreload

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bravechou2009/impala/pkg/authorization"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func writePolicyFile(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.txt")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestNewDisabledGrantsEverything(t *testing.T) {
	r, err := New(Config{Config: authorization.Config{Enabled: false}}, prometheus.NewRegistry())
	require.NoError(t, err)
	require.True(t, r.Checker().HasAccess(authorization.User{Name: "anyone"},
		authorization.NewRequestBuilder().AllOf(authorization.Drop).OnDb("sales")))
}

func TestReloadInstallsNewChecker(t *testing.T) {
	path := writePolicyFile(t, "alice|sales|||ALL\n")
	r, err := New(Config{Config: authorization.Config{Enabled: true, PolicyFile: path}}, prometheus.NewRegistry())
	require.NoError(t, err)
	require.True(t, r.Checker().HasAccess(authorization.User{Name: "alice"},
		authorization.NewRequestBuilder().AllOf(authorization.Drop).OnDb("sales")))

	require.NoError(t, os.WriteFile(path, []byte("bob|sales|||ALL\n"), 0o600))
	r.reload(context.Background())

	require.False(t, r.Checker().HasAccess(authorization.User{Name: "alice"},
		authorization.NewRequestBuilder().AllOf(authorization.Drop).OnDb("sales")))
	require.True(t, r.Checker().HasAccess(authorization.User{Name: "bob"},
		authorization.NewRequestBuilder().AllOf(authorization.Drop).OnDb("sales")))
}

func TestReloadKeepsPreviousCheckerOnFailure(t *testing.T) {
	path := writePolicyFile(t, "alice|sales|||ALL\n")
	r, err := New(Config{Config: authorization.Config{Enabled: true, PolicyFile: path}}, prometheus.NewRegistry())
	require.NoError(t, err)
	before := r.Checker()

	r.config.PolicyFile = filepath.Join(t.TempDir(), "missing.txt")
	r.reload(context.Background())

	require.Same(t, before, r.Checker())
}
