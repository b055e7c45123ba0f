// Copyright 2016 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package authorization

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writePolicyFile(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.txt")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadPolicyFileParsesGrants(t *testing.T) {
	path := writePolicyFile(t, "# comment\n\nalice|sales|orders||SELECT,INSERT\nbob|sales|||ALL\n")
	policy, err := LoadPolicyFile(path)
	require.NoError(t, err)
	require.Len(t, policy.grants, 2)
	require.Equal(t, []Privilege{Select, Insert}, policy.grants[0].Privileges)
	require.Equal(t, []Privilege{All}, policy.grants[1].Privileges)
}

func TestLoadPolicyFileRejectsMalformedLine(t *testing.T) {
	path := writePolicyFile(t, "alice|sales|orders|SELECT\n")
	_, err := LoadPolicyFile(path)
	require.Error(t, err)
}

func TestLoadPolicyFileRejectsUnknownPrivilege(t *testing.T) {
	path := writePolicyFile(t, "alice|sales|orders||FLY\n")
	_, err := LoadPolicyFile(path)
	require.Error(t, err)
}

func TestGrantsForCaseInsensitiveDbAndTable(t *testing.T) {
	policy := &Policy{grants: []Grant{
		{Principal: "alice", Db: "Sales", Table: "Orders", Privileges: []Privilege{Select}},
	}}
	grants := policy.grantsFor("alice", "sales", "orders")
	require.Len(t, grants, 1)
}

func TestGrantsForWildcardTableMatchesAnyTable(t *testing.T) {
	policy := &Policy{grants: []Grant{
		{Principal: "alice", Db: "sales", Privileges: []Privilege{ViewMetadata}},
	}}
	require.Len(t, policy.grantsFor("alice", "sales", "orders"), 1)
	require.Len(t, policy.grantsFor("alice", "sales", "customers"), 1)
	require.Empty(t, policy.grantsFor("alice", "marketing", "leads"))
}

// A specific-table grant must still satisfy an "any table in db" query
// (table == ""), since that's exactly what GetDbNames/GetTableNames use to
// decide whether a database holding only specific-table grants is visible.
func TestGrantsForSpecificTableMatchesAnyTableQuery(t *testing.T) {
	policy := &Policy{grants: []Grant{
		{Principal: "alice", Db: "sales", Table: "orders", Privileges: []Privilege{Select}},
	}}
	require.Len(t, policy.grantsFor("alice", "sales", ""), 1)
	require.Len(t, policy.grantsFor("alice", "sales", "orders"), 1)
	require.Empty(t, policy.grantsFor("alice", "sales", "customers"))
}
