// Copyright 2016 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package authorization

import (
	"bufio"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
)

// User identifies the principal making a request.
type User struct {
	Name string
}

// Grant is one line of the policy file: a principal holds a set of
// privileges over a scope. Loading the full Sentry-style role/group
// hierarchy is out of this cache's scope; Policy instead models the
// flattened, already-resolved view a Checker consults, which is all the
// cache itself needs.
type Grant struct {
	Principal  string
	Db         string
	Table      string
	Column     string
	Privileges []Privilege
}

// Policy is an immutable snapshot of the resolved privilege grants, safe
// to share across goroutines once constructed (per the checker hot-swap
// design note: the checker, and the policy it wraps, is modeled as an
// immutable value placed behind a guarded slot).
type Policy struct {
	grants []Grant
}

// EmptyPolicy holds no grants, so a Checker consulting it denies every
// request. NewChecker never installs it: with authorization disabled the
// Checker carries no policy and grants every request (see Checker).
var EmptyPolicy = &Policy{}

// LoadPolicyFile parses a simple "principal|db|table|column|priv,priv"
// policy file format, one grant per line, blank lines and lines starting
// with '#' ignored. This stands in for Sentry's richer role/group file
// Impala historically used, kept deliberately small since the wire format
// for the policy file is an external, pluggable concern.
func LoadPolicyFile(path string) (*Policy, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading policy file %q", path)
	}
	defer f.Close()

	var grants []Grant
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "|")
		if len(fields) != 5 {
			return nil, errors.Newf("malformed policy line %q in %s", line, path)
		}
		privs, err := parsePrivileges(fields[4])
		if err != nil {
			return nil, errors.Wrapf(err, "in %s", path)
		}
		grants = append(grants, Grant{
			Principal:  fields[0],
			Db:         fields[1],
			Table:      fields[2],
			Column:     fields[3],
			Privileges: privs,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading policy file %q", path)
	}
	return &Policy{grants: grants}, nil
}

func parsePrivileges(s string) ([]Privilege, error) {
	var out []Privilege
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(strings.ToUpper(name))
		switch name {
		case "ALL":
			out = append(out, All)
		case "INSERT":
			out = append(out, Insert)
		case "SELECT":
			out = append(out, Select)
		case "CREATE":
			out = append(out, Create)
		case "DROP":
			out = append(out, Drop)
		case "VIEW_METADATA":
			out = append(out, ViewMetadata)
		default:
			return nil, errors.Newf("unknown privilege %q", name)
		}
	}
	return out, nil
}

// grantsFor returns every grant matching principal for the given db/table,
// in the order loaded (no reordering by specificity). table == ""
// means "any table in db" (ScopeAnyTable, used by listing operations): a
// specific-table grant still matches that query, since holding a privilege
// on one table in db is exactly what makes db itself visible when filtering
// GetDbNames/GetTableNames.
func (p *Policy) grantsFor(principal, db, table string) []Grant {
	var out []Grant
	if p == nil {
		return out
	}
	for _, g := range p.grants {
		if g.Principal != principal {
			continue
		}
		if g.Db != "" && !strings.EqualFold(g.Db, db) {
			continue
		}
		if g.Table != "" && table != "" && !strings.EqualFold(g.Table, table) {
			continue
		}
		out = append(out, g)
	}
	return out
}
