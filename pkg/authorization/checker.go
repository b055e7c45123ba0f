// Copyright 2016 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package authorization

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Config is the constructed authorization configuration the core accepts.
// Environment-variable parsing to build one is the embedder's job.
type Config struct {
	PolicyFile string
	Enabled    bool
	ServerName string
}

// AuthorizationException is raised by Checker.CheckAccess when the user
// lacks a required privilege.
type AuthorizationException struct {
	msg string
}

func (e *AuthorizationException) Error() string { return e.msg }

func newAuthzException(user User, req PrivilegeRequest) *AuthorizationException {
	var msg string
	if req.Privilege.isAccessCheck() {
		msg = fmt.Sprintf("User '%s' does not have privileges to access: %s",
			user.Name, req.Name())
	} else {
		msg = fmt.Sprintf("User '%s' does not have privileges to execute '%s' on: %s",
			user.Name, req.Privilege, req.Name())
	}
	return &AuthorizationException{msg: msg}
}

// Checker evaluates privilege requests against an immutable Policy
// snapshot. A Checker is itself immutable once constructed; the
// policyreload.Reloader swaps the pointer under a dedicated lock rather than
// mutating one in place.
type Checker struct {
	config Config
	policy *Policy
}

// NewChecker builds a Checker from config, loading the policy file if
// authorization is enabled. If config.Enabled is false, the returned
// Checker grants every request without consulting a policy at all.
func NewChecker(config Config) (*Checker, error) {
	c := &Checker{config: config}
	if !config.Enabled {
		return c, nil
	}
	policy, err := LoadPolicyFile(config.PolicyFile)
	if err != nil {
		return nil, errors.Wrap(err, "constructing authorization checker")
	}
	c.policy = policy
	return c, nil
}

// HasAccess is the non-throwing form used for list filtering: it never
// errors, only answers true/false.
func (c *Checker) HasAccess(user User, req PrivilegeRequest) bool {
	if !c.config.Enabled {
		return true
	}
	return c.evaluate(user, req)
}

// CheckAccess returns an AuthorizationException iff HasAccess would return
// false for the same (user, req); both funnel through evaluate so the two
// never disagree.
func (c *Checker) CheckAccess(user User, req PrivilegeRequest) error {
	if c.HasAccess(user, req) {
		return nil
	}
	return newAuthzException(user, req)
}

func (c *Checker) evaluate(user User, req PrivilegeRequest) bool {
	if req.Scope.Kind == ScopeAllOf {
		for _, sub := range req.Scope.AllOf {
			if !c.evaluate(user, sub) {
				return false
			}
		}
		return true
	}

	db, table := req.Scope.Db, req.Scope.Table
	for _, g := range c.policy.grantsFor(user.Name, db, table) {
		for _, held := range g.Privileges {
			if privilegeSatisfies(held, req.Privilege) {
				return true
			}
		}
	}
	return false
}

// privilegeSatisfies reports whether holding `held` satisfies a request
// for `requested`: ALL subsumes everything, ANY is satisfied by anything,
// and otherwise the privileges must match exactly.
func privilegeSatisfies(held, requested Privilege) bool {
	if held == All {
		return true
	}
	if requested == Any {
		return true
	}
	return held == requested
}
