package rbac_test

import (
	"path/filepath"
	"testing"

	"github.com/businessregulatoryreviewagency/brra/internal/domain"
	"github.com/businessregulatoryreviewagency/brra/internal/rbac"
	"github.com/businessregulatoryreviewagency/brra/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPolicyService(t *testing.T) rbac.Service {
	t.Helper()
	enforcer, err := infra.NewEnforcer(
		filepath.Join("..", "..", "config", "rbac", "model.conf"),
		filepath.Join("..", "..", "config", "rbac", "policy.csv"),
	)
	require.NoError(t, err)
	return rbac.NewService(enforcer)
}

func TestRBACService_Enforce(t *testing.T) {
	svc := newPolicyService(t)

	cases := []struct {
		name     string
		role     string
		resource string
		action   string
		allowed  bool
	}{
		{"staff may create leave requests", "staff", "leave_request", "create", true},
		{"staff may read leave requests", "staff", "leave_request", "read", true},
		{"staff may not approve", "staff", "leave_request", "approve", false},
		{"staff may not manage staff records", "staff", "staff", "manage", false},
		{"supervisor inherits approver", "supervisor", "leave_request", "approve", true},
		{"supervisor inherits staff", "supervisor", "leave_request", "create", true},
		{"hr may reject", "hr", "leave_request", "reject", true},
		{"ed may approve", "ed", "leave_request", "approve", true},
		{"admin manages staff records", "admin", "staff", "manage", true},
		{"admin may approve through approver", "admin", "leave_request", "approve", true},
		{"unknown role gets nothing", "visitor", "leave_request", "read", false},
		{"unknown resource gets nothing", "ed", "payroll", "read", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			allowed, err := svc.Enforce(domain.EnforceRequest{
				Role:     tc.role,
				Resource: tc.resource,
				Action:   tc.action,
			})

			assert.NoError(t, err)
			assert.Equal(t, tc.allowed, allowed)
		})
	}
}
