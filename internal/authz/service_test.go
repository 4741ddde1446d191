package authz

import (
	"fmt"
	"strings"
	"testing"

	"github.com/salesdesk-next/internal/constants"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	return svc
}

func TestBootstrapBuiltinRoles(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}

	roles, err := svc.ListRoles()
	if err != nil {
		t.Fatalf("list roles failed: %v", err)
	}
	want := map[string]bool{}
	for _, role := range roles {
		want[role] = true
	}
	for _, name := range []string{constants.RoleSale, constants.RoleWarehouse, constants.RoleFinance, constants.RoleBackoffice, constants.RoleAdminControl} {
		normalized, _ := NormalizeRole(name)
		if !want[normalized] {
			t.Fatalf("builtin role %s missing, got %v", normalized, roles)
		}
	}
}

func TestEnforceByRole(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	if err := svc.SetAdminRoles(7, []string{constants.RoleSale}); err != nil {
		t.Fatalf("set roles failed: %v", err)
	}

	ok, err := svc.EnforceAdmin(7, "/backoffice/orders/42", "GET")
	if err != nil {
		t.Fatalf("enforce failed: %v", err)
	}
	if !ok {
		t.Fatalf("sale must read orders")
	}

	ok, err = svc.EnforceAdmin(7, "/backoffice/orders/42/accept-verification", "POST")
	if err != nil {
		t.Fatalf("enforce failed: %v", err)
	}
	if ok {
		t.Fatalf("sale must not accept verification")
	}
}

func TestFinanceInheritsSale(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	if err := svc.SetAdminRoles(8, []string{constants.RoleFinance}); err != nil {
		t.Fatalf("set roles failed: %v", err)
	}

	for _, probe := range []struct {
		object string
		action string
	}{
		{"/backoffice/orders/1", "GET"},
		{"/backoffice/orders/1/accept-verification", "POST"},
		{"/backoffice/debts", "GET"},
	} {
		ok, err := svc.EnforceAdmin(8, probe.object, probe.action)
		if err != nil {
			t.Fatalf("enforce failed: %v", err)
		}
		if !ok {
			t.Fatalf("finance must reach %s %s", probe.action, probe.object)
		}
	}
}

func TestNormalizeObjectStripsAPIPrefix(t *testing.T) {
	if got := NormalizeObject("/api/v1/backoffice/orders"); got != "/backoffice/orders" {
		t.Fatalf("unexpected normalized object: %s", got)
	}
	if got := NormalizeObject("backoffice/orders"); got != "/backoffice/orders" {
		t.Fatalf("unexpected normalized object: %s", got)
	}
}
