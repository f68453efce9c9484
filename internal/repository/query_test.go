package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/users-service/internal/domain"
)

func TestBuildMasterListQueryAppliesFilters(t *testing.T) {
	status := "active"
	search := " ivan "
	query, args := buildMasterListQuery(MasterFilter{
		Cities:     []string{"Saratov"},
		StatusWork: &status,
		Search:     &search,
		Limit:      10,
		Offset:     20,
	})

	assert.Contains(t, query, "cities && $1")
	assert.Contains(t, query, "status_work=$2")
	assert.Contains(t, query, "(name ILIKE $3 OR login ILIKE $3 OR phone ILIKE $3)")
	assert.Contains(t, query, "ORDER BY date_create DESC LIMIT 10 OFFSET 20")
	assert.Equal(t, []any{[]string{"Saratov"}, "active", "%ivan%"}, args)
}

func TestBuildMasterListQueryWithoutFilters(t *testing.T) {
	query, args := buildMasterListQuery(MasterFilter{Limit: 10000, Offset: -3})

	assert.NotContains(t, query, "WHERE")
	assert.Contains(t, query, "LIMIT 500 OFFSET 0")
	assert.Empty(t, args)
}

func TestBuildEmployeeListQuery(t *testing.T) {
	query, args := buildEmployeeListQuery(EmployeeFilter{})
	assert.Contains(t, query, "FROM masters")
	assert.Contains(t, query, "UNION ALL")
	assert.Contains(t, query, "FROM directors")
	assert.Empty(t, args)

	role := domain.RoleDirector
	search := "boss"
	query, args = buildEmployeeListQuery(EmployeeFilter{Role: &role, Cities: []string{"Engels"}, Search: &search})
	assert.NotContains(t, query, "FROM masters")
	assert.NotContains(t, query, "UNION ALL")
	assert.Contains(t, query, "WHERE cities && $1 AND (name ILIKE $2 OR login ILIKE $2)")
	assert.Equal(t, []any{[]string{"Engels"}, "%boss%"}, args)
}

func TestPrincipalTable(t *testing.T) {
	cases := map[domain.Role]string{
		domain.RoleMaster:             "masters",
		domain.RoleDirector:           "directors",
		domain.RoleCallcentreAdmin:    "callcentre_admins",
		domain.RoleCallcentreOperator: "callcentre_operators",
	}
	for role, want := range cases {
		table, ok := principalTable(role)
		assert.True(t, ok, role)
		assert.Equal(t, want, table)
	}

	_, ok := principalTable(domain.RoleAdmin)
	assert.False(t, ok)
}

func TestOperatorTable(t *testing.T) {
	table, err := operatorTable(domain.OperatorTypeAdmin)
	assert.NoError(t, err)
	assert.Equal(t, "callcentre_admins", table)

	_, err = operatorTable("manager")
	assert.Error(t, err)
}
