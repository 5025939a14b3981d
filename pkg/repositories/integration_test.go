package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cobreline/workforce-engine/pkg/models"
	"github.com/cobreline/workforce-engine/pkg/testhelpers"
)

func TestCatalogRepository_Integration(t *testing.T) {
	db := testhelpers.GetTestDB(t)
	repo := NewCatalogRepository(db.DB)
	ctx := context.Background()

	departments, err := repo.ListDepartments(ctx)
	require.NoError(t, err)
	assert.Len(t, departments, 4)

	patterns, err := repo.ListShiftPatterns(ctx)
	require.NoError(t, err)
	require.Len(t, patterns, 4)
	rotating := 0
	for _, p := range patterns {
		if p.IsRotating() {
			rotating++
			assert.Equal(t, 4, p.Crews)
		}
	}
	assert.Equal(t, 3, rotating)

	roles, err := repo.ListRoles(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, 13)

	competencies, err := repo.ListCompetencies(ctx)
	require.NoError(t, err)
	assert.Len(t, competencies, 10)

	courses, err := repo.ListCourses(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, courses)
	// Courses come back in phase order; the induction course opens phase 1.
	assert.Equal(t, models.SafetyInductionCourseCode, courses[0].Code)
	for i := 1; i < len(courses); i++ {
		assert.GreaterOrEqual(t, courses[i].Phase, courses[i-1].Phase)
	}
}

func TestComplianceRepository_Integration_RuleCatalog(t *testing.T) {
	db := testhelpers.GetTestDB(t)
	repo := NewComplianceRepository(db.DB)

	rules, err := repo.ListRules(context.Background())
	require.NoError(t, err)
	require.Len(t, rules, 12)
	assert.Equal(t, "CT-ART22", rules[0].Code)
	assert.Equal(t, "ERP-DRILL", rules[11].Code)
	for _, r := range rules {
		assert.GreaterOrEqual(t, r.Severity, 1)
		assert.LessOrEqual(t, r.Severity, 5)
		assert.GreaterOrEqual(t, r.DetectionProbability, 1)
		assert.LessOrEqual(t, r.DetectionProbability, 5)
	}
}

func TestDotationRepository_Integration_ReplaceAll(t *testing.T) {
	db := testhelpers.GetTestDB(t)
	repo := NewDotationRepository(db.DB)
	ctx := context.Background()

	pattern := 2
	first := []*models.Dotation{
		{RoleID: 7, ShiftPatternID: &pattern, PersonsPerShift: 3, Crews: 4, ReliefFactor: 1.22, HeadcountTotal: 15},
		{RoleID: 10, PersonsPerShift: 2, Crews: 1, ReliefFactor: 1.0, HeadcountTotal: 2},
	}
	require.NoError(t, repo.ReplaceAll(ctx, first))

	stored, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, 7, stored[0].RoleID)
	require.NotNil(t, stored[0].ShiftPatternID)
	assert.Equal(t, 2, *stored[0].ShiftPatternID)
	assert.Nil(t, stored[1].ShiftPatternID)

	// A second rebuild fully supersedes the first.
	second := []*models.Dotation{
		{RoleID: 4, PersonsPerShift: 1, Crews: 4, ReliefFactor: 1.22, HeadcountTotal: 5},
	}
	require.NoError(t, repo.ReplaceAll(ctx, second))

	stored, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, 4, stored[0].RoleID)

	require.NoError(t, repo.ReplaceAll(ctx, nil))
}

func TestAuditRepository_Integration_AppendAndList(t *testing.T) {
	db := testhelpers.GetTestDB(t)
	repo := NewAuditRepository(db.DB)
	ctx := context.Background()

	entries := []*models.AuditLogEntry{
		{Module: models.AuditModuleDotacion, Action: models.AuditActionRecompute, Detail: "primera corrida"},
		{Module: models.AuditModuleBrechas, Action: models.AuditActionRecompute, Detail: "segunda corrida"},
	}
	for _, e := range entries {
		require.NoError(t, repo.Append(ctx, e))
		time.Sleep(10 * time.Millisecond) // distinct created_at ordering
	}

	listed, err := repo.List(ctx, 10)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(listed), 2)
	assert.Equal(t, "segunda corrida", listed[0].Detail)
	assert.Equal(t, "primera corrida", listed[1].Detail)
	assert.Equal(t, models.DefaultAuditActor, listed[0].Actor)
	assert.False(t, listed[0].CreatedAt.IsZero())
}
