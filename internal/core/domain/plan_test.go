package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/pysync/internal/core/domain"
)

func TestInstallPlan_IsEmpty(t *testing.T) {
	t.Parallel()

	plan := &domain.InstallPlan{OwnershipMismatch: []domain.PackageName{"numpy"}}
	assert.True(t, plan.IsEmpty(), "mismatch notices alone are not work")

	plan.Remove = []domain.InstalledPackage{{Name: "six"}}
	assert.False(t, plan.IsEmpty())
	assert.Equal(t, []string{"six"}, plan.RemoveNames())
}

func TestInstallPlan_InstallNames(t *testing.T) {
	t.Parallel()

	plan := &domain.InstallPlan{
		LinkFromCache: []domain.CachedArtifact{{Name: "attrs"}},
		Fetch:         []domain.Distribution{domain.DirectoryDist{Name: "local"}},
	}
	assert.Equal(t, []string{"attrs", "local"}, plan.InstallNames())
}

func TestRefreshPolicy_MustRevalidate(t *testing.T) {
	t.Parallel()

	assert.False(t, domain.RefreshPolicy{}.MustRevalidate("attrs"))
	assert.True(t, domain.RefreshPolicy{All: true}.MustRevalidate("attrs"))

	some := domain.RefreshPolicy{Packages: []domain.PackageName{"attrs"}}
	assert.True(t, some.MustRevalidate("attrs"))
	assert.False(t, some.MustRevalidate("six"))
}
