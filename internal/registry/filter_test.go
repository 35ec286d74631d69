package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"studentregistry/internal/types"
)

func filterFixtures() []types.StudentRecord {
	return []types.StudentRecord{
		{ID: 1, StudentID: "S1", Fullname: "Ann Lee", Email: "a@b.com", Course: "BSIT", YearLevel: "1"},
		{ID: 2, StudentID: "S2", Fullname: "Ben Cho", Email: "b@c.com", Course: "BSCS", YearLevel: "2"},
		{ID: 3, StudentID: "X-9", Fullname: "Cara Diaz", Email: "c@d.com", Course: "BSED", YearLevel: "3"},
	}
}

func TestFilterEmptyTextReturnsAll(t *testing.T) {
	records := filterFixtures()
	assert.Equal(t, records, Filter(records, ""))
}

func TestFilterMatchesFullname(t *testing.T) {
	got := Filter(filterFixtures(), "ann")
	assert.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
}

func TestFilterMatchesStudentID(t *testing.T) {
	got := Filter(filterFixtures(), "x-9")
	assert.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].ID)
}

func TestFilterMatchesCourse(t *testing.T) {
	got := Filter(filterFixtures(), "bscs")
	assert.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)
}

func TestFilterMatchesAnyOfTheThreeFields(t *testing.T) {
	// "s" appears in every student ID and in both BS* courses.
	got := Filter(filterFixtures(), "s")
	assert.Len(t, got, 3)
}

func TestFilterPreservesOrder(t *testing.T) {
	got := Filter(filterFixtures(), "b")
	// Ben (fullname) and both BS* courses match; order follows input.
	ids := []int64{got[0].ID, got[1].ID, got[2].ID}
	assert.Equal(t, []int64{1, 2, 3}, ids)
}

func TestFilterNoMatchIsEmptyNotNil(t *testing.T) {
	got := Filter(filterFixtures(), "nobody")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterDoesNotMatchEmail(t *testing.T) {
	// Email is displayed but not searched.
	got := Filter(filterFixtures(), "a@b.com")
	assert.Empty(t, got)
}
