package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cert-portfolio/internal/domain"
)

func TestSortCertificates_Keys(t *testing.T) {
	views := mustViews(t,
		newCert("a", withName("beta"), withPlatform("Udemy"), withCategory("Cloud"), withCompleted(daysAgo(10)), withHours(5), withGrade(domain.NumericGrade(70))),
		newCert("b", withName("Alpha"), withPlatform("coursera"), withCategory("AI"), withCompleted(daysAgo(30)), withHours(40), withGrade(domain.TextGrade("95"))),
		newCert("c", withName("gamma"), withPlatform("edX"), withCategory("Business"), withCompleted(daysAgo(20)), withHours(12)),
	)

	tests := []struct {
		key  SortKey
		want []string
	}{
		{key: SortNewest, want: []string{"a", "c", "b"}},
		{key: SortOldest, want: []string{"b", "c", "a"}},
		{key: SortName, want: []string{"b", "a", "c"}},
		{key: SortPlatform, want: []string{"b", "c", "a"}},
		{key: SortCategory, want: []string{"b", "c", "a"}},
		{key: SortHours, want: []string{"b", "c", "a"}},
		{key: SortGrade, want: []string{"b", "a", "c"}},
		{key: "bogus", want: []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			assert.Equal(t, tt.want, ids(SortCertificates(views, tt.key)))
		})
	}
}

func TestSortCertificates_GradeTreatsNonNumericAsZero(t *testing.T) {
	views := mustViews(t,
		newCert("pass", withGrade(domain.TextGrade("Pass"))),
		newCert("low", withGrade(domain.NumericGrade(-5))),
		newCert("none"),
		newCert("high", withGrade(domain.TextGrade("88%"))),
		newCert("inf", withGrade(domain.TextGrade("Infinity"))),
	)

	got := SortCertificates(views, SortGrade)

	assert.Equal(t, []string{"high", "pass", "none", "inf", "low"}, ids(got))
	assert.Equal(t, "Pass", got[1].Grade.Text, "grade must not be rewritten")
}

func TestSortCertificates_ExpiryNullsLast(t *testing.T) {
	views := mustViews(t,
		newCert("never1"),
		newCert("late", withExpiry(daysAhead(300))),
		newCert("never2"),
		newCert("soon", withExpiry(daysAhead(3))),
		newCert("past", withExpiry(daysAgo(3))),
	)

	got := SortCertificates(views, SortExpiry)

	assert.Equal(t, []string{"past", "soon", "late", "never1", "never2"}, ids(got))
	seenUndated := false
	for _, v := range got {
		if v.Expires() == nil {
			seenUndated = true
			continue
		}
		assert.False(t, seenUndated, "dated view %s after an undated one", v.ID)
	}
}

func TestSortCertificates_StableAndIdempotent(t *testing.T) {
	views := mustViews(t,
		newCert("1", withHours(10)),
		newCert("2", withHours(20)),
		newCert("3", withHours(10)),
		newCert("4", withHours(20)),
	)

	for _, key := range []SortKey{SortNewest, SortOldest, SortPlatform, SortName, SortGrade, SortHours, SortCategory, SortExpiry} {
		once := SortCertificates(views, key)
		twice := SortCertificates(once, key)
		assert.Equal(t, ids(once), ids(twice), string(key))
	}

	assert.Equal(t, []string{"2", "4", "1", "3"}, ids(SortCertificates(views, SortHours)))
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(views), "input must be left intact")
}

func TestSortCertificates_Empty(t *testing.T) {
	assert.Empty(t, SortCertificates(nil, SortNewest))
	assert.NotNil(t, SortCertificates(nil, SortNewest))
}
