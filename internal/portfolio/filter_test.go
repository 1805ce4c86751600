package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterCertificates_PlatformIsCaseInsensitive(t *testing.T) {
	views := mustViews(t,
		newCert("a", withPlatform("Coursera")),
		newCert("b", withPlatform("Coursera")),
		newCert("c", withPlatform("Udemy")),
	)

	got := FilterCertificates(views, Filter{Platform: "coursera"})
	assert.Equal(t, []string{"a", "b"}, ids(got))
}

func TestFilterCertificates_Criteria(t *testing.T) {
	views := mustViews(t,
		newCert("go", withName("Go in Practice"), withCategory("Programming"), withSkills("Go", "Concurrency")),
		newCert("ml", withName("Machine Learning"), withCategory("Data Science"), withPlatform("edX"), withSkills("Python")),
		newCert("aws", withName("Cloud Practitioner"), withCategory("Cloud"), withExpiry(daysAgo(1))),
		newCert("k8s", withName("Kubernetes"), withCategory("Cloud"), withExpiry(daysAhead(100)), withSkills("containers")),
	)
	no := false
	yes := true

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{name: "no filter", filter: Filter{}, want: []string{"go", "ml", "aws", "k8s"}},
		{name: "category", filter: Filter{Category: "CLOUD"}, want: []string{"aws", "k8s"}},
		{name: "category must match exactly", filter: Filter{Category: "clo"}, want: []string{}},
		{name: "search course name", filter: Filter{Search: "machine"}, want: []string{"ml"}},
		{name: "search skill", filter: Filter{Search: "CONTAIN"}, want: []string{"k8s"}},
		{name: "search platform", filter: Filter{Search: "edx"}, want: []string{"ml"}},
		{name: "exclude expired", filter: Filter{IncludeExpired: &no}, want: []string{"go", "ml", "k8s"}},
		{name: "include expired", filter: Filter{IncludeExpired: &yes}, want: []string{"go", "ml", "aws", "k8s"}},
		{name: "conjunction", filter: Filter{Category: "cloud", IncludeExpired: &no}, want: []string{"k8s"}},
		{name: "no match", filter: Filter{Platform: "Pluralsight"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterCertificates(views, tt.filter)))
		})
	}
}

func TestFilterCertificates_SubsetPreservingOrder(t *testing.T) {
	views := mustViews(t,
		newCert("1", withSkills("go")),
		newCert("2"),
		newCert("3", withSkills("golang")),
		newCert("4", withName("Going further")),
	)

	got := FilterCertificates(views, Filter{Search: "go"})

	assert.Equal(t, []string{"1", "3", "4"}, ids(got))
	assert.Len(t, views, 4, "input must be left intact")
}
