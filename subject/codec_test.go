package subject

import "testing"

func TestSubjectStrings(t *testing.T) {
	cases := []struct {
		name string
		got  string
		want string
	}{
		{"project", ProjectSubject("project_id"), "UPDATES.STORAGE._.project_id._"},
		{"collection", CollectionSubject("project_id", "collection_id"), "UPDATES.STORAGE._.project_id._.collection_id._"},
		{"object", ObjectSubject("project_id", "collection_id", "shared_object_id", "object_id"),
			"UPDATES.STORAGE._.project_id._.collection_id._.OBJECT._.shared_object_id._.object_id._"},
		{"object_group", ObjectGroupSubject("project_id", "collection_id", "shared_object_group_id", "object_group_id"),
			"UPDATES.STORAGE._.project_id._.collection_id._.OBJECTGROUP._.shared_object_group_id._.object_group_id._"},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Errorf("%s: got %q, want %q", c.name, c.got, c.want)
		}
	}
}

func TestQueryStrings(t *testing.T) {
	cases := []struct {
		name string
		got  string
		want string
	}{
		{"project", ProjectQuery("project_id", false), "UPDATES.STORAGE._.project_id._"},
		{"project_sub", ProjectQuery("project_id", true), "UPDATES.STORAGE._.project_id.>"},
		{"collection", CollectionQuery("project_id", "collection_id", false), "UPDATES.STORAGE._.project_id._.collection_id._"},
		{"collection_sub", CollectionQuery("project_id", "collection_id", true), "UPDATES.STORAGE._.project_id._.collection_id.>"},
		{"object", ObjectQuery("project_id", "collection_id", "shared_object_id", "object_id", false),
			"UPDATES.STORAGE._.project_id._.collection_id._.OBJECT._.shared_object_id._.object_id._"},
		{"object_sub", ObjectQuery("project_id", "collection_id", "shared_object_id", "object_id", true),
			"UPDATES.STORAGE._.project_id._.collection_id._.OBJECT._.shared_object_id._.object_id.>"},
		{"object_group", ObjectGroupQuery("project_id", "collection_id", "shared_object_group_id", "object_group_id", false),
			"UPDATES.STORAGE._.project_id._.collection_id._.OBJECTGROUP._.shared_object_group_id._.object_group_id._"},
		{"object_group_sub", ObjectGroupQuery("project_id", "collection_id", "shared_object_group_id", "object_group_id", true),
			"UPDATES.STORAGE._.project_id._.collection_id._.OBJECTGROUP._.shared_object_group_id._.object_group_id.>"},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Errorf("%s: got %q, want %q", c.name, c.got, c.want)
		}
	}
}

func TestQuerySuffixProperty(t *testing.T) {
	base := ProjectSubject("p")
	if got := query(base, false); got[len(got)-2:] != "._" {
		t.Errorf("include=false must end in ._, got %q", got)
	}
	if got := query(base, true); got[len(got)-2:] != ".>" {
		t.Errorf("include=true must end in .>, got %q", got)
	}
}

func TestDenominatorOnlyAtThreeOrMoreIDs(t *testing.T) {
	if got := basePrefix([]string{"p"}, false); containsDenominator(got) {
		t.Errorf("1-id chain must not contain a denominator, got %q", got)
	}
	if got := basePrefix([]string{"p", "c"}, false); containsDenominator(got) {
		t.Errorf("2-id chain must not contain a denominator, got %q", got)
	}
	if got := basePrefix([]string{"p", "c", "s", "o"}, false); !containsToken(got, objectName) {
		t.Errorf("4-id object chain must contain OBJECT denominator, got %q", got)
	}
	if got := basePrefix([]string{"p", "c", "s", "o"}, true); !containsToken(got, objectGroupName) {
		t.Errorf("4-id object-group chain must contain OBJECTGROUP denominator, got %q", got)
	}
}

func containsDenominator(s string) bool {
	return containsToken(s, objectName) || containsToken(s, objectGroupName)
}

func containsToken(s, token string) bool {
	for i := 0; i+len(token) <= len(s); i++ {
		if s[i:i+len(token)] == token {
			return true
		}
	}
	return false
}
