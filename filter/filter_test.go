package filter

import "testing"

func TestNamespaceFilter_EmptyIncludesEverything(t *testing.T) {
	f := NewNamespaceFilter(nil, nil)
	for _, ns := range []string{"", "ns", "ns::detail::inner"} {
		if !f.ShouldInclude(ns) {
			t.Errorf("Expected empty filter to include %q", ns)
		}
	}
}

func TestNamespaceFilter_ExcludeWins(t *testing.T) {
	f := NewNamespaceFilter([]string{"ns"}, []string{"ns::detail"})

	cases := []struct {
		path string
		want bool
	}{
		{"ns", true},
		{"ns::widgets", true},
		{"ns::detail", false},
		{"ns::detail::inner", false},
		{"other", false},
	}
	for _, c := range cases {
		if got := f.ShouldInclude(c.path); got != c.want {
			t.Errorf("ShouldInclude(%q) = %v, want %v", c.path, got, c.want)
		}
	}
}

func TestNamespaceFilter_TokenBoundary(t *testing.T) {
	f := NewNamespaceFilter(nil, []string{"ns::detail"})

	// 前缀匹配在 "::" token 边界上，不是裸字符串前缀
	if f.ShouldInclude("ns::detail::inner") {
		t.Error("Expected ns::detail::inner to be excluded")
	}
	if !f.ShouldInclude("ns::detailed") {
		t.Error("Expected ns::detailed to survive the ns::detail exclusion")
	}
}
