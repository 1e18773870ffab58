package cpp

import (
	"testing"

	"github.com/CodMac/cpp-treesitter-uml-analyzer/model"
)

func TestSymbolTable_ResolvePrefersDeepestScope(t *testing.T) {
	st := newSymbolTable()
	st.register(&symbolEntry{kind: symRecord, name: "Widget", qualifiedName: "Widget"})
	st.register(&symbolEntry{kind: symRecord, name: "Widget", qualifiedName: "ns::Widget", namespace: []string{"ns"}})
	st.register(&symbolEntry{kind: symRecord, name: "Widget", qualifiedName: "ns::inner::Widget", namespace: []string{"ns", "inner"}})

	e := st.resolve("Widget", []string{"ns", "inner"})
	if e == nil || e.qualifiedName != "ns::inner::Widget" {
		t.Errorf("Expected deepest scope match, got %+v", e)
	}

	e = st.resolve("Widget", []string{"ns"})
	if e == nil || e.qualifiedName != "ns::Widget" {
		t.Errorf("Expected ns scope match, got %+v", e)
	}

	e = st.resolve("Widget", nil)
	if e == nil || e.qualifiedName != "Widget" {
		t.Errorf("Expected global scope match, got %+v", e)
	}
}

func TestSymbolTable_ResolveQualifiedNameDirectly(t *testing.T) {
	st := newSymbolTable()
	st.register(&symbolEntry{kind: symEnum, name: "Color", qualifiedName: "ns::Color", namespace: []string{"ns"}})

	// 代码里直接写全限定名时按原样兜底查找
	if e := st.resolve("ns::Color", []string{"other"}); e == nil || e.kind != symEnum {
		t.Errorf("Expected direct qualified lookup to succeed, got %+v", e)
	}
	if e := st.resolve("ns::Missing", nil); e != nil {
		t.Errorf("Expected unknown name to resolve to nothing, got %+v", e)
	}
}

func TestSymbolTable_FirstRegistrationWins(t *testing.T) {
	st := newSymbolTable()
	st.register(&symbolEntry{kind: symRecord, name: "Widget", qualifiedName: "ns::Widget"})
	st.register(&symbolEntry{kind: symEnum, name: "Widget", qualifiedName: "ns::Widget"})

	if e := st.resolve("ns::Widget", nil); e == nil || e.kind != symRecord {
		t.Errorf("Expected the first registration to win, got %+v", e)
	}
}

func TestSymbolTable_ResolveShort(t *testing.T) {
	st := newSymbolTable()
	st.register(&symbolEntry{kind: symFunction, name: "run", qualifiedName: "ns::Engine::run", participant: "ns::Engine"})

	if e := st.resolveShort("run"); e == nil || e.participant != "ns::Engine" {
		t.Errorf("Expected short name lookup to find the method, got %+v", e)
	}
	if e := st.resolveShort("walk"); e != nil {
		t.Errorf("Expected unknown short name to resolve to nothing, got %+v", e)
	}
}

func TestQualify(t *testing.T) {
	cases := []struct {
		namespace   []string
		recordChain []string
		name        string
		want        string
	}{
		{nil, nil, "main", "main"},
		{[]string{"ns"}, nil, "Widget", "ns::Widget"},
		{[]string{"ns"}, []string{"Outer"}, "Inner", "ns::Outer::Inner"},
		{[]string{"ns"}, []string{"Outer", ""}, "Inner", "ns::Outer::Inner"},
	}
	for _, c := range cases {
		if got := qualify(c.namespace, c.recordChain, c.name); got != c.want {
			t.Errorf("qualify(%v, %v, %q) = %q, want %q", c.namespace, c.recordChain, c.name, got, c.want)
		}
	}
}

func TestLastSegment(t *testing.T) {
	if got := lastSegment("A::AA::aa"); got != "aa" {
		t.Errorf("Expected aa, got %q", got)
	}
	if got := lastSegment("main"); got != "main" {
		t.Errorf("Expected main, got %q", got)
	}
}

func TestSpelledBase(t *testing.T) {
	if got := spelledBase("std::vector<int>"); got != "std::vector" {
		t.Errorf("Expected std::vector, got %q", got)
	}
	if got := spelledBase("Widget"); got != "Widget" {
		t.Errorf("Expected Widget, got %q", got)
	}
}

func TestLongerName(t *testing.T) {
	if got := longerName("vector", "std::vector"); got != "std::vector" {
		t.Errorf("Expected canonical name to win, got %q", got)
	}
	if got := longerName("ns::detail::List", "List"); got != "ns::detail::List" {
		t.Errorf("Expected spelled name to win, got %q", got)
	}
}

func TestParseAccess(t *testing.T) {
	cases := map[string]model.Access{
		"public:":    model.AccessPublic,
		"protected:": model.AccessProtected,
		"private":    model.AccessPrivate,
		"signals:":   "",
	}
	for input, want := range cases {
		if got := parseAccess(input); got != want {
			t.Errorf("parseAccess(%q) = %q, want %q", input, got, want)
		}
	}
}
