package partials_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-partials/pkg/node"
	"github.com/goliatone/go-partials/pkg/partials"
	"github.com/goliatone/go-partials/pkg/placeholder"
)

func def(body string, params ...partials.Param) partials.Definition {
	return partials.Definition{Params: params, Body: node.Content{node.Text(body)}}
}

func param(name, value string) partials.Param {
	return partials.Param{Name: name, Value: value}
}

func TestSelect_PrefersMostRecentEligible(t *testing.T) {
	overloads := []partials.Definition{
		def("first", param("size", "small")),
		def("second"),
	}

	got, idx, ok := partials.Select(overloads, nil)
	if !ok {
		t.Fatalf("expected an overload to match")
	}
	if idx != 1 || got.Body[0] != node.Text("second") {
		t.Fatalf("expected parameterless overload, got index %d (%v)", idx, got.Body)
	}
}

func TestSelect_SkipsCandidatesWithFreeParams(t *testing.T) {
	overloads := []partials.Definition{
		def("with default", param("size", "small")),
		def("needs title", param("title", ""), param("size", "large")),
	}

	got, idx, ok := partials.Select(overloads, nil)
	if !ok {
		t.Fatalf("expected the defaulted overload to match")
	}
	if idx != 0 || got.Body[0] != node.Text("with default") {
		t.Fatalf("expected overload 0, got %d", idx)
	}
}

func TestSelect_EqualArityIsEligibleRegardlessOfNames(t *testing.T) {
	overloads := []partials.Definition{
		def("fallback", param("a", "1")),
		def("arity", param("x", ""), param("y", "")),
	}

	_, idx, ok := partials.Select(overloads, []partials.Param{param("p", "1"), param("q", "2")})
	if !ok || idx != 1 {
		t.Fatalf("expected equal-arity overload, got %d (ok=%v)", idx, ok)
	}
}

func TestSelect_SuppliedArgumentSatisfiesRequired(t *testing.T) {
	overloads := []partials.Definition{
		def("card", param("title", ""), param("size", "small"), param("tone", "calm")),
	}
	_, idx, ok := partials.Select(overloads, []partials.Param{param("title", "Hi")})
	if !ok || idx != 0 {
		t.Fatalf("expected overload to match, got %d (ok=%v)", idx, ok)
	}
}

func TestSelect_NoEligibleOverload(t *testing.T) {
	overloads := []partials.Definition{
		def("card", param("title", ""), param("size", "small")),
	}
	if _, _, ok := partials.Select(overloads, nil); ok {
		t.Fatalf("expected required parameter to block selection")
	}
	if _, _, ok := partials.Select(nil, nil); ok {
		t.Fatalf("expected empty overloads to fail")
	}
}

func TestBind(t *testing.T) {
	cases := []struct {
		name   string
		params []partials.Param
		args   []partials.Param
		want   placeholder.Binding
	}{
		{
			name:   "defaults without arguments",
			params: []partials.Param{param("who", "World"), param("tone", "")},
			want:   placeholder.Binding{"who": "World"},
		},
		{
			name:   "argument overrides default",
			params: []partials.Param{param("who", "World")},
			args:   []partials.Param{param("who", "Ada")},
			want:   placeholder.Binding{"who": "Ada"},
		},
		{
			name:   "omitted argument falls back",
			params: []partials.Param{param("who", "World"), param("tone", "calm")},
			args:   []partials.Param{param("who", "Ada")},
			want:   placeholder.Binding{"who": "Ada", "tone": "calm"},
		},
		{
			name:   "extra argument is forwarded",
			params: []partials.Param{param("who", "World")},
			args:   []partials.Param{param("extra", "yes")},
			want:   placeholder.Binding{"who": "World", "extra": "yes"},
		},
		{
			name:   "empty argument cannot clear a default",
			params: []partials.Param{param("who", "World")},
			args:   []partials.Param{param("who", "")},
			want:   placeholder.Binding{"who": "World"},
		},
		{
			name:   "empty first argument keeps its default across later params",
			params: []partials.Param{param("label", "Go"), param("href", "/")},
			args:   []partials.Param{param("label", "")},
			want:   placeholder.Binding{"label": "Go", "href": "/"},
		},
		{
			name: "no declared params binds nothing",
			args: []partials.Param{param("who", "Ada")},
			want: placeholder.Binding{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := partials.Bind(tc.params, tc.args)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("binding mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMakeParams_SkipsNameAndKeepsOrder(t *testing.T) {
	attrs := node.Attrs{
		{Key: "title", Value: ""},
		{Key: "name", Value: "card"},
		{Key: "size", Value: "small"},
	}
	want := []partials.Param{param("title", ""), param("size", "small")}
	if diff := cmp.Diff(want, partials.MakeParams(attrs)); diff != "" {
		t.Fatalf("params mismatch (-want +got):\n%s", diff)
	}
	if partials.MakeParams(attrs)[0].HasValue() {
		t.Fatalf("empty attribute should carry no value")
	}
}

func TestStore_AppendsOverloads(t *testing.T) {
	store := partials.NewStore()
	store.Register("box", def("a"))
	store.Register("box", def("b"))
	store.Register("card", def("c"))

	overloads, ok := store.Overloads("box")
	if !ok || len(overloads) != 2 {
		t.Fatalf("expected two box overloads, got %d (ok=%v)", len(overloads), ok)
	}
	if overloads[0].Body[0] != node.Text("a") {
		t.Fatalf("registration order not kept")
	}
	if store.Len() != 3 {
		t.Fatalf("expected 3 definitions, got %d", store.Len())
	}
	if diff := cmp.Diff([]string{"box", "card"}, store.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if store.Has("missing") {
		t.Fatalf("unexpected definition for missing")
	}
}
