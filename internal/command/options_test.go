package command

import (
	"reflect"
	"testing"
)

func TestValue_Choices(t *testing.T) {
	tests := []struct {
		name     string
		value    Value
		wantFlag bool
		want     []string
	}{
		{"no value", NoValue(), true, nil},
		{"empty string", String(""), true, nil},
		{"single string", String("a"), false, []string{"a"}},
		{"comma string", String("a,b,c"), false, []string{"a", "b", "c"}},
		{"trailing comma keeps empty choice", String("a,"), false, []string{"a", ""}},
		{"list", List("a", "b"), false, []string{"a", "b"}},
		{"list is not split", List("a,b", "c"), false, []string{"a,b", "c"}},
		{"empty list", List(), false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.IsFlag(); got != tt.wantFlag {
				t.Errorf("IsFlag() = %v, want %v", got, tt.wantFlag)
			}
			got := tt.value.Choices()
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Choices() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestList_CopiesInput(t *testing.T) {
	values := []string{"a", "b"}
	v := List(values...)
	values[0] = "changed"

	if got := v.Choices(); got[0] != "a" {
		t.Errorf("List should copy its input, got %q", got)
	}
}

func TestOptionSet_PreservesOrderAndReplacesInPlace(t *testing.T) {
	s := NewOptionSet().
		Single("repo", "r").
		Flag("help").
		Multi("source-path", "a", "b").
		Single("repo", "r2")

	wantNames := []string{"repo", "help", "source-path"}
	if got := s.Names(); !reflect.DeepEqual(got, wantNames) {
		t.Errorf("Names() = %q, want %q", got, wantNames)
	}
	if got := s.Choices("repo"); !reflect.DeepEqual(got, []string{"r2"}) {
		t.Errorf("Choices(repo) = %q", got)
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
	if _, ok := s.Get("missing"); ok {
		t.Error("Get(missing) should report false")
	}
}

func TestOptionSet_ZeroValueAndNil(t *testing.T) {
	var zero OptionSet
	zero.Flag("help")
	if zero.Len() != 1 {
		t.Errorf("zero value Len() = %d, want 1", zero.Len())
	}

	var nilSet *OptionSet
	if nilSet.Len() != 0 || nilSet.Options() != nil || nilSet.Names() != nil {
		t.Error("nil OptionSet should behave as empty")
	}
	if _, ok := nilSet.Get("x"); ok {
		t.Error("nil OptionSet Get should report false")
	}
}

func TestOptionSet_Merge(t *testing.T) {
	base := NewOptionSet().Single("repo", "a").Flag("help")
	override := NewOptionSet().Single("repo", "b").Single("tag", "v1")

	base.Merge(override).Merge(nil)

	if got := base.Names(); !reflect.DeepEqual(got, []string{"repo", "help", "tag"}) {
		t.Errorf("Names() = %q", got)
	}
	if got := base.Choices("repo"); !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("Choices(repo) = %q", got)
	}
}

func TestFromMap(t *testing.T) {
	s, err := FromMap(map[string]any{
		"tag":         "0.1.5",
		"help":        true,
		"quiet":       false,
		"source-path": []any{"a", "b"},
		"branch":      nil,
		"timeout":     30,
		"ratio":       1.5,
		"paths":       []string{"x,y"},
	})
	if err != nil {
		t.Fatalf("FromMap() error = %v", err)
	}

	wantNames := []string{"branch", "help", "paths", "quiet", "ratio", "source-path", "tag", "timeout"}
	if got := s.Names(); !reflect.DeepEqual(got, wantNames) {
		t.Errorf("Names() = %q, want %q", got, wantNames)
	}

	for _, flag := range []string{"branch", "help", "quiet"} {
		if v, _ := s.Get(flag); !v.IsFlag() {
			t.Errorf("%s should be a flag", flag)
		}
	}
	if got := s.Choices("paths"); !reflect.DeepEqual(got, []string{"x,y"}) {
		t.Errorf("Choices(paths) = %q", got)
	}
	if got := s.Choices("timeout"); !reflect.DeepEqual(got, []string{"30"}) {
		t.Errorf("Choices(timeout) = %q", got)
	}
	if got := s.Choices("ratio"); !reflect.DeepEqual(got, []string{"1.5"}) {
		t.Errorf("Choices(ratio) = %q", got)
	}
}

func TestValueOf_ZeroNumberIsFlag(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want []string
		flag bool
	}{
		{"int zero", 0, nil, true},
		{"int64 zero", int64(0), nil, true},
		{"float zero", 0.0, nil, true},
		{"int64 non-zero", int64(7), []string{"7"}, false},
		{"negative float", -0.5, []string{"-0.5"}, false},
		{"string zero", "0", []string{"0"}, false},
		{"zero inside list", []any{0, 1}, []string{"0", "1"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ValueOf(tt.raw)
			if err != nil {
				t.Fatalf("ValueOf(%v) error = %v", tt.raw, err)
			}
			if v.IsFlag() != tt.flag {
				t.Errorf("IsFlag() = %v, want %v", v.IsFlag(), tt.flag)
			}
			if got := v.Choices(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Choices() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFromMap_UnsupportedType(t *testing.T) {
	if _, err := FromMap(map[string]any{"bad": map[string]string{}}); err == nil {
		t.Error("expected error for map value")
	}
	if _, err := FromMap(map[string]any{"bad": []any{"a", struct{}{}}}); err == nil {
		t.Error("expected error for struct list element")
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"help", "--help"},
		{"--help", "--help"},
		{"-h", "---h"},
		{"source-path", "--source-path"},
		{"", "--"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizeName(tt.input); got != tt.want {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
