package cmd

import (
	"reflect"
	"testing"
)

func TestResolveBaseURL(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  string
		want string
	}{
		{"default", nil, "", "http://localhost:3000"},
		{"env", nil, "https://staging.example.com/", "https://staging.example.com"},
		{"arg wins over env", []string{"http://127.0.0.1:8080"}, "https://staging.example.com", "http://127.0.0.1:8080"},
		{"scheme added", []string{"example.com:3000"}, "", "http://example.com:3000"},
		{"trailing slashes trimmed", []string{"https://example.com/app//"}, "", "https://example.com/app"},
		{"blank arg falls back", []string{"  "}, "", "http://localhost:3000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BASE_URL", tt.env)
			if got := resolveBaseURL(tt.args); got != tt.want {
				t.Errorf("resolveBaseURL(%q) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}

func TestParseHeaders(t *testing.T) {
	got, err := parseHeaders([]string{"Authorization: Bearer abc", "X-Trace:1", "X-Url: http://a:b"})
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{"Authorization": "Bearer abc", "X-Trace": "1", "X-Url": "http://a:b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("headers = %v, want %v", got, want)
	}

	for _, bad := range []string{"no-colon", ": value"} {
		if _, err := parseHeaders([]string{bad}); err == nil {
			t.Errorf("parseHeaders(%q) succeeded", bad)
		}
	}

	if got, err := parseHeaders(nil); err != nil || got != nil {
		t.Errorf("parseHeaders(nil) = %v, %v", got, err)
	}
}

func TestIntSliceValue(t *testing.T) {
	var codes []int
	v := &intSliceValue{target: &codes}
	if err := v.Set("200, 204,,302"); err != nil {
		t.Fatal(err)
	}
	if err := v.Set("410"); err != nil {
		t.Fatal(err)
	}
	if want := []int{200, 204, 302, 410}; !reflect.DeepEqual(codes, want) {
		t.Errorf("codes = %v, want %v", codes, want)
	}
	if v.String() != "200,204,302,410" {
		t.Errorf("String = %q", v.String())
	}
	if err := v.Set("ok"); err == nil {
		t.Error("expected error for non-numeric code")
	}
}
