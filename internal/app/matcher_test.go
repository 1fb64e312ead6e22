package app

import (
	"strings"
	"testing"
)

func TestRespond_RulePriority(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "booking keyword",
			in:   "Tôi muốn ĐẶT LỊCH khám",
			want: "đặt lịch hẹn",
		},
		{
			name: "headache keyword",
			in:   "dạo này hay bị nhức đầu",
			want: "Đau đầu có thể do nhiều nguyên nhân",
		},
		{
			name: "fever keyword",
			in:   "con tôi phát sốt từ tối qua",
			want: "Khi bị sốt",
		},
		{
			name: "records keyword",
			in:   "xem bệnh án cũ ở đâu",
			want: "hồ sơ y tế điện tử",
		},
		{
			name: "booking wins over fever",
			in:   "mình muốn đặt lịch vì bị sốt",
			want: "đặt lịch hẹn",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Respond(tc.in)
			if !strings.Contains(got, tc.want) {
				t.Fatalf("Respond(%q) = %q, want it to contain %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestRespond_FallbackEchoesOriginalInput(t *testing.T) {
	in := "Xin Chào"
	got := Respond(in)
	if !strings.Contains(got, `"Xin Chào"`) {
		t.Fatalf("fallback reply should echo the original (not lower-cased) input, got %q", got)
	}
}

func TestGreeting(t *testing.T) {
	got := Greeting("Lê Quang Minh")
	if !strings.HasPrefix(got, "Xin chào Lê Quang Minh!") {
		t.Fatalf("greeting should address the user by name, got %q", got)
	}
	if anon := Greeting("  "); !strings.HasPrefix(anon, "Xin chào bạn!") {
		t.Fatalf("greeting without a name should use the generic address, got %q", anon)
	}
}
