package gemini

import "testing"

func TestCompose(t *testing.T) {
	tests := []struct {
		name    string
		system  string
		user    string
		context string
		want    string
	}{
		{
			name:   "no context",
			system: "S",
			user:   "U",
			want:   "System: S\n\nUser: U",
		},
		{
			name:    "with context",
			system:  "S",
			user:    "U",
			context: "C",
			want:    "System: S\n\nContext:\nC\n\nUser: U",
		},
		{
			name:   "empty context omitted entirely",
			system: "review this",
			user:   "package main",
			want:   "System: review this\n\nUser: package main",
		},
		{
			name:    "labels in caller text pass through",
			system:  "User: not a section",
			user:    "System: also not",
			context: "Context:\nnested",
			want:    "System: User: not a section\n\nContext:\nContext:\nnested\n\nUser: System: also not",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compose(tt.system, tt.user, tt.context)
			if got != tt.want {
				t.Errorf("Compose() = %q, want %q", got, tt.want)
			}
		})
	}
}
